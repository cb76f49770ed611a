package rules

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// RuleError carries a message fit to show the administrator as-is.
type RuleError struct {
	Message  string
	NotFound bool
}

func (e *RuleError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &RuleError{Message: msg}
}

func missing(format string, args ...any) error {
	return &RuleError{Message: fmt.Sprintf(format, args...), NotFound: true}
}

// IsNotFound reports whether err is a RuleError about a missing item.
func IsNotFound(err error) bool {
	var ruleErr *RuleError

	return errors.As(err, &ruleErr) && ruleErr.NotFound
}

var whitespace = regexp.MustCompile(`\s+`)

// ValidSpan reports whether start and end are clock values with start before end.
func ValidSpan(start, end string) bool {
	from, to, ok := span(start, end)

	return ok && from < to
}

func (s *Settings) SetHours(open, closing string, duration int) error {
	if duration == 0 {
		duration = DefaultSlotDuration
	}

	if !ValidSpan(open, closing) {
		return invalid("Opening time must be before closing time.")
	}

	if duration < MinSlotDuration {
		return invalid("Minimum slot duration is 15 minutes.")
	}

	s.TimeSlots.Open = open
	s.TimeSlots.Close = closing
	s.TimeSlots.SlotDuration = duration

	return nil
}

// AddBlocked appends a blocked period. courtExists validates a specific court scope.
func (s *Settings) AddBlocked(period BlockedPeriod, courtExists func(id string) bool) error {
	period.Label = strings.TrimSpace(period.Label)
	if period.CourtID == "" {
		period.CourtID = CourtScopeAll
	}

	if period.Label == "" || !ValidSpan(period.Start, period.End) {
		return invalid("Fill a valid block period.")
	}

	if period.CourtID != CourtScopeAll && (courtExists == nil || !courtExists(period.CourtID)) {
		return missing("court %s not found", period.CourtID)
	}

	s.TimeSlots.Blocked = append(s.TimeSlots.Blocked, period)

	return nil
}

func (s *Settings) RemoveBlocked(index int) error {
	if index < 0 || index >= len(s.TimeSlots.Blocked) {
		return missing("blocked period %d not found", index)
	}

	s.TimeSlots.Blocked = slices.Delete(s.TimeSlots.Blocked, index, index+1)

	return nil
}

func (s *Settings) AddPeakRule(rule PeakRule) error {
	rule.Label = strings.TrimSpace(rule.Label)
	if rule.Label == "" || !ValidSpan(rule.Start, rule.End) || rule.Multiplier <= 1 {
		return invalid("Fill valid rule. Multiplier must be > 1.")
	}

	s.PeakRules = append(s.PeakRules, rule)

	return nil
}

func (s *Settings) RemovePeakRule(index int) error {
	if index < 0 || index >= len(s.PeakRules) {
		return missing("peak rule %d not found", index)
	}

	s.PeakRules = slices.Delete(s.PeakRules, index, index+1)

	return nil
}

// AddTier registers a tier. discountPercent is a whole percentage, e.g. 15 for 15%.
func (s *Settings) AddTier(name string, discountPercent float64, priority int) (MembershipTier, error) {
	name = strings.TrimSpace(name)
	discount := discountPercent / 100

	if name == "" || discount < 0 || discount >= 1 || priority < 0 {
		return MembershipTier{}, invalid("Please fill out all fields with valid numbers (0 or higher).")
	}

	tier := MembershipTier{
		ID:       whitespace.ReplaceAllString(name, "_"),
		Name:     name,
		Discount: discount,
		Priority: priority,
	}

	if slices.ContainsFunc(s.Memberships, func(m MembershipTier) bool { return m.ID == tier.ID }) {
		return MembershipTier{}, invalid("A tier with this name already exists.")
	}

	s.Memberships = append(s.Memberships, tier)

	return tier, nil
}

// RemoveTier drops a tier and guarantees the none tier leads the list.
func (s *Settings) RemoveTier(id string) error {
	if id == MembershipNone {
		return invalid("The default tier cannot be removed.")
	}

	if !slices.ContainsFunc(s.Memberships, func(m MembershipTier) bool { return m.ID == id }) {
		return missing("membership tier %s not found", id)
	}

	kept := slices.DeleteFunc(s.Memberships, func(m MembershipTier) bool {
		return m.ID == id || m.ID == MembershipNone
	})

	s.Memberships = append([]MembershipTier{NoneTier()}, kept...)

	return nil
}

func (s *Settings) UpsertVerifiedMember(email, membershipID string) (VerifiedMember, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || membershipID == "" || membershipID == MembershipNone {
		return VerifiedMember{}, invalid("Enter email and select a tier.")
	}

	if !slices.ContainsFunc(s.Memberships, func(m MembershipTier) bool { return m.ID == membershipID }) {
		return VerifiedMember{}, missing("membership tier %s not found", membershipID)
	}

	member := VerifiedMember{Email: email, MembershipID: membershipID}

	idx := slices.IndexFunc(s.VerifiedMembers, func(v VerifiedMember) bool { return v.Email == email })
	if idx == -1 {
		s.VerifiedMembers = append(s.VerifiedMembers, member)
	} else {
		s.VerifiedMembers[idx] = member
	}

	return member, nil
}

func (s *Settings) RemoveVerifiedMember(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	idx := slices.IndexFunc(s.VerifiedMembers, func(v VerifiedMember) bool { return v.Email == email })
	if idx == -1 {
		return missing("verified member %s not found", email)
	}

	s.VerifiedMembers = slices.Delete(s.VerifiedMembers, idx, idx+1)

	return nil
}

func (s *Settings) AddEquipment(name string, price, stock int, unit string) (Equipment, error) {
	name = strings.TrimSpace(name)
	if name == "" || price < 0 || stock < 0 {
		return Equipment{}, invalid("Fill all equipment fields.")
	}

	if unit == "" {
		unit = "per session"
	}

	item := Equipment{
		ID:    whitespace.ReplaceAllString(strings.ToLower(name), "_"),
		Name:  name,
		Price: price,
		Stock: stock,
		Unit:  unit,
	}

	if slices.ContainsFunc(s.Equipment, func(e Equipment) bool { return e.ID == item.ID }) {
		return Equipment{}, invalid("Equipment with this name already exists.")
	}

	s.Equipment = append(s.Equipment, item)

	return item, nil
}

// AdjustStock moves stock by delta, clamping at zero.
func (s *Settings) AdjustStock(id string, delta int) (Equipment, error) {
	idx := slices.IndexFunc(s.Equipment, func(e Equipment) bool { return e.ID == id })
	if idx == -1 {
		return Equipment{}, missing("equipment %s not found", id)
	}

	s.Equipment[idx].Stock = max(0, s.Equipment[idx].Stock+delta)

	return s.Equipment[idx], nil
}

func (s *Settings) RemoveEquipment(id string) error {
	idx := slices.IndexFunc(s.Equipment, func(e Equipment) bool { return e.ID == id })
	if idx == -1 {
		return missing("equipment %s not found", id)
	}

	s.Equipment = slices.Delete(s.Equipment, idx, idx+1)

	return nil
}

func (s *Settings) AddBundle(id, name string, items []string, discount float64, price int) (Bundle, error) {
	name = strings.TrimSpace(name)
	if name == "" || price < 0 {
		return Bundle{}, invalid("Fill bundle name and price.")
	}

	for _, item := range items {
		if !slices.ContainsFunc(s.Equipment, func(e Equipment) bool { return e.ID == item }) {
			return Bundle{}, missing("equipment %s not found", item)
		}
	}

	if items == nil {
		items = []string{}
	}

	bundle := Bundle{ID: id, Name: name, Items: items, Discount: discount, Price: price}
	s.Bundles = append(s.Bundles, bundle)

	return bundle, nil
}

func (s *Settings) RemoveBundle(id string) error {
	idx := slices.IndexFunc(s.Bundles, func(b Bundle) bool { return b.ID == id })
	if idx == -1 {
		return missing("bundle %s not found", id)
	}

	s.Bundles = slices.Delete(s.Bundles, idx, idx+1)

	return nil
}

// AddPromo registers a code. Codes are stored upper-case; uses defaults to 100.
func (s *Settings) AddPromo(code, promoType string, value float64, uses int) (PromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	promoType = strings.ToLower(promoType)

	if code == "" || (promoType != PromoTypePercent && promoType != PromoTypeFixed) || value <= 0 {
		return PromoCode{}, invalid("Fill all promo code fields.")
	}

	if uses <= 0 {
		uses = 100
	}

	if slices.ContainsFunc(s.PromoCodes, func(p PromoCode) bool { return p.Code == code }) {
		return PromoCode{}, invalid("Code already exists.")
	}

	promo := PromoCode{Code: code, Type: promoType, Value: value, UsesLeft: uses, Active: true}
	s.PromoCodes = append(s.PromoCodes, promo)

	return promo, nil
}

func (s *Settings) TogglePromo(code string) (PromoCode, error) {
	idx := s.promoIndex(code)
	if idx == -1 {
		return PromoCode{}, missing("promo code %s not found", strings.ToUpper(code))
	}

	s.PromoCodes[idx].Active = !s.PromoCodes[idx].Active

	return s.PromoCodes[idx], nil
}

func (s *Settings) RemovePromo(code string) error {
	idx := s.promoIndex(code)
	if idx == -1 {
		return missing("promo code %s not found", strings.ToUpper(code))
	}

	s.PromoCodes = slices.Delete(s.PromoCodes, idx, idx+1)

	return nil
}

// RedeemPromo consumes one use of a redeemable code. It reports false when
// the code is unknown, inactive or exhausted, leaving settings untouched.
func (s *Settings) RedeemPromo(code string) bool {
	idx := s.promoIndex(code)
	if idx == -1 || !s.PromoCodes[idx].Redeemable() {
		return false
	}

	s.PromoCodes[idx].UsesLeft--

	return true
}

func (s *Settings) promoIndex(code string) int {
	code = strings.ToUpper(strings.TrimSpace(code))

	return slices.IndexFunc(s.PromoCodes, func(p PromoCode) bool { return p.Code == code })
}
