package rules

import (
	"slices"
	"strings"
)

// Snapshot is the read model every rule is evaluated against.
type Snapshot struct {
	Courts   []Court
	Bookings []Booking
	Settings Settings
}

func (s Snapshot) Court(id string) (Court, bool) {
	idx := slices.IndexFunc(s.Courts, func(c Court) bool { return c.ID == id })
	if idx == -1 {
		return Court{}, false
	}

	return s.Courts[idx], true
}

// Tier resolves a membership id, falling back to the none tier.
func (s Snapshot) Tier(id string) MembershipTier {
	if id == "" {
		id = MembershipNone
	}

	idx := slices.IndexFunc(s.Settings.Memberships, func(m MembershipTier) bool { return m.ID == id })
	if idx == -1 {
		return NoneTier()
	}

	return s.Settings.Memberships[idx]
}

// VerifiedTier returns the tier an email has been verified into, or none.
func (s Snapshot) VerifiedTier(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	idx := slices.IndexFunc(s.Settings.VerifiedMembers, func(v VerifiedMember) bool { return v.Email == email })
	if idx == -1 {
		return MembershipNone
	}

	return s.Settings.VerifiedMembers[idx].MembershipID
}

// Promo looks a code up case-insensitively, redeemable or not.
func (s Snapshot) Promo(code string) (PromoCode, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return PromoCode{}, false
	}

	idx := slices.IndexFunc(s.Settings.PromoCodes, func(p PromoCode) bool { return p.Code == code })
	if idx == -1 {
		return PromoCode{}, false
	}

	return s.Settings.PromoCodes[idx], true
}

func (s Snapshot) Equipment(id string) (Equipment, bool) {
	idx := slices.IndexFunc(s.Settings.Equipment, func(e Equipment) bool { return e.ID == id })
	if idx == -1 {
		return Equipment{}, false
	}

	return s.Settings.Equipment[idx], true
}

func (s Snapshot) Booking(id string) (Booking, bool) {
	idx := slices.IndexFunc(s.Bookings, func(b Booking) bool { return b.ID == id })
	if idx == -1 {
		return Booking{}, false
	}

	return s.Bookings[idx], true
}

// Clone deep-copies the slices so callers can mutate the result freely.
func (s Snapshot) Clone() Snapshot {
	settings := s.Settings
	settings.TimeSlots.Blocked = slices.Clone(s.Settings.TimeSlots.Blocked)
	settings.PeakRules = slices.Clone(s.Settings.PeakRules)
	settings.Memberships = slices.Clone(s.Settings.Memberships)
	settings.VerifiedMembers = slices.Clone(s.Settings.VerifiedMembers)
	settings.Equipment = slices.Clone(s.Settings.Equipment)
	settings.PromoCodes = slices.Clone(s.Settings.PromoCodes)

	settings.Bundles = make([]Bundle, len(s.Settings.Bundles))
	for i, b := range s.Settings.Bundles {
		b.Items = slices.Clone(b.Items)
		settings.Bundles[i] = b
	}

	return Snapshot{
		Courts:   slices.Clone(s.Courts),
		Bookings: slices.Clone(s.Bookings),
		Settings: settings,
	}
}
