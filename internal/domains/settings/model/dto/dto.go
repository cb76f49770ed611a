package dto

import "courtbook/internal/rules"

type UpdateFeaturesRequest struct {
	DynamicPricing  *bool `json:"dynamic_pricing"`
	Memberships     *bool `json:"memberships"`
	Equipment       *bool `json:"equipment"`
	Bundles         *bool `json:"bundles"`
	Waitlist        *bool `json:"waitlist"`
	ConcurrencyLock *bool `json:"concurrency_lock"`
	PromoCodes      *bool `json:"promo_codes"`
	SlotCapacity    *bool `json:"slot_capacity"`
	Notifications   *bool `json:"notifications"`
	Events          *bool `json:"events"`
}

// Apply sets every flag present in the request.
func (u *UpdateFeaturesRequest) Apply(features *rules.Features) {
	pairs := []struct {
		src *bool
		dst *bool
	}{
		{u.DynamicPricing, &features.DynamicPricing},
		{u.Memberships, &features.Memberships},
		{u.Equipment, &features.Equipment},
		{u.Bundles, &features.Bundles},
		{u.Waitlist, &features.Waitlist},
		{u.ConcurrencyLock, &features.ConcurrencyLock},
		{u.PromoCodes, &features.PromoCodes},
		{u.SlotCapacity, &features.SlotCapacity},
		{u.Notifications, &features.Notifications},
		{u.Events, &features.Events},
	}

	for _, p := range pairs {
		if p.src != nil {
			*p.dst = *p.src
		}
	}
}

type SetHoursRequest struct {
	Open         string `json:"open"          validate:"required,clock"`
	Close        string `json:"close"         validate:"required,clock"`
	SlotDuration int    `json:"slot_duration" validate:"omitempty,min=0"`
}

type BlockedPeriodRequest struct {
	Label   string `json:"label"    validate:"required,max=100"`
	CourtID string `json:"court_id" validate:"omitempty"`
	Start   string `json:"start"    validate:"required,clock"`
	End     string `json:"end"      validate:"required,clock"`
}

func (b *BlockedPeriodRequest) ToRules() rules.BlockedPeriod {
	return rules.BlockedPeriod{Label: b.Label, CourtID: b.CourtID, Start: b.Start, End: b.End}
}

type PeakRuleRequest struct {
	Label      string  `json:"label"      validate:"required,max=100"`
	Start      string  `json:"start"      validate:"required,clock"`
	End        string  `json:"end"        validate:"required,clock"`
	Multiplier float64 `json:"multiplier" validate:"required"`
}

func (p *PeakRuleRequest) ToRules() rules.PeakRule {
	return rules.PeakRule{Label: p.Label, Start: p.Start, End: p.End, Multiplier: p.Multiplier}
}

type TierRequest struct {
	Name            string  `json:"name"             validate:"required,max=50"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lt=100"`
	Priority        int     `json:"priority"         validate:"gte=0"`
}

type VerifiedMemberRequest struct {
	Email        string `json:"email"         validate:"required,email"`
	MembershipID string `json:"membership_id" validate:"required"`
}

type EquipmentRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Price int    `json:"price" validate:"gte=0"`
	Stock int    `json:"stock" validate:"gte=0"`
	Unit  string `json:"unit"  validate:"omitempty,max=50"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required,oneof=-1 1"`
}

type BundleRequest struct {
	Name     string   `json:"name"     validate:"required,max=100"`
	Items    []string `json:"items"    validate:"omitempty,dive,required"`
	Discount float64  `json:"discount" validate:"gte=0,lte=100"`
	Price    int      `json:"price"    validate:"gte=0"`
}

type PromoRequest struct {
	Code  string  `json:"code"  validate:"required,max=30"`
	Type  string  `json:"type"  validate:"required,oneof=percent fixed PERCENT FIXED"`
	Value float64 `json:"value" validate:"required,gt=0"`
	Uses  int     `json:"uses"  validate:"omitempty,min=0"`
}
