package model

import (
	"courtbook/internal/rules"
	"courtbook/shared/dto"
	"courtbook/shared/model"
)

const (
	TableName  = "app_settings"
	EntityName = "settings"

	// SingletonID is the only row the table ever holds.
	SingletonID = 1

	FieldID              = "id"
	FieldFeatures        = "features"
	FieldTimeSlots       = "time_slots"
	FieldPeakRules       = "peak_rules"
	FieldMemberships     = "memberships"
	FieldVerifiedMembers = "verified_members"
	FieldEquipment       = "equipment"
	FieldBundles         = "bundles"
	FieldPromoCodes      = "promo_codes"
)

type AppSettings struct {
	ID              int                                `db:"id"`
	Features        model.JSON[rules.Features]         `db:"features"`
	TimeSlots       model.JSON[rules.TimeSlotConfig]   `db:"time_slots"`
	PeakRules       model.JSON[[]rules.PeakRule]       `db:"peak_rules"`
	Memberships     model.JSON[[]rules.MembershipTier] `db:"memberships"`
	VerifiedMembers model.JSON[[]rules.VerifiedMember] `db:"verified_members"`
	Equipment       model.JSON[[]rules.Equipment]      `db:"equipment"`
	Bundles         model.JSON[[]rules.Bundle]         `db:"bundles"`
	PromoCodes      model.JSON[[]rules.PromoCode]      `db:"promo_codes"`
	model.Metadata
}

// SingletonFilter selects the settings row.
func SingletonFilter() dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    FieldID,
				Value:    SingletonID,
				Operator: dto.FilterOperatorEq,
				Table:    TableName,
			},
		},
	}
}

func (a AppSettings) ToRules() rules.Settings {
	return rules.Settings{
		Features:        a.Features.Val,
		TimeSlots:       a.TimeSlots.Val,
		PeakRules:       a.PeakRules.Val,
		Memberships:     a.Memberships.Val,
		VerifiedMembers: a.VerifiedMembers.Val,
		Equipment:       a.Equipment.Val,
		Bundles:         a.Bundles.Val,
		PromoCodes:      a.PromoCodes.Val,
	}
}

// Column returns the value persisted in field for settings.
func Column(settings rules.Settings, field string) (any, bool) {
	switch field {
	case FieldFeatures:
		return model.NewJSON(settings.Features), true
	case FieldTimeSlots:
		return model.NewJSON(settings.TimeSlots), true
	case FieldPeakRules:
		return model.NewJSON(settings.PeakRules), true
	case FieldMemberships:
		return model.NewJSON(settings.Memberships), true
	case FieldVerifiedMembers:
		return model.NewJSON(settings.VerifiedMembers), true
	case FieldEquipment:
		return model.NewJSON(settings.Equipment), true
	case FieldBundles:
		return model.NewJSON(settings.Bundles), true
	case FieldPromoCodes:
		return model.NewJSON(settings.PromoCodes), true
	default:
		return nil, false
	}
}
