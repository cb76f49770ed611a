package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"courtbook/internal/rules"
)

func ruleMessage(t *testing.T, err error) string {
	t.Helper()

	var ruleErr *rules.RuleError
	if assert.ErrorAs(t, err, &ruleErr) {
		return ruleErr.Message
	}

	return ""
}

func TestSettings_SetHours(t *testing.T) {
	tests := []struct {
		name     string
		open     string
		closing  string
		duration int
		wantMsg  string
	}{
		{name: "valid", open: "07:00", closing: "23:00", duration: 30},
		{name: "zero duration uses default", open: "07:00", closing: "23:00"},
		{name: "inverted hours", open: "23:00", closing: "07:00", duration: 60, wantMsg: "Opening time must be before closing time."},
		{name: "too short", open: "07:00", closing: "23:00", duration: 10, wantMsg: "Minimum slot duration is 15 minutes."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := rules.DefaultSettings()
			err := settings.SetHours(tt.open, tt.closing, tt.duration)

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, ruleMessage(t, err))
				assert.Equal(t, "06:00", settings.TimeSlots.Open)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.open, settings.TimeSlots.Open)
			assert.Equal(t, tt.closing, settings.TimeSlots.Close)
			assert.GreaterOrEqual(t, settings.TimeSlots.SlotDuration, rules.MinSlotDuration)
		})
	}
}

func TestSettings_Blocked(t *testing.T) {
	settings := rules.DefaultSettings()
	exists := func(id string) bool { return id == "c1" }

	assert.NoError(t, settings.AddBlocked(rules.BlockedPeriod{Label: "Lunch", Start: "12:00", End: "13:00"}, exists))
	assert.Equal(t, rules.CourtScopeAll, settings.TimeSlots.Blocked[0].CourtID)

	assert.NoError(t, settings.AddBlocked(rules.BlockedPeriod{Label: "Repair", CourtID: "c1", Start: "08:00", End: "09:00"}, exists))

	err := settings.AddBlocked(rules.BlockedPeriod{Label: "Repair", CourtID: "c7", Start: "08:00", End: "09:00"}, exists)
	assert.True(t, rules.IsNotFound(err))

	err = settings.AddBlocked(rules.BlockedPeriod{Label: " ", Start: "08:00", End: "09:00"}, exists)
	assert.Equal(t, "Fill a valid block period.", ruleMessage(t, err))

	assert.NoError(t, settings.RemoveBlocked(0))
	assert.Len(t, settings.TimeSlots.Blocked, 1)
	assert.Equal(t, "Repair", settings.TimeSlots.Blocked[0].Label)

	assert.True(t, rules.IsNotFound(settings.RemoveBlocked(5)))
}

func TestSettings_PeakRules(t *testing.T) {
	settings := rules.DefaultSettings()

	err := settings.AddPeakRule(rules.PeakRule{Label: "Lunch", Start: "12:00", End: "13:00", Multiplier: 1})
	assert.Equal(t, "Fill valid rule. Multiplier must be > 1.", ruleMessage(t, err))

	assert.NoError(t, settings.AddPeakRule(rules.PeakRule{Label: "Lunch", Start: "12:00", End: "13:00", Multiplier: 1.1}))
	assert.Len(t, settings.PeakRules, 3)

	assert.NoError(t, settings.RemovePeakRule(0))
	assert.Equal(t, "Evening Peak", settings.PeakRules[0].Label)
	assert.True(t, rules.IsNotFound(settings.RemovePeakRule(-1)))
}

func TestSettings_Tiers(t *testing.T) {
	settings := rules.DefaultSettings()

	tier, err := settings.AddTier("Gold Plus", 30, 4)
	assert.NoError(t, err)
	assert.Equal(t, "Gold_Plus", tier.ID)
	assert.InDelta(t, 0.3, tier.Discount, 1e-9)

	_, err = settings.AddTier("Gold  Plus", 10, 1)
	assert.Equal(t, "A tier with this name already exists.", ruleMessage(t, err))

	_, err = settings.AddTier("Broken", -5, 1)
	assert.Equal(t, "Please fill out all fields with valid numbers (0 or higher).", ruleMessage(t, err))

	_, err = settings.AddTier("Free", 100, 1)
	assert.Error(t, err)

	assert.Error(t, settings.RemoveTier(rules.MembershipNone))
	assert.True(t, rules.IsNotFound(settings.RemoveTier("Diamond")))

	settings.Memberships = settings.Memberships[1:]
	assert.NoError(t, settings.RemoveTier("Basic"))
	assert.Equal(t, rules.NoneTier(), settings.Memberships[0])
	assert.Len(t, settings.Memberships, 4)
}

func TestSettings_VerifiedMembers(t *testing.T) {
	settings := rules.DefaultSettings()

	member, err := settings.UpsertVerifiedMember(" Ana@Example.COM ", "Basic")
	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", member.Email)

	_, err = settings.UpsertVerifiedMember("ana@example.com", "Premium")
	assert.NoError(t, err)
	assert.Len(t, settings.VerifiedMembers, 1)
	assert.Equal(t, "Premium", settings.VerifiedMembers[0].MembershipID)

	_, err = settings.UpsertVerifiedMember("", "Premium")
	assert.Equal(t, "Enter email and select a tier.", ruleMessage(t, err))

	_, err = settings.UpsertVerifiedMember("bob@example.com", "Diamond")
	assert.True(t, rules.IsNotFound(err))

	assert.NoError(t, settings.RemoveVerifiedMember("ANA@example.com"))
	assert.Empty(t, settings.VerifiedMembers)
	assert.True(t, rules.IsNotFound(settings.RemoveVerifiedMember("ana@example.com")))
}

func TestSettings_Equipment(t *testing.T) {
	settings := rules.DefaultSettings()

	item, err := settings.AddEquipment("Tennis  Balls", 45, 1, "")
	assert.NoError(t, err)
	assert.Equal(t, "tennis_balls", item.ID)
	assert.Equal(t, "per session", item.Unit)

	_, err = settings.AddEquipment("", 10, 1, "")
	assert.Equal(t, "Fill all equipment fields.", ruleMessage(t, err))

	item, err = settings.AdjustStock("tennis_balls", -1)
	assert.NoError(t, err)
	assert.Equal(t, 0, item.Stock)

	item, err = settings.AdjustStock("tennis_balls", -1)
	assert.NoError(t, err)
	assert.Equal(t, 0, item.Stock)

	_, err = settings.AdjustStock("trampoline", 1)
	assert.True(t, rules.IsNotFound(err))

	assert.NoError(t, settings.RemoveEquipment("tennis_balls"))
	assert.True(t, rules.IsNotFound(settings.RemoveEquipment("tennis_balls")))
}

func TestSettings_Bundles(t *testing.T) {
	settings := rules.DefaultSettings()

	bundle, err := settings.AddBundle("b3", "Duo", []string{"racket", "shoes"}, 15, 110)
	assert.NoError(t, err)
	assert.Equal(t, "Duo", bundle.Name)

	_, err = settings.AddBundle("b4", "Bad", []string{"kite"}, 0, 10)
	assert.True(t, rules.IsNotFound(err))

	empty, err := settings.AddBundle("b5", "Later", nil, 0, 10)
	assert.NoError(t, err)
	assert.NotNil(t, empty.Items)

	_, err = settings.AddBundle("b6", "", nil, 0, 10)
	assert.Equal(t, "Fill bundle name and price.", ruleMessage(t, err))

	assert.NoError(t, settings.RemoveBundle("b3"))
	assert.True(t, rules.IsNotFound(settings.RemoveBundle("b3")))
}

func TestSettings_Promos(t *testing.T) {
	settings := rules.DefaultSettings()

	promo, err := settings.AddPromo(" summer5 ", "PERCENT", 5, 0)
	assert.NoError(t, err)
	assert.Equal(t, "SUMMER5", promo.Code)
	assert.Equal(t, 100, promo.UsesLeft)
	assert.True(t, promo.Active)

	_, err = settings.AddPromo("Summer5", rules.PromoTypeFixed, 5, 1)
	assert.Equal(t, "Code already exists.", ruleMessage(t, err))

	_, err = settings.AddPromo("FREE", "bogus", 5, 1)
	assert.Equal(t, "Fill all promo code fields.", ruleMessage(t, err))

	toggled, err := settings.TogglePromo("summer5")
	assert.NoError(t, err)
	assert.False(t, toggled.Active)
	assert.False(t, settings.RedeemPromo("SUMMER5"))

	assert.NoError(t, settings.RemovePromo("SUMMER5"))
	assert.True(t, rules.IsNotFound(settings.RemovePromo("SUMMER5")))
}

func TestSettings_RedeemPromo(t *testing.T) {
	settings := rules.DefaultSettings()
	settings.PromoCodes = []rules.PromoCode{{Code: "ONCE", Type: rules.PromoTypeFixed, Value: 10, UsesLeft: 1, Active: true}}

	assert.True(t, settings.RedeemPromo("once"))
	assert.Equal(t, 0, settings.PromoCodes[0].UsesLeft)

	assert.False(t, settings.RedeemPromo("ONCE"))
	assert.Equal(t, 0, settings.PromoCodes[0].UsesLeft)

	assert.False(t, settings.RedeemPromo("MISSING"))
}
