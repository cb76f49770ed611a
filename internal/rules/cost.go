package rules

import (
	"math"
	"slices"
	"strings"
)

// precision trims binary floating-point noise before rounding, e.g. 100*(1.3-1).
const precision = 1e6

type CostRequest struct {
	CourtID      string
	Start        string
	End          string
	MembershipID string
	EquipmentIDs []string
	PromoCode    string
	Players      int
}

type CostBreakdown struct {
	Base            int `json:"base"`
	PeakSurcharge   int `json:"peak_surcharge"`
	MemberSaving    int `json:"member_saving"`
	EquipCost       int `json:"equip_cost"`
	PromoSaving     int `json:"promo_saving"`
	Total           int `json:"total"`
	DurationMinutes int `json:"duration_minutes"`
}

// Bookable reports whether the breakdown describes a real, positive-length booking.
func (c CostBreakdown) Bookable() bool {
	return c.DurationMinutes > 0
}

func roundUp(v float64) int {
	return int(math.Ceil(math.Round(v*precision) / precision))
}

func roundDown(v float64) int {
	return int(math.Floor(math.Round(v*precision) / precision))
}

// CalcCost prices a tentative booking. Charges round up and savings round
// down. An unknown court or an empty or malformed time range prices to zero.
func (s Snapshot) CalcCost(req CostRequest) CostBreakdown {
	court, found := s.Court(req.CourtID)
	if !found {
		return CostBreakdown{}
	}

	start, end, ok := span(req.Start, req.End)
	if !ok || end <= start {
		return CostBreakdown{}
	}

	features := s.Settings.Features
	res := CostBreakdown{DurationMinutes: end - start}
	res.Base = roundUp(float64(res.DurationMinutes) / 60 * court.BaseRate)

	if features.DynamicPricing {
		res.PeakSurcharge = s.peakSurcharge(court.BaseRate, start, end)
	}

	if features.Memberships {
		tier := s.Tier(req.MembershipID)
		if tier.Discount > 0 {
			res.MemberSaving = roundDown(float64(res.Base+res.PeakSurcharge) * tier.Discount)
		}
	}

	if features.Equipment {
		for _, id := range req.EquipmentIDs {
			if item, exists := s.Equipment(id); exists {
				res.EquipCost += item.Price
			}
		}
	}

	subtotal := res.Base + res.PeakSurcharge - res.MemberSaving + res.EquipCost

	if features.PromoCodes && req.PromoCode != "" {
		if promo, exists := s.Promo(req.PromoCode); exists && promo.Redeemable() {
			res.PromoSaving = promoSaving(promo, subtotal)
		}
	}

	res.Total = max(0, subtotal-res.PromoSaving)

	return res
}

func (s Snapshot) peakSurcharge(rate float64, start, end int) int {
	surcharge := 0

	for _, rule := range s.Settings.PeakRules {
		ruleStart, ruleEnd, ok := span(rule.Start, rule.End)
		if !ok {
			continue
		}

		overlap := max(0, min(end, ruleEnd)-max(start, ruleStart))
		if overlap > 0 {
			surcharge += roundUp(float64(overlap) / 60 * rate * (rule.Multiplier - 1))
		}
	}

	return surcharge
}

func promoSaving(promo PromoCode, subtotal int) int {
	switch strings.ToLower(promo.Type) {
	case PromoTypePercent:
		return roundDown(float64(subtotal) * promo.Value / 100)
	case PromoTypeFixed:
		return min(roundDown(promo.Value), subtotal)
	default:
		return 0
	}
}

// ResolvePromo returns the redeemable promo for code, if the feature is on.
func (s Snapshot) ResolvePromo(code string) (PromoCode, bool) {
	if !s.Settings.Features.PromoCodes {
		return PromoCode{}, false
	}

	promo, found := s.Promo(code)
	if !found || !promo.Redeemable() {
		return PromoCode{}, false
	}

	return promo, true
}

// KnownEquipment filters ids down to configured equipment, preserving order.
func (s Snapshot) KnownEquipment(ids []string) []string {
	return slices.DeleteFunc(slices.Clone(ids), func(id string) bool {
		_, found := s.Equipment(id)

		return !found
	})
}
