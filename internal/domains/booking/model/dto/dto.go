package dto

import (
	"strings"
	"time"

	"courtbook/internal/domains/booking/model"
	"courtbook/internal/rules"
	"courtbook/shared"
	gDto "courtbook/shared/dto"
	gModel "courtbook/shared/model"
	"courtbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ConfirmBookingRequest struct {
	CourtID    string   `json:"court_id"   validate:"required"`
	Date       string   `json:"date"       validate:"required,datetime=2006-01-02"`
	Start      string   `json:"start"      validate:"required,clock"`
	End        string   `json:"end"        validate:"required,clock"`
	Player     string   `json:"player"     validate:"required,max=100"`
	Players    int      `json:"players"    validate:"omitempty"`
	Membership string   `json:"membership" validate:"omitempty,max=100"`
	Equipment  []string `json:"equipment"  validate:"omitempty,dive,required"`
	PromoCode  string   `json:"promo_code" validate:"omitempty,max=50"`
}

// Cost is the pricing request for this selection under membership.
func (c *ConfirmBookingRequest) Cost(membership string) rules.CostRequest {
	return rules.CostRequest{
		CourtID:      c.CourtID,
		Start:        c.Start,
		End:          c.End,
		MembershipID: membership,
		EquipmentIDs: c.Equipment,
		PromoCode:    c.PromoCode,
		Players:      c.Players,
	}
}

func (c *ConfirmBookingRequest) ToModel(user, email string, court rules.Court, membership string, equipment []string, cost int) model.Booking {
	now := timezone.Now()

	if equipment == nil {
		equipment = []string{}
	}

	return model.Booking{
		ID:         model.IDPrefix + uuid.NewString(),
		CourtID:    court.ID,
		CourtName:  court.Name,
		Sport:      court.Sport,
		Date:       c.Date,
		StartTime:  c.Start,
		EndTime:    c.End,
		Player:     strings.TrimSpace(c.Player),
		UserEmail:  email,
		Membership: membership,
		Equipment:  pq.StringArray(equipment),
		Players:    c.Players,
		Cost:       cost,
		Status:     rules.StatusConfirmed,
		Metadata:   gModel.NewMetadata(user, now),
	}
}

type QuoteRequest struct {
	CourtID    string   `json:"court_id"   validate:"required"`
	Start      string   `json:"start"      validate:"required,clock"`
	End        string   `json:"end"        validate:"required,clock"`
	Players    int      `json:"players"    validate:"omitempty"`
	Membership string   `json:"membership" validate:"omitempty"`
	Equipment  []string `json:"equipment"  validate:"omitempty"`
	PromoCode  string   `json:"promo_code" validate:"omitempty"`
}

func (q *QuoteRequest) ToRules() rules.CostRequest {
	return rules.CostRequest{
		CourtID:      q.CourtID,
		Start:        q.Start,
		End:          q.End,
		MembershipID: q.Membership,
		EquipmentIDs: q.Equipment,
		PromoCode:    q.PromoCode,
		Players:      q.Players,
	}
}

type QuoteResponse struct {
	rules.CostBreakdown
	PromoApplied bool `json:"promo_applied"`
}

type BookingResponse struct {
	ID         string   `json:"id"`
	CourtID    string   `json:"court_id"`
	CourtName  string   `json:"court_name"`
	Sport      string   `json:"sport"`
	Date       string   `json:"date"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Player     string   `json:"player"`
	UserEmail  string   `json:"user_email"`
	Membership string   `json:"membership"`
	Equipment  []string `json:"equipment"`
	Players    int      `json:"players"`
	Cost       int      `json:"cost"`
	Status     string   `json:"status"`
	IsEvent    bool     `json:"is_event"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CourtID = model.CourtID
	r.CourtName = model.CourtName
	r.Sport = model.Sport
	r.Date = model.Date
	r.Start = model.StartTime
	r.End = model.EndTime
	r.Player = model.Player
	r.UserEmail = model.UserEmail
	r.Membership = model.Membership
	r.Equipment = []string(model.Equipment)
	r.Players = model.Players
	r.Cost = model.Cost
	r.Status = model.Status
	r.IsEvent = model.IsEvent
	r.Metadata = gDto.MetadataFrom(model.Metadata)

	if r.Equipment == nil {
		r.Equipment = []string{}
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type SlotsResponse struct {
	CourtID string            `json:"court_id"`
	Date    string            `json:"date"`
	Slots   []rules.SlotState `json:"slots"`
}

type LockRequest struct {
	CourtID string `json:"court_id" validate:"required"`
	Date    string `json:"date"     validate:"required,datetime=2006-01-02"`
	Start   string `json:"start"    validate:"required,clock"`
	End     string `json:"end"      validate:"required,clock"`
}

func (l *LockRequest) Key() rules.LockKey {
	return rules.LockKey{CourtID: l.CourtID, Date: l.Date, Start: l.Start, End: l.End}
}

type LockResponse struct {
	Locked    bool      `json:"locked"`
	Holder    string    `json:"holder,omitempty"`
	Priority  int       `json:"priority,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func (r *LockResponse) FromRules(lock *rules.Lock) {
	if lock == nil {
		return
	}

	r.Locked = true
	r.Holder = lock.Holder
	r.Priority = lock.Priority
	r.ExpiresAt = lock.ExpiresAt
}

// Filter carries the admin listing filters. Empty fields are ignored.
type Filter struct {
	CourtID   string
	Date      string
	Status    string
	UserEmail string
}

func (f Filter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	add := func(field, value string) {
		if value == "" {
			return
		}

		group.Filters = append(group.Filters, gDto.Filter{
			Field:    field,
			Value:    value,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	add(model.FieldCourtID, f.CourtID)
	add(model.FieldDate, f.Date)
	add(model.FieldStatus, f.Status)
	add(model.FieldUserEmail, strings.ToLower(f.UserEmail))

	return group
}
