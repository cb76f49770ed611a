package model

import (
	"courtbook/internal/rules"
	"courtbook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	IDPrefix      = "bk_"
	EventIDPrefix = "ev_"
	EventTag      = "[EVENT] "

	FieldID         = "id"
	FieldCourtID    = "court_id"
	FieldCourtName  = "court_name"
	FieldSport      = "sport"
	FieldDate       = "booking_date"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldPlayer     = "player"
	FieldUserEmail  = "user_email"
	FieldMembership = "membership"
	FieldEquipment  = "equipment"
	FieldPlayers    = "players"
	FieldCost       = "cost"
	FieldStatus     = "status"
	FieldIsEvent    = "is_event"
)

type Booking struct {
	ID         string         `db:"id"`
	CourtID    string         `db:"court_id"`
	CourtName  string         `db:"court_name"`
	Sport      string         `db:"sport"`
	Date       string         `db:"booking_date"`
	StartTime  string         `db:"start_time"`
	EndTime    string         `db:"end_time"`
	Player     string         `db:"player"`
	UserEmail  string         `db:"user_email"`
	Membership string         `db:"membership"`
	Equipment  pq.StringArray `db:"equipment"`
	Players    int            `db:"players"`
	Cost       int            `db:"cost"`
	Status     string         `db:"status"`
	IsEvent    bool           `db:"is_event"`
	model.Metadata
}

func (b Booking) ToRules() rules.Booking {
	return rules.Booking{
		ID:         b.ID,
		CourtID:    b.CourtID,
		Date:       b.Date,
		Start:      b.StartTime,
		End:        b.EndTime,
		Player:     b.Player,
		UserEmail:  b.UserEmail,
		Membership: b.Membership,
		Players:    b.Players,
		Cost:       b.Cost,
		Status:     b.Status,
		IsEvent:    b.IsEvent,
	}
}

// EventPlayer is the player label carried by every booking of a named event.
func EventPlayer(name string) string {
	return EventTag + name
}
