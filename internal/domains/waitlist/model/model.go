package model

import "courtbook/shared/model"

const (
	TableName  = "waitlist"
	EntityName = "waitlist"

	FieldID        = "id"
	FieldCourtID   = "court_id"
	FieldDate      = "booking_date"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldUserEmail = "user_email"
)

type Entry struct {
	ID        string `db:"id"`
	CourtID   string `db:"court_id"`
	CourtName string `db:"court_name"`
	Date      string `db:"booking_date"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	Player    string `db:"player"`
	UserEmail string `db:"user_email"`
	model.Metadata
}
