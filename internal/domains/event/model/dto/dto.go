package dto

import (
	bookingModel "courtbook/internal/domains/booking/model"
	"courtbook/internal/domains/event/model"
	"courtbook/internal/rules"
	gModel "courtbook/shared/model"
	"courtbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateEventRequest struct {
	Name     string   `json:"name"      validate:"required,max=100"`
	Type     string   `json:"type"      validate:"required,max=50"`
	Date     string   `json:"date"      validate:"required,datetime=2006-01-02"`
	Start    string   `json:"start"     validate:"required,clock"`
	End      string   `json:"end"       validate:"required,clock"`
	CourtIDs []string `json:"court_ids" validate:"required,min=1,dive,required"`
}

// ToBookings renders one blocking booking per court.
func (c *CreateEventRequest) ToBookings(user, email string, courts []rules.Court) []bookingModel.Booking {
	now := timezone.Now()
	bookings := make([]bookingModel.Booking, len(courts))

	for i, court := range courts {
		bookings[i] = bookingModel.Booking{
			ID:         bookingModel.EventIDPrefix + uuid.NewString(),
			CourtID:    court.ID,
			CourtName:  court.Name,
			Sport:      c.Type,
			Date:       c.Date,
			StartTime:  c.Start,
			EndTime:    c.End,
			Player:     bookingModel.EventPlayer(c.Name),
			UserEmail:  email,
			Membership: rules.MembershipNone,
			Equipment:  pq.StringArray{},
			Status:     rules.StatusConfirmed,
			IsEvent:    true,
			Metadata:   gModel.NewMetadata(user, now),
		}
	}

	return bookings
}

type DeleteEventRequest struct {
	Name string `json:"name" validate:"required"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type EventResponse struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Date     string   `json:"date"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	CourtIDs []string `json:"court_ids"`
	Courts   []string `json:"courts"`
}

func (r *EventResponse) FromModel(event model.Event) {
	r.Name = event.Name
	r.Type = event.Type
	r.Date = event.Date
	r.Start = event.Start
	r.End = event.End
	r.CourtIDs = event.CourtIDs
	r.Courts = event.Courts
}
