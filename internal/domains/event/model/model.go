package model

import (
	"strings"

	bookingModel "courtbook/internal/domains/booking/model"
)

// Event groups the synthetic bookings an administrator placed across courts.
type Event struct {
	Name     string
	Type     string
	Date     string
	Start    string
	End      string
	CourtIDs []string
	Courts   []string
}

// NameOf recovers the event name from a tagged player label.
func NameOf(player string) (string, bool) {
	return strings.CutPrefix(player, bookingModel.EventTag)
}

// Group folds event bookings into events keyed by name and date, keeping
// first-seen order.
func Group(bookings []bookingModel.Booking) []Event {
	var (
		events []Event
		index  = map[string]int{}
	)

	for _, b := range bookings {
		name, ok := NameOf(b.Player)
		if !b.IsEvent || !ok {
			continue
		}

		key := name + "|" + b.Date

		idx, seen := index[key]
		if !seen {
			idx = len(events)
			index[key] = idx
			events = append(events, Event{
				Name:  name,
				Type:  b.Sport,
				Date:  b.Date,
				Start: b.StartTime,
				End:   b.EndTime,
			})
		}

		events[idx].CourtIDs = append(events[idx].CourtIDs, b.CourtID)
		events[idx].Courts = append(events[idx].Courts, b.CourtName)
	}

	return events
}
