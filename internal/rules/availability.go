package rules

const (
	SlotAvailable = "available"
	SlotBooked    = "booked"
	SlotEvent     = "event"
	SlotBlocked   = "blocked"
	SlotLocked    = "locked"
)

type SlotState struct {
	Slot
	State         string `json:"state"`
	Label         string `json:"label,omitempty"`
	PlayersBooked int    `json:"players_booked"`
	SpotsLeft     int    `json:"spots_left"`
}

// Availability classifies every generated slot for court on date. SpotsLeft
// is -1 when the court has no capacity limit or capacity is switched off.
func (s Snapshot) Availability(courtID, date string) []SlotState {
	court, found := s.Court(courtID)
	slots := GenerateSlots(s.Settings.TimeSlots)
	states := make([]SlotState, 0, len(slots))

	for _, slot := range slots {
		state := SlotState{Slot: slot, State: SlotAvailable, SpotsLeft: -1}
		state.PlayersBooked = s.SlotPlayerCount(courtID, date, slot.Start, slot.End)

		if found && s.Settings.Features.SlotCapacity && court.MaxPlayers > 0 {
			state.SpotsLeft, _ = CheckCapacity(court, state.PlayersBooked, 0)
		}

		switch {
		case !found:
			state.State = SlotBlocked
		case s.eventOn(courtID, date, slot):
			state.State = SlotEvent
		case s.CheckConflict(courtID, date, slot.Start, slot.End, ""):
			state.State = SlotBooked
		}

		if state.State == SlotAvailable {
			if period, blocked := s.IsBlocked(courtID, slot.Start, slot.End); blocked {
				state.State = SlotBlocked
				state.Label = period.Label
			}
		}

		states = append(states, state)
	}

	return states
}

func (s Snapshot) eventOn(courtID, date string, slot Slot) bool {
	for _, b := range s.Bookings {
		if b.IsEvent && b.active() && b.CourtID == courtID && b.Date == date && b.Start == slot.Start && b.End == slot.End {
			return true
		}
	}

	return false
}
