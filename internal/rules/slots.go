package rules

type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GenerateSlots lays fixed-width windows from open to close. An unusable
// configuration yields no slots rather than an error.
func GenerateSlots(cfg TimeSlotConfig) []Slot {
	duration := cfg.SlotDuration
	if duration == 0 {
		duration = DefaultSlotDuration
	}

	open, closing, ok := span(cfg.Open, cfg.Close)
	if !ok || duration < 0 || open >= closing {
		return []Slot{}
	}

	slots := make([]Slot, 0, (closing-open)/duration)
	for t := open; t+duration <= closing; t += duration {
		slots = append(slots, Slot{Start: FormatClock(t), End: FormatClock(t + duration)})
	}

	return slots
}
