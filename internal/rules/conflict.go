package rules

// CheckConflict reports whether [start,end) on court/date overlaps any
// non-cancelled booking other than excludeID.
func (s Snapshot) CheckConflict(courtID, date, start, end, excludeID string) bool {
	from, to, ok := span(start, end)
	if !ok {
		return false
	}

	for _, b := range s.Bookings {
		if b.ID == excludeID || b.CourtID != courtID || b.Date != date || !b.active() {
			continue
		}

		bFrom, bTo, valid := span(b.Start, b.End)
		if !valid {
			continue
		}

		if Overlaps(from, to, bFrom, bTo) {
			return true
		}
	}

	return false
}

// SlotPlayerCount sums players over bookings that occupy exactly [start,end).
func (s Snapshot) SlotPlayerCount(courtID, date, start, end string) int {
	total := 0

	for _, b := range s.Bookings {
		if b.CourtID == courtID && b.Date == date && b.active() && b.Start == start && b.End == end {
			total += b.headcount()
		}
	}

	return total
}

// CheckCapacity compares current+requested against the court limit. A court
// without a limit always fits.
func CheckCapacity(court Court, current, requested int) (remaining int, ok bool) {
	if court.MaxPlayers <= 0 {
		return -1, true
	}

	remaining = max(0, court.MaxPlayers-current)

	return remaining, current+requested <= court.MaxPlayers
}

// MaxPlayers is the per-booking player ceiling for a court.
func MaxPlayers(court Court, fallback int) int {
	if court.MaxPlayers > 0 {
		return court.MaxPlayers
	}

	if fallback > 0 {
		return fallback
	}

	return DefaultMaxPlayers
}

// IsBlocked returns the first blocked period covering court during [start,end).
func (s Snapshot) IsBlocked(courtID, start, end string) (BlockedPeriod, bool) {
	from, to, ok := span(start, end)
	if !ok {
		return BlockedPeriod{}, false
	}

	for _, period := range s.Settings.TimeSlots.Blocked {
		if period.CourtID != CourtScopeAll && period.CourtID != courtID {
			continue
		}

		pFrom, pTo, valid := span(period.Start, period.End)
		if !valid {
			continue
		}

		if Overlaps(from, to, pFrom, pTo) {
			return period, true
		}
	}

	return BlockedPeriod{}, false
}
