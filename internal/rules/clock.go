package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

var ErrInvalidClock = errors.New("invalid clock time")

// ParseClock converts an HH:MM string into minutes after midnight. 24:00 is accepted as end of day.
func ParseClock(value string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	total := hour*60 + minute
	if hour < 0 || minute < 0 || minute > 59 || total > minutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	return total, nil
}

// FormatClock renders minutes after midnight as zero-padded HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// span parses a start/end pair. ok is false when either side is malformed.
func span(start, end string) (from, to int, ok bool) {
	from, err := ParseClock(start)
	if err != nil {
		return 0, 0, false
	}

	to, err = ParseClock(end)
	if err != nil {
		return 0, 0, false
	}

	return from, to, true
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}
