package timezone

import (
	"sync"
	"time"

	"courtbook/config"
	"courtbook/shared/constant"

	"github.com/rs/zerolog/log"
)

var location = sync.OnceValue(func() *time.Location {
	return Load(config.Get().App.Timezone)
})

// Load resolves name to a location, falling back to UTC.
func Load(name string) *time.Location {
	if name == constant.Empty {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Facility timezone initialized")

	return loc
}

// GetLocation returns the facility timezone.
func GetLocation() *time.Location {
	return location()
}

// Now returns the current facility time.
func Now() time.Time {
	return time.Now().In(location())
}

// Today returns the current facility date as YYYY-MM-DD.
func Today() string {
	return Now().Format(constant.DayLayout)
}

// MinuteOfDay returns the minutes elapsed since midnight of t's wall clock.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Parse reads value as facility wall-clock time.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location()) //nolint:wrapcheck
}
