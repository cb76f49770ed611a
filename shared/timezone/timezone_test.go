package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/shared/constant"
	"courtbook/shared/timezone"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want string
	}{
		{name: "empty falls back to UTC", zone: "", want: "UTC"},
		{name: "unknown falls back to UTC", zone: "Mars/Olympus_Mons", want: "UTC"},
		{name: "iana name", zone: "Asia/Jakarta", want: "Asia/Jakarta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.Load(tt.zone).String())
		})
	}
}

func TestNowUsesFacilityLocation(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	_, err := time.Parse(constant.DayLayout, today)
	require.NoError(t, err)
	assert.Len(t, today, len(constant.DayLayout))
}

func TestMinuteOfDay(t *testing.T) {
	assert.Equal(t, 0, timezone.MinuteOfDay(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 17*60+45, timezone.MinuteOfDay(time.Date(2026, 10, 20, 17, 45, 59, 0, time.UTC)))
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse(constant.DayLayout, "2026-10-20")
	require.NoError(t, err)

	assert.Equal(t, timezone.GetLocation(), parsed.Location())
	assert.Equal(t, "2026-10-20", timezone.Format(parsed, constant.DayLayout))
}
