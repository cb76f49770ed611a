package dto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "courtbook/internal/domains/booking/model"
	"courtbook/internal/domains/event/model/dto"
	"courtbook/internal/rules"
)

func TestCreateEventRequest_ToBookings(t *testing.T) {
	req := dto.CreateEventRequest{
		Name: "Open Cup", Type: "tournament", Date: "2026-10-20", Start: "08:00", End: "12:00",
		CourtIDs: []string{"c1", "c2"},
	}

	bookings := req.ToBookings("admin-1", "admin@example.com", []rules.Court{
		{ID: "c1", Name: "Court A"},
		{ID: "c2", Name: "Court B"},
	})

	require.Len(t, bookings, 2)

	for i, b := range bookings {
		assert.True(t, strings.HasPrefix(b.ID, bookingModel.EventIDPrefix))
		assert.Equal(t, req.CourtIDs[i], b.CourtID)
		assert.Equal(t, "[EVENT] Open Cup", b.Player)
		assert.Zero(t, b.Players)
		assert.Zero(t, b.Cost)
		assert.True(t, b.IsEvent)
		assert.Equal(t, rules.StatusConfirmed, b.Status)
	}

	snap := rules.Snapshot{Bookings: []rules.Booking{bookings[0].ToRules()}}
	assert.Equal(t, 1, snap.SlotPlayerCount("c1", "2026-10-20", "08:00", "12:00"))
}
