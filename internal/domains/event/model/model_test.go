package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	bookingModel "courtbook/internal/domains/booking/model"
	"courtbook/internal/domains/event/model"
)

func TestNameOf(t *testing.T) {
	name, ok := model.NameOf("[EVENT] Summer Cup")
	assert.True(t, ok)
	assert.Equal(t, "Summer Cup", name)

	_, ok = model.NameOf("Ana")
	assert.False(t, ok)
}

func TestGroup(t *testing.T) {
	bookings := []bookingModel.Booking{
		{CourtID: "c1", CourtName: "Court A", Date: "2026-10-24", Player: "[EVENT] Cup", IsEvent: true},
		{CourtID: "c1", CourtName: "Court A", Date: "2026-10-24", Player: "Ana"},
		{CourtID: "c2", CourtName: "Court B", Date: "2026-10-24", Player: "[EVENT] Cup", IsEvent: true},
		{CourtID: "c2", CourtName: "Court B", Date: "2026-10-24", Player: "[EVENT] Clinic", IsEvent: true},
		{CourtID: "c3", CourtName: "Court C", Date: "2026-10-24", Player: "[EVENT] Fake"},
	}

	events := model.Group(bookings)

	assert.Len(t, events, 2)
	assert.Equal(t, "Cup", events[0].Name)
	assert.Equal(t, []string{"c1", "c2"}, events[0].CourtIDs)
	assert.Equal(t, "Clinic", events[1].Name)
	assert.Equal(t, []string{"Court B"}, events[1].Courts)
}
