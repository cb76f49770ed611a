package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"courtbook/infras/otel/mocks"
	bookingMocks "courtbook/internal/domains/booking/mocks"
	bookingModel "courtbook/internal/domains/booking/model"
	courtMocks "courtbook/internal/domains/court/mocks"
	courtModel "courtbook/internal/domains/court/model"
	settingsMocks "courtbook/internal/domains/settings/mocks"
	settingsModel "courtbook/internal/domains/settings/model"
	"courtbook/internal/rules"
	"courtbook/internal/state"
	stateMocks "courtbook/internal/state/mocks"
	gModel "courtbook/shared/model"
)

func snapshot() rules.Snapshot {
	return rules.Snapshot{
		Courts: []rules.Court{{ID: "c1", Name: "Court A", Active: true}},
		Bookings: []rules.Booking{
			{ID: "bk_1", CourtID: "c1", Date: "2026-10-20", Start: "08:00", End: "09:00", Status: rules.StatusConfirmed},
		},
		Settings: rules.DefaultSettings(),
	}
}

func TestStore_New(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := state.New(stateMocks.NewMockLoader(ctrl), mocks.NewOtel())

	snap := store.Snapshot()
	assert.Empty(t, snap.Courts)
	assert.Empty(t, snap.Bookings)
	assert.Equal(t, rules.AllFeatures(), store.Features())
}

func TestStore_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := stateMocks.NewMockLoader(ctrl)
	store := state.New(loader, mocks.NewOtel())

	loader.EXPECT().Load(gomock.Any()).Return(snapshot(), nil)
	require.NoError(t, store.Refresh(context.Background()))
	assert.Len(t, store.Snapshot().Courts, 1)

	loader.EXPECT().Load(gomock.Any()).Return(rules.Snapshot{}, errors.New("database error"))
	assert.Error(t, store.Refresh(context.Background()))
	assert.Len(t, store.Snapshot().Courts, 1)
}

func TestStore_Mutations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := stateMocks.NewMockLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(snapshot(), nil)

	store := state.New(loader, mocks.NewOtel())
	require.NoError(t, store.Refresh(context.Background()))

	store.PutCourt(rules.Court{ID: "c1", Name: "Court A", Active: false})
	store.PutCourt(rules.Court{ID: "c2", Name: "Court B", Active: true})

	court, _ := store.Snapshot().Court("c1")
	assert.False(t, court.Active)
	assert.Len(t, store.Snapshot().Courts, 2)

	store.RemoveCourt("c2")
	assert.Len(t, store.Snapshot().Courts, 1)

	store.PutBookings([]rules.Booking{
		{ID: "bk_1", CourtID: "c1", Status: rules.StatusCancelled},
		{ID: "ev_1", CourtID: "c1", IsEvent: true, Player: "[EVENT] Cup"},
		{ID: "ev_2", CourtID: "c1", IsEvent: true, Player: "[EVENT] Cup"},
	})

	booking, _ := store.Snapshot().Booking("bk_1")
	assert.Equal(t, rules.StatusCancelled, booking.Status)

	removed := store.RemoveBookings(func(b rules.Booking) bool { return b.IsEvent })
	assert.Equal(t, 2, removed)

	store.RemoveBooking("bk_1")
	assert.Empty(t, store.Snapshot().Bookings)

	settings := rules.DefaultSettings()
	settings.Features.Events = false
	store.SetSettings(settings)
	assert.False(t, store.Features().Events)
}

func TestStore_SnapshotIsPrivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := stateMocks.NewMockLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(snapshot(), nil)

	store := state.New(loader, mocks.NewOtel())
	require.NoError(t, store.Refresh(context.Background()))

	snap := store.Snapshot()
	snap.Courts[0].Name = "Changed"
	snap.Settings.PromoCodes[0].UsesLeft = 0

	fresh := store.Snapshot()
	assert.Equal(t, "Court A", fresh.Courts[0].Name)
	assert.Equal(t, 100, fresh.Settings.PromoCodes[0].UsesLeft)
}

func TestLoader_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	courts := courtMocks.NewMockCourt(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)
	settings := settingsMocks.NewMockSettings(ctrl)

	loader := state.NewLoader(courts, bookings, settings)

	t.Run("assembles snapshot", func(t *testing.T) {
		courts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]courtModel.Court{{ID: "c1", Name: "Court A", BaseRate: 100, Active: true}}, nil)
		bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{{ID: "bk_1", CourtID: "c1", StartTime: "08:00", EndTime: "09:00"}}, nil)
		settings.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(settingsModel.AppSettings{
				ID:       settingsModel.SingletonID,
				Features: gModel.JSON[rules.Features]{Val: rules.AllFeatures()},
			}, nil)

		snap, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Len(t, snap.Courts, 1)
		assert.Equal(t, "08:00", snap.Bookings[0].Start)
		assert.True(t, snap.Settings.Features.Events)
	})

	t.Run("missing settings row", func(t *testing.T) {
		courts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		settings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(settingsModel.AppSettings{}, nil)

		_, err := loader.Load(context.Background())

		assert.Error(t, err)
	})

	t.Run("court query fails", func(t *testing.T) {
		courts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

		_, err := loader.Load(context.Background())

		assert.Error(t, err)
	})
}
