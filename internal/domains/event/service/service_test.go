package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"courtbook/infras/otel/mocks"
	bookingMocks "courtbook/internal/domains/booking/mocks"
	bookingModel "courtbook/internal/domains/booking/model"
	"courtbook/internal/domains/event/model/dto"
	"courtbook/internal/domains/event/service"
	notificationMocks "courtbook/internal/domains/notification/mocks"
	notificationModel "courtbook/internal/domains/notification/model"
	eventsMocks "courtbook/internal/events/mocks"
	"courtbook/internal/rules"
	"courtbook/internal/state"
	stateMocks "courtbook/internal/state/mocks"
	cacheMocks "courtbook/shared/cache/mocks"
	"courtbook/shared/failure"
)

const testDate = "2026-10-24"

type fixture struct {
	repo          *bookingMocks.MockBooking
	notifications *notificationMocks.MockNotificationService
	publisher     *eventsMocks.MockPublisher
	store         *state.Store
	svc           service.Event
}

func newFixture(t *testing.T, eventsOn bool) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	settings := rules.DefaultSettings()
	settings.Features.Events = eventsOn

	loader := stateMocks.NewMockLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(rules.Snapshot{
		Courts: []rules.Court{
			{ID: "c1", Name: "Court A", BaseRate: 100, Active: true},
			{ID: "c2", Name: "Court B", BaseRate: 100, Active: true},
		},
		Bookings: []rules.Booking{
			{ID: "bk_1", CourtID: "c2", Date: testDate, Start: "09:00", End: "10:00", Player: "Ana", Status: rules.StatusConfirmed},
			{ID: "ev_1", CourtID: "c1", Date: testDate, Start: "14:00", End: "16:00", Player: "[EVENT] Cup", Status: rules.StatusConfirmed, IsEvent: true},
			{ID: "ev_2", CourtID: "c2", Date: testDate, Start: "14:00", End: "16:00", Player: "[EVENT] Cup", Status: rules.StatusConfirmed, IsEvent: true},
		},
		Settings: settings,
	}, nil)

	store := state.New(loader, mocks.NewOtel())
	require.NoError(t, store.Refresh(context.Background()))

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f := &fixture{
		repo:          bookingMocks.NewMockBooking(ctrl),
		notifications: notificationMocks.NewMockNotificationService(ctrl),
		publisher:     eventsMocks.NewMockPublisher(ctrl),
		store:         store,
	}

	f.svc = service.New(f.repo, store, f.notifications, f.publisher, mockCache, mocks.NewOtel())

	return f
}

func TestEventService_Create(t *testing.T) {
	tournament := dto.CreateEventRequest{
		Name: "Open Day", Type: "badminton", Date: testDate, Start: "08:00", End: "12:00",
		CourtIDs: []string{"c1", "c2"},
	}

	tests := []struct {
		name      string
		eventsOn  bool
		req       dto.CreateEventRequest
		setupMock func(f *fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name:      "events disabled",
			eventsOn:  false,
			req:       tournament,
			setupMock: func(*fixture) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Events are disabled.",
		},
		{
			name:     "invalid time range",
			eventsOn: true,
			req: dto.CreateEventRequest{
				Name: "Open Day", Type: "badminton", Date: testDate, Start: "12:00", End: "08:00", CourtIDs: []string{"c1"},
			},
			setupMock: func(*fixture) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "End time must be after start time.",
		},
		{
			name:     "unknown court",
			eventsOn: true,
			req: dto.CreateEventRequest{
				Name: "Open Day", Type: "badminton", Date: testDate, Start: "08:00", End: "12:00", CourtIDs: []string{"c9"},
			},
			setupMock: func(*fixture) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name:      "court already booked",
			eventsOn:  true,
			req:       tournament,
			setupMock: func(*fixture) {},
			wantCode:  http.StatusConflict,
			wantMsg:   "Court B already has a booking in this time range.",
		},
		{
			name:     "transaction cannot start",
			eventsOn: true,
			req: dto.CreateEventRequest{
				Name: "Open Day", Type: "badminton", Date: testDate, Start: "08:00", End: "09:00", CourtIDs: []string{"c1", "c2"},
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().BeginTx(gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.eventsOn)
			tt.setupMock(f)

			_, err := f.svc.Create(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}

			assert.Len(t, f.store.Snapshot().Bookings, 3)
		})
	}
}

func TestEventService_GetAll(t *testing.T) {
	f := newFixture(t, true)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]bookingModel.Booking{
			{ID: "ev_1", CourtID: "c1", CourtName: "Court A", Sport: "futsal", Date: testDate, StartTime: "14:00", EndTime: "16:00", Player: "[EVENT] Cup", IsEvent: true},
			{ID: "ev_2", CourtID: "c2", CourtName: "Court B", Sport: "futsal", Date: testDate, StartTime: "14:00", EndTime: "16:00", Player: "[EVENT] Cup", IsEvent: true},
			{ID: "ev_3", CourtID: "c1", CourtName: "Court A", Sport: "yoga", Date: "2026-10-25", StartTime: "07:00", EndTime: "08:00", Player: "[EVENT] Cup", IsEvent: true},
		}, nil)

	res, err := f.svc.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Cup", res[0].Name)
	assert.Equal(t, []string{"c1", "c2"}, res[0].CourtIDs)
	assert.Equal(t, []string{"Court A", "Court B"}, res[0].Courts)
	assert.Equal(t, "2026-10-25", res[1].Date)
}

func TestEventService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "successful removal unblocks courts",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(2), nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
				f.notifications.EXPECT().Push(gomock.Any(), notificationModel.TypeInfo, "Event removed and courts unblocked.")
			},
		},
		{
			name: "nothing deleted",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "repository error",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), dto.DeleteEventRequest{Name: "Cup", Date: testDate})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Len(t, f.store.Snapshot().Bookings, 3)

				return
			}

			require.NoError(t, err)

			bookings := f.store.Snapshot().Bookings
			require.Len(t, bookings, 1)
			assert.Equal(t, "bk_1", bookings[0].ID)
		})
	}
}
