package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"courtbook/config"
	"courtbook/infras/otel/mocks"
	bookingMocks "courtbook/internal/domains/booking/mocks"
	"courtbook/internal/domains/booking/model"
	"courtbook/internal/domains/booking/model/dto"
	"courtbook/internal/domains/booking/service"
	notificationMocks "courtbook/internal/domains/notification/mocks"
	notificationModel "courtbook/internal/domains/notification/model"
	settingsMocks "courtbook/internal/domains/settings/mocks"
	waitlistMocks "courtbook/internal/domains/waitlist/mocks"
	waitlistModel "courtbook/internal/domains/waitlist/model"
	eventsMocks "courtbook/internal/events/mocks"
	"courtbook/internal/rules"
	"courtbook/internal/state"
	stateMocks "courtbook/internal/state/mocks"
	cacheMocks "courtbook/shared/cache/mocks"
	"courtbook/shared/constant"
	"courtbook/shared/failure"
)

const (
	testDate  = "2026-10-20"
	testEmail = "ana@example.com"
)

type fixture struct {
	repo          *bookingMocks.MockBooking
	waitlist      *waitlistMocks.MockWaitlist
	settings      *settingsMocks.MockSettingsService
	notifications *notificationMocks.MockNotificationService
	loader        *stateMocks.MockLoader
	publisher     *eventsMocks.MockPublisher
	cache         *cacheMocks.MockRedisCache
	locks         *rules.LockManager
	store         *state.Store
	svc           service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:          bookingMocks.NewMockBooking(ctrl),
		waitlist:      waitlistMocks.NewMockWaitlist(ctrl),
		settings:      settingsMocks.NewMockSettingsService(ctrl),
		notifications: notificationMocks.NewMockNotificationService(ctrl),
		loader:        stateMocks.NewMockLoader(ctrl),
		publisher:     eventsMocks.NewMockPublisher(ctrl),
		locks:         rules.NewLockManager(rules.NewMemoryLockStore(), time.Minute),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	f.cache = mockCache
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Booking.DefaultMaxPlayers = rules.DefaultMaxPlayers

	f.store = state.New(f.loader, mocks.NewOtel())
	f.svc = service.New(
		f.repo, f.waitlist, f.settings, f.notifications, f.locks,
		f.store, f.publisher, cfg, mockCache, mocks.NewOtel(),
	)

	return f
}

func testSnapshot() rules.Snapshot {
	return rules.Snapshot{
		Courts: []rules.Court{
			{ID: "c1", Name: "Court A", Sport: "badminton", BaseRate: 100, MaxPlayers: 4, Active: true},
			{ID: "c2", Name: "Court B", Sport: "futsal", BaseRate: 250, Active: false},
		},
		Bookings: []rules.Booking{
			{
				ID: "bk_1", CourtID: "c1", Date: testDate, Start: "08:00", End: "09:00",
				Player: "Budi", Membership: rules.MembershipNone, Players: 2, Status: rules.StatusConfirmed,
			},
		},
		Settings: rules.DefaultSettings(),
	}
}

func userContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, testEmail)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func confirmRequest() dto.ConfirmBookingRequest {
	return dto.ConfirmBookingRequest{
		CourtID: "c1",
		Date:    testDate,
		Start:   "10:00",
		End:     "11:00",
		Player:  "Ana",
		Players: 2,
	}
}

func TestBookingService_Confirm(t *testing.T) {
	tests := []struct {
		name      string
		req       func() dto.ConfirmBookingRequest
		snapshot  func() rules.Snapshot
		setupMock func(f *fixture)
		wantCode  int
		wantMsg   string
		wantCost  int
	}{
		{
			name: "successful confirmation with equipment and promo",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.Equipment = []string{"racket", "unknown"}
				req.PromoCode = "WELCOME10"

				return req
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, []string{"racket"}, []string(booking.Equipment))
						assert.Equal(t, testEmail, booking.UserEmail)

						return nil
					})

				f.settings.EXPECT().
					RedeemPromo(gomock.Any(), "WELCOME10").
					Return(true, nil)

				f.notifications.EXPECT().
					Push(gomock.Any(), notificationModel.TypeSuccess,
						"Booking confirmed: Ana booked Court A on 2026-10-20 10:00–11:00. Total: Rs.135.")

				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
			wantCost: 135,
		},
		{
			name: "verified member gets tier discount",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.Membership = "Premium"

				return req
			},
			snapshot: func() rules.Snapshot {
				snap := testSnapshot()
				snap.Settings.VerifiedMembers = []rules.VerifiedMember{{Email: testEmail, MembershipID: "Premium"}}

				return snap
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.notifications.EXPECT().Push(gomock.Any(), notificationModel.TypeSuccess, gomock.Any())
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
			wantCost: 85,
		},
		{
			name: "unknown court",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.CourtID = "missing"

				return req
			},
			setupMock: func(f *fixture) {},
			wantCode:  http.StatusNotFound,
			wantMsg:   "court not found",
		},
		{
			name: "inactive court",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.CourtID = "c2"

				return req
			},
			setupMock: func(f *fixture) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "This court is no longer active.",
		},
		{
			name: "blank player name",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.Player = "   "

				return req
			},
			setupMock: func(f *fixture) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Enter your name.",
		},
		{
			name: "end before start",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.Start, req.End = "11:00", "10:00"

				return req
			},
			setupMock: func(f *fixture) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "End time must be after start time.",
		},
		{
			name: "too many players",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.Players = 5

				return req
			},
			setupMock: func(f *fixture) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Players must be between 1 and 4.",
		},
		{
			name: "unverified membership",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.Membership = "Academy"

				return req
			},
			setupMock: func(f *fixture) {},
			wantCode:  http.StatusForbidden,
			wantMsg:   "You are not verified for this membership tier.",
		},
		{
			name: "blocked slot",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.Start, req.End = "12:00", "13:00"

				return req
			},
			snapshot: func() rules.Snapshot {
				snap := testSnapshot()
				snap.Settings.TimeSlots.Blocked = []rules.BlockedPeriod{
					{Label: "Maintenance", CourtID: rules.CourtScopeAll, Start: "12:00", End: "14:00"},
				}

				return snap
			},
			setupMock: func(f *fixture) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "This slot is blocked: Maintenance.",
		},
		{
			name: "overlapping booking suggests waitlist",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.Start, req.End = "08:30", "09:30"

				return req
			},
			setupMock: func(f *fixture) {},
			wantCode:  http.StatusConflict,
			wantMsg:   "Slot was just booked by someone else. Join the waitlist to be notified.",
		},
		{
			name: "overlapping booking without waitlist",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.Start, req.End = "08:00", "09:00"

				return req
			},
			snapshot: func() rules.Snapshot {
				snap := testSnapshot()
				snap.Settings.Features.Waitlist = false

				return snap
			},
			setupMock: func(f *fixture) {},
			wantCode:  http.StatusConflict,
			wantMsg:   "Slot was just booked by someone else.",
		},
		{
			name: "slot locked by higher priority user",
			req:  confirmRequest,
			setupMock: func(f *fixture) {
				key := rules.LockKey{CourtID: "c1", Date: testDate, Start: "10:00", End: "11:00"}
				ok, err := f.locks.Acquire(context.Background(), key, "other@example.com", 3)
				require.NoError(t, err)
				require.True(t, ok)
			},
			wantCode: http.StatusConflict,
			wantMsg:  "Another user has priority on this slot.",
		},
		{
			name: "invalid promo code",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.PromoCode = "NOPE"

				return req
			},
			setupMock: func(f *fixture) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Invalid or expired promo code.",
		},
		{
			name: "promo ignored when feature is off",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.PromoCode = "NOPE"

				return req
			},
			snapshot: func() rules.Snapshot {
				snap := testSnapshot()
				snap.Settings.Features.PromoCodes = false

				return snap
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.notifications.EXPECT().Push(gomock.Any(), notificationModel.TypeSuccess, gomock.Any())
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
			wantCost: 100,
		},
		{
			name: "redeem failure does not fail the booking",
			req: func() dto.ConfirmBookingRequest {
				req := confirmRequest()
				req.PromoCode = "FLAT50"

				return req
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.settings.EXPECT().RedeemPromo(gomock.Any(), "FLAT50").Return(false, errors.New("redis down"))
				f.notifications.EXPECT().Push(gomock.Any(), notificationModel.TypeSuccess, gomock.Any())
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
			wantCost: 50,
		},
		{
			name: "repository error",
			req:  confirmRequest,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			snap := testSnapshot()
			if tt.snapshot != nil {
				snap = tt.snapshot()
			}

			f.loader.EXPECT().Load(gomock.Any()).Return(snap, nil)
			tt.setupMock(f)

			res, err := f.svc.Confirm(userContext(), tt.req())

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, err.Error())
				}

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(res.ID, model.IDPrefix))
			assert.Equal(t, tt.wantCost, res.Cost)
			assert.Equal(t, rules.StatusConfirmed, res.Status)

			_, found := f.store.Snapshot().Booking(res.ID)
			assert.True(t, found)
		})
	}
}

func TestBookingService_Confirm_ReleasesLock(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(gomock.Any()).Return(testSnapshot(), nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

	_, err := f.svc.Confirm(userContext(), confirmRequest())
	require.Error(t, err)

	lock, err := f.locks.Pending(context.Background(), rules.LockKey{CourtID: "c1", Date: testDate, Start: "10:00", End: "11:00"})
	require.NoError(t, err)
	assert.Nil(t, lock)
}

func TestBookingService_Confirm_StaleState(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(gomock.Any()).Return(testSnapshot(), nil)
	require.NoError(t, f.store.Refresh(context.Background()))

	f.loader.EXPECT().Load(gomock.Any()).Return(rules.Snapshot{}, errors.New("database error"))
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.notifications.EXPECT().Push(gomock.Any(), notificationModel.TypeSuccess, gomock.Any())
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

	res, err := f.svc.Confirm(userContext(), confirmRequest())

	require.NoError(t, err)
	assert.Equal(t, 100, res.Cost)
}

func TestBookingService_Quote(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(gomock.Any()).Return(testSnapshot(), nil)
	require.NoError(t, f.store.Refresh(context.Background()))

	res, err := f.svc.Quote(context.Background(), dto.QuoteRequest{
		CourtID:   "c1",
		Start:     "08:00",
		End:       "09:00",
		PromoCode: "FLAT50",
	})

	require.NoError(t, err)
	assert.Equal(t, 100, res.Base)
	assert.Equal(t, 30, res.PeakSurcharge)
	assert.Equal(t, 50, res.PromoSaving)
	assert.Equal(t, 80, res.Total)
	assert.True(t, res.PromoApplied)

	_, err = f.svc.Quote(context.Background(), dto.QuoteRequest{CourtID: "missing", Start: "08:00", End: "09:00"})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_Slots(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(gomock.Any()).Return(testSnapshot(), nil)
	require.NoError(t, f.store.Refresh(context.Background()))

	_, err := f.locks.Acquire(context.Background(), rules.LockKey{CourtID: "c1", Date: testDate, Start: "10:00", End: "11:00"}, "other@example.com", 0)
	require.NoError(t, err)

	_, err = f.locks.Acquire(context.Background(), rules.LockKey{CourtID: "c1", Date: testDate, Start: "11:00", End: "12:00"}, testEmail, 0)
	require.NoError(t, err)

	res, err := f.svc.Slots(userContext(), "c1", testDate)
	require.NoError(t, err)

	states := map[string]string{}
	for _, slot := range res.Slots {
		states[slot.Start] = slot.State
	}

	assert.Equal(t, rules.SlotBooked, states["08:00"])
	assert.Equal(t, rules.SlotLocked, states["10:00"])
	assert.Equal(t, rules.SlotAvailable, states["11:00"])
	assert.Equal(t, rules.SlotAvailable, states["12:00"])

	_, err = f.svc.Slots(userContext(), "missing", testDate)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_Cancel(t *testing.T) {
	existing := model.Booking{
		ID:        "bk_1",
		CourtID:   "c1",
		CourtName: "Court A",
		Date:      testDate,
		StartTime: "08:00",
		EndTime:   "09:00",
		Player:    "Ana",
		UserEmail: testEmail,
		Players:   2,
		Status:    rules.StatusConfirmed,
	}

	tests := []struct {
		name      string
		ctx       func() context.Context
		setupMock func(f *fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name: "owner cancels and waitlist is mentioned",
			ctx:  userContext,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.waitlist.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]waitlistModel.Entry{{Player: "Citra"}, {Player: "Dewi"}, {Player: "Citra"}}, nil)
				f.notifications.EXPECT().
					Push(gomock.Any(), notificationModel.TypeWarning,
						"Booking cancelled: Ana, Court A 2026-10-20 08:00–09:00. Waitlist: Citra, Dewi.")
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "admin cancels another user's booking",
			ctx: func() context.Context {
				ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@example.com")

				return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.waitlist.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.notifications.EXPECT().
					Push(gomock.Any(), notificationModel.TypeWarning, "Booking cancelled: Ana, Court A 2026-10-20 08:00–09:00.")
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "other user is forbidden",
			ctx: func() context.Context {
				return context.WithValue(context.Background(), constant.ContextKeyUserEmail, "eve@example.com")
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
			},
			wantCode: http.StatusForbidden,
			wantMsg:  "You can only cancel your own bookings.",
		},
		{
			name: "already cancelled",
			ctx:  userContext,
			setupMock: func(f *fixture) {
				cancelled := existing
				cancelled.Status = rules.StatusCancelled

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Booking is already cancelled.",
		},
		{
			name: "booking not found",
			ctx:  userContext,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "update error",
			ctx:  userContext,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.loader.EXPECT().Load(gomock.Any()).Return(testSnapshot(), nil)
			require.NoError(t, f.store.Refresh(context.Background()))

			tt.setupMock(f)

			res, err := f.svc.Cancel(tt.ctx(), existing.ID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, err.Error())
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, rules.StatusCancelled, res.Status)

			booking, found := f.store.Snapshot().Booking(existing.ID)
			require.True(t, found)
			assert.Equal(t, rules.StatusCancelled, booking.Status)
			assert.False(t, f.store.Snapshot().CheckConflict("c1", testDate, "08:00", "09:00", constant.Empty))
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	existing := model.Booking{
		ID: "bk_1", CourtID: "c1", CourtName: "Court A", Date: testDate, StartTime: "08:00", EndTime: "09:00",
		Player: "Ana", UserEmail: testEmail, Players: 2, Status: rules.StatusConfirmed,
	}

	otherUser := func() context.Context {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "eve@example.com")

		return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
	}

	adminUser := func() context.Context {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@example.com")

		return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
	}

	cacheHit := func(f *fixture) {
		f.cache.EXPECT().
			Get(gomock.Any(), "booking:get:bk_1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				value.(*dto.BookingResponse).FromModel(existing)

				return nil
			})
	}

	cacheMiss := func(f *fixture) {
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
	}

	tests := []struct {
		name      string
		ctx       func() context.Context
		setupMock func(f *fixture)
		wantCode  int
	}{
		{name: "owner reads from repository", ctx: userContext, setupMock: cacheMiss},
		{name: "admin reads another user's booking", ctx: adminUser, setupMock: cacheMiss},
		{name: "other user is forbidden", ctx: otherUser, setupMock: cacheMiss, wantCode: http.StatusForbidden},
		{name: "other user is forbidden on cache hit", ctx: otherUser, setupMock: cacheHit, wantCode: http.StatusForbidden},
		{name: "anonymous caller is forbidden", ctx: context.Background, setupMock: cacheHit, wantCode: http.StatusForbidden},
		{
			name: "booking not found",
			ctx:  userContext,
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(tt.ctx(), existing.ID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Empty(t, res.UserEmail)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testEmail, res.UserEmail)
		})
	}
}

func TestBookingService_Purge(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "successful purge",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "no rows deleted",
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
			f := newFixture(t)

			f.loader.EXPECT().Load(gomock.Any()).Return(testSnapshot(), nil)
			require.NoError(t, f.store.Refresh(context.Background()))

			tt.setupMock(f)

			err := f.svc.Purge(context.Background(), "bk_1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				_, found := f.store.Snapshot().Booking("bk_1")
				assert.True(t, found)

				return
			}

			require.NoError(t, err)

			_, found := f.store.Snapshot().Booking("bk_1")
			assert.False(t, found)
		})
	}
}

func TestBookingService_Lock(t *testing.T) {
	f := newFixture(t)

	req := dto.LockRequest{CourtID: "c1", Date: testDate, Start: "10:00", End: "11:00"}

	res, err := f.svc.Lock(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.Locked)

	_, err = f.locks.Acquire(context.Background(), req.Key(), testEmail, 2)
	require.NoError(t, err)

	res, err = f.svc.Lock(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Locked)
	assert.Equal(t, testEmail, res.Holder)
	assert.Equal(t, 2, res.Priority)
}
