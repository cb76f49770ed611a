package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"courtbook/config"
	"courtbook/infras/otel"
	"courtbook/internal/domains/booking/model"
	"courtbook/internal/domains/booking/model/dto"
	"courtbook/internal/domains/booking/repository"
	notificationModel "courtbook/internal/domains/notification/model"
	notificationService "courtbook/internal/domains/notification/service"
	settingsService "courtbook/internal/domains/settings/service"
	waitlistModel "courtbook/internal/domains/waitlist/model"
	waitlistRepo "courtbook/internal/domains/waitlist/repository"
	"courtbook/internal/events"
	"courtbook/internal/rules"
	"courtbook/internal/state"
	"courtbook/shared"
	"courtbook/shared/cache"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"
	"courtbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Confirm(ctx context.Context, req dto.ConfirmBookingRequest) (dto.BookingResponse, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	Slots(ctx context.Context, courtID, date string) (dto.SlotsResponse, error)
	Me(ctx context.Context) ([]dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.Filter) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	Purge(ctx context.Context, id string) error
	Lock(ctx context.Context, req dto.LockRequest) (dto.LockResponse, error)
}

type serviceImpl struct {
	repo          repository.Booking
	waitlist      waitlistRepo.Waitlist
	settings      settingsService.Settings
	notifications notificationService.Notification
	locks         *rules.LockManager
	state         *state.Store
	events        events.Publisher
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
}

func New(
	repo repository.Booking,
	waitlist waitlistRepo.Waitlist,
	settings settingsService.Settings,
	notifications notificationService.Notification,
	locks *rules.LockManager,
	store *state.Store,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:          repo,
		waitlist:      waitlist,
		settings:      settings,
		notifications: notifications,
		locks:         locks,
		state:         store,
		events:        publisher,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
	}
}

// NewLockManager builds the soft lock manager on the configured store.
func NewLockManager(cfg *config.Config, redisCache cache.RedisCache) *rules.LockManager {
	ttl := time.Duration(cfg.App.Booking.LockTTLSeconds) * time.Second

	if cfg.App.Booking.LockStore == constant.LockStoreMemory {
		return rules.NewLockManager(rules.NewMemoryLockStore(), ttl)
	}

	return rules.NewLockManager(rules.NewRedisLockStore(redisCache), ttl)
}

// Confirm rechecks the selection against fresh state and persists it.
func (s *serviceImpl) Confirm(ctx context.Context, req dto.ConfirmBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	if refreshErr := s.state.Refresh(ctx); refreshErr != nil {
		log.Warn().Err(refreshErr).Msg("rechecking booking against last known state")
	}

	snap := s.state.Snapshot()
	features := snap.Settings.Features

	court, found := snap.Court(req.CourtID)
	if !found {
		return res, failure.NotFound("court not found") // nolint:wrapcheck
	}

	if !court.Active {
		return res, failure.BadRequestFromString("This court is no longer active.") // nolint:wrapcheck
	}

	req.Player = strings.TrimSpace(req.Player)
	if req.Player == constant.Empty {
		return res, failure.BadRequestFromString("Enter your name.") // nolint:wrapcheck
	}

	if !rules.ValidSpan(req.Start, req.End) {
		return res, failure.BadRequestFromString("End time must be after start time.") // nolint:wrapcheck
	}

	if req.Players == 0 {
		req.Players = 1
	}

	maxPlayers := rules.MaxPlayers(court, s.cfg.App.Booking.DefaultMaxPlayers)
	if req.Players < 1 || req.Players > maxPlayers {
		return res, failure.BadRequestFromString(fmt.Sprintf("Players must be between 1 and %d.", maxPlayers)) // nolint:wrapcheck
	}

	membership := resolveMembership(snap, req.Membership)
	if membership != rules.MembershipNone && snap.VerifiedTier(email) != membership {
		return res, failure.Forbidden("You are not verified for this membership tier.") // nolint:wrapcheck
	}

	if period, blocked := snap.IsBlocked(court.ID, req.Start, req.End); blocked {
		return res, failure.BadRequestFromString(fmt.Sprintf("This slot is blocked: %s.", period.Label)) // nolint:wrapcheck
	}

	if snap.CheckConflict(court.ID, req.Date, req.Start, req.End, constant.Empty) {
		msg := "Slot was just booked by someone else."
		if features.Waitlist {
			msg += " Join the waitlist to be notified."
		}

		return res, failure.ConflictWithReason(failure.ReasonSlotTaken, msg) // nolint:wrapcheck
	}

	if features.SlotCapacity {
		current := snap.SlotPlayerCount(court.ID, req.Date, req.Start, req.End)
		if remaining, ok := rules.CheckCapacity(court, current, req.Players); !ok {
			return res, failure.ConflictWithReason( // nolint:wrapcheck
				failure.ReasonCapacity,
				fmt.Sprintf("Not enough capacity. Only %d spots left.", remaining),
			)
		}
	}

	key := rules.LockKey{CourtID: court.ID, Date: req.Date, Start: req.Start, End: req.End}

	if features.ConcurrencyLock {
		var acquired bool

		acquired, err = s.locks.Acquire(ctx, key, holder(email, req.Player), snap.Tier(membership).Priority)
		if err != nil {
			log.Error().Err(err).Msg("failed to acquire slot lock")

			return res, fmt.Errorf("failed to acquire slot lock: %w", err)
		}

		if !acquired {
			return res, failure.ConflictWithReason(failure.ReasonLockDenied, "Another user has priority on this slot.") // nolint:wrapcheck
		}

		defer s.release(ctx, key)
	}

	if !features.PromoCodes {
		req.PromoCode = constant.Empty
	}

	if req.PromoCode != constant.Empty {
		if _, ok := snap.ResolvePromo(req.PromoCode); !ok {
			return res, failure.BadRequestFromString("Invalid or expired promo code.") // nolint:wrapcheck
		}
	}

	var equipment []string
	if features.Equipment {
		equipment = snap.KnownEquipment(req.Equipment)
	}

	req.Equipment = equipment

	cost := snap.CalcCost(req.Cost(membership))
	if !cost.Bookable() {
		return res, failure.BadRequestFromString("End time must be after start time.") // nolint:wrapcheck
	}

	booking := req.ToModel(user, email, court, membership, equipment, cost.Total)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	if req.PromoCode != constant.Empty {
		if _, err := s.settings.RedeemPromo(ctx, req.PromoCode); err != nil {
			log.Error().Err(err).Str("code", req.PromoCode).Msg("failed to redeem promo code")
		}
	}

	s.state.PutBooking(booking.ToRules())
	s.notifications.Push(ctx, notificationModel.TypeSuccess, fmt.Sprintf(
		"Booking confirmed: %s booked %s on %s %s–%s. Total: Rs.%d.",
		booking.Player, court.Name, booking.Date, booking.StartTime, booking.EndTime, booking.Cost,
	))
	s.events.Publish(ctx, events.FromBooking(events.TypeBookingConfirmed, booking.ToRules()))
	s.invalidate(ctx, booking.ID)

	res.FromModel(booking)

	return res, nil
}

// resolveMembership forces none when tiers are switched off.
func resolveMembership(snap rules.Snapshot, requested string) string {
	requested = strings.TrimSpace(requested)

	if !snap.Settings.Features.Memberships || requested == constant.Empty {
		return rules.MembershipNone
	}

	return requested
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(&err)

	snap := s.state.Snapshot()

	if _, found := snap.Court(req.CourtID); !found {
		return res, failure.NotFound("court not found") // nolint:wrapcheck
	}

	res.CostBreakdown = snap.CalcCost(req.ToRules())
	_, res.PromoApplied = snap.ResolvePromo(req.PromoCode)

	return res, nil
}

// Slots classifies the day's slots, marking ones another user holds a live lock on.
func (s *serviceImpl) Slots(ctx context.Context, courtID, date string) (res dto.SlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Slots")
	defer scope.End()
	defer scope.TraceIfError(&err)

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	snap := s.state.Snapshot()

	if _, found := snap.Court(courtID); !found {
		return res, failure.NotFound("court not found") // nolint:wrapcheck
	}

	res.CourtID = courtID
	res.Date = date
	res.Slots = snap.Availability(courtID, date)

	if !snap.Settings.Features.ConcurrencyLock {
		return res, nil
	}

	for i, slot := range res.Slots {
		if slot.State != rules.SlotAvailable {
			continue
		}

		lock, err := s.locks.Pending(ctx, rules.LockKey{CourtID: courtID, Date: date, Start: slot.Start, End: slot.End})
		if err != nil {
			log.Error().Err(err).Msg("failed to read slot lock")

			return res, fmt.Errorf("failed to read slot lock: %w", err)
		}

		if lock != nil && (email == constant.Empty || lock.Holder != email) {
			res.Slots[i].State = rules.SlotLocked
		}
	}

	return res, nil
}

func (s *serviceImpl) Me(ctx context.Context) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer scope.TraceIfError(&err)

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserEmail, Value: email, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: rules.StatusCancelled, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldIsEvent, Value: false, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldDate, SortDir: gDto.SortDirDesc}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get own bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res = make([]dto.BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.Filter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	group := filter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, group)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// Get returns one booking. Only its owner or an admin may read it.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		booking, findErr := s.find(ctx, id)
		if findErr != nil {
			return res, findErr
		}

		res.FromModel(booking)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	} else {
		log.Debug().Str("cacheKey", cacheKey).Msg("booking served from cache")
	}

	if !canAccess(ctx, res.UserEmail) {
		return dto.BookingResponse{}, failure.Forbidden("You can only view your own bookings.") // nolint:wrapcheck
	}

	return res, nil
}

// Cancel marks a booking cancelled. Only its owner or an admin may do so.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !canAccess(ctx, booking.UserEmail) {
		return res, failure.Forbidden("You can only cancel your own bookings.") // nolint:wrapcheck
	}

	if booking.Status == rules.StatusCancelled {
		return res, failure.BadRequestFromString("Booking is already cancelled.") // nolint:wrapcheck
	}

	booking.Status = rules.StatusCancelled
	booking.Touch(user, timezone.Now())

	updatedFields := map[string]any{
		model.FieldStatus:        booking.Status,
		constant.FieldModifiedAt: booking.ModifiedAt,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.release(ctx, rules.LockKey{CourtID: booking.CourtID, Date: booking.Date, Start: booking.StartTime, End: booking.EndTime})
	s.state.PutBooking(booking.ToRules())

	msg := fmt.Sprintf("Booking cancelled: %s, %s %s %s–%s.", booking.Player, booking.CourtName, booking.Date, booking.StartTime, booking.EndTime)
	if waiting := s.waiting(ctx, booking); len(waiting) > 0 {
		msg += fmt.Sprintf(" Waitlist: %s.", strings.Join(waiting, ", "))
	}

	s.notifications.Push(ctx, notificationModel.TypeWarning, msg)
	s.events.Publish(ctx, events.FromBooking(events.TypeBookingCancelled, booking.ToRules()))
	s.invalidate(ctx, id)

	res.FromModel(booking)

	return res, nil
}

// waiting lists the players queued for exactly the booking's slot.
func (s *serviceImpl) waiting(ctx context.Context, booking model.Booking) []string {
	if !s.state.Features().Waitlist {
		return nil
	}

	eq := func(field, value string) gDto.Filter {
		return gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: waitlistModel.TableName}
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			eq(waitlistModel.FieldCourtID, booking.CourtID),
			eq(waitlistModel.FieldDate, booking.Date),
			eq(waitlistModel.FieldStartTime, booking.StartTime),
			eq(waitlistModel.FieldEndTime, booking.EndTime),
		},
	}

	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	entries, err := s.waitlist.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get waitlist for cancelled slot")

		return nil
	}

	players := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !slices.Contains(players, entry.Player) {
			players = append(players, entry.Player)
		}
	}

	return players
}

// Purge deletes a booking row outright.
func (s *serviceImpl) Purge(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Purge")
	defer scope.End()
	defer scope.TraceIfError(&err)

	deleted, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if deleted == 0 {
		return failure.Inconsistency("Could not delete booking (no matching rows were deleted).") // nolint:wrapcheck
	}

	s.state.RemoveBooking(id)
	s.events.Publish(ctx, events.Event{Type: events.TypeBookingPurged, BookingID: id})
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Lock(ctx context.Context, req dto.LockRequest) (res dto.LockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Lock")
	defer scope.End()
	defer scope.TraceIfError(&err)

	lock, err := s.locks.Pending(ctx, req.Key())
	if err != nil {
		log.Error().Err(err).Msg("failed to read slot lock")

		return res, fmt.Errorf("failed to read slot lock: %w", err)
	}

	res.FromRules(lock)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) release(ctx context.Context, key rules.LockKey) {
	if err := s.locks.Release(ctx, key); err != nil {
		log.Error().Err(err).Str("lock", key.String()).Msg("failed to release slot lock")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		if err := s.cache.Delete(c, constant.CacheKeyAnalytics); err != nil {
			log.Error().Err(err).Msg("failed to delete analytics from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

// holder names a lock owner, preferring the account email.
func holder(email, player string) string {
	if email != constant.Empty {
		return email
	}

	return player
}

func isAdmin(role string) bool {
	return role == constant.RoleAdmin || role == constant.RoleSuperAdmin
}

// canAccess reports whether the caller owns a booking made under owner or is an admin.
func canAccess(ctx context.Context, owner string) bool {
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return isAdmin(role) || (email != constant.Empty && strings.EqualFold(owner, email))
}
