package service

import (
	"context"
	"fmt"

	"courtbook/infras/otel"
	bookingModel "courtbook/internal/domains/booking/model"
	bookingRepo "courtbook/internal/domains/booking/repository"
	"courtbook/internal/domains/event/model"
	"courtbook/internal/domains/event/model/dto"
	notificationModel "courtbook/internal/domains/notification/model"
	notificationService "courtbook/internal/domains/notification/service"
	"courtbook/internal/events"
	"courtbook/internal/rules"
	"courtbook/internal/state"
	"courtbook/shared"
	"courtbook/shared/cache"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"

	"github.com/rs/zerolog/log"
)

type Event interface {
	Create(ctx context.Context, req dto.CreateEventRequest) (dto.EventResponse, error)
	GetAll(ctx context.Context) ([]dto.EventResponse, error)
	Delete(ctx context.Context, req dto.DeleteEventRequest) error
}

type serviceImpl struct {
	bookings      bookingRepo.Booking
	state         *state.Store
	notifications notificationService.Notification
	events        events.Publisher
	cache         cache.RedisCache
	otel          otel.Otel
}

func New(bookings bookingRepo.Booking, store *state.Store, notifications notificationService.Notification, publisher events.Publisher, cache cache.RedisCache, otel otel.Otel) Event {
	return &serviceImpl{
		bookings:      bookings,
		state:         store,
		notifications: notifications,
		events:        publisher,
		cache:         cache,
		otel:          otel,
	}
}

// Create blocks every selected court for the event window in one transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEventRequest) (res dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateEvent")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	snap := s.state.Snapshot()
	if !snap.Settings.Features.Events {
		return res, failure.BadRequestFromString("Events are disabled.") // nolint:wrapcheck
	}

	if !rules.ValidSpan(req.Start, req.End) {
		return res, failure.BadRequestFromString("End time must be after start time.") // nolint:wrapcheck
	}

	courts := make([]rules.Court, 0, len(req.CourtIDs))

	for _, id := range req.CourtIDs {
		court, found := snap.Court(id)
		if !found {
			return res, failure.NotFound("court not found") // nolint:wrapcheck
		}

		if snap.CheckConflict(court.ID, req.Date, req.Start, req.End, constant.Empty) {
			return res, failure.ConflictWithReason(failure.ReasonSlotTaken, fmt.Sprintf("%s already has a booking in this time range.", court.Name)) // nolint:wrapcheck
		}

		courts = append(courts, court)
	}

	bookings := req.ToBookings(user, email, courts)

	tx, err := s.bookings.BeginTx(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin event transaction")

		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = s.bookings.InsertBulkTx(ctx, tx, bookings); err != nil {
		log.Error().Err(err).Msg("failed to create event bookings")

		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback event transaction")
		}

		return res, fmt.Errorf("failed to create event in database: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit event transaction")

		return res, fmt.Errorf("failed to commit event: %w", err)
	}

	blocked := make([]rules.Booking, len(bookings))
	published := make([]events.Event, len(bookings))

	for i, b := range bookings {
		blocked[i] = b.ToRules()
		published[i] = events.FromBooking(events.TypeEventCreated, blocked[i])
	}

	s.state.PutBookings(blocked)
	s.events.Publish(ctx, published...)
	s.notifications.Push(ctx, notificationModel.TypeInfo, fmt.Sprintf("%q scheduled across %d court(s).", req.Name, len(courts)))
	s.invalidate(ctx)

	groups := model.Group(bookings)
	res.FromModel(groups[0])

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetEvents")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldIsEvent, Value: true, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Value: rules.StatusCancelled, Operator: gDto.FilterOperatorNotEq, Table: bookingModel.TableName},
		},
	}

	params := gDto.QueryParams{SortBy: bookingModel.FieldDate, SortDir: gDto.SortDirAsc}

	bookings, err := s.bookings.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get event bookings")

		return res, fmt.Errorf("failed to get events: %w", err)
	}

	groups := model.Group(bookings)
	res = make([]dto.EventResponse, len(groups))

	for i, group := range groups {
		res[i].FromModel(group)
	}

	return res, nil
}

// Delete removes every booking of the named event on date.
func (s *serviceImpl) Delete(ctx context.Context, req dto.DeleteEventRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteEvent")
	defer scope.End()
	defer scope.TraceIfError(&err)

	player := bookingModel.EventPlayer(req.Name)
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldIsEvent, Value: true, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldPlayer, Value: player, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldDate, Value: req.Date, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		},
	}

	deleted, err := s.bookings.Delete(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete event")

		return fmt.Errorf("failed to delete event: %w", err)
	}

	if deleted == 0 {
		return failure.Inconsistency("Could not remove event (no matching bookings were deleted).") // nolint:wrapcheck
	}

	s.state.RemoveBookings(func(b rules.Booking) bool {
		return b.IsEvent && b.Player == player && b.Date == req.Date
	})
	s.events.Publish(ctx, events.Event{Type: events.TypeEventDeleted, Player: player, Date: req.Date})
	s.notifications.Push(ctx, notificationModel.TypeInfo, "Event removed and courts unblocked.")
	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixBooking)

		if err := s.cache.Delete(c, constant.CacheKeyAnalytics); err != nil {
			log.Error().Err(err).Msg("failed to delete analytics from cache")
		}
	}()
}
