package service

import (
	"context"
	"fmt"

	"courtbook/config"
	"courtbook/infras/otel"
	"courtbook/internal/domains/analytics/model"
	bookingModel "courtbook/internal/domains/booking/model"
	bookingRepo "courtbook/internal/domains/booking/repository"
	"courtbook/internal/rules"
	"courtbook/internal/state"
	"courtbook/shared/cache"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"

	"github.com/rs/zerolog/log"
)

type Analytics interface {
	Get(ctx context.Context) (model.Report, error)
}

type serviceImpl struct {
	bookings bookingRepo.Booking
	state    *state.Store
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(bookings bookingRepo.Booking, store *state.Store, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Analytics {
	return &serviceImpl{
		bookings: bookings,
		state:    store,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res model.Report, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAnalytics")
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = s.cache.Get(ctx, constant.CacheKeyAnalytics, &res)
	if err == nil {
		log.Info().Str("cacheKey", constant.CacheKeyAnalytics).Msg("cache hit for analytics")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldIsEvent, Value: false, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Value: rules.StatusCancelled, Operator: gDto.FilterOperatorNotEq, Table: bookingModel.TableName},
		},
	}

	models, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for analytics")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	bookings := make([]rules.Booking, len(models))
	for i, mod := range models {
		bookings[i] = mod.ToRules()
	}

	res = model.Summarize(bookings, s.state.Snapshot().Courts)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, constant.CacheKeyAnalytics, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save analytics to cache")
		}
	}()

	return res, nil
}
