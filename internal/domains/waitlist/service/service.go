package service

import (
	"context"
	"fmt"

	"courtbook/config"
	"courtbook/infras/otel"
	notificationModel "courtbook/internal/domains/notification/model"
	notificationService "courtbook/internal/domains/notification/service"
	"courtbook/internal/domains/waitlist/model"
	"courtbook/internal/domains/waitlist/model/dto"
	"courtbook/internal/domains/waitlist/repository"
	"courtbook/internal/rules"
	"courtbook/internal/state"
	"courtbook/shared"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"

	"github.com/rs/zerolog/log"
)

type Waitlist interface {
	Join(ctx context.Context, req dto.JoinWaitlistRequest) (dto.EntryResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEntriesResponse, error)
	Remove(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo          repository.Waitlist
	state         *state.Store
	notifications notificationService.Notification
	cfg           *config.Config
	otel          otel.Otel
}

func New(repo repository.Waitlist, store *state.Store, notifications notificationService.Notification, cfg *config.Config, otel otel.Otel) Waitlist {
	return &serviceImpl{
		repo:          repo,
		state:         store,
		notifications: notifications,
		cfg:           cfg,
		otel:          otel,
	}
}

func (s *serviceImpl) Join(ctx context.Context, req dto.JoinWaitlistRequest) (res dto.EntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".JoinWaitlist")
	defer scope.End()
	defer scope.TraceIfError(&err)

	snap := s.state.Snapshot()
	if !snap.Settings.Features.Waitlist {
		return res, failure.BadRequestFromString("Waitlist is disabled.") // nolint:wrapcheck
	}

	court, found := snap.Court(req.CourtID)
	if !found {
		return res, failure.NotFound("court not found") // nolint:wrapcheck
	}

	if !rules.ValidSpan(req.Start, req.End) {
		return res, failure.BadRequestFromString("End time must be after start time.") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	entry := req.ToModel(user, email, court.Name)

	if err = s.repo.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Msg("failed to join waitlist")

		return res, fmt.Errorf("failed to join waitlist: %w", err)
	}

	s.notifications.Push(ctx, notificationModel.TypeWarning, fmt.Sprintf("%s added to waitlist for %s.", entry.Player, court.Name))

	res.FromModel(entry)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEntriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetWaitlist")
	defer scope.End()
	defer scope.TraceIfError(&err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count waitlist")

		return res, fmt.Errorf("failed to count waitlist: %w", err)
	}

	entries, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get waitlist")

		return res, fmt.Errorf("failed to get waitlist: %w", err)
	}

	res.FromModels(entries, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Remove(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveWaitlist")
	defer scope.End()
	defer scope.TraceIfError(&err)

	removed, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to remove waitlist entry")

		return fmt.Errorf("failed to remove waitlist entry: %w", err)
	}

	if removed == 0 {
		return failure.NotFound("waitlist entry not found") // nolint:wrapcheck
	}

	return nil
}
