package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Notification=MockNotificationService

import (
	"context"
	"fmt"
	"strconv"

	"courtbook/infras/otel"
	"courtbook/internal/domains/notification/model"
	"courtbook/internal/domains/notification/repository"
	"courtbook/internal/state"
	"courtbook/shared/constant"
	"courtbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Notification interface {
	Push(ctx context.Context, kind, message string)
	List(ctx context.Context) ([]model.Notification, error)
	Clear(ctx context.Context) error
}

type serviceImpl struct {
	repo  repository.Notification
	state *state.Store
	otel  otel.Otel
}

func New(repo repository.Notification, store *state.Store, otel otel.Otel) Notification {
	return &serviceImpl{
		repo:  repo,
		state: store,
		otel:  otel,
	}
}

// Push records a notification when the feature is on. Failures are logged only.
func (s *serviceImpl) Push(ctx context.Context, kind, message string) {
	if !s.state.Features().Notifications {
		return
	}

	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PushNotification")
	defer scope.End()

	now := timezone.Now()
	notification := model.Notification{
		ID:        "n" + strconv.FormatInt(now.UnixMilli(), 10),
		Message:   message,
		Type:      kind,
		Timestamp: now,
	}

	if err := s.repo.Push(ctx, notification); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to push notification")
	}
}

func (s *serviceImpl) List(ctx context.Context) (res []model.Notification, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListNotifications")
	defer scope.End()
	defer scope.TraceIfError(&err)

	res, err = s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list notifications")

		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Clear(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ClearNotifications")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.repo.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("failed to clear notifications")

		return fmt.Errorf("failed to clear notifications: %w", err)
	}

	return nil
}
