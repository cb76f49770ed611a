package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"courtbook/infras/otel"
	"courtbook/internal/domains/notification/model"
	"courtbook/shared/constant"

	"github.com/redis/go-redis/v9"
)

type Notification interface {
	Push(ctx context.Context, notification model.Notification) error
	List(ctx context.Context) ([]model.Notification, error)
	Clear(ctx context.Context) error
}

type repositoryImpl struct {
	client *redis.Client
	otel   otel.Otel
}

func New(client *redis.Client, otel otel.Otel) Notification {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

// Push prepends notification and trims the list to the newest entries.
func (r *repositoryImpl) Push(ctx context.Context, notification model.Notification) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".notification.Push")
	defer scope.End()
	defer scope.TraceIfError(&err)

	raw, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, model.ListKey, string(raw))
	pipe.LTrim(ctx, model.ListKey, 0, model.MaxItems-1)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}

	return nil
}

func (r *repositoryImpl) List(ctx context.Context) (res []model.Notification, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".notification.List")
	defer scope.End()
	defer scope.TraceIfError(&err)

	items, err := r.client.LRange(ctx, model.ListKey, 0, model.MaxItems-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	res = make([]model.Notification, 0, len(items))

	for _, item := range items {
		var notification model.Notification
		if err := json.Unmarshal([]byte(item), &notification); err != nil {
			continue
		}

		res = append(res, notification)
	}

	return res, nil
}

func (r *repositoryImpl) Clear(ctx context.Context) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".notification.Clear")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = r.client.Del(ctx, model.ListKey).Err(); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}

	return nil
}
