package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"courtbook/infras/otel/mocks"
	notificationMocks "courtbook/internal/domains/notification/mocks"
	"courtbook/internal/domains/notification/model"
	"courtbook/internal/domains/notification/service"
	"courtbook/internal/rules"
	"courtbook/internal/state"
	stateMocks "courtbook/internal/state/mocks"
)

func newService(t *testing.T, ctrl *gomock.Controller, enabled bool) (service.Notification, *notificationMocks.MockNotification) {
	t.Helper()

	settings := rules.DefaultSettings()
	settings.Features.Notifications = enabled

	loader := stateMocks.NewMockLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(rules.Snapshot{Settings: settings}, nil)

	store := state.New(loader, mocks.NewOtel())
	require.NoError(t, store.Refresh(context.Background()))

	repo := notificationMocks.NewMockNotification(ctrl)

	return service.New(repo, store, mocks.NewOtel()), repo
}

func TestNotificationService_Push(t *testing.T) {
	tests := []struct {
		name      string
		enabled   bool
		setupMock func(repo *notificationMocks.MockNotification)
	}{
		{
			name:    "records notification",
			enabled: true,
			setupMock: func(repo *notificationMocks.MockNotification) {
				repo.EXPECT().
					Push(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n model.Notification) error {
						assert.Equal(t, model.TypeInfo, n.Type)
						assert.Equal(t, "Court A reopened.", n.Message)
						assert.NotEmpty(t, n.ID)

						return nil
					})
			},
		},
		{
			name:    "repository error is swallowed",
			enabled: true,
			setupMock: func(repo *notificationMocks.MockNotification) {
				repo.EXPECT().Push(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
		},
		{
			name:      "feature disabled",
			enabled:   false,
			setupMock: func(*notificationMocks.MockNotification) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, repo := newService(t, ctrl, tt.enabled)
			tt.setupMock(repo)

			svc.Push(context.Background(), model.TypeInfo, "Court A reopened.")
		})
	}
}

func TestNotificationService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newService(t, ctrl, true)

	repo.EXPECT().List(gomock.Any()).Return([]model.Notification{{ID: "n1"}, {ID: "n2"}}, nil)

	res, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, res, 2)

	repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("redis down"))

	_, err = svc.List(context.Background())
	assert.Error(t, err)
}

func TestNotificationService_Clear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newService(t, ctrl, true)

	repo.EXPECT().Clear(gomock.Any()).Return(nil)

	assert.NoError(t, svc.Clear(context.Background()))
}
