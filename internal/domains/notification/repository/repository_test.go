package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/infras/otel/mocks"
	"courtbook/internal/domains/notification/model"
	"courtbook/internal/domains/notification/repository"
)

func sample() model.Notification {
	return model.Notification{
		ID:        "n1760000000000",
		Message:   "Booking confirmed",
		Type:      model.TypeSuccess,
		Timestamp: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
	}
}

func TestNotificationRepository_Push(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := repository.New(db, mocks.NewOtel())

	raw, err := json.Marshal(sample())
	require.NoError(t, err)

	mock.ExpectTxPipeline()
	mock.ExpectLPush(model.ListKey, string(raw)).SetVal(1)
	mock.ExpectLTrim(model.ListKey, 0, model.MaxItems-1).SetVal("OK")
	mock.ExpectTxPipelineExec()

	err = repo.Push(context.Background(), sample())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_List(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := repository.New(db, mocks.NewOtel())

	raw, err := json.Marshal(sample())
	require.NoError(t, err)

	mock.ExpectLRange(model.ListKey, 0, model.MaxItems-1).SetVal([]string{string(raw), "not-json"})

	res, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Booking confirmed", res[0].Message)
	assert.True(t, sample().Timestamp.Equal(res[0].Timestamp))

	mock.ExpectLRange(model.ListKey, 0, model.MaxItems-1).SetErr(errors.New("redis down"))

	_, err = repo.List(context.Background())
	assert.Error(t, err)
}

func TestNotificationRepository_Clear(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := repository.New(db, mocks.NewOtel())

	mock.ExpectDel(model.ListKey).SetVal(1)

	assert.NoError(t, repo.Clear(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
