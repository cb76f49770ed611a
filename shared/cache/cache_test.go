package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/infras/otel/mocks"
	"courtbook/shared/cache"
)

type cachedCourt struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, mocks.NewOtel())
	ctx := context.Background()

	mock.ExpectSet("courts:get:c1", []byte(`{"id":"c1","name":"Court A"}`), time.Hour).SetVal("OK")
	mock.ExpectGet("courts:get:c1").SetVal(`{"id":"c1","name":"Court A"}`)

	require.NoError(t, c.Save(ctx, "courts:get:c1", cachedCourt{ID: "c1", Name: "Court A"}, 3600))

	var got cachedCourt
	require.NoError(t, c.Get(ctx, "courts:get:c1", &got))
	assert.Equal(t, cachedCourt{ID: "c1", Name: "Court A"}, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, mocks.NewOtel())

	mock.ExpectGet("settings:get").RedisNil()

	var got cachedCourt
	err := c.Get(context.Background(), "settings:get", &got)

	require.Error(t, err)
	assert.True(t, cache.IsMiss(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetCorrupt(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, mocks.NewOtel())

	mock.ExpectGet("courts:get:c1").SetVal("{not json")

	var got cachedCourt
	err := c.Get(context.Background(), "courts:get:c1", &got)

	require.Error(t, err)
	assert.False(t, cache.IsMiss(err))
}

func TestRedisCache_Incr(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, mocks.NewOtel())

	mock.ExpectTxPipeline()
	mock.ExpectIncr("limiter:10.0.0.1").SetVal(3)
	mock.ExpectExpireNX("limiter:10.0.0.1", time.Minute).SetVal(false)
	mock.ExpectTxPipelineExec()

	count, err := c.Incr(context.Background(), "limiter:10.0.0.1", 60)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Clear(t *testing.T) {
	t.Run("walks every scan page", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := cache.NewRedisCache(db, mocks.NewOtel())

		mock.ExpectScan(0, "bookings:*", 100).SetVal([]string{"bookings:a", "bookings:b"}, 7)
		mock.ExpectUnlink("bookings:a", "bookings:b").SetVal(2)
		mock.ExpectScan(7, "bookings:*", 100).SetVal([]string{}, 0)

		require.NoError(t, c.Clear(context.Background(), "bookings:*"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scan error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := cache.NewRedisCache(db, mocks.NewOtel())

		mock.ExpectScan(0, "bookings:*", 100).SetErr(errors.New("connection reset"))

		assert.Error(t, c.Clear(context.Background(), "bookings:*"))
	})
}
