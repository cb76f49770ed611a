package rules_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"courtbook/infras/otel/mocks"
	"courtbook/internal/rules"
	"courtbook/shared/cache"
)

var testKey = rules.LockKey{CourtID: "c1", Date: testDate, Start: "07:00", End: "08:00"}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestLockManager() (*rules.LockManager, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 10, 17, 7, 0, 0, 0, time.UTC)}
	manager := rules.NewLockManager(rules.NewMemoryLockStore(), rules.DefaultLockTTL).WithClock(clock.Now)

	return manager, clock
}

func TestLockKey_String(t *testing.T) {
	assert.Equal(t, "c1|2026-10-17|07:00|08:00", testKey.String())
}

func TestLockManager_Acquire(t *testing.T) {
	tests := []struct {
		name          string
		firstPriority int
		priority      int
		advance       time.Duration
		want          bool
	}{
		{name: "higher priority preempts", firstPriority: 1, priority: 2, want: true},
		{name: "equal priority is denied", firstPriority: 2, priority: 2, want: false},
		{name: "lower priority is denied", firstPriority: 3, priority: 1, want: false},
		{name: "expired lock is ignored", firstPriority: 3, priority: 0, advance: rules.DefaultLockTTL + time.Second, want: true},
		{name: "lock alive at exact expiry", firstPriority: 1, priority: 1, advance: rules.DefaultLockTTL, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			manager, clock := newTestLockManager()

			ok, err := manager.Acquire(ctx, testKey, "first@example.com", tt.firstPriority)
			assert.NoError(t, err)
			assert.True(t, ok)

			clock.now = clock.now.Add(tt.advance)

			ok, err = manager.Acquire(ctx, testKey, "second@example.com", tt.priority)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ok)

			lock, err := manager.Pending(ctx, testKey)
			assert.NoError(t, err)
			assert.NotNil(t, lock)

			if tt.want {
				assert.Equal(t, "second@example.com", lock.Holder)
				assert.Equal(t, clock.now.Add(rules.DefaultLockTTL), lock.ExpiresAt)
			} else {
				assert.Equal(t, "first@example.com", lock.Holder)
			}
		})
	}
}

func TestLockManager_PendingEvictsExpired(t *testing.T) {
	ctx := context.Background()
	manager, clock := newTestLockManager()

	_, err := manager.Acquire(ctx, testKey, "first@example.com", 1)
	assert.NoError(t, err)

	clock.now = clock.now.Add(6 * time.Minute)

	lock, err := manager.Pending(ctx, testKey)
	assert.NoError(t, err)
	assert.Nil(t, lock)
}

func TestLockManager_Release(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestLockManager()

	_, err := manager.Acquire(ctx, testKey, "first@example.com", 3)
	assert.NoError(t, err)

	assert.NoError(t, manager.Release(ctx, testKey))

	ok, err := manager.Acquire(ctx, testKey, "second@example.com", 0)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLockStore(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := rules.NewRedisLockStore(cache.NewRedisCache(db, mocks.NewOtel()))

	clock := &fakeClock{now: time.Date(2026, 10, 17, 7, 0, 0, 0, time.UTC)}
	manager := rules.NewLockManager(store, rules.DefaultLockTTL).WithClock(clock.Now)

	key := "lock:" + testKey.String()
	stored := `{"holder":"first@example.com","priority":2,"expires_at":"2026-10-17T07:05:00Z"}`

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, []byte(stored), rules.DefaultLockTTL).SetVal("OK")

	ok, err := manager.Acquire(ctx, testKey, "first@example.com", 2)
	assert.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectGet(key).SetVal(stored)

	ok, err = manager.Acquire(ctx, testKey, "second@example.com", 2)
	assert.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectDel(key).SetVal(1)

	assert.NoError(t, manager.Release(ctx, testKey))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLockStore_Errors(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := rules.NewRedisLockStore(cache.NewRedisCache(db, mocks.NewOtel()))
	key := "lock:" + testKey.String()

	mock.ExpectGet(key).SetErr(errors.New("connection refused"))

	lock, err := store.Get(ctx, testKey.String())
	assert.Error(t, err)
	assert.Nil(t, lock)

	mock.ExpectGet(key).SetVal("not-json")

	lock, err = store.Get(ctx, testKey.String())
	assert.Error(t, err)
	assert.Nil(t, lock)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLockStore_RoundsTTLUpToSeconds(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := rules.NewRedisLockStore(cache.NewRedisCache(db, mocks.NewOtel()))
	key := "lock:" + testKey.String()
	lock := rules.Lock{Holder: "first@example.com", ExpiresAt: time.Date(2026, 10, 17, 7, 0, 1, 0, time.UTC)}
	stored := []byte(`{"holder":"first@example.com","priority":0,"expires_at":"2026-10-17T07:00:01Z"}`)

	mock.ExpectSet(key, stored, 2*time.Second).SetVal("OK")
	assert.NoError(t, store.Set(ctx, testKey.String(), lock, 1500*time.Millisecond))

	mock.ExpectSet(key, stored, time.Second).SetVal("OK")
	assert.NoError(t, store.Set(ctx, testKey.String(), lock, 0))

	mock.ExpectDel(key).SetErr(errors.New("connection refused"))
	assert.Error(t, store.Delete(ctx, testKey.String()))

	assert.NoError(t, mock.ExpectationsWereMet())
}
