package rules

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultLockTTL is how long a soft lock holds a slot.
const DefaultLockTTL = 5 * time.Minute

// LockKey identifies one exact slot on one court and day.
type LockKey struct {
	CourtID string
	Date    string
	Start   string
	End     string
}

func (k LockKey) String() string {
	return strings.Join([]string{k.CourtID, k.Date, k.Start, k.End}, "|")
}

type Lock struct {
	Holder    string    `json:"holder"`
	Priority  int       `json:"priority"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (l Lock) expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

// LockStore persists soft locks. Get returns nil when nothing is stored.
type LockStore interface {
	Get(ctx context.Context, key string) (*Lock, error)
	Set(ctx context.Context, key string, lock Lock, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// LockManager hands out advisory, priority-ordered holds on slots. The
// check-then-set in Acquire is not atomic against the store, so two
// processes can both succeed. It narrows the double-booking window; it does
// not close it.
type LockManager struct {
	store LockStore
	ttl   time.Duration
	now   func() time.Time
}

func NewLockManager(store LockStore, ttl time.Duration) *LockManager {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}

	return &LockManager{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// WithClock swaps the time source.
func (m *LockManager) WithClock(now func() time.Time) *LockManager {
	m.now = now

	return m
}

// Pending returns the live lock for key. Expired entries are evicted on read.
func (m *LockManager) Pending(ctx context.Context, key LockKey) (*Lock, error) {
	lock, err := m.store.Get(ctx, key.String())
	if err != nil {
		return nil, fmt.Errorf("failed to read lock: %w", err)
	}

	if lock == nil {
		return nil, nil
	}

	if lock.expired(m.now()) {
		if err := m.store.Delete(ctx, key.String()); err != nil {
			return nil, fmt.Errorf("failed to evict expired lock: %w", err)
		}

		return nil, nil
	}

	return lock, nil
}

// Acquire grants the slot to holder unless a live lock of equal or higher
// priority already holds it.
func (m *LockManager) Acquire(ctx context.Context, key LockKey, holder string, priority int) (bool, error) {
	existing, err := m.Pending(ctx, key)
	if err != nil {
		return false, err
	}

	if existing != nil && existing.Priority >= priority {
		return false, nil
	}

	lock := Lock{
		Holder:    holder,
		Priority:  priority,
		ExpiresAt: m.now().Add(m.ttl),
	}

	if err := m.store.Set(ctx, key.String(), lock, m.ttl); err != nil {
		return false, fmt.Errorf("failed to store lock: %w", err)
	}

	return true, nil
}

func (m *LockManager) Release(ctx context.Context, key LockKey) error {
	if err := m.store.Delete(ctx, key.String()); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	return nil
}

// MemoryLockStore keeps locks in process memory.
type MemoryLockStore struct {
	mu    sync.Mutex
	locks map[string]Lock
}

func NewMemoryLockStore() *MemoryLockStore {
	return &MemoryLockStore{locks: map[string]Lock{}}
}

func (s *MemoryLockStore) Get(_ context.Context, key string) (*Lock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		return nil, nil
	}

	return &lock, nil
}

func (s *MemoryLockStore) Set(_ context.Context, key string, lock Lock, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locks[key] = lock

	return nil
}

func (s *MemoryLockStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, key)

	return nil
}
