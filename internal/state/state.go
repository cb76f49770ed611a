// Package state owns the in-memory snapshot the booking rules run against.
package state

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"courtbook/infras/otel"
	"courtbook/internal/rules"
	"courtbook/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:generate go run go.uber.org/mock/mockgen -source=./state.go -destination=./mocks/loader_mock.go -package=mocks

// Loader reads a complete snapshot from durable storage.
type Loader interface {
	Load(ctx context.Context) (rules.Snapshot, error)
}

type Store struct {
	mu     sync.RWMutex
	snap   rules.Snapshot
	loader Loader
	otel   otel.Otel
}

// New starts with default settings and no courts until the first Refresh.
func New(loader Loader, otel otel.Otel) *Store {
	return &Store{
		snap: rules.Snapshot{
			Courts:   []rules.Court{},
			Bookings: []rules.Booking{},
			Settings: rules.DefaultSettings(),
		},
		loader: loader,
		otel:   otel,
	}
}

// Snapshot returns a private copy of the current state.
func (s *Store) Snapshot() rules.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.Clone()
}

// Refresh replaces the snapshot from storage. On failure the previous
// snapshot stays in place.
func (s *Store) Refresh(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStateScopeName, constant.OtelStateScopeName+".Refresh")
	defer scope.End()
	defer scope.TraceIfError(&err)

	snap, err := s.loader.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh state")

		return fmt.Errorf("failed to refresh state: %w", err)
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	log.Debug().Int("courts", len(snap.Courts)).Int("bookings", len(snap.Bookings)).Msg("state refreshed")

	return nil
}

func (s *Store) PutCourt(court rules.Court) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.snap.Courts, func(c rules.Court) bool { return c.ID == court.ID })
	if idx == -1 {
		s.snap.Courts = append(s.snap.Courts, court)

		return
	}

	s.snap.Courts[idx] = court
}

func (s *Store) RemoveCourt(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Courts = slices.DeleteFunc(s.snap.Courts, func(c rules.Court) bool { return c.ID == id })
}

func (s *Store) PutBooking(booking rules.Booking) {
	s.PutBookings([]rules.Booking{booking})
}

// PutBookings inserts or replaces bookings by id.
func (s *Store) PutBookings(bookings []rules.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, booking := range bookings {
		idx := slices.IndexFunc(s.snap.Bookings, func(b rules.Booking) bool { return b.ID == booking.ID })
		if idx == -1 {
			s.snap.Bookings = append(s.snap.Bookings, booking)

			continue
		}

		s.snap.Bookings[idx] = booking
	}
}

func (s *Store) RemoveBooking(id string) {
	s.RemoveBookings(func(b rules.Booking) bool { return b.ID == id })
}

// RemoveBookings drops every booking match selects and reports how many went.
func (s *Store) RemoveBookings(match func(rules.Booking) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.snap.Bookings)
	s.snap.Bookings = slices.DeleteFunc(s.snap.Bookings, match)

	return before - len(s.snap.Bookings)
}

func (s *Store) SetSettings(settings rules.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Settings = settings
}

// Features returns the current feature flags without copying the snapshot.
func (s *Store) Features() rules.Features {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.Settings.Features
}
