package state

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "courtbook/internal/domains/booking/repository"
	courtRepo "courtbook/internal/domains/court/repository"
	settingsModel "courtbook/internal/domains/settings/model"
	settingsRepo "courtbook/internal/domains/settings/repository"
	"courtbook/internal/rules"
	gDto "courtbook/shared/dto"
)

var errSettingsMissing = errors.New("settings row is missing")

type repositoryLoader struct {
	courts   courtRepo.Court
	bookings bookingRepo.Booking
	settings settingsRepo.Settings
}

func NewLoader(courts courtRepo.Court, bookings bookingRepo.Booking, settings settingsRepo.Settings) Loader {
	return &repositoryLoader{
		courts:   courts,
		bookings: bookings,
		settings: settings,
	}
}

func (l *repositoryLoader) Load(ctx context.Context) (rules.Snapshot, error) {
	courts, err := l.courts.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return rules.Snapshot{}, fmt.Errorf("failed to load courts: %w", err)
	}

	bookings, err := l.bookings.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return rules.Snapshot{}, fmt.Errorf("failed to load bookings: %w", err)
	}

	row, err := l.settings.Get(ctx, settingsModel.SingletonFilter())
	if err != nil {
		return rules.Snapshot{}, fmt.Errorf("failed to load settings: %w", err)
	}

	if row.ID != settingsModel.SingletonID {
		return rules.Snapshot{}, errSettingsMissing
	}

	snap := rules.Snapshot{
		Courts:   make([]rules.Court, len(courts)),
		Bookings: make([]rules.Booking, len(bookings)),
		Settings: row.ToRules(),
	}

	for i, court := range courts {
		snap.Courts[i] = court.ToRules()
	}

	for i, booking := range bookings {
		snap.Bookings[i] = booking.ToRules()
	}

	return snap, nil
}
