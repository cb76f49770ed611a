//go:build wireinject
// +build wireinject

package di

import (
	"courtbook/config"
	"courtbook/infras/jwt"
	"courtbook/infras/kafka"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/infras/redis"
	"courtbook/infras/s3"
	"courtbook/infras/scheduler"
	"courtbook/internal/events"
	"courtbook/internal/state"
	"courtbook/permissions"
	"courtbook/shared/cache"
	"courtbook/transport/http"
	"courtbook/transport/http/middleware"
	"courtbook/transport/http/router"

	analyticsService "courtbook/internal/domains/analytics/service"
	authService "courtbook/internal/domains/auth/service"
	bookingRepository "courtbook/internal/domains/booking/repository"
	bookingService "courtbook/internal/domains/booking/service"
	courtRepository "courtbook/internal/domains/court/repository"
	courtService "courtbook/internal/domains/court/service"
	eventService "courtbook/internal/domains/event/service"
	notificationRepository "courtbook/internal/domains/notification/repository"
	notificationService "courtbook/internal/domains/notification/service"
	settingsRepository "courtbook/internal/domains/settings/repository"
	settingsService "courtbook/internal/domains/settings/service"
	userRepository "courtbook/internal/domains/user/repository"
	userService "courtbook/internal/domains/user/service"
	waitlistRepository "courtbook/internal/domains/waitlist/repository"
	waitlistService "courtbook/internal/domains/waitlist/service"

	analyticsHandler "courtbook/internal/handlers/analytics"
	authHandler "courtbook/internal/handlers/auth"
	bookingHandler "courtbook/internal/handlers/booking"
	courtHandler "courtbook/internal/handlers/court"
	eventHandler "courtbook/internal/handlers/event"
	notificationHandler "courtbook/internal/handlers/notification"
	settingsHandler "courtbook/internal/handlers/settings"
	userHandler "courtbook/internal/handlers/user"
	waitlistHandler "courtbook/internal/handlers/waitlist"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	scheduler.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var engine = wire.NewSet(
	state.NewLoader,
	state.New,
	events.New,
	wire.Bind(new(events.Publisher), new(*events.Bus)),
	bookingService.NewLockManager,
)

var repositories = wire.NewSet(
	userRepository.New,
	courtRepository.New,
	bookingRepository.New,
	settingsRepository.New,
	waitlistRepository.New,
	notificationRepository.New,
)

var domains = wire.NewSet(
	authService.New,
	userService.New,
	courtService.New,
	settingsService.New,
	notificationService.New,
	bookingService.New,
	eventService.New,
	waitlistService.New,
	analyticsService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	courtHandler.New,
	bookingHandler.New,
	settingsHandler.New,
	eventHandler.New,
	waitlistHandler.New,
	analyticsHandler.New,
	notificationHandler.New,
	router.New,
)

func InitializeApp() (*App, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		engine,
		repositories,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}, nil
}
