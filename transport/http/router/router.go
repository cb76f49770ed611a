package router

import (
	_ "courtbook/docs" // swagger spec
	"courtbook/internal/handlers/analytics"
	"courtbook/internal/handlers/auth"
	"courtbook/internal/handlers/booking"
	"courtbook/internal/handlers/court"
	"courtbook/internal/handlers/event"
	"courtbook/internal/handlers/notification"
	"courtbook/internal/handlers/settings"
	"courtbook/internal/handlers/user"
	"courtbook/internal/handlers/waitlist"
	"courtbook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Court        court.Handler
	Booking      booking.Handler
	Settings     settings.Handler
	Event        event.Handler
	Waitlist     waitlist.Handler
	Analytics    analytics.Handler
	Notification notification.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	auth           middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		chiMiddleware.Recoverer,
		r.app.CORS(),
		r.app.Logger,
		r.app.Tracing,
		r.app.RateLimit(),
	)

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.auth.APIKey, r.auth.Auth, r.auth.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Court.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Settings.Router(routerGroup)
		r.DomainHandlers.Event.Router(routerGroup)
		r.DomainHandlers.Waitlist.Router(routerGroup)
		r.DomainHandlers.Analytics.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, auth middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		auth:           auth,
	}
}
