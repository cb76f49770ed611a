package notification

import (
	"net/http"

	"courtbook/infras/otel"
	"courtbook/internal/domains/notification/service"
	"courtbook/shared/constant"
	"courtbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetNotifications)
		routerGroup.Delete("/", handler.ClearNotifications)
	})
}

// GetNotifications lists recent notifications, newest first.
// @Summary Get notifications
// @Tags Notification
// @Produce json
// @Success 200 {object} response.Data[[]model.Notification] "Notifications"
// @Failure 500 {object} response.Error
// @Router /v1/notifications [get]
// @Security BearerAuth
func (handler *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNotifications")
	defer scope.End()

	res, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notifications")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ClearNotifications removes every notification.
// @Summary Clear notifications
// @Tags Notification
// @Produce json
// @Success 200 {object} response.Message "Notifications cleared"
// @Failure 500 {object} response.Error
// @Router /v1/notifications [delete]
// @Security BearerAuth
func (handler *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearNotifications")
	defer scope.End()

	if err := handler.service.Clear(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to clear notifications")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Notifications cleared")
}
