package analytics

import (
	"net/http"

	"courtbook/infras/otel"
	"courtbook/internal/domains/analytics/service"
	"courtbook/shared/constant"
	"courtbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Analytics
	otel    otel.Otel
}

func New(service service.Analytics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/analytics", handler.GetAnalytics)
}

// GetAnalytics returns the revenue and usage report.
// @Summary Get analytics
// @Description Revenue, per-court totals, hourly histogram and membership breakdown over active bookings.
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Data[model.Report] "Analytics report"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/analytics [get]
// @Security BearerAuth
func (handler *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAnalytics")
	defer scope.End()

	res, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get analytics")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
