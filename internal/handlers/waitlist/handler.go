package waitlist

import (
	"net/http"

	"courtbook/infras/otel"
	"courtbook/internal/domains/waitlist/model"
	"courtbook/internal/domains/waitlist/model/dto"
	"courtbook/internal/domains/waitlist/service"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/validator"
	"courtbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Waitlist
	otel    otel.Otel
}

func New(service service.Waitlist, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/waitlist", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.JoinWaitlist)
		routerGroup.Get("/", handler.GetWaitlist)
		routerGroup.Delete("/{id}", handler.RemoveEntry)
	})
}

// JoinWaitlist queues the caller for a taken slot.
// @Summary Join the waitlist
// @Tags Waitlist
// @Accept json
// @Produce json
// @Param request body dto.JoinWaitlistRequest true "Join Waitlist Request"
// @Success 201 {object} response.Data[dto.EntryResponse] "Waitlist entry"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waitlist [post]
// @Security BearerAuth
func (handler *Handler) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".JoinWaitlist")
	defer scope.End()

	req := dto.JoinWaitlistRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Join(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to join waitlist")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetWaitlist lists waitlist entries.
// @Summary Get waitlist entries
// @Tags Waitlist
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param court_id query string false "Filter by court"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetEntriesResponse] "Waitlist entries"
// @Failure 500 {object} response.Error
// @Router /v1/waitlist [get]
// @Security BearerAuth
func (handler *Handler) GetWaitlist(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWaitlist")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, pair := range [][2]string{
		{constant.RequestParamCourtID, model.FieldCourtID},
		{constant.RequestParamDate, model.FieldDate},
	} {
		if value := r.URL.Query().Get(pair[0]); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    pair[1],
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get waitlist")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RemoveEntry deletes a waitlist entry.
// @Summary Remove a waitlist entry
// @Tags Waitlist
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Message "Waitlist entry removed"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waitlist/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveEntry")
	defer scope.End()

	if err := handler.service.Remove(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove waitlist entry")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Waitlist entry removed")
}
