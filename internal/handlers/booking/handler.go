package booking

import (
	"net/http"
	"strings"

	"courtbook/infras/otel"
	"courtbook/internal/domains/booking/model/dto"
	"courtbook/internal/domains/booking/service"
	"courtbook/shared"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/validator"
	"courtbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.ConfirmBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/quote", handler.QuoteBooking)
		routerGroup.Get("/me", handler.GetMyBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Delete("/{id}", handler.PurgeBooking)
	})

	router.Get("/slots", handler.GetSlots)
	router.Get("/locks", handler.GetLock)
}

// ConfirmBooking rechecks a selection against fresh state and books it.
// @Summary Confirm a booking
// @Description Validates the selection, checks conflicts, capacity and soft locks, prices it and persists the booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.ConfirmBookingRequest true "Confirm Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking confirmed"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmBooking")
	defer scope.End()

	req := dto.ConfirmBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Confirm(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking confirmed " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// QuoteBooking prices a tentative selection without booking it.
// @Summary Quote a booking
// @Description Compute the cost breakdown for a selection. Nothing is written.
// @Tags Booking
// @Produce json
// @Param court_id query string true "Court ID"
// @Param start query string true "Start time (HH:MM)"
// @Param end query string true "End time (HH:MM)"
// @Param players query integer false "Number of players"
// @Param membership query string false "Membership tier ID"
// @Param equipment query string false "Comma separated equipment IDs"
// @Param promo_code query string false "Promo code"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Cost breakdown"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/quote [get]
func (handler *Handler) QuoteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".QuoteBooking")
	defer scope.End()

	query := r.URL.Query()

	req := dto.QuoteRequest{
		CourtID:    query.Get(constant.RequestParamCourtID),
		Start:      query.Get(constant.RequestParamStart),
		End:        query.Get(constant.RequestParamEnd),
		Players:    shared.ConvertStringToInt(query.Get(constant.RequestParamPlayers)),
		Membership: query.Get(constant.RequestParamMembership),
		Equipment:  splitList(query.Get(constant.RequestParamEquipment)),
		PromoCode:  query.Get(constant.RequestParamPromoCode),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetSlots returns the availability grid of a court for a date.
// @Summary Get slot availability
// @Description Every slot of the day with its booked, blocked, capacity and lock state.
// @Tags Booking
// @Produce json
// @Param court_id query string true "Court ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.SlotsResponse] "Availability grid"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/slots [get]
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	courtID := r.URL.Query().Get(constant.RequestParamCourtID)
	date := r.URL.Query().Get(constant.RequestParamDate)

	if err := validator.ValidateVar(courtID, "required"); err != nil {
		response.WithError(w, err)

		return
	}

	if err := validator.ValidateVar(date, "required,datetime=2006-01-02"); err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Slots(ctx, courtID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyBookings lists the caller's active bookings.
// @Summary Get my bookings
// @Description Non-cancelled, non-event bookings made with the caller's email.
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[[]dto.BookingResponse] "Bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	res, err := handler.service.Me(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookings lists bookings for administrators.
// @Summary Get all bookings
// @Description Paginated booking list with optional filters.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param court_id query string false "Filter by court"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param status query string false "Filter by status"
// @Param user_email query string false "Filter by user email"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	filter := dto.Filter{
		CourtID:   query.Get(constant.RequestParamCourtID),
		Date:      query.Get(constant.RequestParamDate),
		Status:    query.Get(constant.RequestParamStatus),
		UserEmail: query.Get(constant.RequestParamUserEmail),
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingByID retrieves one booking.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CancelBooking cancels a booking owned by the caller.
// @Summary Cancel a booking
// @Description The owner or an administrator may cancel. Waitlisted players for the slot are reported in the notification.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Cancelled booking"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	res, err := handler.service.Cancel(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking cancelled " + res.ID)

	response.WithJSON(w, http.StatusOK, res)
}

// PurgeBooking permanently deletes a booking.
// @Summary Delete a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) PurgeBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PurgeBooking")
	defer scope.End()

	if err := handler.service.Purge(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

// GetLock reports the pending soft lock on a slot.
// @Summary Get the pending lock on a slot
// @Tags Booking
// @Produce json
// @Param court_id query string true "Court ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start query string true "Start time (HH:MM)"
// @Param end query string true "End time (HH:MM)"
// @Success 200 {object} response.Data[dto.LockResponse] "Pending lock"
// @Failure 400 {object} response.Error
// @Router /v1/locks [get]
// @Security BearerAuth
func (handler *Handler) GetLock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLock")
	defer scope.End()

	query := r.URL.Query()

	req := dto.LockRequest{
		CourtID: query.Get(constant.RequestParamCourtID),
		Date:    query.Get(constant.RequestParamDate),
		Start:   query.Get(constant.RequestParamStart),
		End:     query.Get(constant.RequestParamEnd),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Lock(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lock")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func splitList(value string) []string {
	if value == constant.Empty {
		return nil
	}

	var items []string

	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != constant.Empty {
			items = append(items, item)
		}
	}

	return items
}
