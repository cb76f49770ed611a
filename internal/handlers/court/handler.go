package court

import (
	"mime/multipart"
	"net/http"

	"courtbook/infras/otel"
	"courtbook/internal/domains/court/model"
	"courtbook/internal/domains/court/model/dto"
	"courtbook/internal/domains/court/service"
	"courtbook/shared"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/validator"
	"courtbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Court
	otel    otel.Otel
}

func New(service service.Court, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/courts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCourt)
		routerGroup.Get("/", handler.GetCourts)
		routerGroup.Get("/status", handler.GetCourtStatus)
		routerGroup.Get("/{id}", handler.GetCourtByID)
		routerGroup.Patch("/{id}", handler.UpdateCourt)
		routerGroup.Post("/{id}/toggle", handler.ToggleCourt)
		routerGroup.Delete("/{id}", handler.DeleteCourt)
	})
}

// CreateCourt handles the creation of a new court.
// @Summary Create a new court
// @Description Create a court with an optional image.
// @Tags Court
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Court name"
// @Param sport formData string true "Sport"
// @Param base_rate formData number true "Hourly rate"
// @Param max_players formData integer false "Maximum players, 0 for unlimited"
// @Param team_size formData integer false "Players per team"
// @Param active formData boolean false "Court active status"
// @Param image formData file false "Court image"
// @Success 201 {object} response.Data[dto.CourtResponse] "Court created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts [post]
// @Security BearerAuth
func (handler *Handler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCourt")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.CreateCourtRequest{
		Name:       r.FormValue(model.FieldName),
		Sport:      r.FormValue(model.FieldSport),
		BaseRate:   shared.ConvertStringToFloat(r.FormValue(model.FieldBaseRate)),
		MaxPlayers: shared.ConvertStringToInt(r.FormValue(model.FieldMaxPlayers)),
		TeamSize:   shared.ConvertStringToInt(r.FormValue(model.FieldTeamSize)),
		Active:     shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	if file, header := formImage(r); file != nil {
		req.Image = header
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create court")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Court created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetCourts lists courts. Callers without an admin role only see active courts.
// @Summary Get all courts
// @Tags Court
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param sport query string false "Filter by sport"
// @Param active query boolean false "Filter by active status (admin only)"
// @Success 200 {object} response.Data[dto.GetCourtsResponse] "List of courts"
// @Failure 500 {object} response.Error
// @Router /v1/courts [get]
func (handler *Handler) GetCourts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := query.Get(constant.RequestParamName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if sport := query.Get(constant.RequestParamSport); sport != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSport,
			Operator: gDto.FilterOperatorEq,
			Value:    sport,
			Table:    model.TableName,
		})
	}

	active := shared.ConvertStringToBool(query.Get(constant.RequestParamActive))
	if !isAdmin(r) {
		visible := true
		active = &visible
	}

	if active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	courts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get courts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, courts)
}

// GetCourtStatus reports which active courts are busy right now.
// @Summary Get live court status
// @Tags Court
// @Produce json
// @Success 200 {object} response.Data[[]dto.CourtStatusResponse] "Court status"
// @Router /v1/courts/status [get]
func (handler *Handler) GetCourtStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourtStatus")
	defer scope.End()

	res, err := handler.service.Status(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get court status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetCourtByID retrieves a court by its ID.
// @Summary Get a court by ID
// @Tags Court
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} response.Data[dto.CourtResponse] "Court details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [get]
func (handler *Handler) GetCourtByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourtByID")
	defer scope.End()

	court, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get court")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, court)
}

// UpdateCourt updates a court.
// @Summary Update a court
// @Tags Court
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Court ID"
// @Param name formData string false "Court name"
// @Param sport formData string false "Sport"
// @Param base_rate formData number false "Hourly rate"
// @Param max_players formData integer false "Maximum players"
// @Param team_size formData integer false "Players per team"
// @Param active formData boolean false "Court active status"
// @Param image formData file false "Court image"
// @Success 200 {object} response.Message "Court updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCourt")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateCourtRequest{
		Name:     r.FormValue(model.FieldName),
		Sport:    r.FormValue(model.FieldSport),
		BaseRate: shared.ConvertStringToFloat(r.FormValue(model.FieldBaseRate)),
		Active:   shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	if value := r.FormValue(model.FieldMaxPlayers); value != constant.Empty {
		maxPlayers := shared.ConvertStringToInt(value)
		req.MaxPlayers = &maxPlayers
	}

	if value := r.FormValue(model.FieldTeamSize); value != constant.Empty {
		teamSize := shared.ConvertStringToInt(value)
		req.TeamSize = &teamSize
	}

	if file, header := formImage(r); file != nil {
		req.Image = header
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update court")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Court updated successfully")
}

// ToggleCourt flips a court between active and inactive.
// @Summary Toggle court active status
// @Tags Court
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} response.Data[dto.CourtResponse] "Updated court"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id}/toggle [post]
// @Security BearerAuth
func (handler *Handler) ToggleCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleCourt")
	defer scope.End()

	res, err := handler.service.ToggleActive(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle court")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteCourt deletes a court that has no bookings.
// @Summary Delete a court
// @Tags Court
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} response.Message "Court deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCourt")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete court")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Court deleted successfully")
}

func formImage(r *http.Request) (multipart.File, *multipart.FileHeader) {
	file, header, err := r.FormFile(model.FieldImage)
	if err != nil {
		return nil, nil
	}

	return file, header
}

func isAdmin(r *http.Request) bool {
	role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)

	return role == constant.RoleAdmin || role == constant.RoleSuperAdmin
}
