package settings

import (
	"net/http"

	"courtbook/infras/otel"
	"courtbook/internal/domains/settings/model/dto"
	"courtbook/internal/domains/settings/service"
	"courtbook/shared"
	"courtbook/shared/constant"
	"courtbook/shared/validator"
	"courtbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Settings
	otel    otel.Otel
}

func New(service service.Settings, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings", func(r chi.Router) {
		r.Get("/", handler.GetSettings)
		r.Get("/features", handler.GetFeatures)
		r.Patch("/features", handler.UpdateFeatures)
		r.Put("/hours", handler.SetHours)
		r.Post("/blocked", handler.AddBlocked)
		r.Delete("/blocked/{index}", handler.RemoveBlocked)
		r.Post("/peak-rules", handler.AddPeakRule)
		r.Delete("/peak-rules/{index}", handler.RemovePeakRule)
		r.Post("/tiers", handler.AddTier)
		r.Delete("/tiers/{id}", handler.RemoveTier)
		r.Put("/verified-members", handler.UpsertVerifiedMember)
		r.Delete("/verified-members/{email}", handler.RemoveVerifiedMember)
		r.Post("/equipment", handler.AddEquipment)
		r.Post("/equipment/{id}/stock", handler.AdjustStock)
		r.Delete("/equipment/{id}", handler.RemoveEquipment)
		r.Post("/bundles", handler.AddBundle)
		r.Delete("/bundles/{id}", handler.RemoveBundle)
		r.Post("/promos", handler.AddPromo)
		r.Post("/promos/{code}/toggle", handler.TogglePromo)
		r.Delete("/promos/{code}", handler.RemovePromo)
	})
}

// fail records err on the span and writes it to the client.
func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

func indexParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, constant.RequestParamIndex)

	if err := validator.ValidateVar(raw, "required,numeric"); err != nil {
		return 0, err
	}

	return shared.ConvertStringToInt(raw), nil
}

// GetSettings returns the whole configuration.
// @Summary Get settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Data[rules.Settings] "Settings"
// @Failure 500 {object} response.Error
// @Router /v1/settings [get]
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	res, err := handler.service.Get(ctx)
	if err != nil {
		fail(w, scope, err, "failed to get settings")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetFeatures returns the feature flags.
// @Summary Get feature flags
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Data[rules.Features] "Feature flags"
// @Failure 500 {object} response.Error
// @Router /v1/settings/features [get]
func (handler *Handler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeatures")
	defer scope.End()

	res, err := handler.service.Get(ctx)
	if err != nil {
		fail(w, scope, err, "failed to get features")

		return
	}

	response.WithJSON(w, http.StatusOK, res.Features)
}

// UpdateFeatures sets any subset of the feature flags.
// @Summary Update feature flags
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateFeaturesRequest true "Flags to change"
// @Success 200 {object} response.Data[rules.Features] "Feature flags"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/features [patch]
// @Security BearerAuth
func (handler *Handler) UpdateFeatures(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFeatures")
	defer scope.End()

	req := dto.UpdateFeaturesRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.UpdateFeatures(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to update features")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetHours sets operating hours and slot length.
// @Summary Set operating hours
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.SetHoursRequest true "Operating hours"
// @Success 200 {object} response.Data[rules.TimeSlotConfig] "Time slot configuration"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/hours [put]
// @Security BearerAuth
func (handler *Handler) SetHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetHours")
	defer scope.End()

	req := dto.SetHoursRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.SetHours(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to set hours")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AddBlocked adds a blocked period.
// @Summary Add a blocked period
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.BlockedPeriodRequest true "Blocked period"
// @Success 201 {object} response.Data[rules.TimeSlotConfig] "Time slot configuration"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/settings/blocked [post]
// @Security BearerAuth
func (handler *Handler) AddBlocked(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddBlocked")
	defer scope.End()

	req := dto.BlockedPeriodRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.AddBlocked(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to add blocked period")

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// RemoveBlocked removes a blocked period by position.
// @Summary Remove a blocked period
// @Tags Settings
// @Produce json
// @Param index path integer true "Blocked period index"
// @Success 200 {object} response.Message "Blocked period removed"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/settings/blocked/{index} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveBlocked(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveBlocked")
	defer scope.End()

	index, err := indexParam(r)
	if err != nil {
		fail(w, scope, err, "failed to parse index")

		return
	}

	if err := handler.service.RemoveBlocked(ctx, index); err != nil {
		fail(w, scope, err, "failed to remove blocked period")

		return
	}

	response.WithMessage(w, http.StatusOK, "Blocked period removed")
}

// AddPeakRule adds a peak pricing window.
// @Summary Add a peak rule
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.PeakRuleRequest true "Peak rule"
// @Success 201 {object} response.Data[[]rules.PeakRule] "Peak rules"
// @Failure 400 {object} response.Error
// @Router /v1/settings/peak-rules [post]
// @Security BearerAuth
func (handler *Handler) AddPeakRule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddPeakRule")
	defer scope.End()

	req := dto.PeakRuleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.AddPeakRule(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to add peak rule")

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// RemovePeakRule removes a peak rule by position.
// @Summary Remove a peak rule
// @Tags Settings
// @Produce json
// @Param index path integer true "Peak rule index"
// @Success 200 {object} response.Message "Peak rule removed"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/settings/peak-rules/{index} [delete]
// @Security BearerAuth
func (handler *Handler) RemovePeakRule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemovePeakRule")
	defer scope.End()

	index, err := indexParam(r)
	if err != nil {
		fail(w, scope, err, "failed to parse index")

		return
	}

	if err := handler.service.RemovePeakRule(ctx, index); err != nil {
		fail(w, scope, err, "failed to remove peak rule")

		return
	}

	response.WithMessage(w, http.StatusOK, "Peak rule removed")
}

// AddTier adds a membership tier.
// @Summary Add a membership tier
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.TierRequest true "Tier"
// @Success 201 {object} response.Data[rules.MembershipTier] "Tier"
// @Failure 400 {object} response.Error
// @Router /v1/settings/tiers [post]
// @Security BearerAuth
func (handler *Handler) AddTier(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddTier")
	defer scope.End()

	req := dto.TierRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.AddTier(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to add tier")

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// RemoveTier removes a membership tier.
// @Summary Remove a membership tier
// @Tags Settings
// @Produce json
// @Param id path string true "Tier ID"
// @Success 200 {object} response.Message "Tier removed"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/settings/tiers/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveTier(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveTier")
	defer scope.End()

	if err := handler.service.RemoveTier(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to remove tier")

		return
	}

	response.WithMessage(w, http.StatusOK, "Tier removed")
}

// UpsertVerifiedMember verifies an email for a tier.
// @Summary Verify a member
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.VerifiedMemberRequest true "Verified member"
// @Success 200 {object} response.Data[rules.VerifiedMember] "Verified member"
// @Failure 400 {object} response.Error
// @Router /v1/settings/verified-members [put]
// @Security BearerAuth
func (handler *Handler) UpsertVerifiedMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertVerifiedMember")
	defer scope.End()

	req := dto.VerifiedMemberRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.UpsertVerifiedMember(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to verify member")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RemoveVerifiedMember revokes a member's verification.
// @Summary Remove a verified member
// @Tags Settings
// @Produce json
// @Param email path string true "Member email"
// @Success 200 {object} response.Message "Verified member removed"
// @Failure 404 {object} response.Error
// @Router /v1/settings/verified-members/{email} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveVerifiedMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveVerifiedMember")
	defer scope.End()

	if err := handler.service.RemoveVerifiedMember(ctx, chi.URLParam(r, constant.RequestParamEmail)); err != nil {
		fail(w, scope, err, "failed to remove verified member")

		return
	}

	response.WithMessage(w, http.StatusOK, "Verified member removed")
}

// AddEquipment adds a rentable equipment item.
// @Summary Add equipment
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.EquipmentRequest true "Equipment"
// @Success 201 {object} response.Data[rules.Equipment] "Equipment"
// @Failure 400 {object} response.Error
// @Router /v1/settings/equipment [post]
// @Security BearerAuth
func (handler *Handler) AddEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddEquipment")
	defer scope.End()

	req := dto.EquipmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.AddEquipment(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to add equipment")

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// AdjustStock moves an item's stock by one unit.
// @Summary Adjust equipment stock
// @Tags Settings
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body dto.AdjustStockRequest true "Stock change"
// @Success 200 {object} response.Data[rules.Equipment] "Equipment"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/settings/equipment/{id}/stock [post]
// @Security BearerAuth
func (handler *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdjustStock")
	defer scope.End()

	req := dto.AdjustStockRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.AdjustStock(ctx, chi.URLParam(r, constant.RequestParamID), req.Delta)
	if err != nil {
		fail(w, scope, err, "failed to adjust stock")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RemoveEquipment removes an equipment item.
// @Summary Remove equipment
// @Tags Settings
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} response.Message "Equipment removed"
// @Failure 404 {object} response.Error
// @Router /v1/settings/equipment/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveEquipment")
	defer scope.End()

	if err := handler.service.RemoveEquipment(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to remove equipment")

		return
	}

	response.WithMessage(w, http.StatusOK, "Equipment removed")
}

// AddBundle adds an equipment bundle.
// @Summary Add a bundle
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.BundleRequest true "Bundle"
// @Success 201 {object} response.Data[rules.Bundle] "Bundle"
// @Failure 400 {object} response.Error
// @Router /v1/settings/bundles [post]
// @Security BearerAuth
func (handler *Handler) AddBundle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddBundle")
	defer scope.End()

	req := dto.BundleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.AddBundle(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to add bundle")

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// RemoveBundle removes a bundle.
// @Summary Remove a bundle
// @Tags Settings
// @Produce json
// @Param id path string true "Bundle ID"
// @Success 200 {object} response.Message "Bundle removed"
// @Failure 404 {object} response.Error
// @Router /v1/settings/bundles/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveBundle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveBundle")
	defer scope.End()

	if err := handler.service.RemoveBundle(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to remove bundle")

		return
	}

	response.WithMessage(w, http.StatusOK, "Bundle removed")
}

// AddPromo adds a promo code.
// @Summary Add a promo code
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.PromoRequest true "Promo code"
// @Success 201 {object} response.Data[rules.PromoCode] "Promo code"
// @Failure 400 {object} response.Error
// @Router /v1/settings/promos [post]
// @Security BearerAuth
func (handler *Handler) AddPromo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddPromo")
	defer scope.End()

	req := dto.PromoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.AddPromo(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to add promo code")

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// TogglePromo flips a promo code between active and inactive.
// @Summary Toggle a promo code
// @Tags Settings
// @Produce json
// @Param code path string true "Promo code"
// @Success 200 {object} response.Data[rules.PromoCode] "Promo code"
// @Failure 404 {object} response.Error
// @Router /v1/settings/promos/{code}/toggle [post]
// @Security BearerAuth
func (handler *Handler) TogglePromo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TogglePromo")
	defer scope.End()

	res, err := handler.service.TogglePromo(ctx, chi.URLParam(r, constant.RequestParamCode))
	if err != nil {
		fail(w, scope, err, "failed to toggle promo code")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RemovePromo removes a promo code.
// @Summary Remove a promo code
// @Tags Settings
// @Produce json
// @Param code path string true "Promo code"
// @Success 200 {object} response.Message "Promo code removed"
// @Failure 404 {object} response.Error
// @Router /v1/settings/promos/{code} [delete]
// @Security BearerAuth
func (handler *Handler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemovePromo")
	defer scope.End()

	if err := handler.service.RemovePromo(ctx, chi.URLParam(r, constant.RequestParamCode)); err != nil {
		fail(w, scope, err, "failed to remove promo code")

		return
	}

	response.WithMessage(w, http.StatusOK, "Promo code removed")
}
