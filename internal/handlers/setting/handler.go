package setting

import (
	"net/http"

	"boda/infras/otel"
	"boda/internal/domains/setting/model/dto"
	"boda/internal/domains/setting/service"
	"boda/shared/constant"
	"boda/shared/validator"
	"boda/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Setting
	otel    otel.Otel
}

func New(service service.Setting, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSettings)
		routerGroup.Put("/{key}", handler.UpdateSetting)
	})
}

// GetSettings retrieves every setting.
// @Summary Get all settings
// @Description Retrieve every event setting, ordered by key.
// @Tags Setting
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetSettingsResponse] "List of settings"
// @Failure 500 {object} response.Error
// @Router /v1/settings [get]
// @Security BearerAuth
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	settings, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get settings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Settings retrieved successfully")

	response.WithJSON(w, http.StatusOK, settings)
}

// UpdateSetting updates an existing setting value by its key.
// @Summary Update a setting by key
// @Description Update the value of a pre-seeded setting; unknown keys are rejected.
// @Tags Setting
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param request body dto.UpdateSettingRequest true "Update Setting Request"
// @Success 200 {object} response.Data[dto.UpdateSettingResponse] "Setting updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/{key} [put]
// @Security BearerAuth
func (handler *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSetting")
	defer scope.End()

	key := chi.URLParam(r, constant.RequestParamKey)

	req := dto.UpdateSettingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Set(ctx, key, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update setting")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Setting updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}
