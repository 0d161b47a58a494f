package stats

import (
	"net/http"

	"boda/infras/otel"
	"boda/internal/domains/stats/service"
	"boda/shared/constant"
	"boda/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Stats
	otel    otel.Otel
}

func New(service service.Stats, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/stats", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetOverall)
		routerGroup.Get("/attendance", handler.GetAttendance)
		routerGroup.Get("/transportation", handler.GetTransport)
		routerGroup.Get("/allergies", handler.GetAllergies)
	})
}

// GetOverall retrieves the overall guest statistics.
// @Summary Get overall stats
// @Description Retrieve guest totals, attendance and transport counts.
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Data[dto.OverallStatsResponse] "Overall stats"
// @Failure 500 {object} response.Error
// @Router /v1/stats [get]
// @Security BearerAuth
func (handler *Handler) GetOverall(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverall")
	defer scope.End()

	res, err := handler.service.Overall(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get overall stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAttendance retrieves the attendance breakdown.
// @Summary Get attendance stats
// @Description Retrieve confirmed and pending guest counts.
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Data[dto.AttendanceStatsResponse] "Attendance stats"
// @Failure 500 {object} response.Error
// @Router /v1/stats/attendance [get]
// @Security BearerAuth
func (handler *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAttendance")
	defer scope.End()

	res, err := handler.service.Attendance(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get attendance stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTransport retrieves the transport breakdown.
// @Summary Get transport stats
// @Description Retrieve guests needing and not needing transport.
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Data[dto.TransportStatsResponse] "Transport stats"
// @Failure 500 {object} response.Error
// @Router /v1/stats/transportation [get]
// @Security BearerAuth
func (handler *Handler) GetTransport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransport")
	defer scope.End()

	res, err := handler.service.Transport(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get transport stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAllergies retrieves the allergy counts.
// @Summary Get allergy stats
// @Description Retrieve guest counts grouped by allergy text.
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Data[dto.GetAllergyStatsResponse] "Allergy stats"
// @Failure 500 {object} response.Error
// @Router /v1/stats/allergies [get]
// @Security BearerAuth
func (handler *Handler) GetAllergies(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllergies")
	defer scope.End()

	res, err := handler.service.Allergies(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get allergy stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
