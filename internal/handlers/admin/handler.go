package admin

import (
	"net/http"

	"boda/infras/otel"
	"boda/internal/domains/guest/service"
	"boda/shared/constant"
	"boda/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler exposes development-only maintenance endpoints. The router leaves
// it out entirely in production.
type Handler struct {
	guestService service.Guest
	otel         otel.Otel
}

func New(guestService service.Guest, otel otel.Otel) Handler {
	return Handler{
		guestService: guestService,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Post("/reset", handler.Reset)
	})
}

// Reset wipes every guest row.
// @Summary Reset guest data
// @Description Truncate the guest table; available outside production only.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Message "Guest data reset successfully"
// @Failure 500 {object} response.Error
// @Router /v1/admin/reset [post]
// @Security BearerAuth
func (handler *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reset")
	defer scope.End()

	if err := handler.guestService.Reset(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reset guest data")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Guest data reset by user " + user)

	response.WithMessage(w, http.StatusOK, "Guest data reset successfully")
}
