package router

import (
	"net/http"

	"boda/config"
	"boda/internal/handlers/admin"
	"boda/internal/handlers/auth"
	"boda/internal/handlers/guest"
	"boda/internal/handlers/setting"
	"boda/internal/handlers/stats"
	"boda/internal/handlers/table"
	"boda/shared/constant"
	"boda/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Guest   guest.Handler
	Table   table.Handler
	Setting setting.Handler
	Stats   stats.Handler
	Admin   admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Get("/health", func(writer http.ResponseWriter, _ *http.Request) {
		response.WithMessage(writer, http.StatusOK, "OK")
	})

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Setting.Router(routerGroup)
		r.DomainHandlers.Stats.Router(routerGroup)

		// The reset endpoint never ships to production.
		if r.Config.Server.Env != constant.ServerEnvProduction {
			r.DomainHandlers.Admin.Router(routerGroup)
		}
	})
}

func New(domainHandlers DomainHandlers, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Config:         cfg,
	}
}
