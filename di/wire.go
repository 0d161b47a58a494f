//go:build wireinject
// +build wireinject

package di

import (
	"boda/config"
	"boda/infras/jwt"
	"boda/infras/kafka"
	"boda/infras/otel"
	"boda/infras/postgres"
	"boda/infras/redis"
	"boda/permissions"
	"boda/shared/cache"
	"boda/transport/http"
	"boda/transport/http/middleware"
	"boda/transport/http/router"

	adminHandler "boda/internal/handlers/admin"
	authHandler "boda/internal/handlers/auth"
	guestHandler "boda/internal/handlers/guest"
	settingHandler "boda/internal/handlers/setting"
	statsHandler "boda/internal/handlers/stats"
	tableHandler "boda/internal/handlers/table"

	authService "boda/internal/domains/auth/service"
	guestRepository "boda/internal/domains/guest/repository"
	guestService "boda/internal/domains/guest/service"
	seatingService "boda/internal/domains/seating/service"
	settingRepository "boda/internal/domains/setting/repository"
	settingService "boda/internal/domains/setting/service"
	statsService "boda/internal/domains/stats/service"
	tableRepository "boda/internal/domains/table/repository"
	tableService "boda/internal/domains/table/service"
	userRepository "boda/internal/domains/user/repository"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var settingDomain = wire.NewSet(
	settingRepository.New,
	settingService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	seatingService.New,
	guestService.New,
	statsService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	settingDomain,
	tableDomain,
	guestDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	guestHandler.New,
	tableHandler.New,
	settingHandler.New,
	statsHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
