//go:build wireinject
// +build wireinject

package di

import (
	"denta/config"
	"denta/infras/jwt"
	"denta/infras/kafka"
	"denta/infras/mailer"
	"denta/infras/otel"
	"denta/infras/postgres"
	"denta/infras/redis"
	"denta/permissions"
	"denta/shared/cache"
	"denta/transport/http"
	"denta/transport/http/middleware"
	"denta/transport/http/router"

	"github.com/google/wire"

	authService "denta/internal/domains/auth/service"
	bookingRepository "denta/internal/domains/booking/repository"
	bookingService "denta/internal/domains/booking/service"
	paymentRepository "denta/internal/domains/payment/repository"
	paymentService "denta/internal/domains/payment/service"
	treatmentRepository "denta/internal/domains/treatment/repository"
	treatmentService "denta/internal/domains/treatment/service"
	userRepository "denta/internal/domains/user/repository"
	userService "denta/internal/domains/user/service"

	authHandler "denta/internal/handlers/auth"
	bookingHandler "denta/internal/handlers/booking"
	paymentHandler "denta/internal/handlers/payment"
	treatmentHandler "denta/internal/handlers/treatment"
	userHandler "denta/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	mailer.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var treatmentDomain = wire.NewSet(
	treatmentRepository.New,
	treatmentService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	treatmentDomain,
	bookingDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	treatmentHandler.New,
	bookingHandler.New,
	paymentHandler.New,
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
