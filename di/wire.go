//go:build wireinject
// +build wireinject

package di

import (
	"pmsconsole/config"
	"pmsconsole/infras/jwt"
	"pmsconsole/infras/otel"
	"pmsconsole/permissions"
	"pmsconsole/shared/query"
	"pmsconsole/transport/http"
	"pmsconsole/transport/http/middleware"
	"pmsconsole/transport/http/router"
	"pmsconsole/transport/http/view"

	analyticsRepository "pmsconsole/internal/domains/analytics/repository"
	analyticsService "pmsconsole/internal/domains/analytics/service"
	authRepository "pmsconsole/internal/domains/auth/repository"
	authService "pmsconsole/internal/domains/auth/service"
	bookingRepository "pmsconsole/internal/domains/booking/repository"
	bookingService "pmsconsole/internal/domains/booking/service"
	calendarRepository "pmsconsole/internal/domains/calendar/repository"
	calendarService "pmsconsole/internal/domains/calendar/service"
	customerRepository "pmsconsole/internal/domains/customer/repository"
	customerService "pmsconsole/internal/domains/customer/service"
	roomTypeRepository "pmsconsole/internal/domains/roomtype/repository"
	roomTypeService "pmsconsole/internal/domains/roomtype/service"

	"github.com/google/wire"

	authHandler "pmsconsole/internal/handlers/auth"
	bookingHandler "pmsconsole/internal/handlers/booking"
	calendarHandler "pmsconsole/internal/handlers/calendar"
	customerHandler "pmsconsole/internal/handlers/customer"
	dashboardHandler "pmsconsole/internal/handlers/dashboard"
	roomTypeHandler "pmsconsole/internal/handlers/roomtype"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	jwt.New,
	provideBackend,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Struct(new(router.Middlewares), "*"),
)

var sharedHelpers = wire.NewSet(
	provideCache,
	query.NewStore,
	view.New,
)

var authDomain = wire.NewSet(
	authRepository.New,
	authService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var roomTypeDomain = wire.NewSet(
	roomTypeRepository.New,
	roomTypeService.New,
)

var calendarDomain = wire.NewSet(
	calendarRepository.New,
	calendarService.New,
)

var analyticsDomain = wire.NewSet(
	analyticsRepository.New,
	analyticsService.New,
)

var domains = wire.NewSet(
	authDomain,
	bookingDomain,
	customerDomain,
	roomTypeDomain,
	calendarDomain,
	analyticsDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	dashboardHandler.New,
	bookingHandler.New,
	calendarHandler.New,
	customerHandler.New,
	roomTypeHandler.New,
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
