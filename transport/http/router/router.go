package router

import (
	"net/http"

	"pmsconsole/config"
	"pmsconsole/internal/handlers/auth"
	"pmsconsole/internal/handlers/booking"
	"pmsconsole/internal/handlers/calendar"
	"pmsconsole/internal/handlers/customer"
	"pmsconsole/internal/handlers/dashboard"
	"pmsconsole/internal/handlers/roomtype"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/flash"
	"pmsconsole/transport/http/middleware"
	"pmsconsole/transport/http/view"
	"pmsconsole/web"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

const staticPrefix = "/static/"

type DomainHandlers struct {
	Auth      auth.Handler
	Dashboard dashboard.Handler
	Booking   booking.Handler
	Calendar  calendar.Handler
	Customer  customer.Handler
	RoomType  roomtype.Handler
}

type Middlewares struct {
	App      middleware.AppMiddleware
	AuthRole middleware.AuthRole
}

type Router struct {
	DomainHandlers DomainHandlers
	Middlewares    Middlewares
	View           view.Renderer
	SecureCookies  bool
}

// SetupRoutes mounts the static assets and every console page. Pages run behind
// the session, CSRF and role checks, assets and health checks do not.
func (r *Router) SetupRoutes(router chi.Router, health http.HandlerFunc) {
	app := r.Middlewares.App

	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		chiMiddleware.Recoverer,
		app.Tracing,
		app.RequestLog,
		app.CORS(),
	)

	router.Get("/healthz", health)
	router.Handle(staticPrefix+"*", http.StripPrefix(staticPrefix, http.FileServerFS(web.Static())))

	pageMiddlewares := chi.Middlewares{
		app.RateLimit(),
		flash.Middleware(r.SecureCookies),
		app.CSRF(),
		r.Middlewares.AuthRole.Session,
	}

	router.NotFound(pageMiddlewares.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.View.Error(w, req, failure.NotFound("Page not found"))
	}).ServeHTTP)

	router.Group(func(pages chi.Router) {
		pages.Use(pageMiddlewares...)
		pages.Use(r.Middlewares.AuthRole.Guard)

		r.DomainHandlers.Auth.Router(pages)
		r.DomainHandlers.Dashboard.Router(pages)
		r.DomainHandlers.Booking.Router(pages)
		r.DomainHandlers.Calendar.Router(pages)
		r.DomainHandlers.Customer.Router(pages)
		r.DomainHandlers.RoomType.Router(pages)
	})
}

func New(cfg *config.Config, domainHandlers DomainHandlers, middlewares Middlewares, view view.Renderer) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middlewares:    middlewares,
		View:           view,
		SecureCookies:  cfg.Session.Secure,
	}
}
