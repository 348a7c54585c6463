package middleware

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"pmsconsole/config"
	"pmsconsole/infras/otel"
	"pmsconsole/shared/cache"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/failure"
	"pmsconsole/transport/http/view"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"
	"github.com/rs/zerolog/log"
)

const (
	otelHTTPScopeName = "http"

	csrfFieldName = "csrf_token"
	csrfKeyLength = 32
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RequestLog(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	CORS() func(http.Handler) http.Handler
	CSRF() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.Cache
	view   view.Renderer
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.Cache, view view.Renderer) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
		view:   view,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		// forwarded to the backend by pmsapi
		ctx = context.WithValue(ctx, constant.ContextKeyRequestID, chiMiddleware.GetReqID(ctx))

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": r.UserAgent(),
			"http.host":       r.Host,
			"http.source":     r.RemoteAddr,
			"http.request_id": chiMiddleware.GetReqID(ctx),
		})

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			scope.SetAttribute("http.route", rctx.RoutePattern())
		}

		scope.SetAttribute("http.status_code", ww.Status())

		if ww.Status() >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s %s answered %d", r.Method, r.URL.Path, ww.Status()))
		}
	})
}

// RequestLog writes one line per request.
func (a *appMiddleware) RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		event := log.Info()
		if ww.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}

		event.
			Str("request_id", chiMiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}

func (a *appMiddleware) CORS() func(http.Handler) http.Handler {
	corsConfig := a.config.App.CORS

	if !corsConfig.Enable {
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	})
}

// CSRF protects every form post. Without SESSION_CSRF_KEY a random key is used,
// which invalidates open forms on restart and differs between replicas.
func (a *appMiddleware) CSRF() func(http.Handler) http.Handler {
	key := []byte(a.config.Session.CSRFKey)

	if len(key) != csrfKeyLength {
		log.Warn().Int("length", len(key)).Msg("SESSION_CSRF_KEY is not 32 bytes, using a random key")

		key = make([]byte, csrfKeyLength)
		if _, err := rand.Read(key); err != nil {
			log.Fatal().Err(err).Msg("Failed to generate CSRF key")
		}
	}

	protect := csrf.Protect(key,
		csrf.Secure(a.config.Session.Secure),
		csrf.Path("/"),
		csrf.FieldName(csrfFieldName),
		csrf.RequestHeader(constant.RequestHeaderCSRF),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Warn().Err(csrf.FailureReason(r)).Str("path", r.URL.Path).Msg("CSRF check failed")

			a.view.Error(w, r, failure.Forbidden("Your form expired, please reload the page and try again"))
		})),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Origin checks assume TLS unless told otherwise.
			if !a.config.Session.Secure {
				r = csrf.PlaintextHTTPRequest(r)
			}

			protected.ServeHTTP(w, r)
		})
	}
}
