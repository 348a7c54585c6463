package middleware

import (
	"context"
	"net/http"

	"pmsconsole/config"
	"pmsconsole/infras/jwt"
	"pmsconsole/infras/otel"
	"pmsconsole/infras/pmsapi"
	authModel "pmsconsole/internal/domains/auth/model"
	authService "pmsconsole/internal/domains/auth/service"
	"pmsconsole/permissions"
	"pmsconsole/shared"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/flash"
	"pmsconsole/shared/query"
	"pmsconsole/transport/http/response"
	"pmsconsole/transport/http/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type bootstrapErrorKey struct{}

// Auth resolves the session of every page load.
type Auth interface {
	Session(http.Handler) http.Handler
}

// Role keeps visitors out of routes their session does not allow.
type Role interface {
	Guard(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	auth       authService.Auth
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
	view       view.Renderer
}

func NewAuthRoleMiddleware(auth authService.Auth, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config, view view.Renderer) AuthRole {
	return &authRoleImpl{
		auth:       auth,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
		view:       view,
	}
}

// Session reads the token cookie, bootstraps the session and stores it in the
// request context together with the token and the cache scope of the session.
func (m *authRoleImpl) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		token := m.token(request)
		if token == "" {
			next.ServeHTTP(writer, request)

			return
		}

		ctx := pmsapi.WithToken(request.Context(), token)
		ctx = query.WithScope(ctx, shared.Fingerprint(token))

		spanCtx, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "session.middleware")

		session, err := m.auth.Bootstrap(spanCtx, token)
		if err != nil {
			scope.TraceError(err)

			if failure.IsUnauthorized(err) {
				response.ClearToken(writer, m.cfg)
				flash.Info(ctx, failure.GetMessage(err))
			} else {
				log.Warn().Err(err).Msg("session bootstrap failed")

				ctx = context.WithValue(ctx, bootstrapErrorKey{}, err)
			}
		}

		scope.SetAttribute("session.state", session.State.String())
		scope.End()

		ctx = authModel.WithSession(ctx, session)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// Guard lets public routes through, sends visitors without a session to the
// login page and answers 403 when the role of the user is not allowed.
func (m *authRoleImpl) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "guard.middleware")

		if m.permission == nil {
			scope.End()
			m.view.Error(writer, request, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path := m.route(request)
		permission := m.permission.FindPermissions(path, request.Method)

		scope.SetAttributes(map[string]any{
			"middleware.type": "guard",
			"http.path":       path,
			"http.method":     request.Method,
		})

		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		session := authModel.SessionFrom(ctx)

		if !session.Authenticated() {
			scope.SetAttribute("reason", "unauthenticated")
			scope.End()

			// the token may still be good, the backend just could not confirm it
			if err, ok := ctx.Value(bootstrapErrorKey{}).(error); ok {
				m.view.Error(writer, request, err)

				return
			}

			response.Redirect(writer, request, m.cfg, response.LoginURL(request))

			return
		}

		if !permission.Allows(session.User.Role) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     session.User.Role,
				"allowed_roles": permission.Roles,
				"reason":        "role_not_allowed",
			})
			scope.End()
			m.view.Error(writer, request, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// token prefers the cookie; a bearer header is accepted for scripted access.
func (m *authRoleImpl) token(request *http.Request) string {
	if cookie, err := request.Cookie(m.cfg.Session.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
	if err != nil {
		return ""
	}

	return token
}

// route returns the chi pattern serving the request, or the raw path when no route matches.
func (m *authRoleImpl) route(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	if pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path); pattern != "" {
		return pattern
	}

	return request.URL.Path
}
