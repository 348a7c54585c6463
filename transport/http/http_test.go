package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pmsconsole/config"
	otelMocks "pmsconsole/infras/otel/mocks"
	authMocks "pmsconsole/internal/domains/auth/service/mocks"
	"pmsconsole/permissions"
	"pmsconsole/shared/cache"
	transport "pmsconsole/transport/http"
	"pmsconsole/transport/http/middleware"
	"pmsconsole/transport/http/router"
	"pmsconsole/transport/http/view"
	"pmsconsole/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newServer(t *testing.T) *transport.HTTP {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.CookieName = "access_token"

	renderer, err := view.Parse(cfg, web.Templates())
	require.NoError(t, err)

	ot := otelMocks.NewOtel()
	auth := authMocks.NewMockAuth(gomock.NewController(t))

	r := router.New(cfg, router.DomainHandlers{}, router.Middlewares{
		App:      middleware.NewAppMiddleware(ot, cfg, cache.NewMemoryCache(), renderer),
		AuthRole: middleware.NewAuthRoleMiddleware(auth, ot, permissions.Get(), cfg, renderer),
	}, renderer)

	return transport.New(cfg, r, ot)
}

func TestServeHTTP(t *testing.T) {
	server := newServer(t)

	tests := []struct {
		name string
		path string
		code int
	}{
		{name: "health", path: "/healthz", code: http.StatusOK},
		{name: "static asset", path: "/static/app.css", code: http.StatusOK},
		{name: "unknown page", path: "/nowhere", code: http.StatusNotFound},
		{name: "page needs a session", path: "/bookings", code: http.StatusSeeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.code, rec.Code)
		})
	}

	assert.Equal(t, transport.ServerStateReady, server.State())
}
