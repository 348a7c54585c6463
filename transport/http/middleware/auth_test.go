package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pmsconsole/config"
	otelMocks "pmsconsole/infras/otel/mocks"
	"pmsconsole/infras/pmsapi"
	authModel "pmsconsole/internal/domains/auth/model"
	authMocks "pmsconsole/internal/domains/auth/service/mocks"
	"pmsconsole/permissions"
	"pmsconsole/shared"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/flash"
	"pmsconsole/shared/query"
	"pmsconsole/transport/http/middleware"
	"pmsconsole/transport/http/view"
	"pmsconsole/web"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testToken = "header.payload.signature"

type fixture struct {
	auth   *authMocks.MockAuth
	router http.Handler
	seen   *authModel.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Session.CookieName = "access_token"

	renderer, err := view.Parse(cfg, web.Templates())
	require.NoError(t, err)

	perms := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/login", Method: "GET", Skip: true},
			{Path: "/room-types/{id}/delete", Method: "POST", Roles: []string{"admin"}},
		},
	}

	f := &fixture{auth: authMocks.NewMockAuth(ctrl), seen: &authModel.Session{}}
	m := middleware.NewAuthRoleMiddleware(f.auth, otelMocks.NewOtel(), perms, cfg, renderer)

	ok := func(w http.ResponseWriter, r *http.Request) {
		*f.seen = authModel.SessionFrom(r.Context())

		w.Header().Set("X-Token", pmsapi.TokenFromContext(r.Context()))
		w.Header().Set("X-Scope", query.ScopeFrom(r.Context()))
		w.WriteHeader(http.StatusOK)
	}

	r := chi.NewRouter()
	r.Use(flash.Middleware(false), m.Session, m.Guard)
	r.Get("/login", ok)
	r.Get("/bookings", ok)
	r.Post("/room-types/{id}/delete", ok)

	f.router = r

	return f
}

func authenticated(role string) authModel.Session {
	return authModel.Session{}.
		Check(testToken, time.Time{}).
		Authenticate(authModel.User{ID: 1, Username: "frontdesk", Role: role, IsActive: true})
}

func withCookie(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "access_token", Value: testToken})

	return req
}

func TestSession_PublicRouteWithoutCookie(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, f.seen.Authenticated())
}

func TestGuard_RedirectsAnonymousVisitor(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings?status=pending", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fbookings%3Fstatus%3Dpending", rec.Header().Get("Location"))
}

func TestSession_Authenticated(t *testing.T) {
	f := newFixture(t)
	f.auth.EXPECT().Bootstrap(gomock.Any(), testToken).Return(authenticated("staff"), nil)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, withCookie(httptest.NewRequest(http.MethodGet, "/bookings", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, f.seen.Authenticated())
	assert.Equal(t, "frontdesk", f.seen.User.Username)
	assert.Equal(t, testToken, rec.Header().Get("X-Token"))
	assert.Equal(t, shared.Fingerprint(testToken), rec.Header().Get("X-Scope"))
}

func TestSession_BearerHeader(t *testing.T) {
	f := newFixture(t)
	f.auth.EXPECT().Bootstrap(gomock.Any(), testToken).Return(authenticated("staff"), nil)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSession_RejectedTokenClearsCookie(t *testing.T) {
	f := newFixture(t)
	f.auth.EXPECT().Bootstrap(gomock.Any(), testToken).Return(authModel.Session{}, failure.SessionExpiredError)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, withCookie(httptest.NewRequest(http.MethodGet, "/bookings", nil)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fbookings", rec.Header().Get("Location"))

	var cleared, flashed bool
	for _, cookie := range rec.Result().Cookies() {
		switch cookie.Name {
		case "access_token":
			cleared = cookie.MaxAge < 0 && cookie.Value == ""
		case flash.CookieName:
			flashed = cookie.Value != ""
		}
	}

	assert.True(t, cleared, "token cookie must be cleared")
	assert.True(t, flashed, "session expiry notice must survive the redirect")
}

func TestSession_BackendUnreachable(t *testing.T) {
	f := newFixture(t)
	f.auth.EXPECT().
		Bootstrap(gomock.Any(), testToken).
		Return(authModel.Session{}, failure.BadGateway(errors.New("connection refused")))

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, withCookie(httptest.NewRequest(http.MethodGet, "/bookings", nil)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "The PMS backend could not be reached")

	for _, cookie := range rec.Result().Cookies() {
		assert.NotEqual(t, "access_token", cookie.Name, "token cookie must be kept")
	}
}

func TestGuard_Roles(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		expected int
	}{
		{name: "admin may delete", role: "admin", expected: http.StatusOK},
		{name: "manager may not", role: "manager", expected: http.StatusForbidden},
		{name: "staff may not", role: "staff", expected: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.auth.EXPECT().Bootstrap(gomock.Any(), testToken).Return(authenticated(tt.role), nil)

			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, withCookie(httptest.NewRequest(http.MethodPost, "/room-types/7/delete", nil)))

			assert.Equal(t, tt.expected, rec.Code)

			if tt.expected == http.StatusForbidden {
				assert.Contains(t, rec.Body.String(), "required permissions")
			}
		})
	}
}
