package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"pmsconsole/config"
	"pmsconsole/infras/jwt"
	jwtMocks "pmsconsole/infras/jwt/mocks"
	otelMocks "pmsconsole/infras/otel/mocks"
	"pmsconsole/infras/pmsapi"
	"pmsconsole/internal/domains/auth/model"
	"pmsconsole/internal/domains/auth/model/dto"
	authMocks "pmsconsole/internal/domains/auth/service/mocks"
	"pmsconsole/internal/handlers/auth"
	"pmsconsole/shared"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/flash"
	"pmsconsole/shared/query"
	"pmsconsole/shared/timezone"
	"pmsconsole/transport/http/view"
	"pmsconsole/web"

	"github.com/go-chi/chi/v5"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const accessToken = "header.payload.signature"

type fixture struct {
	service   *authMocks.MockAuth
	inspector *jwtMocks.MockInspector
	router    http.Handler
}

func newFixture(t *testing.T, middlewares ...func(http.Handler) http.Handler) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Session.CookieName = "access_token"

	renderer, err := view.Parse(cfg, web.Templates())
	require.NoError(t, err)

	f := &fixture{
		service:   authMocks.NewMockAuth(ctrl),
		inspector: jwtMocks.NewMockInspector(ctrl),
	}

	handler := auth.New(f.service, f.inspector, renderer, cfg, otelMocks.NewOtel())

	r := chi.NewRouter()
	r.Use(flash.Middleware(false))
	r.Use(middlewares...)
	handler.Router(r)

	f.router = r

	return f
}

func (f *fixture) post(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

func activeSession() model.Session {
	return model.Session{}.
		Check(accessToken, time.Time{}).
		Authenticate(model.User{ID: 3, Username: "frontdesk", FullName: "Front Desk", Role: "staff", IsActive: true})
}

func TestLoginPage(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login?next=%2Fbookings", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="next" value="/bookings"`)
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	expiry := timezone.Now().Add(time.Hour).Truncate(time.Second)

	f.service.EXPECT().
		Login(gomock.Any(), dto.LoginForm{Username: "frontdesk", Password: "secret", Next: "/bookings"}).
		Return(model.Token{AccessToken: accessToken, TokenType: "bearer"}, nil)
	f.service.EXPECT().
		Bootstrap(gomock.Any(), accessToken).
		DoAndReturn(func(ctx context.Context, token string) (model.Session, error) {
			assert.Equal(t, token, pmsapi.TokenFromContext(ctx))
			assert.Equal(t, shared.Fingerprint(token), query.ScopeFrom(ctx))

			return activeSession(), nil
		})
	f.inspector.EXPECT().Inspect(accessToken).Return(&jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(expiry)},
	}, nil)

	rec := f.post("/login", url.Values{"username": {"frontdesk"}, "password": {"secret"}, "next": {"/bookings"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/bookings", rec.Header().Get("Location"))

	token := cookie(rec, "access_token")
	require.NotNil(t, token)
	assert.Equal(t, accessToken, token.Value)
	assert.True(t, token.HttpOnly)
	assert.Positive(t, token.MaxAge)
}

func TestLogin_ForeignNextIsIgnored(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().Login(gomock.Any(), gomock.Any()).Return(model.Token{AccessToken: accessToken}, nil)
	f.service.EXPECT().Bootstrap(gomock.Any(), accessToken).Return(activeSession(), nil)
	f.inspector.EXPECT().Inspect(accessToken).Return(nil, jwt.ErrInvalidToken)

	rec := f.post("/login", url.Values{"username": {"frontdesk"}, "password": {"secret"}, "next": {"https://evil.example.com"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		values   url.Values
		setup    func(f *fixture)
		code     int
		contains string
	}{
		{
			name:     "missing password",
			values:   url.Values{"username": {"frontdesk"}},
			setup:    func(*fixture) {},
			code:     http.StatusUnprocessableEntity,
			contains: "Enter your password",
		},
		{
			name:   "wrong credentials",
			values: url.Values{"username": {"frontdesk"}, "password": {"wrong"}},
			setup: func(f *fixture) {
				f.service.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, _ dto.LoginForm) (model.Token, error) {
						flash.Error(ctx, "Incorrect username or password")

						return model.Token{}, failure.Unauthorized("Incorrect username or password")
					})
			},
			code:     http.StatusUnauthorized,
			contains: "Incorrect username or password",
		},
		{
			name:   "disabled account",
			values: url.Values{"username": {"frontdesk"}, "password": {"secret"}},
			setup: func(f *fixture) {
				f.service.EXPECT().Login(gomock.Any(), gomock.Any()).Return(model.Token{AccessToken: accessToken}, nil)
				f.service.EXPECT().
					Bootstrap(gomock.Any(), accessToken).
					Return(model.Session{}, failure.Unauthorized("Your account has been disabled"))
			},
			code:     http.StatusUnauthorized,
			contains: "Your account has been disabled",
		},
		{
			name:   "backend down",
			values: url.Values{"username": {"frontdesk"}, "password": {"secret"}},
			setup: func(f *fixture) {
				f.service.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					Return(model.Token{}, failure.BadGateway(errors.New("connection refused")))
			},
			code: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			rec := f.post("/login", tt.values)

			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
			assert.Nil(t, cookie(rec, "access_token"))
		})
	}
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.service.EXPECT().Logout(gomock.Any())

	rec := f.post("/logout", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	token := cookie(rec, "access_token")
	require.NotNil(t, token)
	assert.Empty(t, token.Value)
}

func TestLogout_EndsSession(t *testing.T) {
	signedIn := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := query.WithScope(r.Context(), shared.Fingerprint(accessToken))
			next.ServeHTTP(w, r.WithContext(model.WithSession(ctx, activeSession())))
		})
	}

	f := newFixture(t, signedIn)
	f.service.EXPECT().
		Logout(gomock.Any()).
		Do(func(ctx context.Context) {
			assert.False(t, model.SessionFrom(ctx).Authenticated())
			assert.Equal(t, model.StateUnauthenticated, model.SessionFrom(ctx).State)
			assert.Equal(t, shared.Fingerprint(accessToken), query.ScopeFrom(ctx))
		})

	rec := f.post("/logout", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.NotNil(t, cookie(rec, "access_token"))
}
