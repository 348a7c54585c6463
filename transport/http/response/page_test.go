package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pmsconsole/config"
	"pmsconsole/shared/flash"
	"pmsconsole/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Session.CookieName = "access_token"

	return cfg
}

func TestUnauthorized(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/bookings?page=2", nil)
	rec := httptest.NewRecorder()

	response.Unauthorized(rec, req, testConfig())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fbookings%3Fpage%3D2", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "access_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestLoginURL(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		referer  string
		expected string
	}{
		{name: "dashboard", method: http.MethodGet, target: "/", expected: "/login"},
		{name: "page", method: http.MethodGet, target: "/customers/3", expected: "/login?next=%2Fcustomers%2F3"},
		{name: "post returns to referer", method: http.MethodPost, target: "/bookings", referer: "http://console.local/bookings/new", expected: "/login?next=%2Fbookings%2Fnew"},
		{name: "post without referer", method: http.MethodPost, target: "/bookings/1/cancel", expected: "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}

			assert.Equal(t, tt.expected, response.LoginURL(req))
		})
	}
}

func TestRedirectCommitsFlash(t *testing.T) {
	box := &flash.Box{}
	req := httptest.NewRequest(http.MethodPost, "/customers", nil)
	req = req.WithContext(flash.NewContext(req.Context(), box))

	flash.Success(req.Context(), "Customer Ana created")

	rec := httptest.NewRecorder()
	response.Redirect(rec, req, testConfig(), "/customers/9")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/customers/9", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, flash.CookieName, cookies[0].Name)
}

func TestSetToken(t *testing.T) {
	rec := httptest.NewRecorder()

	response.SetToken(rec, testConfig(), "abc", time.Now().Add(time.Hour))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.InDelta(t, 3600, cookies[0].MaxAge, 5)
}
