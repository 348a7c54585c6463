package flash_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pmsconsole/shared/flash"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushAndDrain(t *testing.T) {
	box := &flash.Box{}
	ctx := flash.NewContext(context.Background(), box)

	flash.Success(ctx, "Booking created")
	flash.Error(ctx, "Room type not found")
	flash.Info(ctx, "")

	messages := box.Drain()
	require.Len(t, messages, 2)

	assert.Equal(t, flash.KindSuccess, messages[0].Kind)
	assert.Equal(t, "Booking created", messages[0].Text)
	assert.NotEmpty(t, messages[0].ID)
	assert.Equal(t, flash.KindError, messages[1].Kind)

	assert.Empty(t, box.Drain())
}

func TestPushWithoutBox(t *testing.T) {
	assert.NotPanics(t, func() {
		flash.Success(context.Background(), "nobody listens")
	})

	var box *flash.Box
	assert.Nil(t, box.Drain())
}

func TestCommitSurvivesRedirect(t *testing.T) {
	// First request raises a notification and redirects.
	first := flash.Middleware(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flash.Success(r.Context(), "Customer updated")

		flash.FromContext(r.Context()).Commit(w, false)
		http.Redirect(w, r, "/customers/3", http.StatusSeeOther)
	}))

	rec := httptest.NewRecorder()
	first.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers/3/edit", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, flash.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// The next page load reads it and expires the cookie.
	var shown []flash.Message

	second := flash.Middleware(false)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		shown = flash.FromContext(r.Context()).Drain()
	}))

	req := httptest.NewRequest(http.MethodGet, "/customers/3", nil)
	req.AddCookie(cookies[0])

	rec = httptest.NewRecorder()
	second.ServeHTTP(rec, req)

	require.Len(t, shown, 1)
	assert.Equal(t, "Customer updated", shown[0].Text)

	expired := rec.Result().Cookies()
	require.Len(t, expired, 1)
	assert.Equal(t, -1, expired[0].MaxAge)
}

func TestMalformedCookieIgnored(t *testing.T) {
	var shown []flash.Message

	handler := flash.Middleware(false)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		shown = flash.FromContext(r.Context()).Drain()
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flash.CookieName, Value: "!!!"})

	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, shown)
}
