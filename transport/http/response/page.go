package response

import (
	"net/http"
	"net/url"
	"time"

	"pmsconsole/config"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/flash"
	"pmsconsole/shared/timezone"
)

// Redirect sends the browser to location after a form post. Pending notifications
// are carried over in the flash cookie.
func Redirect(writer http.ResponseWriter, request *http.Request, cfg *config.Config, location string) {
	flash.FromContext(request.Context()).Commit(writer, cfg.Session.Secure)

	http.Redirect(writer, request, location, http.StatusSeeOther)
}

// Unauthorized ends the session of a request the backend rejected: the token
// cookie is cleared and the browser sent to the login page, back to here afterwards.
func Unauthorized(writer http.ResponseWriter, request *http.Request, cfg *config.Config) {
	ClearToken(writer, cfg)

	Redirect(writer, request, cfg, LoginURL(request))
}

// LoginURL is the login page returning to the current page. Form posts return to the referring page.
func LoginURL(request *http.Request) string {
	next := request.URL.RequestURI()
	if request.Method != http.MethodGet {
		next = constant.RouteDashboard
		if referer, err := url.Parse(request.Referer()); err == nil && referer.Path != "" {
			next = referer.RequestURI()
		}
	}

	if next == constant.RouteDashboard {
		return constant.RouteLogin
	}

	return constant.RouteLogin + "?" + url.Values{constant.RequestParamNext: {next}}.Encode()
}

// SetToken stores the access token cookie, expiring with the token when it carries an expiry.
func SetToken(writer http.ResponseWriter, cfg *config.Config, token string, expiresAt time.Time) {
	cookie := &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	if !expiresAt.IsZero() {
		cookie.Expires = expiresAt
		cookie.MaxAge = max(1, int(expiresAt.Sub(timezone.Now()).Seconds()))
	}

	http.SetCookie(writer, cookie)
}

func ClearToken(writer http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(writer, &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
