package shared

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	"pmsconsole/shared/constant"
)

// BuildCacheKey joins key parts with ":".
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// Fingerprint returns a short stable digest of a secret, safe to use in cache keys and logs.
func Fingerprint(secret string) string {
	if secret == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(secret))

	return hex.EncodeToString(sum[:8])
}

// SafeRedirect keeps next only when it is a local absolute path, so a login link
// cannot send the user to another host.
func SafeRedirect(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return constant.RouteDashboard
	}

	parsed, err := url.Parse(next)
	if err != nil || parsed.Host != "" || parsed.Scheme != "" {
		return constant.RouteDashboard
	}

	if parsed.Path == constant.RouteLogin {
		return constant.RouteDashboard
	}

	return next
}
