package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeySession   contextKey = "session"
	ContextKeyRequestID contextKey = "request_id"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

const (
	RequestParamPage     = "page"
	RequestParamPageSize = "page_size"
	RequestParamLimit    = "limit"
	RequestParamOffset   = "offset"
	RequestParamNext     = "next"
)

const (
	RequestParamID = "id"
)

const (
	DefaultValuePage     = 1
	DefaultValuePageSize = 20
	MaxValuePageSize     = 100
)

const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = time.RFC3339
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelExternalScopeName   = "external"
	OtelQueryScopeName      = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderAccept             = "Accept"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderCSRF               = "X-CSRF-Token"
)

const (
	ContentTypeJSON           = "application/json"
	ContentTypeHTML           = "text/html; charset=utf-8"
	ContentTypeFormURLEncoded = "application/x-www-form-urlencoded"
)

const (
	ResponseHealthy                   = "OK"
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	RouteLogin     = "/login"
	RouteLogout    = "/logout"
	RouteDashboard = "/"
)

const (
	Asterix = "*"
	Empty   = ""
)
