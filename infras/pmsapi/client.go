package pmsapi

//go:generate go run go.uber.org/mock/mockgen -source=./client.go -destination=./mocks/client_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"pmsconsole/config"
	"pmsconsole/infras/otel"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/failure"

	"github.com/rs/zerolog/log"
)

const maxResponseBytes = 8 << 20

// UnauthorizedHook runs whenever the backend answers 401, with the context of the failed call.
type UnauthorizedHook func(ctx context.Context)

// Client talks to the PMS backend REST API. Paths are relative to the configured base URL.
type Client interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
	OnUnauthorized(hook UnauthorizedHook)
}

type client struct {
	httpclient *http.Client
	baseURL    *url.URL
	userAgent  string
	otel       otel.Otel

	mu    sync.RWMutex
	hooks []UnauthorizedHook
}

func New(config *config.Config, ot otel.Otel) Client {
	return NewWithHTTPClient(config, ot, new(http.Client))
}

func NewWithHTTPClient(config *config.Config, ot otel.Otel, httpclient *http.Client) Client {
	baseURL, err := url.Parse(strings.TrimSuffix(config.Backend.BaseURL, "/"))
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		log.Fatal().Err(err).Str("base_url", config.Backend.BaseURL).Msg("Invalid backend base URL")
	}

	log.Info().Str("base_url", baseURL.String()).Msg("PMS backend client configured")

	return &client{
		httpclient: httpclient,
		baseURL:    baseURL,
		userAgent:  config.App.Name,
		otel:       ot,
	}
}

func (c *client) OnUnauthorized(hook UnauthorizedHook) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hooks = append(c.hooks, hook)
}

func (c *client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends one request. Non-2xx answers become a *failure.Failure carrying the status
// and the server message; an unreachable backend becomes a 502 failure.
func (c *client) Do(ctx context.Context, method, path string, query url.Values, body, out any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, fmt.Sprintf("%s.pms %s %s", constant.OtelExternalScopeName, method, path))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	scope.SetAttributes(map[string]any{
		"http.method": method,
		"http.url":    endpoint.String(),
	})

	var reader io.Reader

	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return failure.InternalError(fmt.Errorf("encoding %s %s body: %w", method, path, marshalErr))
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return failure.InternalError(fmt.Errorf("building %s %s: %w", method, path, err))
	}

	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderUserAgent, c.userAgent)

	if body != nil {
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	if requestID, ok := ctx.Value(constant.ContextKeyRequestID).(string); ok && requestID != "" {
		req.Header.Set(constant.RequestHeaderRequestID, requestID)
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}

		log.Error().Err(err).Str("method", method).Str("path", path).Msg("PMS backend unreachable")

		return failure.BadGateway(err)
	}
	defer resp.Body.Close()

	scope.SetAttribute("http.status_code", resp.StatusCode)

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("failed to read PMS backend response")

		return failure.BadGateway(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := parseErrorMessage(payload)

		log.Warn().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("message", message).
			Msg("PMS backend rejected request")

		if resp.StatusCode == http.StatusUnauthorized {
			c.unauthorized(ctx)
		}

		return failure.FromStatus(resp.StatusCode, message)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}

	if err = json.Unmarshal(payload, out); err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("unexpected PMS backend response shape")

		return failure.FromStatus(http.StatusBadGateway, "The PMS backend returned an unexpected response")
	}

	return nil
}

func (c *client) unauthorized(ctx context.Context) {
	c.mu.RLock()
	hooks := append([]UnauthorizedHook(nil), c.hooks...)
	c.mu.RUnlock()

	for _, hook := range hooks {
		hook(ctx)
	}
}
