// Package flash carries user-facing notifications for one request and, across a
// redirect, into the next page load through a short-lived cookie.
package flash

import (
	"context"
	"net/http"
	"sync"

	"pmsconsole/shared/base64"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const CookieName = "flash"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

type Message struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Box holds the notifications of one request. Incoming ones were carried over
// from the previous response; outgoing ones were raised while serving this one.
type Box struct {
	mu       sync.Mutex
	incoming []Message
	outgoing []Message
}

type contextKey struct{}

func NewContext(ctx context.Context, box *Box) context.Context {
	return context.WithValue(ctx, contextKey{}, box)
}

func FromContext(ctx context.Context) *Box {
	box, _ := ctx.Value(contextKey{}).(*Box)

	return box
}

func Success(ctx context.Context, text string) {
	push(ctx, KindSuccess, text)
}

func Error(ctx context.Context, text string) {
	push(ctx, KindError, text)
}

func Info(ctx context.Context, text string) {
	push(ctx, KindInfo, text)
}

func push(ctx context.Context, kind Kind, text string) {
	if text == "" {
		return
	}

	box := FromContext(ctx)
	if box == nil {
		log.Debug().Str("kind", string(kind)).Str("text", text).Msg("notification dropped, no flash box in context")

		return
	}

	box.mu.Lock()
	defer box.mu.Unlock()

	box.outgoing = append(box.outgoing, Message{ID: uuid.NewString(), Kind: kind, Text: text})
}

// Drain returns every pending notification and empties the box. Pages call it while rendering.
func (b *Box) Drain() []Message {
	if b == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	messages := append(b.incoming, b.outgoing...)
	b.incoming, b.outgoing = nil, nil

	return messages
}

// Commit stores pending notifications in the flash cookie so they survive a redirect.
func (b *Box) Commit(w http.ResponseWriter, secure bool) {
	messages := b.Drain()
	if len(messages) == 0 {
		return
	}

	encoded, err := base64.EncodeJSON(messages)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode flash cookie")

		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware loads notifications carried by the flash cookie into a fresh Box and expires the cookie.
func Middleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			box := &Box{}

			if cookie, err := r.Cookie(CookieName); err == nil {
				if err = base64.DecodeJSON(cookie.Value, &box.incoming); err != nil {
					log.Warn().Err(err).Msg("discarding malformed flash cookie")
				}

				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), box)))
		})
	}
}
