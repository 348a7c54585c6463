package model

import (
	"context"
	"slices"
	"time"

	"pmsconsole/shared/constant"
)

type State int

const (
	StateUnauthenticated State = iota
	StateChecking
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is the sign-in state of one page load. Transitions return a new
// value and never modify the receiver.
//
//	unauthenticated -> checking -> authenticated | unauthenticated
type Session struct {
	State     State
	Token     string
	ExpiresAt time.Time
	User      User
}

// Check starts verifying a stored token. Without a token the session stays unauthenticated.
func (s Session) Check(token string, expiresAt time.Time) Session {
	if token == "" {
		return Session{}
	}

	return Session{State: StateChecking, Token: token, ExpiresAt: expiresAt}
}

// Authenticate completes a check with the user the backend resolved the token to.
// Only a session being checked can be authenticated.
func (s Session) Authenticate(user User) Session {
	if s.State != StateChecking {
		return s
	}

	s.State = StateAuthenticated
	s.User = user

	return s
}

// Fail ends a check whose token was rejected.
func (s Session) Fail() Session {
	return Session{}
}

func (s Session) Logout() Session {
	return Session{}
}

func (s Session) Authenticated() bool {
	return s.State == StateAuthenticated
}

// HasRole reports whether the user holds one of roles. No roles means any signed in user.
func (s Session) HasRole(roles ...string) bool {
	if !s.Authenticated() {
		return false
	}

	return len(roles) == 0 || slices.Contains(roles, s.User.Role)
}

// WithSession stores the session of the current page load in ctx.
func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, constant.ContextKeySession, session)
}

// SessionFrom returns the session stored in ctx, or an unauthenticated one.
func SessionFrom(ctx context.Context) Session {
	session, _ := ctx.Value(constant.ContextKeySession).(Session)

	return session
}
