package pmsapi

import "context"

type tokenKey struct{}

// WithToken attaches the bearer token sent with every call made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)

	return token
}
