package jwt_test

import (
	"testing"
	"time"

	"pmsconsole/infras/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims gojwt.Claims) string {
	t.Helper()

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("backend-only-secret"))
	require.NoError(t, err)

	return token
}

func TestInspector_CheckExpiry(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name: "valid token",
			token: sign(t, gojwt.MapClaims{
				"sub":  "frontdesk",
				"role": "staff",
				"exp":  now.Add(time.Hour).Unix(),
			}),
		},
		{
			name: "expired token",
			token: sign(t, gojwt.MapClaims{
				"sub": "frontdesk",
				"exp": now.Add(-time.Minute).Unix(),
			}),
			wantErr: jwt.ErrExpiredToken,
		},
		{
			name:  "token without expiry",
			token: sign(t, gojwt.MapClaims{"sub": "frontdesk"}),
		},
		{
			name:    "garbage",
			token:   "not-a-jwt",
			wantErr: jwt.ErrInvalidToken,
		},
	}

	inspector := jwt.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := inspector.CheckExpiry(tt.token, now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestInspector_Inspect(t *testing.T) {
	exp := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	token := sign(t, gojwt.MapClaims{"sub": "manager1", "role": "manager", "exp": exp.Unix()})

	claims, err := jwt.New().Inspect(token)
	require.NoError(t, err)

	assert.Equal(t, "manager1", claims.Subject)
	assert.Equal(t, "manager", claims.Role)
	assert.True(t, exp.Equal(claims.Expiry()))
}

func TestClaims_ExpiryWithoutExp(t *testing.T) {
	var claims *jwt.Claims

	assert.True(t, claims.Expiry().IsZero())
	assert.True(t, (&jwt.Claims{}).Expiry().IsZero())
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic dXNlcjpwYXNz")
	assert.Error(t, err)
}
