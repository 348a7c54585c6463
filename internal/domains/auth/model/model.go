package model

const (
	EntityName = "auth"

	PathLogin = "/auth/login/json"
	PathMe    = "/auth/me"

	OpMe = "me"
)

// User is the signed in staff member as reported by GET /auth/me.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// DisplayName is the name shown in the navigation bar.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}

	return u.Username
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
