package dto

import (
	"net/http"

	"pmsconsole/shared/constant"
	gDto "pmsconsole/shared/dto"
	"pmsconsole/shared/validator"
)

// LoginForm is the sign in form and the body of POST /auth/login/json.
type LoginForm struct {
	Username string `form:"username" json:"username" validate:"required,max=100"`
	Password string `form:"password" json:"password" validate:"required"`
	Next     string `form:"next"     json:"-"`
}

func (l *LoginForm) FromForm(r *http.Request) validator.FieldErrors {
	reader := gDto.NewFormReader(r)

	l.Username = reader.String("username")
	// passwords are taken verbatim
	l.Password = r.PostForm.Get("password")
	l.Next = reader.String(constant.RequestParamNext)

	return reader.Errors()
}

func (LoginForm) Messages() map[string]string {
	return map[string]string{
		"username.required": "Enter your username",
		"password.required": "Enter your password",
	}
}
