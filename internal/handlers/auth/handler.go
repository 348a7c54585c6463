package auth

import (
	"net/http"

	"pmsconsole/config"
	"pmsconsole/infras/jwt"
	"pmsconsole/infras/otel"
	"pmsconsole/infras/pmsapi"
	"pmsconsole/internal/domains/auth/model"
	"pmsconsole/internal/domains/auth/model/dto"
	"pmsconsole/internal/domains/auth/service"
	"pmsconsole/shared"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/flash"
	"pmsconsole/shared/query"
	"pmsconsole/shared/validator"
	"pmsconsole/transport/http/response"
	"pmsconsole/transport/http/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const loginPage = "login"

type Handler struct {
	service   service.Auth
	inspector jwt.Inspector
	view      view.Renderer
	config    *config.Config
	otel      otel.Otel
}

func New(service service.Auth, inspector jwt.Inspector, view view.Renderer, config *config.Config, otel otel.Otel) Handler {
	return Handler{
		service:   service,
		inspector: inspector,
		view:      view,
		config:    config,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get(constant.RouteLogin, handler.LoginPage)
	router.Post(constant.RouteLogin, handler.Login)
	router.Post(constant.RouteLogout, handler.Logout)
}

// LoginPage shows the sign in form. Signed in users go straight on.
func (handler *Handler) LoginPage(writer http.ResponseWriter, request *http.Request) {
	next := request.URL.Query().Get(constant.RequestParamNext)

	if model.SessionFrom(request.Context()).Authenticated() {
		response.Redirect(writer, request, handler.config, shared.SafeRedirect(next))

		return
	}

	handler.render(writer, request, http.StatusOK, dto.LoginForm{Next: next}, nil)
}

// Login exchanges the credentials for a token, checks the token resolves to an
// active user and only then stores it.
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	form := dto.LoginForm{}

	if errs := form.FromForm(request).Merge(validator.ValidateForm(&form)); errs != nil {
		handler.render(writer, request, http.StatusUnprocessableEntity, form, errs)

		return
	}

	token, err := handler.service.Login(ctx, form)
	if err != nil {
		scope.TraceError(err)

		handler.render(writer, request, failure.GetCode(err), form, nil)

		return
	}

	sessionCtx := pmsapi.WithToken(ctx, token.AccessToken)
	sessionCtx = query.WithScope(sessionCtx, shared.Fingerprint(token.AccessToken))

	session, err := handler.service.Bootstrap(sessionCtx, token.AccessToken)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("username", form.Username).Msg("failed to start session")

		flash.Error(ctx, failure.GetMessage(err))
		handler.render(writer, request, failure.GetCode(err), form, nil)

		return
	}

	expiresAt := session.ExpiresAt
	if claims, err := handler.inspector.Inspect(token.AccessToken); err == nil {
		expiresAt = claims.Expiry()
	}

	response.SetToken(writer, handler.config, token.AccessToken, expiresAt)

	scope.SetAttribute("auth.user_id", session.User.ID)
	flash.Success(ctx, "Welcome back, "+session.User.DisplayName())

	response.Redirect(writer, request, handler.config, shared.SafeRedirect(form.Next))
}

func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	// the session scope stays in ctx so its cached reads can still be dropped
	session := model.SessionFrom(ctx)
	ctx = model.WithSession(ctx, session.Logout())

	handler.service.Logout(ctx)
	response.ClearToken(writer, handler.config)

	scope.SetAttribute("auth.user_id", session.User.ID)

	flash.Info(ctx, "You have been signed out")

	response.Redirect(writer, request.WithContext(ctx), handler.config, constant.RouteLogin)
}

func (handler *Handler) render(writer http.ResponseWriter, request *http.Request, status int, form dto.LoginForm, errs validator.FieldErrors) {
	handler.view.Render(writer, request, status, loginPage, view.Page{
		Title:  "Sign in",
		Form:   form,
		Errors: errs,
	})
}
