package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"pmsconsole/infras/jwt"
	"pmsconsole/infras/otel"
	"pmsconsole/internal/domains/auth/model"
	"pmsconsole/internal/domains/auth/model/dto"
	"pmsconsole/internal/domains/auth/repository"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/query"
	"pmsconsole/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Login(ctx context.Context, form dto.LoginForm) (model.Token, error)
	Bootstrap(ctx context.Context, token string) (model.Session, error)
	Logout(ctx context.Context)
}

type serviceImpl struct {
	store     *query.Store
	inspector jwt.Inspector
	otel      otel.Otel

	me    *query.Query[struct{}, model.User]
	login *query.Mutation[dto.LoginForm, model.Token]
}

func New(repo repository.Auth, store *query.Store, inspector jwt.Inspector, otel otel.Otel) Auth {
	return &serviceImpl{
		store:     store,
		inspector: inspector,
		otel:      otel,
		me: query.NewQuery(store, model.EntityName, model.OpMe, query.NoParams[struct{}],
			func(ctx context.Context, _ struct{}) (model.User, error) {
				return repo.Me(ctx)
			}),
		login: query.NewMutation(store, repo.Login, nil, nil),
	}
}

func (s *serviceImpl) Login(ctx context.Context, form dto.LoginForm) (res model.Token, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.login.Do(ctx, form)
	if err != nil {
		log.Warn().Err(err).Str("username", form.Username).Msg("login rejected")

		return res, fmt.Errorf("failed to log in: %w", err)
	}

	if res.AccessToken == "" {
		return res, failure.BadGateway(errors.New("login response carried no access token"))
	}

	return res, nil
}

// Bootstrap resolves a stored token to a session. ctx must carry the token and
// the session scope so that the user lookup is cached per session. A token that
// is expired or rejected yields an unauthenticated session and an error.
func (s *serviceImpl) Bootstrap(ctx context.Context, token string) (session model.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Bootstrap")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if token == "" {
		return session, nil
	}

	claims, err := s.inspector.CheckExpiry(token, timezone.Now())
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return session.Fail(), failure.SessionExpiredError
		}

		return session.Fail(), failure.Unauthorized("Your session is invalid, please sign in again")
	}

	session = session.Check(token, claims.Expiry())

	user, err := s.me.Get(ctx, struct{}{})
	if err != nil {
		log.Warn().Err(err).Msg("failed to resolve session user")

		return session.Fail(), fmt.Errorf("failed to resolve session: %w", err)
	}

	if !user.IsActive {
		return session.Fail(), failure.Unauthorized("Your account has been disabled")
	}

	scope.SetAttribute("auth.user_id", user.ID)

	return session.Authenticate(user), nil
}

// Logout drops every cached read of the session in ctx.
func (s *serviceImpl) Logout(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()

	if sessionScope := query.ScopeFrom(ctx); sessionScope != "" {
		s.store.InvalidateScope(ctx, sessionScope)
	}
}
