package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"pmsconsole/infras/otel"
	"pmsconsole/infras/pmsapi"
	"pmsconsole/internal/domains/auth/model"
	"pmsconsole/internal/domains/auth/model/dto"
	"pmsconsole/shared/constant"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginForm) (model.Token, error)
	Me(ctx context.Context) (model.User, error)
}

type repositoryImpl struct {
	client pmsapi.Client
	otel   otel.Otel
}

func New(client pmsapi.Client, otel otel.Otel) Auth {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

func (r *repositoryImpl) Login(ctx context.Context, req dto.LoginForm) (res model.Token, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("auth.username", req.Username)

	if err = r.client.Post(ctx, model.PathLogin, req, &res); err != nil {
		return res, fmt.Errorf("failed to log in: %w", err)
	}

	return res, nil
}

// Me resolves the bearer token of ctx to its user.
func (r *repositoryImpl) Me(ctx context.Context) (res model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".auth.Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = r.client.Get(ctx, model.PathMe, nil, &res); err != nil {
		return res, fmt.Errorf("failed to get current user: %w", err)
	}

	return res, nil
}
