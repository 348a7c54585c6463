package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"pmsconsole/infras/otel"
	"pmsconsole/infras/pmsapi"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/logger"
)

// Resource maps the conventional REST endpoints of one backend collection:
// GET/POST <path> and GET/PUT/DELETE <path>/{id}.
type Resource[T any] struct {
	client  pmsapi.Client
	otel    otel.Otel
	entitas string
	path    string
}

func NewResource[T any](entityName, path string, client pmsapi.Client, otl otel.Otel) Resource[T] {
	return Resource[T]{
		client:  client,
		otel:    otl,
		entitas: entityName,
		path:    path,
	}
}

func (repo *Resource[T]) spanName(op string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, op)
}

// Path joins the collection path with sub-resource segments.
func (repo *Resource[T]) Path(segments ...string) string {
	u := &url.URL{Path: repo.path}

	return u.JoinPath(segments...).Path
}

func (repo *Resource[T]) ItemPath(id int64, segments ...string) string {
	return repo.Path(append([]string{strconv.FormatInt(id, 10)}, segments...)...)
}

func (repo *Resource[T]) List(ctx context.Context, query url.Values) (models []T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("List"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	models = []T{}

	if err = repo.client.Get(ctx, repo.path, query, &models); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list %s: %w", repo.entitas, err)
	}

	return models, nil
}

func (repo *Resource[T]) Get(ctx context.Context, id int64) (model T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Get"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("entity.id", strconv.FormatInt(id, 10))

	if err = repo.client.Get(ctx, repo.ItemPath(id), nil, &model); err != nil {
		return model, fmt.Errorf("failed to get %s %d: %w", repo.entitas, id, err)
	}

	return model, nil
}

func (repo *Resource[T]) Create(ctx context.Context, body any) (model T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Create"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = repo.client.Post(ctx, repo.path, body, &model); err != nil {
		return model, fmt.Errorf("failed to create %s: %w", repo.entitas, err)
	}

	return model, nil
}

func (repo *Resource[T]) Update(ctx context.Context, id int64, body any) (model T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Update"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("entity.id", strconv.FormatInt(id, 10))

	if err = repo.client.Put(ctx, repo.ItemPath(id), body, &model); err != nil {
		return model, fmt.Errorf("failed to update %s %d: %w", repo.entitas, id, err)
	}

	return model, nil
}

func (repo *Resource[T]) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Delete"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("entity.id", strconv.FormatInt(id, 10))

	if err = repo.client.Delete(ctx, repo.ItemPath(id), nil); err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", repo.entitas, id, err)
	}

	return nil
}
