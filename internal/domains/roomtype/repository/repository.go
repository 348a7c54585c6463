package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"pmsconsole/infras/otel"
	"pmsconsole/infras/pmsapi"
	"pmsconsole/internal/domains/roomtype/model"
	"pmsconsole/internal/domains/roomtype/model/dto"
	gRepo "pmsconsole/shared/repository"
)

type RoomType interface {
	List(ctx context.Context) ([]model.RoomType, error)
	Get(ctx context.Context, id int64) (model.RoomType, error)
	Create(ctx context.Context, req dto.Form) (model.RoomType, error)
	Update(ctx context.Context, id int64, req dto.Form) (model.RoomType, error)
	Delete(ctx context.Context, id int64) error
}

type repositoryImpl struct {
	gRepo.Resource[model.RoomType]
}

func New(client pmsapi.Client, otel otel.Otel) RoomType {
	return &repositoryImpl{
		Resource: gRepo.NewResource[model.RoomType](model.EntityName, model.Path, client, otel),
	}
}

func (r *repositoryImpl) List(ctx context.Context) ([]model.RoomType, error) {
	return r.Resource.List(ctx, nil)
}

func (r *repositoryImpl) Create(ctx context.Context, req dto.Form) (model.RoomType, error) {
	return r.Resource.Create(ctx, req)
}

func (r *repositoryImpl) Update(ctx context.Context, id int64, req dto.Form) (model.RoomType, error) {
	return r.Resource.Update(ctx, id, req)
}
