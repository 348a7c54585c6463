package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"pmsconsole/infras/otel"
	"pmsconsole/infras/pmsapi"
	"pmsconsole/internal/domains/booking/model"
	"pmsconsole/internal/domains/booking/model/dto"
	"pmsconsole/shared/constant"
	gRepo "pmsconsole/shared/repository"
)

type Booking interface {
	List(ctx context.Context, query url.Values) ([]model.Booking, error)
	Get(ctx context.Context, id int64) (model.Booking, error)
	Create(ctx context.Context, req dto.CreateBookingForm) (model.Booking, error)
	Update(ctx context.Context, id int64, req dto.UpdateBookingForm) (model.Booking, error)
	Modify(ctx context.Context, id int64, req dto.ModifyBookingForm) (model.Booking, error)
	Cancel(ctx context.Context, id int64, req dto.CancelBookingForm) (model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Resource[model.Booking]
	client pmsapi.Client
	otel   otel.Otel
}

func New(client pmsapi.Client, otel otel.Otel) Booking {
	return &repositoryImpl{
		Resource: gRepo.NewResource[model.Booking](model.EntityName, model.Path, client, otel),
		client:   client,
		otel:     otel,
	}
}

func (r *repositoryImpl) Create(ctx context.Context, req dto.CreateBookingForm) (model.Booking, error) {
	return r.Resource.Create(ctx, req)
}

func (r *repositoryImpl) Update(ctx context.Context, id int64, req dto.UpdateBookingForm) (model.Booking, error) {
	return r.Resource.Update(ctx, id, req)
}

func (r *repositoryImpl) Modify(ctx context.Context, id int64, req dto.ModifyBookingForm) (res model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Modify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("entity.id", strconv.FormatInt(id, 10))

	if err = r.client.Put(ctx, r.ItemPath(id, "modify"), req, &res); err != nil {
		return res, fmt.Errorf("failed to modify booking %d: %w", id, err)
	}

	return res, nil
}

func (r *repositoryImpl) Cancel(ctx context.Context, id int64, req dto.CancelBookingForm) (res model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("entity.id", strconv.FormatInt(id, 10))

	if err = r.client.Post(ctx, r.ItemPath(id, "cancel"), req, &res); err != nil {
		return res, fmt.Errorf("failed to cancel booking %d: %w", id, err)
	}

	return res, nil
}
