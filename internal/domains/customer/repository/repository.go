package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"pmsconsole/infras/otel"
	"pmsconsole/infras/pmsapi"
	bookingModel "pmsconsole/internal/domains/booking/model"
	"pmsconsole/internal/domains/customer/model"
	"pmsconsole/internal/domains/customer/model/dto"
	"pmsconsole/shared/constant"
	gRepo "pmsconsole/shared/repository"
)

type Customer interface {
	List(ctx context.Context, query url.Values) ([]model.Customer, error)
	Get(ctx context.Context, id int64) (model.Customer, error)
	Create(ctx context.Context, req dto.Form) (model.Customer, error)
	Update(ctx context.Context, id int64, req dto.Form) (model.Customer, error)
	Bookings(ctx context.Context, id int64) ([]bookingModel.Booking, error)
}

type repositoryImpl struct {
	gRepo.Resource[model.Customer]
	client pmsapi.Client
	otel   otel.Otel
}

func New(client pmsapi.Client, otel otel.Otel) Customer {
	return &repositoryImpl{
		Resource: gRepo.NewResource[model.Customer](model.EntityName, model.Path, client, otel),
		client:   client,
		otel:     otel,
	}
}

func (r *repositoryImpl) Create(ctx context.Context, req dto.Form) (model.Customer, error) {
	return r.Resource.Create(ctx, req)
}

func (r *repositoryImpl) Update(ctx context.Context, id int64, req dto.Form) (model.Customer, error) {
	return r.Resource.Update(ctx, id, req)
}

// Bookings returns the booking history of one customer.
func (r *repositoryImpl) Bookings(ctx context.Context, id int64) (res []bookingModel.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".customer.Bookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("entity.id", strconv.FormatInt(id, 10))

	res = []bookingModel.Booking{}

	if err = r.client.Get(ctx, r.ItemPath(id, "bookings"), nil, &res); err != nil {
		return nil, fmt.Errorf("failed to get bookings of customer %d: %w", id, err)
	}

	return res, nil
}
