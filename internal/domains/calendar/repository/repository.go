package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/url"

	"pmsconsole/infras/otel"
	"pmsconsole/infras/pmsapi"
	bookingModel "pmsconsole/internal/domains/booking/model"
	"pmsconsole/internal/domains/calendar/model"
	"pmsconsole/shared/constant"
)

type Calendar interface {
	Availability(ctx context.Context, query url.Values) ([]model.Availability, error)
	Bookings(ctx context.Context, query url.Values) ([]bookingModel.Booking, error)
}

type repositoryImpl struct {
	client pmsapi.Client
	otel   otel.Otel
}

func New(client pmsapi.Client, otel otel.Otel) Calendar {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

func (r *repositoryImpl) Availability(ctx context.Context, query url.Values) (res []model.Availability, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".calendar.Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = []model.Availability{}

	if err = r.client.Get(ctx, model.PathAvailability, query, &res); err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Bookings(ctx context.Context, query url.Values) (res []bookingModel.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".calendar.Bookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = []bookingModel.Booking{}

	if err = r.client.Get(ctx, model.PathBookings, query, &res); err != nil {
		return nil, fmt.Errorf("failed to get calendar bookings: %w", err)
	}

	return res, nil
}
