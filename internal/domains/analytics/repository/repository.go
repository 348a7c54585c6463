package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/url"

	"pmsconsole/infras/otel"
	"pmsconsole/infras/pmsapi"
	"pmsconsole/internal/domains/analytics/model"
	"pmsconsole/shared/constant"
)

type Analytics interface {
	Overview(ctx context.Context, query url.Values) (model.Overview, error)
	Revenue(ctx context.Context, query url.Values) ([]model.RevenuePoint, error)
	RoomTypes(ctx context.Context, query url.Values) ([]model.RoomTypePerformance, error)
	Bookings(ctx context.Context, query url.Values) (model.BookingStats, error)
}

type repositoryImpl struct {
	client pmsapi.Client
	otel   otel.Otel
}

func New(client pmsapi.Client, otel otel.Otel) Analytics {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

func get[T any](ctx context.Context, r *repositoryImpl, op, path string, query url.Values) (res T, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics."+op)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = r.client.Get(ctx, path, query, &res); err != nil {
		return res, fmt.Errorf("failed to get analytics %s: %w", op, err)
	}

	return res, nil
}

func (r *repositoryImpl) Overview(ctx context.Context, query url.Values) (model.Overview, error) {
	return get[model.Overview](ctx, r, "Overview", model.PathOverview, query)
}

func (r *repositoryImpl) Revenue(ctx context.Context, query url.Values) ([]model.RevenuePoint, error) {
	return get[[]model.RevenuePoint](ctx, r, "Revenue", model.PathRevenue, query)
}

func (r *repositoryImpl) RoomTypes(ctx context.Context, query url.Values) ([]model.RoomTypePerformance, error) {
	return get[[]model.RoomTypePerformance](ctx, r, "RoomTypes", model.PathRoomTypes, query)
}

func (r *repositoryImpl) Bookings(ctx context.Context, query url.Values) (model.BookingStats, error) {
	return get[model.BookingStats](ctx, r, "Bookings", model.PathBookings, query)
}
