package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/url"

	"pmsconsole/infras/otel"
	bookingModel "pmsconsole/internal/domains/booking/model"
	"pmsconsole/internal/domains/calendar/model"
	"pmsconsole/internal/domains/calendar/model/dto"
	"pmsconsole/internal/domains/calendar/repository"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/query"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Calendar interface {
	Availability(ctx context.Context, req dto.Request) ([]model.Availability, error)
	Grid(ctx context.Context, req dto.Request) (dto.Response, error)
}

type serviceImpl struct {
	otel otel.Otel

	availability *query.Query[url.Values, []model.Availability]
	bookings     *query.Query[url.Values, []bookingModel.Booking]
}

func New(repo repository.Calendar, store *query.Store, otel otel.Otel) Calendar {
	return &serviceImpl{
		otel:         otel,
		availability: query.NewQuery(store, model.EntityName, model.OpAvailability, query.FromValues, repo.Availability),
		bookings:     query.NewQuery(store, model.EntityName, model.OpBookings, query.FromValues, repo.Bookings),
	}
}

func (s *serviceImpl) Availability(ctx context.Context, req dto.Request) (res []model.Availability, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".calendar.Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if res, err = s.availability.Get(ctx, req.AvailabilityValues()); err != nil {
		log.Error().Err(err).Msg("failed to get availability")

		return nil, fmt.Errorf("failed to get availability: %w", err)
	}

	return res, nil
}

// Grid fetches availability and the bookings of the range concurrently.
func (s *serviceImpl) Grid(ctx context.Context, req dto.Request) (res dto.Response, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".calendar.Grid")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res.Request = req
	res.Days = req.Days()

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		res.Availability, err = s.availability.Get(gctx, req.AvailabilityValues())

		return err
	})

	group.Go(func() (err error) {
		res.Bookings, err = s.bookings.Get(gctx, req.RangeValues())

		return err
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to get calendar")

		return res, fmt.Errorf("failed to get calendar: %w", err)
	}

	return res, nil
}
