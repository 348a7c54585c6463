package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"net/url"
	"sync"

	"pmsconsole/infras/otel"
	"pmsconsole/internal/domains/analytics/model"
	"pmsconsole/internal/domains/analytics/model/dto"
	"pmsconsole/internal/domains/analytics/repository"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/query"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	SectionOverview  = "overview"
	SectionRevenue   = "revenue"
	SectionRoomTypes = "room_types"
	SectionBookings  = "bookings"
)

type Analytics interface {
	Dashboard(ctx context.Context, req dto.Request) (dto.Dashboard, error)
}

type serviceImpl struct {
	otel otel.Otel

	overview  *query.Query[url.Values, model.Overview]
	revenue   *query.Query[url.Values, []model.RevenuePoint]
	roomTypes *query.Query[url.Values, []model.RoomTypePerformance]
	bookings  *query.Query[url.Values, model.BookingStats]
}

func New(repo repository.Analytics, store *query.Store, otel otel.Otel) Analytics {
	return &serviceImpl{
		otel:      otel,
		overview:  query.NewQuery(store, model.EntityName, model.OpOverview, query.FromValues, repo.Overview),
		revenue:   query.NewQuery(store, model.EntityName, model.OpRevenue, query.FromValues, repo.Revenue),
		roomTypes: query.NewQuery(store, model.EntityName, model.OpRoomTypes, query.FromValues, repo.RoomTypes),
		bookings:  query.NewQuery(store, model.EntityName, model.OpBookings, query.FromValues, repo.Bookings),
	}
}

// Dashboard loads the four sections concurrently. A failing section is reported in
// Errors; the call only fails when every section failed or the session expired.
func (s *serviceImpl) Dashboard(ctx context.Context, req dto.Request) (res dto.Dashboard, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".analytics.Dashboard")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	values := req.Values()
	res.Request = req
	res.Errors = map[string]string{}

	var (
		mu    sync.Mutex
		group errgroup.Group
		errs  []error
	)

	// Sections record their own error and never fail the group.
	load := func(section string, fn func() error) {
		group.Go(func() error {
			if err := fn(); err != nil {
				log.Error().Err(err).Str("section", section).Msg("failed to load dashboard section")

				mu.Lock()
				res.Errors[section] = failure.GetMessage(err)
				errs = append(errs, err)
				mu.Unlock()
			}

			return nil
		})
	}

	load(SectionOverview, func() (err error) {
		res.Overview, err = s.overview.Get(ctx, values)

		return err
	})
	load(SectionRevenue, func() (err error) {
		res.Revenue, err = s.revenue.Get(ctx, values)

		return err
	})
	load(SectionRoomTypes, func() (err error) {
		res.RoomTypes, err = s.roomTypes.Get(ctx, values)

		return err
	})
	load(SectionBookings, func() (err error) {
		res.Bookings, err = s.bookings.Get(ctx, values)

		return err
	})

	_ = group.Wait()

	for _, sectionErr := range errs {
		if failure.IsUnauthorized(sectionErr) {
			return res, sectionErr
		}
	}

	if len(errs) == 4 {
		return res, errs[0]
	}

	return res, nil
}
