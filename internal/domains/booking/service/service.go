package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/url"

	"pmsconsole/infras/otel"
	analyticsModel "pmsconsole/internal/domains/analytics/model"
	"pmsconsole/internal/domains/booking/model"
	"pmsconsole/internal/domains/booking/model/dto"
	"pmsconsole/internal/domains/booking/repository"
	calendarModel "pmsconsole/internal/domains/calendar/model"
	customerModel "pmsconsole/internal/domains/customer/model"
	"pmsconsole/shared/constant"
	gDto "pmsconsole/shared/dto"
	"pmsconsole/shared/query"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	List(ctx context.Context, req dto.ListRequest) (dto.ListResponse, error)
	Get(ctx context.Context, id int64) (model.Booking, error)
	Create(ctx context.Context, form dto.CreateBookingForm) (model.Booking, error)
	Update(ctx context.Context, id int64, form dto.UpdateBookingForm) (model.Booking, error)
	Modify(ctx context.Context, id int64, form dto.ModifyBookingForm) (model.Booking, error)
	Cancel(ctx context.Context, id int64, form dto.CancelBookingForm) (model.Booking, error)
}

type change[F any] struct {
	ID   int64
	Form F
}

type serviceImpl struct {
	otel otel.Otel

	list   *query.Query[url.Values, []model.Booking]
	get    *query.Query[int64, model.Booking]
	create *query.Mutation[dto.CreateBookingForm, model.Booking]
	update *query.Mutation[change[dto.UpdateBookingForm], model.Booking]
	modify *query.Mutation[change[dto.ModifyBookingForm], model.Booking]
	cancel *query.Mutation[change[dto.CancelBookingForm], model.Booking]
}

func New(repo repository.Booking, store *query.Store, otel otel.Otel) Booking {
	return &serviceImpl{
		otel: otel,
		list: query.NewQuery(store, model.EntityName, model.OpList, query.FromValues, repo.List),
		get:  query.NewQuery(store, model.EntityName, model.OpGet, query.ByID, repo.Get),
		create: query.NewMutation(store, repo.Create,
			func(_ dto.CreateBookingForm, res model.Booking) []query.Match { return affected(res) },
			func(_ dto.CreateBookingForm, res model.Booking) string {
				return fmt.Sprintf("Booking #%d created for %s", res.ID, res.CustomerName)
			}),
		update: query.NewMutation(store,
			func(ctx context.Context, c change[dto.UpdateBookingForm]) (model.Booking, error) {
				return repo.Update(ctx, c.ID, c.Form)
			},
			func(_ change[dto.UpdateBookingForm], res model.Booking) []query.Match { return affected(res) },
			func(c change[dto.UpdateBookingForm], _ model.Booking) string {
				return fmt.Sprintf("Booking #%d updated", c.ID)
			}),
		modify: query.NewMutation(store,
			func(ctx context.Context, c change[dto.ModifyBookingForm]) (model.Booking, error) {
				return repo.Modify(ctx, c.ID, c.Form)
			},
			func(_ change[dto.ModifyBookingForm], res model.Booking) []query.Match { return affected(res) },
			func(c change[dto.ModifyBookingForm], _ model.Booking) string {
				return fmt.Sprintf("Booking #%d modified", c.ID)
			}),
		cancel: query.NewMutation(store,
			func(ctx context.Context, c change[dto.CancelBookingForm]) (model.Booking, error) {
				return repo.Cancel(ctx, c.ID, c.Form)
			},
			func(_ change[dto.CancelBookingForm], res model.Booking) []query.Match { return affected(res) },
			func(c change[dto.CancelBookingForm], _ model.Booking) string {
				return fmt.Sprintf("Booking #%d cancelled", c.ID)
			}),
	}
}

// affected lists the reads a write to b makes stale: every booking read, the
// customer's record and history, and the aggregates that count bookings.
func affected(b model.Booking) []query.Match {
	return []query.Match{
		query.Entity(model.EntityName),
		query.Op(customerModel.EntityName, customerModel.OpList),
		query.Exact(customerModel.EntityName, customerModel.OpGet, query.ByID(b.CustomerID)),
		query.Exact(customerModel.EntityName, customerModel.OpBookings, query.ByID(b.CustomerID)),
		query.Entity(calendarModel.EntityName),
		query.Entity(analyticsModel.EntityName),
	}
}

func (s *serviceImpl) List(ctx context.Context, req dto.ListRequest) (res dto.ListResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.list.Get(ctx, req.Values())
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return res, fmt.Errorf("failed to list bookings: %w", err)
	}

	res.Bookings = bookings
	res.Page = gDto.NewPageMeta(req.Pagination, len(bookings))

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.get.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, form dto.CreateBookingForm) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.create.Do(ctx, form)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	scope.AddEvent(fmt.Sprintf("booking %d created", res.ID))

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, form dto.UpdateBookingForm) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.update.Do(ctx, change[dto.UpdateBookingForm]{ID: id, Form: form})
	if err != nil {
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Modify(ctx context.Context, id int64, form dto.ModifyBookingForm) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Modify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.modify.Do(ctx, change[dto.ModifyBookingForm]{ID: id, Form: form})
	if err != nil {
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to modify booking")

		return res, fmt.Errorf("failed to modify booking: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id int64, form dto.CancelBookingForm) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.cancel.Do(ctx, change[dto.CancelBookingForm]{ID: id, Form: form})
	if err != nil {
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	return res, nil
}
