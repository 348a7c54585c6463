package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/url"

	"pmsconsole/infras/otel"
	bookingModel "pmsconsole/internal/domains/booking/model"
	"pmsconsole/internal/domains/customer/model"
	"pmsconsole/internal/domains/customer/model/dto"
	"pmsconsole/internal/domains/customer/repository"
	"pmsconsole/shared/constant"
	gDto "pmsconsole/shared/dto"
	"pmsconsole/shared/query"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Customer interface {
	List(ctx context.Context, req dto.ListRequest) (dto.ListResponse, error)
	Get(ctx context.Context, id int64) (model.Customer, error)
	Detail(ctx context.Context, id int64) (dto.DetailResponse, error)
	Create(ctx context.Context, form dto.Form) (model.Customer, error)
	Update(ctx context.Context, id int64, form dto.Form) (model.Customer, error)
}

type update struct {
	ID   int64
	Form dto.Form
}

type serviceImpl struct {
	otel otel.Otel

	list     *query.Query[url.Values, []model.Customer]
	get      *query.Query[int64, model.Customer]
	bookings *query.Query[int64, []bookingModel.Booking]
	create   *query.Mutation[dto.Form, model.Customer]
	update   *query.Mutation[update, model.Customer]
}

func New(repo repository.Customer, store *query.Store, otel otel.Otel) Customer {
	return &serviceImpl{
		otel:     otel,
		list:     query.NewQuery(store, model.EntityName, model.OpList, query.FromValues, repo.List),
		get:      query.NewQuery(store, model.EntityName, model.OpGet, query.ByID, repo.Get),
		bookings: query.NewQuery(store, model.EntityName, model.OpBookings, query.ByID, repo.Bookings),
		create: query.NewMutation(store, repo.Create,
			func(_ dto.Form, _ model.Customer) []query.Match {
				return []query.Match{query.Op(model.EntityName, model.OpList)}
			},
			func(_ dto.Form, res model.Customer) string {
				return fmt.Sprintf("Customer %s created", res.Name)
			}),
		update: query.NewMutation(store,
			func(ctx context.Context, u update) (model.Customer, error) {
				return repo.Update(ctx, u.ID, u.Form)
			},
			func(u update, _ model.Customer) []query.Match {
				// Bookings carry the customer name and email.
				return []query.Match{
					query.Op(model.EntityName, model.OpList),
					query.Exact(model.EntityName, model.OpGet, query.ByID(u.ID)),
					query.Exact(model.EntityName, model.OpBookings, query.ByID(u.ID)),
					query.Entity(bookingModel.EntityName),
				}
			},
			func(_ update, res model.Customer) string {
				return fmt.Sprintf("Customer %s updated", res.Name)
			}),
	}
}

func (s *serviceImpl) List(ctx context.Context, req dto.ListRequest) (res dto.ListResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	customers, err := s.list.Get(ctx, req.Values())
	if err != nil {
		log.Error().Err(err).Msg("failed to list customers")

		return res, fmt.Errorf("failed to list customers: %w", err)
	}

	res.Customers = customers
	res.Page = gDto.NewPageMeta(req.Pagination, len(customers))

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res model.Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if res, err = s.get.Get(ctx, id); err != nil {
		log.Error().Err(err).Int64("customer_id", id).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	return res, nil
}

// Detail fetches the customer and its booking history concurrently.
func (s *serviceImpl) Detail(ctx context.Context, id int64) (res dto.DetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Detail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		res.Customer, err = s.get.Get(gctx, id)

		return err
	})

	group.Go(func() (err error) {
		res.Bookings, err = s.bookings.Get(gctx, id)

		return err
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Int64("customer_id", id).Msg("failed to get customer detail")

		return res, fmt.Errorf("failed to get customer detail: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, form dto.Form) (res model.Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if res, err = s.create.Do(ctx, form); err != nil {
		log.Error().Err(err).Msg("failed to create customer")

		return res, fmt.Errorf("failed to create customer: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, form dto.Form) (res model.Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if res, err = s.update.Do(ctx, update{ID: id, Form: form}); err != nil {
		log.Error().Err(err).Int64("customer_id", id).Msg("failed to update customer")

		return res, fmt.Errorf("failed to update customer: %w", err)
	}

	return res, nil
}
