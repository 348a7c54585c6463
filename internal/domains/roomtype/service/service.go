package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"pmsconsole/infras/otel"
	analyticsModel "pmsconsole/internal/domains/analytics/model"
	bookingModel "pmsconsole/internal/domains/booking/model"
	calendarModel "pmsconsole/internal/domains/calendar/model"
	"pmsconsole/internal/domains/roomtype/model"
	"pmsconsole/internal/domains/roomtype/model/dto"
	"pmsconsole/internal/domains/roomtype/repository"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/query"

	"github.com/rs/zerolog/log"
)

type RoomType interface {
	List(ctx context.Context) ([]model.RoomType, error)
	Get(ctx context.Context, id int64) (model.RoomType, error)
	Create(ctx context.Context, form dto.Form) (model.RoomType, error)
	Update(ctx context.Context, id int64, form dto.Form) (model.RoomType, error)
	Delete(ctx context.Context, id int64) error
}

type update struct {
	ID   int64
	Form dto.Form
}

type serviceImpl struct {
	otel otel.Otel

	list   *query.Query[struct{}, []model.RoomType]
	get    *query.Query[int64, model.RoomType]
	create *query.Mutation[dto.Form, model.RoomType]
	update *query.Mutation[update, model.RoomType]
	delete *query.Mutation[int64, struct{}]
}

func New(repo repository.RoomType, store *query.Store, otel otel.Otel) RoomType {
	return &serviceImpl{
		otel: otel,
		list: query.NewQuery(store, model.EntityName, model.OpList, query.NoParams[struct{}],
			func(ctx context.Context, _ struct{}) ([]model.RoomType, error) {
				return repo.List(ctx)
			}),
		get: query.NewQuery(store, model.EntityName, model.OpGet, query.ByID, repo.Get),
		create: query.NewMutation(store, repo.Create,
			func(_ dto.Form, _ model.RoomType) []query.Match { return affected() },
			func(_ dto.Form, res model.RoomType) string {
				return fmt.Sprintf("Room type %s created", res.Name)
			}),
		update: query.NewMutation(store,
			func(ctx context.Context, u update) (model.RoomType, error) {
				return repo.Update(ctx, u.ID, u.Form)
			},
			func(_ update, _ model.RoomType) []query.Match {
				// Bookings carry the room type name.
				return append(affected(), query.Entity(bookingModel.EntityName))
			},
			func(_ update, res model.RoomType) string {
				return fmt.Sprintf("Room type %s updated", res.Name)
			}),
		delete: query.NewMutation(store,
			func(ctx context.Context, id int64) (struct{}, error) {
				return struct{}{}, repo.Delete(ctx, id)
			},
			func(_ int64, _ struct{}) []query.Match { return affected() },
			func(_ int64, _ struct{}) string {
				return "Room type deleted"
			}),
	}
}

// affected lists the reads that depend on the room type inventory.
func affected() []query.Match {
	return []query.Match{
		query.Entity(model.EntityName),
		query.Entity(calendarModel.EntityName),
		query.Entity(analyticsModel.EntityName),
	}
}

func (s *serviceImpl) List(ctx context.Context) (res []model.RoomType, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room_type.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if res, err = s.list.Get(ctx, struct{}{}); err != nil {
		log.Error().Err(err).Msg("failed to list room types")

		return nil, fmt.Errorf("failed to list room types: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res model.RoomType, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room_type.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if res, err = s.get.Get(ctx, id); err != nil {
		log.Error().Err(err).Int64("room_type_id", id).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, form dto.Form) (res model.RoomType, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room_type.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if res, err = s.create.Do(ctx, form); err != nil {
		log.Error().Err(err).Msg("failed to create room type")

		return res, fmt.Errorf("failed to create room type: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, form dto.Form) (res model.RoomType, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room_type.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if res, err = s.update.Do(ctx, update{ID: id, Form: form}); err != nil {
		log.Error().Err(err).Int64("room_type_id", id).Msg("failed to update room type")

		return res, fmt.Errorf("failed to update room type: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room_type.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.delete.Do(ctx, id); err != nil {
		log.Error().Err(err).Int64("room_type_id", id).Msg("failed to delete room type")

		return fmt.Errorf("failed to delete room type: %w", err)
	}

	return nil
}
