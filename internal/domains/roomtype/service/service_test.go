package service_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"pmsconsole/config"
	"pmsconsole/infras/otel/mocks"
	calendarModel "pmsconsole/internal/domains/calendar/model"
	roomTypeMocks "pmsconsole/internal/domains/roomtype/mocks"
	"pmsconsole/internal/domains/roomtype/model"
	"pmsconsole/internal/domains/roomtype/model/dto"
	"pmsconsole/internal/domains/roomtype/service"
	"pmsconsole/shared/cache"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/flash"
	gModel "pmsconsole/shared/model"
	"pmsconsole/shared/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newStore(t *testing.T) *query.Store {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.FreshSeconds = 30
	cfg.Cache.EvictSeconds = 300

	store := query.NewStore(cfg, cache.NewMemoryCache(), mocks.NewOtel())
	t.Cleanup(store.Wait)

	return store
}

var deluxe = model.RoomType{ID: 1, Name: "Deluxe", BasePrice: gModel.NewMoney(150, 0), TotalRooms: 10}

func TestRoomTypeService_ListCached(t *testing.T) {
	repo := roomTypeMocks.NewMockRoomType(gomock.NewController(t))
	svc := service.New(repo, newStore(t), mocks.NewOtel())

	repo.EXPECT().List(gomock.Any()).Return([]model.RoomType{deluxe}, nil).Times(1)

	for range 3 {
		res, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []model.RoomType{deluxe}, res)
	}
}

func TestRoomTypeService_UpdateInvalidatesCalendar(t *testing.T) {
	store := newStore(t)
	repo := roomTypeMocks.NewMockRoomType(gomock.NewController(t))
	svc := service.New(repo, store, mocks.NewOtel())

	calls := 0
	availability := query.NewQuery(store, calendarModel.EntityName, calendarModel.OpAvailability, query.FromValues,
		func(context.Context, url.Values) ([]calendarModel.Availability, error) {
			calls++

			return []calendarModel.Availability{{RoomTypeID: 1, MinAvailable: 10}}, nil
		})

	values := url.Values{"start_date": {"2025-03-01"}, "end_date": {"2025-03-15"}}

	_, err := availability.Get(context.Background(), values)
	require.NoError(t, err)

	form := dto.NewForm(deluxe)
	form.TotalRooms = 12

	updated := deluxe
	updated.TotalRooms = 12

	repo.EXPECT().Update(gomock.Any(), int64(1), form).Return(updated, nil)

	box := &flash.Box{}

	res, err := svc.Update(flash.NewContext(context.Background(), box), 1, form)
	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalRooms)

	_, err = availability.Get(context.Background(), values)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	messages := box.Drain()
	require.Len(t, messages, 1)
	assert.Equal(t, "Room type Deluxe updated", messages[0].Text)
}

func TestRoomTypeService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    flash.Kind
		text    string
		wantErr bool
	}{
		{
			name: "deleted",
			kind: flash.KindSuccess,
			text: "Room type deleted",
		},
		{
			name:    "still booked",
			err:     failure.FromStatus(http.StatusConflict, "Room type has active bookings"),
			kind:    flash.KindError,
			text:    "Room type has active bookings",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := roomTypeMocks.NewMockRoomType(gomock.NewController(t))
			svc := service.New(repo, newStore(t), mocks.NewOtel())

			repo.EXPECT().Delete(gomock.Any(), int64(1)).Return(tt.err)

			box := &flash.Box{}

			err := svc.Delete(flash.NewContext(context.Background(), box), 1)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, 409, failure.GetCode(err))
			} else {
				require.NoError(t, err)
			}

			messages := box.Drain()
			require.Len(t, messages, 1)
			assert.Equal(t, tt.kind, messages[0].Kind)
			assert.Equal(t, tt.text, messages[0].Text)
		})
	}
}
