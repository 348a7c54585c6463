package service_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"pmsconsole/config"
	"pmsconsole/infras/otel/mocks"
	bookingModel "pmsconsole/internal/domains/booking/model"
	calendarMocks "pmsconsole/internal/domains/calendar/mocks"
	"pmsconsole/internal/domains/calendar/model"
	"pmsconsole/internal/domains/calendar/model/dto"
	"pmsconsole/internal/domains/calendar/service"
	"pmsconsole/shared/cache"
	gDto "pmsconsole/shared/dto"
	"pmsconsole/shared/failure"
	gModel "pmsconsole/shared/model"
	"pmsconsole/shared/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.Calendar, *calendarMocks.MockCalendar) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.FreshSeconds = 30
	cfg.Cache.EvictSeconds = 300

	store := query.NewStore(cfg, cache.NewMemoryCache(), mocks.NewOtel())
	t.Cleanup(store.Wait)

	repo := calendarMocks.NewMockCalendar(gomock.NewController(t))

	return service.New(repo, store, mocks.NewOtel()), repo
}

func march(days int) dto.Request {
	from := gModel.NewDate(2025, time.March, 1)

	return dto.Request{Range: gDto.DateRange{From: from, To: from.AddDays(days)}}
}

func TestCalendarService_Grid(t *testing.T) {
	svc, repo := newService(t)

	req := march(3)
	req.RoomTypeID = 2

	repo.EXPECT().
		Availability(gomock.Any(), url.Values{"start_date": {"2025-03-01"}, "end_date": {"2025-03-04"}, "room_type_id": {"2"}}).
		Return([]model.Availability{{RoomTypeID: 2, RoomTypeName: "Suite", MinAvailable: 1}}, nil)
	repo.EXPECT().
		Bookings(gomock.Any(), url.Values{"start_date": {"2025-03-01"}, "end_date": {"2025-03-04"}}).
		Return([]bookingModel.Booking{{ID: 7, RoomTypeID: 2}}, nil)

	res, err := svc.Grid(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, res.Days, 3)
	assert.Equal(t, "2025-03-03", res.Days[2].String())
	require.Len(t, res.Availability, 1)
	assert.Equal(t, "Suite", res.Availability[0].RoomTypeName)
	require.Len(t, res.Bookings, 1)
}

func TestCalendarService_GridFailure(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().Availability(gomock.Any(), gomock.Any()).Return(nil, failure.BadGateway(errors.New("timeout")))
	repo.EXPECT().Bookings(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := svc.Grid(context.Background(), march(7))
	require.Error(t, err)
	assert.Equal(t, 502, failure.GetCode(err))
}

func TestCalendarService_AvailabilityShared(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().Availability(gomock.Any(), gomock.Any()).Return([]model.Availability{{RoomTypeID: 1}}, nil).Times(1)
	repo.EXPECT().Bookings(gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)

	_, err := svc.Availability(context.Background(), march(7))
	require.NoError(t, err)

	// the grid reuses the cached availability
	_, err = svc.Grid(context.Background(), march(7))
	require.NoError(t, err)
}
