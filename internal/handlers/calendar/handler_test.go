package calendar_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pmsconsole/config"
	otelMocks "pmsconsole/infras/otel/mocks"
	bookingModel "pmsconsole/internal/domains/booking/model"
	"pmsconsole/internal/domains/calendar/model"
	"pmsconsole/internal/domains/calendar/model/dto"
	calendarMocks "pmsconsole/internal/domains/calendar/service/mocks"
	roomTypeModel "pmsconsole/internal/domains/roomtype/model"
	roomTypeMocks "pmsconsole/internal/domains/roomtype/service/mocks"
	"pmsconsole/internal/handlers/calendar"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/flash"
	gModel "pmsconsole/shared/model"
	"pmsconsole/transport/http/view"
	"pmsconsole/web"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	calendar  *calendarMocks.MockCalendar
	roomTypes *roomTypeMocks.MockRoomType
	router    http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	renderer, err := view.Parse(cfg, web.Templates())
	require.NoError(t, err)

	f := &fixture{
		calendar:  calendarMocks.NewMockCalendar(ctrl),
		roomTypes: roomTypeMocks.NewMockRoomType(ctrl),
	}

	handler := calendar.New(f.calendar, f.roomTypes, renderer, cfg, otelMocks.NewOtel())

	r := chi.NewRouter()
	r.Use(flash.Middleware(false))
	handler.Router(r)

	f.router = r

	return f
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestCalendar(t *testing.T) {
	f := newFixture(t)

	from := gModel.NewDate(2025, 3, 10)

	f.calendar.EXPECT().
		Grid(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.Request) (dto.Response, error) {
			assert.Equal(t, "2025-03-10", req.Range.From.String())
			assert.Equal(t, int64(2), req.RoomTypeID)

			return dto.Response{
				Request: req,
				Days:    req.Days(),
				Availability: []model.Availability{{
					RoomTypeID:   2,
					RoomTypeName: "Deluxe",
					MinAvailable: 0,
					DailyBreakdown: []model.DayAvailability{
						{Date: from, AvailableRooms: 3, Price: gModel.NewMoney(150, 0)},
						{Date: from.AddDays(1), AvailableRooms: 0, Price: gModel.NewMoney(150, 0)},
					},
				}},
				Bookings: []bookingModel.Booking{
					{ID: 31, CustomerName: "Grace Hopper", RoomTypeName: "Deluxe", CheckIn: from, NumRooms: 1, Status: bookingModel.StatusConfirmed},
				},
			}, nil
		})
	f.roomTypes.EXPECT().List(gomock.Any()).Return([]roomTypeModel.RoomType{{ID: 2, Name: "Deluxe"}}, nil)

	rec := f.get("/calendar?from=2025-03-10&to=2025-03-13&room_type_id=2")

	body := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `class="sold-out"`)
	assert.Contains(t, body, `class="unknown"`)
	assert.Contains(t, body, `href="/bookings/31"`)
	assert.Contains(t, body, `<option value="2" selected>Deluxe</option>`)
}

func TestCalendar_RoomTypeFilterIsOptional(t *testing.T) {
	f := newFixture(t)

	f.calendar.EXPECT().Grid(gomock.Any(), gomock.Any()).Return(dto.Response{}, nil)
	f.roomTypes.EXPECT().List(gomock.Any()).Return(nil, failure.BadGateway(errors.New("connection refused")))

	rec := f.get("/calendar")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No room types to show.")
}

func TestCalendar_Failures(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		gridErr  error
		calls    int
		code     int
		contains string
	}{
		{name: "range too long", path: "/calendar?from=2025-01-01&to=2025-06-01", code: http.StatusBadRequest, contains: "at most 62 days"},
		{name: "bad date", path: "/calendar?from=tomorrow", code: http.StatusBadRequest, contains: failure.InvalidDateParam.Message},
		{
			name: "backend down", path: "/calendar", calls: 1,
			gridErr: failure.BadGateway(errors.New("connection refused")),
			code:    http.StatusBadGateway, contains: "The PMS backend could not be reached",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.calendar.EXPECT().Grid(gomock.Any(), gomock.Any()).Return(dto.Response{}, tt.gridErr).Times(tt.calls)
			f.roomTypes.EXPECT().List(gomock.Any()).Return(nil, nil).Times(tt.calls)

			rec := f.get(tt.path)

			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}
