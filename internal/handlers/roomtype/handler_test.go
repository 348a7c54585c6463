package roomtype_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"pmsconsole/config"
	otelMocks "pmsconsole/infras/otel/mocks"
	authModel "pmsconsole/internal/domains/auth/model"
	"pmsconsole/internal/domains/roomtype/model"
	"pmsconsole/internal/domains/roomtype/model/dto"
	roomTypeMocks "pmsconsole/internal/domains/roomtype/service/mocks"
	"pmsconsole/internal/handlers/roomtype"
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

func newRouter(t *testing.T, role string) (*roomTypeMocks.MockRoomType, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := roomTypeMocks.NewMockRoomType(ctrl)

	cfg := &config.Config{}
	cfg.Session.CookieName = "access_token"

	renderer, err := view.Parse(cfg, web.Templates())
	require.NoError(t, err)

	handler := roomtype.New(service, renderer, cfg, otelMocks.NewOtel())

	session := authModel.Session{}.
		Check("token", time.Time{}).
		Authenticate(authModel.User{ID: 1, Username: "user", Role: role, IsActive: true})

	r := chi.NewRouter()
	r.Use(flash.Middleware(false), func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(authModel.WithSession(r.Context(), session)))
		})
	})
	handler.Router(r)

	return service, r
}

func post(router http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestList_ActionsFollowRole(t *testing.T) {
	tests := []struct {
		role      string
		canManage bool
		canDelete bool
	}{
		{role: "admin", canManage: true, canDelete: true},
		{role: "manager", canManage: true, canDelete: false},
		{role: "staff", canManage: false, canDelete: false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			service, router := newRouter(t, tt.role)
			service.EXPECT().List(gomock.Any()).Return([]model.RoomType{
				{ID: 2, Name: "Deluxe", Description: "Sea *view*", BasePrice: gModel.NewMoney(150, 0), TotalRooms: 10},
			}, nil)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/room-types", nil))

			body := rec.Body.String()

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, body, "<em>view</em>")
			assert.Contains(t, body, "$150.00")
			assert.Equal(t, tt.canManage, strings.Contains(body, `href="/room-types/2/edit"`))
			assert.Equal(t, tt.canDelete, strings.Contains(body, `action="/room-types/2/delete"`))
		})
	}
}

func TestCreate(t *testing.T) {
	t.Run("negative price", func(t *testing.T) {
		service, router := newRouter(t, "admin")
		service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		rec := post(router, "/room-types", url.Values{"name": {"Deluxe"}, "base_price": {"-5"}, "total_rooms": {"10"}})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Base price must not be negative")
	})

	t.Run("created", func(t *testing.T) {
		service, router := newRouter(t, "admin")
		service.EXPECT().
			Create(gomock.Any(), dto.Form{Name: "Deluxe", BasePrice: gModel.NewMoney(150, 0), TotalRooms: 10}).
			Return(model.RoomType{ID: 2, Name: "Deluxe"}, nil)

		rec := post(router, "/room-types", url.Values{"name": {"Deluxe"}, "base_price": {"150"}, "total_rooms": {"10"}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/room-types", rec.Header().Get("Location"))
	})
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		location string
	}{
		{name: "deleted", location: "/room-types"},
		{name: "still booked", err: failure.FromStatus(http.StatusConflict, "Room type has bookings"), location: "/room-types"},
		{name: "session expired", err: failure.Unauthorized("Not authenticated"), location: "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, router := newRouter(t, "admin")
			service.EXPECT().
				Delete(gomock.Any(), int64(2)).
				DoAndReturn(func(ctx context.Context, _ int64) error {
					if tt.err != nil {
						flash.Error(ctx, failure.GetMessage(tt.err))
					}

					return tt.err
				})

			rec := post(router, "/room-types/2/delete", url.Values{})

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}
