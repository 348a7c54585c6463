package calendar

import (
	"net/http"

	"pmsconsole/config"
	"pmsconsole/infras/otel"
	"pmsconsole/internal/domains/calendar/model/dto"
	"pmsconsole/internal/domains/calendar/service"
	roomTypeModel "pmsconsole/internal/domains/roomtype/model"
	roomTypeService "pmsconsole/internal/domains/roomtype/service"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/failure"
	"pmsconsole/transport/http/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	section      = "calendar"
	pageCalendar = "calendar"
)

type data struct {
	dto.Response
	RoomTypes []roomTypeModel.RoomType
}

type Handler struct {
	service   service.Calendar
	roomTypes roomTypeService.RoomType
	view      view.Renderer
	config    *config.Config
	otel      otel.Otel
}

func New(service service.Calendar, roomTypes roomTypeService.RoomType, view view.Renderer, config *config.Config, otel otel.Otel) Handler {
	return Handler{
		service:   service,
		roomTypes: roomTypes,
		view:      view,
		config:    config,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/calendar", handler.Calendar)
}

// Calendar shows availability per room type and night, with the arrivals of the range.
// The room type filter is loaded alongside the grid.
func (handler *Handler) Calendar(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".calendar.Calendar")
	defer scope.End()

	req := dto.Request{}
	page := view.Page{Title: "Calendar", Section: section}

	if err := req.FromRequest(request); err != nil {
		scope.TraceError(err)

		page.Error = failure.GetMessage(err)
		page.Data = data{Response: dto.Response{Request: req}}
		handler.view.Render(writer, request, failure.GetCode(err), pageCalendar, page)

		return
	}

	var (
		grid      dto.Response
		roomTypes []roomTypeModel.RoomType
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		grid, err = handler.service.Grid(groupCtx, req)

		return err
	})

	group.Go(func() error {
		var err error
		if roomTypes, err = handler.roomTypes.List(groupCtx); err != nil {
			// the grid is still usable without the filter options
			log.Warn().Err(err).Msg("failed to load room type filter")
		}

		return nil
	})

	status := http.StatusOK

	if err := group.Wait(); err != nil {
		scope.TraceError(err)

		if failure.IsUnauthorized(err) {
			handler.view.Error(writer, request, err)

			return
		}

		page.Error = failure.GetMessage(err)
		status = failure.GetCode(err)
		grid.Request = req
	}

	page.Data = data{Response: grid, RoomTypes: roomTypes}

	handler.view.Render(writer, request, status, pageCalendar, page)
}
