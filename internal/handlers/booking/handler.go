package booking

import (
	"net/http"
	"strconv"

	"pmsconsole/config"
	"pmsconsole/infras/otel"
	"pmsconsole/internal/domains/booking/model"
	"pmsconsole/internal/domains/booking/model/dto"
	"pmsconsole/internal/domains/booking/service"
	roomTypeModel "pmsconsole/internal/domains/roomtype/model"
	roomTypeService "pmsconsole/internal/domains/roomtype/service"
	"pmsconsole/shared/constant"
	gDto "pmsconsole/shared/dto"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/validator"
	"pmsconsole/transport/http/response"
	"pmsconsole/transport/http/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	section = "bookings"

	pageList   = "bookings/list"
	pageNew    = "bookings/new"
	pageDetail = "bookings/detail"
	pageEdit   = "bookings/edit"
	pageModify = "bookings/modify"
)

type listData struct {
	Bookings []model.Booking
	Request  dto.ListRequest
	Pager    view.Pager
	Statuses []view.Option
}

type formData struct {
	Booking   model.Booking
	RoomTypes []roomTypeModel.RoomType
}

type Handler struct {
	service   service.Booking
	roomTypes roomTypeService.RoomType
	view      view.Renderer
	config    *config.Config
	otel      otel.Otel
}

func New(service service.Booking, roomTypes roomTypeService.RoomType, view view.Renderer, config *config.Config, otel otel.Otel) Handler {
	return Handler{
		service:   service,
		roomTypes: roomTypes,
		view:      view,
		config:    config,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route(model.Path, func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.List)
		routerGroup.Post("/", handler.Create)
		routerGroup.Get("/new", handler.NewPage)
		routerGroup.Get("/{id}", handler.Detail)
		routerGroup.Get("/{id}/edit", handler.Edit)
		routerGroup.Post("/{id}/edit", handler.Update)
		routerGroup.Get("/{id}/modify", handler.ModifyPage)
		routerGroup.Post("/{id}/modify", handler.Modify)
		routerGroup.Post("/{id}/cancel", handler.Cancel)
	})
}

// List shows one page of bookings filtered by status and stay dates.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.List")
	defer scope.End()

	req := dto.ListRequest{}
	page := view.Page{Title: "Bookings", Section: section}

	if err := req.FromRequest(request); err != nil {
		scope.TraceError(err)

		page.Error = failure.GetMessage(err)
		page.Data = listData{Request: req, Statuses: view.StatusOptions(req.Status)}
		handler.view.Render(writer, request, failure.GetCode(err), pageList, page)

		return
	}

	res, err := handler.service.List(ctx, req)
	if err != nil {
		scope.TraceError(err)

		if failure.IsUnauthorized(err) {
			handler.view.Error(writer, request, err)

			return
		}

		page.Error = failure.GetMessage(err)
	}

	page.Data = listData{
		Bookings: res.Bookings,
		Request:  req,
		Pager:    view.NewPager(res.Page, req.Filters()),
		Statuses: view.StatusOptions(req.Status),
	}

	handler.view.Render(writer, request, statusOf(err), pageList, page)
}

func (handler *Handler) NewPage(writer http.ResponseWriter, request *http.Request) {
	handler.renderNew(writer, request, http.StatusOK, dto.NewCreateBookingForm(), nil)
}

// Create validates the booking before anything is sent. A rejected booking is
// shown again with what was entered.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.Create")
	defer scope.End()

	form := dto.CreateBookingForm{}

	if errs := form.FromForm(request).Merge(validator.ValidateForm(&form)); errs != nil {
		scope.SetAttribute("form.invalid_fields", len(errs))
		handler.renderNew(writer, request, http.StatusUnprocessableEntity, form, errs)

		return
	}

	booking, err := handler.service.Create(ctx, form)
	if err != nil {
		scope.TraceError(err)

		if failure.IsUnauthorized(err) {
			handler.view.Error(writer, request, err)

			return
		}

		handler.renderNew(writer, request, failure.GetCode(err), form, nil)

		return
	}

	response.Redirect(writer, request, handler.config, bookingURL(booking.ID))
}

func (handler *Handler) Detail(writer http.ResponseWriter, request *http.Request) {
	booking, ok := handler.load(writer, request)
	if !ok {
		return
	}

	handler.view.Render(writer, request, http.StatusOK, pageDetail, view.Page{
		Title:   "Booking #" + strconv.FormatInt(booking.ID, 10),
		Section: section,
		Data:    booking,
	})
}

func (handler *Handler) Edit(writer http.ResponseWriter, request *http.Request) {
	booking, ok := handler.load(writer, request)
	if !ok {
		return
	}

	handler.renderForm(writer, request, http.StatusOK, pageEdit, booking, dto.NewUpdateBookingForm(booking), nil)
}

// Update records payments, status changes and notes.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.Update")
	defer scope.End()

	booking, ok := handler.load(writer, request)
	if !ok {
		return
	}

	form := dto.UpdateBookingForm{}

	if errs := form.FromForm(request).Merge(validator.ValidateForm(&form)); errs != nil {
		handler.renderForm(writer, request, http.StatusUnprocessableEntity, pageEdit, booking, form, errs)

		return
	}

	if _, err := handler.service.Update(ctx, booking.ID, form); err != nil {
		scope.TraceError(err)
		handler.rejected(writer, request, pageEdit, booking, form, err)

		return
	}

	response.Redirect(writer, request, handler.config, bookingURL(booking.ID))
}

func (handler *Handler) ModifyPage(writer http.ResponseWriter, request *http.Request) {
	booking, ok := handler.load(writer, request)
	if !ok {
		return
	}

	handler.renderForm(writer, request, http.StatusOK, pageModify, booking, dto.NewModifyBookingForm(booking), nil)
}

// Modify moves the stay. The backend reprices the booking and checks availability.
func (handler *Handler) Modify(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.Modify")
	defer scope.End()

	booking, ok := handler.load(writer, request)
	if !ok {
		return
	}

	form := dto.ModifyBookingForm{}

	if errs := form.FromForm(request).Merge(validator.ValidateForm(&form)); errs != nil {
		handler.renderForm(writer, request, http.StatusUnprocessableEntity, pageModify, booking, form, errs)

		return
	}

	if _, err := handler.service.Modify(ctx, booking.ID, form); err != nil {
		scope.TraceError(err)
		handler.rejected(writer, request, pageModify, booking, form, err)

		return
	}

	response.Redirect(writer, request, handler.config, bookingURL(booking.ID))
}

func (handler *Handler) Cancel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.Cancel")
	defer scope.End()

	booking, ok := handler.load(writer, request)
	if !ok {
		return
	}

	form := dto.CancelBookingForm{}
	errs := form.FromForm(request).Merge(validator.ValidateForm(&form))
	page := view.Page{Title: "Booking #" + strconv.FormatInt(booking.ID, 10), Section: section, Data: booking, Form: form}

	if errs != nil {
		page.Errors = errs
		handler.view.Render(writer, request, http.StatusUnprocessableEntity, pageDetail, page)

		return
	}

	if _, err := handler.service.Cancel(ctx, booking.ID, form); err != nil {
		scope.TraceError(err)

		if failure.IsUnauthorized(err) {
			handler.view.Error(writer, request, err)

			return
		}

		handler.view.Render(writer, request, failure.GetCode(err), pageDetail, page)

		return
	}

	response.Redirect(writer, request, handler.config, bookingURL(booking.ID))
}

// load fetches the booking named in the URL, answering the request itself when that fails.
func (handler *Handler) load(writer http.ResponseWriter, request *http.Request) (model.Booking, bool) {
	id, err := gDto.IDParam(request)
	if err != nil {
		handler.view.Error(writer, request, err)

		return model.Booking{}, false
	}

	booking, err := handler.service.Get(request.Context(), id)
	if err != nil {
		log.Warn().Err(err).Int64("booking_id", id).Msg("failed to load booking")
		handler.view.Error(writer, request, err)

		return model.Booking{}, false
	}

	return booking, true
}

func (handler *Handler) listRoomTypes(writer http.ResponseWriter, request *http.Request) ([]roomTypeModel.RoomType, bool) {
	roomTypes, err := handler.roomTypes.List(request.Context())
	if err != nil {
		handler.view.Error(writer, request, err)

		return nil, false
	}

	return roomTypes, true
}

func (handler *Handler) renderNew(writer http.ResponseWriter, request *http.Request, status int, form dto.CreateBookingForm, errs validator.FieldErrors) {
	roomTypes, ok := handler.listRoomTypes(writer, request)
	if !ok {
		return
	}

	handler.view.Render(writer, request, status, pageNew, view.Page{
		Title:   "New booking",
		Section: section,
		Data:    formData{RoomTypes: roomTypes},
		Form:    form,
		Errors:  errs,
	})
}

func (handler *Handler) renderForm(writer http.ResponseWriter, request *http.Request, status int, name string, booking model.Booking, form any, errs validator.FieldErrors) {
	data := formData{Booking: booking}

	if name == pageModify {
		roomTypes, ok := handler.listRoomTypes(writer, request)
		if !ok {
			return
		}

		data.RoomTypes = roomTypes
	}

	handler.view.Render(writer, request, status, name, view.Page{
		Title:   "Booking #" + strconv.FormatInt(booking.ID, 10),
		Section: section,
		Data:    data,
		Form:    form,
		Errors:  errs,
	})
}

func (handler *Handler) rejected(writer http.ResponseWriter, request *http.Request, name string, booking model.Booking, form any, err error) {
	if failure.IsUnauthorized(err) {
		handler.view.Error(writer, request, err)

		return
	}

	handler.renderForm(writer, request, failure.GetCode(err), name, booking, form, nil)
}

func bookingURL(id int64) string {
	return model.Path + "/" + strconv.FormatInt(id, 10)
}

func statusOf(err error) int {
	if err != nil {
		return failure.GetCode(err)
	}

	return http.StatusOK
}
