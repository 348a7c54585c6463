package roomtype

import (
	"net/http"
	"strconv"

	"pmsconsole/config"
	"pmsconsole/infras/otel"
	authModel "pmsconsole/internal/domains/auth/model"
	"pmsconsole/internal/domains/roomtype/model"
	"pmsconsole/internal/domains/roomtype/model/dto"
	"pmsconsole/internal/domains/roomtype/service"
	"pmsconsole/shared/constant"
	gDto "pmsconsole/shared/dto"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/validator"
	"pmsconsole/transport/http/response"
	"pmsconsole/transport/http/view"

	"github.com/go-chi/chi/v5"
)

const (
	section = "room_types"

	pageList = "roomtypes/list"
	pageForm = "roomtypes/form"
)

type listData struct {
	RoomTypes []model.RoomType
	CanManage bool
	CanDelete bool
}

type formData struct {
	Action string
}

type Handler struct {
	service service.RoomType
	view    view.Renderer
	config  *config.Config
	otel    otel.Otel
}

func New(service service.RoomType, view view.Renderer, config *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		view:    view,
		config:  config,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route(model.Path, func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.List)
		routerGroup.Post("/", handler.Create)
		routerGroup.Get("/new", handler.NewPage)
		routerGroup.Get("/{id}/edit", handler.Edit)
		routerGroup.Post("/{id}/edit", handler.Update)
		routerGroup.Post("/{id}/delete", handler.Delete)
	})
}

// List shows the room types. Actions are offered only to roles that may use them.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".roomtype.List")
	defer scope.End()

	session := authModel.SessionFrom(ctx)
	page := view.Page{Title: "Room types", Section: section}
	status := http.StatusOK

	roomTypes, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)

		if failure.IsUnauthorized(err) {
			handler.view.Error(writer, request, err)

			return
		}

		page.Error = failure.GetMessage(err)
		status = failure.GetCode(err)
	}

	page.Data = listData{
		RoomTypes: roomTypes,
		CanManage: session.HasRole(constant.RoleAdmin, constant.RoleManager),
		CanDelete: session.HasRole(constant.RoleAdmin),
	}

	handler.view.Render(writer, request, status, pageList, page)
}

func (handler *Handler) NewPage(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, "New room type", model.Path, dto.Form{}, nil)
}

func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".roomtype.Create")
	defer scope.End()

	form := dto.Form{}

	if errs := form.FromForm(request).Merge(validator.ValidateForm(&form)); errs != nil {
		handler.render(writer, request, http.StatusUnprocessableEntity, "New room type", model.Path, form, errs)

		return
	}

	if _, err := handler.service.Create(ctx, form); err != nil {
		scope.TraceError(err)
		handler.rejected(writer, request, "New room type", model.Path, form, err)

		return
	}

	response.Redirect(writer, request, handler.config, model.Path)
}

func (handler *Handler) Edit(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".roomtype.Edit")
	defer scope.End()

	id, err := gDto.IDParam(request)
	if err != nil {
		handler.view.Error(writer, request, err)

		return
	}

	roomType, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		handler.view.Error(writer, request, err)

		return
	}

	handler.render(writer, request, http.StatusOK, "Edit "+roomType.Name, editURL(id), dto.NewForm(roomType), nil)
}

func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".roomtype.Update")
	defer scope.End()

	id, err := gDto.IDParam(request)
	if err != nil {
		handler.view.Error(writer, request, err)

		return
	}

	form := dto.Form{}

	if errs := form.FromForm(request).Merge(validator.ValidateForm(&form)); errs != nil {
		handler.render(writer, request, http.StatusUnprocessableEntity, "Edit room type", editURL(id), form, errs)

		return
	}

	if _, err = handler.service.Update(ctx, id, form); err != nil {
		scope.TraceError(err)
		handler.rejected(writer, request, "Edit room type", editURL(id), form, err)

		return
	}

	response.Redirect(writer, request, handler.config, model.Path)
}

// Delete returns to the list either way; a refusal, such as a room type still
// booked, is shown as a notification there.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".roomtype.Delete")
	defer scope.End()

	id, err := gDto.IDParam(request)
	if err != nil {
		handler.view.Error(writer, request, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)

		if failure.IsUnauthorized(err) {
			handler.view.Error(writer, request, err)

			return
		}
	}

	response.Redirect(writer, request, handler.config, model.Path)
}

func (handler *Handler) render(writer http.ResponseWriter, request *http.Request, status int, title, action string, form dto.Form, errs validator.FieldErrors) {
	handler.view.Render(writer, request, status, pageForm, view.Page{
		Title:   title,
		Section: section,
		Data:    formData{Action: action},
		Form:    form,
		Errors:  errs,
	})
}

func (handler *Handler) rejected(writer http.ResponseWriter, request *http.Request, title, action string, form dto.Form, err error) {
	if failure.IsUnauthorized(err) {
		handler.view.Error(writer, request, err)

		return
	}

	handler.render(writer, request, failure.GetCode(err), title, action, form, nil)
}

func editURL(id int64) string {
	return model.Path + "/" + strconv.FormatInt(id, 10) + "/edit"
}
