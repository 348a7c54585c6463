package customer

import (
	"net/http"
	"strconv"

	"pmsconsole/config"
	"pmsconsole/infras/otel"
	"pmsconsole/internal/domains/customer/model"
	"pmsconsole/internal/domains/customer/model/dto"
	"pmsconsole/internal/domains/customer/service"
	"pmsconsole/shared/constant"
	gDto "pmsconsole/shared/dto"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/validator"
	"pmsconsole/transport/http/response"
	"pmsconsole/transport/http/view"

	"github.com/go-chi/chi/v5"
)

const (
	section = "customers"

	pageList   = "customers/list"
	pageDetail = "customers/detail"
	pageForm   = "customers/form"
)

type listData struct {
	Customers []model.Customer
	Request   dto.ListRequest
	Pager     view.Pager
}

type formData struct {
	Action string
}

type Handler struct {
	service service.Customer
	view    view.Renderer
	config  *config.Config
	otel    otel.Otel
}

func New(service service.Customer, view view.Renderer, config *config.Config, otel otel.Otel) Handler {
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
		routerGroup.Get("/{id}", handler.Detail)
		routerGroup.Get("/{id}/edit", handler.Edit)
		routerGroup.Post("/{id}/edit", handler.Update)
	})
}

func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".customer.List")
	defer scope.End()

	req := dto.ListRequest{}
	req.FromRequest(request)

	page := view.Page{Title: "Customers", Section: section}
	status := http.StatusOK

	res, err := handler.service.List(ctx, req)
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
		Customers: res.Customers,
		Request:   req,
		Pager:     view.NewPager(res.Page, req.Filters()),
	}

	handler.view.Render(writer, request, status, pageList, page)
}

// Detail shows the customer with their booking history.
func (handler *Handler) Detail(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".customer.Detail")
	defer scope.End()

	id, err := gDto.IDParam(request)
	if err != nil {
		handler.view.Error(writer, request, err)

		return
	}

	res, err := handler.service.Detail(ctx, id)
	if err != nil {
		scope.TraceError(err)
		handler.view.Error(writer, request, err)

		return
	}

	handler.view.Render(writer, request, http.StatusOK, pageDetail, view.Page{
		Title:   res.Customer.Name,
		Section: section,
		Data:    res,
	})
}

func (handler *Handler) NewPage(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, "New customer", model.Path, dto.Form{}, nil)
}

func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".customer.Create")
	defer scope.End()

	form := dto.Form{}

	if errs := form.FromForm(request).Merge(validator.ValidateForm(&form)); errs != nil {
		handler.render(writer, request, http.StatusUnprocessableEntity, "New customer", model.Path, form, errs)

		return
	}

	customer, err := handler.service.Create(ctx, form)
	if err != nil {
		scope.TraceError(err)
		handler.rejected(writer, request, "New customer", model.Path, form, err)

		return
	}

	response.Redirect(writer, request, handler.config, customerURL(customer.ID))
}

func (handler *Handler) Edit(writer http.ResponseWriter, request *http.Request) {
	customer, ok := handler.load(writer, request)
	if !ok {
		return
	}

	handler.render(writer, request, http.StatusOK, "Edit "+customer.Name, customerURL(customer.ID)+"/edit", dto.NewForm(customer), nil)
}

func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".customer.Update")
	defer scope.End()

	id, err := gDto.IDParam(request)
	if err != nil {
		handler.view.Error(writer, request, err)

		return
	}

	title, action := "Edit customer", customerURL(id)+"/edit"
	form := dto.Form{}

	if errs := form.FromForm(request).Merge(validator.ValidateForm(&form)); errs != nil {
		handler.render(writer, request, http.StatusUnprocessableEntity, title, action, form, errs)

		return
	}

	if _, err = handler.service.Update(ctx, id, form); err != nil {
		scope.TraceError(err)
		handler.rejected(writer, request, title, action, form, err)

		return
	}

	response.Redirect(writer, request, handler.config, customerURL(id))
}

func (handler *Handler) load(writer http.ResponseWriter, request *http.Request) (model.Customer, bool) {
	id, err := gDto.IDParam(request)
	if err != nil {
		handler.view.Error(writer, request, err)

		return model.Customer{}, false
	}

	customer, err := handler.service.Get(request.Context(), id)
	if err != nil {
		handler.view.Error(writer, request, err)

		return model.Customer{}, false
	}

	return customer, true
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

func customerURL(id int64) string {
	return model.Path + "/" + strconv.FormatInt(id, 10)
}
