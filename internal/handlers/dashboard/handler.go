package dashboard

import (
	"net/http"

	"pmsconsole/infras/otel"
	analyticsModel "pmsconsole/internal/domains/analytics/model"
	"pmsconsole/internal/domains/analytics/model/dto"
	"pmsconsole/internal/domains/analytics/service"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/failure"
	gModel "pmsconsole/shared/model"
	"pmsconsole/transport/http/view"

	"github.com/go-chi/chi/v5"
)

const (
	section       = "dashboard"
	pageDashboard = "dashboard"
)

type data struct {
	dto.Dashboard
	Peak gModel.Money
}

type Handler struct {
	service service.Analytics
	view    view.Renderer
	otel    otel.Otel
}

func New(service service.Analytics, view view.Renderer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		view:    view,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get(constant.RouteDashboard, handler.Dashboard)
}

// Dashboard shows the analytics of the chosen range. Sections that failed show
// their error in place of their content.
func (handler *Handler) Dashboard(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".dashboard.Dashboard")
	defer scope.End()

	req := dto.Request{}
	if err := req.FromRequest(request); err != nil {
		scope.TraceError(err)
		handler.view.Error(writer, request, err)

		return
	}

	status := http.StatusOK

	res, err := handler.service.Dashboard(ctx, req)
	if err != nil {
		scope.TraceError(err)

		if failure.IsUnauthorized(err) {
			handler.view.Error(writer, request, err)

			return
		}

		status = failure.GetCode(err)
	}

	handler.view.Render(writer, request, status, pageDashboard, view.Page{
		Title:   "Dashboard",
		Section: section,
		Data:    data{Dashboard: res, Peak: analyticsModel.PeakRevenue(res.Revenue)},
	})
}
