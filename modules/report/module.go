package report

import (
	"tempus/core/middleware"
	"tempus/core/storage"
	availabilityService "tempus/modules/availability/service"
	"tempus/modules/report/controller"
	"tempus/modules/report/router"
	"tempus/modules/report/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the report module and registers routes.
func Init(e *echo.Echo, mw *middleware.Middleware, analyzer availabilityService.AvailabilityServiceInterface, store storage.ObjectStore) service.ReportServiceInterface {
	svc := service.NewReportService(analyzer, store)
	ctrl := controller.NewReportController(svc)
	rtr := router.NewReportRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
