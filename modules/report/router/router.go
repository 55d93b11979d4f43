package router

import (
	"tempus/core/middleware"
	"tempus/modules/report/controller"

	"github.com/labstack/echo/v4"
)

// ReportRouter handles report routes
type ReportRouter struct {
	ReportController *controller.ReportController
}

func NewReportRouter(reportController *controller.ReportController) *ReportRouter {
	return &ReportRouter{ReportController: reportController}
}

// Setup registers report routes
func (r *ReportRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	reportRoutes := privateRoutes.Group("/reports", mw.AuthMiddleware())
	reportRoutes.POST("/availability", r.ReportController.GenerateAvailabilityReport)
}
