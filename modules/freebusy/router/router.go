package router

import (
	"tempus/core/middleware"
	"tempus/modules/freebusy/controller"

	"github.com/labstack/echo/v4"
)

// FreeBusyRouter handles free/busy routes
type FreeBusyRouter struct {
	FreeBusyController *controller.FreeBusyController
}

func NewFreeBusyRouter(freeBusyController *controller.FreeBusyController) *FreeBusyRouter {
	return &FreeBusyRouter{FreeBusyController: freeBusyController}
}

// Setup registers free/busy routes
func (r *FreeBusyRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	freeBusyRoutes := privateRoutes.Group("/freebusy", mw.AuthMiddleware())
	freeBusyRoutes.GET("/:userId", r.FreeBusyController.GetBusyIntervals)
	freeBusyRoutes.POST("/batch", r.FreeBusyController.GetBusyIntervalsForUsers)
}
