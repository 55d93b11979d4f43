package router

import (
	"tempus/core/middleware"
	"tempus/modules/scheduling/controller"

	"github.com/labstack/echo/v4"
)

// SchedulingRouter handles scheduling routes
type SchedulingRouter struct {
	SchedulingController *controller.SchedulingController
}

func NewSchedulingRouter(schedulingController *controller.SchedulingController) *SchedulingRouter {
	return &SchedulingRouter{SchedulingController: schedulingController}
}

// Setup registers scheduling routes
func (r *SchedulingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	schedulingRoutes := privateRoutes.Group("/scheduling", mw.AuthMiddleware())
	schedulingRoutes.POST("/optimal", r.SchedulingController.FindOptimalTimes)
	schedulingRoutes.POST("/next-available", r.SchedulingController.FindNextAvailableSlot)
	schedulingRoutes.POST("/conflicts", r.SchedulingController.DetectConflicts)
	schedulingRoutes.GET("/alternatives/:eventId", r.SchedulingController.SuggestAlternativeTimes)
	schedulingRoutes.POST("/check", r.SchedulingController.IsTimeAvailableForAll)
}
