package scheduling

import (
	"tempus/core/config"
	"tempus/core/middleware"
	availabilityService "tempus/modules/availability/service"
	"tempus/modules/scheduling/controller"
	"tempus/modules/scheduling/router"
	"tempus/modules/scheduling/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the scheduling module and registers routes.
func Init(e *echo.Echo, mw *middleware.Middleware, analyzer availabilityService.AvailabilityServiceInterface, events service.EventSource, cfg config.SchedulingConfig) service.SchedulingServiceInterface {
	svc := service.NewSchedulingService(analyzer, events, cfg)
	ctrl := controller.NewSchedulingController(svc)
	rtr := router.NewSchedulingRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
