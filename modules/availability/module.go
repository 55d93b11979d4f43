package availability

import (
	"tempus/core/middleware"
	"tempus/modules/availability/controller"
	"tempus/modules/availability/router"
	"tempus/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes. The
// returned service is the analyzer the scheduling suggester scores slots
// with.
func Init(e *echo.Echo, mw *middleware.Middleware, directory service.UserDirectory, busy service.BusySource, unknownPenaltyPct float64) service.AvailabilityServiceInterface {
	svc := service.NewAvailabilityService(directory, busy, unknownPenaltyPct)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
