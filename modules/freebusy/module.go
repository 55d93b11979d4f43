package freebusy

import (
	"time"

	"tempus/core/cache"
	"tempus/core/middleware"
	eventService "tempus/modules/event/service"
	"tempus/modules/freebusy/controller"
	"tempus/modules/freebusy/router"
	"tempus/modules/freebusy/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the free/busy module and registers routes. The event
// store and sharing policy are injected from their owning modules.
func Init(e *echo.Echo, mw *middleware.Middleware, events service.EventProvider, policy service.SharingPolicy, c *cache.Cache, cacheTTL time.Duration) service.FreeBusyServiceInterface {
	svc := service.NewFreeBusyService(events, policy, eventService.NewRecurrenceExpander(), c, cacheTTL)
	ctrl := controller.NewFreeBusyController(svc)
	rtr := router.NewFreeBusyRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
