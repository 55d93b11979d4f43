package notification

import (
	"tempus/core/database"
	"tempus/core/middleware"
	"tempus/modules/notification/controller"
	"tempus/modules/notification/repository"
	"tempus/modules/notification/router"
	"tempus/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and registers routes. The
// returned service also carries the background handler for event-change
// tasks.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) service.NotificationServiceInterface {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
