package event

import (
	"tempus/core/database"
	"tempus/core/jobs"
	"tempus/core/middleware"
	"tempus/modules/event/controller"
	"tempus/modules/event/repository"
	"tempus/modules/event/router"
	"tempus/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes. The returned
// repository doubles as the event-store collaborator for the free/busy and
// scheduling pipelines.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, users service.UserResolver, jobsClient *jobs.Client) (service.EventServiceInterface, repository.EventRepositoryInterface) {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, users, service.NewRecurrenceExpander(), jobsClient)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
	return svc, repo
}
