package sharing

import (
	"tempus/core/database"
	"tempus/core/middleware"
	"tempus/modules/sharing/controller"
	"tempus/modules/sharing/repository"
	"tempus/modules/sharing/router"
	"tempus/modules/sharing/service"
	teamRepo "tempus/modules/team/repository"
	userRepo "tempus/modules/user/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the sharing module and registers routes. The returned
// policy service is the visibility authority the free/busy aggregator
// consults.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) service.PolicyServiceInterface {
	repo := repository.NewShareRepository(db)
	svc := service.NewPolicyService(repo, userRepo.NewUserRepository(db), teamRepo.NewTeamRepository(db))
	ctrl := controller.NewSharingController(svc)
	rtr := router.NewSharingRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
