package team

import (
	"tempus/core/database"
	"tempus/core/middleware"
	"tempus/modules/team/controller"
	"tempus/modules/team/repository"
	"tempus/modules/team/router"
	"tempus/modules/team/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the team module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) service.TeamServiceInterface {
	repo := repository.NewTeamRepository(db)
	svc := service.NewTeamService(repo)
	ctrl := controller.NewTeamController(svc)
	rtr := router.NewTeamRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
