package user

import (
	"tempus/core/database"
	"tempus/core/middleware"
	"tempus/modules/user/controller"
	"tempus/modules/user/repository"
	"tempus/modules/user/router"
	"tempus/modules/user/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the user module and registers routes. The returned service
// is the directory collaborator consumed by the availability pipeline.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) service.UserServiceInterface {
	repo := repository.NewUserRepository(db)
	svc := service.NewUserService(repo)
	ctrl := controller.NewUserController(svc)
	rtr := router.NewUserRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
