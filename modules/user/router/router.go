package router

import (
	"tempus/core/middleware"
	"tempus/modules/user/controller"

	"github.com/labstack/echo/v4"
)

// UserRouter handles directory routes
type UserRouter struct {
	UserController *controller.UserController
}

func NewUserRouter(userController *controller.UserController) *UserRouter {
	return &UserRouter{UserController: userController}
}

// Setup registers directory routes
func (r *UserRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	userRoutes := privateRoutes.Group("/users", mw.AuthMiddleware())
	userRoutes.POST("", r.UserController.CreateUser)
	userRoutes.GET("/:id", r.UserController.GetUser)
	userRoutes.PUT("/me/sharing", r.UserController.UpdateSharing)
}
