package router

import (
	"tempus/core/middleware"
	"tempus/modules/team/controller"

	"github.com/labstack/echo/v4"
)

// TeamRouter handles team routes
type TeamRouter struct {
	TeamController *controller.TeamController
}

func NewTeamRouter(teamController *controller.TeamController) *TeamRouter {
	return &TeamRouter{TeamController: teamController}
}

// Setup registers team routes
func (r *TeamRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	teamRoutes := privateRoutes.Group("/teams", mw.AuthMiddleware())
	teamRoutes.POST("", r.TeamController.CreateTeam)
	teamRoutes.GET("", r.TeamController.GetTeams)
	teamRoutes.GET("/:id", r.TeamController.GetTeam)
	teamRoutes.POST("/:id/members", r.TeamController.AddMember)
	teamRoutes.DELETE("/:id/members/:userId", r.TeamController.RemoveMember)
}
