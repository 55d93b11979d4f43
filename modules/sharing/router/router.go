package router

import (
	"tempus/core/middleware"
	"tempus/modules/sharing/controller"

	"github.com/labstack/echo/v4"
)

// SharingRouter handles calendar share routes
type SharingRouter struct {
	SharingController *controller.SharingController
}

func NewSharingRouter(sharingController *controller.SharingController) *SharingRouter {
	return &SharingRouter{SharingController: sharingController}
}

// Setup registers share routes
func (r *SharingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	shareRoutes := privateRoutes.Group("/shares", mw.AuthMiddleware())
	shareRoutes.POST("", r.SharingController.GrantShare)
	shareRoutes.GET("", r.SharingController.ListShares)
	shareRoutes.DELETE("/:granteeId", r.SharingController.RevokeShare)
}
