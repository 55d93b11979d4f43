package router

import (
	"tempus/core/middleware"
	"tempus/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

// NotificationRouter handles notification routes
type NotificationRouter struct {
	NotificationController *controller.NotificationController
}

func NewNotificationRouter(notificationController *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{NotificationController: notificationController}
}

// Setup registers notification routes
func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	notificationRoutes := privateRoutes.Group("/notifications", mw.AuthMiddleware())
	notificationRoutes.GET("", r.NotificationController.GetMyNotifications)
	notificationRoutes.GET("/unread-count", r.NotificationController.CountUnread)
	notificationRoutes.PUT("/mark-read", r.NotificationController.MarkAsRead)
	notificationRoutes.PUT("/mark-all-read", r.NotificationController.MarkAllAsRead)
}
