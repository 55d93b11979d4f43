package router

import (
	"tempus/core/middleware"
	"tempus/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter handles event routes
type EventRouter struct {
	EventController *controller.EventController
}

func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{EventController: eventController}
}

// Setup registers event routes
func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	eventRoutes := privateRoutes.Group("/events", mw.AuthMiddleware())
	eventRoutes.POST("", r.EventController.CreateEvent)
	eventRoutes.POST("/preview", r.EventController.PreviewOccurrences)
	eventRoutes.GET("/:id", r.EventController.GetEvent)
	eventRoutes.PUT("/:id", r.EventController.UpdateEvent)
	eventRoutes.DELETE("/:id", r.EventController.DeleteEvent)
	eventRoutes.GET("/:id/occurrences", r.EventController.GetOccurrences)
	eventRoutes.GET("/:id/recurrence", r.EventController.DescribeRecurrence)
	eventRoutes.GET("/:id/attendees", r.EventController.ListAttendees)
	eventRoutes.POST("/:id/attendees", r.EventController.AddAttendee)
	eventRoutes.DELETE("/:id/attendees/:email", r.EventController.RemoveAttendee)
}
