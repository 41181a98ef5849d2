package router

import (
	"go-event-api/core/middleware"
	"go-event-api/modules/attendee/controller"

	"github.com/labstack/echo/v4"
)

// AttendeeRouter handles attendee routes
type AttendeeRouter struct {
	AttendeeController *controller.AttendeeController
}

// NewAttendeeRouter creates a new router
func NewAttendeeRouter(attendeeController *controller.AttendeeController) *AttendeeRouter {
	return &AttendeeRouter{
		AttendeeController: attendeeController,
	}
}

// Setup registers attendee routes
func (r *AttendeeRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.POST("/events/:id/register", r.AttendeeController.Register)
	v1.GET("/events/:id/attendees", r.AttendeeController.ListAttendees)
	v1.GET("/attendees/:id", r.AttendeeController.GetAttendee)
}
