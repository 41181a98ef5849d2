package attendee

import (
	"go-event-api/core/cache"
	"go-event-api/core/clock"
	"go-event-api/core/database"
	"go-event-api/core/middleware"
	"go-event-api/modules/attendee/controller"
	"go-event-api/modules/attendee/repository"
	"go-event-api/modules/attendee/router"
	"go-event-api/modules/attendee/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the attendee module and registers routes
func Init(e *echo.Echo, db database.IDatabase, c *cache.Cache, mw *middleware.Middleware) {
	repo := repository.NewAttendeeRepository(db)
	svc := service.NewAttendeeService(repo, c, clock.NewSystem())
	ctrl := controller.NewAttendeeController(svc)
	rtr := router.NewAttendeeRouter(ctrl)

	rtr.Setup(e, mw)
}
