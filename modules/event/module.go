package event

import (
	"go-event-api/core/cache"
	"go-event-api/core/clock"
	"go-event-api/core/database"
	"go-event-api/core/middleware"
	"go-event-api/modules/event/controller"
	"go-event-api/modules/event/repository"
	"go-event-api/modules/event/router"
	"go-event-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes
func Init(e *echo.Echo, db database.IDatabase, c *cache.Cache, mw *middleware.Middleware) {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, c, clock.NewSystem())
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
}
