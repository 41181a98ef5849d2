package main

import (
	"os"

	"go-event-api/core/logger"
	"go-event-api/core/server"
)

// @title Event Registration API
// @version 1.0
// @description Timezone-aware CRUD API for events and attendee registrations.

// @host localhost:7070
// @BasePath /api/v1

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
		os.Exit(1)
	}
}
