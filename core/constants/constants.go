package constants

import "time"

// Database pool settings
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Pagination defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Event validation bounds
const (
	EventNameMaxLength     = 200
	EventLocationMaxLength = 200
	EventMinCapacity       = 1
	EventMaxCapacity       = 10000
	EventMinDuration       = 15 * time.Minute
	EventMaxDuration       = 30 * 24 * time.Hour
)

// Attendee validation bounds
const (
	AttendeeNameMaxLength  = 100
	AttendeeEmailMaxLength = 100
)

// Redis key prefixes
const (
	RedisKeyEvent = "event:"
)

// Cache TTLs
const (
	EventCacheTTL = 5 * time.Minute
)

// Echo context keys
const (
	ContextRequestID = "request_id"
)
