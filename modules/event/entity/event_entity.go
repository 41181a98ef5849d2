package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a scheduled event. StartTime and EndTime are absolute UTC
// instants; Timezone is the IANA zone the event is anchored to for
// display, never a modifier of the stored instants.
type Event struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Location    string    `db:"location" json:"location"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	MaxCapacity int       `db:"max_capacity" json:"max_capacity"`
	Timezone    string    `db:"timezone" json:"timezone"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
