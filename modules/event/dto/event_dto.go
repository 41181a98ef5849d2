package dto

import (
	"time"

	"go-event-api/core/pagination"
	"go-event-api/core/timezone"
	"go-event-api/modules/event/entity"
)

// ===================== Request DTOs =====================

// CreateEventRequest for creating a new event. Start and end times are
// local wall-clock strings interpreted in Timezone.
type CreateEventRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Location    string `json:"location" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	MaxCapacity int    `json:"max_capacity" validate:"required,min=1,max=10000"`
	Timezone    string `json:"timezone"`
}

// UpdateEventRequest is a partial update. A timezone change without new
// start/end times preserves the stored absolute instants; new start/end
// times are interpreted in the resulting timezone.
type UpdateEventRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	MaxCapacity *int    `json:"max_capacity"`
	Timezone    *string `json:"timezone"`
}

// ListEventsQuery holds list filters and paging.
type ListEventsQuery struct {
	Name         string `query:"name"`
	Location     string `query:"location"`
	UpcomingOnly *bool  `query:"upcoming_only"`
	Timezone     string `query:"timezone"`
	pagination.Params
}

// ===================== Response DTOs =====================

// EventResponse renders an event: absolute UTC instants plus wall-clock
// projections in the display zone.
type EventResponse struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	Location         string            `json:"location"`
	StartTime        time.Time         `json:"start_time"`
	EndTime          time.Time         `json:"end_time"`
	MaxCapacity      int               `json:"max_capacity"`
	Timezone         string            `json:"timezone"`
	StartTimeDisplay *timezone.Display `json:"start_time_display,omitempty"`
	EndTimeDisplay   *timezone.Display `json:"end_time_display,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// TimezonePreviewResponse is the read-only projection of an event's times
// into a target zone. Nothing is persisted.
type TimezonePreviewResponse struct {
	EventID          string            `json:"event_id"`
	EventTimezone    string            `json:"event_timezone"`
	TargetTimezone   string            `json:"target_timezone"`
	StartTime        time.Time         `json:"start_time"`
	EndTime          time.Time         `json:"end_time"`
	StartTimeDisplay *timezone.Display `json:"start_time_display"`
	EndTimeDisplay   *timezone.Display `json:"end_time_display"`
}

// ===================== Mapper Functions =====================

// ToEventResponse maps an entity to its response, rendering display times
// in displayZone (falling back to the event's anchored zone).
func ToEventResponse(e *entity.Event, displayZone string) (*EventResponse, error) {
	if displayZone == "" {
		displayZone = e.Timezone
	}

	startDisplay, err := timezone.Describe(e.StartTime, displayZone)
	if err != nil {
		return nil, err
	}
	endDisplay, err := timezone.Describe(e.EndTime, displayZone)
	if err != nil {
		return nil, err
	}

	resp := &EventResponse{
		ID:               e.ID.String(),
		Name:             e.Name,
		Location:         e.Location,
		StartTime:        e.StartTime.UTC(),
		EndTime:          e.EndTime.UTC(),
		MaxCapacity:      e.MaxCapacity,
		Timezone:         e.Timezone,
		StartTimeDisplay: startDisplay,
		EndTimeDisplay:   endDisplay,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if e.Description != nil {
		resp.Description = *e.Description
	}
	return resp, nil
}
