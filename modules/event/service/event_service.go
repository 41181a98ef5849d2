package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-event-api/core/cache"
	"go-event-api/core/clock"
	"go-event-api/core/constants"
	"go-event-api/core/errors"
	"go-event-api/core/logger"
	"go-event-api/core/pagination"
	"go-event-api/core/timezone"
	"go-event-api/modules/event/dto"
	"go-event-api/modules/event/entity"
	"go-event-api/modules/event/repository"

	"github.com/google/uuid"
)

// EventService handles event business logic. All time math goes through
// core/timezone; stored instants are always UTC.
type EventService struct {
	repo  repository.EventRepositoryInterface
	cache *cache.Cache
	clock clock.Clock
}

// EventServiceInterface defines the service contract
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEventByID(ctx context.Context, id uuid.UUID, displayZone string) (*dto.EventResponse, *errors.AppError)
	ListEvents(ctx context.Context, q *dto.ListEventsQuery) (*pagination.Page[dto.EventResponse], *errors.AppError)
	UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	PreviewTimezone(ctx context.Context, id uuid.UUID, targetZone string) (*dto.TimezonePreviewResponse, *errors.AppError)
}

// NewEventService creates a new event service
func NewEventService(repo repository.EventRepositoryInterface, c *cache.Cache, clk clock.Clock) EventServiceInterface {
	return &EventService{
		repo:  repo,
		cache: c,
		clock: clk,
	}
}

// CreateEvent validates and stores a new event.
func (s *EventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	name, appErr := validateName(req.Name)
	if appErr != nil {
		return nil, appErr
	}
	location, appErr := validateLocation(req.Location)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := validateCapacity(req.MaxCapacity); appErr != nil {
		return nil, appErr
	}

	zone := strings.TrimSpace(req.Timezone)
	if zone == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "timezone is required", nil)
	}
	if err := timezone.Validate(zone); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidTimezone,
			fmt.Sprintf("invalid timezone: %s", zone), err)
	}

	start, err := timezone.ToAbsolute(req.StartTime, zone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid start_time", err)
	}
	end, err := timezone.ToAbsolute(req.EndTime, zone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid end_time", err)
	}

	if !start.After(s.clock.Now()) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start_time must be in the future", nil)
	}
	if appErr := validateTimes(start, end); appErr != nil {
		return nil, appErr
	}

	event := &entity.Event{
		Name:        name,
		Location:    location,
		StartTime:   start,
		EndTime:     end,
		MaxCapacity: req.MaxCapacity,
		Timezone:    zone,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		event.Description = &desc
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create event", err)
	}

	return s.render(created, zone)
}

// GetEventByID retrieves an event, rendering times in displayZone (the
// event's anchored zone when empty).
func (s *EventService) GetEventByID(ctx context.Context, id uuid.UUID, displayZone string) (*dto.EventResponse, *errors.AppError) {
	if displayZone != "" {
		if err := timezone.Validate(displayZone); err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidTimezone,
				fmt.Sprintf("invalid timezone: %s", displayZone), err)
		}
	}

	event, appErr := s.loadEvent(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return s.render(event, displayZone)
}

// ListEvents returns a filtered page of events.
func (s *EventService) ListEvents(ctx context.Context, q *dto.ListEventsQuery) (*pagination.Page[dto.EventResponse], *errors.AppError) {
	if appErr := q.Normalize(); appErr != nil {
		return nil, appErr
	}
	if q.Timezone != "" {
		if err := timezone.Validate(q.Timezone); err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidTimezone,
				fmt.Sprintf("invalid timezone: %s", q.Timezone), err)
		}
	}

	filter := repository.ListFilter{
		Name:     strings.TrimSpace(q.Name),
		Location: strings.TrimSpace(q.Location),
		Limit:    q.Limit(),
		Offset:   q.Offset(),
	}
	// upcoming_only defaults to true
	if q.UpcomingOnly == nil || *q.UpcomingOnly {
		now := s.clock.Now()
		filter.UpcomingFrom = &now
	}

	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list events", err)
	}

	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp, appErr := s.render(&events[i], q.Timezone)
		if appErr != nil {
			return nil, appErr
		}
		items = append(items, *resp)
	}

	return pagination.NewPage(items, total, q.Params), nil
}

// UpdateEvent applies a partial update. When only the timezone changes,
// the stored absolute instants stay untouched and only the rendered local
// times move; explicit new start/end times are interpreted in the
// resulting timezone.
func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.loadEvent(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	resultingZone := event.Timezone
	if req.Timezone != nil {
		zone := strings.TrimSpace(*req.Timezone)
		if err := timezone.Validate(zone); err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidTimezone,
				fmt.Sprintf("invalid timezone: %s", zone), err)
		}
		resultingZone = zone
	}

	if req.StartTime != nil {
		start, err := timezone.ToAbsolute(*req.StartTime, resultingZone)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid start_time", err)
		}
		if !start.After(s.clock.Now()) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "start_time must be in the future", nil)
		}
		event.StartTime = start
	}
	if req.EndTime != nil {
		end, err := timezone.ToAbsolute(*req.EndTime, resultingZone)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid end_time", err)
		}
		event.EndTime = end
	}
	event.Timezone = resultingZone

	if req.Name != nil {
		name, appErr := validateName(*req.Name)
		if appErr != nil {
			return nil, appErr
		}
		event.Name = name
	}
	if req.Location != nil {
		location, appErr := validateLocation(*req.Location)
		if appErr != nil {
			return nil, appErr
		}
		event.Location = location
	}
	if req.Description != nil {
		if desc := strings.TrimSpace(*req.Description); desc != "" {
			event.Description = &desc
		} else {
			event.Description = nil
		}
	}
	if req.MaxCapacity != nil {
		if appErr := validateCapacity(*req.MaxCapacity); appErr != nil {
			return nil, appErr
		}
		event.MaxCapacity = *req.MaxCapacity
	}

	if appErr := validateTimes(event.StartTime, event.EndTime); appErr != nil {
		return nil, appErr
	}

	event.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update event", err)
	}
	s.invalidate(ctx, id)

	return s.render(event, resultingZone)
}

// PreviewTimezone projects the event's stored instants into targetZone
// without persisting anything.
func (s *EventService) PreviewTimezone(ctx context.Context, id uuid.UUID, targetZone string) (*dto.TimezonePreviewResponse, *errors.AppError) {
	if strings.TrimSpace(targetZone) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "timezone is required", nil)
	}
	if err := timezone.Validate(targetZone); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidTimezone,
			fmt.Sprintf("invalid timezone: %s", targetZone), err)
	}

	event, appErr := s.loadEvent(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	startDisplay, err := timezone.Describe(event.StartTime, targetZone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to convert start_time", err)
	}
	endDisplay, err := timezone.Describe(event.EndTime, targetZone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to convert end_time", err)
	}

	return &dto.TimezonePreviewResponse{
		EventID:          event.ID.String(),
		EventTimezone:    event.Timezone,
		TargetTimezone:   targetZone,
		StartTime:        event.StartTime.UTC(),
		EndTime:          event.EndTime.UTC(),
		StartTimeDisplay: startDisplay,
		EndTimeDisplay:   endDisplay,
	}, nil
}

// loadEvent fetches an event through the cache.
func (s *EventService) loadEvent(ctx context.Context, id uuid.UUID) (*entity.Event, *errors.AppError) {
	key := constants.RedisKeyEvent + id.String()

	var cached entity.Event
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warn("EventService:loadEvent:cache", "error", err)
	}
	if hit {
		return &cached, nil
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound,
			fmt.Sprintf("Event with ID %s not found", id), nil)
	}

	if err := s.cache.SetJSON(ctx, key, event, constants.EventCacheTTL); err != nil {
		logger.Warn("EventService:loadEvent:cache", "error", err)
	}
	return event, nil
}

func (s *EventService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, constants.RedisKeyEvent+id.String()); err != nil {
		logger.Warn("EventService:invalidate", "error", err)
	}
}

func (s *EventService) render(event *entity.Event, displayZone string) (*dto.EventResponse, *errors.AppError) {
	resp, err := dto.ToEventResponse(event, displayZone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to render event", err)
	}
	return resp, nil
}

// ===================== Validation =====================

func validateName(raw string) (string, *errors.AppError) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", errors.NewAppError(errors.ErrInvalidInput, "event name is required", nil)
	}
	if len(name) > constants.EventNameMaxLength {
		return "", errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("event name must be at most %d characters", constants.EventNameMaxLength), nil)
	}
	hasAlnum := false
	for _, r := range name {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			hasAlnum = true
			break
		}
	}
	if !hasAlnum {
		return "", errors.NewAppError(errors.ErrInvalidInput,
			"event name must contain at least one letter or number", nil)
	}
	return name, nil
}

func validateLocation(raw string) (string, *errors.AppError) {
	location := strings.TrimSpace(raw)
	if location == "" {
		return "", errors.NewAppError(errors.ErrInvalidInput, "event location is required", nil)
	}
	if len(location) > constants.EventLocationMaxLength {
		return "", errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("event location must be at most %d characters", constants.EventLocationMaxLength), nil)
	}
	return location, nil
}

func validateCapacity(capacity int) *errors.AppError {
	if capacity < constants.EventMinCapacity || capacity > constants.EventMaxCapacity {
		return errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("max_capacity must be between %d and %d",
				constants.EventMinCapacity, constants.EventMaxCapacity), nil)
	}
	return nil
}

func validateTimes(start, end time.Time) *errors.AppError {
	if !end.After(start) {
		return errors.NewAppError(errors.ErrInvalidInput, "end_time must be after start_time", nil)
	}
	duration := end.Sub(start)
	if duration < constants.EventMinDuration {
		return errors.NewAppError(errors.ErrInvalidInput, "event duration must be at least 15 minutes", nil)
	}
	if duration > constants.EventMaxDuration {
		return errors.NewAppError(errors.ErrInvalidInput, "event duration cannot exceed 30 days", nil)
	}
	return nil
}
