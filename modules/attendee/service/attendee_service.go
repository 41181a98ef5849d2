package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"go-event-api/core/cache"
	"go-event-api/core/clock"
	"go-event-api/core/constants"
	"go-event-api/core/errors"
	"go-event-api/core/metric"
	"go-event-api/core/pagination"
	"go-event-api/modules/attendee/dto"
	"go-event-api/modules/attendee/entity"
	"go-event-api/modules/attendee/repository"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AttendeeService handles attendee registration and lookups. The capacity
// check, duplicate check and insert run inside one transaction holding a
// row lock on the event, so concurrent registrations for the same event
// are serialized.
type AttendeeService struct {
	repo  repository.AttendeeRepositoryInterface
	cache *cache.Cache
	clock clock.Clock
}

// AttendeeServiceInterface defines the service contract
type AttendeeServiceInterface interface {
	Register(ctx context.Context, eventID uuid.UUID, req *dto.RegisterAttendeeRequest) (*dto.AttendeeResponse, *errors.AppError)
	ListAttendees(ctx context.Context, eventID uuid.UUID, params pagination.Params) (*pagination.Page[dto.AttendeeResponse], *errors.AppError)
	GetAttendeeByID(ctx context.Context, id uuid.UUID) (*dto.AttendeeResponse, *errors.AppError)
}

// NewAttendeeService creates a new attendee service
func NewAttendeeService(repo repository.AttendeeRepositoryInterface, c *cache.Cache, clk clock.Clock) AttendeeServiceInterface {
	return &AttendeeService{
		repo:  repo,
		cache: c,
		clock: clk,
	}
}

// Register adds an attendee to an event, enforcing the capacity ceiling
// and per-event email uniqueness atomically. Registration closes at event
// start.
func (s *AttendeeService) Register(ctx context.Context, eventID uuid.UUID, req *dto.RegisterAttendeeRequest) (*dto.AttendeeResponse, *errors.AppError) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "attendee name is required", nil)
	}
	if len(name) > constants.AttendeeNameMaxLength {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("attendee name must be at most %d characters", constants.AttendeeNameMaxLength), nil)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "attendee email is required", nil)
	}
	if len(email) > constants.AttendeeEmailMaxLength || !emailPattern.MatchString(email) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "attendee email is not a valid address", nil)
	}

	var phone *string
	if p := strings.TrimSpace(req.Phone); p != "" {
		phone = &p
	}

	var created *entity.Attendee
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		if event == nil {
			return errors.NewAppError(errors.ErrNotFound,
				fmt.Sprintf("Event with ID %s not found", eventID), nil)
		}

		now := s.clock.Now()
		if !event.StartTime.After(now) {
			return errors.NewAppErrorWithDetails(errors.ErrEventInPast,
				"registration is closed: the event has already started", nil,
				map[string]any{
					"event_id":         eventID.String(),
					"event_start_time": event.StartTime.UTC(),
				})
		}

		count, err := s.repo.CountByEventID(txCtx, eventID)
		if err != nil {
			return err
		}
		if count >= event.MaxCapacity {
			return errors.NewAppErrorWithDetails(errors.ErrCapacityExceeded,
				fmt.Sprintf("event is at full capacity (%d attendees)", event.MaxCapacity), nil,
				map[string]any{
					"event_id":          eventID.String(),
					"current_attendees": count,
					"max_capacity":      event.MaxCapacity,
				})
		}

		exists, err := s.repo.ExistsByEventIDAndEmail(txCtx, eventID, email)
		if err != nil {
			return err
		}
		if exists {
			return duplicateError(eventID, email)
		}

		created, err = s.repo.Create(txCtx, &entity.Attendee{
			EventID: eventID,
			Name:    name,
			Email:   email,
			Phone:   phone,
		})
		if err != nil {
			// Unique-index backstop for registrations racing past the
			// existence check.
			if stderrors.Is(err, repository.ErrDuplicateEmail) {
				return duplicateError(eventID, email)
			}
			return err
		}

		return s.repo.TouchEvent(txCtx, eventID, now)
	})
	if err != nil {
		appErr := asAppError(err)
		metric.CountRegistration(registrationOutcome(appErr))
		return nil, appErr
	}

	metric.CountRegistration("ok")
	// The event row changed (updated_at); drop any cached copy.
	_ = s.cache.Delete(ctx, constants.RedisKeyEvent+eventID.String())

	return dto.ToAttendeeResponse(created), nil
}

// ListAttendees returns one page of an event's attendees.
func (s *AttendeeService) ListAttendees(ctx context.Context, eventID uuid.UUID, params pagination.Params) (*pagination.Page[dto.AttendeeResponse], *errors.AppError) {
	if appErr := params.Normalize(); appErr != nil {
		return nil, appErr
	}

	exists, err := s.repo.EventExists(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check event", err)
	}
	if !exists {
		return nil, errors.NewAppError(errors.ErrNotFound,
			fmt.Sprintf("Event with ID %s not found", eventID), nil)
	}

	attendees, total, err := s.repo.ListByEventID(ctx, eventID, params.Limit(), params.Offset())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list attendees", err)
	}

	items := make([]dto.AttendeeResponse, 0, len(attendees))
	for i := range attendees {
		items = append(items, *dto.ToAttendeeResponse(&attendees[i]))
	}

	return pagination.NewPage(items, total, params), nil
}

// GetAttendeeByID retrieves a single attendee.
func (s *AttendeeService) GetAttendeeByID(ctx context.Context, id uuid.UUID) (*dto.AttendeeResponse, *errors.AppError) {
	attendee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get attendee", err)
	}
	if attendee == nil {
		return nil, errors.NewAppError(errors.ErrNotFound,
			fmt.Sprintf("Attendee with ID %s not found", id), nil)
	}
	return dto.ToAttendeeResponse(attendee), nil
}

func duplicateError(eventID uuid.UUID, email string) *errors.AppError {
	return errors.NewAppErrorWithDetails(errors.ErrDuplicateRegistration,
		"this email is already registered for the event", nil,
		map[string]any{
			"event_id": eventID.String(),
			"email":    email,
		})
}

func asAppError(err error) *errors.AppError {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return errors.NewAppError(errors.ErrInternalServer, "Failed to register attendee", err)
}

func registrationOutcome(appErr *errors.AppError) string {
	switch appErr.Code {
	case errors.ErrCapacityExceeded:
		return "capacity_exceeded"
	case errors.ErrDuplicateRegistration:
		return "duplicate"
	case errors.ErrEventInPast:
		return "event_in_past"
	case errors.ErrNotFound:
		return "not_found"
	default:
		return "error"
	}
}
