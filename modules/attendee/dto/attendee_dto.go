package dto

import (
	"time"

	"go-event-api/modules/attendee/entity"
)

// ===================== Request DTOs =====================

// RegisterAttendeeRequest registers one attendee for an event.
type RegisterAttendeeRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone"`
}

// ===================== Response DTOs =====================

// AttendeeResponse for attendee details
type AttendeeResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ===================== Mapper Functions =====================

// ToAttendeeResponse maps entity to DTO
func ToAttendeeResponse(a *entity.Attendee) *AttendeeResponse {
	resp := &AttendeeResponse{
		ID:        a.ID.String(),
		EventID:   a.EventID.String(),
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Phone != nil {
		resp.Phone = *a.Phone
	}
	return resp
}
