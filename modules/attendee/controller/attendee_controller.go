package controller

import (
	"go-event-api/core/controller"
	"go-event-api/core/errors"
	"go-event-api/core/pagination"
	"go-event-api/modules/attendee/dto"
	"go-event-api/modules/attendee/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AttendeeController handles attendee HTTP requests
type AttendeeController struct {
	controller.BaseController
	AttendeeService service.AttendeeServiceInterface
}

// NewAttendeeController creates a new controller
func NewAttendeeController(svc service.AttendeeServiceInterface) *AttendeeController {
	return &AttendeeController{
		BaseController:  controller.NewBaseController(),
		AttendeeService: svc,
	}
}

// Register handles POST /events/:id/register
// @Summary Register attendee
// @Description Register an attendee for an event; fails once the event is full, already started, or the email is already registered
// @Tags Attendees
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.RegisterAttendeeRequest true "Attendee details"
// @Success 201 {object} dto.AttendeeResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /events/{id}/register [post]
func (c *AttendeeController) Register(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req dto.RegisterAttendeeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.AttendeeService.Register(ctx.Request().Context(), eventID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Attendee registered successfully")
}

// ListAttendees handles GET /events/:id/attendees
// @Summary List event attendees
// @Description Paginated list of an event's attendees
// @Tags Attendees
// @Produce json
// @Param id path string true "Event ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Items per page (max 100)"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id}/attendees [get]
func (c *AttendeeController) ListAttendees(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var params pagination.Params
	if err := ctx.Bind(&params); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid query parameters")
	}

	result, appErr := c.AttendeeService.ListAttendees(ctx.Request().Context(), eventID, params)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetAttendee handles GET /attendees/:id
// @Summary Get attendee
// @Tags Attendees
// @Produce json
// @Param id path string true "Attendee ID"
// @Success 200 {object} dto.AttendeeResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /attendees/{id} [get]
func (c *AttendeeController) GetAttendee(ctx echo.Context) error {
	attendeeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid attendee ID")
	}

	result, appErr := c.AttendeeService.GetAttendeeByID(ctx.Request().Context(), attendeeID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
