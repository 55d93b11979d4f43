package controller

import (
	"time"

	"tempus/core/constants"
	"tempus/core/controller"
	"tempus/core/errors"
	"tempus/core/utils"
	"tempus/modules/event/dto"
	"tempus/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EventController handles event HTTP requests
type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

func (c *EventController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

func parseTimeRange(ctx echo.Context) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, ctx.QueryParam("start"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(time.RFC3339, ctx.QueryParam("end"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// CreateEvent handles POST /events
func (c *EventController) CreateEvent(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	event, appErr := c.EventService.CreateEvent(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, event, "Event created")
}

// GetEvent handles GET /events/:id
func (c *EventController) GetEvent(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	event, appErr := c.EventService.GetEvent(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, event, "Success")
}

// UpdateEvent handles PUT /events/:id
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req dto.UpdateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	event, appErr := c.EventService.UpdateEvent(ctx.Request().Context(), userID, id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, event, "Event updated")
}

// DeleteEvent handles DELETE /events/:id
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	if appErr := c.EventService.DeleteEvent(ctx.Request().Context(), userID, id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Event deleted")
}

// GetOccurrences handles GET /events/:id/occurrences
func (c *EventController) GetOccurrences(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	start, end, err := parseTimeRange(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid time range, expected RFC3339 start and end")
	}

	occurrences, appErr := c.EventService.GetOccurrences(ctx.Request().Context(), id, start, end, 0)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, occurrences, "Success")
}

// PreviewOccurrences handles POST /events/preview
func (c *EventController) PreviewOccurrences(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	start, end, err := parseTimeRange(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid time range, expected RFC3339 start and end")
	}

	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	occurrences, appErr := c.EventService.PreviewOccurrences(ctx.Request().Context(), userID, &req, start, end)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, occurrences, "Success")
}

// DescribeRecurrence handles GET /events/:id/recurrence
func (c *EventController) DescribeRecurrence(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	desc, appErr := c.EventService.DescribeRecurrence(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, desc, "Success")
}

type attendeeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AddAttendee handles POST /events/:id/attendees
func (c *EventController) AddAttendee(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req attendeeRequest
	if err := ctx.Bind(&req); err != nil || req.Email == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if appErr := c.EventService.AddAttendee(ctx.Request().Context(), userID, id, req.Email); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Attendee added")
}

// RemoveAttendee handles DELETE /events/:id/attendees/:email
func (c *EventController) RemoveAttendee(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	email := ctx.Param("email")
	if email == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing attendee email")
	}

	if appErr := c.EventService.RemoveAttendee(ctx.Request().Context(), userID, id, email); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Attendee removed")
}

// ListAttendees handles GET /events/:id/attendees
func (c *EventController) ListAttendees(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	emails, appErr := c.EventService.ListAttendees(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, emails, "Success")
}
