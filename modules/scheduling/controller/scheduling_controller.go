package controller

import (
	"strconv"

	"tempus/core/controller"
	"tempus/core/errors"
	"tempus/modules/scheduling/dto"
	"tempus/modules/scheduling/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SchedulingController handles scheduling HTTP requests
type SchedulingController struct {
	controller.BaseController
	SchedulingService service.SchedulingServiceInterface
}

func NewSchedulingController(svc service.SchedulingServiceInterface) *SchedulingController {
	return &SchedulingController{
		BaseController:    controller.NewBaseController(),
		SchedulingService: svc,
	}
}

// FindOptimalTimes handles POST /scheduling/optimal
func (c *SchedulingController) FindOptimalTimes(ctx echo.Context) error {
	var req dto.FindOptimalTimesRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if !req.SearchEnd.After(req.SearchStart) {
		return c.BadRequest(errors.ErrInvalidInput, "Search end must be after search start")
	}

	suggestions, appErr := c.SchedulingService.FindOptimalTimes(ctx.Request().Context(),
		req.AttendeeEmails, req.DurationMinutes, req.SearchStart, req.SearchEnd, req.MaxSuggestions)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, suggestions, "Success")
}

// FindNextAvailableSlot handles POST /scheduling/next-available
func (c *SchedulingController) FindNextAvailableSlot(ctx echo.Context) error {
	var req dto.NextAvailableSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	suggestion, appErr := c.SchedulingService.FindNextAvailableSlot(ctx.Request().Context(),
		req.AttendeeEmails, req.DurationMinutes, req.StartSearchFrom)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	if suggestion == nil {
		return c.SuccessResponse(ctx, nil, "No available slot within the search horizon")
	}
	return c.SuccessResponse(ctx, suggestion, "Success")
}

// DetectConflicts handles POST /scheduling/conflicts
func (c *SchedulingController) DetectConflicts(ctx echo.Context) error {
	var req dto.DetectConflictsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if !req.EndTime.After(req.StartTime) {
		return c.BadRequest(errors.ErrInvalidInput, "End time must be after start time")
	}

	conflicts, appErr := c.SchedulingService.DetectConflicts(ctx.Request().Context(),
		req.AttendeeEmails, req.StartTime, req.EndTime, req.ExcludeEventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, conflicts, "Success")
}

// SuggestAlternativeTimes handles GET /scheduling/alternatives/:eventId
func (c *SchedulingController) SuggestAlternativeTimes(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("eventId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	maxSuggestions := 0
	if raw := ctx.QueryParam("max"); raw != "" {
		maxSuggestions, err = strconv.Atoi(raw)
		if err != nil || maxSuggestions < 1 {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid max parameter")
		}
	}

	suggestions, appErr := c.SchedulingService.SuggestAlternativeTimes(ctx.Request().Context(), eventID, maxSuggestions)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, suggestions, "Success")
}

// IsTimeAvailableForAll handles POST /scheduling/check
func (c *SchedulingController) IsTimeAvailableForAll(ctx echo.Context) error {
	var req dto.TimeAvailableRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if !req.EndTime.After(req.StartTime) {
		return c.BadRequest(errors.ErrInvalidInput, "End time must be after start time")
	}

	available, appErr := c.SchedulingService.IsTimeAvailableForAll(ctx.Request().Context(),
		req.AttendeeEmails, req.StartTime, req.EndTime)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.TimeAvailableResponse{Available: available}, "Success")
}
