package controller

import (
	"tempus/core/controller"
	"tempus/core/errors"
	"tempus/modules/availability/dto"
	"tempus/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// AvailabilityController handles availability HTTP requests
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// AnalyzeSlot handles POST /availability/slot
func (c *AvailabilityController) AnalyzeSlot(ctx echo.Context) error {
	var req dto.AnalyzeSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if !req.EndTime.After(req.StartTime) {
		return c.BadRequest(errors.ErrInvalidInput, "End time must be after start time")
	}

	slot, appErr := c.AvailabilityService.AnalyzeSlot(ctx.Request().Context(), req.AttendeeEmails, req.StartTime, req.EndTime)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, slot, "Success")
}

// AnalyzeGrid handles POST /availability/grid
func (c *AvailabilityController) AnalyzeGrid(ctx echo.Context) error {
	var req dto.AnalyzeGridRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if !req.EndTime.After(req.StartTime) {
		return c.BadRequest(errors.ErrInvalidInput, "End time must be after start time")
	}

	grid, appErr := c.AvailabilityService.AnalyzeGrid(ctx.Request().Context(),
		req.AttendeeEmails, req.StartTime, req.EndTime, req.SlotDurationMinutes)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, grid, "Success")
}
