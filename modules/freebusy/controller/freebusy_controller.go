package controller

import (
	"time"

	"tempus/core/constants"
	"tempus/core/controller"
	"tempus/core/errors"
	"tempus/core/utils"
	"tempus/modules/freebusy/dto"
	"tempus/modules/freebusy/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// FreeBusyController handles free/busy HTTP requests
type FreeBusyController struct {
	controller.BaseController
	FreeBusyService service.FreeBusyServiceInterface
}

func NewFreeBusyController(svc service.FreeBusyServiceInterface) *FreeBusyController {
	return &FreeBusyController{
		BaseController:  controller.NewBaseController(),
		FreeBusyService: svc,
	}
}

func (c *FreeBusyController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// GetBusyIntervals handles GET /freebusy/:userId
func (c *FreeBusyController) GetBusyIntervals(ctx echo.Context) error {
	requesterID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	start, err := time.Parse(time.RFC3339, ctx.QueryParam("start"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid start time, expected RFC3339")
	}
	end, err := time.Parse(time.RFC3339, ctx.QueryParam("end"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid end time, expected RFC3339")
	}
	includeDetails := ctx.QueryParam("details") == "true"

	intervals, appErr := c.FreeBusyService.GetBusyIntervals(ctx.Request().Context(), userID, requesterID, start, end, includeDetails)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.UserFreeBusy{UserID: userID, Intervals: intervals}, "Success")
}

// GetBusyIntervalsForUsers handles POST /freebusy/batch
func (c *FreeBusyController) GetBusyIntervalsForUsers(ctx echo.Context) error {
	requesterID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.BatchFreeBusyRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if len(req.UserIDs) == 0 {
		return c.BadRequest(errors.ErrInvalidInput, "At least one user ID is required")
	}
	if !req.EndTime.After(req.StartTime) {
		return c.BadRequest(errors.ErrInvalidInput, "End time must be after start time")
	}

	results, appErr := c.FreeBusyService.GetBusyIntervalsForUsers(ctx.Request().Context(),
		req.UserIDs, requesterID, req.StartTime, req.EndTime, req.IncludeDetails)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, results, "Success")
}
