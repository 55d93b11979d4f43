package controller

import (
	"tempus/core/constants"
	"tempus/core/controller"
	"tempus/core/errors"
	"tempus/core/utils"
	"tempus/modules/report/dto"
	"tempus/modules/report/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ReportController handles report HTTP requests
type ReportController struct {
	controller.BaseController
	ReportService service.ReportServiceInterface
}

func NewReportController(svc service.ReportServiceInterface) *ReportController {
	return &ReportController{
		BaseController: controller.NewBaseController(),
		ReportService:  svc,
	}
}

func (c *ReportController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// GenerateAvailabilityReport handles POST /reports/availability
func (c *ReportController) GenerateAvailabilityReport(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.GenerateAvailabilityReportRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if len(req.AttendeeEmails) == 0 {
		return c.BadRequest(errors.ErrInvalidInput, "At least one attendee email is required")
	}

	report, appErr := c.ReportService.GenerateAvailabilityReport(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, report, "Report generated")
}
