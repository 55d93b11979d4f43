package controller

import (
	"tempus/core/constants"
	"tempus/core/controller"
	"tempus/core/errors"
	"tempus/core/params"
	"tempus/core/utils"
	"tempus/modules/notification/dto"
	"tempus/modules/notification/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// NotificationController handles notification HTTP requests
type NotificationController struct {
	controller.BaseController
	NotificationService service.NotificationServiceInterface
}

func NewNotificationController(svc service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		BaseController:      controller.NewBaseController(),
		NotificationService: svc,
	}
}

func (c *NotificationController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// GetMyNotifications handles GET /notifications
func (c *NotificationController) GetMyNotifications(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	queryParams := params.FromContext(ctx)
	result, appErr := c.NotificationService.GetMyNotifications(ctx.Request().Context(), userID, queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// MarkAsRead handles PUT /notifications/mark-read
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.MarkAsReadRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	if appErr := c.NotificationService.MarkAsRead(ctx.Request().Context(), userID, req.IDs); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Marked as read")
}

// MarkAllAsRead handles PUT /notifications/mark-all-read
func (c *NotificationController) MarkAllAsRead(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if appErr := c.NotificationService.MarkAllAsRead(ctx.Request().Context(), userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Marked all as read")
}

// CountUnread handles GET /notifications/unread-count
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	count, appErr := c.NotificationService.CountUnread(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.UnreadCountResponse{Count: count}, "Success")
}
