package service

import (
	"context"
	"encoding/json"
	"fmt"

	"tempus/core/errors"
	"tempus/core/jobs"
	"tempus/core/logger"
	"tempus/core/params"
	"tempus/modules/notification/entity"
	"tempus/modules/notification/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// NotificationService stores and serves per-user notices. Event-change
// notices arrive through the background worker, not the HTTP layer.
type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

// NotificationServiceInterface defines the service contract
type NotificationServiceInterface interface {
	GetMyNotifications(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedNotificationEntity, *errors.AppError)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError
	CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError)
	HandleEventChangedNotify(ctx context.Context, task *asynq.Task) error
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) NotificationServiceInterface {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedNotificationEntity, *errors.AppError) {
	page, err := s.repo.GetByUserID(ctx, userID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get notifications", err)
	}
	return page, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError {
	if err := s.repo.MarkAsRead(ctx, userID, ids); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "Failed to mark as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "Failed to mark all as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrGetFailed, "Failed to count unread", err)
	}
	return count, nil
}

func changeToType(change string) entity.NotificationType {
	switch change {
	case "created":
		return entity.TypeEventCreated
	case "cancelled":
		return entity.TypeEventCancelled
	default:
		return entity.TypeEventUpdated
	}
}

func changeMessage(title, change string) string {
	switch change {
	case "created":
		return fmt.Sprintf("You were added to %q", title)
	case "cancelled":
		return fmt.Sprintf("%q was cancelled", title)
	default:
		return fmt.Sprintf("%q was updated", title)
	}
}

// HandleEventChangedNotify is the asynq handler for event-change tasks. It
// fans one task out into a notification row per attendee. A failed row does
// not fail the task; attendees should not be re-notified on retry.
func (s *NotificationService) HandleEventChangedNotify(ctx context.Context, task *asynq.Task) error {
	var payload jobs.EventChangedNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", jobs.TypeEventChangedNotify, err)
	}

	for _, attendeeID := range payload.AttendeeIDs {
		notif := &entity.Notification{
			UserID:  attendeeID,
			Title:   payload.Title,
			Message: changeMessage(payload.Title, payload.Change),
			Type:    changeToType(payload.Change),
			Data: entity.JSONB{
				"event_id": payload.EventID.String(),
				"change":   payload.Change,
			},
		}
		if err := s.repo.Create(ctx, notif); err != nil {
			logger.Error("NotificationService:HandleEventChangedNotify",
				"event_id", payload.EventID, "user_id", attendeeID, "error", err)
		}
	}
	return nil
}
