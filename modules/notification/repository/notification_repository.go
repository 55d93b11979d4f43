package repository

import (
	"context"

	"tempus/core/database"
	"tempus/core/logger"
	"tempus/core/params"
	"tempus/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	DB database.Database
}

func NewNotificationRepository(db database.Database) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// NotificationRepositoryInterface defines the repository contract
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByUserID(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, type, data, is_read)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.GetContext(ctx, &notification.ID, query,
		notification.UserID, notification.Title, notification.Message,
		notification.Type, notification.Data, notification.IsRead)
	if err != nil {
		logger.Error("NotificationRepository:Create", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	baseQuery := `FROM notifications WHERE user_id = $1`

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, userID)
	if err != nil {
		logger.Error("NotificationRepository:GetByUserID:Count", err)
		return nil, err
	}

	query := `
		SELECT id, user_id, title, message, type, data, is_read, created_at, updated_at ` + baseQuery + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var notifications []entity.Notification
	err = r.DB.SelectContext(ctx, &notifications, query, userID, p.PageSize, p.Offset())
	if err != nil {
		logger.Error("NotificationRepository:GetByUserID", err)
		return nil, err
	}

	return &entity.PaginatedNotificationEntity{
		Items:      notifications,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE notifications SET is_read = true WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return err
	}

	query = r.DB.SQLx().Rebind(query)
	err = r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error("NotificationRepository:MarkAsRead", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE user_id = $1`
	err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	err := r.DB.GetContext(ctx, &count, query, userID)
	if err != nil {
		logger.Error("NotificationRepository:CountUnread", err)
		return 0, err
	}
	return count, nil
}
