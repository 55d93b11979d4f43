package repository

import (
	"context"
	"database/sql"

	"tempus/core/database"
	"tempus/core/logger"
	"tempus/modules/user/entity"

	"github.com/google/uuid"
)

// UserRepository handles directory database operations
type UserRepository struct {
	DB database.Database
}

func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{DB: db}
}

// UserRepositoryInterface defines the repository contract
type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateCalendarSharing(ctx context.Context, id uuid.UUID, level entity.SharingLevel) error
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (email, display_name, password_hash, timezone, team_id, organization_id, calendar_sharing)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, email, display_name, password_hash, timezone, team_id, organization_id, calendar_sharing, created_at, updated_at
	`

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.Email, user.DisplayName, user.PasswordHash, user.Timezone,
		user.TeamID, user.OrganizationID, user.CalendarSharing)
	if err != nil {
		logger.Error("UserRepository:CreateUser", err)
		return nil, err
	}

	return &created, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, email, display_name, password_hash, timezone, team_id, organization_id, calendar_sharing, created_at, updated_at
		FROM users WHERE id = $1
	`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetUserByID", err)
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, display_name, password_hash, timezone, team_id, organization_id, calendar_sharing, created_at, updated_at
		FROM users WHERE LOWER(email) = LOWER($1)
	`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetUserByEmail", err)
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) UpdateCalendarSharing(ctx context.Context, id uuid.UUID, level entity.SharingLevel) error {
	query := `UPDATE users SET calendar_sharing = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, level)
	if err != nil {
		logger.Error("UserRepository:UpdateCalendarSharing", err)
		return err
	}
	return nil
}
