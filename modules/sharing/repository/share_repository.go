package repository

import (
	"context"
	"database/sql"

	"tempus/core/database"
	"tempus/core/logger"
	"tempus/modules/sharing/entity"

	"github.com/google/uuid"
)

// ShareRepository handles calendar share database operations
type ShareRepository struct {
	DB database.Database
}

func NewShareRepository(db database.Database) *ShareRepository {
	return &ShareRepository{DB: db}
}

// ShareRepositoryInterface defines the repository contract
type ShareRepositoryInterface interface {
	GetShare(ctx context.Context, ownerID, granteeID uuid.UUID) (*entity.CalendarShare, error)
	UpsertShare(ctx context.Context, share *entity.CalendarShare) error
	DeleteShare(ctx context.Context, ownerID, granteeID uuid.UUID) error
	GetSharesByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.CalendarShare, error)
}

func (r *ShareRepository) GetShare(ctx context.Context, ownerID, granteeID uuid.UUID) (*entity.CalendarShare, error) {
	query := `
		SELECT id, owner_id, grantee_id, level, created_at, updated_at
		FROM calendar_shares
		WHERE owner_id = $1 AND grantee_id = $2
	`

	var share entity.CalendarShare
	err := r.DB.GetContext(ctx, &share, query, ownerID, granteeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ShareRepository:GetShare", err)
		return nil, err
	}

	return &share, nil
}

func (r *ShareRepository) UpsertShare(ctx context.Context, share *entity.CalendarShare) error {
	query := `
		INSERT INTO calendar_shares (owner_id, grantee_id, level)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, grantee_id) DO UPDATE SET level = $3, updated_at = NOW()
	`
	err := r.DB.ExecContext(ctx, query, share.OwnerID, share.GranteeID, share.Level)
	if err != nil {
		logger.Error("ShareRepository:UpsertShare", err)
		return err
	}
	return nil
}

func (r *ShareRepository) DeleteShare(ctx context.Context, ownerID, granteeID uuid.UUID) error {
	query := `DELETE FROM calendar_shares WHERE owner_id = $1 AND grantee_id = $2`
	err := r.DB.ExecContext(ctx, query, ownerID, granteeID)
	if err != nil {
		logger.Error("ShareRepository:DeleteShare", err)
		return err
	}
	return nil
}

func (r *ShareRepository) GetSharesByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.CalendarShare, error) {
	query := `
		SELECT id, owner_id, grantee_id, level, created_at, updated_at
		FROM calendar_shares
		WHERE owner_id = $1
		ORDER BY created_at
	`

	var shares []entity.CalendarShare
	err := r.DB.SelectContext(ctx, &shares, query, ownerID)
	if err != nil {
		logger.Error("ShareRepository:GetSharesByOwner", err)
		return nil, err
	}
	return shares, nil
}
