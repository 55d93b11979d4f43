package repository

import (
	"context"
	"database/sql"

	"tempus/core/database"
	"tempus/core/logger"
	"tempus/core/params"
	"tempus/modules/team/entity"

	"github.com/google/uuid"
)

// TeamRepository handles team and membership database operations
type TeamRepository struct {
	DB database.Database
}

func NewTeamRepository(db database.Database) *TeamRepository {
	return &TeamRepository{DB: db}
}

// TeamRepositoryInterface defines the repository contract
type TeamRepositoryInterface interface {
	CreateTeam(ctx context.Context, team *entity.Team) (*entity.Team, error)
	GetTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, error)
	GetTeams(ctx context.Context, p params.QueryParams) (*entity.PaginatedTeamEntity, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
	AreTeammates(ctx context.Context, a, b uuid.UUID) (bool, error)
	InSameOrganization(ctx context.Context, a, b uuid.UUID) (bool, error)
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team *entity.Team) (*entity.Team, error) {
	query := `
		INSERT INTO teams (name, description, organization_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, organization_id, created_at, updated_at
	`

	var created entity.Team
	err := r.DB.GetContext(ctx, &created, query, team.Name, team.Description, team.OrganizationID)
	if err != nil {
		logger.Error("TeamRepository:CreateTeam", err)
		return nil, err
	}

	return &created, nil
}

func (r *TeamRepository) GetTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, error) {
	query := `SELECT id, name, description, organization_id, created_at, updated_at FROM teams WHERE id = $1`

	var team entity.Team
	err := r.DB.GetContext(ctx, &team, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TeamRepository:GetTeamByID", err)
		return nil, err
	}

	return &team, nil
}

func (r *TeamRepository) GetTeams(ctx context.Context, p params.QueryParams) (*entity.PaginatedTeamEntity, error) {
	countQuery := `SELECT COUNT(*) FROM teams WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`
	var total int
	if err := r.DB.GetContext(ctx, &total, countQuery, p.Search); err != nil {
		logger.Error("TeamRepository:GetTeams:Count", err)
		return nil, err
	}

	query := `
		SELECT id, name, description, organization_id, created_at, updated_at
		FROM teams
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	var teams []entity.Team
	if err := r.DB.SelectContext(ctx, &teams, query, p.Search, p.PageSize, p.Offset()); err != nil {
		logger.Error("TeamRepository:GetTeams", err)
		return nil, err
	}

	return &entity.PaginatedTeamEntity{
		Items:      teams,
		TotalItems: total,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	query := `
		INSERT INTO team_members (team_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, user_id) DO NOTHING
	`
	err := r.DB.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		logger.Error("TeamRepository:AddMember", err)
		return err
	}
	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	query := `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`
	err := r.DB.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		logger.Error("TeamRepository:RemoveMember", err)
		return err
	}
	return nil
}

// AreTeammates reports whether two users share at least one team.
func (r *TeamRepository) AreTeammates(ctx context.Context, a, b uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM team_members ma
			JOIN team_members mb ON ma.team_id = mb.team_id
			WHERE ma.user_id = $1 AND mb.user_id = $2
		)
	`
	var exists bool
	if err := r.DB.GetContext(ctx, &exists, query, a, b); err != nil {
		logger.Error("TeamRepository:AreTeammates", err)
		return false, err
	}
	return exists, nil
}

// InSameOrganization reports whether two users belong to the same
// organization.
func (r *TeamRepository) InSameOrganization(ctx context.Context, a, b uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users ua
			JOIN users ub ON ua.organization_id = ub.organization_id
			WHERE ua.id = $1 AND ub.id = $2 AND ua.organization_id IS NOT NULL
		)
	`
	var exists bool
	if err := r.DB.GetContext(ctx, &exists, query, a, b); err != nil {
		logger.Error("TeamRepository:InSameOrganization", err)
		return false, err
	}
	return exists, nil
}
