package service

import (
	"context"

	"tempus/core/constants"
	"tempus/core/errors"
	"tempus/core/params"
	"tempus/modules/team/entity"
	"tempus/modules/team/repository"

	"github.com/google/uuid"
)

type TeamService struct {
	repo repository.TeamRepositoryInterface
}

// TeamServiceInterface defines the service contract
type TeamServiceInterface interface {
	CreateTeam(ctx context.Context, name, description string, organizationID *uuid.UUID) (*entity.Team, *errors.AppError)
	GetTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, *errors.AppError)
	GetTeams(ctx context.Context, p params.QueryParams) (*entity.PaginatedTeamEntity, *errors.AppError)
	AddMember(ctx context.Context, teamID, userID uuid.UUID) *errors.AppError
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) *errors.AppError
	AreTeammates(ctx context.Context, a, b uuid.UUID) (bool, error)
	InSameOrganization(ctx context.Context, a, b uuid.UUID) (bool, error)
}

func NewTeamService(repo repository.TeamRepositoryInterface) TeamServiceInterface {
	return &TeamService{repo: repo}
}

func (s *TeamService) CreateTeam(ctx context.Context, name, description string, organizationID *uuid.UUID) (*entity.Team, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Team name is required", nil)
	}

	team := &entity.Team{Name: name, OrganizationID: organizationID}
	if description != "" {
		team.Description = &description
	}

	created, err := s.repo.CreateTeam(ctx, team)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create team failed", err)
	}
	return created, nil
}

func (s *TeamService) GetTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, *errors.AppError) {
	team, err := s.repo.GetTeamByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get team failed", err)
	}
	if team == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "team not found", nil)
	}
	return team, nil
}

func (s *TeamService) GetTeams(ctx context.Context, p params.QueryParams) (*entity.PaginatedTeamEntity, *errors.AppError) {
	teams, err := s.repo.GetTeams(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get teams failed", err)
	}
	return teams, nil
}

func (s *TeamService) AddMember(ctx context.Context, teamID, userID uuid.UUID) *errors.AppError {
	if err := s.repo.AddMember(ctx, teamID, userID); err != nil {
		return errors.NewAppError(errors.ErrCreateFailed, "add member failed", err)
	}
	return nil
}

func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) *errors.AppError {
	if err := s.repo.RemoveMember(ctx, teamID, userID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "remove member failed", err)
	}
	return nil
}

func (s *TeamService) AreTeammates(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.repo.AreTeammates(ctx, a, b)
}

func (s *TeamService) InSameOrganization(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.repo.InSameOrganization(ctx, a, b)
}
