package service

import (
	"context"

	"tempus/core/errors"
	"tempus/core/logger"
	"tempus/modules/sharing/entity"
	"tempus/modules/sharing/repository"
	userEntity "tempus/modules/user/entity"

	"github.com/google/uuid"
)

// UserLookup resolves the target user's default sharing level.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*userEntity.User, error)
}

// Membership answers team/organization relationship questions.
type Membership interface {
	AreTeammates(ctx context.Context, a, b uuid.UUID) (bool, error)
	InSameOrganization(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// PolicyService decides calendar visibility. Resolution order: owner access
// for self, then an explicit share grant, then the target's default sharing
// level combined with the requester's relationship to the target.
type PolicyService struct {
	shares  repository.ShareRepositoryInterface
	users   UserLookup
	members Membership
}

// PolicyServiceInterface defines the service contract
type PolicyServiceInterface interface {
	CanView(ctx context.Context, targetUserID, requesterID uuid.UUID) (bool, error)
	GetPermissionLevel(ctx context.Context, targetUserID, requesterID uuid.UUID) (entity.PermissionLevel, error)
	GrantShare(ctx context.Context, ownerID, granteeID uuid.UUID, level entity.PermissionLevel) *errors.AppError
	RevokeShare(ctx context.Context, ownerID, granteeID uuid.UUID) *errors.AppError
	ListShares(ctx context.Context, ownerID uuid.UUID) ([]entity.CalendarShare, *errors.AppError)
}

func NewPolicyService(shares repository.ShareRepositoryInterface, users UserLookup, members Membership) PolicyServiceInterface {
	return &PolicyService{shares: shares, users: users, members: members}
}

func (s *PolicyService) CanView(ctx context.Context, targetUserID, requesterID uuid.UUID) (bool, error) {
	level, err := s.GetPermissionLevel(ctx, targetUserID, requesterID)
	if err != nil {
		return false, err
	}
	return level.CanViewCalendar(), nil
}

func (s *PolicyService) GetPermissionLevel(ctx context.Context, targetUserID, requesterID uuid.UUID) (entity.PermissionLevel, error) {
	if targetUserID == requesterID {
		return entity.PermissionOwner, nil
	}

	share, err := s.shares.GetShare(ctx, targetUserID, requesterID)
	if err != nil {
		return entity.PermissionNone, err
	}
	if share != nil {
		return share.Level, nil
	}

	target, err := s.users.GetUserByID(ctx, targetUserID)
	if err != nil {
		return entity.PermissionNone, err
	}
	if target == nil {
		logger.Warn("PolicyService:GetPermissionLevel:TargetNotFound", "target_user_id", targetUserID)
		return entity.PermissionNone, nil
	}

	switch target.CalendarSharing {
	case userEntity.SharingPublic:
		return entity.PermissionFreeBusyOnly, nil
	case userEntity.SharingOrganization:
		sameOrg, err := s.members.InSameOrganization(ctx, targetUserID, requesterID)
		if err != nil {
			return entity.PermissionNone, err
		}
		if sameOrg {
			return entity.PermissionFreeBusyOnly, nil
		}
	case userEntity.SharingTeamMembers:
		teammates, err := s.members.AreTeammates(ctx, targetUserID, requesterID)
		if err != nil {
			return entity.PermissionNone, err
		}
		if teammates {
			return entity.PermissionFreeBusyOnly, nil
		}
	}

	return entity.PermissionNone, nil
}

func (s *PolicyService) GrantShare(ctx context.Context, ownerID, granteeID uuid.UUID, level entity.PermissionLevel) *errors.AppError {
	if ownerID == granteeID {
		return errors.NewAppError(errors.ErrInvalidInput, "Cannot share a calendar with its owner", nil)
	}
	if level <= entity.PermissionNone || level > entity.PermissionFullDetails {
		return errors.NewAppError(errors.ErrInvalidInput, "Invalid permission level", nil)
	}

	share := &entity.CalendarShare{OwnerID: ownerID, GranteeID: granteeID, Level: level}
	if err := s.shares.UpsertShare(ctx, share); err != nil {
		return errors.NewAppError(errors.ErrCreateFailed, "Failed to save share", err)
	}
	return nil
}

func (s *PolicyService) RevokeShare(ctx context.Context, ownerID, granteeID uuid.UUID) *errors.AppError {
	if err := s.shares.DeleteShare(ctx, ownerID, granteeID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to revoke share", err)
	}
	return nil
}

func (s *PolicyService) ListShares(ctx context.Context, ownerID uuid.UUID) ([]entity.CalendarShare, *errors.AppError) {
	shares, err := s.shares.GetSharesByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list shares", err)
	}
	return shares, nil
}
