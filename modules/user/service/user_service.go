package service

import (
	"context"

	"tempus/core/errors"
	"tempus/core/logger"
	"tempus/modules/user/dto"
	"tempus/modules/user/entity"
	"tempus/modules/user/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService is the directory: it provisions users and resolves attendee
// emails for the availability pipeline.
type UserService struct {
	repo repository.UserRepositoryInterface
}

// UserServiceInterface defines the service contract
type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, *errors.AppError)
	GetUserByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError)
	UpdateCalendarSharing(ctx context.Context, id uuid.UUID, level string) *errors.AppError
	ResolveUserByEmail(ctx context.Context, email string) (*entity.User, error)
}

func NewUserService(repo repository.UserRepositoryInterface) UserServiceInterface {
	return &UserService{repo: repo}
}

func validSharingLevel(level string) (entity.SharingLevel, bool) {
	switch entity.SharingLevel(level) {
	case entity.SharingNone, entity.SharingTeamMembers, entity.SharingOrganization, entity.SharingPublic:
		return entity.SharingLevel(level), true
	}
	return "", false
}

// CreateUser provisions a new directory user with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, *errors.AppError) {
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check existing user", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "A user with this email already exists", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to hash password", err)
	}

	sharing := entity.SharingTeamMembers
	if req.CalendarSharing != "" {
		level, ok := validSharingLevel(req.CalendarSharing)
		if !ok {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid calendar sharing level", nil)
		}
		sharing = level
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	user := &entity.User{
		Email:           req.Email,
		DisplayName:     req.DisplayName,
		PasswordHash:    string(hash),
		Timezone:        timezone,
		CalendarSharing: sharing,
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create user", err)
	}

	return dto.ToUserResponse(created), nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}
	return dto.ToUserResponse(user), nil
}

func (s *UserService) UpdateCalendarSharing(ctx context.Context, id uuid.UUID, level string) *errors.AppError {
	parsed, ok := validSharingLevel(level)
	if !ok {
		return errors.NewAppError(errors.ErrInvalidInput, "Invalid calendar sharing level", nil)
	}
	if err := s.repo.UpdateCalendarSharing(ctx, id, parsed); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "Failed to update sharing level", err)
	}
	return nil
}

// ResolveUserByEmail looks up a directory user by email. An unknown email is
// not an error: it returns (nil, nil) and the caller classifies the attendee
// as unknown.
func (s *UserService) ResolveUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Error("UserService:ResolveUserByEmail", "email", email, "error", err)
		return nil, err
	}
	return user, nil
}
