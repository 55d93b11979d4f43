package dto

import (
	"time"

	"tempus/modules/user/entity"
)

// CreateUserRequest provisions a directory user.
type CreateUserRequest struct {
	Email           string `json:"email" validate:"required,email"`
	DisplayName     string `json:"display_name" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	Timezone        string `json:"timezone"`
	CalendarSharing string `json:"calendar_sharing"`
}

// UpdateSharingRequest changes the default calendar sharing level.
type UpdateSharingRequest struct {
	CalendarSharing string `json:"calendar_sharing" validate:"required"`
}

type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	DisplayName     string    `json:"display_name"`
	Timezone        string    `json:"timezone"`
	TeamID          string    `json:"team_id,omitempty"`
	OrganizationID  string    `json:"organization_id,omitempty"`
	CalendarSharing string    `json:"calendar_sharing"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToUserResponse maps entity to DTO.
func ToUserResponse(u *entity.User) *UserResponse {
	resp := &UserResponse{
		ID:              u.ID.String(),
		Email:           u.Email,
		DisplayName:     u.DisplayName,
		Timezone:        u.Timezone,
		CalendarSharing: string(u.CalendarSharing),
		CreatedAt:       u.CreatedAt,
	}
	if u.TeamID != nil {
		resp.TeamID = u.TeamID.String()
	}
	if u.OrganizationID != nil {
		resp.OrganizationID = u.OrganizationID.String()
	}
	return resp
}
