package entity

import (
	coreEntity "tempus/core/entity"

	"github.com/google/uuid"
)

// SharingLevel controls who may see a user's calendar by default, before any
// explicit share grant is considered.
type SharingLevel string

const (
	SharingNone         SharingLevel = "none"
	SharingTeamMembers  SharingLevel = "team_members"
	SharingOrganization SharingLevel = "organization"
	SharingPublic       SharingLevel = "public"
)

// User is a directory entry. Tempus has no login surface of its own; users
// are provisioned by the surrounding platform and resolved here by email.
type User struct {
	Email           string       `db:"email" json:"email"`
	DisplayName     string       `db:"display_name" json:"display_name"`
	PasswordHash    string       `db:"password_hash" json:"-"`
	Timezone        string       `db:"timezone" json:"timezone"`
	TeamID          *uuid.UUID   `db:"team_id" json:"team_id,omitempty"`
	OrganizationID  *uuid.UUID   `db:"organization_id" json:"organization_id,omitempty"`
	CalendarSharing SharingLevel `db:"calendar_sharing" json:"calendar_sharing"`
	coreEntity.BaseEntity
}
