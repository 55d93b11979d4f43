package entity

import (
	"time"

	coreEntity "tempus/core/entity"

	"github.com/google/uuid"
)

// Team groups users inside an organization; team membership feeds the
// calendar sharing policy.
type Team struct {
	Name           string     `db:"name" json:"name"`
	Description    *string    `db:"description" json:"description,omitempty"`
	OrganizationID *uuid.UUID `db:"organization_id" json:"organization_id,omitempty"`
	coreEntity.BaseEntity
}

// TeamMember links a user to a team.
type TeamMember struct {
	TeamID    uuid.UUID `db:"team_id" json:"team_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PaginatedTeamEntity = coreEntity.Pagination[Team]
