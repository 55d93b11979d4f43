package entity

import (
	coreEntity "tempus/core/entity"

	"github.com/google/uuid"
)

// PermissionLevel orders what a requester may see of a target's calendar.
type PermissionLevel int

const (
	PermissionNone PermissionLevel = iota
	PermissionFreeBusyOnly
	PermissionFullDetails
	PermissionOwner
)

func (p PermissionLevel) String() string {
	switch p {
	case PermissionFreeBusyOnly:
		return "free_busy_only"
	case PermissionFullDetails:
		return "full_details"
	case PermissionOwner:
		return "owner"
	default:
		return "none"
	}
}

// CanViewCalendar reports whether this level grants any calendar visibility.
func (p PermissionLevel) CanViewCalendar() bool {
	return p > PermissionNone
}

// CanViewDetails reports whether this level grants subject/location access.
func (p PermissionLevel) CanViewDetails() bool {
	return p >= PermissionFullDetails
}

// CalendarShare is an explicit grant from an owner to a grantee. It overrides
// the owner's default sharing level in both directions (it can widen or
// narrow access).
type CalendarShare struct {
	OwnerID   uuid.UUID       `db:"owner_id" json:"owner_id"`
	GranteeID uuid.UUID       `db:"grantee_id" json:"grantee_id"`
	Level     PermissionLevel `db:"level" json:"level"`
	coreEntity.BaseEntity
}
