package dto

import (
	"time"

	"github.com/google/uuid"
)

// BusyInterval is one busy block in a user's calendar. Subject and location
// are populated only when the requester may see event details; a private
// event always collapses to a bare busy block.
type BusyInterval struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	IsBusy    bool      `json:"is_busy"`
	EventID   uuid.UUID `json:"event_id"`
	Subject   *string   `json:"subject,omitempty"`
	Location  *string   `json:"location,omitempty"`
	IsPrivate bool      `json:"is_private"`
}

// UserFreeBusy is one user's busy intervals for a query window.
type UserFreeBusy struct {
	UserID    uuid.UUID      `json:"user_id"`
	Intervals []BusyInterval `json:"intervals"`
}

// BatchFreeBusyRequest asks for several users' busy intervals at once.
type BatchFreeBusyRequest struct {
	UserIDs        []uuid.UUID `json:"user_ids" validate:"required"`
	StartTime      time.Time   `json:"start_time" validate:"required"`
	EndTime        time.Time   `json:"end_time" validate:"required"`
	IncludeDetails bool        `json:"include_details"`
}
