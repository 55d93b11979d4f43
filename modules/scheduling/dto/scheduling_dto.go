package dto

import (
	"time"

	availabilityDto "tempus/modules/availability/dto"

	"github.com/google/uuid"
)

// SchedulingSuggestion is one ranked candidate meeting time
type SchedulingSuggestion struct {
	StartTime            time.Time                          `json:"start_time"`
	EndTime              time.Time                          `json:"end_time"`
	Score                float64                            `json:"score"`
	Rank                 int                                `json:"rank"`
	AvailableCount       int                                `json:"available_count"`
	TotalCount           int                                `json:"total_count"`
	ConflictCount        int                                `json:"conflict_count"`
	AvailableAttendees   []string                           `json:"available_attendees"`
	ConflictingAttendees []string                           `json:"conflicting_attendees"`
	ConflictingEvents    []availabilityDto.ConflictingEvent `json:"conflicting_events"`
	AllAvailable         bool                               `json:"all_available"`
}

// FindOptimalTimesRequest asks for ranked meeting-time suggestions
type FindOptimalTimesRequest struct {
	AttendeeEmails  []string  `json:"attendee_emails"`
	DurationMinutes int       `json:"duration_minutes" validate:"required"`
	SearchStart     time.Time `json:"search_start" validate:"required"`
	SearchEnd       time.Time `json:"search_end" validate:"required"`
	MaxSuggestions  int       `json:"max_suggestions"`
}

// NextAvailableSlotRequest asks for the first fully free slot
type NextAvailableSlotRequest struct {
	AttendeeEmails  []string   `json:"attendee_emails"`
	DurationMinutes int        `json:"duration_minutes" validate:"required"`
	StartSearchFrom *time.Time `json:"start_search_from,omitempty"`
}

// DetectConflictsRequest asks for every busy event overlapping a window
type DetectConflictsRequest struct {
	AttendeeEmails []string   `json:"attendee_emails"`
	StartTime      time.Time  `json:"start_time" validate:"required"`
	EndTime        time.Time  `json:"end_time" validate:"required"`
	ExcludeEventID *uuid.UUID `json:"exclude_event_id,omitempty"`
}

// TimeAvailableRequest asks whether every attendee is free for a window
type TimeAvailableRequest struct {
	AttendeeEmails []string  `json:"attendee_emails"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required"`
}

// TimeAvailableResponse is the answer to TimeAvailableRequest
type TimeAvailableResponse struct {
	Available bool `json:"available"`
}
