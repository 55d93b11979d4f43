package dto

import (
	"time"

	"github.com/google/uuid"
)

// ConflictingEvent records why an attendee is busy during a slot
type ConflictingEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	AttendeeEmail string    `json:"attendee_email"`
	Subject       *string   `json:"subject,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

// AvailabilitySlot is the per-slot availability breakdown for a set of
// attendees. Derived on every call, never persisted.
type AvailabilitySlot struct {
	StartTime              time.Time          `json:"start_time"`
	EndTime                time.Time          `json:"end_time"`
	TotalAttendees         int                `json:"total_attendees"`
	AvailableAttendees     int                `json:"available_attendees"`
	BusyAttendees          int                `json:"busy_attendees"`
	UnknownAttendees       int                `json:"unknown_attendees"`
	AvailableEmails        []string           `json:"available_emails"`
	BusyEmails             []string           `json:"busy_emails"`
	UnknownEmails          []string           `json:"unknown_emails"`
	ConflictingEvents      []ConflictingEvent `json:"conflicting_events"`
	AvailabilityPercentage float64            `json:"availability_percentage"`
	QualityScore           float64            `json:"quality_score"`
	AllAvailable           bool               `json:"all_available"`
}

// AnalyzeSlotRequest asks for one slot's availability
type AnalyzeSlotRequest struct {
	AttendeeEmails []string  `json:"attendee_emails"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required"`
}

// AnalyzeGridRequest asks for a range partitioned into fixed-width slots
type AnalyzeGridRequest struct {
	AttendeeEmails      []string  `json:"attendee_emails"`
	StartTime           time.Time `json:"start_time" validate:"required"`
	EndTime             time.Time `json:"end_time" validate:"required"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
}
