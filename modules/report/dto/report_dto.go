package dto

import (
	"time"

	availabilityDto "tempus/modules/availability/dto"
)

// GenerateAvailabilityReportRequest asks for a stored availability report
type GenerateAvailabilityReportRequest struct {
	AttendeeEmails      []string  `json:"attendee_emails" validate:"required"`
	StartTime           time.Time `json:"start_time" validate:"required"`
	EndTime             time.Time `json:"end_time" validate:"required"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
}

// AvailabilityReport is the document uploaded to object storage
type AvailabilityReport struct {
	GeneratedAt    time.Time                          `json:"generated_at"`
	RequestedBy    string                             `json:"requested_by"`
	AttendeeEmails []string                           `json:"attendee_emails"`
	StartTime      time.Time                          `json:"start_time"`
	EndTime        time.Time                          `json:"end_time"`
	Slots          []availabilityDto.AvailabilitySlot `json:"slots"`
}

// ReportResponse points at the stored report and summarizes it
type ReportResponse struct {
	Location      string                            `json:"location"`
	GeneratedAt   time.Time                         `json:"generated_at"`
	SlotCount     int                               `json:"slot_count"`
	FullyFreeSlot *availabilityDto.AvailabilitySlot `json:"fully_free_slot,omitempty"`
}
