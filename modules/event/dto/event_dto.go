package dto

import (
	"time"

	"tempus/modules/event/entity"

	"github.com/google/uuid"
)

// CreateEventRequest is the payload for creating an event
type CreateEventRequest struct {
	Title              string     `json:"title" validate:"required"`
	Description        *string    `json:"description,omitempty"`
	Location           *string    `json:"location,omitempty"`
	Tags               *string    `json:"tags,omitempty"`
	Color              *string    `json:"color,omitempty"`
	StartTime          time.Time  `json:"start_time" validate:"required"`
	EndTime            time.Time  `json:"end_time" validate:"required"`
	IsPrivate          bool       `json:"is_private"`
	IsRecurring        bool       `json:"is_recurring"`
	RecurrencePattern  string     `json:"recurrence_pattern,omitempty"`
	RecurrenceInterval int        `json:"recurrence_interval,omitempty"`
	RecurrenceDays     []int      `json:"recurrence_days,omitempty"`
	RecurrenceCount    *int       `json:"recurrence_count,omitempty"`
	RecurrenceEndDate  *time.Time `json:"recurrence_end_date,omitempty"`
	ExternalCalendarID *string    `json:"external_calendar_id,omitempty"`
	AttendeeEmails     []string   `json:"attendee_emails,omitempty"`
}

// UpdateEventRequest is the payload for updating an event
type UpdateEventRequest struct {
	Title              string     `json:"title" validate:"required"`
	Description        *string    `json:"description,omitempty"`
	Location           *string    `json:"location,omitempty"`
	Tags               *string    `json:"tags,omitempty"`
	Color              *string    `json:"color,omitempty"`
	StartTime          time.Time  `json:"start_time" validate:"required"`
	EndTime            time.Time  `json:"end_time" validate:"required"`
	IsPrivate          bool       `json:"is_private"`
	IsCompleted        bool       `json:"is_completed"`
	IsRecurring        bool       `json:"is_recurring"`
	RecurrencePattern  string     `json:"recurrence_pattern,omitempty"`
	RecurrenceInterval int        `json:"recurrence_interval,omitempty"`
	RecurrenceDays     []int      `json:"recurrence_days,omitempty"`
	RecurrenceCount    *int       `json:"recurrence_count,omitempty"`
	RecurrenceEndDate  *time.Time `json:"recurrence_end_date,omitempty"`
}

// EventResponse is the public representation of an event or occurrence
type EventResponse struct {
	ID                 uuid.UUID  `json:"id"`
	OwnerID            uuid.UUID  `json:"owner_id"`
	Title              string     `json:"title"`
	Slug               string     `json:"slug"`
	Description        *string    `json:"description,omitempty"`
	Location           *string    `json:"location,omitempty"`
	Tags               *string    `json:"tags,omitempty"`
	Color              *string    `json:"color,omitempty"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	IsRecurring        bool       `json:"is_recurring"`
	RecurrencePattern  string     `json:"recurrence_pattern"`
	RecurrenceInterval int        `json:"recurrence_interval,omitempty"`
	RecurrenceDays     []int      `json:"recurrence_days,omitempty"`
	RecurrenceCount    *int       `json:"recurrence_count,omitempty"`
	RecurrenceEndDate  *time.Time `json:"recurrence_end_date,omitempty"`
	RecurrenceParentID *uuid.UUID `json:"recurrence_parent_id,omitempty"`
	IsCompleted        bool       `json:"is_completed"`
	IsPrivate          bool       `json:"is_private"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// RecurrenceDescriptionResponse carries the rendered recurrence rule
type RecurrenceDescriptionResponse struct {
	EventID     uuid.UUID `json:"event_id"`
	Description string    `json:"description"`
}

func ToEventResponse(e *entity.Event) *EventResponse {
	days := make([]int, len(e.RecurrenceDays))
	for i, d := range e.RecurrenceDays {
		days[i] = int(d)
	}
	if len(days) == 0 {
		days = nil
	}

	return &EventResponse{
		ID:                 e.ID,
		OwnerID:            e.OwnerID,
		Title:              e.Title,
		Slug:               e.Slug,
		Description:        e.Description,
		Location:           e.Location,
		Tags:               e.Tags,
		Color:              e.Color,
		StartTime:          e.StartTime,
		EndTime:            e.EndTime,
		IsRecurring:        e.IsRecurring,
		RecurrencePattern:  string(e.RecurrencePattern),
		RecurrenceInterval: e.RecurrenceInterval,
		RecurrenceDays:     days,
		RecurrenceCount:    e.RecurrenceCount,
		RecurrenceEndDate:  e.RecurrenceEndDate,
		RecurrenceParentID: e.RecurrenceParentID,
		IsCompleted:        e.IsCompleted,
		IsPrivate:          e.IsPrivate,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func ToEventResponses(events []entity.Event) []EventResponse {
	out := make([]EventResponse, len(events))
	for i := range events {
		out[i] = *ToEventResponse(&events[i])
	}
	return out
}
