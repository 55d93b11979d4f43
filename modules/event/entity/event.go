package entity

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecurrencePattern represents how often an event repeats
type RecurrencePattern string

const (
	RecurrenceNone    RecurrencePattern = "none"
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
	RecurrenceYearly  RecurrencePattern = "yearly"
)

// WeekdaySet is the set of weekdays a weekly event repeats on. An empty set
// means every day of the period qualifies. Stored as a comma-separated list
// of weekday numbers (0=Sunday .. 6=Saturday).
type WeekdaySet []time.Weekday

func (s WeekdaySet) Contains(d time.Weekday) bool {
	for _, w := range s {
		if w == d {
			return true
		}
	}
	return false
}

func (s WeekdaySet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "", nil
	}
	parts := make([]string, len(s))
	for i, w := range s {
		parts[i] = strconv.Itoa(int(w))
	}
	return strings.Join(parts, ","), nil
}

func (s *WeekdaySet) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported weekday set type %T", src)
	}

	if raw == "" {
		*s = nil
		return nil
	}

	parts := strings.Split(raw, ",")
	days := make(WeekdaySet, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("invalid weekday %q: %w", p, err)
		}
		days = append(days, time.Weekday(n))
	}
	*s = days
	return nil
}

// Event represents a calendar event. A recurring event row is the template;
// its concrete occurrences are generated in memory and never persisted.
type Event struct {
	ID                 uuid.UUID         `db:"id" json:"id"`
	OwnerID            uuid.UUID         `db:"owner_id" json:"owner_id"`
	Title              string            `db:"title" json:"title"`
	Slug               string            `db:"slug" json:"slug"`
	Description        *string           `db:"description" json:"description,omitempty"`
	Location           *string           `db:"location" json:"location,omitempty"`
	Tags               *string           `db:"tags" json:"tags,omitempty"`
	Color              *string           `db:"color" json:"color,omitempty"`
	StartTime          time.Time         `db:"start_time" json:"start_time"`
	EndTime            time.Time         `db:"end_time" json:"end_time"`
	IsRecurring        bool              `db:"is_recurring" json:"is_recurring"`
	RecurrencePattern  RecurrencePattern `db:"recurrence_pattern" json:"recurrence_pattern"`
	RecurrenceInterval int               `db:"recurrence_interval" json:"recurrence_interval"`
	RecurrenceDays     WeekdaySet        `db:"recurrence_days" json:"recurrence_days,omitempty"`
	RecurrenceCount    *int              `db:"recurrence_count" json:"recurrence_count,omitempty"`
	RecurrenceEndDate  *time.Time        `db:"recurrence_end_date" json:"recurrence_end_date,omitempty"`
	RecurrenceParentID *uuid.UUID        `db:"recurrence_parent_id" json:"recurrence_parent_id,omitempty"`
	ExternalCalendarID *string           `db:"external_calendar_id" json:"external_calendar_id,omitempty"`
	IsCompleted        bool              `db:"is_completed" json:"is_completed"`
	IsPrivate          bool              `db:"is_private" json:"is_private"`
	CreatedAt          time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time         `db:"updated_at" json:"updated_at"`
}

// Duration is fixed for a template and reused for every generated occurrence.
func (e *Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// Attendee links a user (or a bare email) to an event.
type Attendee struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	EventID   uuid.UUID  `db:"event_id" json:"event_id"`
	UserID    *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Email     string     `db:"email" json:"email"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
