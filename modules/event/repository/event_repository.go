package repository

import (
	"context"
	"database/sql"
	"time"

	"tempus/core/database"
	"tempus/core/logger"
	"tempus/modules/event/entity"

	"github.com/google/uuid"
)

// EventRepository handles event and attendee database operations
type EventRepository struct {
	DB database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract
type EventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	UpdateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	GetEventsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.Event, error)
	AddAttendee(ctx context.Context, eventID uuid.UUID, userID *uuid.UUID, email string) error
	RemoveAttendee(ctx context.Context, eventID uuid.UUID, email string) error
	GetAttendeeEmails(ctx context.Context, eventID uuid.UUID) ([]string, error)
	GetAttendeeUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)
}

const eventColumns = `
	id, owner_id, title, slug, description, location, tags, color,
	start_time, end_time, is_recurring, recurrence_pattern, recurrence_interval,
	recurrence_days, recurrence_count, recurrence_end_date, recurrence_parent_id,
	external_calendar_id, is_completed, is_private, created_at, updated_at
`

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (
			owner_id, title, slug, description, location, tags, color,
			start_time, end_time, is_recurring, recurrence_pattern, recurrence_interval,
			recurrence_days, recurrence_count, recurrence_end_date,
			external_calendar_id, is_private
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.OwnerID, event.Title, event.Slug, event.Description, event.Location,
		event.Tags, event.Color, event.StartTime, event.EndTime,
		event.IsRecurring, event.RecurrencePattern, event.RecurrenceInterval,
		event.RecurrenceDays, event.RecurrenceCount, event.RecurrenceEndDate,
		event.ExternalCalendarID, event.IsPrivate)
	if err != nil {
		logger.Error("EventRepository:CreateEvent", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		UPDATE events SET
			title = $2, description = $3, location = $4, tags = $5, color = $6,
			start_time = $7, end_time = $8, is_recurring = $9,
			recurrence_pattern = $10, recurrence_interval = $11, recurrence_days = $12,
			recurrence_count = $13, recurrence_end_date = $14,
			is_completed = $15, is_private = $16, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns

	var updated entity.Event
	err := r.DB.GetContext(ctx, &updated, query,
		event.ID, event.Title, event.Description, event.Location, event.Tags, event.Color,
		event.StartTime, event.EndTime, event.IsRecurring,
		event.RecurrencePattern, event.RecurrenceInterval, event.RecurrenceDays,
		event.RecurrenceCount, event.RecurrenceEndDate,
		event.IsCompleted, event.IsPrivate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:UpdateEvent", err)
		return nil, err
	}

	return &updated, nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EventRepository:DeleteEvent", err)
		return err
	}
	return nil
}

// GetEventsInRange returns every event of the user overlapping [start, end),
// plus recurring templates whose rule may still produce occurrences in the
// window. Callers expand the templates themselves.
func (r *EventRepository) GetEventsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE owner_id = $1
		  AND recurrence_parent_id IS NULL
		  AND (
			(start_time < $3 AND end_time > $2)
			OR (
				is_recurring
				AND start_time < $3
				AND (recurrence_end_date IS NULL OR recurrence_end_date >= $2)
			)
		  )
		ORDER BY start_time
	`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, userID, start, end)
	if err != nil {
		logger.Error("EventRepository:GetEventsInRange", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) AddAttendee(ctx context.Context, eventID uuid.UUID, userID *uuid.UUID, email string) error {
	query := `
		INSERT INTO event_attendees (event_id, user_id, email)
		VALUES ($1, $2, LOWER($3))
		ON CONFLICT (event_id, email) DO UPDATE SET user_id = $2
	`
	err := r.DB.ExecContext(ctx, query, eventID, userID, email)
	if err != nil {
		logger.Error("EventRepository:AddAttendee", err)
		return err
	}
	return nil
}

func (r *EventRepository) RemoveAttendee(ctx context.Context, eventID uuid.UUID, email string) error {
	query := `DELETE FROM event_attendees WHERE event_id = $1 AND email = LOWER($2)`
	err := r.DB.ExecContext(ctx, query, eventID, email)
	if err != nil {
		logger.Error("EventRepository:RemoveAttendee", err)
		return err
	}
	return nil
}

func (r *EventRepository) GetAttendeeEmails(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	query := `SELECT email FROM event_attendees WHERE event_id = $1 ORDER BY email`

	var emails []string
	err := r.DB.SelectContext(ctx, &emails, query, eventID)
	if err != nil {
		logger.Error("EventRepository:GetAttendeeEmails", err)
		return nil, err
	}
	return emails, nil
}

func (r *EventRepository) GetAttendeeUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT user_id FROM event_attendees WHERE event_id = $1 AND user_id IS NOT NULL`

	var ids []uuid.UUID
	err := r.DB.SelectContext(ctx, &ids, query, eventID)
	if err != nil {
		logger.Error("EventRepository:GetAttendeeUserIDs", err)
		return nil, err
	}
	return ids, nil
}
