package service

import (
	"context"
	"time"

	"tempus/core/constants"
	"tempus/core/errors"
	"tempus/core/jobs"
	"tempus/core/logger"
	"tempus/core/utils"
	"tempus/modules/event/dto"
	"tempus/modules/event/entity"
	"tempus/modules/event/repository"
	userEntity "tempus/modules/user/entity"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// UserResolver maps attendee emails to directory users. Unknown emails
// resolve to nil without error.
type UserResolver interface {
	ResolveUserByEmail(ctx context.Context, email string) (*userEntity.User, error)
}

// EventService handles event CRUD and occurrence previews
type EventService struct {
	repo     repository.EventRepositoryInterface
	users    UserResolver
	expander *RecurrenceExpander
	jobs     *jobs.Client
}

// EventServiceInterface defines the service contract
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, ownerID, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, ownerID, id uuid.UUID) *errors.AppError
	GetOccurrences(ctx context.Context, id uuid.UUID, start, end time.Time, maxInstances int) ([]dto.EventResponse, *errors.AppError)
	PreviewOccurrences(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest, start, end time.Time) ([]dto.EventResponse, *errors.AppError)
	DescribeRecurrence(ctx context.Context, id uuid.UUID) (*dto.RecurrenceDescriptionResponse, *errors.AppError)
	AddAttendee(ctx context.Context, ownerID, eventID uuid.UUID, email string) *errors.AppError
	RemoveAttendee(ctx context.Context, ownerID, eventID uuid.UUID, email string) *errors.AppError
	ListAttendees(ctx context.Context, eventID uuid.UUID) ([]string, *errors.AppError)
}

func NewEventService(repo repository.EventRepositoryInterface, users UserResolver, expander *RecurrenceExpander, jobsClient *jobs.Client) EventServiceInterface {
	return &EventService{repo: repo, users: users, expander: expander, jobs: jobsClient}
}

func parsePattern(pattern string) (entity.RecurrencePattern, bool) {
	switch entity.RecurrencePattern(pattern) {
	case entity.RecurrenceNone, entity.RecurrenceDaily, entity.RecurrenceWeekly,
		entity.RecurrenceMonthly, entity.RecurrenceYearly:
		return entity.RecurrencePattern(pattern), true
	case "":
		return entity.RecurrenceNone, true
	}
	return entity.RecurrenceNone, false
}

func toWeekdaySet(days []int) (entity.WeekdaySet, bool) {
	set := make(entity.WeekdaySet, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, false
		}
		set = append(set, time.Weekday(d))
	}
	return set, true
}

func validateRecurrence(isRecurring bool, pattern entity.RecurrencePattern, interval int, count *int) *errors.AppError {
	if !isRecurring {
		return nil
	}
	if pattern == entity.RecurrenceNone {
		return errors.NewAppError(errors.ErrInvalidInput, "Recurring event requires a recurrence pattern", nil)
	}
	if interval < 1 {
		return errors.NewAppError(errors.ErrInvalidInput, "Recurrence interval must be at least 1", nil)
	}
	if count != nil && *count < 1 {
		return errors.NewAppError(errors.ErrInvalidInput, "Recurrence count must be at least 1", nil)
	}
	return nil
}

func (s *EventService) buildEvent(ownerID uuid.UUID, req *dto.CreateEventRequest) (*entity.Event, *errors.AppError) {
	if !req.EndTime.After(req.StartTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "End time must be after start time", nil)
	}

	pattern, ok := parsePattern(req.RecurrencePattern)
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid recurrence pattern", nil)
	}
	days, ok := toWeekdaySet(req.RecurrenceDays)
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid weekday in recurrence days", nil)
	}
	if appErr := validateRecurrence(req.IsRecurring, pattern, req.RecurrenceInterval, req.RecurrenceCount); appErr != nil {
		return nil, appErr
	}

	interval := req.RecurrenceInterval
	if !req.IsRecurring {
		pattern = entity.RecurrenceNone
		interval = 0
		days = nil
	}

	return &entity.Event{
		OwnerID:            ownerID,
		Title:              req.Title,
		Slug:               slug.Make(req.Title) + "-" + utils.GenerateID(),
		Description:        req.Description,
		Location:           req.Location,
		Tags:               req.Tags,
		Color:              req.Color,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		IsRecurring:        req.IsRecurring,
		RecurrencePattern:  pattern,
		RecurrenceInterval: interval,
		RecurrenceDays:     days,
		RecurrenceCount:    req.RecurrenceCount,
		RecurrenceEndDate:  req.RecurrenceEndDate,
		ExternalCalendarID: req.ExternalCalendarID,
		IsPrivate:          req.IsPrivate,
	}, nil
}

func (s *EventService) CreateEvent(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.buildEvent(ownerID, req)
	if appErr != nil {
		return nil, appErr
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create event", err)
	}

	for _, email := range req.AttendeeEmails {
		if appErr := s.addAttendee(ctx, created.ID, email); appErr != nil {
			logger.Warn("EventService:CreateEvent:AddAttendee", "event_id", created.ID, "email", email)
		}
	}

	s.notifyChange(ctx, created, "created")
	return dto.ToEventResponse(created), nil
}

func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.getEvent(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToEventResponse(event), nil
}

func (s *EventService) UpdateEvent(ctx context.Context, ownerID, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.getOwnedEvent(ctx, ownerID, id)
	if appErr != nil {
		return nil, appErr
	}

	if !req.EndTime.After(req.StartTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "End time must be after start time", nil)
	}
	pattern, ok := parsePattern(req.RecurrencePattern)
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid recurrence pattern", nil)
	}
	days, ok := toWeekdaySet(req.RecurrenceDays)
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid weekday in recurrence days", nil)
	}
	if appErr := validateRecurrence(req.IsRecurring, pattern, req.RecurrenceInterval, req.RecurrenceCount); appErr != nil {
		return nil, appErr
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.Tags = req.Tags
	event.Color = req.Color
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.IsPrivate = req.IsPrivate
	event.IsCompleted = req.IsCompleted
	event.IsRecurring = req.IsRecurring
	event.RecurrencePattern = pattern
	event.RecurrenceInterval = req.RecurrenceInterval
	event.RecurrenceDays = days
	event.RecurrenceCount = req.RecurrenceCount
	event.RecurrenceEndDate = req.RecurrenceEndDate
	if !req.IsRecurring {
		event.RecurrencePattern = entity.RecurrenceNone
		event.RecurrenceInterval = 0
		event.RecurrenceDays = nil
		event.RecurrenceCount = nil
		event.RecurrenceEndDate = nil
	}

	updated, err := s.repo.UpdateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update event", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	s.notifyChange(ctx, updated, "updated")
	return dto.ToEventResponse(updated), nil
}

func (s *EventService) DeleteEvent(ctx context.Context, ownerID, id uuid.UUID) *errors.AppError {
	event, appErr := s.getOwnedEvent(ctx, ownerID, id)
	if appErr != nil {
		return appErr
	}

	// Collect attendee ids before the rows cascade away.
	attendeeIDs, err := s.repo.GetAttendeeUserIDs(ctx, id)
	if err != nil {
		attendeeIDs = nil
	}

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete event", err)
	}

	s.jobs.EnqueueFreeBusyInvalidate(append(attendeeIDs, event.OwnerID))
	s.jobs.EnqueueEventChangedNotify(jobs.EventChangedNotifyPayload{
		EventID:     event.ID,
		Title:       event.Title,
		Change:      "cancelled",
		AttendeeIDs: attendeeIDs,
	})
	return nil
}

func (s *EventService) GetOccurrences(ctx context.Context, id uuid.UUID, start, end time.Time, maxInstances int) ([]dto.EventResponse, *errors.AppError) {
	event, appErr := s.getEvent(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if maxInstances <= 0 {
		maxInstances = constants.DefaultMaxInstances
	}
	return dto.ToEventResponses(s.expander.Expand(event, start, end, maxInstances)), nil
}

// PreviewOccurrences expands a not-yet-persisted template so callers can
// validate a recurrence rule before saving it.
func (s *EventService) PreviewOccurrences(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest, start, end time.Time) ([]dto.EventResponse, *errors.AppError) {
	event, appErr := s.buildEvent(ownerID, req)
	if appErr != nil {
		return nil, appErr
	}
	event.ID = uuid.New()
	return dto.ToEventResponses(s.expander.Expand(event, start, end, constants.DefaultMaxInstances)), nil
}

func (s *EventService) DescribeRecurrence(ctx context.Context, id uuid.UUID) (*dto.RecurrenceDescriptionResponse, *errors.AppError) {
	event, appErr := s.getEvent(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return &dto.RecurrenceDescriptionResponse{
		EventID:     event.ID,
		Description: s.expander.Describe(event),
	}, nil
}

func (s *EventService) AddAttendee(ctx context.Context, ownerID, eventID uuid.UUID, email string) *errors.AppError {
	event, appErr := s.getOwnedEvent(ctx, ownerID, eventID)
	if appErr != nil {
		return appErr
	}
	if appErr := s.addAttendee(ctx, eventID, email); appErr != nil {
		return appErr
	}
	s.notifyChange(ctx, event, "updated")
	return nil
}

func (s *EventService) RemoveAttendee(ctx context.Context, ownerID, eventID uuid.UUID, email string) *errors.AppError {
	event, appErr := s.getOwnedEvent(ctx, ownerID, eventID)
	if appErr != nil {
		return appErr
	}
	if err := s.repo.RemoveAttendee(ctx, eventID, email); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to remove attendee", err)
	}
	s.notifyChange(ctx, event, "updated")
	return nil
}

func (s *EventService) ListAttendees(ctx context.Context, eventID uuid.UUID) ([]string, *errors.AppError) {
	emails, err := s.repo.GetAttendeeEmails(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list attendees", err)
	}
	return emails, nil
}

func (s *EventService) addAttendee(ctx context.Context, eventID uuid.UUID, email string) *errors.AppError {
	var userID *uuid.UUID
	user, err := s.users.ResolveUserByEmail(ctx, email)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to resolve attendee", err)
	}
	if user != nil {
		userID = &user.ID
	}

	if err := s.repo.AddAttendee(ctx, eventID, userID, email); err != nil {
		return errors.NewAppError(errors.ErrCreateFailed, "Failed to add attendee", err)
	}
	return nil
}

func (s *EventService) getEvent(ctx context.Context, id uuid.UUID) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return event, nil
}

func (s *EventService) getOwnedEvent(ctx context.Context, ownerID, id uuid.UUID) (*entity.Event, *errors.AppError) {
	event, appErr := s.getEvent(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if event.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the event owner can modify it", nil)
	}
	return event, nil
}

func (s *EventService) notifyChange(ctx context.Context, event *entity.Event, change string) {
	attendeeIDs, err := s.repo.GetAttendeeUserIDs(ctx, event.ID)
	if err != nil {
		logger.Warn("EventService:NotifyChange", "event_id", event.ID, "error", err)
		attendeeIDs = nil
	}

	s.jobs.EnqueueFreeBusyInvalidate(append(attendeeIDs, event.OwnerID))
	s.jobs.EnqueueEventChangedNotify(jobs.EventChangedNotifyPayload{
		EventID:     event.ID,
		Title:       event.Title,
		Change:      change,
		AttendeeIDs: attendeeIDs,
	})
}
