package service

import (
	"context"
	"sort"
	"time"

	"tempus/core/config"
	"tempus/core/constants"
	"tempus/core/errors"
	availabilityDto "tempus/modules/availability/dto"
	availabilityService "tempus/modules/availability/service"
	eventEntity "tempus/modules/event/entity"
	"tempus/modules/scheduling/dto"

	"github.com/google/uuid"
)

// EventSource loads existing events when suggesting alternatives for them.
type EventSource interface {
	GetEventByID(ctx context.Context, id uuid.UUID) (*eventEntity.Event, error)
	GetAttendeeEmails(ctx context.Context, eventID uuid.UUID) ([]string, error)
}

// SchedulingService slides a candidate window across a search range, scores
// each slot through the availability analyzer, and ranks the results.
type SchedulingService struct {
	analyzer availabilityService.AvailabilityServiceInterface
	events   EventSource
	cfg      config.SchedulingConfig
	now      func() time.Time
}

// SchedulingServiceInterface defines the service contract
type SchedulingServiceInterface interface {
	FindOptimalTimes(ctx context.Context, attendeeEmails []string, durationMinutes int, searchStart, searchEnd time.Time, maxSuggestions int) ([]dto.SchedulingSuggestion, *errors.AppError)
	FindNextAvailableSlot(ctx context.Context, attendeeEmails []string, durationMinutes int, startSearchFrom *time.Time) (*dto.SchedulingSuggestion, *errors.AppError)
	DetectConflicts(ctx context.Context, attendeeEmails []string, start, end time.Time, excludeEventID *uuid.UUID) ([]availabilityDto.ConflictingEvent, *errors.AppError)
	SuggestAlternativeTimes(ctx context.Context, eventID uuid.UUID, maxSuggestions int) ([]dto.SchedulingSuggestion, *errors.AppError)
	IsTimeAvailableForAll(ctx context.Context, attendeeEmails []string, start, end time.Time) (bool, *errors.AppError)
}

func NewSchedulingService(analyzer availabilityService.AvailabilityServiceInterface, events EventSource, cfg config.SchedulingConfig) SchedulingServiceInterface {
	return NewSchedulingServiceWithClock(analyzer, events, cfg, time.Now)
}

func NewSchedulingServiceWithClock(analyzer availabilityService.AvailabilityServiceInterface, events EventSource, cfg config.SchedulingConfig, now func() time.Time) SchedulingServiceInterface {
	if cfg.SlotStepMinutes <= 0 {
		cfg.SlotStepMinutes = constants.DefaultSlotMinutes
	}
	if cfg.SearchHorizonDays <= 0 {
		cfg.SearchHorizonDays = constants.DefaultSearchHorizonDays
	}
	if cfg.WorkingHoursEnd <= cfg.WorkingHoursStart {
		cfg.WorkingHoursStart = constants.DefaultWorkingHoursStart
		cfg.WorkingHoursEnd = constants.DefaultWorkingHoursEnd
	}
	return &SchedulingService{analyzer: analyzer, events: events, cfg: cfg, now: now}
}

// FindOptimalTimes returns the top-scoring candidate slots for the attendees
// in [searchStart, searchEnd), ranked best first. Ties are broken by earlier
// start time.
func (s *SchedulingService) FindOptimalTimes(ctx context.Context, attendeeEmails []string, durationMinutes int, searchStart, searchEnd time.Time, maxSuggestions int) ([]dto.SchedulingSuggestion, *errors.AppError) {
	return s.findOptimal(ctx, attendeeEmails, durationMinutes, searchStart, searchEnd, maxSuggestions, nil)
}

func (s *SchedulingService) findOptimal(ctx context.Context, attendeeEmails []string, durationMinutes int, searchStart, searchEnd time.Time, maxSuggestions int, excludeEventID *uuid.UUID) ([]dto.SchedulingSuggestion, *errors.AppError) {
	if durationMinutes <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Duration must be positive", nil)
	}
	if maxSuggestions <= 0 {
		maxSuggestions = constants.DefaultMaxSuggestions
	}

	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(s.cfg.SlotStepMinutes) * time.Minute

	suggestions := []dto.SchedulingSuggestion{}
	for cursor := searchStart; !cursor.Add(duration).After(searchEnd); cursor = cursor.Add(step) {
		// Cancellation stops issuing further evaluations; whatever has been
		// scored so far is still ranked and returned.
		if ctx.Err() != nil {
			break
		}

		slot, appErr := s.analyzer.AnalyzeSlotExcluding(ctx, attendeeEmails, cursor, cursor.Add(duration), excludeEventID)
		if appErr != nil {
			return nil, appErr
		}
		suggestions = append(suggestions, s.toSuggestion(slot))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].StartTime.Before(suggestions[j].StartTime)
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	for i := range suggestions {
		suggestions[i].Rank = i + 1
	}
	return suggestions, nil
}

// FindNextAvailableSlot scans forward from startSearchFrom (default now) and
// returns the first slot where every attendee is free, or nil when the
// configured search horizon is exhausted.
func (s *SchedulingService) FindNextAvailableSlot(ctx context.Context, attendeeEmails []string, durationMinutes int, startSearchFrom *time.Time) (*dto.SchedulingSuggestion, *errors.AppError) {
	if durationMinutes <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Duration must be positive", nil)
	}

	from := s.now()
	if startSearchFrom != nil {
		from = *startSearchFrom
	}
	horizon := from.AddDate(0, 0, s.cfg.SearchHorizonDays)

	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(s.cfg.SlotStepMinutes) * time.Minute

	for cursor := from; !cursor.Add(duration).After(horizon); cursor = cursor.Add(step) {
		if ctx.Err() != nil {
			break
		}

		slot, appErr := s.analyzer.AnalyzeSlot(ctx, attendeeEmails, cursor, cursor.Add(duration))
		if appErr != nil {
			return nil, appErr
		}
		if slot.AllAvailable {
			suggestion := s.toSuggestion(slot)
			suggestion.Rank = 1
			return &suggestion, nil
		}
	}
	return nil, nil
}

// DetectConflicts collects every attendee's busy events overlapping the
// exact window, optionally ignoring one event.
func (s *SchedulingService) DetectConflicts(ctx context.Context, attendeeEmails []string, start, end time.Time, excludeEventID *uuid.UUID) ([]availabilityDto.ConflictingEvent, *errors.AppError) {
	slot, appErr := s.analyzer.AnalyzeSlotExcluding(ctx, attendeeEmails, start, end, excludeEventID)
	if appErr != nil {
		return nil, appErr
	}
	return slot.ConflictingEvents, nil
}

// SuggestAlternativeTimes searches forward from an existing event's start
// (or now, whichever is later) for better slots, excluding the event itself
// from conflict counting.
func (s *SchedulingService) SuggestAlternativeTimes(ctx context.Context, eventID uuid.UUID, maxSuggestions int) ([]dto.SchedulingSuggestion, *errors.AppError) {
	if maxSuggestions <= 0 {
		maxSuggestions = constants.DefaultMaxAlternatives
	}

	event, err := s.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	attendeeEmails, err := s.events.GetAttendeeEmails(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load attendees", err)
	}

	searchStart := event.StartTime
	if now := s.now(); now.After(searchStart) {
		searchStart = now
	}
	searchEnd := searchStart.AddDate(0, 0, s.cfg.SearchHorizonDays)

	durationMinutes := int(event.Duration() / time.Minute)
	return s.findOptimal(ctx, attendeeEmails, durationMinutes, searchStart, searchEnd, maxSuggestions, &eventID)
}

// IsTimeAvailableForAll reports whether every attendee is free for the exact
// window. An empty attendee list is vacuously available.
func (s *SchedulingService) IsTimeAvailableForAll(ctx context.Context, attendeeEmails []string, start, end time.Time) (bool, *errors.AppError) {
	slot, appErr := s.analyzer.AnalyzeSlot(ctx, attendeeEmails, start, end)
	if appErr != nil {
		return false, appErr
	}
	return slot.AllAvailable, nil
}

func (s *SchedulingService) toSuggestion(slot *availabilityDto.AvailabilitySlot) dto.SchedulingSuggestion {
	return dto.SchedulingSuggestion{
		StartTime:            slot.StartTime,
		EndTime:              slot.EndTime,
		Score:                s.scoreSlot(slot),
		AvailableCount:       slot.AvailableAttendees,
		TotalCount:           slot.TotalAttendees,
		ConflictCount:        len(slot.ConflictingEvents),
		AvailableAttendees:   slot.AvailableEmails,
		ConflictingAttendees: slot.BusyEmails,
		ConflictingEvents:    slot.ConflictingEvents,
		AllAvailable:         slot.AllAvailable,
	}
}

// scoreSlot combines the analyzer's quality score with the conflict-free and
// working-hours bonuses. A slot with conflicts never reaches 100, so a fully
// available slot always outranks it.
func (s *SchedulingService) scoreSlot(slot *availabilityDto.AvailabilitySlot) float64 {
	score := slot.QualityScore
	if slot.BusyAttendees == 0 {
		score += float64(s.cfg.ConflictFreeBonus)
	}
	if s.withinWorkingHours(slot.StartTime, slot.EndTime) {
		score += float64(s.cfg.WorkingHoursBonus)
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	if slot.BusyAttendees > 0 && score > 99 {
		score = 99
	}
	return score
}

func (s *SchedulingService) withinWorkingHours(start, end time.Time) bool {
	if start.Hour() < s.cfg.WorkingHoursStart {
		return false
	}
	if end.Hour() > s.cfg.WorkingHoursEnd {
		return false
	}
	if end.Hour() == s.cfg.WorkingHoursEnd && end.Minute() > 0 {
		return false
	}
	return true
}
