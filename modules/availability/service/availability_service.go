package service

import (
	"context"
	"math"
	"time"

	"tempus/core/constants"
	"tempus/core/errors"
	"tempus/core/logger"
	"tempus/modules/availability/dto"
	freebusyDto "tempus/modules/freebusy/dto"
	userEntity "tempus/modules/user/entity"

	"github.com/google/uuid"
)

// UserDirectory resolves attendee emails. An email that does not resolve is
// not an error; the attendee is classified unknown for the slot.
type UserDirectory interface {
	ResolveUserByEmail(ctx context.Context, email string) (*userEntity.User, error)
}

// BusySource supplies busy intervals per user. The analyzer queries each
// attendee's calendar as that attendee, so sharing policy never rejects the
// lookup.
type BusySource interface {
	GetBusyIntervals(ctx context.Context, userID, requestingUserID uuid.UUID, start, end time.Time, includeDetails bool) ([]freebusyDto.BusyInterval, *errors.AppError)
}

// AvailabilityService classifies attendees as available, busy or unknown for
// candidate slots.
type AvailabilityService struct {
	directory         UserDirectory
	busy              BusySource
	unknownPenaltyPct float64
}

// AvailabilityServiceInterface defines the service contract
type AvailabilityServiceInterface interface {
	AnalyzeSlot(ctx context.Context, attendeeEmails []string, start, end time.Time) (*dto.AvailabilitySlot, *errors.AppError)
	AnalyzeSlotExcluding(ctx context.Context, attendeeEmails []string, start, end time.Time, excludeEventID *uuid.UUID) (*dto.AvailabilitySlot, *errors.AppError)
	AnalyzeGrid(ctx context.Context, attendeeEmails []string, start, end time.Time, slotDurationMinutes int) ([]dto.AvailabilitySlot, *errors.AppError)
}

func NewAvailabilityService(directory UserDirectory, busy BusySource, unknownPenaltyPct float64) AvailabilityServiceInterface {
	if unknownPenaltyPct <= 0 {
		unknownPenaltyPct = constants.DefaultUnknownPenaltyPct
	}
	return &AvailabilityService{directory: directory, busy: busy, unknownPenaltyPct: unknownPenaltyPct}
}

func (s *AvailabilityService) AnalyzeSlot(ctx context.Context, attendeeEmails []string, start, end time.Time) (*dto.AvailabilitySlot, *errors.AppError) {
	return s.AnalyzeSlotExcluding(ctx, attendeeEmails, start, end, nil)
}

// AnalyzeSlotExcluding classifies each attendee for [start, end), ignoring
// busy intervals that originate from excludeEventID. The exclusion is used
// when checking whether rescheduling an event conflicts with the event
// itself.
func (s *AvailabilityService) AnalyzeSlotExcluding(ctx context.Context, attendeeEmails []string, start, end time.Time, excludeEventID *uuid.UUID) (*dto.AvailabilitySlot, *errors.AppError) {
	slot := &dto.AvailabilitySlot{
		StartTime:         start,
		EndTime:           end,
		TotalAttendees:    len(attendeeEmails),
		AvailableEmails:   []string{},
		BusyEmails:        []string{},
		UnknownEmails:     []string{},
		ConflictingEvents: []dto.ConflictingEvent{},
	}

	for _, email := range attendeeEmails {
		user, err := s.directory.ResolveUserByEmail(ctx, email)
		if err != nil || user == nil {
			if err != nil {
				logger.Warn("AvailabilityService:AnalyzeSlot:Resolve", "email", email, "error", err)
			}
			slot.UnknownAttendees++
			slot.UnknownEmails = append(slot.UnknownEmails, email)
			continue
		}

		intervals, appErr := s.busy.GetBusyIntervals(ctx, user.ID, user.ID, start, end, true)
		if appErr != nil {
			logger.Warn("AvailabilityService:AnalyzeSlot:BusyLookup", "email", email, "error", appErr)
			slot.UnknownAttendees++
			slot.UnknownEmails = append(slot.UnknownEmails, email)
			continue
		}

		conflicts := conflictsInWindow(intervals, email, start, end, excludeEventID)
		if len(conflicts) > 0 {
			slot.BusyAttendees++
			slot.BusyEmails = append(slot.BusyEmails, email)
			slot.ConflictingEvents = append(slot.ConflictingEvents, conflicts...)
		} else {
			slot.AvailableAttendees++
			slot.AvailableEmails = append(slot.AvailableEmails, email)
		}
	}

	s.score(slot)
	return slot, nil
}

// AnalyzeGrid partitions [start, end) into back-to-back slots of the given
// width and analyzes each independently. A trailing partial slot is
// excluded. Cost is O(slots x attendees x events per attendee).
func (s *AvailabilityService) AnalyzeGrid(ctx context.Context, attendeeEmails []string, start, end time.Time, slotDurationMinutes int) ([]dto.AvailabilitySlot, *errors.AppError) {
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = constants.DefaultSlotMinutes
	}
	width := time.Duration(slotDurationMinutes) * time.Minute

	grid := []dto.AvailabilitySlot{}
	for cursor := start; !cursor.Add(width).After(end); cursor = cursor.Add(width) {
		slot, appErr := s.AnalyzeSlot(ctx, attendeeEmails, cursor, cursor.Add(width))
		if appErr != nil {
			return nil, appErr
		}
		grid = append(grid, *slot)
	}
	return grid, nil
}

func conflictsInWindow(intervals []freebusyDto.BusyInterval, email string, start, end time.Time, excludeEventID *uuid.UUID) []dto.ConflictingEvent {
	conflicts := []dto.ConflictingEvent{}
	for _, interval := range intervals {
		if !interval.IsBusy {
			continue
		}
		if excludeEventID != nil && interval.EventID == *excludeEventID {
			continue
		}
		if interval.StartTime.Before(end) && interval.EndTime.After(start) {
			conflicts = append(conflicts, dto.ConflictingEvent{
				EventID:       interval.EventID,
				AttendeeEmail: email,
				Subject:       interval.Subject,
				StartTime:     interval.StartTime,
				EndTime:       interval.EndTime,
			})
		}
	}
	return conflicts
}

func (s *AvailabilityService) score(slot *dto.AvailabilitySlot) {
	if slot.TotalAttendees == 0 {
		// Vacuously all-available, but zero percent and zero quality.
		slot.AllAvailable = true
		return
	}

	total := float64(slot.TotalAttendees)
	pct := float64(slot.AvailableAttendees) / total * 100
	penalty := float64(slot.UnknownAttendees) / total * s.unknownPenaltyPct

	slot.AvailabilityPercentage = round2(pct)
	slot.QualityScore = round2(math.Max(0, math.Min(100, pct-penalty)))
	slot.AllAvailable = slot.AvailableAttendees == slot.TotalAttendees
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
