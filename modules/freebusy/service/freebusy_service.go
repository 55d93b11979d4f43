package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tempus/core/cache"
	"tempus/core/constants"
	"tempus/core/errors"
	"tempus/core/logger"
	eventEntity "tempus/modules/event/entity"
	eventService "tempus/modules/event/service"
	"tempus/modules/freebusy/dto"
	sharingEntity "tempus/modules/sharing/entity"

	"github.com/google/uuid"
)

// EventProvider is the event-store collaborator. It must return every event
// overlapping the window, including recurring templates, which this service
// expands itself.
type EventProvider interface {
	GetEventsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]eventEntity.Event, error)
}

// SharingPolicy is the visibility authority consulted before exposing any
// calendar data.
type SharingPolicy interface {
	GetPermissionLevel(ctx context.Context, targetUserID, requesterID uuid.UUID) (sharingEntity.PermissionLevel, error)
}

// FreeBusyService converts a user's events into busy intervals for a query
// window, subject to the sharing policy.
type FreeBusyService struct {
	events   EventProvider
	policy   SharingPolicy
	expander *eventService.RecurrenceExpander
	cache    *cache.Cache
	cacheTTL time.Duration
}

// FreeBusyServiceInterface defines the service contract
type FreeBusyServiceInterface interface {
	GetBusyIntervals(ctx context.Context, userID, requestingUserID uuid.UUID, start, end time.Time, includeDetails bool) ([]dto.BusyInterval, *errors.AppError)
	GetBusyIntervalsForUsers(ctx context.Context, userIDs []uuid.UUID, requestingUserID uuid.UUID, start, end time.Time, includeDetails bool) ([]dto.UserFreeBusy, *errors.AppError)
	InvalidateUsers(ctx context.Context, userIDs []uuid.UUID)
}

func NewFreeBusyService(events EventProvider, policy SharingPolicy, expander *eventService.RecurrenceExpander, c *cache.Cache, cacheTTL time.Duration) FreeBusyServiceInterface {
	if cacheTTL <= 0 {
		cacheTTL = constants.DefaultFreeBusyCacheTTL
	}
	return &FreeBusyService{events: events, policy: policy, expander: expander, cache: c, cacheTTL: cacheTTL}
}

// userBusyResult tags a single user's outcome in a batch lookup so the skip
// is explicit rather than inferred from a shorter result list.
type userBusyResult struct {
	UserID    uuid.UUID
	Intervals []dto.BusyInterval
	Skipped   bool
}

func cacheKey(userID uuid.UUID, start, end time.Time) string {
	return fmt.Sprintf("freebusy:%s:%d:%d", userID, start.Unix(), end.Unix())
}

// GetBusyIntervals returns the target user's busy intervals overlapping
// [start, end). It fails with a forbidden error when the requester lacks
// visibility into the target's calendar.
//
// Intervals are one per source event; overlapping intervals from different
// events are not merged, so consumers must not assume disjointness.
func (s *FreeBusyService) GetBusyIntervals(ctx context.Context, userID, requestingUserID uuid.UUID, start, end time.Time, includeDetails bool) ([]dto.BusyInterval, *errors.AppError) {
	level, err := s.policy.GetPermissionLevel(ctx, userID, requestingUserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to check calendar visibility", err)
	}
	if !level.CanViewCalendar() {
		return nil, errors.NewAppError(errors.ErrForbidden, "No permission to view this calendar", nil)
	}

	showDetails := includeDetails && level.CanViewDetails()

	// Detail-free responses are identical for every authorized requester, so
	// only that shape is cached.
	if !showDetails {
		if raw, ok := s.cache.Get(ctx, cacheKey(userID, start, end)); ok {
			var cached []dto.BusyInterval
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	events, err := s.events.GetEventsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load events", err)
	}

	intervals := []dto.BusyInterval{}
	for i := range events {
		ev := &events[i]
		if ev.IsRecurring {
			occurrences := s.expander.Expand(ev, start, end, constants.DefaultMaxInstances)
			for j := range occurrences {
				occ := &occurrences[j]
				if occ.StartTime.Before(end) && occ.EndTime.After(start) {
					intervals = append(intervals, toBusyInterval(occ, showDetails))
				}
			}
			continue
		}
		if ev.StartTime.Before(end) && ev.EndTime.After(start) {
			intervals = append(intervals, toBusyInterval(ev, showDetails))
		}
	}

	if !showDetails {
		if data, err := json.Marshal(intervals); err == nil {
			s.cache.Set(ctx, cacheKey(userID, start, end), string(data), s.cacheTTL)
		}
	}

	return intervals, nil
}

// GetBusyIntervalsForUsers looks up several users independently. A user the
// requester may not view is silently omitted from the result; only
// infrastructure failures surface as errors.
func (s *FreeBusyService) GetBusyIntervalsForUsers(ctx context.Context, userIDs []uuid.UUID, requestingUserID uuid.UUID, start, end time.Time, includeDetails bool) ([]dto.UserFreeBusy, *errors.AppError) {
	results := []dto.UserFreeBusy{}
	for _, userID := range userIDs {
		res, appErr := s.lookupUser(ctx, userID, requestingUserID, start, end, includeDetails)
		if appErr != nil {
			return nil, appErr
		}
		if res.Skipped {
			logger.Debug("FreeBusyService:GetBusyIntervalsForUsers:Skipped",
				"user_id", res.UserID, "requester_id", requestingUserID)
			continue
		}
		results = append(results, dto.UserFreeBusy{UserID: res.UserID, Intervals: res.Intervals})
	}
	return results, nil
}

func (s *FreeBusyService) lookupUser(ctx context.Context, userID, requestingUserID uuid.UUID, start, end time.Time, includeDetails bool) (userBusyResult, *errors.AppError) {
	intervals, appErr := s.GetBusyIntervals(ctx, userID, requestingUserID, start, end, includeDetails)
	if appErr != nil {
		if appErr.Code == errors.ErrForbidden {
			return userBusyResult{UserID: userID, Skipped: true}, nil
		}
		return userBusyResult{}, appErr
	}
	return userBusyResult{UserID: userID, Intervals: intervals}, nil
}

// InvalidateUsers drops every cached window for the given users. Called by
// the background worker after event mutations.
func (s *FreeBusyService) InvalidateUsers(ctx context.Context, userIDs []uuid.UUID) {
	for _, userID := range userIDs {
		s.cache.DeleteByPrefix(ctx, fmt.Sprintf("freebusy:%s:", userID))
	}
}

func toBusyInterval(ev *eventEntity.Event, showDetails bool) dto.BusyInterval {
	interval := dto.BusyInterval{
		StartTime: ev.StartTime,
		EndTime:   ev.EndTime,
		IsBusy:    true,
		EventID:   ev.ID,
		IsPrivate: ev.IsPrivate,
	}
	if ev.RecurrenceParentID != nil {
		// Conflict exclusion matches on the persisted template, not the
		// ephemeral occurrence id.
		interval.EventID = *ev.RecurrenceParentID
	}
	if showDetails && !ev.IsPrivate {
		interval.Subject = &ev.Title
		interval.Location = ev.Location
	}
	return interval
}
