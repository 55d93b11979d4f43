package service

import (
	"context"
	"testing"
	"time"

	"tempus/core/errors"
	eventEntity "tempus/modules/event/entity"
	eventService "tempus/modules/event/service"
	sharingEntity "tempus/modules/sharing/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventProvider struct {
	events map[uuid.UUID][]eventEntity.Event
}

func (f *fakeEventProvider) GetEventsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]eventEntity.Event, error) {
	return f.events[userID], nil
}

type fakePolicy struct {
	levels map[uuid.UUID]sharingEntity.PermissionLevel
}

func (f *fakePolicy) GetPermissionLevel(ctx context.Context, targetUserID, requesterID uuid.UUID) (sharingEntity.PermissionLevel, error) {
	if targetUserID == requesterID {
		return sharingEntity.PermissionOwner, nil
	}
	return f.levels[targetUserID], nil
}

func newTestService(events map[uuid.UUID][]eventEntity.Event, levels map[uuid.UUID]sharingEntity.PermissionLevel) FreeBusyServiceInterface {
	return NewFreeBusyService(
		&fakeEventProvider{events: events},
		&fakePolicy{levels: levels},
		eventService.NewRecurrenceExpander(),
		nil, 0)
}

func meetingAt(owner uuid.UUID, title string, start time.Time, private bool) eventEntity.Event {
	location := "Room 4"
	return eventEntity.Event{
		ID:        uuid.New(),
		OwnerID:   owner,
		Title:     title,
		Location:  &location,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		IsPrivate: private,
	}
}

func TestGetBusyIntervals_PermissionDenied(t *testing.T) {
	target := uuid.New()
	requester := uuid.New()
	svc := newTestService(nil, map[uuid.UUID]sharingEntity.PermissionLevel{
		target: sharingEntity.PermissionNone,
	})

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, appErr := svc.GetBusyIntervals(context.Background(), target, requester, start, start.AddDate(0, 0, 1), false)

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestGetBusyIntervals_DetailGating(t *testing.T) {
	target := uuid.New()
	viewer := uuid.New()
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	events := map[uuid.UUID][]eventEntity.Event{
		target: {meetingAt(target, "Budget review", start.Add(9*time.Hour), false)},
	}

	// Free/busy-only permission hides details even when asked for them.
	svc := newTestService(events, map[uuid.UUID]sharingEntity.PermissionLevel{
		target: sharingEntity.PermissionFreeBusyOnly,
	})
	intervals, appErr := svc.GetBusyIntervals(context.Background(), target, viewer, start, start.AddDate(0, 0, 1), true)
	require.Nil(t, appErr)
	require.Len(t, intervals, 1)
	assert.True(t, intervals[0].IsBusy)
	assert.Nil(t, intervals[0].Subject)
	assert.Nil(t, intervals[0].Location)

	// Full-details permission with includeDetails shows them.
	svc = newTestService(events, map[uuid.UUID]sharingEntity.PermissionLevel{
		target: sharingEntity.PermissionFullDetails,
	})
	intervals, appErr = svc.GetBusyIntervals(context.Background(), target, viewer, start, start.AddDate(0, 0, 1), true)
	require.Nil(t, appErr)
	require.Len(t, intervals, 1)
	require.NotNil(t, intervals[0].Subject)
	assert.Equal(t, "Budget review", *intervals[0].Subject)
	assert.NotNil(t, intervals[0].Location)

	// Details must also be requested explicitly.
	intervals, appErr = svc.GetBusyIntervals(context.Background(), target, viewer, start, start.AddDate(0, 0, 1), false)
	require.Nil(t, appErr)
	require.Len(t, intervals, 1)
	assert.Nil(t, intervals[0].Subject)
}

func TestGetBusyIntervals_PrivateAlwaysCollapses(t *testing.T) {
	target := uuid.New()
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	events := map[uuid.UUID][]eventEntity.Event{
		target: {meetingAt(target, "Therapy", start.Add(14*time.Hour), true)},
	}
	svc := newTestService(events, nil)

	// Even the owner asking for details gets a bare busy block.
	intervals, appErr := svc.GetBusyIntervals(context.Background(), target, target, start, start.AddDate(0, 0, 1), true)
	require.Nil(t, appErr)
	require.Len(t, intervals, 1)
	assert.True(t, intervals[0].IsBusy)
	assert.True(t, intervals[0].IsPrivate)
	assert.Nil(t, intervals[0].Subject)
	assert.Nil(t, intervals[0].Location)
}

func TestGetBusyIntervals_ExpandsRecurringTemplates(t *testing.T) {
	target := uuid.New()
	template := meetingAt(target, "Standup", time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), false)
	template.IsRecurring = true
	template.RecurrencePattern = eventEntity.RecurrenceDaily
	template.RecurrenceInterval = 1

	svc := newTestService(map[uuid.UUID][]eventEntity.Event{target: {template}}, nil)

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	intervals, appErr := svc.GetBusyIntervals(context.Background(), target, target, start, start.AddDate(0, 0, 5), false)
	require.Nil(t, appErr)
	require.Len(t, intervals, 5) // Jun 2..6; the Jun 7 occurrence starts past the window
	for i, interval := range intervals {
		assert.Equal(t, template.StartTime.AddDate(0, 0, i), interval.StartTime)
		// Occurrences report the template's identity so conflict exclusion
		// can match the persisted event.
		assert.Equal(t, template.ID, interval.EventID)
	}
}

func TestGetBusyIntervals_DoesNotMergeOverlaps(t *testing.T) {
	target := uuid.New()
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	first := meetingAt(target, "A", start.Add(9*time.Hour), false)
	second := meetingAt(target, "B", start.Add(9*time.Hour+30*time.Minute), false)

	svc := newTestService(map[uuid.UUID][]eventEntity.Event{target: {first, second}}, nil)

	intervals, appErr := svc.GetBusyIntervals(context.Background(), target, target, start, start.AddDate(0, 0, 1), false)
	require.Nil(t, appErr)
	assert.Len(t, intervals, 2)
}

func TestGetBusyIntervalsForUsers_SilentlySkipsUnauthorized(t *testing.T) {
	visible := uuid.New()
	hidden := uuid.New()
	requester := uuid.New()
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	svc := newTestService(
		map[uuid.UUID][]eventEntity.Event{
			visible: {meetingAt(visible, "Sync", start.Add(10*time.Hour), false)},
			hidden:  {meetingAt(hidden, "Secret", start.Add(10*time.Hour), false)},
		},
		map[uuid.UUID]sharingEntity.PermissionLevel{
			visible: sharingEntity.PermissionFreeBusyOnly,
			hidden:  sharingEntity.PermissionNone,
		})

	results, appErr := svc.GetBusyIntervalsForUsers(context.Background(),
		[]uuid.UUID{visible, hidden}, requester, start, start.AddDate(0, 0, 1), false)

	require.Nil(t, appErr)
	require.Len(t, results, 1)
	assert.Equal(t, visible, results[0].UserID)
	assert.Len(t, results[0].Intervals, 1)
}
