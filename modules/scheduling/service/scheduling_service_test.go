package service

import (
	"context"
	"testing"
	"time"

	"tempus/core/config"
	"tempus/core/errors"
	availabilityService "tempus/modules/availability/service"
	eventEntity "tempus/modules/event/entity"
	freebusyDto "tempus/modules/freebusy/dto"
	userEntity "tempus/modules/user/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	users map[string]*userEntity.User
}

func (s *stubDirectory) ResolveUserByEmail(ctx context.Context, email string) (*userEntity.User, error) {
	return s.users[email], nil
}

type stubBusySource struct {
	intervals map[uuid.UUID][]freebusyDto.BusyInterval
}

func (s *stubBusySource) GetBusyIntervals(ctx context.Context, userID, requestingUserID uuid.UUID, start, end time.Time, includeDetails bool) ([]freebusyDto.BusyInterval, *errors.AppError) {
	return s.intervals[userID], nil
}

type stubEventSource struct {
	events    map[uuid.UUID]*eventEntity.Event
	attendees map[uuid.UUID][]string
}

func (s *stubEventSource) GetEventByID(ctx context.Context, id uuid.UUID) (*eventEntity.Event, error) {
	return s.events[id], nil
}

func (s *stubEventSource) GetAttendeeEmails(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	return s.attendees[eventID], nil
}

var testCfg = config.SchedulingConfig{
	SlotStepMinutes:   30,
	SearchHorizonDays: 1,
	WorkingHoursStart: 8,
	WorkingHoursEnd:   18,
	WorkingHoursBonus: 10,
	ConflictFreeBonus: 5,
	UnknownPenaltyPct: 20,
}

type fixture struct {
	svc        SchedulingServiceInterface
	alice, bob *userEntity.User
	conflictID uuid.UUID
	nineAM     time.Time
	events     *stubEventSource
}

// newFixture builds a suggester over two attendees where alice has a 9-10am
// meeting.
func newFixture() *fixture {
	alice := &userEntity.User{Email: "alice@acme.test"}
	alice.ID = uuid.New()
	bob := &userEntity.User{Email: "bob@acme.test"}
	bob.ID = uuid.New()

	nineAM := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	conflictID := uuid.New()

	directory := &stubDirectory{users: map[string]*userEntity.User{
		alice.Email: alice,
		bob.Email:   bob,
	}}
	busy := &stubBusySource{intervals: map[uuid.UUID][]freebusyDto.BusyInterval{
		alice.ID: {{
			StartTime: nineAM,
			EndTime:   nineAM.Add(time.Hour),
			IsBusy:    true,
			EventID:   conflictID,
		}},
	}}
	events := &stubEventSource{
		events:    map[uuid.UUID]*eventEntity.Event{},
		attendees: map[uuid.UUID][]string{},
	}

	analyzer := availabilityService.NewAvailabilityService(directory, busy, testCfg.UnknownPenaltyPct)
	svc := NewSchedulingServiceWithClock(analyzer, events, testCfg, func() time.Time { return nineAM })

	return &fixture{svc: svc, alice: alice, bob: bob, conflictID: conflictID, nineAM: nineAM, events: events}
}

func (f *fixture) emails() []string {
	return []string{f.alice.Email, f.bob.Email}
}

func TestFindOptimalTimes_AllAvailableRanksFirst(t *testing.T) {
	f := newFixture()

	suggestions, appErr := f.svc.FindOptimalTimes(context.Background(),
		f.emails(), 60, f.nineAM, f.nineAM.Add(3*time.Hour), 10)
	require.Nil(t, appErr)
	require.Len(t, suggestions, 5) // 9:00, 9:30, 10:00, 10:30, 11:00

	best := suggestions[0]
	assert.Equal(t, 1, best.Rank)
	assert.True(t, best.AllAvailable)
	assert.Equal(t, f.nineAM.Add(time.Hour), best.StartTime)
	assert.Equal(t, float64(100), best.Score)

	for i, s := range suggestions {
		assert.Equal(t, i+1, s.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, suggestions[i-1].Score, s.Score)
		}
		if s.ConflictCount > 0 {
			assert.Less(t, s.Score, best.Score)
		}
	}
}

func TestFindOptimalTimes_TruncatesToMaxSuggestions(t *testing.T) {
	f := newFixture()

	suggestions, appErr := f.svc.FindOptimalTimes(context.Background(),
		f.emails(), 60, f.nineAM, f.nineAM.Add(6*time.Hour), 3)
	require.Nil(t, appErr)
	require.Len(t, suggestions, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{suggestions[0].Rank, suggestions[1].Rank, suggestions[2].Rank})
}

func TestFindOptimalTimes_CancelledContext(t *testing.T) {
	f := newFixture()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	suggestions, appErr := f.svc.FindOptimalTimes(ctx, f.emails(), 60, f.nineAM, f.nineAM.Add(3*time.Hour), 10)
	require.Nil(t, appErr)
	assert.Empty(t, suggestions)
}

func TestFindNextAvailableSlot_ReturnsFirstFreeSlot(t *testing.T) {
	f := newFixture()

	suggestion, appErr := f.svc.FindNextAvailableSlot(context.Background(), f.emails(), 60, &f.nineAM)
	require.Nil(t, appErr)
	require.NotNil(t, suggestion)
	assert.Equal(t, f.nineAM.Add(time.Hour), suggestion.StartTime)
	assert.True(t, suggestion.AllAvailable)
	assert.Equal(t, 1, suggestion.Rank)
}

func TestFindNextAvailableSlot_NilWhenHorizonFullyBooked(t *testing.T) {
	f := newFixture()

	alice := &userEntity.User{Email: "alice@acme.test"}
	alice.ID = f.alice.ID
	busy := &stubBusySource{intervals: map[uuid.UUID][]freebusyDto.BusyInterval{
		f.alice.ID: {{
			StartTime: f.nineAM.AddDate(0, 0, -1),
			EndTime:   f.nineAM.AddDate(0, 0, 3),
			IsBusy:    true,
			EventID:   uuid.New(),
		}},
	}}
	analyzer := availabilityService.NewAvailabilityService(
		&stubDirectory{users: map[string]*userEntity.User{alice.Email: alice}}, busy, testCfg.UnknownPenaltyPct)
	svc := NewSchedulingServiceWithClock(analyzer, f.events, testCfg, func() time.Time { return f.nineAM })

	suggestion, appErr := svc.FindNextAvailableSlot(context.Background(), []string{alice.Email}, 60, &f.nineAM)
	require.Nil(t, appErr)
	assert.Nil(t, suggestion)
}

func TestDetectConflicts(t *testing.T) {
	f := newFixture()

	conflicts, appErr := f.svc.DetectConflicts(context.Background(), f.emails(), f.nineAM, f.nineAM.Add(time.Hour), nil)
	require.Nil(t, appErr)
	require.Len(t, conflicts, 1)
	assert.Equal(t, f.conflictID, conflicts[0].EventID)
	assert.Equal(t, f.alice.Email, conflicts[0].AttendeeEmail)

	conflicts, appErr = f.svc.DetectConflicts(context.Background(), f.emails(), f.nineAM, f.nineAM.Add(time.Hour), &f.conflictID)
	require.Nil(t, appErr)
	assert.Empty(t, conflicts)
}

func TestSuggestAlternativeTimes_ExcludesTheEventItself(t *testing.T) {
	f := newFixture()

	event := &eventEntity.Event{
		ID:        f.conflictID,
		OwnerID:   f.alice.ID,
		Title:     "Design review",
		StartTime: f.nineAM,
		EndTime:   f.nineAM.Add(time.Hour),
	}
	f.events.events[event.ID] = event
	f.events.attendees[event.ID] = f.emails()

	suggestions, appErr := f.svc.SuggestAlternativeTimes(context.Background(), event.ID, 3)
	require.Nil(t, appErr)
	require.Len(t, suggestions, 3)
	for _, s := range suggestions {
		// Alice's only conflict is the event being rescheduled, so every
		// alternative is fully available.
		assert.True(t, s.AllAvailable)
		assert.Equal(t, 0, s.ConflictCount)
	}
}

func TestSuggestAlternativeTimes_NotFound(t *testing.T) {
	f := newFixture()

	_, appErr := f.svc.SuggestAlternativeTimes(context.Background(), uuid.New(), 3)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestIsTimeAvailableForAll(t *testing.T) {
	f := newFixture()

	available, appErr := f.svc.IsTimeAvailableForAll(context.Background(), f.emails(), f.nineAM, f.nineAM.Add(time.Hour))
	require.Nil(t, appErr)
	assert.False(t, available)

	available, appErr = f.svc.IsTimeAvailableForAll(context.Background(), f.emails(), f.nineAM.Add(time.Hour), f.nineAM.Add(2*time.Hour))
	require.Nil(t, appErr)
	assert.True(t, available)
}

func TestIsTimeAvailableForAll_VacuousWithNoAttendees(t *testing.T) {
	f := newFixture()

	available, appErr := f.svc.IsTimeAvailableForAll(context.Background(), nil, f.nineAM, f.nineAM.Add(time.Hour))
	require.Nil(t, appErr)
	assert.True(t, available)
}
