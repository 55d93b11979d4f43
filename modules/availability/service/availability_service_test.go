package service

import (
	"context"
	"testing"
	"time"

	"tempus/core/errors"
	freebusyDto "tempus/modules/freebusy/dto"
	userEntity "tempus/modules/user/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	users map[string]*userEntity.User
}

func (f *fakeDirectory) ResolveUserByEmail(ctx context.Context, email string) (*userEntity.User, error) {
	return f.users[email], nil
}

type fakeBusySource struct {
	intervals map[uuid.UUID][]freebusyDto.BusyInterval
}

func (f *fakeBusySource) GetBusyIntervals(ctx context.Context, userID, requestingUserID uuid.UUID, start, end time.Time, includeDetails bool) ([]freebusyDto.BusyInterval, *errors.AppError) {
	return f.intervals[userID], nil
}

func busyBlock(eventID uuid.UUID, start time.Time, d time.Duration) freebusyDto.BusyInterval {
	return freebusyDto.BusyInterval{
		StartTime: start,
		EndTime:   start.Add(d),
		IsBusy:    true,
		EventID:   eventID,
	}
}

func threeAttendeeFixture() (AvailabilityServiceInterface, []string, uuid.UUID, time.Time) {
	alice := &userEntity.User{Email: "alice@acme.test"}
	alice.ID = uuid.New()
	bob := &userEntity.User{Email: "bob@acme.test"}
	bob.ID = uuid.New()
	carol := &userEntity.User{Email: "carol@acme.test"}
	carol.ID = uuid.New()

	nineAM := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	conflictID := uuid.New()

	directory := &fakeDirectory{users: map[string]*userEntity.User{
		alice.Email: alice,
		bob.Email:   bob,
		carol.Email: carol,
	}}
	busy := &fakeBusySource{intervals: map[uuid.UUID][]freebusyDto.BusyInterval{
		alice.ID: {busyBlock(conflictID, nineAM, time.Hour)},
	}}

	svc := NewAvailabilityService(directory, busy, 20)
	return svc, []string{alice.Email, bob.Email, carol.Email}, conflictID, nineAM
}

func TestAnalyzeSlot_OneOfThreeBusy(t *testing.T) {
	svc, emails, conflictID, nineAM := threeAttendeeFixture()

	slot, appErr := svc.AnalyzeSlot(context.Background(), emails, nineAM, nineAM.Add(time.Hour))
	require.Nil(t, appErr)

	assert.Equal(t, 3, slot.TotalAttendees)
	assert.Equal(t, 2, slot.AvailableAttendees)
	assert.Equal(t, 1, slot.BusyAttendees)
	assert.Equal(t, 0, slot.UnknownAttendees)
	assert.Equal(t, slot.TotalAttendees, slot.AvailableAttendees+slot.BusyAttendees+slot.UnknownAttendees)
	assert.InDelta(t, 66.67, slot.AvailabilityPercentage, 0.01)
	assert.False(t, slot.AllAvailable)

	require.Len(t, slot.ConflictingEvents, 1)
	assert.Equal(t, conflictID, slot.ConflictingEvents[0].EventID)
	assert.Equal(t, "alice@acme.test", slot.ConflictingEvents[0].AttendeeEmail)
	assert.Equal(t, []string{"alice@acme.test"}, slot.BusyEmails)
}

func TestAnalyzeSlot_ZeroAttendees(t *testing.T) {
	svc := NewAvailabilityService(&fakeDirectory{}, &fakeBusySource{}, 20)

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	slot, appErr := svc.AnalyzeSlot(context.Background(), nil, start, start.Add(time.Hour))
	require.Nil(t, appErr)

	assert.Equal(t, 0, slot.TotalAttendees)
	assert.Equal(t, float64(0), slot.AvailabilityPercentage)
	assert.Equal(t, float64(0), slot.QualityScore)
	assert.True(t, slot.AllAvailable)
}

func TestAnalyzeSlot_UnknownAttendeePenalty(t *testing.T) {
	svc, _, _, nineAM := threeAttendeeFixture()

	slot, appErr := svc.AnalyzeSlot(context.Background(),
		[]string{"ghost@nowhere.test", "bob@acme.test", "carol@acme.test"},
		nineAM, nineAM.Add(time.Hour))
	require.Nil(t, appErr)

	assert.Equal(t, 3, slot.TotalAttendees)
	assert.Equal(t, 2, slot.AvailableAttendees)
	assert.Equal(t, 1, slot.UnknownAttendees)
	assert.Equal(t, []string{"ghost@nowhere.test"}, slot.UnknownEmails)
	assert.InDelta(t, 66.67, slot.AvailabilityPercentage, 0.01)
	// One unknown of three costs a third of the 20-point penalty.
	assert.InDelta(t, 60.0, slot.QualityScore, 0.01)
	assert.False(t, slot.AllAvailable)
}

func TestAnalyzeSlot_QualityScoreBounds(t *testing.T) {
	svc, emails, _, nineAM := threeAttendeeFixture()

	for hour := 0; hour < 12; hour++ {
		start := nineAM.Add(time.Duration(hour-4) * time.Hour)
		slot, appErr := svc.AnalyzeSlot(context.Background(), emails, start, start.Add(time.Hour))
		require.Nil(t, appErr)
		assert.GreaterOrEqual(t, slot.QualityScore, float64(0))
		assert.LessOrEqual(t, slot.QualityScore, float64(100))
		assert.Equal(t, slot.TotalAttendees, slot.AvailableAttendees+slot.BusyAttendees+slot.UnknownAttendees)
	}
}

func TestAnalyzeSlotExcluding_IgnoresExcludedEvent(t *testing.T) {
	svc, emails, conflictID, nineAM := threeAttendeeFixture()

	slot, appErr := svc.AnalyzeSlotExcluding(context.Background(), emails, nineAM, nineAM.Add(time.Hour), &conflictID)
	require.Nil(t, appErr)

	assert.Equal(t, 3, slot.AvailableAttendees)
	assert.Equal(t, 0, slot.BusyAttendees)
	assert.True(t, slot.AllAvailable)
	assert.Empty(t, slot.ConflictingEvents)
}

func TestAnalyzeGrid_PartitionsRange(t *testing.T) {
	svc, emails, _, nineAM := threeAttendeeFixture()

	grid, appErr := svc.AnalyzeGrid(context.Background(), emails, nineAM, nineAM.Add(90*time.Minute), 30)
	require.Nil(t, appErr)
	require.Len(t, grid, 3)

	for i, slot := range grid {
		assert.Equal(t, nineAM.Add(time.Duration(i)*30*time.Minute), slot.StartTime)
		assert.Equal(t, slot.StartTime.Add(30*time.Minute), slot.EndTime)
	}

	// The first two slots fall inside alice's 9-10 meeting, the third does not.
	assert.Equal(t, 1, grid[0].BusyAttendees)
	assert.Equal(t, 1, grid[1].BusyAttendees)
	assert.Equal(t, 0, grid[2].BusyAttendees)
}

func TestAnalyzeGrid_ExcludesTrailingPartialSlot(t *testing.T) {
	svc, emails, _, nineAM := threeAttendeeFixture()

	grid, appErr := svc.AnalyzeGrid(context.Background(), emails, nineAM, nineAM.Add(100*time.Minute), 30)
	require.Nil(t, appErr)
	assert.Len(t, grid, 3)
}
