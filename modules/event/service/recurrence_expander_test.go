package service

import (
	"testing"
	"time"

	"tempus/modules/event/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testExpander() *RecurrenceExpander {
	return NewRecurrenceExpanderWithClock(func() time.Time { return testNow })
}

func dailyTemplate(interval int) *entity.Event {
	// Monday 2025-06-02, 09:00-10:00 UTC
	return &entity.Event{
		ID:                 uuid.New(),
		OwnerID:            uuid.New(),
		Title:              "Standup",
		StartTime:          time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		EndTime:            time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		IsRecurring:        true,
		RecurrencePattern:  entity.RecurrenceDaily,
		RecurrenceInterval: interval,
	}
}

func TestExpand_NonRecurring(t *testing.T) {
	template := dailyTemplate(1)
	template.IsRecurring = false
	template.RecurrencePattern = entity.RecurrenceNone

	instances := testExpander().Expand(template,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), 100)

	require.Len(t, instances, 1)
	assert.Equal(t, template.ID, instances[0].ID)
	assert.Equal(t, template.StartTime, instances[0].StartTime)
	assert.Equal(t, template.EndTime, instances[0].EndTime)
}

func TestExpand_DailySpacing(t *testing.T) {
	template := dailyTemplate(2)

	instances := testExpander().Expand(template,
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), 100)

	require.Len(t, instances, 6) // Jun 2, 4, 6, 8, 10, 12
	for i, inst := range instances {
		expected := template.StartTime.AddDate(0, 0, 2*i)
		assert.Equal(t, expected, inst.StartTime)
		assert.Equal(t, expected.Add(time.Hour), inst.EndTime)
		assert.Equal(t, 9, inst.StartTime.Hour())
		assert.False(t, inst.IsRecurring)
		require.NotNil(t, inst.RecurrenceParentID)
		assert.Equal(t, template.ID, *inst.RecurrenceParentID)
		assert.NotEqual(t, template.ID, inst.ID)
	}
}

func TestExpand_MaxInstancesCap(t *testing.T) {
	template := dailyTemplate(1)

	instances := testExpander().Expand(template,
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 5)

	assert.Len(t, instances, 5)
}

func TestExpand_WeeklyWeekdayFilter(t *testing.T) {
	template := dailyTemplate(1)
	template.RecurrencePattern = entity.RecurrenceWeekly
	template.RecurrenceDays = entity.WeekdaySet{time.Monday, time.Wednesday, time.Friday}

	instances := testExpander().Expand(template,
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 100)

	require.NotEmpty(t, instances)
	for _, inst := range instances {
		assert.Contains(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, inst.StartTime.Weekday())
	}
}

func TestExpand_WeeklyFilterSuppressesAllEmissions(t *testing.T) {
	// Template starts on a Monday; stepping by whole weeks never lands on a
	// Wednesday, so the filter suppresses every iteration.
	template := dailyTemplate(1)
	template.RecurrencePattern = entity.RecurrenceWeekly
	template.RecurrenceDays = entity.WeekdaySet{time.Wednesday}

	instances := testExpander().Expand(template,
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), 100)

	assert.Empty(t, instances)
}

func TestExpand_AfterOccurrencesCountsPeriodsNotEmissions(t *testing.T) {
	// The occurrence counter advances on every period even when the weekday
	// filter suppresses the emission, so a count-limited weekly template can
	// emit fewer instances than its count.
	count := 3
	template := dailyTemplate(1)
	template.RecurrencePattern = entity.RecurrenceWeekly
	template.RecurrenceDays = entity.WeekdaySet{time.Wednesday}
	template.RecurrenceCount = &count

	instances := testExpander().Expand(template,
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), 100)
	assert.Empty(t, instances)

	daily := dailyTemplate(1)
	daily.RecurrenceCount = &count
	instances = testExpander().Expand(daily,
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), 100)
	assert.Len(t, instances, 3)
}

func TestExpand_OnDateEndCondition(t *testing.T) {
	endDate := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	template := dailyTemplate(1)
	template.RecurrenceEndDate = &endDate

	instances := testExpander().Expand(template,
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), 100)

	require.Len(t, instances, 5) // Jun 2..6
	assert.Equal(t, time.Date(2025, 6, 6, 9, 0, 0, 0, time.UTC), instances[4].StartTime)
}

func TestExpand_EarlyIterationsConsumeBudget(t *testing.T) {
	// Iterations before the window are skipped but still spend occurrence
	// budget.
	template := dailyTemplate(1)

	instances := testExpander().Expand(template,
		time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), 10)

	require.Len(t, instances, 7) // 10 iterations Jun 2..11, emitted Jun 5..11
	assert.Equal(t, time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC), instances[0].StartTime)
	assert.Equal(t, time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC), instances[6].StartTime)
}

func TestExpand_TenYearSafetyCap(t *testing.T) {
	template := dailyTemplate(1)
	template.RecurrencePattern = entity.RecurrenceYearly

	instances := testExpander().Expand(template,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC), 100000)

	assert.LessOrEqual(t, len(instances), 11)
	for _, inst := range instances {
		assert.False(t, inst.StartTime.After(testNow.AddDate(10, 0, 0)))
	}
}

func TestExpand_FreshIdentitiesAcrossCalls(t *testing.T) {
	template := dailyTemplate(1)
	rangeStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	first := testExpander().Expand(template, rangeStart, rangeEnd, 100)
	second := testExpander().Expand(template, rangeStart, rangeEnd, 100)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.NotEqual(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].StartTime, second[i].StartTime)
		assert.Equal(t, first[i].EndTime, second[i].EndTime)
		assert.Equal(t, first[i].Title, second[i].Title)
	}
}

func TestDescribe(t *testing.T) {
	x := testExpander()

	plain := dailyTemplate(1)
	plain.IsRecurring = false
	plain.RecurrencePattern = entity.RecurrenceNone
	assert.Equal(t, "Does not repeat", x.Describe(plain))

	daily := dailyTemplate(1)
	assert.Equal(t, "Repeats daily", x.Describe(daily))

	weekly := dailyTemplate(2)
	weekly.RecurrencePattern = entity.RecurrenceWeekly
	weekly.RecurrenceDays = entity.WeekdaySet{time.Monday, time.Wednesday}
	assert.Equal(t, "Repeats every 2 weeks on Mon, Wed", x.Describe(weekly))

	count := 5
	monthly := dailyTemplate(1)
	monthly.RecurrencePattern = entity.RecurrenceMonthly
	monthly.RecurrenceCount = &count
	assert.Equal(t, "Repeats monthly, 5 times", x.Describe(monthly))

	until := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	yearly := dailyTemplate(1)
	yearly.RecurrencePattern = entity.RecurrenceYearly
	yearly.RecurrenceEndDate = &until
	assert.Equal(t, "Repeats yearly, until Jan 2, 2026", x.Describe(yearly))
}
