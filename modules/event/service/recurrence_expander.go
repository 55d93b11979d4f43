package service

import (
	"fmt"
	"strings"
	"time"

	"tempus/core/constants"
	"tempus/modules/event/entity"

	"github.com/google/uuid"
)

// RecurrenceExpander turns a recurring event template into concrete
// occurrences for a date range. Occurrences are ephemeral: they get a fresh
// identity on every call and are never persisted.
type RecurrenceExpander struct {
	now func() time.Time
}

func NewRecurrenceExpander() *RecurrenceExpander {
	return &RecurrenceExpander{now: time.Now}
}

// NewRecurrenceExpanderWithClock injects the clock behind the expansion
// safety cap so tests stay deterministic.
func NewRecurrenceExpanderWithClock(now func() time.Time) *RecurrenceExpander {
	return &RecurrenceExpander{now: now}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Expand generates the template's occurrences whose date falls within
// [rangeStart, rangeEnd]. A non-recurring template expands to itself.
//
// The generation loop advances one period per iteration and stops when the
// occurrence counter reaches maxInstances, the template's end condition is
// met, the candidate date passes rangeEnd, or the candidate date passes a
// ten-year horizon. For weekly templates with an explicit weekday set, the
// set filters which iterations are emitted but the counter advances on every
// iteration, so a count-limited weekly template counts periods, not emitted
// occurrences.
func (x *RecurrenceExpander) Expand(template *entity.Event, rangeStart, rangeEnd time.Time, maxInstances int) []entity.Event {
	if !template.IsRecurring || template.RecurrencePattern == entity.RecurrenceNone {
		return []entity.Event{*template}
	}

	if maxInstances <= 0 {
		maxInstances = constants.DefaultMaxInstances
	}
	interval := template.RecurrenceInterval
	if interval < 1 {
		interval = 1
	}

	duration := template.Duration()
	windowStart := dateOf(rangeStart)
	windowEnd := dateOf(rangeEnd)
	horizon := x.now().AddDate(constants.ExpansionHorizonYears, 0, 0)

	instances := []entity.Event{}
	current := template.StartTime
	count := 0

	for {
		if count >= maxInstances {
			break
		}
		if template.RecurrenceCount != nil && count >= *template.RecurrenceCount {
			break
		}
		if template.RecurrenceEndDate != nil && dateOf(current).After(dateOf(*template.RecurrenceEndDate)) {
			break
		}
		if dateOf(current).After(windowEnd) {
			break
		}
		if current.After(horizon) {
			break
		}

		if !dateOf(current).Before(windowStart) && x.matchesWeekdayFilter(template, current) {
			instances = append(instances, x.materialize(template, current, duration))
		}

		count++
		current = x.step(template.RecurrencePattern, current, interval)
	}

	return instances
}

func (x *RecurrenceExpander) matchesWeekdayFilter(template *entity.Event, candidate time.Time) bool {
	if template.RecurrencePattern != entity.RecurrenceWeekly || len(template.RecurrenceDays) == 0 {
		return true
	}
	return template.RecurrenceDays.Contains(candidate.Weekday())
}

func (x *RecurrenceExpander) step(pattern entity.RecurrencePattern, current time.Time, interval int) time.Time {
	switch pattern {
	case entity.RecurrenceDaily:
		return current.AddDate(0, 0, interval)
	case entity.RecurrenceWeekly:
		return current.AddDate(0, 0, 7*interval)
	case entity.RecurrenceMonthly:
		return current.AddDate(0, interval, 0)
	case entity.RecurrenceYearly:
		return current.AddDate(interval, 0, 0)
	default:
		return current.AddDate(0, 0, 1)
	}
}

func (x *RecurrenceExpander) materialize(template *entity.Event, start time.Time, duration time.Duration) entity.Event {
	parentID := template.ID
	return entity.Event{
		ID:                 uuid.New(),
		OwnerID:            template.OwnerID,
		Title:              template.Title,
		Slug:               template.Slug,
		Description:        template.Description,
		Location:           template.Location,
		Tags:               template.Tags,
		Color:              template.Color,
		StartTime:          start,
		EndTime:            start.Add(duration),
		IsRecurring:        false,
		RecurrencePattern:  entity.RecurrenceNone,
		RecurrenceParentID: &parentID,
		ExternalCalendarID: template.ExternalCalendarID,
		IsCompleted:        template.IsCompleted,
		IsPrivate:          template.IsPrivate,
		CreatedAt:          template.CreatedAt,
		UpdatedAt:          template.UpdatedAt,
	}
}

var weekdayAbbrev = map[time.Weekday]string{
	time.Sunday:    "Sun",
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
}

// Describe renders a template's recurrence rule for display, e.g.
// "Repeats every 2 weeks on Mon, Wed" or "Does not repeat".
func (x *RecurrenceExpander) Describe(template *entity.Event) string {
	if !template.IsRecurring || template.RecurrencePattern == entity.RecurrenceNone {
		return "Does not repeat"
	}

	interval := template.RecurrenceInterval
	if interval < 1 {
		interval = 1
	}

	var b strings.Builder
	switch template.RecurrencePattern {
	case entity.RecurrenceDaily:
		if interval == 1 {
			b.WriteString("Repeats daily")
		} else {
			fmt.Fprintf(&b, "Repeats every %d days", interval)
		}
	case entity.RecurrenceWeekly:
		if interval == 1 {
			b.WriteString("Repeats weekly")
		} else {
			fmt.Fprintf(&b, "Repeats every %d weeks", interval)
		}
		if len(template.RecurrenceDays) > 0 {
			names := make([]string, len(template.RecurrenceDays))
			for i, d := range template.RecurrenceDays {
				names[i] = weekdayAbbrev[d]
			}
			b.WriteString(" on ")
			b.WriteString(strings.Join(names, ", "))
		}
	case entity.RecurrenceMonthly:
		if interval == 1 {
			b.WriteString("Repeats monthly")
		} else {
			fmt.Fprintf(&b, "Repeats every %d months", interval)
		}
	case entity.RecurrenceYearly:
		if interval == 1 {
			b.WriteString("Repeats yearly")
		} else {
			fmt.Fprintf(&b, "Repeats every %d years", interval)
		}
	default:
		b.WriteString("Repeats")
	}

	if template.RecurrenceCount != nil {
		fmt.Fprintf(&b, ", %d times", *template.RecurrenceCount)
	} else if template.RecurrenceEndDate != nil {
		fmt.Fprintf(&b, ", until %s", template.RecurrenceEndDate.Format("Jan 2, 2006"))
	}

	return b.String()
}
