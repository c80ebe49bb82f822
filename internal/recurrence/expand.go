package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/zemenlab/zemen/internal/ethiopic"
)

// DefaultHorizonYears bounds expansion of open-ended rules when the caller
// supplies no window end. Without it a never-ending rule would not terminate.
const DefaultHorizonYears = 5

// Window bounds an expansion to [Start, End], both inclusive. A zero field is
// unbounded; the zero Window is the null filter.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}

var rruleWeekdays = map[ethiopic.Weekday]rrule.Weekday{
	ethiopic.Monday:    rrule.MO,
	ethiopic.Tuesday:   rrule.TU,
	ethiopic.Wednesday: rrule.WE,
	ethiopic.Thursday:  rrule.TH,
	ethiopic.Friday:    rrule.FR,
	ethiopic.Saturday:  rrule.SA,
	ethiopic.Sunday:    rrule.SU,
}

// Occurrences expands the rule anchored at start into the chronological,
// duplicate-free list of occurrence start instants inside the window.
//
// A FreqNone rule yields the anchor itself when the window admits it. A
// weekly rule yields one occurrence per matching weekday, never past the
// rule's until instant, never past the window end, and never past the
// expansion horizon for open-ended unbounded expansions.
func Occurrences(r Rule, start time.Time, window Window) ([]time.Time, error) {
	if r.Frequency == FreqNone {
		if window.contains(start) {
			return []time.Time{start}, nil
		}
		return nil, nil
	}

	lo := start
	if window.Start.After(lo) {
		lo = window.Start
	}

	hi := start.AddDate(DefaultHorizonYears, 0, 0)
	if !window.End.IsZero() && window.End.Before(hi) {
		hi = window.End
	}
	if r.EndOption == EndUntil && r.Until.Before(hi) {
		hi = r.Until
	}

	days := make([]rrule.Weekday, len(r.WeekDays))
	for i, d := range r.WeekDays {
		days[i] = rruleWeekdays[d]
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   start,
		Byweekday: days,
	})
	if err != nil {
		return nil, fmt.Errorf("building weekly rule: %w", err)
	}

	return rule.Between(lo, hi, true), nil
}
