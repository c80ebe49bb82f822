// Package recurrence implements the persisted recurrence descriptor and its
// bounded expansion into concrete occurrence times.
//
// The descriptor is a compact one-line format stored alongside an event:
//
//	FREQ[;BYDAY=D1,D2,...][;UNTIL=<epoch-millis>]
//
// where FREQ is NONE or WEEKLY, the Dn are two-letter weekday codes and UNTIL
// is present iff an end date is set. Unknown fields are rejected, not ignored.
package recurrence

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zemenlab/zemen/internal/ethiopic"
)

type Frequency string

const (
	FreqNone   Frequency = "NONE"
	FreqWeekly Frequency = "WEEKLY"
)

type EndOption string

const (
	EndNever EndOption = "never"
	EndUntil EndOption = "until"
)

// ParseError reports a malformed recurrence descriptor. It is recoverable by
// contract: callers treat the event as non-recurring, they never drop it.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid recurrence descriptor %q: %s", e.Input, e.Reason)
}

// Rule is the canonical recurrence description. WeekDays is empty unless
// Frequency is FreqWeekly; Until is set iff EndOption is EndUntil, normalized
// to millisecond precision in UTC so that serialization round-trips exactly.
type Rule struct {
	Frequency Frequency          `json:"frequency"`
	WeekDays  []ethiopic.Weekday `json:"week_days,omitempty"`
	EndOption EndOption          `json:"end_option"`
	Until     time.Time          `json:"until,omitempty"`
}

// Weekly builds a weekly rule with no end date.
func Weekly(days ...ethiopic.Weekday) Rule {
	r := Rule{Frequency: FreqWeekly, WeekDays: normalizeDays(days), EndOption: EndNever}
	return r
}

// WeeklyUntil builds a weekly rule ending at the given instant (inclusive).
func WeeklyUntil(until time.Time, days ...ethiopic.Weekday) Rule {
	return Rule{
		Frequency: FreqWeekly,
		WeekDays:  normalizeDays(days),
		EndOption: EndUntil,
		Until:     truncateMillis(until),
	}
}

// None is the rule of a non-recurring event.
func None() Rule {
	return Rule{Frequency: FreqNone, EndOption: EndNever}
}

func normalizeDays(days []ethiopic.Weekday) []ethiopic.Weekday {
	seen := map[ethiopic.Weekday]bool{}
	var out []ethiopic.Weekday
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func truncateMillis(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli()).UTC()
}

// Serialize renders the rule in the persisted descriptor format.
func Serialize(r Rule) string {
	var b strings.Builder
	b.WriteString(string(r.Frequency))
	if r.Frequency == FreqWeekly && len(r.WeekDays) > 0 {
		codes := make([]string, len(r.WeekDays))
		for i, d := range r.WeekDays {
			codes[i] = d.Code()
		}
		b.WriteString(";BYDAY=")
		b.WriteString(strings.Join(codes, ","))
	}
	if r.EndOption == EndUntil {
		b.WriteString(";UNTIL=")
		b.WriteString(strconv.FormatInt(r.Until.UnixMilli(), 10))
	}
	return b.String()
}

// Deserialize is the exact inverse of Serialize. Malformed input fails with
// *ParseError and never panics; the documented degraded behavior (treat the
// event as non-recurring) belongs to the caller, not here.
func Deserialize(s string) (Rule, error) {
	fail := func(reason string) (Rule, error) {
		return Rule{}, &ParseError{Input: s, Reason: reason}
	}

	parts := strings.Split(s, ";")
	if parts[0] == "" {
		return fail("empty descriptor")
	}

	var rule Rule
	switch Frequency(parts[0]) {
	case FreqNone:
		rule.Frequency = FreqNone
	case FreqWeekly:
		rule.Frequency = FreqWeekly
	default:
		return fail(fmt.Sprintf("unknown frequency %q", parts[0]))
	}
	rule.EndOption = EndNever

	seen := map[string]bool{}
	for _, part := range parts[1:] {
		key, value, found := strings.Cut(part, "=")
		if !found || value == "" {
			return fail(fmt.Sprintf("malformed field %q", part))
		}
		if seen[key] {
			return fail(fmt.Sprintf("duplicate field %q", key))
		}
		seen[key] = true

		switch key {
		case "BYDAY":
			if rule.Frequency != FreqWeekly {
				return fail("BYDAY is only valid for WEEKLY")
			}
			for _, code := range strings.Split(value, ",") {
				day, err := ethiopic.ParseWeekdayCode(code)
				if err != nil {
					return fail(fmt.Sprintf("bad weekday token %q", code))
				}
				rule.WeekDays = append(rule.WeekDays, day)
			}
			rule.WeekDays = normalizeDays(rule.WeekDays)
		case "UNTIL":
			millis, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fail(fmt.Sprintf("non-numeric UNTIL %q", value))
			}
			rule.EndOption = EndUntil
			rule.Until = time.UnixMilli(millis).UTC()
		default:
			return fail(fmt.Sprintf("unknown field %q", key))
		}
	}

	return rule, nil
}

// Equal compares rules by value, including the until instant.
func (r Rule) Equal(o Rule) bool {
	if r.Frequency != o.Frequency || r.EndOption != o.EndOption {
		return false
	}
	if len(r.WeekDays) != len(o.WeekDays) {
		return false
	}
	for i := range r.WeekDays {
		if r.WeekDays[i] != o.WeekDays[i] {
			return false
		}
	}
	if r.EndOption == EndUntil && !r.Until.Equal(o.Until) {
		return false
	}
	return true
}

// IsRecurring reports whether the rule produces more than a single occurrence.
func (r Rule) IsRecurring() bool {
	return r.Frequency != FreqNone
}

// Value persists the rule as its descriptor string. A nil rule stores NULL,
// so an optional recurrence column binds directly to a *Rule.
func (r *Rule) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return Serialize(*r), nil
}
