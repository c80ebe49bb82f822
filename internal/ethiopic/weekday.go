package ethiopic

import "fmt"

// Weekday is a day of the week, Monday-first. The integer values are stable
// and used for calendar arithmetic and grid alignment; display names belong
// to the presentation layer.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayCodes = [7]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// Code returns the two-letter code used in persisted recurrence descriptors.
func (w Weekday) Code() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayCodes[w]
}

func (w Weekday) String() string {
	return w.Code()
}

// ParseWeekdayCode parses a two-letter weekday code (MO..SU).
func ParseWeekdayCode(code string) (Weekday, error) {
	for i, c := range weekdayCodes {
		if c == code {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday code: %q", code)
}
