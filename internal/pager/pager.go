// Package pager maps a bounded page index onto Ethiopian calendar months and
// renders month grids in either calendar's orientation. Pages are a strict
// bijection onto year/month pairs: moving one page moves exactly one month,
// wrapping the year at the 13/1 boundary.
package pager

import (
	"errors"
	"fmt"
	"time"

	"github.com/zemenlab/zemen/internal/ethiopic"
)

// Pages cover Ethiopian years MinYear..MaxYear, month-granular. Page 0 is
// Meskerem of MinYear.
const (
	MinYear    = 1800
	MaxYear    = 2299
	TotalPages = (MaxYear - MinYear + 1) * ethiopic.MonthsPerYear
)

// ErrPageOutOfRange reports a page index outside [0, TotalPages). It is
// surfaced to the caller, never silently clamped or wrapped.
var ErrPageOutOfRange = errors.New("pager: page out of range")

// PageForDate returns the page whose month contains the date.
func PageForDate(d ethiopic.Date) (int, error) {
	if d.Year < MinYear || d.Year > MaxYear {
		return 0, fmt.Errorf("%w: year %d outside %d..%d", ErrPageOutOfRange, d.Year, MinYear, MaxYear)
	}
	return (d.Year-MinYear)*ethiopic.MonthsPerYear + d.Month - 1, nil
}

// DateForPage returns the first day of the page's month. Inverse of
// PageForDate over the valid page range.
func DateForPage(page int) (ethiopic.Date, error) {
	if page < 0 || page >= TotalPages {
		return ethiopic.Date{}, fmt.Errorf("%w: %d not in [0, %d)", ErrPageOutOfRange, page, TotalPages)
	}
	return ethiopic.Date{
		Year:  MinYear + page/ethiopic.MonthsPerYear,
		Month: page%ethiopic.MonthsPerYear + 1,
		Day:   1,
	}, nil
}

// TodayPage returns the page whose month contains today, as resolved from the
// injected clock reading.
func TodayPage(now time.Time) (int, error) {
	return PageForDate(ethiopic.Today(now))
}
