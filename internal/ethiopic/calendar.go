// Package ethiopic implements the 13-month Ethiopian civil calendar and its
// conversion to and from the proleptic Gregorian calendar. Both calendars are
// mapped onto a single linear day count (Julian day numbers) with closed-form
// arithmetic, so conversion is O(1) and round-trips exactly.
package ethiopic

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidMonth reports a month outside 1..13.
	ErrInvalidMonth = errors.New("ethiopic: month out of range")
	// ErrInvalidDate reports a day outside the month's length.
	ErrInvalidDate = errors.New("ethiopic: invalid date")
)

// MonthsPerYear includes Pagume, the short thirteenth month.
const MonthsPerYear = 13

// jdn of the day before Meskerem 1, year 1 (Amete Mihret epoch).
const ethiopicEpochJDN = 1723856

// Date is an immutable Ethiopian calendar date. Construct with Of,
// FromGregorian or Today; the zero value is not a valid date.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// IsLeapYear reports whether year has a 6-day Pagume. Every fourth Ethiopian
// year is leap; the cycle is aligned so that year mod 4 == 3 qualifies.
func IsLeapYear(year int) bool {
	return floorMod(year, 4) == 3
}

// MonthLength returns the number of days in the given month: 30 for months
// 1..12, and 5 or 6 for Pagume depending on the leap rule.
func MonthLength(year, month int) (int, error) {
	if month < 1 || month > MonthsPerYear {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	if month < MonthsPerYear {
		return 30, nil
	}
	if IsLeapYear(year) {
		return 6, nil
	}
	return 5, nil
}

// Of constructs a validated Date.
func Of(year, month, day int) (Date, error) {
	length, err := MonthLength(year, month)
	if err != nil {
		return Date{}, err
	}
	if day < 1 || day > length {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d (month has %d days)", ErrInvalidDate, year, month, day, length)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// FromGregorian converts a Gregorian civil date.
func FromGregorian(g GregorianDate) Date {
	return fromJDN(g.jdn())
}

// ToGregorian converts to the Gregorian civil date of the same instant.
// Inverse of FromGregorian for every representable date.
func (d Date) ToGregorian() GregorianDate {
	return gregorianFromJDN(d.jdn())
}

// Today derives the current Ethiopian date from a caller-supplied clock
// reading. The engine never reads wall clocks itself.
func Today(now time.Time) Date {
	return FromGregorian(GregorianFromTime(now))
}

func (d Date) jdn() int {
	return ethiopicEpochJDN + 365 + 365*(d.Year-1) + floorDiv(d.Year, 4) + 30*(d.Month-1) + d.Day - 1
}

func fromJDN(jdn int) Date {
	since := jdn - ethiopicEpochJDN
	r := floorMod(since, 1461)
	n := floorMod(r, 365) + 365*(r/1460)
	year := 4*floorDiv(since, 1461) + r/365 - r/1460
	return Date{Year: year, Month: n/30 + 1, Day: floorMod(n, 30) + 1}
}

// AddDays walks the linear day count; the result is always a valid date.
func (d Date) AddDays(n int) Date {
	return fromJDN(d.jdn() + n)
}

// AddMonths moves whole months, wrapping the year at the 1/13 boundary and
// clamping the day to the destination month's length.
func (d Date) AddMonths(n int) Date {
	months := (d.Year*MonthsPerYear + d.Month - 1) + n
	year := floorDiv(months, MonthsPerYear)
	month := floorMod(months, MonthsPerYear) + 1
	day := d.Day
	if length, _ := MonthLength(year, month); day > length {
		day = length
	}
	return Date{Year: year, Month: month, Day: day}
}

// FirstOfMonth returns day 1 of the same month.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// LastOfMonth returns the last day of the same month.
func (d Date) LastOfMonth() Date {
	length, _ := MonthLength(d.Year, d.Month)
	return Date{Year: d.Year, Month: d.Month, Day: length}
}

// Weekday derives the day of the week from the linear day count. The day
// count is anchored so that day 0 is a Monday, which calibrates Ethiopian
// weekdays against the Gregorian weekday of the same instant.
func (d Date) Weekday() Weekday {
	return Weekday(floorMod(d.jdn(), 7))
}

// Compare orders dates chronologically, the same linear order as their
// Gregorian equivalents: -1, 0 or +1.
func (d Date) Compare(o Date) int {
	a, b := d.jdn(), o.jdn()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
