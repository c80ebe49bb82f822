package ethiopic

import (
	"fmt"
	"time"
)

// GregorianDate is a civil date in the proleptic Gregorian calendar. It is the
// interchange type at the conversion boundary; instants stay time.Time.
type GregorianDate struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// GregorianFromTime extracts the civil date of t in t's own location.
func GregorianFromTime(t time.Time) GregorianDate {
	y, m, d := t.Date()
	return GregorianDate{Year: y, Month: m, Day: d}
}

// ParseGregorian parses a YYYY-MM-DD civil date.
func ParseGregorian(s string) (GregorianDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return GregorianDate{}, fmt.Errorf("invalid gregorian date %q: %w", s, err)
	}
	return GregorianFromTime(t), nil
}

// StartOfDay returns midnight of g in loc.
func (g GregorianDate) StartOfDay(loc *time.Location) time.Time {
	return time.Date(g.Year, g.Month, g.Day, 0, 0, 0, 0, loc)
}

// EndOfDay returns the last representable instant of g in loc.
func (g GregorianDate) EndOfDay(loc *time.Location) time.Time {
	return time.Date(g.Year, g.Month, g.Day, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
}

func (g GregorianDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", g.Year, int(g.Month), g.Day)
}

// Compare orders civil dates chronologically: -1, 0 or +1.
func (g GregorianDate) Compare(o GregorianDate) int {
	a, b := g.jdn(), o.jdn()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// jdn of 1970-01-01, the pivot between the two closed-form conversions.
const unixEpochJDN = 2440588

// jdn converts the civil date to a Julian day number using the era-based
// closed form, valid across the whole proleptic calendar.
func (g GregorianDate) jdn() int {
	y := g.Year
	if g.Month <= time.February {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (int(g.Month) + 9) % 12
	doy := (153*mp+2)/5 + g.Day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468 + unixEpochJDN
}

// gregorianFromJDN is the exact inverse of GregorianDate.jdn.
func gregorianFromJDN(jdn int) GregorianDate {
	z := jdn - unixEpochJDN + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return GregorianDate{Year: y, Month: time.Month(m), Day: d}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
