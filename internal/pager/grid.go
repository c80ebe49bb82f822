package pager

import (
	"time"

	"github.com/zemenlab/zemen/internal/ethiopic"
	"github.com/zemenlab/zemen/internal/holidays"
)

// Calendar selects which calendar's month boundary defines "current month"
// in a grid.
type Calendar string

const (
	CalendarEthiopic  Calendar = "ethiopic"
	CalendarGregorian Calendar = "gregorian"
)

// Cell is one slot of a 7-wide month grid. Date is nil for edge slots when
// adjacent-month days are hidden. SecondaryDay is only set when dual numbers
// were requested, so "not shown" is distinguishable from any real day number.
type Cell struct {
	Date           *ethiopic.Date        `json:"date,omitempty"`
	IsCurrentMonth bool                  `json:"is_current_month"`
	PrimaryDay     int                   `json:"primary_day,omitempty"`
	SecondaryDay   *int                  `json:"secondary_day,omitempty"`
	IsToday        bool                  `json:"is_today"`
	Holidays       []holidays.Occurrence `json:"holidays,omitempty"`
	HasEvents      bool                  `json:"has_events"`
}

// Week is one grid row, Monday-first. The ordering is a fixed constant of the
// grid, not inferred from locale.
type Week [7]Cell

// GridOptions configures BuildGrid.
type GridOptions struct {
	Primary          Calendar
	ShowDualNumbers  bool
	ShowAdjacentDays bool
	// Holidays and EventDays annotate cells by Ethiopian date; both may be nil.
	Holidays  map[ethiopic.Date][]holidays.Occurrence
	EventDays map[ethiopic.Date]bool
}

// BuildGrid renders the page's month as complete Monday-first weeks: leading
// and trailing slots align day 1 to its weekday and fill the last row. With a
// Gregorian primary, the Gregorian month containing the page's anchor defines
// the boundaries and the current-month criterion, while cells stay keyed by
// Ethiopian date.
func BuildGrid(page int, now time.Time, opts GridOptions) ([]Week, error) {
	anchor, err := DateForPage(page)
	if err != nil {
		return nil, err
	}
	if opts.Primary == CalendarGregorian {
		return buildGregorianGrid(anchor, now, opts), nil
	}
	return buildEthiopicGrid(anchor, now, opts), nil
}

func buildEthiopicGrid(first ethiopic.Date, now time.Time, opts GridOptions) []Week {
	length := first.LastOfMonth().Day
	lead := int(first.Weekday())
	today := ethiopic.Today(now)

	rows := (lead + length + 6) / 7
	weeks := make([]Week, rows)
	for i := 0; i < rows*7; i++ {
		date := first.AddDays(i - lead)
		current := i >= lead && i < lead+length

		var secondary *int
		if opts.ShowDualNumbers {
			day := date.ToGregorian().Day
			secondary = &day
		}
		weeks[i/7][i%7] = makeCell(date, date.Day, secondary, current, today, opts)
	}
	return weeks
}

func buildGregorianGrid(anchor ethiopic.Date, now time.Time, opts GridOptions) []Week {
	g := anchor.ToGregorian()
	firstG := ethiopic.GregorianDate{Year: g.Year, Month: g.Month, Day: 1}
	// Day 0 of the next month is the last day of this one.
	length := time.Date(g.Year, g.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	lead := (int(firstG.StartOfDay(time.UTC).Weekday()) + 6) % 7
	today := ethiopic.Today(now)

	first := ethiopic.FromGregorian(firstG)
	rows := (lead + length + 6) / 7
	weeks := make([]Week, rows)
	for i := 0; i < rows*7; i++ {
		date := first.AddDays(i - lead)
		cellG := date.ToGregorian()
		current := cellG.Year == g.Year && cellG.Month == g.Month

		var secondary *int
		if opts.ShowDualNumbers {
			day := date.Day
			secondary = &day
		}
		weeks[i/7][i%7] = makeCell(date, cellG.Day, secondary, current, today, opts)
	}
	return weeks
}

func makeCell(date ethiopic.Date, primary int, secondary *int, current bool, today ethiopic.Date, opts GridOptions) Cell {
	if !current && !opts.ShowAdjacentDays {
		return Cell{}
	}
	d := date
	return Cell{
		Date:           &d,
		IsCurrentMonth: current,
		PrimaryDay:     primary,
		SecondaryDay:   secondary,
		IsToday:        date.Compare(today) == 0,
		Holidays:       opts.Holidays[date],
		HasEvents:      opts.EventDays[date],
	}
}
