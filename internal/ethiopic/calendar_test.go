package ethiopic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLeapYear(t *testing.T) {
	for y := -10; y <= 10000; y++ {
		assert.Equal(t, floorMod(y, 4) == 3, IsLeapYear(y), "year %d", y)
	}
	assert.True(t, IsLeapYear(2015))
	assert.False(t, IsLeapYear(2016))
}

func TestMonthLength(t *testing.T) {
	for m := 1; m <= 12; m++ {
		length, err := MonthLength(2016, m)
		require.NoError(t, err)
		assert.Equal(t, 30, length)
	}

	length, err := MonthLength(2015, 13)
	require.NoError(t, err)
	assert.Equal(t, 6, length)

	length, err = MonthLength(2016, 13)
	require.NoError(t, err)
	assert.Equal(t, 5, length)

	_, err = MonthLength(2016, 0)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = MonthLength(2016, 14)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestOf(t *testing.T) {
	d, err := Of(2016, 1, 30)
	require.NoError(t, err)
	assert.Equal(t, Date{2016, 1, 30}, d)

	// Pagume 6 exists only in leap years.
	_, err = Of(2015, 13, 6)
	assert.NoError(t, err)
	_, err = Of(2016, 13, 6)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = Of(2016, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = Of(2016, 1, 31)
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = Of(2016, 14, 1)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestConversionKnownDates(t *testing.T) {
	tests := []struct {
		ethiopic  Date
		gregorian GregorianDate
	}{
		// Ethiopian new years around the Gregorian leap cycle.
		{Date{2016, 1, 1}, GregorianDate{2023, time.September, 12}},
		{Date{2015, 1, 1}, GregorianDate{2022, time.September, 11}},
		{Date{2012, 1, 1}, GregorianDate{2019, time.September, 12}},
		// Last day of a leap Pagume.
		{Date{2015, 13, 6}, GregorianDate{2023, time.September, 11}},
		// Epoch: 29 Aug 8 CE Julian, expressed proleptically.
		{Date{1, 1, 1}, GregorianDate{8, time.August, 27}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.gregorian, tt.ethiopic.ToGregorian(), "to gregorian %v", tt.ethiopic)
		assert.Equal(t, tt.ethiopic, FromGregorian(tt.gregorian), "from gregorian %v", tt.gregorian)
	}
}

func TestConversionRoundTrip(t *testing.T) {
	// Every valid Ethiopian date across a leap cycle plus wide-apart years.
	for _, year := range []int{-5, 1, 1000, 2013, 2014, 2015, 2016, 2100, 9999} {
		for month := 1; month <= 13; month++ {
			length, err := MonthLength(year, month)
			require.NoError(t, err)
			for day := 1; day <= length; day++ {
				d := Date{Year: year, Month: month, Day: day}
				assert.Equal(t, d, FromGregorian(d.ToGregorian()), "round trip %v", d)
			}
		}
	}

	// Every Gregorian day over several years, including a leap February.
	start := GregorianDate{2023, time.January, 1}.StartOfDay(time.UTC)
	for i := 0; i < 4*366; i++ {
		g := GregorianFromTime(start.AddDate(0, 0, i))
		assert.Equal(t, g, FromGregorian(g).ToGregorian(), "round trip %v", g)
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2023, time.September, 12, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, Date{2016, 1, 1}, Today(now))
}

func TestAddDays(t *testing.T) {
	// Crossing Pagume into the new year.
	assert.Equal(t, Date{2016, 1, 1}, Date{2015, 13, 6}.AddDays(1))
	assert.Equal(t, Date{2015, 13, 6}, Date{2016, 1, 1}.AddDays(-1))
	assert.Equal(t, Date{2017, 1, 1}, Date{2016, 13, 5}.AddDays(1))

	d := Date{2016, 5, 11}
	assert.Equal(t, d, d.AddDays(365).AddDays(-365))
	assert.Equal(t, d, d.AddDays(0))
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, Date{2016, 2, 10}, Date{2016, 1, 10}.AddMonths(1))
	// Year wraps at the 13/1 boundary.
	assert.Equal(t, Date{2017, 1, 5}, Date{2016, 13, 5}.AddMonths(1))
	assert.Equal(t, Date{2015, 13, 6}, Date{2016, 1, 6}.AddMonths(-1))
	// Day clamps to the destination month's length.
	assert.Equal(t, Date{2016, 13, 5}, Date{2016, 12, 30}.AddMonths(1))
	assert.Equal(t, Date{2015, 13, 6}, Date{2015, 12, 30}.AddMonths(1))
	// A full year of months is a calendar year.
	assert.Equal(t, Date{2017, 4, 15}, Date{2016, 4, 15}.AddMonths(13))
}

func TestMonthAdjusters(t *testing.T) {
	d := Date{2016, 4, 17}
	assert.Equal(t, Date{2016, 4, 1}, d.FirstOfMonth())
	assert.Equal(t, Date{2016, 4, 30}, d.LastOfMonth())
	assert.Equal(t, Date{2015, 13, 6}, Date{2015, 13, 2}.LastOfMonth())
	assert.Equal(t, Date{2016, 13, 5}, Date{2016, 13, 2}.LastOfMonth())
}

func TestWeekday(t *testing.T) {
	// 2023-09-12 was a Tuesday.
	assert.Equal(t, Tuesday, Date{2016, 1, 1}.Weekday())

	// Ethiopian weekday must agree with the Gregorian weekday of the same instant.
	goWeekdays := map[time.Weekday]Weekday{
		time.Monday: Monday, time.Tuesday: Tuesday, time.Wednesday: Wednesday,
		time.Thursday: Thursday, time.Friday: Friday, time.Saturday: Saturday,
		time.Sunday: Sunday,
	}
	start := time.Date(2022, time.September, 11, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		day := start.AddDate(0, 0, i)
		assert.Equal(t, goWeekdays[day.Weekday()], Today(day).Weekday(), "day %v", day)
	}
}

func TestCompare(t *testing.T) {
	a := Date{2015, 13, 6}
	b := Date{2016, 1, 1}
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))

	// Ordering matches the Gregorian ordering of the same instants.
	assert.Equal(t, a.ToGregorian().Compare(b.ToGregorian()), a.Compare(b))
}

func TestParseGregorian(t *testing.T) {
	g, err := ParseGregorian("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, GregorianDate{2024, time.January, 15}, g)

	_, err = ParseGregorian("2024-13-01")
	assert.Error(t, err)
	_, err = ParseGregorian("not-a-date")
	assert.Error(t, err)
}

func TestWeekdayCodes(t *testing.T) {
	for w := Monday; w <= Sunday; w++ {
		parsed, err := ParseWeekdayCode(w.Code())
		require.NoError(t, err)
		assert.Equal(t, w, parsed)
	}
	_, err := ParseWeekdayCode("XX")
	assert.Error(t, err)
}
