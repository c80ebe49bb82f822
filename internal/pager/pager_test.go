package pager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zemenlab/zemen/internal/ethiopic"
)

func TestPageBijection(t *testing.T) {
	for page := 0; page < TotalPages; page++ {
		d, err := DateForPage(page)
		require.NoError(t, err)
		assert.Equal(t, 1, d.Day)

		back, err := PageForDate(d)
		require.NoError(t, err)
		assert.Equal(t, page, back, "page %d", page)
	}
}

func TestPageForDateIgnoresDay(t *testing.T) {
	d, err := ethiopic.Of(2016, 5, 11)
	require.NoError(t, err)
	page, err := PageForDate(d)
	require.NoError(t, err)

	anchor, err := DateForPage(page)
	require.NoError(t, err)
	assert.Equal(t, d.Year, anchor.Year)
	assert.Equal(t, d.Month, anchor.Month)
}

func TestAdjacentNavigation(t *testing.T) {
	d, err := ethiopic.Of(2016, 13, 1)
	require.NoError(t, err)
	page, err := PageForDate(d)
	require.NoError(t, err)

	// +1 page is exactly the next month, wrapping 13 -> 1 with year+1.
	next, err := DateForPage(page + 1)
	require.NoError(t, err)
	assert.Equal(t, ethiopic.Date{Year: 2017, Month: 1, Day: 1}, next)

	prev, err := DateForPage(page - 1)
	require.NoError(t, err)
	assert.Equal(t, ethiopic.Date{Year: 2016, Month: 12, Day: 1}, prev)

	// Round-trip law: +1 then -1 is the identity on the page index.
	nextPage, err := PageForDate(next)
	require.NoError(t, err)
	backPage, err := PageForDate(next.AddMonths(-1))
	require.NoError(t, err)
	assert.Equal(t, page, nextPage-1)
	assert.Equal(t, page, backPage)
}

func TestPageOutOfRange(t *testing.T) {
	_, err := DateForPage(-1)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	_, err = DateForPage(TotalPages)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	_, err = PageForDate(ethiopic.Date{Year: MinYear - 1, Month: 13, Day: 1})
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	_, err = PageForDate(ethiopic.Date{Year: MaxYear + 1, Month: 1, Day: 1})
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestTodayPage(t *testing.T) {
	now := time.Date(2023, time.September, 12, 10, 0, 0, 0, time.UTC)
	page, err := TodayPage(now)
	require.NoError(t, err)

	d, err := DateForPage(page)
	require.NoError(t, err)
	assert.Equal(t, 2016, d.Year)
	assert.Equal(t, 1, d.Month)
}
