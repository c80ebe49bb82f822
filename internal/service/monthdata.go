// Package service assembles the data a presentation layer needs to render
// one month page: both calendar grids, holiday occurrences, and the stored
// events expanded and narrowed to the page's month.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/zemenlab/zemen/internal/cache"
	"github.com/zemenlab/zemen/internal/ethiopic"
	"github.com/zemenlab/zemen/internal/filter"
	"github.com/zemenlab/zemen/internal/holidays"
	"github.com/zemenlab/zemen/internal/models"
	"github.com/zemenlab/zemen/internal/pager"
	"github.com/zemenlab/zemen/internal/recurrence"
)

// EventSource yields the stored event definitions. The service only reads;
// persistence stays the caller's concern.
type EventSource interface {
	List(ctx context.Context) ([]*models.Event, error)
}

// MonthPageData is everything one month page renders.
type MonthPageData struct {
	Page          int                   `json:"page"`
	Year          int                   `json:"year"`
	Month         int                   `json:"month"`
	EthiopianGrid []pager.Week          `json:"ethiopian_grid"`
	GregorianGrid []pager.Week          `json:"gregorian_grid"`
	Holidays      []holidays.Occurrence `json:"holidays"`
	Events        []models.Instance     `json:"events"`
}

type MonthDataService struct {
	events  EventSource
	catalog *holidays.Catalog
	cache   *cache.Cache
	logger  *zap.Logger
}

func NewMonthDataService(events EventSource, catalog *holidays.Catalog, pageCache *cache.Cache, logger *zap.Logger) *MonthDataService {
	return &MonthDataService{events: events, catalog: catalog, cache: pageCache, logger: logger}
}

// LoadMonthData renders the page's month. Out-of-range pages surface
// pager.ErrPageOutOfRange to the caller.
func (s *MonthDataService) LoadMonthData(ctx context.Context, page int, now time.Time) (*MonthPageData, error) {
	var cached MonthPageData
	if s.cache.GetPage(ctx, page, &cached) {
		return &cached, nil
	}

	anchor, err := pager.DateForPage(page)
	if err != nil {
		return nil, err
	}

	monthHolidays := s.catalog.OccurrencesForMonth(anchor.Year, anchor.Month)
	holidayIndex := make(map[ethiopic.Date][]holidays.Occurrence, len(monthHolidays))
	for _, occ := range monthHolidays {
		holidayIndex[occ.Date] = append(holidayIndex[occ.Date], occ)
	}

	instances, err := s.monthInstances(ctx, anchor)
	if err != nil {
		return nil, err
	}

	eventDays := make(map[ethiopic.Date]bool, len(instances))
	for _, inst := range instances {
		eventDays[ethiopic.Today(inst.Start)] = true
	}

	opts := pager.GridOptions{
		Primary:          pager.CalendarEthiopic,
		ShowDualNumbers:  true,
		ShowAdjacentDays: true,
		Holidays:         holidayIndex,
		EventDays:        eventDays,
	}
	ethGrid, err := pager.BuildGrid(page, now, opts)
	if err != nil {
		return nil, err
	}
	opts.Primary = pager.CalendarGregorian
	gregGrid, err := pager.BuildGrid(page, now, opts)
	if err != nil {
		return nil, err
	}

	data := &MonthPageData{
		Page:          page,
		Year:          anchor.Year,
		Month:         anchor.Month,
		EthiopianGrid: ethGrid,
		GregorianGrid: gregGrid,
		Holidays:      monthHolidays,
		Events:        instances,
	}
	s.cache.SetPage(ctx, page, data)
	return data, nil
}

// monthInstances expands every stored event over the month and narrows the
// result to the month's civil dates. The expansion window is padded by a day
// on both sides so zone offsets cannot push a boundary instance out before
// the precise filter runs.
func (s *MonthDataService) monthInstances(ctx context.Context, anchor ethiopic.Date) ([]models.Instance, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading events for month page: %w", err)
	}

	gStart := anchor.ToGregorian()
	gEnd := anchor.LastOfMonth().ToGregorian()
	window := recurrence.Window{
		Start: gStart.StartOfDay(time.UTC).AddDate(0, 0, -1),
		End:   gEnd.EndOfDay(time.UTC).AddDate(0, 0, 1),
	}

	var instances []models.Instance
	for _, event := range events {
		expanded, err := event.Instances(window)
		if err != nil {
			s.logger.Warn("Skipping event that failed to expand",
				zap.String("event_id", event.ID.String()), zap.Error(err))
			continue
		}
		instances = append(instances, expanded...)
	}

	instances = filter.Apply(filter.NewState(&gStart, &gEnd), instances)
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].Start.Before(instances[j].Start)
	})
	return instances, nil
}
