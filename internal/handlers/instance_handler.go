package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zemenlab/zemen/internal/ethiopic"
	"github.com/zemenlab/zemen/internal/filter"
	"github.com/zemenlab/zemen/internal/models"
	"github.com/zemenlab/zemen/internal/recurrence"
)

// InstanceHandler expands stored events into concrete occurrences and
// narrows them with the civil-date range filter.
type InstanceHandler struct {
	store EventStore
}

func NewInstanceHandler(store EventStore) *InstanceHandler {
	return &InstanceHandler{store: store}
}

// rangeState reads optional start/end civil-date query parameters. Absent
// parameters leave that side open, matching the filter's nil convention.
func rangeState(c *gin.Context) (filter.State, bool) {
	var start, end *ethiopic.GregorianDate

	if s := c.Query("start"); s != "" {
		g, err := ethiopic.ParseGregorian(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start, expected YYYY-MM-DD"})
			return filter.State{}, false
		}
		start = &g
	}
	if s := c.Query("end"); s != "" {
		g, err := ethiopic.ParseGregorian(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end, expected YYYY-MM-DD"})
			return filter.State{}, false
		}
		end = &g
	}
	if start != nil && end != nil && end.Compare(*start) < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End precedes start"})
		return filter.State{}, false
	}
	return filter.NewState(start, end), true
}

// expansionWindow bounds the rrule expansion to the requested range. An open
// side stays zero so the expander applies its own horizon.
func expansionWindow(state filter.State) recurrence.Window {
	var w recurrence.Window
	if state.StartDate != nil {
		w.Start = state.StartDate.StartOfDay(time.UTC).AddDate(0, 0, -1)
	}
	if state.EndDate != nil {
		w.End = state.EndDate.EndOfDay(time.UTC).AddDate(0, 0, 1)
	}
	return w
}

func expand(c *gin.Context, events []*models.Event, state filter.State) ([]models.Instance, bool) {
	window := expansionWindow(state)
	instances := make([]models.Instance, 0)
	for _, event := range events {
		expanded, err := event.Instances(window)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to expand event"})
			return nil, false
		}
		instances = append(instances, expanded...)
	}
	instances = filter.Apply(state, instances)
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].Start.Before(instances[j].Start)
	})
	return instances, true
}

// ListInstances expands every stored event over the requested range.
func (h *InstanceHandler) ListInstances(c *gin.Context) {
	state, ok := rangeState(c)
	if !ok {
		return
	}

	events, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}

	instances, ok := expand(c, events, state)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, instances)
}

// EventInstances expands a single event over the requested range.
func (h *InstanceHandler) EventInstances(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	state, ok := rangeState(c)
	if !ok {
		return
	}

	event, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get event"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	instances, ok := expand(c, []*models.Event{event}, state)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, instances)
}
