package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zemenlab/zemen/internal/models"
	"github.com/zemenlab/zemen/internal/recurrence"
)

func instanceRouter(store EventStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewInstanceHandler(store)
	r.GET("/instances", h.ListInstances)
	r.GET("/events/:id/instances", h.EventInstances)
	return r
}

func TestListInstances(t *testing.T) {
	store := newFakeStore()
	rule := recurrence.Weekly() // no BYDAY, falls back to the start weekday
	require.NoError(t, store.Create(context.Background(), &models.Event{
		ID:         uuid.New(),
		Summary:    "Weekly review",
		StartTime:  time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC), // a Monday
		Recurrence: &rule,
	}))
	require.NoError(t, store.Create(context.Background(), &models.Event{
		ID:        uuid.New(),
		Summary:   "One-off",
		StartTime: time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC),
	}))
	router := instanceRouter(store)

	t.Run("bounded range", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/instances?start=2024-01-15&end=2024-02-04", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var instances []models.Instance
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &instances))
		// Mondays Jan 15, 22, 29 + Feb 4 is a Sunday so not included,
		// plus the one-off on Feb 1.
		require.Len(t, instances, 4)

		// Chronological across events: the one-off lands between the
		// Jan 29 and would-be Feb 5 Mondays.
		for i := 1; i < len(instances); i++ {
			assert.False(t, instances[i].Start.Before(instances[i-1].Start))
		}
		assert.Equal(t, "One-off", instances[3].Summary)
	})

	t.Run("end boundary is inclusive", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/instances?start=2024-02-01&end=2024-02-01", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var instances []models.Instance
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &instances))
		require.Len(t, instances, 1)
		assert.Equal(t, "One-off", instances[0].Summary)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/instances?start=2024-02-01&end=2024-01-01", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed bound rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/instances?start=yesterday", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEventInstances(t *testing.T) {
	store := newFakeStore()
	until := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)
	rule := recurrence.WeeklyUntil(until)
	event := &models.Event{
		ID:         uuid.New(),
		Summary:    "Bounded weekly",
		StartTime:  time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
		Recurrence: &rule,
	}
	require.NoError(t, store.Create(context.Background(), event))
	router := instanceRouter(store)

	t.Run("until caps the expansion", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/events/"+event.ID.String()+"/instances?start=2024-01-01&end=2024-12-31", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var instances []models.Instance
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &instances))
		// Mondays Jan 15 through Feb 5 would be 4, but the 09:00 occurrence
		// on Feb 5 falls after the until instant at midnight.
		assert.Len(t, instances, 3)
	})

	t.Run("unknown event", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/events/"+uuid.NewString()+"/instances", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
