package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zemenlab/zemen/internal/models"
	"github.com/zemenlab/zemen/internal/recurrence"
)

// EventStore is the persistence surface the handlers need.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventHandler struct {
	store EventStore
}

func NewEventHandler(store EventStore) *EventHandler {
	return &EventHandler{store: store}
}

// parseRecurrence turns a request descriptor into a rule. Writes reject
// malformed descriptors outright; silent fallback is only for data already
// in the store.
func parseRecurrence(descriptor *string) (*recurrence.Rule, error) {
	if descriptor == nil || *descriptor == "" {
		return nil, nil
	}
	rule, err := recurrence.Deserialize(*descriptor)
	if err != nil {
		return nil, err
	}
	if !rule.IsRecurring() {
		return nil, nil
	}
	return &rule, nil
}

func validTimeZone(name string) bool {
	if name == "" {
		return true
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := parseRecurrence(req.Recurrence)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recurrence descriptor: " + err.Error()})
		return
	}
	if !validTimeZone(req.TimeZone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown time zone: " + req.TimeZone})
		return
	}
	if req.EndTime != nil && req.EndTime.Before(req.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End time precedes start time"})
		return
	}

	event := &models.Event{
		ID:          uuid.New(),
		Summary:     req.Summary,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAllDay:    req.IsAllDay,
		TimeZone:    req.TimeZone,
		Recurrence:  rule,
		Metadata:    req.Metadata,
		Tags:        req.Tags,
		CreatedAt:   time.Now(),
	}

	if err := h.store.Create(c.Request.Context(), event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	event, err := h.store.GetByID(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get event"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}
	if events == nil {
		events = []*models.Event{}
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
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

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Recurrence != nil {
		rule, err := parseRecurrence(req.Recurrence)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recurrence descriptor: " + err.Error()})
			return
		}
		event.Recurrence = rule
	}
	if req.TimeZone != nil {
		if !validTimeZone(*req.TimeZone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown time zone: " + *req.TimeZone})
			return
		}
		event.TimeZone = *req.TimeZone
	}
	if req.Summary != nil {
		event.Summary = *req.Summary
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = req.EndTime
	}
	if req.IsAllDay != nil {
		event.IsAllDay = *req.IsAllDay
	}
	if req.Metadata != nil {
		event.Metadata = req.Metadata
	}
	if req.Tags != nil {
		event.Tags = req.Tags
	}
	if event.EndTime != nil && event.EndTime.Before(event.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End time precedes start time"})
		return
	}

	now := time.Now()
	event.UpdatedAt = &now

	if err := h.store.Update(c.Request.Context(), event); err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
