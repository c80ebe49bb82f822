package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/zemenlab/zemen/internal/ethiopic"
	"github.com/zemenlab/zemen/internal/recurrence"
)

// Event is a stored event definition. StartTime carries the instant the user
// chose; the anchor columns carry the Ethiopian calendar fields of that same
// instant, kept consistent by construction at create/update time.
type Event struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Summary     string           `json:"summary" db:"summary"`
	Description string           `json:"description" db:"description"`
	StartTime   time.Time        `json:"start_time" db:"start_time"`
	EndTime     *time.Time       `json:"end_time,omitempty" db:"end_time"`
	IsAllDay    bool             `json:"is_all_day" db:"is_all_day"`
	TimeZone    string           `json:"time_zone" db:"time_zone"`
	Recurrence  *recurrence.Rule `json:"recurrence,omitempty" db:"-"`
	AnchorYear  int              `json:"-" db:"anchor_year"`
	AnchorMonth int              `json:"-" db:"anchor_month"`
	AnchorDay   int              `json:"-" db:"anchor_day"`
	Metadata    datatypes.JSON   `json:"metadata,omitempty" db:"metadata"`
	Tags        pq.StringArray   `json:"tags" db:"tags"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty" db:"updated_at"`
}

// Anchor returns the Ethiopian date the user actually picked.
func (e *Event) Anchor() ethiopic.Date {
	return ethiopic.Date{Year: e.AnchorYear, Month: e.AnchorMonth, Day: e.AnchorDay}
}

// SetAnchor derives the anchor from the event's own start instant.
func (e *Event) SetAnchor() {
	d := ethiopic.Today(e.StartTime)
	e.AnchorYear, e.AnchorMonth, e.AnchorDay = d.Year, d.Month, d.Day
}

// Instance is one materialized occurrence of an event. A non-recurring event
// has exactly one; a weekly event has one per matching weekday up to its end
// condition or the expansion horizon.
type Instance struct {
	EventID     uuid.UUID      `json:"event_id"`
	Summary     string         `json:"summary"`
	Description string         `json:"description"`
	Start       time.Time      `json:"start"`
	End         time.Time      `json:"end"`
	IsAllDay    bool           `json:"is_all_day"`
	Tags        pq.StringArray `json:"tags"`
}

// Instances expands the event over the window, chronologically, carrying the
// definition's time of day and duration onto every occurrence.
func (e *Event) Instances(window recurrence.Window) ([]Instance, error) {
	rule := recurrence.None()
	if e.Recurrence != nil {
		rule = *e.Recurrence
	}

	starts, err := recurrence.Occurrences(rule, e.StartTime, window)
	if err != nil {
		return nil, err
	}

	var duration time.Duration
	if e.EndTime != nil {
		duration = e.EndTime.Sub(e.StartTime)
	}

	instances := make([]Instance, 0, len(starts))
	for _, start := range starts {
		instances = append(instances, Instance{
			EventID:     e.ID,
			Summary:     e.Summary,
			Description: e.Description,
			Start:       start,
			End:         start.Add(duration),
			IsAllDay:    e.IsAllDay,
			Tags:        e.Tags,
		})
	}
	return instances, nil
}

type CreateEventRequest struct {
	Summary     string         `json:"summary" binding:"required"`
	Description string         `json:"description"`
	StartTime   time.Time      `json:"start_time" binding:"required"`
	EndTime     *time.Time     `json:"end_time"`
	IsAllDay    bool           `json:"is_all_day"`
	TimeZone    string         `json:"time_zone"`
	Recurrence  *string        `json:"recurrence"`
	Metadata    datatypes.JSON `json:"metadata"`
	Tags        []string       `json:"tags"`
}

type UpdateEventRequest struct {
	Summary     *string        `json:"summary,omitempty"`
	Description *string        `json:"description,omitempty"`
	StartTime   *time.Time     `json:"start_time,omitempty"`
	EndTime     *time.Time     `json:"end_time,omitempty"`
	IsAllDay    *bool          `json:"is_all_day,omitempty"`
	TimeZone    *string        `json:"time_zone,omitempty"`
	Recurrence  *string        `json:"recurrence,omitempty"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
}
