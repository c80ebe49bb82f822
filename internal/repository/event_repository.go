package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/zemenlab/zemen/internal/cache"
	"github.com/zemenlab/zemen/internal/models"
	"github.com/zemenlab/zemen/internal/recurrence"
)

type EventRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
	cache  *cache.Cache
}

func NewEventRepository(db *sqlx.DB, logger *zap.Logger, pageCache *cache.Cache) *EventRepository {
	return &EventRepository{db: db, logger: logger, cache: pageCache}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// eventRow adds the raw recurrence column to the model for scanning; the
// descriptor is decoded in fixupAfterScan so the degraded-parse behavior
// stays here at the call site.
type eventRow struct {
	models.Event
	RecurrenceRaw sql.NullString `db:"recurrence"`
}

// fixupAfterScan restores the parts of an event the database cannot carry:
// the recurrence rule from its descriptor and the start/end instants in the
// event's own zone. A malformed descriptor degrades the event to
// non-recurring with a warning; the stored row is left untouched.
func (r *EventRepository) fixupAfterScan(row *eventRow) *models.Event {
	event := row.Event

	if row.RecurrenceRaw.Valid && row.RecurrenceRaw.String != "" {
		rule, err := recurrence.Deserialize(row.RecurrenceRaw.String)
		if err != nil {
			r.logger.Warn("Malformed recurrence descriptor, treating event as non-recurring",
				zap.String("event_id", event.ID.String()),
				zap.String("descriptor", row.RecurrenceRaw.String),
				zap.Error(err))
		} else if rule.IsRecurring() {
			event.Recurrence = &rule
		}
	}

	if event.TimeZone != "" {
		loc, err := time.LoadLocation(event.TimeZone)
		if err != nil {
			r.logger.Warn("Unknown event time zone, keeping UTC",
				zap.String("event_id", event.ID.String()),
				zap.String("time_zone", event.TimeZone),
				zap.Error(err))
		} else {
			event.StartTime = event.StartTime.In(loc)
			if event.EndTime != nil {
				event.EndTime = timePtr(event.EndTime.In(loc))
			}
		}
	}

	return &event
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, summary, description, start_time, end_time, is_all_day, time_zone,
			recurrence, anchor_year, anchor_month, anchor_day, metadata, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`

	now := time.Now()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = now
	if event.UpdatedAt == nil {
		event.UpdatedAt = timePtr(now)
	}
	event.SetAnchor()
	anchor := event.Anchor()

	err := r.db.QueryRowContext(ctx, query,
		event.ID,
		event.Summary,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.IsAllDay,
		event.TimeZone,
		event.Recurrence,
		anchor.Year,
		anchor.Month,
		anchor.Day,
		event.Metadata,
		event.Tags,
		event.CreatedAt,
		event.UpdatedAt,
	).Scan(&event.ID)

	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}

	r.cache.InvalidateAll(ctx)
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	query := `
		SELECT id, summary, description, start_time, end_time, is_all_day, time_zone,
			recurrence, anchor_year, anchor_month, anchor_day, metadata, tags, created_at, updated_at
		FROM events
		WHERE id = $1`

	var row eventRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting event: %w", err)
	}
	return r.fixupAfterScan(&row), nil
}

func (r *EventRepository) List(ctx context.Context) ([]*models.Event, error) {
	query := `
		SELECT id, summary, description, start_time, end_time, is_all_day, time_zone,
			recurrence, anchor_year, anchor_month, anchor_day, metadata, tags, created_at, updated_at
		FROM events
		ORDER BY start_time ASC`

	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	events := make([]*models.Event, len(rows))
	for i := range rows {
		events[i] = r.fixupAfterScan(&rows[i])
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET summary = $1, description = $2, start_time = $3, end_time = $4, is_all_day = $5,
			time_zone = $6, recurrence = $7, anchor_year = $8, anchor_month = $9, anchor_day = $10,
			metadata = $11, tags = $12, updated_at = $13
		WHERE id = $14`

	event.UpdatedAt = timePtr(time.Now())
	event.SetAnchor()
	anchor := event.Anchor()

	result, err := r.db.ExecContext(ctx, query,
		event.Summary,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.IsAllDay,
		event.TimeZone,
		event.Recurrence,
		anchor.Year,
		anchor.Month,
		anchor.Day,
		event.Metadata,
		event.Tags,
		event.UpdatedAt,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrEventNotFound
	}

	r.cache.InvalidateAll(ctx)
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrEventNotFound
	}

	r.cache.InvalidateAll(ctx)
	return nil
}
