package storage

import (
	"context"
	"fmt"

	"event-planner/internal/models"
)

const eventColumns = `id, name, date, location, theme, timeline`

// InsertEvent stores e and assigns its ID.
func (s *Storage) InsertEvent(ctx context.Context, e *models.Event) error {
	id, err := s.insert(ctx,
		`INSERT INTO events (name, date, location, theme, timeline) VALUES (?, ?, ?, ?, ?)`,
		e.Name, e.Date, e.Location, e.Theme, e.Timeline,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	e.ID = id
	return nil
}

// UpdateEvent replaces every field of the event with e.ID.
func (s *Storage) UpdateEvent(ctx context.Context, e models.Event) error {
	return s.update(ctx, "event", e.ID,
		`UPDATE events SET name = ?, date = ?, location = ?, theme = ?, timeline = ? WHERE id = ?`,
		e.Name, e.Date, e.Location, e.Theme, e.Timeline, e.ID,
	)
}

// DeleteEvent removes the event with id, if any.
func (s *Storage) DeleteEvent(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "events", id)
}

// GetEvent returns the event with id.
func (s *Storage) GetEvent(ctx context.Context, id int64) (models.Event, error) {
	var e models.Event
	err := s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.Theme, &e.Timeline)
	if err != nil {
		return models.Event{}, notFound(err, "event", id)
	}
	return e, nil
}

// ListEvents returns all events ordered by id.
func (s *Storage) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.Theme, &e.Timeline); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
