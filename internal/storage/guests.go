package storage

import (
	"context"
	"fmt"

	"event-planner/internal/models"
)

const guestColumns = `id, name, phone_number, is_invited, rsvp_status`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGuest(row rowScanner) (models.Guest, error) {
	var g models.Guest
	if err := row.Scan(&g.ID, &g.Name, &g.PhoneNumber, &g.IsInvited, &g.RSVPStatus); err != nil {
		return models.Guest{}, err
	}
	return g, nil
}

func rsvpColumn(status models.RSVPStatus) models.RSVPStatus {
	if !status.Valid() {
		return models.RSVPNoResponse
	}
	return status
}

// InsertGuest stores g and assigns its ID.
func (s *Storage) InsertGuest(ctx context.Context, g *models.Guest) error {
	g.RSVPStatus = rsvpColumn(g.RSVPStatus)
	id, err := s.insert(ctx,
		`INSERT INTO guests (name, phone_number, is_invited, rsvp_status) VALUES (?, ?, ?, ?)`,
		g.Name, g.PhoneNumber, g.IsInvited, string(g.RSVPStatus),
	)
	if err != nil {
		return fmt.Errorf("failed to insert guest: %w", err)
	}
	g.ID = id
	return nil
}

// UpdateGuest replaces every field of the guest with g.ID.
func (s *Storage) UpdateGuest(ctx context.Context, g models.Guest) error {
	return s.update(ctx, "guest", g.ID,
		`UPDATE guests SET name = ?, phone_number = ?, is_invited = ?, rsvp_status = ? WHERE id = ?`,
		g.Name, g.PhoneNumber, g.IsInvited, string(rsvpColumn(g.RSVPStatus)), g.ID,
	)
}

// DeleteGuest removes the guest with id, if any.
func (s *Storage) DeleteGuest(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "guests", id)
}

// GetGuest returns the guest with id.
func (s *Storage) GetGuest(ctx context.Context, id int64) (models.Guest, error) {
	g, err := scanGuest(s.db.QueryRowContext(ctx, `SELECT `+guestColumns+` FROM guests WHERE id = ?`, id))
	if err != nil {
		return models.Guest{}, notFound(err, "guest", id)
	}
	return g, nil
}

// ListGuests returns all guests ordered by id.
func (s *Storage) ListGuests(ctx context.Context) ([]models.Guest, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+guestColumns+` FROM guests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	defer rows.Close()

	guests := make([]models.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}
