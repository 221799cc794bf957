package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/theirongolddev/wayfare/internal/model"
)

const tripColumns = `id, title, destination, start_date, end_date, notes, budget, currency, color, created_at, updated_at`

// TripCounts is the number of records a trip owns.
type TripCounts struct {
	Destinations int
	Items        int
	Expenses     int
	Documents    int
}

// CreateTrip inserts a trip, assigning an id and timestamps.
func (s *Store) CreateTrip(ctx context.Context, t model.Trip) (model.Trip, error) {
	t.ID = newID(t.ID)
	now := s.now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now

	_, err := s.db.ExecContext(ctx, `INSERT INTO trips (`+tripColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Destination, fmtDate(t.StartDate), fmtDate(t.EndDate),
		t.Notes, t.Budget, t.Currency, t.Color, fmtTime(t.CreatedAt), fmtTime(t.UpdatedAt))
	if err != nil {
		return model.Trip{}, fmt.Errorf("inserting trip: %w", err)
	}
	return t, nil
}

// UpdateTrip overwrites every editable field of an existing trip.
func (s *Store) UpdateTrip(ctx context.Context, t model.Trip) (model.Trip, error) {
	t.UpdatedAt = s.now().UTC()
	err := s.execOne(ctx, "updating trip", `UPDATE trips SET
		title = ?, destination = ?, start_date = ?, end_date = ?, notes = ?,
		budget = ?, currency = ?, color = ?, updated_at = ?
		WHERE id = ?`,
		t.Title, t.Destination, fmtDate(t.StartDate), fmtDate(t.EndDate), t.Notes,
		t.Budget, t.Currency, t.Color, fmtTime(t.UpdatedAt), t.ID)
	if err != nil {
		return model.Trip{}, err
	}
	return s.GetTrip(ctx, t.ID)
}

// GetTrip loads a single trip.
func (s *Store) GetTrip(ctx context.Context, id uuid.UUID) (model.Trip, error) {
	var r tripRow
	if err := s.db.GetContext(ctx, &r, `SELECT `+tripColumns+` FROM trips WHERE id = ?`, id); err != nil {
		return model.Trip{}, notFound(err, "trip "+id.String())
	}
	return r.model()
}

// ListTrips returns all trips ordered by start date.
func (s *Store) ListTrips(ctx context.Context) ([]model.Trip, error) {
	var rows []tripRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+tripColumns+` FROM trips ORDER BY start_date, title`); err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}
	out := make([]model.Trip, 0, len(rows))
	for _, r := range rows {
		t, err := r.model()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// DeleteTrip removes a trip. Its destinations, items, expenses and
// documents go with it through ON DELETE CASCADE.
func (s *Store) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "deleting trip "+id.String(), `DELETE FROM trips WHERE id = ?`, id)
}

// CountChildren reports how many records the trip owns.
func (s *Store) CountChildren(ctx context.Context, tripID uuid.UUID) (TripCounts, error) {
	var c TripCounts
	err := s.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM destinations WHERE trip_id = ?),
		(SELECT COUNT(*) FROM itinerary_items WHERE trip_id = ?),
		(SELECT COUNT(*) FROM expenses WHERE trip_id = ?),
		(SELECT COUNT(*) FROM documents WHERE trip_id = ?)`, tripID, tripID, tripID, tripID).
		Scan(&c.Destinations, &c.Items, &c.Expenses, &c.Documents)
	if err != nil {
		return TripCounts{}, fmt.Errorf("counting trip records: %w", err)
	}
	return c, nil
}
