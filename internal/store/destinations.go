package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/theirongolddev/wayfare/internal/model"
)

const destinationColumns = `id, trip_id, name, start_date, end_date, color, notes`

// CreateDestination inserts a destination for an existing trip.
func (s *Store) CreateDestination(ctx context.Context, d model.Destination) (model.Destination, error) {
	d.ID = newID(d.ID)
	_, err := s.db.ExecContext(ctx, `INSERT INTO destinations (`+destinationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.TripID, d.Name, fmtDate(d.StartDate), fmtDate(d.EndDate), d.Color, d.Notes)
	if err != nil {
		return model.Destination{}, fmt.Errorf("inserting destination: %w", err)
	}
	return d, nil
}

// UpdateDestination overwrites an existing destination. TripID is not changed.
func (s *Store) UpdateDestination(ctx context.Context, d model.Destination) (model.Destination, error) {
	err := s.execOne(ctx, "updating destination", `UPDATE destinations SET
		name = ?, start_date = ?, end_date = ?, color = ?, notes = ?
		WHERE id = ?`,
		d.Name, fmtDate(d.StartDate), fmtDate(d.EndDate), d.Color, d.Notes, d.ID)
	if err != nil {
		return model.Destination{}, err
	}
	return s.GetDestination(ctx, d.ID)
}

// GetDestination loads a single destination.
func (s *Store) GetDestination(ctx context.Context, id uuid.UUID) (model.Destination, error) {
	var r destinationRow
	if err := s.db.GetContext(ctx, &r, `SELECT `+destinationColumns+` FROM destinations WHERE id = ?`, id); err != nil {
		return model.Destination{}, notFound(err, "destination "+id.String())
	}
	return r.model()
}

// ListDestinations returns a trip's destinations ordered by start date.
func (s *Store) ListDestinations(ctx context.Context, tripID uuid.UUID) ([]model.Destination, error) {
	var rows []destinationRow
	err := s.db.SelectContext(ctx, &rows, `SELECT `+destinationColumns+` FROM destinations
		WHERE trip_id = ? ORDER BY start_date, name`, tripID)
	if err != nil {
		return nil, fmt.Errorf("listing destinations: %w", err)
	}
	out := make([]model.Destination, 0, len(rows))
	for _, r := range rows {
		d, err := r.model()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// DeleteDestination removes a destination. Items pointing at it keep
// existing with no destination.
func (s *Store) DeleteDestination(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "deleting destination "+id.String(), `DELETE FROM destinations WHERE id = ?`, id)
}
