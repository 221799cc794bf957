package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/theirongolddev/wayfare/internal/model"
)

const itemColumns = `id, trip_id, destination_id, title, description, location, start_time, end_time, category`

// CreateItem inserts an itinerary item.
func (s *Store) CreateItem(ctx context.Context, it model.ItineraryItem) (model.ItineraryItem, error) {
	it.ID = newID(it.ID)
	_, err := s.db.ExecContext(ctx, `INSERT INTO itinerary_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.TripID, nullUUID(it.DestinationID), it.Title, it.Description, it.Location,
		fmtTime(it.StartTime), nullTime(it.EndTime, fmtTime), string(it.Category))
	if err != nil {
		return model.ItineraryItem{}, fmt.Errorf("inserting itinerary item: %w", err)
	}
	return s.GetItem(ctx, it.ID)
}

// UpdateItem overwrites an existing itinerary item. TripID is not changed.
func (s *Store) UpdateItem(ctx context.Context, it model.ItineraryItem) (model.ItineraryItem, error) {
	err := s.execOne(ctx, "updating itinerary item", `UPDATE itinerary_items SET
		destination_id = ?, title = ?, description = ?, location = ?,
		start_time = ?, end_time = ?, category = ?
		WHERE id = ?`,
		nullUUID(it.DestinationID), it.Title, it.Description, it.Location,
		fmtTime(it.StartTime), nullTime(it.EndTime, fmtTime), string(it.Category), it.ID)
	if err != nil {
		return model.ItineraryItem{}, err
	}
	return s.GetItem(ctx, it.ID)
}

// GetItem loads a single itinerary item.
func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (model.ItineraryItem, error) {
	var r itemRow
	if err := s.db.GetContext(ctx, &r, `SELECT `+itemColumns+` FROM itinerary_items WHERE id = ?`, id); err != nil {
		return model.ItineraryItem{}, notFound(err, "itinerary item "+id.String())
	}
	return r.model()
}

// ListItems returns a trip's itinerary ordered by start time.
func (s *Store) ListItems(ctx context.Context, tripID uuid.UUID) ([]model.ItineraryItem, error) {
	var rows []itemRow
	err := s.db.SelectContext(ctx, &rows, `SELECT `+itemColumns+` FROM itinerary_items
		WHERE trip_id = ? ORDER BY start_time, title`, tripID)
	if err != nil {
		return nil, fmt.Errorf("listing itinerary items: %w", err)
	}
	out := make([]model.ItineraryItem, 0, len(rows))
	for _, r := range rows {
		it, err := r.model()
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

// DeleteItem removes an itinerary item.
func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "deleting itinerary item "+id.String(), `DELETE FROM itinerary_items WHERE id = ?`, id)
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
