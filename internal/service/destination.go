package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/wayfare/internal/calendar"
	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/palette"
	"github.com/theirongolddev/wayfare/internal/store"
)

// DestinationService implements destination rules.
type DestinationService struct {
	repo  DestinationRepo
	trips TripRepo
	ids   Resolver
	log   *zap.Logger
}

// NewDestinationService constructs a DestinationService.
func NewDestinationService(r DestinationRepo, trips TripRepo, ids Resolver, log *zap.Logger) *DestinationService {
	return &DestinationService{repo: r, trips: trips, ids: ids, log: orNop(log)}
}

// Create validates and persists a destination. A range reaching outside
// the trip is accepted but logged.
func (s *DestinationService) Create(ctx context.Context, d model.Destination) (model.Destination, error) {
	d, err := s.normalize(ctx, d)
	if err != nil {
		return model.Destination{}, err
	}
	created, err := s.repo.CreateDestination(ctx, d)
	if err != nil {
		return model.Destination{}, fmt.Errorf("creating destination: %w", err)
	}
	s.log.Info("destination created", zap.Stringer("id", created.ID), zap.Stringer("trip", created.TripID))
	return created, nil
}

// Update validates and saves changes to a destination. A destination
// stays on the trip it was created for.
func (s *DestinationService) Update(ctx context.Context, d model.Destination) (model.Destination, error) {
	if d.ID == uuid.Nil {
		return model.Destination{}, fmt.Errorf("%w: destination id is required", ErrValidation)
	}
	stored, err := s.repo.GetDestination(ctx, d.ID)
	if err != nil {
		return model.Destination{}, err
	}
	d.TripID = stored.TripID
	if d, err = s.normalize(ctx, d); err != nil {
		return model.Destination{}, err
	}
	updated, err := s.repo.UpdateDestination(ctx, d)
	if err != nil {
		return model.Destination{}, fmt.Errorf("updating destination: %w", err)
	}
	s.log.Info("destination updated", zap.Stringer("id", updated.ID))
	return updated, nil
}

// Get returns a single destination.
func (s *DestinationService) Get(ctx context.Context, id uuid.UUID) (model.Destination, error) {
	return s.repo.GetDestination(ctx, id)
}

// List returns a trip's destinations ordered by start date.
func (s *DestinationService) List(ctx context.Context, tripID uuid.UUID) ([]model.Destination, error) {
	return s.repo.ListDestinations(ctx, tripID)
}

// Delete removes a destination; its items stay on the trip.
func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteDestination(ctx, id); err != nil {
		return err
	}
	s.log.Info("destination deleted", zap.Stringer("id", id))
	return nil
}

// Resolve expands an abbreviated destination id.
func (s *DestinationService) Resolve(ctx context.Context, prefix string) (uuid.UUID, error) {
	return s.ids.Resolve(ctx, store.TableDestinations, prefix)
}

func (s *DestinationService) normalize(ctx context.Context, d model.Destination) (model.Destination, error) {
	var err error
	if d.TripID == uuid.Nil {
		return d, fmt.Errorf("%w: trip id is required", ErrValidation)
	}
	if d.Name, err = required("name", d.Name); err != nil {
		return d, err
	}
	if d.StartDate, d.EndDate, err = dateRange(d.StartDate, d.EndDate); err != nil {
		return d, err
	}
	if d.Color != "" {
		if d.Color, err = palette.Parse(d.Color); err != nil {
			return d, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	trip, err := s.trips.GetTrip(ctx, d.TripID)
	if err != nil {
		return d, err
	}
	span := calendar.Range{Start: trip.StartDate, End: trip.EndDate}
	if !span.Contains(d.StartDate) || !span.Contains(d.EndDate) {
		s.log.Warn("destination outside trip dates",
			zap.String("destination", d.Name),
			zap.String("trip", trip.Title),
			zap.String("start", d.StartDate.Format(model.DateLayout)),
			zap.String("end", d.EndDate.Format(model.DateLayout)))
	}
	return d, nil
}
