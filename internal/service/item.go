package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/store"
)

// ItemService implements itinerary rules.
type ItemService struct {
	repo  ItemRepo
	trips TripRepo
	dests DestinationRepo
	ids   Resolver
	log   *zap.Logger
}

// NewItemService constructs an ItemService.
func NewItemService(r ItemRepo, trips TripRepo, dests DestinationRepo, ids Resolver, log *zap.Logger) *ItemService {
	return &ItemService{repo: r, trips: trips, dests: dests, ids: ids, log: orNop(log)}
}

// Create validates and persists an itinerary item.
func (s *ItemService) Create(ctx context.Context, it model.ItineraryItem) (model.ItineraryItem, error) {
	it, err := s.normalize(ctx, it)
	if err != nil {
		return model.ItineraryItem{}, err
	}
	created, err := s.repo.CreateItem(ctx, it)
	if err != nil {
		return model.ItineraryItem{}, fmt.Errorf("creating itinerary item: %w", err)
	}
	s.log.Info("itinerary item created", zap.Stringer("id", created.ID), zap.Stringer("trip", created.TripID))
	return created, nil
}

// Update validates and saves changes to an itinerary item. The item
// stays on its original trip.
func (s *ItemService) Update(ctx context.Context, it model.ItineraryItem) (model.ItineraryItem, error) {
	if it.ID == uuid.Nil {
		return model.ItineraryItem{}, fmt.Errorf("%w: item id is required", ErrValidation)
	}
	stored, err := s.repo.GetItem(ctx, it.ID)
	if err != nil {
		return model.ItineraryItem{}, err
	}
	it.TripID = stored.TripID
	if it, err = s.normalize(ctx, it); err != nil {
		return model.ItineraryItem{}, err
	}
	updated, err := s.repo.UpdateItem(ctx, it)
	if err != nil {
		return model.ItineraryItem{}, fmt.Errorf("updating itinerary item: %w", err)
	}
	s.log.Info("itinerary item updated", zap.Stringer("id", updated.ID))
	return updated, nil
}

// Get returns a single itinerary item.
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (model.ItineraryItem, error) {
	return s.repo.GetItem(ctx, id)
}

// List returns a trip's itinerary ordered by start time.
func (s *ItemService) List(ctx context.Context, tripID uuid.UUID) ([]model.ItineraryItem, error) {
	return s.repo.ListItems(ctx, tripID)
}

// Delete removes an itinerary item.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.log.Info("itinerary item deleted", zap.Stringer("id", id))
	return nil
}

// Resolve expands an abbreviated item id.
func (s *ItemService) Resolve(ctx context.Context, prefix string) (uuid.UUID, error) {
	return s.ids.Resolve(ctx, store.TableItems, prefix)
}

func (s *ItemService) normalize(ctx context.Context, it model.ItineraryItem) (model.ItineraryItem, error) {
	var err error
	if it.TripID == uuid.Nil {
		return it, fmt.Errorf("%w: trip id is required", ErrValidation)
	}
	if it.Title, err = required("title", it.Title); err != nil {
		return it, err
	}
	if it.StartTime.IsZero() {
		return it, fmt.Errorf("%w: start time is required", ErrValidation)
	}
	if it.EndTime != nil && it.EndTime.Before(it.StartTime) {
		return it, fmt.Errorf("%w: end time is before start time", ErrValidation)
	}
	if it.Category == "" {
		it.Category = model.ItemOther
	}
	if !it.Category.Valid() {
		return it, fmt.Errorf("%w: unknown category %q", ErrValidation, it.Category)
	}

	if _, err := s.trips.GetTrip(ctx, it.TripID); err != nil {
		return it, err
	}
	if it.DestinationID != nil {
		dest, err := s.dests.GetDestination(ctx, *it.DestinationID)
		if err != nil {
			return it, err
		}
		if dest.TripID != it.TripID {
			return it, fmt.Errorf("%w: destination %q belongs to another trip", ErrValidation, dest.Name)
		}
	}
	return it, nil
}
