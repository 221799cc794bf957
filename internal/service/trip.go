package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/money"
	"github.com/theirongolddev/wayfare/internal/palette"
	"github.com/theirongolddev/wayfare/internal/store"
)

// TripService implements trip rules.
type TripService struct {
	repo     TripRepo
	ids      Resolver
	currency string
	log      *zap.Logger
	now      func() time.Time
}

// NewTripService constructs a TripService. defaultCurrency is used for
// trips created without one.
func NewTripService(r TripRepo, ids Resolver, defaultCurrency string, log *zap.Logger) *TripService {
	return &TripService{repo: r, ids: ids, currency: defaultCurrency, log: orNop(log), now: time.Now}
}

// TripOverview is a trip with its derived state.
type TripOverview struct {
	Trip     model.Trip
	Counts   store.TripCounts
	Phase    Phase
	Progress float64
	DaysLeft int // days until start; only meaningful for upcoming trips
}

// Create validates and persists a new trip.
func (s *TripService) Create(ctx context.Context, t model.Trip) (model.Trip, error) {
	t, err := s.normalize(t)
	if err != nil {
		return model.Trip{}, err
	}
	created, err := s.repo.CreateTrip(ctx, t)
	if err != nil {
		return model.Trip{}, fmt.Errorf("creating trip: %w", err)
	}
	s.log.Info("trip created", zap.Stringer("id", created.ID), zap.String("title", created.Title))
	return created, nil
}

// Update validates and saves changes to an existing trip.
func (s *TripService) Update(ctx context.Context, t model.Trip) (model.Trip, error) {
	if t.ID == uuid.Nil {
		return model.Trip{}, fmt.Errorf("%w: trip id is required", ErrValidation)
	}
	t, err := s.normalize(t)
	if err != nil {
		return model.Trip{}, err
	}
	updated, err := s.repo.UpdateTrip(ctx, t)
	if err != nil {
		return model.Trip{}, fmt.Errorf("updating trip: %w", err)
	}
	s.log.Info("trip updated", zap.Stringer("id", updated.ID))
	return updated, nil
}

// Get returns a single trip.
func (s *TripService) Get(ctx context.Context, id uuid.UUID) (model.Trip, error) {
	return s.repo.GetTrip(ctx, id)
}

// List returns all trips ordered by start date.
func (s *TripService) List(ctx context.Context) ([]model.Trip, error) {
	return s.repo.ListTrips(ctx)
}

// Delete removes a trip and everything it owns.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteTrip(ctx, id); err != nil {
		return err
	}
	s.log.Info("trip deleted", zap.Stringer("id", id))
	return nil
}

// Resolve expands an abbreviated trip id.
func (s *TripService) Resolve(ctx context.Context, prefix string) (uuid.UUID, error) {
	return s.ids.Resolve(ctx, store.TableTrips, prefix)
}

// Overview loads a trip with its counts and progress as of now.
func (s *TripService) Overview(ctx context.Context, id uuid.UUID) (TripOverview, error) {
	t, err := s.repo.GetTrip(ctx, id)
	if err != nil {
		return TripOverview{}, err
	}
	counts, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return TripOverview{}, err
	}
	now := s.now()
	return TripOverview{
		Trip:     t,
		Counts:   counts,
		Phase:    PhaseOf(t, now),
		Progress: Progress(t, now),
		DaysLeft: DaysUntil(t, now),
	}, nil
}

func (s *TripService) normalize(t model.Trip) (model.Trip, error) {
	var err error
	if t.Title, err = required("title", t.Title); err != nil {
		return t, err
	}
	if t.StartDate, t.EndDate, err = dateRange(t.StartDate, t.EndDate); err != nil {
		return t, err
	}

	code := t.Currency
	if code == "" {
		code = s.currency
	}
	if t.Currency, err = money.NormalizeCurrency(code); err != nil {
		return t, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if t.Budget.IsNegative() {
		return t, fmt.Errorf("%w: budget cannot be negative", ErrValidation)
	}
	t.Budget = money.Round(t.Budget, t.Currency)

	if t.Color == "" {
		t.Color = palette.Default
	}
	if t.Color, err = palette.Parse(t.Color); err != nil {
		return t, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return t, nil
}
