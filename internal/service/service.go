// Package service holds the wayfare business rules. Services validate and
// normalize input, then hand records to the store through the narrow repo
// interfaces declared here.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/store"
)

// ErrValidation is returned when input breaks a business rule.
var ErrValidation = errors.New("validation error")

// Resolver expands abbreviated ids.
type Resolver interface {
	Resolve(ctx context.Context, table store.Table, prefix string) (uuid.UUID, error)
}

// TripRepo persists trips.
type TripRepo interface {
	CreateTrip(ctx context.Context, t model.Trip) (model.Trip, error)
	UpdateTrip(ctx context.Context, t model.Trip) (model.Trip, error)
	GetTrip(ctx context.Context, id uuid.UUID) (model.Trip, error)
	ListTrips(ctx context.Context) ([]model.Trip, error)
	DeleteTrip(ctx context.Context, id uuid.UUID) error
	CountChildren(ctx context.Context, tripID uuid.UUID) (store.TripCounts, error)
}

// DestinationRepo persists destinations.
type DestinationRepo interface {
	CreateDestination(ctx context.Context, d model.Destination) (model.Destination, error)
	UpdateDestination(ctx context.Context, d model.Destination) (model.Destination, error)
	GetDestination(ctx context.Context, id uuid.UUID) (model.Destination, error)
	ListDestinations(ctx context.Context, tripID uuid.UUID) ([]model.Destination, error)
	DeleteDestination(ctx context.Context, id uuid.UUID) error
}

// ItemRepo persists itinerary items.
type ItemRepo interface {
	CreateItem(ctx context.Context, it model.ItineraryItem) (model.ItineraryItem, error)
	UpdateItem(ctx context.Context, it model.ItineraryItem) (model.ItineraryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (model.ItineraryItem, error)
	ListItems(ctx context.Context, tripID uuid.UUID) ([]model.ItineraryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// ExpenseRepo persists expenses.
type ExpenseRepo interface {
	CreateExpense(ctx context.Context, e model.Expense) (model.Expense, error)
	UpdateExpense(ctx context.Context, e model.Expense) (model.Expense, error)
	GetExpense(ctx context.Context, id uuid.UUID) (model.Expense, error)
	ListExpenses(ctx context.Context, tripID uuid.UUID) ([]model.Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

// DocumentRepo persists documents.
type DocumentRepo interface {
	CreateDocument(ctx context.Context, d model.Document) (model.Document, error)
	GetDocument(ctx context.Context, id uuid.UUID) (model.Document, error)
	ListDocuments(ctx context.Context, tripID uuid.UUID) ([]model.Document, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

var (
	_ Resolver        = (*store.Store)(nil)
	_ TripRepo        = (*store.Store)(nil)
	_ DestinationRepo = (*store.Store)(nil)
	_ ItemRepo        = (*store.Store)(nil)
	_ ExpenseRepo     = (*store.Store)(nil)
	_ DocumentRepo    = (*store.Store)(nil)
)

// Services bundles every service over a single store.
type Services struct {
	Trips        *TripService
	Destinations *DestinationService
	Items        *ItemService
	Expenses     *ExpenseService
	Documents    *DocumentService
	Calendar     *CalendarService
}

// New wires all services to one store.
func New(s *store.Store, defaultCurrency string, log *zap.Logger) *Services {
	return &Services{
		Trips:        NewTripService(s, s, defaultCurrency, log),
		Destinations: NewDestinationService(s, s, s, log),
		Items:        NewItemService(s, s, s, s, log),
		Expenses:     NewExpenseService(s, s, s, log),
		Documents:    NewDocumentService(s, s, s, log),
		Calendar:     NewCalendarService(s, s, s),
	}
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func required(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return v, nil
}

func dateRange(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() {
		return start, end, fmt.Errorf("%w: start date is required", ErrValidation)
	}
	if end.IsZero() {
		return start, end, fmt.Errorf("%w: end date is required", ErrValidation)
	}
	s, e := model.Day(start), model.Day(end)
	if e.Before(s) {
		return s, e, fmt.Errorf("%w: end date %s is before start date %s",
			ErrValidation, e.Format(model.DateLayout), s.Format(model.DateLayout))
	}
	return s, e, nil
}
