package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/service"
	"github.com/theirongolddev/wayfare/internal/store"
)

// Hand-written doubles: each method forwards to a function field, so a
// test sets only the calls it expects.

type mockTripRepo struct {
	create   func(ctx context.Context, t model.Trip) (model.Trip, error)
	update   func(ctx context.Context, t model.Trip) (model.Trip, error)
	get      func(ctx context.Context, id uuid.UUID) (model.Trip, error)
	list     func(ctx context.Context) ([]model.Trip, error)
	delete   func(ctx context.Context, id uuid.UUID) error
	children func(ctx context.Context, id uuid.UUID) (store.TripCounts, error)
}

func (m *mockTripRepo) CreateTrip(ctx context.Context, t model.Trip) (model.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripRepo) UpdateTrip(ctx context.Context, t model.Trip) (model.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripRepo) GetTrip(ctx context.Context, id uuid.UUID) (model.Trip, error) {
	return m.get(ctx, id)
}
func (m *mockTripRepo) ListTrips(ctx context.Context) ([]model.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripRepo) CountChildren(ctx context.Context, id uuid.UUID) (store.TripCounts, error) {
	return m.children(ctx, id)
}

type mockDestinationRepo struct {
	create func(ctx context.Context, d model.Destination) (model.Destination, error)
	update func(ctx context.Context, d model.Destination) (model.Destination, error)
	get    func(ctx context.Context, id uuid.UUID) (model.Destination, error)
	list   func(ctx context.Context, tripID uuid.UUID) ([]model.Destination, error)
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockDestinationRepo) CreateDestination(ctx context.Context, d model.Destination) (model.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationRepo) UpdateDestination(ctx context.Context, d model.Destination) (model.Destination, error) {
	return m.update(ctx, d)
}
func (m *mockDestinationRepo) GetDestination(ctx context.Context, id uuid.UUID) (model.Destination, error) {
	return m.get(ctx, id)
}
func (m *mockDestinationRepo) ListDestinations(ctx context.Context, tripID uuid.UUID) ([]model.Destination, error) {
	return m.list(ctx, tripID)
}
func (m *mockDestinationRepo) DeleteDestination(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockItemRepo struct {
	create func(ctx context.Context, it model.ItineraryItem) (model.ItineraryItem, error)
	update func(ctx context.Context, it model.ItineraryItem) (model.ItineraryItem, error)
	get    func(ctx context.Context, id uuid.UUID) (model.ItineraryItem, error)
	list   func(ctx context.Context, tripID uuid.UUID) ([]model.ItineraryItem, error)
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockItemRepo) CreateItem(ctx context.Context, it model.ItineraryItem) (model.ItineraryItem, error) {
	return m.create(ctx, it)
}
func (m *mockItemRepo) UpdateItem(ctx context.Context, it model.ItineraryItem) (model.ItineraryItem, error) {
	return m.update(ctx, it)
}
func (m *mockItemRepo) GetItem(ctx context.Context, id uuid.UUID) (model.ItineraryItem, error) {
	return m.get(ctx, id)
}
func (m *mockItemRepo) ListItems(ctx context.Context, tripID uuid.UUID) ([]model.ItineraryItem, error) {
	return m.list(ctx, tripID)
}
func (m *mockItemRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockExpenseRepo struct {
	create func(ctx context.Context, e model.Expense) (model.Expense, error)
	update func(ctx context.Context, e model.Expense) (model.Expense, error)
	get    func(ctx context.Context, id uuid.UUID) (model.Expense, error)
	list   func(ctx context.Context, tripID uuid.UUID) ([]model.Expense, error)
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockExpenseRepo) CreateExpense(ctx context.Context, e model.Expense) (model.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseRepo) UpdateExpense(ctx context.Context, e model.Expense) (model.Expense, error) {
	return m.update(ctx, e)
}
func (m *mockExpenseRepo) GetExpense(ctx context.Context, id uuid.UUID) (model.Expense, error) {
	return m.get(ctx, id)
}
func (m *mockExpenseRepo) ListExpenses(ctx context.Context, tripID uuid.UUID) ([]model.Expense, error) {
	return m.list(ctx, tripID)
}
func (m *mockExpenseRepo) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockDocumentRepo struct {
	create func(ctx context.Context, d model.Document) (model.Document, error)
	get    func(ctx context.Context, id uuid.UUID) (model.Document, error)
	list   func(ctx context.Context, tripID uuid.UUID) ([]model.Document, error)
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockDocumentRepo) CreateDocument(ctx context.Context, d model.Document) (model.Document, error) {
	return m.create(ctx, d)
}
func (m *mockDocumentRepo) GetDocument(ctx context.Context, id uuid.UUID) (model.Document, error) {
	return m.get(ctx, id)
}
func (m *mockDocumentRepo) ListDocuments(ctx context.Context, tripID uuid.UUID) ([]model.Document, error) {
	return m.list(ctx, tripID)
}
func (m *mockDocumentRepo) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockResolver struct {
	resolve func(ctx context.Context, table store.Table, prefix string) (uuid.UUID, error)
}

func (m *mockResolver) Resolve(ctx context.Context, table store.Table, prefix string) (uuid.UUID, error) {
	return m.resolve(ctx, table, prefix)
}

var (
	_ service.TripRepo        = (*mockTripRepo)(nil)
	_ service.DestinationRepo = (*mockDestinationRepo)(nil)
	_ service.ItemRepo        = (*mockItemRepo)(nil)
	_ service.ExpenseRepo     = (*mockExpenseRepo)(nil)
	_ service.DocumentRepo    = (*mockDocumentRepo)(nil)
	_ service.Resolver        = (*mockResolver)(nil)
)

// tripsWith returns a TripRepo whose lookups find exactly the given trips.
func tripsWith(trips ...model.Trip) *mockTripRepo {
	return &mockTripRepo{
		get: func(_ context.Context, id uuid.UUID) (model.Trip, error) {
			for _, t := range trips {
				if t.ID == id {
					return t, nil
				}
			}
			return model.Trip{}, store.ErrNotFound
		},
	}
}
