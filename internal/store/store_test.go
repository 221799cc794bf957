package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/store"
)

// newTestStore opens a fresh database in a temp dir, closed at test end.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "nested", "wayfare.db"))
	require.NoError(t, err, "open store")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tripFixture() model.Trip {
	return model.Trip{
		Title:       "Lisbon",
		Destination: "Portugal",
		StartDate:   date(2025, 6, 1),
		EndDate:     date(2025, 6, 10),
		Notes:       "pack light",
		Budget:      decimal.RequireFromString("1500.50"),
		Currency:    "EUR",
		Color:       "#3AA99F",
	}
}

func seedTrip(t *testing.T, s *store.Store) model.Trip {
	t.Helper()
	trip, err := s.CreateTrip(context.Background(), tripFixture())
	require.NoError(t, err)
	return trip
}

func TestOpen_MigratesSchema(t *testing.T) {
	s := newTestStore(t)
	v, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestTrip_CreateGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := tripFixture()
	got, err := s.CreateTrip(ctx, in)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "id should be generated")
	assert.False(t, got.CreatedAt.IsZero())

	loaded, err := s.GetTrip(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Title, loaded.Title)
	assert.Equal(t, in.Destination, loaded.Destination)
	assert.True(t, loaded.StartDate.Equal(in.StartDate), "start date mismatch")
	assert.True(t, loaded.EndDate.Equal(in.EndDate), "end date mismatch")
	assert.True(t, loaded.Budget.Equal(in.Budget), "budget %s", loaded.Budget)
	assert.Equal(t, "EUR", loaded.Currency)
	assert.Equal(t, "#3AA99F", loaded.Color)
	assert.Equal(t, "pack light", loaded.Notes)
}

func TestTrip_GetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTrip(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTrip_ListOrderedByStartDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	later := tripFixture()
	later.Title = "Kyoto"
	later.StartDate, later.EndDate = date(2025, 9, 1), date(2025, 9, 5)
	_, err := s.CreateTrip(ctx, later)
	require.NoError(t, err)
	seedTrip(t, s)

	trips, err := s.ListTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "Lisbon", trips[0].Title)
	assert.Equal(t, "Kyoto", trips[1].Title)
}

func TestTrip_Update(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	trip := seedTrip(t, s)

	trip.Title = "Porto"
	trip.EndDate = date(2025, 6, 12)
	got, err := s.UpdateTrip(ctx, trip)
	require.NoError(t, err)
	assert.Equal(t, "Porto", got.Title)
	assert.True(t, got.EndDate.Equal(date(2025, 6, 12)))

	_, err = s.UpdateTrip(ctx, model.Trip{ID: uuid.New(), StartDate: trip.StartDate, EndDate: trip.EndDate})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTrip_DeleteCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	trip := seedTrip(t, s)

	dest, err := s.CreateDestination(ctx, model.Destination{
		TripID: trip.ID, Name: "Alfama", StartDate: trip.StartDate, EndDate: trip.StartDate,
	})
	require.NoError(t, err)
	_, err = s.CreateItem(ctx, model.ItineraryItem{
		TripID: trip.ID, DestinationID: &dest.ID, Title: "Tram 28",
		StartTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), Category: model.ItemTransport,
	})
	require.NoError(t, err)
	_, err = s.CreateExpense(ctx, model.Expense{
		TripID: trip.ID, Title: "Hostel", Amount: decimal.NewFromInt(90), Currency: "EUR",
		Category: model.ExpenseAccommodation, Status: model.StatusDue, PaidAmount: decimal.Zero,
	})
	require.NoError(t, err)
	_, err = s.CreateDocument(ctx, model.Document{
		TripID: trip.ID, Title: "Boarding pass", Type: model.DocTicket, Filename: "bp.pdf", Data: []byte("%PDF-1.4"),
	})
	require.NoError(t, err)

	counts, err := s.CountChildren(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, store.TripCounts{Destinations: 1, Items: 1, Expenses: 1, Documents: 1}, counts)

	require.NoError(t, s.DeleteTrip(ctx, trip.ID))

	counts, err = s.CountChildren(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, store.TripCounts{}, counts, "children should be deleted with their trip")

	assert.ErrorIs(t, s.DeleteTrip(ctx, trip.ID), store.ErrNotFound)
}

func TestDestination_DeleteDetachesItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	trip := seedTrip(t, s)

	dest, err := s.CreateDestination(ctx, model.Destination{
		TripID: trip.ID, Name: "Sintra", StartDate: date(2025, 6, 3), EndDate: date(2025, 6, 4), Color: "#CE5D97",
	})
	require.NoError(t, err)
	item, err := s.CreateItem(ctx, model.ItineraryItem{
		TripID: trip.ID, DestinationID: &dest.ID, Title: "Pena Palace",
		StartTime: time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC), Category: model.ItemSightseeing,
	})
	require.NoError(t, err)
	require.NotNil(t, item.DestinationID)

	require.NoError(t, s.DeleteDestination(ctx, dest.ID))

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DestinationID, "item should survive without its destination")
}

func TestDestination_ListOrdered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	trip := seedTrip(t, s)

	for _, d := range []model.Destination{
		{TripID: trip.ID, Name: "Porto", StartDate: date(2025, 6, 6), EndDate: date(2025, 6, 10)},
		{TripID: trip.ID, Name: "Lisbon", StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 5)},
	} {
		_, err := s.CreateDestination(ctx, d)
		require.NoError(t, err)
	}

	dests, err := s.ListDestinations(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, dests, 2)
	assert.Equal(t, "Lisbon", dests[0].Name)
	assert.Equal(t, "Porto", dests[1].Name)

	dests[1].Color = "#DA702C"
	updated, err := s.UpdateDestination(ctx, dests[1])
	require.NoError(t, err)
	assert.Equal(t, "#DA702C", updated.Color)
}

func TestItem_OptionalFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	trip := seedTrip(t, s)

	start := time.Date(2025, 6, 2, 19, 30, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	withEnd, err := s.CreateItem(ctx, model.ItineraryItem{
		TripID: trip.ID, Title: "Fado", Location: "Bairro Alto",
		StartTime: start, EndTime: &end, Category: model.ItemActivity,
	})
	require.NoError(t, err)
	require.NotNil(t, withEnd.EndTime)
	assert.True(t, withEnd.EndTime.Equal(end))
	assert.Nil(t, withEnd.DestinationID)

	open, err := s.CreateItem(ctx, model.ItineraryItem{
		TripID: trip.ID, Title: "Breakfast", StartTime: start.Add(-12 * time.Hour), Category: model.ItemFood,
	})
	require.NoError(t, err)
	assert.Nil(t, open.EndTime)

	items, err := s.ListItems(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Breakfast", items[0].Title, "items ordered by start time")
	assert.Equal(t, model.ItemActivity, items[1].Category)
}

func TestItem_RequiresExistingTrip(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateItem(context.Background(), model.ItineraryItem{
		TripID: uuid.New(), Title: "Orphan", StartTime: time.Now(), Category: model.ItemOther,
	})
	assert.Error(t, err, "foreign key should reject unknown trip")
}

func TestExpense_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	trip := seedTrip(t, s)

	due := date(2025, 5, 20)
	e, err := s.CreateExpense(ctx, model.Expense{
		TripID: trip.ID, Title: "Flight", Amount: decimal.RequireFromString("412.30"), Currency: "EUR",
		Category: model.ExpenseTransport, Status: model.StatusPartial,
		PaidAmount: decimal.RequireFromString("100"), DueDate: &due,
	})
	require.NoError(t, err)
	assert.True(t, e.Amount.Equal(decimal.RequireFromString("412.30")))
	assert.True(t, e.PaidAmount.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, e.DueDate)
	assert.True(t, e.DueDate.Equal(due))
	assert.Equal(t, model.StatusPartial, e.Status)

	e.Status = model.StatusPaid
	e.PaidAmount = e.Amount
	e.DueDate = nil
	updated, err := s.UpdateExpense(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, updated.Status)
	assert.Nil(t, updated.DueDate)

	list, err := s.ListExpenses(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.DeleteExpense(ctx, e.ID))
	_, err = s.GetExpense(ctx, e.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDocument_ListOmitsPayload(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	trip := seedTrip(t, s)

	payload := []byte("passport scan bytes")
	doc, err := s.CreateDocument(ctx, model.Document{
		TripID: trip.ID, Title: "Passport", Type: model.DocPassport,
		Filename: "passport.txt", ContentType: "text/plain; charset=utf-8", Data: payload,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), doc.Size)

	list, err := s.ListDocuments(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Data)
	assert.Equal(t, int64(len(payload)), list[0].Size)
	assert.Equal(t, model.DocPassport, list[0].Type)

	full, err := s.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, payload, full.Data)
	assert.Equal(t, "passport.txt", full.Filename)
}

func TestResolve(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := tripFixture()
	a.ID = uuid.MustParse("aaaa1111-0000-4000-8000-000000000001")
	b := tripFixture()
	b.ID = uuid.MustParse("aaaa2222-0000-4000-8000-000000000002")
	_, err := s.CreateTrip(ctx, a)
	require.NoError(t, err)
	_, err = s.CreateTrip(ctx, b)
	require.NoError(t, err)

	got, err := s.Resolve(ctx, store.TableTrips, "aaaa1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got)

	got, err = s.Resolve(ctx, store.TableTrips, "AAAA2222")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got, "prefixes are case-insensitive")

	got, err = s.Resolve(ctx, store.TableTrips, a.ID.String())
	require.NoError(t, err)
	assert.Equal(t, a.ID, got)

	_, err = s.Resolve(ctx, store.TableTrips, "aaaa")
	assert.ErrorIs(t, err, store.ErrAmbiguous)

	_, err = s.Resolve(ctx, store.TableTrips, "ffff")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Resolve(ctx, store.TableTrips, "")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Resolve(ctx, store.TableExpenses, "aaaa1")
	assert.ErrorIs(t, err, store.ErrNotFound, "prefix is looked up in the named table only")
}
