package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/palette"
	"github.com/theirongolddev/wayfare/internal/service"
	"github.com/theirongolddev/wayfare/internal/store"
)

func echoTripRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t model.Trip) (model.Trip, error) {
			t.ID = uuid.New()
			return t, nil
		},
		update: func(_ context.Context, t model.Trip) (model.Trip, error) { return t, nil },
	}
}

func validTrip() model.Trip {
	return model.Trip{
		Title:     "  Kyoto  ",
		StartDate: time.Date(2025, 4, 1, 15, 30, 0, 0, time.UTC),
		EndDate:   date(2025, 4, 8),
		Budget:    decimal.RequireFromString("200000"),
		Currency:  "jpy",
		Color:     "ce5d97",
	}
}

func TestTripService_Create_Normalizes(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), nil, "EUR", nil)

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Kyoto", got.Title)
	assert.Equal(t, "JPY", got.Currency)
	assert.Equal(t, "#CE5D97", got.Color)
	assert.True(t, got.StartDate.Equal(date(2025, 4, 1)), "start date truncated to day, got %s", got.StartDate)
}

func TestTripService_Create_Defaults(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), nil, "EUR", nil)

	trip := validTrip()
	trip.Currency = ""
	trip.Color = ""
	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, palette.Default, got.Color)
}

func TestTripService_Create_OneDayTrip(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), nil, "EUR", nil)

	trip := validTrip()
	trip.EndDate = trip.StartDate
	_, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
}

func TestTripService_Create_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*model.Trip)
	}{
		{"blank title", func(tr *model.Trip) { tr.Title = "   " }},
		{"end before start", func(tr *model.Trip) { tr.EndDate = date(2025, 3, 31) }},
		{"missing start", func(tr *model.Trip) { tr.StartDate = time.Time{} }},
		{"negative budget", func(tr *model.Trip) { tr.Budget = decimal.NewFromInt(-1) }},
		{"unknown currency", func(tr *model.Trip) { tr.Currency = "XYZ" }},
		{"bad color", func(tr *model.Trip) { tr.Color = "#12345" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTripRepo{
				create: func(context.Context, model.Trip) (model.Trip, error) {
					t.Fatal("repo must not be called for invalid input")
					return model.Trip{}, nil
				},
			}
			svc := service.NewTripService(repo, nil, "EUR", nil)

			trip := validTrip()
			tt.modify(&trip)
			_, err := svc.Create(context.Background(), trip)

			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

func TestTripService_Update_RequiresID(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), nil, "EUR", nil)
	_, err := svc.Update(context.Background(), validTrip())
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestTripService_Update_PropagatesNotFound(t *testing.T) {
	repo := &mockTripRepo{
		update: func(context.Context, model.Trip) (model.Trip, error) {
			return model.Trip{}, store.ErrNotFound
		},
	}
	svc := service.NewTripService(repo, nil, "EUR", nil)

	trip := validTrip()
	trip.ID = uuid.New()
	_, err := svc.Update(context.Background(), trip)

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTripService_Overview(t *testing.T) {
	trip := tenDayTrip()
	trip.ID = uuid.New()
	repo := tripsWith(trip)
	repo.children = func(context.Context, uuid.UUID) (store.TripCounts, error) {
		return store.TripCounts{Destinations: 2, Items: 5}, nil
	}
	svc := service.NewTripService(repo, nil, "EUR", nil)

	ov, err := svc.Overview(context.Background(), trip.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, ov.Counts.Destinations)
	assert.Equal(t, 5, ov.Counts.Items)
	assert.Equal(t, service.PhaseCompleted, ov.Phase, "a 2025 trip is over by now")
	assert.InDelta(t, 1.0, ov.Progress, 1e-9)
}

func TestTripService_Resolve(t *testing.T) {
	want := uuid.New()
	ids := &mockResolver{
		resolve: func(_ context.Context, table store.Table, prefix string) (uuid.UUID, error) {
			assert.Equal(t, store.TableTrips, table)
			assert.Equal(t, "ab12", prefix)
			return want, nil
		},
	}
	svc := service.NewTripService(nil, ids, "EUR", nil)

	got, err := svc.Resolve(context.Background(), "ab12")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}
