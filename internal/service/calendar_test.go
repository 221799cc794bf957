package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/wayfare/internal/calendar"
	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/service"
)

func TestCalendarService_Month(t *testing.T) {
	trip := model.Trip{
		ID: uuid.New(), Title: "Iberia", Color: "#3AA99F",
		StartDate: date(2025, 5, 28), EndDate: date(2025, 6, 6),
	}
	dests := []model.Destination{
		{TripID: trip.ID, Name: "Lisbon", StartDate: date(2025, 5, 28), EndDate: date(2025, 6, 2), Color: "#CE5D97"},
		{TripID: trip.ID, Name: "Porto", StartDate: date(2025, 6, 2), EndDate: date(2025, 6, 6), Color: "#DA702C"},
	}
	items := []model.ItineraryItem{
		{TripID: trip.ID, Title: "Arrive", StartTime: time.Date(2025, 5, 28, 14, 0, 0, 0, time.UTC)},
		{TripID: trip.ID, Title: "Livraria Lello", StartTime: time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)},
	}

	svc := service.NewCalendarService(
		tripsWith(trip),
		&mockDestinationRepo{list: func(context.Context, uuid.UUID) ([]model.Destination, error) { return dests, nil }},
		&mockItemRepo{list: func(context.Context, uuid.UUID) ([]model.ItineraryItem, error) { return items, nil }},
	)

	view, err := svc.Month(context.Background(), trip.ID, date(2025, 6, 15), time.UTC,
		calendar.Options{FirstWeekday: time.Monday})
	require.NoError(t, err)

	require.Len(t, view.Items, 1, "only items starting in June")
	assert.Equal(t, "Livraria Lello", view.Items[0].Title)
	assert.Len(t, view.Destinations, 2)

	byDay := map[int]calendar.Cell{}
	for _, c := range view.Grid.Cells {
		if c.InMonth {
			byDay[c.Day()] = c
		}
	}
	assert.Equal(t, "#CE5D97", byDay[1].Color, "June 1 is only in Lisbon")
	assert.Equal(t, "#3AA99F", byDay[2].Color, "June 2 is in both destinations")
	assert.Equal(t, "#DA702C", byDay[3].Color)
	assert.True(t, byDay[6].InTrip)
	assert.False(t, byDay[7].InTrip)
	assert.True(t, byDay[4].HasItems)
	assert.False(t, byDay[5].HasItems)
}

func TestGridInput_ConvertsItemTimesToLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	items := []model.ItineraryItem{
		{StartTime: time.Date(2025, 6, 30, 20, 0, 0, 0, time.UTC)}, // July 1 05:00 in Tokyo
	}

	in := service.GridInput(tenDayTrip(), nil, items, date(2025, 7, 1), tokyo)

	require.Len(t, in.ItemStarts, 1)
	assert.Equal(t, 1, in.ItemStarts[0].Day())
	assert.Equal(t, time.July, in.ItemStarts[0].Month())
}
