package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/wayfare/internal/calendar"
	"github.com/theirongolddev/wayfare/internal/model"
)

// CalendarService assembles month grids for trips.
type CalendarService struct {
	trips TripRepo
	dests DestinationRepo
	items ItemRepo
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(trips TripRepo, dests DestinationRepo, items ItemRepo) *CalendarService {
	return &CalendarService{trips: trips, dests: dests, items: items}
}

// MonthView is one month of a trip.
type MonthView struct {
	Trip         model.Trip
	Grid         calendar.Grid
	Destinations []model.Destination
	Items        []model.ItineraryItem // items starting within the month
}

// Month builds the grid for the month containing month. Item times are
// placed on the calendar in loc.
func (s *CalendarService) Month(ctx context.Context, tripID uuid.UUID, month time.Time, loc *time.Location, opts calendar.Options) (MonthView, error) {
	trip, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		return MonthView{}, err
	}
	dests, err := s.dests.ListDestinations(ctx, tripID)
	if err != nil {
		return MonthView{}, err
	}
	items, err := s.items.ListItems(ctx, tripID)
	if err != nil {
		return MonthView{}, err
	}
	if loc == nil {
		loc = time.Local
	}

	in := GridInput(trip, dests, items, month, loc)
	view := MonthView{
		Trip:         trip,
		Grid:         calendar.Build(in, opts),
		Destinations: dests,
	}
	y, m, _ := month.Date()
	for _, it := range items {
		iy, im, _ := it.StartTime.In(loc).Date()
		if iy == y && im == m {
			view.Items = append(view.Items, it)
		}
	}
	return view, nil
}

// GridInput converts stored records into calendar input.
func GridInput(trip model.Trip, dests []model.Destination, items []model.ItineraryItem, month time.Time, loc *time.Location) calendar.Input {
	in := calendar.Input{
		Month:     month,
		Trip:      calendar.Range{Start: trip.StartDate, End: trip.EndDate},
		TripColor: trip.Color,
	}
	for _, d := range dests {
		in.Destinations = append(in.Destinations, calendar.Overlay{
			Range: calendar.Range{Start: d.StartDate, End: d.EndDate},
			Color: d.Color,
		})
	}
	for _, it := range items {
		in.ItemStarts = append(in.ItemStarts, it.StartTime.In(loc))
	}
	return in
}

// StartMonth is the month a trip's calendar opens on: the current month
// while the trip is running, otherwise the month it starts in.
func StartMonth(trip model.Trip, now time.Time) time.Time {
	if PhaseOf(trip, now) == PhaseOngoing {
		y, m, _ := now.Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}
	y, m, _ := trip.StartDate.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
