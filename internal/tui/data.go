package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wayfare/internal/calendar"
	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/service"
)

// storeTimeout bounds every store call made from a command.
const storeTimeout = 10 * time.Second

// tripsLoadedMsg carries the trip list.
type tripsLoadedMsg struct {
	trips []model.Trip
	err   error
}

// tripDetail is everything the Trips, Expenses and Documents tabs show
// for the selected trip.
type tripDetail struct {
	overview  service.TripOverview
	summary   service.Summary
	expenses  []model.Expense
	documents []model.Document
}

// detailLoadedMsg carries the detail of one trip.
type detailLoadedMsg struct {
	id     uuid.UUID
	detail tripDetail
	err    error
}

// monthLoadedMsg carries one month of a trip's calendar. id, month and
// opts echo the request so late results can be told apart.
type monthLoadedMsg struct {
	id    uuid.UUID
	month time.Time
	opts  calendar.Options
	view  service.MonthView
	err   error
}

// savedMsg reports the outcome of a write. On success the trip list and
// the detail of tripID are reloaded.
type savedMsg struct {
	text   string
	tripID uuid.UUID
	err    error
}

func loadTripsCmd(svc *service.Services) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		trips, err := svc.Trips.List(ctx)
		return tripsLoadedMsg{trips: trips, err: err}
	}
}

func loadDetailCmd(svc *service.Services, id uuid.UUID, now time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		var d tripDetail
		var err error
		if d.overview, err = svc.Trips.Overview(ctx, id); err != nil {
			return detailLoadedMsg{id: id, err: err}
		}
		if d.expenses, err = svc.Expenses.List(ctx, id); err != nil {
			return detailLoadedMsg{id: id, err: err}
		}
		if d.documents, err = svc.Documents.List(ctx, id); err != nil {
			return detailLoadedMsg{id: id, err: err}
		}
		d.summary = service.Summarize(d.overview.Trip, d.expenses, now)
		return detailLoadedMsg{id: id, detail: d}
	}
}

func loadMonthCmd(svc *service.Services, id uuid.UUID, month time.Time, loc *time.Location, opts calendar.Options) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		view, err := svc.Calendar.Month(ctx, id, month, loc, opts)
		return monthLoadedMsg{id: id, month: month, opts: opts, view: view, err: err}
	}
}

func createTripCmd(svc *service.Services, t model.Trip) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		created, err := svc.Trips.Create(ctx, t)
		if err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{text: "created " + created.Title, tripID: created.ID}
	}
}

func payCmd(svc *service.Services, e model.Expense, amount decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		paid, err := svc.Expenses.Pay(ctx, e.ID, amount)
		if err != nil {
			return savedMsg{tripID: e.TripID, err: err}
		}
		return savedMsg{text: "recorded payment for " + paid.Title, tripID: paid.TripID}
	}
}
