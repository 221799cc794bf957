package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wayfare/internal/model"
)

// Row types mirror the tables column for column. Dates and timestamps are
// TEXT in the database and are parsed on the way out.

type tripRow struct {
	ID          uuid.UUID       `db:"id"`
	Title       string          `db:"title"`
	Destination string          `db:"destination"`
	StartDate   string          `db:"start_date"`
	EndDate     string          `db:"end_date"`
	Notes       string          `db:"notes"`
	Budget      decimal.Decimal `db:"budget"`
	Currency    string          `db:"currency"`
	Color       string          `db:"color"`
	CreatedAt   string          `db:"created_at"`
	UpdatedAt   string          `db:"updated_at"`
}

func (r tripRow) model() (model.Trip, error) {
	t := model.Trip{
		ID:          r.ID,
		Title:       r.Title,
		Destination: r.Destination,
		Notes:       r.Notes,
		Budget:      r.Budget,
		Currency:    r.Currency,
		Color:       r.Color,
	}
	var p parser
	t.StartDate = p.date(r.StartDate)
	t.EndDate = p.date(r.EndDate)
	t.CreatedAt = p.time(r.CreatedAt)
	t.UpdatedAt = p.time(r.UpdatedAt)
	return t, p.wrap("trip", r.ID)
}

type destinationRow struct {
	ID        uuid.UUID `db:"id"`
	TripID    uuid.UUID `db:"trip_id"`
	Name      string    `db:"name"`
	StartDate string    `db:"start_date"`
	EndDate   string    `db:"end_date"`
	Color     string    `db:"color"`
	Notes     string    `db:"notes"`
}

func (r destinationRow) model() (model.Destination, error) {
	d := model.Destination{
		ID:     r.ID,
		TripID: r.TripID,
		Name:   r.Name,
		Color:  r.Color,
		Notes:  r.Notes,
	}
	var p parser
	d.StartDate = p.date(r.StartDate)
	d.EndDate = p.date(r.EndDate)
	return d, p.wrap("destination", r.ID)
}

type itemRow struct {
	ID            uuid.UUID      `db:"id"`
	TripID        uuid.UUID      `db:"trip_id"`
	DestinationID uuid.NullUUID  `db:"destination_id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Location      string         `db:"location"`
	StartTime     string         `db:"start_time"`
	EndTime       sql.NullString `db:"end_time"`
	Category      string         `db:"category"`
}

func (r itemRow) model() (model.ItineraryItem, error) {
	it := model.ItineraryItem{
		ID:          r.ID,
		TripID:      r.TripID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Category:    model.ItemCategory(r.Category),
	}
	if r.DestinationID.Valid {
		id := r.DestinationID.UUID
		it.DestinationID = &id
	}
	var p parser
	it.StartTime = p.time(r.StartTime)
	it.EndTime = p.optional(r.EndTime, p.time)
	return it, p.wrap("itinerary item", r.ID)
}

type expenseRow struct {
	ID         uuid.UUID       `db:"id"`
	TripID     uuid.UUID       `db:"trip_id"`
	Title      string          `db:"title"`
	Amount     decimal.Decimal `db:"amount"`
	Currency   string          `db:"currency"`
	Category   string          `db:"category"`
	Status     string          `db:"status"`
	PaidAmount decimal.Decimal `db:"paid_amount"`
	DueDate    sql.NullString  `db:"due_date"`
	CreatedAt  string          `db:"created_at"`
}

func (r expenseRow) model() (model.Expense, error) {
	e := model.Expense{
		ID:         r.ID,
		TripID:     r.TripID,
		Title:      r.Title,
		Amount:     r.Amount,
		Currency:   r.Currency,
		Category:   model.ExpenseCategory(r.Category),
		Status:     model.PaymentStatus(r.Status),
		PaidAmount: r.PaidAmount,
	}
	var p parser
	e.DueDate = p.optional(r.DueDate, p.date)
	e.CreatedAt = p.time(r.CreatedAt)
	return e, p.wrap("expense", r.ID)
}

type documentRow struct {
	ID          uuid.UUID `db:"id"`
	TripID      uuid.UUID `db:"trip_id"`
	Title       string    `db:"title"`
	Type        string    `db:"doc_type"`
	Filename    string    `db:"filename"`
	ContentType string    `db:"content_type"`
	Size        int64     `db:"size_bytes"`
	AddedAt     string    `db:"added_at"`
	Data        []byte    `db:"data"`
}

func (r documentRow) model() (model.Document, error) {
	d := model.Document{
		ID:          r.ID,
		TripID:      r.TripID,
		Title:       r.Title,
		Type:        model.DocumentType(r.Type),
		Filename:    r.Filename,
		ContentType: r.ContentType,
		Size:        r.Size,
		Data:        r.Data,
	}
	var p parser
	d.AddedAt = p.time(r.AddedAt)
	return d, p.wrap("document", r.ID)
}

// parser keeps the first parse error so conversions read top to bottom.
type parser struct {
	err error
}

func (p *parser) date(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil && p.err == nil {
		p.err = err
	}
	return t
}

func (p *parser) time(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil && p.err == nil {
		p.err = err
	}
	return t
}

func (p *parser) optional(ns sql.NullString, parse func(string) time.Time) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t := parse(ns.String)
	return &t
}

func (p *parser) wrap(kind string, id uuid.UUID) error {
	if p.err == nil {
		return nil
	}
	return fmt.Errorf("decoding %s %s: %w", kind, id, p.err)
}
