// Package model defines the wayfare records: trips and the things they own.
//
// Records reference each other by id only. A Trip never holds its children;
// callers look them up by TripID.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the storage and CLI layout for calendar dates.
const DateLayout = "2006-01-02"

// Trip is the top-level travel plan.
type Trip struct {
	ID          uuid.UUID
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Notes       string
	Budget      decimal.Decimal
	Currency    string
	Color       string // normalized "#RRGGBB"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Days returns the inclusive number of calendar days the trip spans.
func (t Trip) Days() int {
	return DaysBetween(t.StartDate, t.EndDate) + 1
}

// Destination is a stop within a trip with its own date sub-range.
// Color is empty when the destination uses the trip color.
type Destination struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Color     string
	Notes     string
}

// Day truncates t to midnight UTC of its own calendar date.
// The wall-clock date of t is kept regardless of its location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
