// Package calendar builds the month grid shown for a trip: six weeks of
// seven days, with each day of the month flagged for the trip range, the
// destination it belongs to and whether anything is scheduled on it.
package calendar

import (
	"fmt"
	"time"
)

const (
	// Weeks is the number of rows in every grid.
	Weeks = 6
	// CellCount is the fixed number of cells in every grid.
	CellCount = Weeks * 7
)

// Overlay is a destination sub-range with its display color.
// An empty Color defers to the trip color.
type Overlay struct {
	Range
	Color string
}

// Input is everything the grid is computed from.
type Input struct {
	Month        time.Time // any instant within the month to show
	Trip         Range
	TripColor    string
	Destinations []Overlay
	ItemStarts   []time.Time
}

// Options control grid layout.
type Options struct {
	FirstWeekday time.Weekday
	ShowAdjacent bool // fill leading/trailing cells with neighbor-month dates
}

// Cell is one slot of the grid. Filler cells have InMonth false; their Date
// is the adjacent-month date when adjacent days are shown, zero otherwise.
// InTrip, HasItems and Color are only set on month cells.
type Cell struct {
	Date     time.Time
	InMonth  bool
	InTrip   bool
	HasItems bool
	Color    string
}

// Empty reports whether the cell shows nothing at all.
func (c Cell) Empty() bool { return !c.InMonth && c.Date.IsZero() }

// Day returns the day-of-month shown in the cell, or 0 when empty.
func (c Cell) Day() int {
	if c.Date.IsZero() {
		return 0
	}
	return c.Date.Day()
}

// Grid is a computed month view.
type Grid struct {
	Year         int
	Month        time.Month
	FirstWeekday time.Weekday
	Cells        [CellCount]Cell
}

// Rows returns the grid as six weeks.
func (g Grid) Rows() [Weeks][7]Cell {
	var rows [Weeks][7]Cell
	for i, c := range g.Cells {
		rows[i/7][i%7] = c
	}
	return rows
}

// monthDays counts the cells that belong to the month.
func (g Grid) monthDays() int {
	n := 0
	for _, c := range g.Cells {
		if c.InMonth {
			n++
		}
	}
	return n
}

// Build lays out the month containing in.Month.
// It panics if opts.FirstWeekday is not Sunday through Saturday.
func Build(in Input, opts Options) Grid {
	if opts.FirstWeekday < time.Sunday || opts.FirstWeekday > time.Saturday {
		panic(fmt.Sprintf("calendar: first weekday %d out of range", opts.FirstWeekday))
	}

	year, month, _ := in.Month.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := DaysIn(year, month)
	lead := LeadingOffset(first.Weekday(), opts.FirstWeekday)

	g := Grid{Year: year, Month: month, FirstWeekday: opts.FirstWeekday}
	itemDays := make(map[int]struct{}, len(in.ItemStarts))
	for _, t := range in.ItemStarts {
		itemDays[dayKey(t)] = struct{}{}
	}

	for i := range g.Cells {
		date := first.AddDate(0, 0, i-lead)
		if i < lead || i >= lead+daysInMonth {
			if opts.ShowAdjacent {
				g.Cells[i] = Cell{Date: date}
			}
			continue
		}

		_, hasItems := itemDays[dayKey(date)]
		g.Cells[i] = Cell{
			Date:     date,
			InMonth:  true,
			InTrip:   in.Trip.Contains(date),
			HasItems: hasItems,
			Color:    ColorFor(date, in.TripColor, in.Destinations),
		}
	}
	return g
}

// ColorFor resolves the display color of a day: the color of the single
// destination covering it, otherwise the trip color. Overlapping
// destinations fall back to the trip color.
func ColorFor(day time.Time, tripColor string, dests []Overlay) string {
	var match *Overlay
	for i := range dests {
		if !dests[i].Contains(day) {
			continue
		}
		if match != nil {
			return tripColor
		}
		match = &dests[i]
	}
	if match == nil || match.Color == "" {
		return tripColor
	}
	return match.Color
}

// LeadingOffset is the number of filler cells before the 1st of the month.
func LeadingOffset(firstOfMonth, firstWeekday time.Weekday) int {
	return (int(firstOfMonth) - int(firstWeekday) + 7) % 7
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayLabels returns the column headers starting at first, e.g.
// ["Mo" "Tu" ... "Su"] for Monday.
func WeekdayLabels(first time.Weekday) [7]string {
	var out [7]string
	for i := range out {
		out[i] = time.Weekday((int(first) + i) % 7).String()[:2]
	}
	return out
}
