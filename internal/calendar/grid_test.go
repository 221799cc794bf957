package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_AlwaysFortyTwoCells(t *testing.T) {
	for year := 2023; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			for wd := time.Sunday; wd <= time.Saturday; wd++ {
				for _, adj := range []bool{false, true} {
					g := Build(Input{Month: date(year, month, 15)}, Options{FirstWeekday: wd, ShowAdjacent: adj})

					days := DaysIn(year, month)
					if got := g.monthDays(); got != days {
						t.Fatalf("%d-%02d first=%s: month cells = %d, want %d", year, month, wd, got, days)
					}

					fillers := 0
					for _, c := range g.Cells {
						if !c.InMonth {
							fillers++
						}
					}
					if fillers != CellCount-days {
						t.Fatalf("%d-%02d first=%s: fillers = %d, want %d", year, month, wd, fillers, CellCount-days)
					}
				}
			}
		}
	}
}

func TestBuild_FirstColumnIsConfiguredWeekday(t *testing.T) {
	// June 2025 starts on a Sunday.
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		g := Build(Input{Month: date(2025, 6, 1)}, Options{FirstWeekday: wd, ShowAdjacent: true})
		for row, week := range g.Rows() {
			if got := week[0].Date.Weekday(); got != wd {
				t.Fatalf("first=%s row %d starts on %s", wd, row, got)
			}
		}
	}
}

func TestBuild_MonthCellsInOrder(t *testing.T) {
	g := Build(Input{Month: date(2025, 6, 20)}, Options{FirstWeekday: time.Monday})

	// June 1 2025 is a Sunday: six leading fillers with Monday first.
	lead := LeadingOffset(time.Sunday, time.Monday)
	if lead != 6 {
		t.Fatalf("LeadingOffset = %d, want 6", lead)
	}
	for i := 0; i < lead; i++ {
		if !g.Cells[i].Empty() {
			t.Fatalf("cell %d should be empty without adjacent days", i)
		}
	}
	for d := 1; d <= 30; d++ {
		c := g.Cells[lead+d-1]
		if !c.InMonth || c.Day() != d {
			t.Fatalf("cell %d = day %d (inMonth=%v), want day %d", lead+d-1, c.Day(), c.InMonth, d)
		}
	}
}

func TestBuild_AdjacentDays(t *testing.T) {
	// March 2025 starts on a Saturday; with Sunday first there are six
	// leading days from February (23..28) and 42-6-31 = 5 trailing April days.
	g := Build(Input{Month: date(2025, 3, 1)}, Options{FirstWeekday: time.Sunday, ShowAdjacent: true})

	if got := g.Cells[0].Date; !got.Equal(date(2025, 2, 23)) {
		t.Fatalf("first cell = %s, want 2025-02-23", got.Format(time.DateOnly))
	}
	if got := g.Cells[CellCount-1].Date; !got.Equal(date(2025, 4, 5)) {
		t.Fatalf("last cell = %s, want 2025-04-05", got.Format(time.DateOnly))
	}
	if g.Cells[0].InMonth || g.Cells[CellCount-1].InMonth {
		t.Fatal("adjacent-month cells must not be flagged InMonth")
	}
}

func TestBuild_TwentyEightDayMonthLeavesEmptyWeeks(t *testing.T) {
	// February 2026 starts on a Sunday and has 28 days.
	g := Build(Input{Month: date(2026, 2, 10)}, Options{FirstWeekday: time.Sunday})
	rows := g.Rows()
	for r := 4; r < Weeks; r++ {
		for _, c := range rows[r] {
			if !c.Empty() {
				t.Fatalf("row %d should be entirely empty", r)
			}
		}
	}
}

func TestBuild_TripRangeInclusiveIgnoringTime(t *testing.T) {
	in := Input{
		Month: date(2025, 9, 1),
		Trip: Range{
			Start: time.Date(2025, 9, 10, 18, 30, 0, 0, time.UTC),
			End:   time.Date(2025, 9, 19, 6, 0, 0, 0, time.UTC),
		},
		TripColor: "#3AA99F",
	}
	g := Build(in, Options{FirstWeekday: time.Monday, ShowAdjacent: true})

	highlighted := 0
	for _, c := range g.Cells {
		if c.InTrip {
			highlighted++
			if c.Day() < 10 || c.Day() > 19 {
				t.Errorf("day %d flagged in trip", c.Day())
			}
		}
	}
	if highlighted != 10 {
		t.Fatalf("highlighted = %d, want 10", highlighted)
	}
	if len(g.Cells) != 42 {
		t.Fatalf("cells = %d, want 42", len(g.Cells))
	}
}

func TestBuild_TripSpanningMonthsOnlyFlagsMonthCells(t *testing.T) {
	in := Input{
		Month: date(2025, 9, 1),
		Trip:  Range{Start: date(2025, 8, 25), End: date(2025, 10, 5)},
	}
	g := Build(in, Options{FirstWeekday: time.Sunday, ShowAdjacent: true})
	highlighted := 0
	for _, c := range g.Cells {
		if c.InTrip {
			highlighted++
		}
	}
	if highlighted != 30 {
		t.Fatalf("highlighted = %d, want 30", highlighted)
	}
}

func TestBuild_HasItems(t *testing.T) {
	in := Input{
		Month: date(2025, 7, 1),
		ItemStarts: []time.Time{
			time.Date(2025, 7, 4, 9, 0, 0, 0, time.UTC),
			time.Date(2025, 7, 4, 20, 0, 0, 0, time.UTC),
			time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
		},
	}
	g := Build(in, Options{FirstWeekday: time.Sunday, ShowAdjacent: true})
	for _, c := range g.Cells {
		want := c.InMonth && c.Day() == 4
		if c.HasItems != want {
			t.Errorf("%s HasItems = %v, want %v", c.Date.Format(time.DateOnly), c.HasItems, want)
		}
	}
}

func TestColorFor(t *testing.T) {
	trip := "#3AA99F"
	dests := []Overlay{
		{Range: Range{Start: date(2025, 5, 1), End: date(2025, 5, 5)}, Color: "#D14D41"},
		{Range: Range{Start: date(2025, 5, 5), End: date(2025, 5, 8)}, Color: "#4385BE"},
		{Range: Range{Start: date(2025, 5, 10), End: date(2025, 5, 12)}},
	}

	tests := []struct {
		day  int
		want string
	}{
		{1, "#D14D41"},
		{4, "#D14D41"},
		{5, trip}, // overlap of two destinations
		{6, "#4385BE"},
		{9, trip},
		{11, trip}, // destination without its own color
	}
	for _, tt := range tests {
		if got := ColorFor(date(2025, 5, tt.day), trip, dests); got != tt.want {
			t.Errorf("ColorFor(May %d) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestBuild_InvalidWeekdayPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Build did not panic for weekday 7")
		}
	}()
	Build(Input{Month: date(2025, 1, 1)}, Options{FirstWeekday: time.Weekday(7)})
}

func TestRange(t *testing.T) {
	r := Range{Start: date(2025, 1, 30), End: date(2025, 2, 2)}
	if got := r.Days(); got != 4 {
		t.Fatalf("Days = %d, want 4", got)
	}
	late := Range{Start: time.Date(2025, 3, 29, 23, 0, 0, 0, time.UTC), End: date(2025, 3, 31)}
	if got := late.Days(); got != 3 {
		t.Fatalf("Days ignoring time of day = %d, want 3", got)
	}
	if !r.Contains(time.Date(2025, 2, 2, 23, 59, 0, 0, time.UTC)) {
		t.Fatal("Contains should include the whole end day")
	}
	if r.Contains(date(2025, 2, 3)) {
		t.Fatal("Contains should exclude the day after the end")
	}
	if (Range{Start: date(2025, 2, 2), End: date(2025, 1, 1)}).Contains(date(2025, 1, 15)) {
		t.Fatal("an inverted range contains nothing")
	}
	if got := (Range{Start: date(2025, 2, 2), End: date(2025, 1, 1)}).Days(); got != 0 {
		t.Fatalf("inverted Days = %d, want 0", got)
	}
}

func TestWeekdayLabels(t *testing.T) {
	got := WeekdayLabels(time.Monday)
	want := [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
	if got != want {
		t.Fatalf("WeekdayLabels(Monday) = %v, want %v", got, want)
	}
}
