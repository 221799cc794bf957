package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/wayfare/internal/calendar"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Title", "Amount"},
		Rows: [][]string{
			{"Hostel", "€90.00"},
			{"---"},
			{"Total", "€1,090.00"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	width := lipgloss.Width(lines[0])
	for i, l := range lines {
		if lipgloss.Width(l) != width {
			t.Fatalf("line %d width %d, want %d:\n%s", i, lipgloss.Width(l), width, out)
		}
	}
	if !strings.Contains(out, "   €90.00 ") {
		t.Fatalf("amount column should be right-aligned:\n%s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("RenderTable(empty) = %q", got)
	}
}

func TestRenderProgressBar_Clamps(t *testing.T) {
	if got := RenderProgressBar(1.5, 10); !strings.Contains(got, "100.0%") {
		t.Fatalf("RenderProgressBar(1.5) = %q", got)
	}
	if got := RenderProgressBar(-1, 10); !strings.Contains(got, "0.0%") {
		t.Fatalf("RenderProgressBar(-1) = %q", got)
	}
}

func TestRenderMonth(t *testing.T) {
	g := calendar.Build(calendar.Input{
		Month:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Trip:      calendar.Range{Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)},
		TripColor: "#3AA99F",
		ItemStarts: []time.Time{
			time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC),
		},
	}, calendar.Options{FirstWeekday: time.Monday})

	out := RenderMonth(g)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2+calendar.Weeks {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), 2+calendar.Weeks, out)
	}
	if !strings.Contains(lines[0], "June 2025") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "Mo") {
		t.Fatalf("weekday row = %q", lines[1])
	}
	if !strings.Contains(out, " 4•") {
		t.Fatalf("item marker missing:\n%s", out)
	}
	// June 1 2025 is a Sunday: six blank cells precede it on a Monday grid.
	if !strings.HasPrefix(lines[2], strings.Repeat(" ", 24)+" 1") {
		t.Fatalf("first week = %q", lines[2])
	}
}
