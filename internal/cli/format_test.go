package cli

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wayfare/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestFormatDateRange(t *testing.T) {
	tests := []struct {
		start, end, want string
	}{
		{"2025-06-01", "2025-06-10", "1–10 Jun 2025"},
		{"2025-05-28", "2025-06-06", "28 May – 6 Jun 2025"},
		{"2025-12-30", "2026-01-02", "30 Dec 2025 – 2 Jan 2026"},
		{"2025-06-01", "2025-06-01", "1 Jun 2025"},
	}
	for _, tt := range tests {
		got := FormatDateRange(mustDate(t, tt.start), mustDate(t, tt.end))
		if got != tt.want {
			t.Fatalf("FormatDateRange(%s, %s) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m"},
		{45 * time.Minute, "45m"},
		{2 * time.Hour, "2h"},
		{90 * time.Minute, "1h 30m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Fatalf("FormatDuration(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	if got := FormatBytes(1536); got != "1.5 KiB" {
		t.Fatalf("FormatBytes(1536) = %q", got)
	}
	if got := FormatBytes(-1); got != "0 B" {
		t.Fatalf("FormatBytes(-1) = %q", got)
	}
}

func TestFormatCountdown(t *testing.T) {
	if got := FormatCountdown(0); got != "today" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCountdown(1); got != "tomorrow" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCountdown(12); got != "in 12 days" {
		t.Fatalf("got %q", got)
	}
}

func TestShortID(t *testing.T) {
	id := uuid.MustParse("3f2504e0-4f89-41d3-9a0c-0305e82c3301")
	if got := ShortID(id); got != "3f2504e0" {
		t.Fatalf("ShortID = %q", got)
	}
}

func TestFormatStatus(t *testing.T) {
	e := model.Expense{
		Amount: decimal.NewFromInt(100), PaidAmount: decimal.NewFromInt(40),
		Currency: "USD", Status: model.StatusPartial,
	}
	if got := FormatStatus(e); got != "partial, $60.00 due" {
		t.Fatalf("FormatStatus = %q", got)
	}
}
