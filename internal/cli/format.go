// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/money"
)

// ShortIDLen is how many characters of an id are shown in listings.
const ShortIDLen = 8

// ShortID returns the leading characters of an id, enough to type back.
func ShortID(id uuid.UUID) string {
	return id.String()[:ShortIDLen]
}

// FormatMoney formats an amount in its currency, e.g. "$1,234.50".
func FormatMoney(d decimal.Decimal, currency string) string {
	return money.Format(d, currency)
}

// FormatDate formats a calendar date, e.g. "Sun 1 Jun 2025".
func FormatDate(t time.Time) string {
	return t.Format("Mon 2 Jan 2006")
}

// FormatDateRange formats an inclusive date range compactly.
// e.g. "1–10 Jun 2025", "28 May – 6 Jun 2025", "30 Dec 2025 – 2 Jan 2026"
func FormatDateRange(start, end time.Time) string {
	switch {
	case start.Year() != end.Year():
		return start.Format("2 Jan 2006") + " – " + end.Format("2 Jan 2006")
	case start.Month() != end.Month():
		return start.Format("2 Jan") + " – " + end.Format("2 Jan 2006")
	case start.Day() != end.Day():
		return fmt.Sprintf("%d–%s", start.Day(), end.Format("2 Jan 2006"))
	default:
		return start.Format("2 Jan 2006")
	}
}

// FormatTime formats the wall-clock time of an itinerary item.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatDuration formats a duration into a short human-readable form.
// e.g., 90m -> "1h 30m", 2h -> "2h", 45m -> "45m"
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatBytes formats a document size, e.g. "1.2 MiB".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// FormatRelative formats t relative to now, e.g. "3 days ago".
func FormatRelative(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatCountdown describes how far away a trip start is.
func FormatCountdown(days int) string {
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// FormatStatus renders a payment status with the amount still due.
func FormatStatus(e model.Expense) string {
	switch e.Status {
	case model.StatusPaid:
		return "paid"
	case model.StatusPartial:
		return "partial, " + FormatMoney(e.DueAmount(), e.Currency) + " due"
	default:
		return "due"
	}
}
