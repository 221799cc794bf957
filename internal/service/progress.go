package service

import (
	"time"

	"github.com/theirongolddev/wayfare/internal/model"
)

// Phase is where a trip stands relative to today.
type Phase string

// Trip phases.
const (
	PhaseUpcoming  Phase = "upcoming"
	PhaseOngoing   Phase = "ongoing"
	PhaseCompleted Phase = "completed"
)

// PhaseOf classifies the trip at now. Comparison is by calendar day.
func PhaseOf(t model.Trip, now time.Time) Phase {
	today := model.Day(now)
	switch {
	case today.Before(model.Day(t.StartDate)):
		return PhaseUpcoming
	case today.After(model.Day(t.EndDate)):
		return PhaseCompleted
	default:
		return PhaseOngoing
	}
}

// Progress returns the fraction of the trip elapsed at now, today included:
// 0 before the first day, 1 from the day after the last.
func Progress(t model.Trip, now time.Time) float64 {
	switch PhaseOf(t, now) {
	case PhaseUpcoming:
		return 0
	case PhaseCompleted:
		return 1
	}
	total := t.Days()
	if total <= 0 {
		return 1
	}
	elapsed := model.DaysBetween(t.StartDate, now) + 1
	return float64(elapsed) / float64(total)
}

// DaysUntil returns the number of days from now until the trip starts,
// or 0 once it has started.
func DaysUntil(t model.Trip, now time.Time) int {
	n := model.DaysBetween(now, t.StartDate)
	if n < 0 {
		return 0
	}
	return n
}
