package calendar

import (
	"time"

	"github.com/theirongolddev/wayfare/internal/model"
)

// Range is an inclusive span of calendar days. Time of day is ignored.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar day of t lies within r.
func (r Range) Contains(t time.Time) bool {
	k := dayKey(t)
	return k >= dayKey(r.Start) && k <= dayKey(r.End)
}

// Days returns the inclusive day count, or 0 for an inverted range.
func (r Range) Days() int {
	return max(model.DaysBetween(r.Start, r.End)+1, 0)
}

// dayKey orders calendar days as yyyymmdd integers.
func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
