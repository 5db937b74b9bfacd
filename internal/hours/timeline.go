package hours

import (
	"slices"
	"strings"
)

// Timeline is the canonical weekly schedule: normalized intervals sorted by
// (day, start) and read circularly, Sunday wrapping into Monday. A Timeline is
// immutable; a refreshed schedule produces a new value.
type Timeline struct {
	intervals []NormalizedInterval
}

// Intervals returns a copy of the intervals in Monday-first order.
func (t Timeline) Intervals() []NormalizedInterval {
	return slices.Clone(t.intervals)
}

func (t Timeline) Len() int { return len(t.intervals) }

// IsEmpty reports whether the business has no opening hours at all.
func (t Timeline) IsEmpty() bool { return len(t.intervals) == 0 }

// At returns the interval at position i, wrapping around the week.
func (t Timeline) At(i int) NormalizedInterval {
	return t.intervals[mod(i, len(t.intervals))]
}

// OnDay returns the intervals that open on day.
func (t Timeline) OnDay(day Weekday) []NormalizedInterval {
	var out []NormalizedInterval
	for _, iv := range t.intervals {
		if iv.Day == day {
			out = append(out, iv)
		}
	}
	return out
}

// Raw renders the timeline back into feed entries. Midnight-crossing
// intervals are emitted as a single entry whose end precedes its start.
func (t Timeline) Raw() []RawInterval {
	out := make([]RawInterval, 0, len(t.intervals))
	for _, iv := range t.intervals {
		out = append(out, RawInterval{
			DayOfWeek: iv.Day.Code(),
			Start:     iv.Start.String(),
			End:       iv.End.String(),
		})
	}
	return out
}

// scanFrom returns the intervals rotated so the walk starts with the first
// interval opening on or after day, continuing circularly for one week.
func (t Timeline) scanFrom(day Weekday) []NormalizedInterval {
	n := len(t.intervals)
	if n == 0 {
		return nil
	}
	first := slices.IndexFunc(t.intervals, func(iv NormalizedInterval) bool {
		return iv.Day >= day
	})
	if first <= 0 {
		return slices.Clone(t.intervals)
	}
	out := make([]NormalizedInterval, 0, n)
	out = append(out, t.intervals[first:]...)
	return append(out, t.intervals[:first]...)
}

func (t Timeline) String() string {
	parts := make([]string, 0, len(t.intervals))
	for _, iv := range t.intervals {
		parts = append(parts, iv.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}
