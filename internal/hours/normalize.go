package hours

import (
	"cmp"
	"fmt"
	"slices"
)

// span is a covered stretch of the week in seconds from Monday 00:00:00.
// end may run past SecondsPerWeek when the stretch wraps into Monday.
type span struct {
	start, end int
}

// Normalize turns the feed's per-day blocks into a Timeline.
//
// Entries are validated first and the whole batch is rejected on the first
// malformed day or time. The valid blocks are then treated as stretches of
// the weekly circle: anything that overlaps or touches is folded together,
// across days and across the Sunday to Monday wrap. Each stretch is written
// back as day-anchored intervals; a stretch that opens during one day and
// closes before the same time on the next becomes one midnight-crossing
// interval, and longer stretches are cut at midnight. A full 00:00-24:00 day
// therefore always stays its own interval.
func Normalize(raw []RawInterval) (Timeline, error) {
	spans := make([]span, 0, len(raw))
	for i, r := range raw {
		iv, err := r.parse()
		if err != nil {
			return Timeline{}, fmt.Errorf("interval %d (%s %s-%s): %w", i, r.DayOfWeek, r.Start, r.End, err)
		}
		start := iv.startWeek()
		spans = append(spans, span{start: start, end: start + iv.Duration()})
	}

	var out []NormalizedInterval
	for _, s := range foldWeek(spans) {
		out = append(out, s.intervals()...)
	}
	slices.SortFunc(out, func(a, b NormalizedInterval) int {
		return cmp.Or(cmp.Compare(a.Day, b.Day), cmp.Compare(a.Start, b.Start))
	})
	return Timeline{intervals: out}, nil
}

// foldWeek merges overlapping or touching spans, including the tail of the
// week running into its head. The result is disjoint and sorted by start.
func foldWeek(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b span) int {
		return cmp.Or(cmp.Compare(a.start, b.start), cmp.Compare(a.end, b.end))
	})

	out := []span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &out[len(out)-1]
		if s.start <= last.end {
			last.end = max(last.end, s.end)
			continue
		}
		out = append(out, s)
	}

	for len(out) > 1 {
		last := &out[len(out)-1]
		if last.end < out[0].start+SecondsPerWeek {
			break
		}
		last.end = max(last.end, out[0].end+SecondsPerWeek)
		out = out[1:]
	}
	return out
}

// intervals cuts a span into the canonical interval form.
func (s span) intervals() []NormalizedInterval {
	if s.end-s.start >= SecondsPerWeek {
		week := make([]NormalizedInterval, 0, daysPerWeek)
		for d := Monday; d <= Sunday; d++ {
			week = append(week, NormalizedInterval{Day: d, Start: Midnight, End: EndOfDay})
		}
		return week
	}

	var out []NormalizedInterval
	for a := s.start; a < s.end; {
		day := a / SecondsPerDay
		start := ClockTime(a % SecondsPerDay)
		dayEnd := (day + 1) * SecondsPerDay
		iv := NormalizedInterval{Day: Weekday(mod(day, daysPerWeek)), Start: start}

		switch rest := ClockTime(s.end - dayEnd); {
		case s.end <= dayEnd:
			iv.End = ClockTime(s.end - day*SecondsPerDay)
			return append(out, iv)
		case start != Midnight && rest < start:
			iv.End = rest
			iv.EndCrossesMidnight = true
			return append(out, iv)
		default:
			iv.End = EndOfDay
			out = append(out, iv)
			a = dayEnd
		}
	}
	return out
}
