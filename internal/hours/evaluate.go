package hours

import (
	"fmt"
	"time"
)

// QueryInstant is a point on the weekly clock in business-local time.
type QueryInstant struct {
	Day  Weekday   `json:"day"`
	Time ClockTime `json:"time"`
}

// NewQueryInstant parses a day code and an HH:MM:SS time. 24:00:00 is read as
// 00:00:00 of the following day.
func NewQueryInstant(day, clock string) (QueryInstant, error) {
	d, err := ParseDay(day)
	if err != nil {
		return QueryInstant{}, err
	}
	t, err := ParseClock(clock)
	if err != nil {
		return QueryInstant{}, err
	}
	if t == EndOfDay {
		return QueryInstant{Day: d.Next(), Time: Midnight}, nil
	}
	return QueryInstant{Day: d, Time: t}, nil
}

// InstantFromTime takes the weekday and time of day of t as they read in
// t's own location. Converting to the business zone is the caller's job.
func InstantFromTime(t time.Time) QueryInstant {
	return QueryInstant{
		Day:  WeekdayFromTime(t.Weekday()),
		Time: ClockTime(t.Hour()*3600 + t.Minute()*60 + t.Second()),
	}
}

func (q QueryInstant) weekSeconds() int {
	return weekSeconds(q.Day, q.Time)
}

func (q QueryInstant) String() string {
	return fmt.Sprintf("%s %s", q.Day.Code(), q.Time)
}

// instantAt converts a weekly offset back into a boundary. A boundary that
// lands exactly on a day change is reported as 24:00:00 of the earlier day so
// it formats as the end of that day.
func instantAt(ws int) QueryInstant {
	ws = mod(ws, SecondsPerWeek)
	day := Weekday(ws / SecondsPerDay)
	t := ClockTime(ws % SecondsPerDay)
	if t == Midnight {
		return QueryInstant{Day: day.Prev(), Time: EndOfDay}
	}
	return QueryInstant{Day: day, Time: t}
}

// Evaluation is the outcome of Evaluate: either Open or Closed.
type Evaluation interface {
	evaluation()
}

// Upcoming is an interval that starts GapSeconds after the query instant.
type Upcoming struct {
	Interval   NormalizedInterval `json:"interval"`
	GapSeconds int                `json:"gapSeconds"`
}

// Open means the query instant falls inside Interval.
type Open struct {
	At       QueryInstant       `json:"at"`
	Interval NormalizedInterval `json:"interval"`
	// Closes is when the business next closes, following contiguous
	// intervals. Nil when it never closes.
	Closes *QueryInstant `json:"closes,omitempty"`
	// GapSeconds is the time from At until Closes.
	GapSeconds int `json:"gapSeconds"`
	// Reopens is the first interval starting after Closes.
	Reopens *Upcoming `json:"reopens,omitempty"`
}

// Closed means no interval contains the query instant. Next is nil when the
// timeline is empty.
type Closed struct {
	At         QueryInstant        `json:"at"`
	Next       *NormalizedInterval `json:"next,omitempty"`
	GapSeconds int                 `json:"gapSeconds"`
}

func (Open) evaluation()   {}
func (Closed) evaluation() {}

// Evaluate determines whether the business is open at q and when that next
// changes. It walks the timeline day-ascending from q.Day, time-ascending
// within a day, for at most one week.
//
// The close reported for an open instant follows every interval that starts
// exactly where the previous one ends, so a full day followed by an early
// morning block closes at the end of that block and not at 24:00:00. The
// containing interval's own end is only reported when nothing continues it.
func Evaluate(t Timeline, q QueryInstant) Evaluation {
	qs := q.weekSeconds()
	order := t.scanFrom(q.Day)

	// A midnight-crossing interval from the previous day sits at the end of
	// the rotation, so check it before the walk moves on.
	if n := len(order); n > 0 {
		if last := order[n-1]; last.EndCrossesMidnight && last.Day == q.Day.Prev() && last.containsWeek(qs) {
			return openAt(order, q, last)
		}
	}
	for _, iv := range order {
		if iv.containsWeek(qs) {
			return openAt(order, q, iv)
		}
	}

	next, gap, ok := nextStart(order, qs)
	if !ok {
		return Closed{At: q}
	}
	return Closed{At: q, Next: &next, GapSeconds: gap}
}

func openAt(order []NormalizedInterval, q QueryInstant, iv NormalizedInterval) Open {
	qs := q.weekSeconds()
	gap := iv.Duration() - mod(qs-iv.startWeek(), SecondsPerWeek)

	// Follow intervals that start exactly where the current one ends.
	for range order {
		cont, ok := startingAt(order, qs+gap)
		if !ok {
			break
		}
		gap += cont.Duration()
		if gap >= SecondsPerWeek {
			return Open{At: q, Interval: iv}
		}
	}

	closes := instantAt(qs + gap)
	res := Open{At: q, Interval: iv, Closes: &closes, GapSeconds: gap}
	if next, after, ok := nextStart(order, qs+gap); ok {
		res.Reopens = &Upcoming{Interval: next, GapSeconds: gap + after}
	}
	return res
}

func startingAt(order []NormalizedInterval, ws int) (NormalizedInterval, bool) {
	for _, iv := range order {
		if mod(iv.startWeek()-ws, SecondsPerWeek) == 0 {
			return iv, true
		}
	}
	return NormalizedInterval{}, false
}

// nextStart finds the interval whose start is the smallest positive distance
// after ws. A start exactly at ws counts as a full week away.
func nextStart(order []NormalizedInterval, ws int) (NormalizedInterval, int, bool) {
	var (
		best    NormalizedInterval
		bestGap int
		found   bool
	)
	for _, iv := range order {
		gap := mod(iv.startWeek()-ws, SecondsPerWeek)
		if gap == 0 {
			gap = SecondsPerWeek
		}
		if !found || gap < bestGap {
			best, bestGap, found = iv, gap, true
		}
	}
	return best, bestGap, found
}
