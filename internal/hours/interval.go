package hours

import (
	"fmt"
)

// RawInterval is one opening block as delivered by the schedule feed.
// JSON form: {"day_of_week":"TUE","start_local_time":"07:00:00","end_local_time":"13:00:00"}
type RawInterval struct {
	DayOfWeek string `json:"day_of_week"`
	Start     string `json:"start_local_time"`
	End       string `json:"end_local_time"`
}

// NormalizedInterval is an opening block anchored to one weekday. When
// EndCrossesMidnight is set, End falls on the following day.
type NormalizedInterval struct {
	Day                Weekday   `json:"day"`
	Start              ClockTime `json:"start"`
	End                ClockTime `json:"end"`
	EndCrossesMidnight bool      `json:"endCrossesMidnight"`
}

// parse validates a raw feed entry. An end of 23:59:59 or a closing 00:00:00
// is read as 24:00:00; an end earlier than the start means the block closes
// on the next day.
func (r RawInterval) parse() (NormalizedInterval, error) {
	day, err := ParseDay(r.DayOfWeek)
	if err != nil {
		return NormalizedInterval{}, err
	}
	start, err := ParseClock(r.Start)
	if err != nil {
		return NormalizedInterval{}, fmt.Errorf("start: %w", err)
	}
	end, err := ParseClock(r.End)
	if err != nil {
		return NormalizedInterval{}, fmt.Errorf("end: %w", err)
	}
	if start == EndOfDay {
		return NormalizedInterval{}, fmt.Errorf("%w: interval cannot start at %s", ErrInvalidFormat, start)
	}
	if end == LastSecond || (end == Midnight && start != Midnight) {
		end = EndOfDay
	}
	iv := NormalizedInterval{Day: day, Start: start, End: end}
	switch {
	case start < end:
	case end < start:
		iv.EndCrossesMidnight = true
	default:
		return NormalizedInterval{}, fmt.Errorf("%w: empty interval %s-%s", ErrInvalidFormat, r.Start, r.End)
	}
	return iv, nil
}

// Duration returns the length of the interval in seconds.
func (iv NormalizedInterval) Duration() int {
	if iv.EndCrossesMidnight {
		return SecondsPerDay - int(iv.Start) + int(iv.End)
	}
	return int(iv.End - iv.Start)
}

// IsFullDay reports whether the interval spans 00:00:00 to 24:00:00.
func (iv NormalizedInterval) IsFullDay() bool {
	return !iv.EndCrossesMidnight && iv.Start == Midnight && iv.End == EndOfDay
}

// EndDay is the weekday on which the interval closes.
func (iv NormalizedInterval) EndDay() Weekday {
	if iv.EndCrossesMidnight {
		return iv.Day.Next()
	}
	return iv.Day
}

func (iv NormalizedInterval) startWeek() int {
	return weekSeconds(iv.Day, iv.Start)
}

// containsWeek reports whether the weekly position qs lies in [start, end).
func (iv NormalizedInterval) containsWeek(qs int) bool {
	return mod(qs-iv.startWeek(), SecondsPerWeek) < iv.Duration()
}

// Contains reports whether the instant q falls inside the interval, taking
// the following day into account for midnight-crossing intervals.
func (iv NormalizedInterval) Contains(q QueryInstant) bool {
	return iv.containsWeek(q.weekSeconds())
}

func (iv NormalizedInterval) String() string {
	suffix := ""
	if iv.EndCrossesMidnight {
		suffix = "+1"
	}
	return fmt.Sprintf("%s %s-%s%s", iv.Day.Code(), iv.Start, iv.End, suffix)
}
