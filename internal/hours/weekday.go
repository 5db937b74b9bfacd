package hours

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Weekday indexes the week starting on Monday (0) through Sunday (6).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const daysPerWeek = 7

var (
	// ErrInvalidDay is returned for a day code outside MON..SUN.
	ErrInvalidDay = errors.New("hours: invalid day")
)

var dayCodes = [daysPerWeek]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

var dayNames = [daysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ParseDay maps a feed day code ("MON".."SUN", case-insensitive) to a Weekday.
func ParseDay(code string) (Weekday, error) {
	key := strings.ToUpper(strings.TrimSpace(code))
	for i, c := range dayCodes {
		if c == key {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, code)
}

// WeekdayFromTime converts a time.Weekday (Sunday=0) to the Monday-first index.
func WeekdayFromTime(d time.Weekday) Weekday {
	return Weekday(mod(int(d)-1, daysPerWeek))
}

// Index returns the Monday-first index in [0, 6].
func (d Weekday) Index() int { return int(d) }

func (d Weekday) Valid() bool { return d >= Monday && d <= Sunday }

// Code returns the three letter feed code, e.g. "TUE".
func (d Weekday) Code() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return dayCodes[d]
}

// String returns the full English name, e.g. "Tuesday".
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return dayNames[d]
}

// Add moves n days around the week, wrapping in both directions.
func (d Weekday) Add(n int) Weekday {
	return Weekday(mod(int(d)+n, daysPerWeek))
}

func (d Weekday) Next() Weekday { return d.Add(1) }
func (d Weekday) Prev() Weekday { return d.Add(-1) }

// CircularDayGap returns how many days forward b is from a, in [0, 6].
func CircularDayGap(a, b Weekday) int {
	return mod(int(b)-int(a), daysPerWeek)
}

// weekSeconds places (day, t) on the weekly clock starting Monday 00:00:00.
func weekSeconds(day Weekday, t ClockTime) int {
	return int(day)*SecondsPerDay + int(t)
}

// mod is the mathematical modulo; the result always has the sign of m.
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// MarshalText encodes the day as its feed code.
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: index %d", ErrInvalidDay, int(d))
	}
	return []byte(d.Code()), nil
}

// UnmarshalText decodes a feed day code.
func (d *Weekday) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
