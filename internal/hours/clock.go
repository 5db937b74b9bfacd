package hours

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ClockTime is a wall-clock time of day stored as seconds since midnight.
// The valid range is [0, 86400]; 86400 is the "24:00:00" end-of-day sentinel
// and is distinct from 0 (start of day).
type ClockTime int

const (
	SecondsPerDay  = 24 * 3600
	SecondsPerWeek = 7 * SecondsPerDay

	// Midnight is the start of a day, "00:00:00".
	Midnight ClockTime = 0
	// EndOfDay is the "24:00:00" sentinel closing a day.
	EndOfDay ClockTime = SecondsPerDay
	// LastSecond is "23:59:59", which some feeds use instead of 24:00:00.
	LastSecond ClockTime = SecondsPerDay - 1

	midnightLabel = "Midnight"
)

var (
	// ErrInvalidFormat is returned when a time string does not match HH:MM:SS
	// or its components are out of range.
	ErrInvalidFormat = errors.New("hours: invalid time format")
)

// ParseClock parses a strict "HH:MM:SS" string. "24:00:00" is accepted and
// maps to EndOfDay.
func ParseClock(s string) (ClockTime, error) {
	if len(s) != 8 || s[2] != ':' || s[5] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	h, err := parseDigits(s[0:2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	m, err := parseDigits(s[3:5])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	sec, err := parseDigits(s[6:8])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if h > 24 || m > 59 || sec > 59 || (h == 24 && (m != 0 || sec != 0)) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidFormat, s)
	}
	return ClockTime(h*3600 + m*60 + sec), nil
}

// MustClock panics on invalid input. Intended for tests and constants.
func MustClock(s string) ClockTime {
	t, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return t
}

func parseDigits(p string) (int, error) {
	for _, r := range p {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(p)
}

// Seconds returns the number of seconds since midnight.
func (t ClockTime) Seconds() int { return int(t) }

func (t ClockTime) Hour() int   { return int(t) / 3600 }
func (t ClockTime) Minute() int { return (int(t) % 3600) / 60 }
func (t ClockTime) Second() int { return int(t) % 60 }

// IsEndOfDay reports whether t closes the day, either as 24:00:00 or as the
// 23:59:59 convention.
func (t ClockTime) IsEndOfDay() bool {
	return t == EndOfDay || t == LastSecond
}

// Valid reports whether t is within [Midnight, EndOfDay].
func (t ClockTime) Valid() bool {
	return t >= Midnight && t <= EndOfDay
}

// String implements fmt.Stringer (HH:MM:SS).
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// FormatConventional renders t on a 12-hour clock: "7AM", "7:30PM", "12AM"
// for the start of the day and "Midnight" for the end of the day. Seconds are
// dropped.
func FormatConventional(t ClockTime) string {
	if t.IsEndOfDay() {
		return midnightLabel
	}
	h := t.Hour()
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	if t.Minute() == 0 {
		return fmt.Sprintf("%d%s", h12, suffix)
	}
	return fmt.Sprintf("%d:%02d%s", h12, t.Minute(), suffix)
}

// ParseConventional is the inverse of FormatConventional for times on minute
// boundaries.
func ParseConventional(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, midnightLabel) {
		return EndOfDay, nil
	}
	upper := strings.ToUpper(s)
	var pm bool
	switch {
	case strings.HasSuffix(upper, "AM"):
	case strings.HasSuffix(upper, "PM"):
		pm = true
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	body := upper[:len(upper)-2]
	hourPart, minutePart, hasMinutes := strings.Cut(body, ":")
	h, err := strconv.Atoi(hourPart)
	if err != nil || h < 1 || h > 12 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	m := 0
	if hasMinutes {
		if len(minutePart) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		m, err = parseDigits(minutePart)
		if err != nil || m > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
	}
	h %= 12
	if pm {
		h += 12
	}
	return ClockTime(h*3600 + m*60), nil
}

// MarshalText encodes the time as HH:MM:SS.
func (t ClockTime) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d seconds", ErrInvalidFormat, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes HH:MM:SS.
func (t *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
