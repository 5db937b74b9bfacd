package hours

import (
	"errors"
	"testing"
	"time"
)

func TestCircularDayGap(t *testing.T) {
	for a := Monday; a <= Sunday; a++ {
		if got := CircularDayGap(a, a); got != 0 {
			t.Fatalf("CircularDayGap(%s, %s) = %d, want 0", a, a, got)
		}
		for b := Monday; b <= Sunday; b++ {
			if a == b {
				continue
			}
			if sum := CircularDayGap(a, b) + CircularDayGap(b, a); sum != 7 {
				t.Fatalf("gap(%s,%s)+gap(%s,%s) = %d, want 7", a, b, b, a, sum)
			}
		}
	}
	if got := CircularDayGap(Saturday, Tuesday); got != 3 {
		t.Fatalf("expected 3 days from Saturday to Tuesday, got %d", got)
	}
}

func TestWeekdayWraps(t *testing.T) {
	if Sunday.Next() != Monday {
		t.Fatalf("expected Sunday.Next to be Monday, got %s", Sunday.Next())
	}
	if Monday.Prev() != Sunday {
		t.Fatalf("expected Monday.Prev to be Sunday, got %s", Monday.Prev())
	}
	if got := Wednesday.Add(-10); got != Sunday {
		t.Fatalf("expected Wednesday-10 to be Sunday, got %s", got)
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay(" tue ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != Tuesday || d.Code() != "TUE" || d.String() != "Tuesday" {
		t.Fatalf("unexpected day %d (%s)", d, d)
	}

	if _, err := ParseDay("FUN"); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got %v", err)
	}
}

func TestWeekdayFromTime(t *testing.T) {
	if got := WeekdayFromTime(time.Sunday); got != Sunday {
		t.Fatalf("expected Sunday, got %s", got)
	}
	if got := WeekdayFromTime(time.Monday); got != Monday {
		t.Fatalf("expected Monday, got %s", got)
	}
}
