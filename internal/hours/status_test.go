package hours

import "testing"

func TestFormatStatus(t *testing.T) {
	fixture := []RawInterval{
		raw("TUE", "07:00:00", "13:00:00"),
		raw("WED", "07:00:00", "15:00:00"),
	}
	crossing := []RawInterval{
		raw("TUE", "15:00:00", "24:00:00"),
		raw("WED", "00:00:00", "02:00:00"),
	}
	overlapping := []RawInterval{
		raw("SAT", "21:00:00", "02:00:00"),
		raw("SUN", "01:00:00", "05:00:00"),
	}
	split := []RawInterval{
		raw("FRI", "09:00:00", "12:00:00"),
		raw("FRI", "13:30:00", "18:00:00"),
	}

	tests := []struct {
		name     string
		schedule []RawInterval
		day      string
		clock    string
		want     Status
	}{
		{"open", fixture, "WED", "09:08:00", Status{"Open until 3PM", ClassOpen}},
		{"closed far", fixture, "WED", "16:00:00", Status{"Opens Tuesday 7AM", ClassClosed}},
		{"closed near", fixture, "TUE", "14:00:00", Status{"Opens again at 7AM", ClassClosed}},
		{"closing soon next day", fixture, "TUE", "12:30:00", Status{"Open until 1PM, reopens Wednesday 7AM", ClassClosingSoon}},
		{"closing soon same day", split, "FRI", "11:15:00", Status{"Open until 12PM, reopens at 1:30PM", ClassClosingSoon}},
		{"closing soon past midnight", crossing, "WED", "01:30:00", Status{"Open until 2AM, reopens Tuesday 3PM", ClassClosingSoon}},
		{"open through overlapping night", overlapping, "SUN", "01:30:00", Status{"Open until 5AM", ClassOpen}},
		{"open to midnight", []RawInterval{raw("MON", "18:00:00", "24:00:00")}, "MON", "19:00:00", Status{"Open until Midnight", ClassOpen}},
		{"empty", nil, "MON", "10:00:00", Status{ClosedIndefinitelyText, ClassClosed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := mustTimeline(t, tt.schedule...)
			got := FormatStatus(Evaluate(tl, at(t, tt.day, tt.clock)))
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestFormatStatusOpenAllWeek(t *testing.T) {
	var in []RawInterval
	for _, code := range dayCodes {
		in = append(in, raw(code, "00:00:00", "24:00:00"))
	}
	got := FormatStatus(Evaluate(mustTimeline(t, in...), at(t, "SAT", "12:00:00")))
	if got.Text != OpenAllDayText || got.Class != ClassOpen {
		t.Fatalf("unexpected status %+v", got)
	}
}

func TestFormatStatusNil(t *testing.T) {
	if got := FormatStatus(nil); got.Text != ClosedIndefinitelyText {
		t.Fatalf("unexpected status %+v", got)
	}
}

func TestStatusClassColor(t *testing.T) {
	colors := map[StatusClass]string{
		ClassOpen:        "green",
		ClassClosingSoon: "yellow",
		ClassClosed:      "red",
	}
	for class, want := range colors {
		if got := class.Color(); got != want {
			t.Errorf("%s.Color() = %q, want %q", class, got, want)
		}
	}
}
