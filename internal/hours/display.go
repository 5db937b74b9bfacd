package hours

import "slices"

// Row is one line of the weekly schedule display.
type Row struct {
	Day       Weekday `json:"-"`
	DayLabel  string  `json:"day"`
	TimeRange string  `json:"hours"`
	Today     bool    `json:"today"`
}

// Group renders the timeline Monday first, one row per interval. Only the
// first row of a day carries the day name.
func Group(t Timeline) []Row {
	rows := make([]Row, 0, t.Len())
	for i, iv := range t.intervals {
		label := iv.Day.String()
		if i > 0 && t.intervals[i-1].Day == iv.Day {
			label = ""
		}
		rows = append(rows, Row{
			Day:       iv.Day,
			DayLabel:  label,
			TimeRange: TimeRangeLabel(iv),
		})
	}
	return rows
}

// TimeRangeLabel formats an interval as "7AM-1PM", or "Open 24 Hours" for a
// full day.
func TimeRangeLabel(iv NormalizedInterval) string {
	if iv.IsFullDay() {
		return OpenAllDayText
	}
	return FormatConventional(iv.Start) + "-" + FormatConventional(iv.End)
}

// HighlightDay returns a copy of rows with Today set on the rows for day.
func HighlightDay(rows []Row, day Weekday) []Row {
	out := slices.Clone(rows)
	for i := range out {
		out[i].Today = out[i].Day == day
	}
	return out
}
