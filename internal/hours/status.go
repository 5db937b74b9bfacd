package hours

import "fmt"

// StatusClass drives the colour of the status indicator.
type StatusClass string

const (
	ClassOpen        StatusClass = "open"
	ClassClosingSoon StatusClass = "closing-soon"
	ClassClosed      StatusClass = "closed"
)

const (
	// ClosingSoonSeconds is how close to closing an open business is flagged.
	ClosingSoonSeconds = 3600
	// NearReopenSeconds is the largest gap that still reads "Opens again at".
	NearReopenSeconds = SecondsPerDay

	ClosedIndefinitelyText = "Closed indefinitely"
	OpenAllDayText         = "Open 24 Hours"
)

// Color maps a status class to the indicator colour.
func (c StatusClass) Color() string {
	switch c {
	case ClassOpen:
		return "green"
	case ClassClosingSoon:
		return "yellow"
	default:
		return "red"
	}
}

// Status is the header line shown above the schedule.
type Status struct {
	Text  string      `json:"text"`
	Class StatusClass `json:"statusClass"`
}

// FormatStatus turns an evaluation into display text and a status class.
func FormatStatus(e Evaluation) Status {
	switch v := e.(type) {
	case Open:
		return formatOpen(v)
	case Closed:
		return formatClosed(v)
	default:
		return Status{Text: ClosedIndefinitelyText, Class: ClassClosed}
	}
}

func formatOpen(v Open) Status {
	if v.Closes == nil {
		return Status{Text: OpenAllDayText, Class: ClassOpen}
	}
	text := "Open until " + FormatConventional(v.Closes.Time)
	if v.GapSeconds > ClosingSoonSeconds {
		return Status{Text: text, Class: ClassOpen}
	}
	if r := v.Reopens; r != nil {
		start := FormatConventional(r.Interval.Start)
		if r.Interval.Day == v.At.Day && r.GapSeconds < SecondsPerDay {
			text += ", reopens at " + start
		} else {
			text += fmt.Sprintf(", reopens %s %s", r.Interval.Day, start)
		}
	}
	return Status{Text: text, Class: ClassClosingSoon}
}

func formatClosed(v Closed) Status {
	if v.Next == nil {
		return Status{Text: ClosedIndefinitelyText, Class: ClassClosed}
	}
	start := FormatConventional(v.Next.Start)
	if v.GapSeconds <= NearReopenSeconds {
		return Status{Text: "Opens again at " + start, Class: ClassClosed}
	}
	return Status{Text: fmt.Sprintf("Opens %s %s", v.Next.Day, start), Class: ClassClosed}
}
