package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvertedRange = errors.New("end date is before start date")

// DateRange is an inclusive range of calendar days. Start and End are
// UTC midnights.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Day(start), End: Day(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("%s > %s: %w", r.Start.Format(DateLayout), r.End.Format(DateLayout), ErrInvertedRange)
	}
	return r, nil
}

// ParseDateRange parses YYYY-MM-DD bounds. An empty bound falls back to
// the matching bound of def, or to the other bound when def is zero.
func ParseDateRange(start, end string, def DateRange) (DateRange, error) {
	s, e := def.Start, def.End

	if v := strings.TrimSpace(start); v != "" {
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			return DateRange{}, fmt.Errorf("parse start date %q: %w", v, err)
		}
		s = t
	}

	if v := strings.TrimSpace(end); v != "" {
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			return DateRange{}, fmt.Errorf("parse end date %q: %w", v, err)
		}
		e = t
	}

	if def.IsZero() {
		switch {
		case strings.TrimSpace(start) == "":
			s = e
		case strings.TrimSpace(end) == "":
			e = s
		}
	}

	return NewDateRange(s, e)
}

// Contains reports whether t falls on any day of the range.
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// Day truncates t to its calendar day in UTC, keeping the wall-clock date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
