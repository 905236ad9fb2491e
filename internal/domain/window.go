package domain

import (
	"fmt"
	"time"
)

// DefaultDaysBack is the ingestion window used when the caller provides no
// explicit bounds.
const DefaultDaysBack = 7

// WindowRequest is the raw invocation input. Exactly one of StartDate or
// DaysBack determines the window start; EndDate is only valid together with
// StartDate.
type WindowRequest struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	DaysBack  int    `json:"daysBack,omitempty"`
}

// FetchWindow is the resolved ingestion range. Start is never after End.
type FetchWindow struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow derives the fetch window from the request at the given
// reference time. An EndDate without a StartDate is rejected; with neither
// bound the window is DaysBack days (default 7) back from now.
func ResolveWindow(req WindowRequest, now time.Time) (FetchWindow, error) {
	if req.EndDate != "" && req.StartDate == "" {
		return FetchWindow{}, fmt.Errorf("endDate requires startDate to be specified")
	}

	end := now
	if req.EndDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return FetchWindow{}, fmt.Errorf("parse endDate: %w", err)
		}
		end = parsed
	}

	if req.StartDate != "" {
		start, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return FetchWindow{}, fmt.Errorf("parse startDate: %w", err)
		}
		if start.After(end) {
			return FetchWindow{}, fmt.Errorf("startDate %s is after endDate %s", req.StartDate, req.EndDate)
		}
		return FetchWindow{Start: start, End: end}, nil
	}

	daysBack := req.DaysBack
	if daysBack <= 0 {
		daysBack = DefaultDaysBack
	}
	return FetchWindow{Start: now.AddDate(0, 0, -daysBack), End: end}, nil
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (w FetchWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Years returns every calendar year touched by the window, capped at the
// current year, most recent first. The upstream API requires queries to be
// scoped to a year partition.
func (w FetchWindow) Years(now time.Time) []int {
	first := w.Start.Year()
	last := w.End.Year()
	if current := now.Year(); last > current {
		last = current
	}

	var years []int
	for y := last; y >= first; y-- {
		years = append(years, y)
	}
	return years
}
