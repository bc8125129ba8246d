package domain

import (
	"time"
)

// Period is a named time-window selector resolved against "now" at
// evaluation time.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodLast7     Period = "last7"
	PeriodLast30    Period = "last30"
	PeriodCustom    Period = "custom"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
	PeriodYear      Period = "year"
)

// AnchorPolicy selects which date field of a record is tested against
// the active interval. Registration anchoring serves funnel views;
// resolution anchoring serves won-revenue views and excludes records
// that have no resolution date (Open records included).
type AnchorPolicy string

const (
	AnchorRegistration AnchorPolicy = "registration"
	AnchorResolution   AnchorPolicy = "resolution"
)

// DateRange is a resolved inclusive interval. A nil bound means the
// range is explicitly open on that side; callers asked for it, it is
// not a silently matching default. ExactDay narrows membership to
// calendar-day equality with Start (today/yesterday selectors).
type DateRange struct {
	Start    *time.Time `json:"start,omitempty"`
	End      *time.Time `json:"end,omitempty"`
	ExactDay bool       `json:"exact_day,omitempty"`
}

// Contains reports whether t falls in the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.ExactDay && r.Start != nil {
		y1, m1, d1 := r.Start.Date()
		y2, m2, d2 := t.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Unbounded reports whether the range restricts nothing.
func (r DateRange) Unbounded() bool {
	return r.Start == nil && r.End == nil
}

// FilterState is the full filter selection applied to a snapshot.
// An empty slice for a facet means the facet is unconstrained.
type FilterState struct {
	Range  DateRange    `json:"range"`
	Anchor AnchorPolicy `json:"anchor"`

	Agents    []string `json:"agents,omitempty"`
	Sources   []string `json:"sources,omitempty"`
	Locations []string `json:"locations,omitempty"`
	Statuses  []string `json:"statuses,omitempty"`
	Stages    []string `json:"stages,omitempty"`
	Solutions []string `json:"solutions,omitempty"`
}
