package usecase

import (
	"sort"
	"time"

	"salespulse/internal/domain"
)

// FilterRecords returns the subsequence of records matching the
// filter state, preserving snapshot order. It is a pure function of
// its inputs.
//
// The anchor policy decides which date is tested against the range:
// registration anchoring keeps every record whose lead entered the
// pipeline inside the window; resolution anchoring keeps only closed
// records resolved inside the window and excludes Open records and
// closed records missing a resolution date.
func FilterRecords(records []domain.SaleRecord, state domain.FilterState) []domain.SaleRecord {
	agents := toSet(state.Agents)
	sources := toSet(state.Sources)
	locations := toSet(state.Locations)
	statuses := toSet(state.Statuses)
	stages := toSet(state.Stages)
	solutions := toSet(state.Solutions)

	var result []domain.SaleRecord
	for _, record := range records {
		anchor, ok := anchorDate(record, state.Anchor)
		if !ok {
			continue
		}
		if !state.Range.Unbounded() && !state.Range.Contains(anchor) {
			continue
		}

		if !matches(agents, record.Agent) {
			continue
		}
		if !matches(sources, record.Attribution) {
			continue
		}
		if !matches(locations, record.Location) {
			continue
		}
		if !matches(statuses, string(record.Status)) {
			continue
		}
		if !matches(stages, record.Stage) {
			continue
		}
		if !matches(solutions, record.Solution) {
			continue
		}

		result = append(result, record)
	}
	return result
}

func anchorDate(record domain.SaleRecord, policy domain.AnchorPolicy) (time.Time, bool) {
	if policy == domain.AnchorResolution {
		if record.IsOpen() || record.ResolutionDate == nil {
			return time.Time{}, false
		}
		return *record.ResolutionDate, true
	}
	return record.RegistrationDate, true
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// nil set = facet unconstrained
func matches(set map[string]struct{}, value string) bool {
	if set == nil {
		return true
	}
	_, ok := set[value]
	return ok
}

// ExtractFacetValues computes the distinct selectable values per
// facet over the unfiltered snapshot: sorted, de-duplicated, blanks
// removed.
func ExtractFacetValues(records []domain.SaleRecord) domain.FacetValues {
	return domain.FacetValues{
		Agents:    distinct(records, func(r domain.SaleRecord) string { return r.Agent }),
		Sources:   distinct(records, func(r domain.SaleRecord) string { return r.Attribution }),
		Locations: distinct(records, func(r domain.SaleRecord) string { return r.Location }),
		Statuses:  distinct(records, func(r domain.SaleRecord) string { return string(r.Status) }),
		Stages:    distinct(records, func(r domain.SaleRecord) string { return r.Stage }),
		Solutions: distinct(records, func(r domain.SaleRecord) string { return r.Solution }),
	}
}

func distinct(records []domain.SaleRecord, key func(domain.SaleRecord) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, record := range records {
		v := key(record)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
