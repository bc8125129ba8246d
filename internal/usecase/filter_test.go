package usecase

import (
	"reflect"
	"testing"
	"time"

	"salespulse/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 12, 0, 0, 0, time.UTC)
}

func dayPtr(d int) *time.Time {
	t := day(d)
	return &t
}

func testRecords() []domain.SaleRecord {
	return []domain.SaleRecord{
		{ID: "1", Agent: "Ana", Status: domain.StatusWon, Revenue: 1000, RegistrationDate: day(1), ResolutionDate: dayPtr(10), Attribution: "Facebook", Location: "Madrid", Stage: "Cierre", Solution: "Premium"},
		{ID: "2", Agent: "Luis", Status: domain.StatusOpen, RegistrationDate: day(5), Attribution: "Google", Location: "Sevilla", Stage: "Negociación", Solution: "Basic"},
		{ID: "3", Agent: "Ana", Status: domain.StatusLost, RegistrationDate: day(8), ResolutionDate: dayPtr(12), Attribution: "Facebook", Location: "Madrid", Stage: "Cierre", Solution: "Basic"},
		{ID: "4", Agent: "Luis", Status: domain.StatusWon, Revenue: 500, RegistrationDate: day(2), Attribution: "Referral", Location: "Sevilla", Stage: "Cierre", Solution: "Premium"},
	}
}

func rangeBetween(from, to int) domain.DateRange {
	start := time.Date(2025, 3, from, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, to, 23, 59, 59, 0, time.UTC)
	return domain.DateRange{Start: &start, End: &end}
}

func TestFilterRegistrationAnchor(t *testing.T) {
	state := domain.FilterState{
		Range:  rangeBetween(1, 5),
		Anchor: domain.AnchorRegistration,
	}

	got := FilterRecords(testRecords(), state)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	// snapshot order preserved
	if got[0].ID != "1" || got[1].ID != "2" || got[2].ID != "4" {
		t.Fatalf("order not preserved: %v", ids(got))
	}
}

func TestFilterResolutionAnchorExcludesOpenAndUndated(t *testing.T) {
	state := domain.FilterState{
		Range:  rangeBetween(1, 31),
		Anchor: domain.AnchorResolution,
	}

	got := FilterRecords(testRecords(), state)
	// record 2 is open, record 4 is won but has no resolution date
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %v", ids(got))
	}
	if got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected records: %v", ids(got))
	}
}

func TestFilterFacets(t *testing.T) {
	state := domain.FilterState{
		Range:   rangeBetween(1, 31),
		Anchor:  domain.AnchorRegistration,
		Sources: []string{"Facebook"},
	}

	got := FilterRecords(testRecords(), state)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %v", ids(got))
	}

	state.Agents = []string{"Luis"}
	got = FilterRecords(testRecords(), state)
	if len(got) != 0 {
		t.Fatalf("facets must AND together, got %v", ids(got))
	}

	state = domain.FilterState{
		Range:    rangeBetween(1, 31),
		Anchor:   domain.AnchorRegistration,
		Statuses: []string{"won", "lost"},
	}
	got = FilterRecords(testRecords(), state)
	if len(got) != 3 {
		t.Fatalf("multi-value facet should OR within itself, got %v", ids(got))
	}
}

func TestFilterEmptyFacetsPassEverything(t *testing.T) {
	state := domain.FilterState{
		Range:  rangeBetween(1, 31),
		Anchor: domain.AnchorRegistration,
	}

	got := FilterRecords(testRecords(), state)
	if len(got) != 4 {
		t.Fatalf("expected all records, got %d", len(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	state := domain.FilterState{
		Range:   rangeBetween(1, 10),
		Anchor:  domain.AnchorRegistration,
		Sources: []string{"Facebook", "Google"},
	}
	records := testRecords()

	first := FilterRecords(records, state)
	second := FilterRecords(records, state)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("filtering is not a pure function of its inputs")
	}
}

func TestExtractFacetValues(t *testing.T) {
	facets := ExtractFacetValues(testRecords())

	if !reflect.DeepEqual(facets.Agents, []string{"Ana", "Luis"}) {
		t.Errorf("agents = %v", facets.Agents)
	}
	if !reflect.DeepEqual(facets.Sources, []string{"Facebook", "Google", "Referral"}) {
		t.Errorf("sources = %v", facets.Sources)
	}
	if !reflect.DeepEqual(facets.Statuses, []string{"lost", "open", "won"}) {
		t.Errorf("statuses = %v", facets.Statuses)
	}
	if !reflect.DeepEqual(facets.Solutions, []string{"Basic", "Premium"}) {
		t.Errorf("solutions = %v", facets.Solutions)
	}
}

func TestExtractFacetValuesSkipsBlanks(t *testing.T) {
	records := []domain.SaleRecord{
		{Agent: "Ana", Stage: ""},
		{Agent: "", Stage: "Cierre"},
	}
	facets := ExtractFacetValues(records)

	if !reflect.DeepEqual(facets.Agents, []string{"Ana"}) {
		t.Errorf("agents = %v", facets.Agents)
	}
	if !reflect.DeepEqual(facets.Stages, []string{"Cierre"}) {
		t.Errorf("stages = %v", facets.Stages)
	}
}

func ids(records []domain.SaleRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
