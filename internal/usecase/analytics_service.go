package usecase

import (
	"time"

	"salespulse/internal/domain"
	"salespulse/pkg/logger"
)

// podium size is fixed so consumers can index slots positionally
const PodiumSize = 3

const recentSalesLimit = 15

// AnalyticsService answers read queries over the current snapshot.
// Everything below the snapshot read is a pure function, so queries
// need no coordination with the polling loop.
type AnalyticsService struct {
	snapshots domain.SnapshotRepository
	logger    *logger.Logger
	teamGoal  float64
	now       func() time.Time
}

func NewAnalyticsService(snapshots domain.SnapshotRepository, logger *logger.Logger, teamGoal float64) *AnalyticsService {
	return &AnalyticsService{
		snapshots: snapshots,
		logger:    logger,
		teamGoal:  teamGoal,
		now:       time.Now,
	}
}

// StatsQuery is one filtered-stats request. Custom bounds are only
// consulted when Period is the custom selector.
type StatsQuery struct {
	Period      domain.Period
	Anchor      domain.AnchorPolicy
	CustomStart *time.Time
	CustomEnd   *time.Time

	Agents    []string
	Sources   []string
	Locations []string
	Statuses  []string
	Stages    []string
	Solutions []string
}

// StatsResult bundles everything a dashboard view needs for one
// (snapshot, filter) pair.
type StatsResult struct {
	Range       domain.DateRange         `json:"range"`
	Anchor      domain.AnchorPolicy      `json:"anchor"`
	Stats       []domain.CommercialStats `json:"stats"`
	Podium      []domain.CommercialStats `json:"podium"`
	Team        domain.TeamSummary       `json:"team"`
	LastUpdated time.Time                `json:"last_updated"`
	Loading     bool                     `json:"loading"`
}

// Stats resolves the query period, filters the current snapshot and
// returns ranked per-agent stats with the team rollup.
func (s *AnalyticsService) Stats(query StatsQuery) StatsResult {
	snapshot := s.snapshots.Current()
	if snapshot == nil {
		return StatsResult{
			Anchor:  query.Anchor,
			Podium:  Podium(nil, PodiumSize),
			Loading: true,
		}
	}

	dateRange := ResolvePeriod(query.Period, s.now(), query.CustomStart, query.CustomEnd)
	if query.Period == domain.PeriodCustom && dateRange.Unbounded() {
		s.logger.Warn("Custom period resolved without bounds, no date restriction applied")
	}

	state := domain.FilterState{
		Range:     dateRange,
		Anchor:    query.Anchor,
		Agents:    query.Agents,
		Sources:   query.Sources,
		Locations: query.Locations,
		Statuses:  query.Statuses,
		Stages:    query.Stages,
		Solutions: query.Solutions,
	}

	filtered := FilterRecords(snapshot.Records, state)
	ranked := RankStats(AggregateByAgent(filtered))

	return StatsResult{
		Range:       dateRange,
		Anchor:      query.Anchor,
		Stats:       ranked,
		Podium:      Podium(ranked, PodiumSize),
		Team:        SummarizeTeam(filtered, s.teamGoal),
		LastUpdated: snapshot.FetchedAt,
	}
}

// SnapshotResult is the full-snapshot payload with staleness info.
type SnapshotResult struct {
	Records     []domain.SaleRecord `json:"records"`
	LastUpdated time.Time           `json:"last_updated"`
	Loading     bool                `json:"loading"`
}

// Snapshot returns the full current snapshot. Loading is true only
// until the first successful fetch has published.
func (s *AnalyticsService) Snapshot() SnapshotResult {
	snapshot := s.snapshots.Current()
	if snapshot == nil {
		return SnapshotResult{Records: []domain.SaleRecord{}, Loading: true}
	}
	return SnapshotResult{Records: snapshot.Records, LastUpdated: snapshot.FetchedAt}
}

// Facets returns the distinct filter values over the unfiltered
// snapshot.
func (s *AnalyticsService) Facets() domain.FacetValues {
	snapshot := s.snapshots.Current()
	if snapshot == nil {
		return domain.FacetValues{}
	}
	return ExtractFacetValues(snapshot.Records)
}

// RecentSales returns the won-deal ticker feed over the full
// snapshot, independent of any filter.
func (s *AnalyticsService) RecentSales() []domain.WonSale {
	snapshot := s.snapshots.Current()
	if snapshot == nil {
		return nil
	}
	return RecentWonSales(snapshot.Records, recentSalesLimit)
}
