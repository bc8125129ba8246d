package domain

import (
	"time"
)

// PodiumPlaceholder is the agent name used to pad a podium that has
// fewer ranked agents than slots.
const PodiumPlaceholder = "-"

// CommercialStats is the aggregated performance of one agent over a
// filtered view. Recomputed from scratch on every pass; never mutated
// after construction.
type CommercialStats struct {
	Agent          string  `json:"agent"`
	TotalRevenue   float64 `json:"total_revenue"`
	Leads          int     `json:"leads"`
	WonCount       int     `json:"won_count"`
	LostCount      int     `json:"lost_count"`
	OpenCount      int     `json:"open_count"`
	WinRate        int     `json:"win_rate"`
	AvgDaysToClose float64 `json:"avg_days_to_close"`

	// Secondary metrics for effort/efficiency views. Never consulted
	// by the ranking comparator.
	AvgTicket      float64 `json:"avg_ticket"`
	EffortScore    float64 `json:"effort_score"`
	EffortPerLead  float64 `json:"effort_per_lead"`
	RevenuePerLead float64 `json:"revenue_per_lead"`
}

// TeamSummary is the whole-team rollup over the same filtered view
// the per-agent stats were computed from.
type TeamSummary struct {
	Leads          int     `json:"leads"`
	WonCount       int     `json:"won_count"`
	LostCount      int     `json:"lost_count"`
	OpenCount      int     `json:"open_count"`
	TotalRevenue   float64 `json:"total_revenue"`
	AvgTicket      float64 `json:"avg_ticket"`
	WinRate        float64 `json:"win_rate"`
	ConversionRate float64 `json:"conversion_rate"`
	AvgEffort      float64 `json:"avg_effort"`
	Goal           float64 `json:"goal"`
	GoalProgress   float64 `json:"goal_progress"`
}

// FacetValues holds the distinct selectable values per facet over the
// unfiltered snapshot, for building filter controls.
type FacetValues struct {
	Agents    []string `json:"agents"`
	Sources   []string `json:"sources"`
	Locations []string `json:"locations"`
	Statuses  []string `json:"statuses"`
	Stages    []string `json:"stages"`
	Solutions []string `json:"solutions"`
}

// WonSale is one entry of the recent-sales ticker feed.
type WonSale struct {
	Agent      string    `json:"agent"`
	Revenue    float64   `json:"revenue"`
	Solution   string    `json:"solution"`
	ResolvedAt time.Time `json:"resolved_at"`
}
