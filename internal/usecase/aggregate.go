package usecase

import (
	"math"

	"salespulse/internal/domain"
)

// AggregateByAgent groups a filtered view by agent and computes one
// stats row per agent. Every agent in the view gets a row even when
// it has no won deals. Pure function; output order follows first
// appearance in the input.
func AggregateByAgent(records []domain.SaleRecord) []domain.CommercialStats {
	type accumulator struct {
		stats       *domain.CommercialStats
		daysSum     float64
		wonWithDays int
		calls       int
		whatsapp    int
	}

	index := make(map[string]*accumulator)
	var order []string

	for _, record := range records {
		acc, ok := index[record.Agent]
		if !ok {
			acc = &accumulator{stats: &domain.CommercialStats{Agent: record.Agent}}
			index[record.Agent] = acc
			order = append(order, record.Agent)
		}

		acc.stats.Leads++
		acc.calls += record.CallsOutgoing
		acc.whatsapp += record.WhatsappAnswered
		acc.stats.EffortScore += effortScore(record)

		switch record.Status {
		case domain.StatusWon:
			acc.stats.WonCount++
			acc.stats.TotalRevenue += record.Revenue
			if record.DaysToClose != nil {
				acc.daysSum += *record.DaysToClose
				acc.wonWithDays++
			}
		case domain.StatusLost:
			acc.stats.LostCount++
		default:
			acc.stats.OpenCount++
		}
	}

	result := make([]domain.CommercialStats, 0, len(order))
	for _, agent := range order {
		acc := index[agent]
		s := acc.stats

		if closed := s.WonCount + s.LostCount; closed > 0 {
			s.WinRate = int(math.Round(float64(s.WonCount) / float64(closed) * 100))
		}
		if acc.wonWithDays > 0 {
			s.AvgDaysToClose = acc.daysSum / float64(acc.wonWithDays)
		}
		if s.WonCount > 0 {
			s.AvgTicket = s.TotalRevenue / float64(s.WonCount)
		}
		if s.Leads > 0 {
			s.EffortPerLead = float64(acc.calls+acc.whatsapp) / float64(s.Leads)
			s.RevenuePerLead = s.TotalRevenue / float64(s.Leads)
		}

		result = append(result, *s)
	}
	return result
}

// effortScore weights the activity counters of one record. The score
// feeds effort/efficiency views only; ranking never reads it.
func effortScore(record domain.SaleRecord) float64 {
	return float64(record.CallsOutgoing)*1.0 +
		float64(record.WhatsappAnswered)*0.5 -
		float64(record.CallsIncomingFailed)*0.2
}

// SummarizeTeam computes the whole-team rollup over the same filtered
// view, including progress against the configured revenue goal.
func SummarizeTeam(records []domain.SaleRecord, goal float64) domain.TeamSummary {
	summary := domain.TeamSummary{Leads: len(records), Goal: goal}

	var calls, whatsapp int
	for _, record := range records {
		calls += record.CallsOutgoing
		whatsapp += record.WhatsappAnswered

		switch record.Status {
		case domain.StatusWon:
			summary.WonCount++
			summary.TotalRevenue += record.Revenue
		case domain.StatusLost:
			summary.LostCount++
		default:
			summary.OpenCount++
		}
	}

	if summary.WonCount > 0 {
		summary.AvgTicket = summary.TotalRevenue / float64(summary.WonCount)
	}
	if closed := summary.WonCount + summary.LostCount; closed > 0 {
		summary.WinRate = float64(summary.WonCount) / float64(closed) * 100
	}
	if summary.Leads > 0 {
		summary.ConversionRate = float64(summary.WonCount) / float64(summary.Leads) * 100
		summary.AvgEffort = float64(calls+whatsapp) / float64(summary.Leads)
	}
	if goal > 0 {
		summary.GoalProgress = summary.TotalRevenue / goal * 100
	}

	return summary
}
