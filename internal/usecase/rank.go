package usecase

import (
	"sort"

	"salespulse/internal/domain"
)

// RankStats sorts agent stats into strict rank order: revenue desc,
// then won count desc, then win rate desc. Full ties keep input
// order. The input slice is not modified.
func RankStats(stats []domain.CommercialStats) []domain.CommercialStats {
	ranked := make([]domain.CommercialStats, len(stats))
	copy(ranked, stats)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.TotalRevenue != b.TotalRevenue {
			return a.TotalRevenue > b.TotalRevenue
		}
		if a.WonCount != b.WonCount {
			return a.WonCount > b.WonCount
		}
		return a.WinRate > b.WinRate
	})

	return ranked
}

// Podium returns the top n of already-ranked stats, padded with
// placeholder entries so consumers can index 0..n-1 safely.
func Podium(ranked []domain.CommercialStats, n int) []domain.CommercialStats {
	podium := make([]domain.CommercialStats, 0, n)
	for i := 0; i < n; i++ {
		if i < len(ranked) {
			podium = append(podium, ranked[i])
			continue
		}
		podium = append(podium, domain.CommercialStats{Agent: domain.PodiumPlaceholder})
	}
	return podium
}

// RecentWonSales returns the latest won deals over the full snapshot
// for the ticker feed, newest first, capped at limit. Records without
// a resolution date cannot be ordered and are skipped.
func RecentWonSales(records []domain.SaleRecord, limit int) []domain.WonSale {
	var won []domain.SaleRecord
	for _, record := range records {
		if record.IsWon() && record.ResolutionDate != nil {
			won = append(won, record)
		}
	}

	sort.SliceStable(won, func(i, j int) bool {
		return won[i].ResolutionDate.After(*won[j].ResolutionDate)
	})

	if len(won) > limit {
		won = won[:limit]
	}

	sales := make([]domain.WonSale, 0, len(won))
	for _, record := range won {
		sales = append(sales, domain.WonSale{
			Agent:      record.Agent,
			Revenue:    record.Revenue,
			Solution:   record.Solution,
			ResolvedAt: *record.ResolutionDate,
		})
	}
	return sales
}
