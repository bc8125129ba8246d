package usecase

import (
	"testing"
	"time"

	"salespulse/internal/domain"
)

func TestRankStatsTieBreaks(t *testing.T) {
	stats := []domain.CommercialStats{
		{Agent: "A", TotalRevenue: 10000, WonCount: 5, LostCount: 5, WinRate: 50},
		{Agent: "B", TotalRevenue: 10000, WonCount: 6, LostCount: 2, WinRate: 75},
		{Agent: "C", TotalRevenue: 20000, WonCount: 1, WinRate: 100},
	}

	ranked := RankStats(stats)

	if ranked[0].Agent != "C" {
		t.Fatalf("highest revenue first, got %q", ranked[0].Agent)
	}
	// equal revenue: won count breaks the tie
	if ranked[1].Agent != "B" || ranked[2].Agent != "A" {
		t.Fatalf("tie-break on won count failed: %q, %q", ranked[1].Agent, ranked[2].Agent)
	}

	// input untouched
	if stats[0].Agent != "A" {
		t.Fatal("input slice was reordered")
	}
}

func TestRankStatsWinRateTieBreak(t *testing.T) {
	stats := []domain.CommercialStats{
		{Agent: "A", TotalRevenue: 5000, WonCount: 3, WinRate: 50},
		{Agent: "B", TotalRevenue: 5000, WonCount: 3, WinRate: 75},
	}

	ranked := RankStats(stats)
	if ranked[0].Agent != "B" {
		t.Fatalf("win rate tie-break failed, got %q first", ranked[0].Agent)
	}
}

func TestRankStatsFullTieKeepsInputOrder(t *testing.T) {
	stats := []domain.CommercialStats{
		{Agent: "First", TotalRevenue: 100, WonCount: 1, WinRate: 50},
		{Agent: "Second", TotalRevenue: 100, WonCount: 1, WinRate: 50},
	}

	ranked := RankStats(stats)
	if ranked[0].Agent != "First" || ranked[1].Agent != "Second" {
		t.Fatalf("full tie must be stable: %q, %q", ranked[0].Agent, ranked[1].Agent)
	}
}

func TestPodiumPadding(t *testing.T) {
	ranked := []domain.CommercialStats{
		{Agent: "Ana", TotalRevenue: 100},
	}

	podium := Podium(ranked, 3)
	if len(podium) != 3 {
		t.Fatalf("podium size = %d, want 3", len(podium))
	}
	if podium[0].Agent != "Ana" {
		t.Errorf("slot 0 = %q", podium[0].Agent)
	}
	for i := 1; i < 3; i++ {
		if podium[i].Agent != domain.PodiumPlaceholder {
			t.Errorf("slot %d = %q, want placeholder", i, podium[i].Agent)
		}
		if podium[i].TotalRevenue != 0 || podium[i].WonCount != 0 || podium[i].WinRate != 0 {
			t.Errorf("slot %d placeholder not zeroed: %+v", i, podium[i])
		}
	}
}

func TestPodiumEmptyInput(t *testing.T) {
	podium := Podium(nil, 3)
	if len(podium) != 3 {
		t.Fatalf("podium size = %d, want 3", len(podium))
	}
}

func TestRecentWonSales(t *testing.T) {
	d := func(day int) *time.Time {
		t := time.Date(2025, 3, day, 12, 0, 0, 0, time.UTC)
		return &t
	}

	records := []domain.SaleRecord{
		{Agent: "Ana", Status: domain.StatusWon, Revenue: 100, ResolutionDate: d(1)},
		{Agent: "Luis", Status: domain.StatusWon, Revenue: 200, ResolutionDate: d(9)},
		{Agent: "Eva", Status: domain.StatusLost, ResolutionDate: d(10)},
		{Agent: "Mar", Status: domain.StatusWon, Revenue: 300}, // undated, skipped
		{Agent: "Jon", Status: domain.StatusWon, Revenue: 400, ResolutionDate: d(5)},
	}

	sales := RecentWonSales(records, 2)
	if len(sales) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(sales))
	}
	if sales[0].Agent != "Luis" || sales[1].Agent != "Jon" {
		t.Fatalf("newest first expected, got %q, %q", sales[0].Agent, sales[1].Agent)
	}
}
