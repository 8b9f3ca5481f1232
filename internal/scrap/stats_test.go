package scrap

import (
	"testing"
	"time"

	"scraptrack-backend/internal/models"
)

func TestComputeStatsEmptySet(t *testing.T) {
	stats := ComputeStats(nil, "2026-08-30")

	if stats.Total != 0 || stats.PendingCount != 0 || stats.PendingValue != 0 {
		t.Fatalf("expected all-zero stats, got %+v", stats)
	}
	if len(stats.PendingByCategory) != 0 {
		t.Fatalf("expected empty breakdown, got %d categories", len(stats.PendingByCategory))
	}
}

func TestPendingValueScenario(t *testing.T) {
	// 3 records, weights [2.0, 3.5, 1.0], values [100, 200, 50], all PENDING.
	entries := []models.ScrapEntry{
		{ID: 1, WeightKG: 2.0, ScrapValueEstimate: 100, ApprovalStatus: models.ApprovalPending,
			MaterialCategory: models.CategoryStainlessSteel, Classification: models.ClassReusable},
		{ID: 2, WeightKG: 3.5, ScrapValueEstimate: 200, ApprovalStatus: models.ApprovalPending,
			MaterialCategory: models.CategoryAluminum, Classification: models.ClassNonReusable},
		{ID: 3, WeightKG: 1.0, ScrapValueEstimate: 50, ApprovalStatus: models.ApprovalPending,
			MaterialCategory: models.CategoryBrass, Classification: models.ClassReusable},
	}

	today := "2026-08-30"
	stats := ComputeStats(entries, today)
	if stats.PendingValue != 350 {
		t.Fatalf("expected pending value 350, got %v", stats.PendingValue)
	}
	if stats.PendingCount != 3 {
		t.Fatalf("expected 3 pending, got %d", stats.PendingCount)
	}

	// Approve the first two today.
	decidedAt := time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC)
	changed, err := ApplyDecision(entries, []uint{1, 2}, Decision{
		Status:       models.ApprovalApproved,
		ApproverID:   7,
		ApproverName: "Supervisor",
		DecidedAt:    decidedAt,
	})
	if err != nil {
		t.Fatalf("apply decision: %v", err)
	}
	if len(changed) != 2 {
		t.Fatalf("expected 2 changed entries, got %d", len(changed))
	}

	// Rebuild the snapshot the way the store would after persisting.
	after := []models.ScrapEntry{changed[0], changed[1], entries[2]}
	stats = ComputeStats(after, today)

	if stats.PendingValue != 50 {
		t.Fatalf("expected remaining pending value 50, got %v", stats.PendingValue)
	}
	if stats.ApprovedToday != 2 {
		t.Fatalf("expected 2 approved today, got %d", stats.ApprovedToday)
	}
	if stats.ApprovedCount != 2 || stats.PendingCount != 1 {
		t.Fatalf("expected 2 approved / 1 pending, got %d / %d", stats.ApprovedCount, stats.PendingCount)
	}
}

func TestTodayCountsUseDatePrefix(t *testing.T) {
	yesterday := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	today := time.Date(2026, 8, 30, 0, 1, 0, 0, time.UTC)

	entries := []models.ScrapEntry{
		{ID: 1, ApprovalStatus: models.ApprovalApproved, ApprovalDate: &yesterday,
			MaterialCategory: models.CategoryPVDF, Classification: models.ClassReusable},
		{ID: 2, ApprovalStatus: models.ApprovalApproved, ApprovalDate: &today,
			MaterialCategory: models.CategoryPVDF, Classification: models.ClassReusable},
		{ID: 3, ApprovalStatus: models.ApprovalRejected, ApprovalDate: &today,
			MaterialCategory: models.CategoryPlastic, Classification: models.ClassNonReusable},
	}

	stats := ComputeStats(entries, "2026-08-30")
	if stats.ApprovedToday != 1 {
		t.Fatalf("expected 1 approved today, got %d", stats.ApprovedToday)
	}
	if stats.RejectedToday != 1 {
		t.Fatalf("expected 1 rejected today, got %d", stats.RejectedToday)
	}
	if stats.ApprovedCount != 2 {
		t.Fatalf("expected 2 approved total, got %d", stats.ApprovedCount)
	}
}

func TestCategoryBreakdownSumsToPendingCount(t *testing.T) {
	entries := []models.ScrapEntry{
		{ID: 1, ApprovalStatus: models.ApprovalPending, MaterialCategory: models.CategoryStainlessSteel,
			Classification: models.ClassReusable, WeightKG: 1.2, ScrapValueEstimate: 10},
		{ID: 2, ApprovalStatus: models.ApprovalPending, MaterialCategory: models.CategoryStainlessSteel,
			Classification: models.ClassNonReusable, WeightKG: 0.8, ScrapValueEstimate: 5},
		{ID: 3, ApprovalStatus: models.ApprovalPending, MaterialCategory: models.CategoryMildSteel,
			Classification: models.ClassReusable, WeightKG: 4.0, ScrapValueEstimate: 20},
		{ID: 4, ApprovalStatus: models.ApprovalApproved, MaterialCategory: models.CategoryBrass,
			Classification: models.ClassReusable, WeightKG: 2.0, ScrapValueEstimate: 99},
	}

	stats := ComputeStats(entries, "2026-08-30")

	sum := 0
	for _, b := range stats.PendingByCategory {
		sum += b.Count
	}
	if sum != stats.PendingCount {
		t.Fatalf("breakdown counts sum to %d, pending count is %d", sum, stats.PendingCount)
	}
	if stats.PendingReusable+stats.PendingNonReusable != stats.PendingCount {
		t.Fatalf("classification split %d+%d does not sum to pending count %d",
			stats.PendingReusable, stats.PendingNonReusable, stats.PendingCount)
	}

	// Approved entries never appear in the pending breakdown.
	for _, b := range stats.PendingByCategory {
		if b.Category == models.CategoryBrass {
			t.Fatalf("approved BRASS entry leaked into the pending breakdown")
		}
	}
}
