package scrap

import (
	"scraptrack-backend/internal/models"
)

// CategoryBreakdown aggregates PENDING entries of one material category.
type CategoryBreakdown struct {
	Category models.MaterialCategory `json:"category"`
	Count    int                     `json:"count"`
	WeightKG float64                 `json:"weight_kg"`
	Value    float64                 `json:"value"`
}

// Stats is the summary recomputed from the record set. Sums are plain
// floating-point accumulation; rounding is left to the presentation layer.
type Stats struct {
	Total              int                 `json:"total"`
	PendingCount       int                 `json:"pending_count"`
	ApprovedCount      int                 `json:"approved_count"`
	RejectedCount      int                 `json:"rejected_count"`
	ApprovedToday      int                 `json:"approved_today"`
	RejectedToday      int                 `json:"rejected_today"`
	PendingValue       float64             `json:"pending_value"`
	PendingWeightKG    float64             `json:"pending_weight_kg"`
	PendingReusable    int                 `json:"pending_reusable"`
	PendingNonReusable int                 `json:"pending_non_reusable"`
	PendingByCategory  []CategoryBreakdown `json:"pending_by_category"`
}

// ComputeStats derives the summary from a snapshot of the record set. today is
// the current date as "YYYY-MM-DD"; decision timestamps count as "today" when
// their date part equals it. An empty record set yields all-zero aggregates
// and an empty breakdown.
func ComputeStats(entries []models.ScrapEntry, today string) Stats {
	stats := Stats{PendingByCategory: []CategoryBreakdown{}}
	byCategory := make(map[models.MaterialCategory]*CategoryBreakdown)

	for i := range entries {
		e := &entries[i]
		stats.Total++

		switch e.ApprovalStatus {
		case models.ApprovalApproved:
			stats.ApprovedCount++
			if e.ApprovalDate != nil && e.ApprovalDate.Format("2006-01-02") == today {
				stats.ApprovedToday++
			}
		case models.ApprovalRejected:
			stats.RejectedCount++
			if e.ApprovalDate != nil && e.ApprovalDate.Format("2006-01-02") == today {
				stats.RejectedToday++
			}
		case models.ApprovalPending:
			stats.PendingCount++
			stats.PendingValue += e.ScrapValueEstimate
			stats.PendingWeightKG += e.WeightKG

			switch e.Classification {
			case models.ClassReusable:
				stats.PendingReusable++
			case models.ClassNonReusable:
				stats.PendingNonReusable++
			}

			b, ok := byCategory[e.MaterialCategory]
			if !ok {
				b = &CategoryBreakdown{Category: e.MaterialCategory}
				byCategory[e.MaterialCategory] = b
			}
			b.Count++
			b.WeightKG += e.WeightKG
			b.Value += e.ScrapValueEstimate
		}
	}

	// Fixed category order keeps the breakdown deterministic.
	for _, cat := range models.AllMaterialCategories {
		if b, ok := byCategory[cat]; ok {
			stats.PendingByCategory = append(stats.PendingByCategory, *b)
		}
	}

	return stats
}
