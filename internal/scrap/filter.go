package scrap

import (
	"sort"
	"strings"

	"scraptrack-backend/internal/models"
)

// FilterAll is the sentinel that disables an equality predicate. An empty
// string is treated the same way so that absent query parameters work too.
const FilterAll = "ALL"

// Filter holds the user-chosen predicates. All active predicates are
// AND-combined.
type Filter struct {
	Status         string // approval status, FilterAll/"" to skip
	Category       string // material category
	Classification string // reusable axis
	DateFrom       string // inclusive, "YYYY-MM-DD"
	DateTo         string // inclusive, "YYYY-MM-DD"
	Search         string // case-insensitive substring
}

func active(v string) bool {
	return v != "" && v != FilterAll
}

// searchFields are the fields the free-text search matches against. A record
// matches when ANY field contains the term.
func searchFields(e *models.ScrapEntry) []string {
	return []string{
		e.JobOrderNo,
		e.OperatorName,
		e.MaterialCode,
		e.SerialNumber,
		e.FinishedGoodCode,
	}
}

func matches(e *models.ScrapEntry, f Filter) bool {
	if active(f.Status) && string(e.ApprovalStatus) != f.Status {
		return false
	}
	if active(f.Category) && string(e.MaterialCategory) != f.Category {
		return false
	}
	if active(f.Classification) && string(e.Classification) != f.Classification {
		return false
	}
	// Lexical comparison is valid because the date format is fixed-width.
	if f.DateFrom != "" && e.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && e.Date > f.DateTo {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		found := false
		for _, field := range searchFields(e) {
			if strings.Contains(strings.ToLower(field), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FilterEntries returns the entries satisfying all active predicates, sorted
// by (date, time) descending. The input slice is never mutated; the result is
// always a fresh slice, so derived views stay independent of the snapshot.
// An empty result is valid and never an error.
func FilterEntries(entries []models.ScrapEntry, f Filter) []models.ScrapEntry {
	out := make([]models.ScrapEntry, 0, len(entries))
	for i := range entries {
		if matches(&entries[i], f) {
			out = append(out, entries[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})

	return out
}
