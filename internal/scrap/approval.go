package scrap

import (
	"errors"
	"strings"
	"time"

	"scraptrack-backend/internal/models"
)

var (
	// ErrEmptySelection: approve/reject was invoked with no target ids.
	ErrEmptySelection = errors.New("no entries selected")
	// ErrNotesRequired: a rejection must be justified.
	ErrNotesRequired = errors.New("rejection notes are required")
	// ErrInvalidDecision: decision status must be APPROVED or REJECTED.
	ErrInvalidDecision = errors.New("invalid decision status")
)

// Decision describes one supervisor action applied to a selection of entries.
// The approver identity is always passed in explicitly with the session.
type Decision struct {
	Status       models.ApprovalStatus
	ApproverID   uint
	ApproverName string
	Notes        string
	DecidedAt    time.Time
}

// ApplyDecision applies a PENDING -> APPROVED|REJECTED transition to the
// selected entries of a snapshot and returns the entries that actually
// changed. Entries already in a terminal state are silently skipped, so
// re-running a decision over an already-decided selection changes nothing.
// The input slice is not mutated; changed entries are modified copies.
//
// Validation happens before any record is touched: an empty selection or a
// blank-notes rejection leaves every entry unchanged.
func ApplyDecision(entries []models.ScrapEntry, ids []uint, d Decision) ([]models.ScrapEntry, error) {
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	if d.Status != models.ApprovalApproved && d.Status != models.ApprovalRejected {
		return nil, ErrInvalidDecision
	}

	notes := strings.TrimSpace(d.Notes)
	if d.Status == models.ApprovalRejected && notes == "" {
		return nil, ErrNotesRequired
	}
	if d.Status == models.ApprovalApproved && notes == "" {
		notes = "Approved"
	}

	selected := make(map[uint]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}

	decidedAt := d.DecidedAt
	if decidedAt.IsZero() {
		decidedAt = time.Now()
	}

	var changed []models.ScrapEntry
	for i := range entries {
		if !selected[entries[i].ID] || entries[i].ApprovalStatus != models.ApprovalPending {
			continue
		}

		e := entries[i] // copy, the snapshot stays untouched
		e.ApprovalStatus = d.Status
		approverID := d.ApproverID
		e.ApprovedByID = &approverID
		e.ApprovedBy = d.ApproverName
		at := decidedAt
		e.ApprovalDate = &at
		e.ApprovalNotes = notes
		changed = append(changed, e)
	}

	return changed, nil
}
