package scrap

import (
	"errors"
	"testing"
	"time"

	"scraptrack-backend/internal/models"
)

func pendingEntries() []models.ScrapEntry {
	return []models.ScrapEntry{
		{ID: 1, ApprovalStatus: models.ApprovalPending, TrackingID: "SCR-a"},
		{ID: 2, ApprovalStatus: models.ApprovalPending, TrackingID: "SCR-b"},
		{ID: 3, ApprovalStatus: models.ApprovalApproved, TrackingID: "SCR-c", ApprovalNotes: "Approved"},
	}
}

func TestApproveRequiresSelection(t *testing.T) {
	_, err := ApplyDecision(pendingEntries(), nil, Decision{Status: models.ApprovalApproved})
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestRejectRequiresNotes(t *testing.T) {
	entries := pendingEntries()

	for _, notes := range []string{"", "   ", "\t"} {
		changed, err := ApplyDecision(entries, []uint{1, 2}, Decision{
			Status: models.ApprovalRejected,
			Notes:  notes,
		})
		if !errors.Is(err, ErrNotesRequired) {
			t.Fatalf("notes %q: expected ErrNotesRequired, got %v", notes, err)
		}
		if changed != nil {
			t.Fatalf("notes %q: expected no changed entries, got %d", notes, len(changed))
		}
	}

	// The snapshot stays fully pending.
	for _, e := range entries[:2] {
		if e.ApprovalStatus != models.ApprovalPending {
			t.Fatalf("entry %d mutated by a blank-notes rejection", e.ID)
		}
	}
}

func TestApproveDefaultsNotes(t *testing.T) {
	changed, err := ApplyDecision(pendingEntries(), []uint{1}, Decision{
		Status:       models.ApprovalApproved,
		ApproverID:   5,
		ApproverName: "Supervisor",
	})
	if err != nil {
		t.Fatalf("apply decision: %v", err)
	}
	if len(changed) != 1 {
		t.Fatalf("expected 1 changed entry, got %d", len(changed))
	}

	e := changed[0]
	if e.ApprovalNotes != "Approved" {
		t.Fatalf("expected default note %q, got %q", "Approved", e.ApprovalNotes)
	}
	if e.ApprovedBy != "Supervisor" || e.ApprovedByID == nil || *e.ApprovedByID != 5 {
		t.Fatalf("approver identity not recorded: %q %v", e.ApprovedBy, e.ApprovedByID)
	}
	if e.ApprovalDate == nil {
		t.Fatal("approval timestamp not recorded")
	}
}

func TestTerminalEntriesAreSilentlySkipped(t *testing.T) {
	entries := pendingEntries()

	// Entry 3 is already APPROVED; re-approving it is a no-op.
	changed, err := ApplyDecision(entries, []uint{3}, Decision{
		Status:       models.ApprovalApproved,
		ApproverName: "Someone Else",
		DecidedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("apply decision: %v", err)
	}
	if len(changed) != 0 {
		t.Fatalf("expected 0 changed entries for a terminal selection, got %d", len(changed))
	}

	// Mixed selections transition only the pending part.
	changed, err = ApplyDecision(entries, []uint{1, 3}, Decision{
		Status: models.ApprovalRejected,
		Notes:  "wrong material batch",
	})
	if err != nil {
		t.Fatalf("apply decision: %v", err)
	}
	if len(changed) != 1 || changed[0].ID != 1 {
		t.Fatalf("expected only entry 1 to change, got %v", changed)
	}
	if changed[0].ApprovalStatus != models.ApprovalRejected {
		t.Fatalf("expected REJECTED, got %s", changed[0].ApprovalStatus)
	}
}

func TestSnapshotIsNotMutated(t *testing.T) {
	entries := pendingEntries()
	_, err := ApplyDecision(entries, []uint{1, 2}, Decision{
		Status: models.ApprovalApproved,
	})
	if err != nil {
		t.Fatalf("apply decision: %v", err)
	}

	for _, e := range entries[:2] {
		if e.ApprovalStatus != models.ApprovalPending {
			t.Fatalf("snapshot entry %d was mutated in place", e.ID)
		}
	}
}

func TestUnknownIDsCountAsSkipped(t *testing.T) {
	changed, err := ApplyDecision(pendingEntries(), []uint{999}, Decision{
		Status: models.ApprovalApproved,
	})
	if err != nil {
		t.Fatalf("apply decision: %v", err)
	}
	if len(changed) != 0 {
		t.Fatalf("expected no changes for unknown ids, got %d", len(changed))
	}
}
