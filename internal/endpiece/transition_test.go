package endpiece

import (
	"errors"
	"testing"

	"scraptrack-backend/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.EndPieceStatus
		want     bool
	}{
		{models.EndPieceAvailable, models.EndPieceReserved, true},
		{models.EndPieceAvailable, models.EndPieceScraped, true},
		{models.EndPieceAvailable, models.EndPieceUsed, false},
		{models.EndPieceReserved, models.EndPieceUsed, true},
		{models.EndPieceReserved, models.EndPieceAvailable, false},
		{models.EndPieceReserved, models.EndPieceScraped, false},
		{models.EndPieceUsed, models.EndPieceAvailable, false},
		{models.EndPieceUsed, models.EndPieceReserved, false},
		{models.EndPieceScraped, models.EndPieceAvailable, false},
		{models.EndPieceScraped, models.EndPieceReserved, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidateUseMaterialMismatch(t *testing.T) {
	piece := models.EndPiece{
		ID:           1,
		Status:       models.EndPieceAvailable,
		MaterialCode: "SS-304-3MM",
	}
	job := models.CuttingJob{
		ID:           10,
		Status:       models.JobPlanned,
		MaterialCode: "AL-6061",
	}

	err := ValidateUse(&piece, &job)
	if !errors.Is(err, ErrMaterialMismatch) {
		t.Fatalf("expected ErrMaterialMismatch, got %v", err)
	}
	// Validation must leave the end piece untouched.
	if piece.Status != models.EndPieceAvailable {
		t.Fatalf("end piece status changed to %s", piece.Status)
	}
	if piece.ReservedJobID != nil {
		t.Fatal("end piece was linked to a job despite the mismatch")
	}
}

func TestValidateUseRequiresAvailable(t *testing.T) {
	job := models.CuttingJob{Status: models.JobInProgress, MaterialCode: "SS-304-3MM"}

	for _, status := range []models.EndPieceStatus{models.EndPieceReserved, models.EndPieceUsed, models.EndPieceScraped} {
		piece := models.EndPiece{Status: status, MaterialCode: "SS-304-3MM"}
		if err := ValidateUse(&piece, &job); !errors.Is(err, ErrNotAvailable) {
			t.Fatalf("status %s: expected ErrNotAvailable, got %v", status, err)
		}
	}
}

func TestValidateUseRequiresOpenJob(t *testing.T) {
	piece := models.EndPiece{Status: models.EndPieceAvailable, MaterialCode: "SS-304-3MM"}

	for _, status := range []models.JobStatus{models.JobCompleted, models.JobCancelled} {
		job := models.CuttingJob{Status: status, MaterialCode: "SS-304-3MM"}
		if err := ValidateUse(&piece, &job); !errors.Is(err, ErrJobNotOpen) {
			t.Fatalf("job status %s: expected ErrJobNotOpen, got %v", status, err)
		}
	}

	for _, status := range []models.JobStatus{models.JobPlanned, models.JobInProgress} {
		job := models.CuttingJob{Status: status, MaterialCode: "SS-304-3MM"}
		if err := ValidateUse(&piece, &job); err != nil {
			t.Fatalf("job status %s: expected success, got %v", status, err)
		}
	}
}

func TestRemainingRequirement(t *testing.T) {
	job := models.CuttingJob{RawMaterialRequiredKG: 10}
	piece := models.EndPiece{WeightKG: 3.5}

	if got := RemainingRequirement(&job, &piece); got != 6.5 {
		t.Fatalf("expected 6.5, got %v", got)
	}

	// The reduction is notional, never negative.
	heavy := models.EndPiece{WeightKG: 12}
	if got := RemainingRequirement(&job, &heavy); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}
