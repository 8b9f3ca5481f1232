package endpiece

import (
	"errors"

	"scraptrack-backend/internal/models"
)

var (
	// ErrJobRequired: the "use in job" action was invoked without a job.
	ErrJobRequired = errors.New("job required")
	// ErrNotAvailable: only AVAILABLE end pieces can be reserved or scraped.
	ErrNotAvailable = errors.New("end piece is not available")
	// ErrMaterialMismatch: the job requires a different material.
	ErrMaterialMismatch = errors.New("end piece material does not match the job's required material")
	// ErrJobNotOpen: consuming jobs must be PLANNED or IN_PROGRESS.
	ErrJobNotOpen = errors.New("job is not open for material consumption")
)

// CanTransition encodes the one-directional status lifecycle:
// AVAILABLE -> RESERVED -> USED, and AVAILABLE -> SCRAPED.
// USED and SCRAPED are terminal.
func CanTransition(from, to models.EndPieceStatus) bool {
	switch from {
	case models.EndPieceAvailable:
		return to == models.EndPieceReserved || to == models.EndPieceScraped
	case models.EndPieceReserved:
		return to == models.EndPieceUsed
	default:
		return false
	}
}

// ValidateUse checks whether the end piece may be reserved for the job. It
// never mutates either record; on any error the caller must leave the end
// piece untouched.
func ValidateUse(p *models.EndPiece, job *models.CuttingJob) error {
	if p.Status != models.EndPieceAvailable {
		return ErrNotAvailable
	}
	if p.MaterialCode != job.MaterialCode {
		return ErrMaterialMismatch
	}
	if !job.Status.Open() {
		return ErrJobNotOpen
	}
	return nil
}

// RemainingRequirement is the job's notional raw-material need after the end
// piece covers part of it. Computation only; persisting the reduced figure is
// the consuming system's concern.
func RemainingRequirement(job *models.CuttingJob, p *models.EndPiece) float64 {
	remaining := job.RawMaterialRequiredKG - p.WeightKG
	if remaining < 0 {
		return 0
	}
	return remaining
}
