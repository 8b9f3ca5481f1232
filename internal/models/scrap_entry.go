package models

import "time"

type MaterialCategory string

const (
	CategoryStainlessSteel MaterialCategory = "STAINLESS_STEEL"
	CategoryAluminum       MaterialCategory = "ALUMINUM"
	CategoryBrass          MaterialCategory = "BRASS"
	CategoryPVDF           MaterialCategory = "PVDF"
	CategoryPlastic        MaterialCategory = "PLASTIC"
	CategoryMildSteel      MaterialCategory = "MILD_STEEL"
)

// AllMaterialCategories fixes the iteration order for breakdowns and exports.
var AllMaterialCategories = []MaterialCategory{
	CategoryStainlessSteel,
	CategoryAluminum,
	CategoryBrass,
	CategoryPVDF,
	CategoryPlastic,
	CategoryMildSteel,
}

func (c MaterialCategory) Valid() bool {
	for _, known := range AllMaterialCategories {
		if c == known {
			return true
		}
	}
	return false
}

type ScrapClassification string

const (
	ClassReusable    ScrapClassification = "REUSABLE"
	ClassNonReusable ScrapClassification = "NON_REUSABLE"
)

func (c ScrapClassification) Valid() bool {
	return c == ClassReusable || c == ClassNonReusable
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Terminal reports whether the status can no longer change.
func (s ApprovalStatus) Terminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// ScrapEntry: one waste-material event from a cutting job. Append-only; the only
// mutation ever applied is the single PENDING -> APPROVED|REJECTED transition.
type ScrapEntry struct {
	ID         uint   `gorm:"primaryKey"`
	TrackingID string `gorm:"size:64;uniqueIndex;not null"` // per-job correlation id
	JobID      uint   `gorm:"index;not null"`
	Job        CuttingJob
	JobOrderNo string `gorm:"size:50;index;not null"` // denormalized for search/export

	MaterialCode           string              `gorm:"size:50;not null"`
	MaterialIdentification string              `gorm:"size:100"` // heat/batch identification
	MaterialCategory       MaterialCategory    `gorm:"size:30;index;not null"`
	Classification         ScrapClassification `gorm:"size:20;index;not null"`

	WeightKG           float64 `gorm:"not null"`
	PieceCount         int     `gorm:"not null"`
	ScrapValueEstimate float64

	ReasonCode       string `gorm:"size:20"`
	ReasonName       string `gorm:"size:100"`
	OperatorName     string `gorm:"size:100"`
	SerialNumber     string `gorm:"size:50"`
	FinishedGoodCode string `gorm:"size:50"`

	Date string `gorm:"size:10;index;not null"` // "YYYY-MM-DD", fixed width so lexical order == chronological
	Time string `gorm:"size:8"`                 // "HH:MM:SS"

	ApprovalStatus ApprovalStatus `gorm:"size:10;index;not null;default:PENDING"`
	ApprovedByID   *uint
	ApprovedBy     string         `gorm:"size:100"`
	ApprovalDate   *time.Time
	ApprovalNotes  string         `gorm:"size:500"` // mandatory for REJECTED

	CreatedAt time.Time
	UpdatedAt time.Time
}
