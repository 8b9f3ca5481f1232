package models

import "time"

type EndPieceStatus string

const (
	EndPieceAvailable EndPieceStatus = "AVAILABLE"
	EndPieceReserved  EndPieceStatus = "RESERVED"
	EndPieceUsed      EndPieceStatus = "USED"
	EndPieceScraped   EndPieceStatus = "SCRAPED"
)

func (s EndPieceStatus) Valid() bool {
	switch s {
	case EndPieceAvailable, EndPieceReserved, EndPieceUsed, EndPieceScraped:
		return true
	}
	return false
}

// EndPiece: reusable remnant kept from a cutting operation. Status moves
// AVAILABLE -> RESERVED -> USED one way; SCRAPED only from AVAILABLE.
type EndPiece struct {
	ID              uint   `gorm:"primaryKey"`
	Code            string `gorm:"size:64;uniqueIndex;not null"`
	ScrapTrackingID string `gorm:"size:64;index"` // links back to the originating cutting job

	MaterialCode string `gorm:"size:50;index;not null"`
	MaterialName string `gorm:"size:100"`

	LengthMM    float64
	WidthMM     float64 // width or diameter, depending on the stock shape
	ThicknessMM float64
	WeightKG    float64 `gorm:"not null"`

	Location string         `gorm:"size:100"` // rack/bin
	Status   EndPieceStatus `gorm:"size:20;index;not null;default:AVAILABLE"`

	ReservedJobID *uint
	ReservedJob   *CuttingJob
	ReservedAt    *time.Time
	Notes         string `gorm:"size:500"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
