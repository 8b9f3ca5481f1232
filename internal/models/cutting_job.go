package models

import "time"

type JobStatus string

const (
	JobPlanned    JobStatus = "PLANNED"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobCompleted  JobStatus = "COMPLETED"
	JobCancelled  JobStatus = "CANCELLED"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobPlanned, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}

// Open reports whether the job can still consume material (end pieces, stock).
func (s JobStatus) Open() bool {
	return s == JobPlanned || s == JobInProgress
}

// CuttingJob: a cutting order. Supplies material/operator/machine context for
// scrap entries and end pieces; this service never mutates its material data.
type CuttingJob struct {
	ID                    uint             `gorm:"primaryKey"`
	OrderNo               string           `gorm:"size:50;uniqueIndex;not null"`
	MaterialCode          string           `gorm:"size:50;index;not null"`
	MaterialName          string           `gorm:"size:100"`
	MaterialCategory      MaterialCategory `gorm:"size:30;not null"`
	Operator              string           `gorm:"size:100"`
	Machine               string           `gorm:"size:100"`
	Status                JobStatus        `gorm:"size:20;index;not null;default:PLANNED"`
	RawMaterialRequiredKG float64          `gorm:"not null"` // planned raw material draw
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
