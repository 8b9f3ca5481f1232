// Package queue defines the message payloads handed off to the downstream
// enterprise integration over RabbitMQ.
package queue

const (
	QueueScrapApproved    = "scrap.approved"
	QueueScrapRejected    = "scrap.rejected"
	QueueEndPieceReserved = "endpiece.reserved"
)

// ScrapDecisionEvent is published once per scrap entry that a supervisor
// approves or rejects. It carries the full record so consumers never have to
// query this service back.
type ScrapDecisionEvent struct {
	EntryID            uint    `json:"entry_id"`
	TrackingID         string  `json:"tracking_id"`
	JobOrderNo         string  `json:"job_order_no"`
	MaterialCode       string  `json:"material_code"`
	MaterialCategory   string  `json:"material_category"`
	Classification     string  `json:"classification"`
	WeightKG           float64 `json:"weight_kg"`
	PieceCount         int     `json:"piece_count"`
	ScrapValueEstimate float64 `json:"scrap_value_estimate"`
	Status             string  `json:"status"`
	DecidedBy          string  `json:"decided_by"`
	Notes              string  `json:"notes"`
	DecidedAt          string  `json:"decided_at"`
}

// EndPieceReservedEvent is published when an end piece is reserved for a job.
type EndPieceReservedEvent struct {
	EndPieceID   uint    `json:"end_piece_id"`
	Code         string  `json:"code"`
	MaterialCode string  `json:"material_code"`
	WeightKG     float64 `json:"weight_kg"`
	JobID        uint    `json:"job_id"`
	JobOrderNo   string  `json:"job_order_no"`
	ReservedBy   string  `json:"reserved_by"`
	ReservedAt   string  `json:"reserved_at"`
}
