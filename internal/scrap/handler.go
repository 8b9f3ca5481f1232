package scrap

import (
	"fmt"
	"time"

	"scraptrack-backend/internal/audit"
	"scraptrack-backend/internal/auth"
	"scraptrack-backend/internal/cache"
	"scraptrack-backend/internal/database"
	"scraptrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateScrapEntryRequest struct {
	JobID                  uint    `json:"job_id"` // required
	TrackingID             string  `json:"tracking_id"`
	MaterialCode           string  `json:"material_code"` // required
	MaterialIdentification string  `json:"material_identification"`
	MaterialCategory       string  `json:"material_category"` // defaults to the job's category
	Classification         string  `json:"classification"`    // required
	WeightKG               float64 `json:"weight_kg"`         // required, > 0
	PieceCount             int     `json:"piece_count"`       // required, > 0
	ScrapValueEstimate     float64 `json:"scrap_value_estimate"`
	ReasonCode             string  `json:"reason_code"`
	ReasonName             string  `json:"reason_name"`
	SerialNumber           string  `json:"serial_number"`
	FinishedGoodCode       string  `json:"finished_good_code"`
	Date                   string  `json:"date"` // "YYYY-MM-DD", defaults to today
	Time                   string  `json:"time"` // "HH:MM:SS", defaults to now
}

type ScrapEntryResponse struct {
	ID                 uint    `json:"id"`
	TrackingID         string  `json:"tracking_id"`
	JobID              uint    `json:"job_id"`
	JobOrderNo         string  `json:"job_order_no"`
	MaterialCode       string  `json:"material_code"`
	MaterialCategory   string  `json:"material_category"`
	Classification     string  `json:"classification"`
	WeightKG           float64 `json:"weight_kg"`
	PieceCount         int     `json:"piece_count"`
	ScrapValueEstimate float64 `json:"scrap_value_estimate"`
	ReasonCode         string  `json:"reason_code"`
	ReasonName         string  `json:"reason_name"`
	OperatorName       string  `json:"operator_name"`
	SerialNumber       string  `json:"serial_number"`
	FinishedGoodCode   string  `json:"finished_good_code"`
	Date               string  `json:"date"`
	Time               string  `json:"time"`
	ApprovalStatus     string  `json:"approval_status"`
	ApprovedBy         string  `json:"approved_by,omitempty"`
	ApprovalDate       string  `json:"approval_date,omitempty"`
	ApprovalNotes      string  `json:"approval_notes,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

func toResponse(e *models.ScrapEntry) ScrapEntryResponse {
	resp := ScrapEntryResponse{
		ID:                 e.ID,
		TrackingID:         e.TrackingID,
		JobID:              e.JobID,
		JobOrderNo:         e.JobOrderNo,
		MaterialCode:       e.MaterialCode,
		MaterialCategory:   string(e.MaterialCategory),
		Classification:     string(e.Classification),
		WeightKG:           e.WeightKG,
		PieceCount:         e.PieceCount,
		ScrapValueEstimate: e.ScrapValueEstimate,
		ReasonCode:         e.ReasonCode,
		ReasonName:         e.ReasonName,
		OperatorName:       e.OperatorName,
		SerialNumber:       e.SerialNumber,
		FinishedGoodCode:   e.FinishedGoodCode,
		Date:               e.Date,
		Time:               e.Time,
		ApprovalStatus:     string(e.ApprovalStatus),
		ApprovedBy:         e.ApprovedBy,
		ApprovalNotes:      e.ApprovalNotes,
		CreatedAt:          e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if e.ApprovalDate != nil {
		resp.ApprovalDate = e.ApprovalDate.Format("2006-01-02 15:04:05")
	}
	return resp
}

// statsCacheKey partitions by date because the "today" counters change meaning
// at midnight.
func statsCacheKey(today string) string {
	return "scrap:stats:" + today
}

// POST /api/scrap-entries
func CreateScrapEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		var body CreateScrapEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.JobID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "job_id is required")
		}
		if body.MaterialCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "material_code is required")
		}
		if body.WeightKG <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "weight_kg must be greater than 0")
		}
		if body.PieceCount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "piece_count must be greater than 0")
		}

		classification := models.ScrapClassification(body.Classification)
		if !classification.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "classification must be REUSABLE or NON_REUSABLE")
		}

		var job models.CuttingJob
		if err := database.DB.First(&job, "id = ?", body.JobID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Cutting job not found (ID: %d)", body.JobID))
		}

		category := job.MaterialCategory
		if body.MaterialCategory != "" {
			category = models.MaterialCategory(body.MaterialCategory)
			if !category.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "material_category is not a known category")
			}
		}

		now := time.Now()
		date := body.Date
		if date == "" {
			date = now.Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date format must be 'YYYY-MM-DD'")
		}
		timeOfDay := body.Time
		if timeOfDay == "" {
			timeOfDay = now.Format("15:04:05")
		} else if _, err := time.Parse("15:04:05", timeOfDay); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "time format must be 'HH:MM:SS'")
		}

		trackingID := body.TrackingID
		if trackingID == "" {
			trackingID = "SCR-" + uuid.NewString()
		}

		entry := models.ScrapEntry{
			TrackingID:             trackingID,
			JobID:                  job.ID,
			JobOrderNo:             job.OrderNo,
			MaterialCode:           body.MaterialCode,
			MaterialIdentification: body.MaterialIdentification,
			MaterialCategory:       category,
			Classification:         classification,
			WeightKG:               body.WeightKG,
			PieceCount:             body.PieceCount,
			ScrapValueEstimate:     body.ScrapValueEstimate,
			ReasonCode:             body.ReasonCode,
			ReasonName:             body.ReasonName,
			OperatorName:           job.Operator,
			SerialNumber:           body.SerialNumber,
			FinishedGoodCode:       body.FinishedGoodCode,
			Date:                   date,
			Time:                   timeOfDay,
			ApprovalStatus:         models.ApprovalPending,
		}
		if entry.OperatorName == "" {
			entry.OperatorName = session.Name
		}

		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create scrap entry")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      session.UserID,
			UserName:    session.Name,
			EntityType:  "scrap_entry",
			EntityID:    entry.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Scrap entry: %s - %.2f kg (%s)", entry.MaterialCode, entry.WeightKG, entry.JobOrderNo),
			Before:      nil,
			After:       entry,
		})

		cache.Invalidate(c.Context(), statsCacheKey(now.Format("2006-01-02")))

		return c.Status(fiber.StatusCreated).JSON(toResponse(&entry))
	}
}

// FilterFromQuery reads the filter configuration from query parameters.
func FilterFromQuery(c *fiber.Ctx) Filter {
	return Filter{
		Status:         c.Query("status"),
		Category:       c.Query("category"),
		Classification: c.Query("classification"),
		DateFrom:       c.Query("date_from"),
		DateTo:         c.Query("date_to"),
		Search:         c.Query("search"),
	}
}

// GET /api/scrap-entries?status=&category=&classification=&date_from=&date_to=&search=
// Each request works on a fresh snapshot of the record set; filtering and
// ordering happen in memory so the same engine serves list and export.
func ListScrapEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entries []models.ScrapEntry
		if err := database.DB.Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list scrap entries")
		}

		filtered := FilterEntries(entries, FilterFromQuery(c))

		resp := make([]ScrapEntryResponse, 0, len(filtered))
		for i := range filtered {
			resp = append(resp, toResponse(&filtered[i]))
		}

		return c.JSON(resp)
	}
}

// GET /api/scrap-entries/:id
func GetScrapEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entry models.ScrapEntry
		if err := database.DB.First(&entry, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Scrap entry not found")
		}

		return c.JSON(toResponse(&entry))
	}
}
