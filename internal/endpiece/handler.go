package endpiece

import (
	"errors"
	"fmt"
	"time"

	"scraptrack-backend/internal/audit"
	"scraptrack-backend/internal/auth"
	"scraptrack-backend/internal/database"
	"scraptrack-backend/internal/models"
	"scraptrack-backend/internal/queue"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateEndPieceRequest struct {
	Code            string  `json:"code"`
	ScrapTrackingID string  `json:"scrap_tracking_id"`
	MaterialCode    string  `json:"material_code"` // required
	MaterialName    string  `json:"material_name"`
	LengthMM        float64 `json:"length_mm"`
	WidthMM         float64 `json:"width_mm"`
	ThicknessMM     float64 `json:"thickness_mm"`
	WeightKG        float64 `json:"weight_kg"` // required, > 0
	Location        string  `json:"location"`
	Notes           string  `json:"notes"`
}

type EndPieceResponse struct {
	ID              uint    `json:"id"`
	Code            string  `json:"code"`
	ScrapTrackingID string  `json:"scrap_tracking_id"`
	MaterialCode    string  `json:"material_code"`
	MaterialName    string  `json:"material_name"`
	LengthMM        float64 `json:"length_mm"`
	WidthMM         float64 `json:"width_mm"`
	ThicknessMM     float64 `json:"thickness_mm"`
	WeightKG        float64 `json:"weight_kg"`
	Location        string  `json:"location"`
	Status          string  `json:"status"`
	ReservedJobID   *uint   `json:"reserved_job_id,omitempty"`
	ReservedAt      string  `json:"reserved_at,omitempty"`
	Notes           string  `json:"notes"`
	CreatedAt       string  `json:"created_at"`
}

func toResponse(p *models.EndPiece) EndPieceResponse {
	resp := EndPieceResponse{
		ID:              p.ID,
		Code:            p.Code,
		ScrapTrackingID: p.ScrapTrackingID,
		MaterialCode:    p.MaterialCode,
		MaterialName:    p.MaterialName,
		LengthMM:        p.LengthMM,
		WidthMM:         p.WidthMM,
		ThicknessMM:     p.ThicknessMM,
		WeightKG:        p.WeightKG,
		Location:        p.Location,
		Status:          string(p.Status),
		ReservedJobID:   p.ReservedJobID,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if p.ReservedAt != nil {
		resp.ReservedAt = p.ReservedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}

// POST /api/end-pieces
func CreateEndPieceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		var body CreateEndPieceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.MaterialCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "material_code is required")
		}
		if body.WeightKG <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "weight_kg must be greater than 0")
		}

		code := body.Code
		if code == "" {
			code = "EP-" + uuid.NewString()
		}

		piece := models.EndPiece{
			Code:            code,
			ScrapTrackingID: body.ScrapTrackingID,
			MaterialCode:    body.MaterialCode,
			MaterialName:    body.MaterialName,
			LengthMM:        body.LengthMM,
			WidthMM:         body.WidthMM,
			ThicknessMM:     body.ThicknessMM,
			WeightKG:        body.WeightKG,
			Location:        body.Location,
			Status:          models.EndPieceAvailable,
			Notes:           body.Notes,
		}

		if err := database.DB.Create(&piece).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create end piece")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      session.UserID,
			UserName:    session.Name,
			EntityType:  "end_piece",
			EntityID:    piece.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("End piece %s: %s - %.2f kg", piece.Code, piece.MaterialCode, piece.WeightKG),
			Before:      nil,
			After:       piece,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(&piece))
	}
}

// GET /api/end-pieces?status=AVAILABLE&material_code=SS-304
func ListEndPiecesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.EndPiece{})

		if status := c.Query("status"); status != "" && status != "ALL" {
			query = query.Where("status = ?", status)
		}
		if materialCode := c.Query("material_code"); materialCode != "" {
			query = query.Where("material_code = ?", materialCode)
		}

		var pieces []models.EndPiece
		if err := query.Order("created_at DESC").Find(&pieces).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list end pieces")
		}

		resp := make([]EndPieceResponse, 0, len(pieces))
		for i := range pieces {
			resp = append(resp, toResponse(&pieces[i]))
		}

		return c.JSON(resp)
	}
}

// GET /api/end-pieces/:id
func GetEndPieceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var piece models.EndPiece
		if err := database.DB.First(&piece, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "End piece not found")
		}

		return c.JSON(toResponse(&piece))
	}
}

type UseEndPieceRequest struct {
	JobID uint   `json:"job_id"`
	Notes string `json:"notes"`
}

// POST /api/end-pieces/:id/use
// Reserves an AVAILABLE end piece for a job whose required material matches.
// The later RESERVED -> USED transition arrives from the shop floor as a
// downstream event, not through this endpoint.
func UseEndPieceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		var body UseEndPieceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.JobID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Job required")
		}

		var piece models.EndPiece
		if err := database.DB.First(&piece, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "End piece not found")
		}

		var job models.CuttingJob
		if err := database.DB.First(&job, "id = ?", body.JobID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Cutting job not found (ID: %d)", body.JobID))
		}

		if err := ValidateUse(&piece, &job); err != nil {
			switch {
			case errors.Is(err, ErrNotAvailable):
				return fiber.NewError(fiber.StatusBadRequest, "End piece is not available")
			case errors.Is(err, ErrMaterialMismatch):
				return fiber.NewError(fiber.StatusBadRequest, "End piece material does not match the job's required material")
			case errors.Is(err, ErrJobNotOpen):
				return fiber.NewError(fiber.StatusBadRequest, "Job is not open for material consumption")
			default:
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		before := piece

		now := time.Now()
		jobID := job.ID
		piece.Status = models.EndPieceReserved
		piece.ReservedJobID = &jobID
		piece.ReservedAt = &now
		if body.Notes != "" {
			piece.Notes = body.Notes
		}

		if err := database.DB.Save(&piece).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not reserve end piece")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      session.UserID,
			UserName:    session.Name,
			EntityType:  "end_piece",
			EntityID:    piece.ID,
			Action:      models.AuditActionReserve,
			Description: fmt.Sprintf("End piece %s reserved for job %s", piece.Code, job.OrderNo),
			Before:      before,
			After:       piece,
		})

		_ = queue.Publish(c.Context(), queue.QueueEndPieceReserved, queue.EndPieceReservedEvent{
			EndPieceID:   piece.ID,
			Code:         piece.Code,
			MaterialCode: piece.MaterialCode,
			WeightKG:     piece.WeightKG,
			JobID:        job.ID,
			JobOrderNo:   job.OrderNo,
			ReservedBy:   session.Name,
			ReservedAt:   now.Format(time.RFC3339),
		})

		return c.JSON(fiber.Map{
			"end_piece": toResponse(&piece),
			// Notional reduction of the job's raw material need. The caller
			// propagates it; this service does not rewrite the job record.
			"remaining_raw_material_kg": RemainingRequirement(&job, &piece),
		})
	}
}

type ScrapEndPieceRequest struct {
	Notes string `json:"notes"`
}

// POST /api/end-pieces/:id/scrap
// Writes off an AVAILABLE end piece that turned out to be unusable.
func ScrapEndPieceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		var body ScrapEndPieceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var piece models.EndPiece
		if err := database.DB.First(&piece, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "End piece not found")
		}

		if !CanTransition(piece.Status, models.EndPieceScraped) {
			return fiber.NewError(fiber.StatusBadRequest, "End piece cannot be scraped from its current state")
		}

		before := piece
		piece.Status = models.EndPieceScraped
		if body.Notes != "" {
			piece.Notes = body.Notes
		}

		if err := database.DB.Save(&piece).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not scrap end piece")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      session.UserID,
			UserName:    session.Name,
			EntityType:  "end_piece",
			EntityID:    piece.ID,
			Action:      models.AuditActionScrap,
			Description: fmt.Sprintf("End piece %s written off", piece.Code),
			Before:      before,
			After:       piece,
		})

		return c.JSON(toResponse(&piece))
	}
}
