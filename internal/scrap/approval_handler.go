package scrap

import (
	"errors"
	"fmt"
	"time"

	"scraptrack-backend/internal/audit"
	"scraptrack-backend/internal/auth"
	"scraptrack-backend/internal/cache"
	"scraptrack-backend/internal/database"
	"scraptrack-backend/internal/models"
	"scraptrack-backend/internal/queue"

	"github.com/gofiber/fiber/v2"
)

type DecisionRequest struct {
	IDs   []uint `json:"ids"`
	Notes string `json:"notes"`
}

type DecisionResponse struct {
	Updated int `json:"updated"` // entries actually transitioned
	Skipped int `json:"skipped"` // already terminal or unknown ids
}

// POST /api/scrap-entries/approve
func ApproveScrapEntriesHandler() fiber.Handler {
	return decisionHandler(models.ApprovalApproved, models.AuditActionApprove, queue.QueueScrapApproved)
}

// POST /api/scrap-entries/reject
func RejectScrapEntriesHandler() fiber.Handler {
	return decisionHandler(models.ApprovalRejected, models.AuditActionReject, queue.QueueScrapRejected)
}

func decisionHandler(status models.ApprovalStatus, action models.AuditAction, queueName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		var body DecisionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var targets []models.ScrapEntry
		if len(body.IDs) > 0 {
			if err := database.DB.Where("id IN ?", body.IDs).Find(&targets).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load scrap entries")
			}
		}

		changed, err := ApplyDecision(targets, body.IDs, Decision{
			Status:       status,
			ApproverID:   session.UserID,
			ApproverName: session.Name,
			Notes:        body.Notes,
			DecidedAt:    time.Now(),
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptySelection):
				return fiber.NewError(fiber.StatusBadRequest, "No entries selected")
			case errors.Is(err, ErrNotesRequired):
				return fiber.NewError(fiber.StatusBadRequest, "Rejection notes are required")
			default:
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		// before-images for the audit trail, keyed by id
		before := make(map[uint]models.ScrapEntry, len(targets))
		for _, t := range targets {
			before[t.ID] = t
		}

		tx := database.DB.Begin()
		for i := range changed {
			if err := tx.Save(&changed[i]).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "Could not update scrap entries")
			}
		}
		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update scrap entries")
		}

		for i := range changed {
			e := &changed[i]
			prev := before[e.ID]

			_ = audit.WriteLog(audit.LogOptions{
				UserID:      session.UserID,
				UserName:    session.Name,
				EntityType:  "scrap_entry",
				EntityID:    e.ID,
				Action:      action,
				Description: fmt.Sprintf("Scrap entry %s: %s (%s)", e.TrackingID, e.ApprovalStatus, e.ApprovalNotes),
				Before:      prev,
				After:       e,
			})

			// Hand-off to the downstream enterprise system. Best effort: the
			// transition already happened, a broker outage must not undo it.
			_ = queue.Publish(c.Context(), queueName, queue.ScrapDecisionEvent{
				EntryID:            e.ID,
				TrackingID:         e.TrackingID,
				JobOrderNo:         e.JobOrderNo,
				MaterialCode:       e.MaterialCode,
				MaterialCategory:   string(e.MaterialCategory),
				Classification:     string(e.Classification),
				WeightKG:           e.WeightKG,
				PieceCount:         e.PieceCount,
				ScrapValueEstimate: e.ScrapValueEstimate,
				Status:             string(e.ApprovalStatus),
				DecidedBy:          e.ApprovedBy,
				Notes:              e.ApprovalNotes,
				DecidedAt:          e.ApprovalDate.Format(time.RFC3339),
			})
		}

		if len(changed) > 0 {
			cache.Invalidate(c.Context(), statsCacheKey(time.Now().Format("2006-01-02")))
		}

		return c.JSON(DecisionResponse{
			Updated: len(changed),
			Skipped: len(body.IDs) - len(changed),
		})
	}
}
