package job

import (
	"fmt"

	"scraptrack-backend/internal/audit"
	"scraptrack-backend/internal/auth"
	"scraptrack-backend/internal/database"
	"scraptrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateJobRequest struct {
	OrderNo               string  `json:"order_no"` // required
	MaterialCode          string  `json:"material_code"`
	MaterialName          string  `json:"material_name"`
	MaterialCategory      string  `json:"material_category"` // required
	Operator              string  `json:"operator"`
	Machine               string  `json:"machine"`
	RawMaterialRequiredKG float64 `json:"raw_material_required_kg"`
}

type JobResponse struct {
	ID                    uint    `json:"id"`
	OrderNo               string  `json:"order_no"`
	MaterialCode          string  `json:"material_code"`
	MaterialName          string  `json:"material_name"`
	MaterialCategory      string  `json:"material_category"`
	Operator              string  `json:"operator"`
	Machine               string  `json:"machine"`
	Status                string  `json:"status"`
	RawMaterialRequiredKG float64 `json:"raw_material_required_kg"`
	CreatedAt             string  `json:"created_at"`
}

func toResponse(j *models.CuttingJob) JobResponse {
	return JobResponse{
		ID:                    j.ID,
		OrderNo:               j.OrderNo,
		MaterialCode:          j.MaterialCode,
		MaterialName:          j.MaterialName,
		MaterialCategory:      string(j.MaterialCategory),
		Operator:              j.Operator,
		Machine:               j.Machine,
		Status:                string(j.Status),
		RawMaterialRequiredKG: j.RawMaterialRequiredKG,
		CreatedAt:             j.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/jobs
func CreateJobHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		var body CreateJobRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.OrderNo == "" {
			return fiber.NewError(fiber.StatusBadRequest, "order_no is required")
		}
		category := models.MaterialCategory(body.MaterialCategory)
		if !category.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "material_category is not a known category")
		}

		jobRec := models.CuttingJob{
			OrderNo:               body.OrderNo,
			MaterialCode:          body.MaterialCode,
			MaterialName:          body.MaterialName,
			MaterialCategory:      category,
			Operator:              body.Operator,
			Machine:               body.Machine,
			Status:                models.JobPlanned,
			RawMaterialRequiredKG: body.RawMaterialRequiredKG,
		}

		if err := database.DB.Create(&jobRec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create cutting job")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      session.UserID,
			UserName:    session.Name,
			EntityType:  "cutting_job",
			EntityID:    jobRec.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Cutting job %s (%s)", jobRec.OrderNo, jobRec.MaterialCategory),
			Before:      nil,
			After:       jobRec,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(&jobRec))
	}
}

// GET /api/jobs?status=PLANNED
func ListJobsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.CuttingJob{})

		if status := c.Query("status"); status != "" && status != "ALL" {
			query = query.Where("status = ?", status)
		}

		var jobs []models.CuttingJob
		if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list cutting jobs")
		}

		resp := make([]JobResponse, 0, len(jobs))
		for i := range jobs {
			resp = append(resp, toResponse(&jobs[i]))
		}

		return c.JSON(resp)
	}
}

// GET /api/jobs/:id
func GetJobHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var jobRec models.CuttingJob
		if err := database.DB.First(&jobRec, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cutting job not found")
		}

		return c.JSON(toResponse(&jobRec))
	}
}

type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}

// legalJobTransition: PLANNED -> IN_PROGRESS -> COMPLETED, and any open job
// may be cancelled.
func legalJobTransition(from, to models.JobStatus) bool {
	switch from {
	case models.JobPlanned:
		return to == models.JobInProgress || to == models.JobCancelled
	case models.JobInProgress:
		return to == models.JobCompleted || to == models.JobCancelled
	default:
		return false
	}
}

// PUT /api/jobs/:id/status
func UpdateJobStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		var body UpdateJobStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		newStatus := models.JobStatus(body.Status)
		if !newStatus.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "status is not a known job status")
		}

		var jobRec models.CuttingJob
		if err := database.DB.First(&jobRec, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cutting job not found")
		}

		if !legalJobTransition(jobRec.Status, newStatus) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Job cannot move from %s to %s", jobRec.Status, newStatus))
		}

		before := jobRec
		jobRec.Status = newStatus

		if err := database.DB.Save(&jobRec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update cutting job")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      session.UserID,
			UserName:    session.Name,
			EntityType:  "cutting_job",
			EntityID:    jobRec.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Cutting job %s: %s -> %s", jobRec.OrderNo, before.Status, jobRec.Status),
			Before:      before,
			After:       jobRec,
		})

		return c.JSON(toResponse(&jobRec))
	}
}
