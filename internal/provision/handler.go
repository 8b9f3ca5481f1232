package provision

import (
	"errors"
	"fmt"
	"log"

	"scraptrack-backend/internal/audit"
	"scraptrack-backend/internal/auth"
	"scraptrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// POST /api/admin/users
// Response codes and bodies mirror the provisioning contract exactly.
func CreateUserHandler() fiber.Handler {
	svc := NewService()

	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		var body Request
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
		}

		userID, err := svc.CreateUser(body)
		if err != nil {
			switch {
			case errors.Is(err, ErrMissingFields):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
			case errors.Is(err, ErrPasswordTooShort):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password too short"})
			case errors.Is(err, ErrInvalidRole):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role"})
			case errors.Is(err, ErrAuthCreate):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Auth creation failed"})
			case errors.Is(err, ErrProfileInsert):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Database insert failed"})
			default:
				log.Printf("provision: unexpected error: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
			}
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      session.UserID,
			UserName:    session.Name,
			EntityType:  "user",
			EntityID:    userID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("User provisioned: %s (%s)", body.Username, body.Role),
			Before:      nil,
		})

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"user_id": userID,
		})
	}
}
