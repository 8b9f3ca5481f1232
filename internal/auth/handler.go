package auth

import (
	"strings"

	"scraptrack-backend/internal/config"
	"scraptrack-backend/internal/database"
	"scraptrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterAdminRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register-admin
// Bootstrap endpoint: only usable while no admin exists. Further accounts go
// through the provisioning endpoint.
func RegisterAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" || body.FullName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Full name, email and password are required")
		}

		var count int64
		database.DB.Model(&models.User{}).
			Where("role = ?", models.RoleAdmin).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "An admin account already exists")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			FullName:     body.FullName,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}

		// Deactivated accounts keep their credentials but may not log in.
		var profile models.UserProfile
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil && !profile.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":        user.ID,
				"full_name": user.FullName,
				"email":     user.Email,
				"role":      user.Role,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := SessionFrom(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, session.UserID).Error; err != nil {
			// Fall back to token claims if the row is unreachable.
			return c.JSON(fiber.Map{
				"user_id":   session.UserID,
				"full_name": session.Name,
				"role":      session.Role,
			})
		}

		response := fiber.Map{
			"user_id":   user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		}

		var profile models.UserProfile
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			response["profile"] = fiber.Map{
				"employee_id": profile.EmployeeID,
				"username":    profile.Username,
				"department":  profile.Department,
				"shift":       profile.Shift,
				"is_active":   profile.IsActive,
			}
		}

		return c.JSON(response)
	}
}
