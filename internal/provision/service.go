// Package provision creates user accounts in two steps: an identity record
// (credentials, role) followed by a profile row. The two stores may live in
// different systems, so the create is not atomic; a failed profile insert is
// compensated by deleting the just-created identity instead of leaving an
// orphan behind.
package provision

import (
	"errors"
	"log"
	"strings"

	"scraptrack-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrPasswordTooShort = errors.New("password too short")
	ErrInvalidRole      = errors.New("invalid role")
	ErrAuthCreate       = errors.New("auth creation failed")
	ErrProfileInsert    = errors.New("database insert failed")
)

// IdentityStore abstracts the auth side of provisioning so the compensation
// path can be exercised without a database.
type IdentityStore interface {
	CreateIdentity(email, passwordHash, fullName string, role models.UserRole) (uint, error)
	DeleteIdentity(id uint) error
}

// ProfileStore persists the HR-facing profile row keyed by the identity id.
type ProfileStore interface {
	CreateProfile(p *models.UserProfile) error
}

type Request struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	EmployeeID string `json:"employee_id"`
	Username   string `json:"username"`
	Shift      string `json:"shift"`
	IsActive   *bool  `json:"is_active"`
}

type Service struct {
	Identities IdentityStore
	Profiles   ProfileStore
}

// CreateUser validates the request, creates the identity, then the profile.
// On profile failure the identity is deleted again so no orphaned login
// remains; if even the compensating delete fails, the identity id is logged
// for manual cleanup.
func (s *Service) CreateUser(req Request) (uint, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.Username = strings.TrimSpace(req.Username)

	if req.Email == "" || req.Password == "" || req.Role == "" || req.EmployeeID == "" || req.Username == "" {
		return 0, ErrMissingFields
	}
	if len(req.Password) < 6 {
		return 0, ErrPasswordTooShort
	}

	role := models.UserRole(req.Role)
	if !role.Valid() {
		return 0, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, ErrAuthCreate
	}

	userID, err := s.Identities.CreateIdentity(req.Email, string(hash), req.FullName, role)
	if err != nil {
		return 0, ErrAuthCreate
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	profile := models.UserProfile{
		UserID:     userID,
		FullName:   req.FullName,
		Department: req.Department,
		EmployeeID: req.EmployeeID,
		Username:   req.Username,
		Shift:      req.Shift,
		IsActive:   isActive,
	}

	if err := s.Profiles.CreateProfile(&profile); err != nil {
		if delErr := s.Identities.DeleteIdentity(userID); delErr != nil {
			log.Printf("provision: compensating delete of identity %d failed: %v", userID, delErr)
		}
		return 0, ErrProfileInsert
	}

	return userID, nil
}
