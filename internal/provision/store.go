package provision

import (
	"scraptrack-backend/internal/database"
	"scraptrack-backend/internal/models"
)

type gormIdentityStore struct{}

func (gormIdentityStore) CreateIdentity(email, passwordHash, fullName string, role models.UserRole) (uint, error) {
	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (gormIdentityStore) DeleteIdentity(id uint) error {
	return database.DB.Delete(&models.User{}, "id = ?", id).Error
}

type gormProfileStore struct{}

func (gormProfileStore) CreateProfile(p *models.UserProfile) error {
	return database.DB.Create(p).Error
}

// NewService wires the database-backed stores.
func NewService() *Service {
	return &Service{
		Identities: gormIdentityStore{},
		Profiles:   gormProfileStore{},
	}
}
