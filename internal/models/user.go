package models

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleSupervisor UserRole = "supervisor"
	RoleOperator   UserRole = "operator"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleOperator:
		return true
	}
	return false
}

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	FullName     string   `gorm:"size:100"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile: HR-facing part of a provisioned account, keyed by the identity row.
// Created together with the User by the provisioning endpoint.
type UserProfile struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"uniqueIndex;not null"`
	User       User
	FullName   string `gorm:"size:100"`
	Department string `gorm:"size:100"`
	EmployeeID string `gorm:"size:50;uniqueIndex;not null"`
	Username   string `gorm:"size:50;uniqueIndex;not null"`
	Shift      string `gorm:"size:20"` // "morning", "evening", "night"
	IsActive   bool   `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
