package models

import (
	"time"

	"github.com/google/uuid"
)

// Role values for User.Role.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is created on first sign-in (OAuth, or the dev test login) and is
// never deleted by this service.
type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string     `gorm:"size:255" json:"name"`
	Email         string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	EmailVerified *time.Time `json:"emailVerified"`
	Image         string     `json:"image"`
	Role          string     `gorm:"size:10;not null;default:'USER'" json:"role"`
	// Revision guards order assignment across the user's categories.
	Revision  int64     `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
