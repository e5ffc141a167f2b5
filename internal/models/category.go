package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a user-owned group of app items. Order values across one
// user's categories form a dense zero-based sequence in list order.
type Category struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title  string    `gorm:"size:255;not null" json:"title"`
	Order  int       `gorm:"not null;default:0" json:"order"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	// Revision guards order assignment across the category's items.
	Revision  int64     `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []AppItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items"`
}
