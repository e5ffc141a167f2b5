package models

import (
	"time"

	"github.com/google/uuid"
)

// AppItem is a bookmarked app inside a category. Order values within one
// category are dense and zero-based, and define display order.
type AppItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	URL        string    `gorm:"not null" json:"url"`
	IconURL    *string   `json:"iconUrl"`
	Order      int       `gorm:"not null;default:0" json:"order"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
