package models

import (
	"time"

	"github.com/google/uuid"
)

// Newsletter is an admin-managed article. PublishedAt is non-nil iff the
// newsletter is currently published via the toggle path; the full-update
// path preserves it on unpublish (see NewsletterService).
type Newsletter struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:500;not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Thumbnail   *string    `json:"thumbnail"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"authorId"`
	Published   bool       `gorm:"not null;default:false;index:idx_newsletters_published_at" json:"published"`
	Views       int        `gorm:"not null;default:0" json:"views"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `gorm:"index:idx_newsletters_published_at" json:"publishedAt"`

	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}
