package dto

import (
	"github.com/google/uuid"
	"github.com/onelab-dev/community-backend/internal/models"
)

type CreateNewsletterRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Thumbnail *string `json:"thumbnail"`
	Published bool    `json:"published"`
}

// UpdateNewsletterRequest uses full-replace semantics for title, content and
// published; thumbnail is applied only when present.
type UpdateNewsletterRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Thumbnail *string `json:"thumbnail"`
	Published bool    `json:"published"`
}

type AuthorInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image"`
}

type NewsletterResponse struct {
	models.Newsletter
	Author *AuthorInfo `json:"author"`
}

func NewNewsletterResponse(n models.Newsletter) NewsletterResponse {
	resp := NewsletterResponse{Newsletter: n}
	if n.Author != nil {
		resp.Author = &AuthorInfo{
			ID:    n.Author.ID,
			Name:  n.Author.Name,
			Image: n.Author.Image,
		}
	}
	return resp
}

type NewsletterListResponse struct {
	Newsletters []NewsletterResponse `json:"newsletters"`
	Pagination  Pagination           `json:"pagination"`
}
