package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/onelab-dev/community-backend/internal/dto"
	"github.com/onelab-dev/community-backend/internal/models"
	"github.com/onelab-dev/community-backend/internal/repo"
	"gorm.io/gorm"
)

var (
	ErrNewsletterNotFound   = errors.New("newsletter not found")
	ErrTitleContentRequired = errors.New("title and content are required")
)

// NewsletterService manages admin-authored newsletters. Role enforcement
// happens at the middleware boundary; the acting admin's id is passed in
// explicitly where authorship matters.
type NewsletterService struct {
	newsletters repo.NewsletterRepository
}

func NewNewsletterService(newsletters repo.NewsletterRepository) *NewsletterService {
	return &NewsletterService{newsletters: newsletters}
}

func (s *NewsletterService) List(page, limit int) (*dto.NewsletterListResponse, error) {
	offset := (page - 1) * limit
	newsletters, total, err := s.newsletters.List(offset, limit)
	if err != nil {
		return nil, err
	}
	return &dto.NewsletterListResponse{
		Newsletters: toResponses(newsletters),
		Pagination:  dto.NewPagination(page, limit, total),
	}, nil
}

func (s *NewsletterService) ListPublished(page, limit int) (*dto.NewsletterListResponse, error) {
	offset := (page - 1) * limit
	newsletters, total, err := s.newsletters.ListPublished(offset, limit)
	if err != nil {
		return nil, err
	}
	return &dto.NewsletterListResponse{
		Newsletters: toResponses(newsletters),
		Pagination:  dto.NewPagination(page, limit, total),
	}, nil
}

func (s *NewsletterService) Get(id uuid.UUID) (*dto.NewsletterResponse, error) {
	newsletter, err := s.newsletters.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNewsletterNotFound
	}
	if err != nil {
		return nil, err
	}
	resp := dto.NewNewsletterResponse(*newsletter)
	return &resp, nil
}

// GetPublished returns a published newsletter and bumps its view count by
// exactly one per call. The returned record carries the pre-increment count.
// Unpublished newsletters are indistinguishable from missing ones.
func (s *NewsletterService) GetPublished(id uuid.UUID) (*dto.NewsletterResponse, error) {
	newsletter, err := s.newsletters.FindPublished(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNewsletterNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.newsletters.IncrementViews(id); err != nil {
		return nil, err
	}
	resp := dto.NewNewsletterResponse(*newsletter)
	return &resp, nil
}

func (s *NewsletterService) Create(authorID uuid.UUID, req *dto.CreateNewsletterRequest) (*dto.NewsletterResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, ErrTitleContentRequired
	}

	newsletter := &models.Newsletter{
		ID:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Thumbnail: req.Thumbnail,
		AuthorID:  authorID,
		Published: req.Published,
	}
	if req.Published {
		now := time.Now()
		newsletter.PublishedAt = &now
	}
	if err := s.newsletters.Insert(newsletter); err != nil {
		return nil, err
	}
	return s.Get(newsletter.ID)
}

// Update replaces title, content and published wholesale. Transitioning
// false→true stamps publishedAt; unpublishing through this path preserves
// the existing timestamp (unlike TogglePublish).
func (s *NewsletterService) Update(id uuid.UUID, req *dto.UpdateNewsletterRequest) (*dto.NewsletterResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, ErrTitleContentRequired
	}

	newsletter, err := s.newsletters.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNewsletterNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Published && !newsletter.Published {
		now := time.Now()
		newsletter.PublishedAt = &now
	}
	newsletter.Title = req.Title
	newsletter.Content = req.Content
	newsletter.Published = req.Published
	if req.Thumbnail != nil {
		newsletter.Thumbnail = req.Thumbnail
	}

	if err := s.newsletters.Save(newsletter); err != nil {
		return nil, err
	}
	resp := dto.NewNewsletterResponse(*newsletter)
	return &resp, nil
}

// TogglePublish flips the published flag. Turning on stamps publishedAt;
// turning off clears it, unlike Update.
func (s *NewsletterService) TogglePublish(id uuid.UUID) (*dto.NewsletterResponse, error) {
	newsletter, err := s.newsletters.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNewsletterNotFound
	}
	if err != nil {
		return nil, err
	}

	if newsletter.Published {
		newsletter.Published = false
		newsletter.PublishedAt = nil
	} else {
		now := time.Now()
		newsletter.Published = true
		newsletter.PublishedAt = &now
	}

	if err := s.newsletters.Save(newsletter); err != nil {
		return nil, err
	}
	resp := dto.NewNewsletterResponse(*newsletter)
	return &resp, nil
}

// Delete removes the newsletter by id. Deleting an already-gone id is not an
// error.
func (s *NewsletterService) Delete(id uuid.UUID) error {
	return s.newsletters.Delete(id)
}

func toResponses(newsletters []models.Newsletter) []dto.NewsletterResponse {
	responses := make([]dto.NewsletterResponse, len(newsletters))
	for i, n := range newsletters {
		responses[i] = dto.NewNewsletterResponse(n)
	}
	return responses
}
