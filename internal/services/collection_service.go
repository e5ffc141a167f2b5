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
	// Ownership failures map to the same not-found outcome as missing
	// resources, so callers cannot probe other users' collections.
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("item not found")

	ErrTitleRequired      = errors.New("title is required")
	ErrNameAndURLRequired = errors.New("name and url are required")
	ErrInvalidIndex       = errors.New("invalid index")
)

// conflictRetries bounds how often an operation is replayed after losing a
// revision race.
const conflictRetries = 3

// CollectionService owns categories and their ordered app items. Every
// mutation takes the acting user's id explicitly and verifies ownership
// before touching items.
type CollectionService struct {
	categories repo.CategoryRepository
	items      repo.ItemRepository
}

func NewCollectionService(categories repo.CategoryRepository, items repo.ItemRepository) *CollectionService {
	return &CollectionService{categories: categories, items: items}
}

// ListCategories returns the user's categories ascending by order, each with
// its items ascending by order.
func (s *CollectionService) ListCategories(userID uuid.UUID) ([]models.Category, error) {
	categories, err := s.categories.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Items == nil {
			categories[i].Items = []models.AppItem{}
		}
	}
	return categories, nil
}

func (s *CollectionService) CreateCategory(userID uuid.UUID, title string) (*models.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	category := &models.Category{
		ID:     uuid.New(),
		Title:  title,
		UserID: userID,
	}
	if err := retryOnConflict(func() error {
		return s.categories.Append(category)
	}); err != nil {
		return nil, err
	}
	category.Items = []models.AppItem{}
	return category, nil
}

func (s *CollectionService) UpdateCategory(userID, categoryID uuid.UUID, title string) (*models.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	category, err := s.categories.UpdateTitle(categoryID, userID, title)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	if category.Items == nil {
		category.Items = []models.AppItem{}
	}
	return category, nil
}

func (s *CollectionService) DeleteCategory(userID, categoryID uuid.UUID) error {
	err := retryOnConflict(func() error {
		return s.categories.Delete(categoryID, userID)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

func (s *CollectionService) CreateItem(userID, categoryID uuid.UUID, req *dto.CreateItemRequest) (*models.AppItem, error) {
	name := strings.TrimSpace(req.Name)
	url := strings.TrimSpace(req.URL)
	if name == "" || url == "" {
		return nil, ErrNameAndURLRequired
	}

	if _, err := s.requireOwnedCategory(userID, categoryID); err != nil {
		return nil, err
	}

	item := &models.AppItem{
		ID:         uuid.New(),
		Name:       name,
		URL:        url,
		IconURL:    normalizeIconURL(req.IconURL),
		CategoryID: categoryID,
	}
	if err := retryOnConflict(func() error {
		return s.items.Append(item)
	}); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem applies only the fields present in the request; presence is
// decided by pointer, not by value truthiness.
func (s *CollectionService) UpdateItem(userID, categoryID, itemID uuid.UUID, req *dto.UpdateItemRequest) (*models.AppItem, error) {
	if _, err := s.requireOwnedCategory(userID, categoryID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.URL != nil {
		updates["url"] = strings.TrimSpace(*req.URL)
	}
	if req.IconURL != nil {
		updates["icon_url"] = normalizeIconURL(req.IconURL)
	}

	item, err := s.items.Update(itemID, categoryID, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CollectionService) DeleteItem(userID, categoryID, itemID uuid.UUID) error {
	if _, err := s.requireOwnedCategory(userID, categoryID); err != nil {
		return err
	}

	err := retryOnConflict(func() error {
		return s.items.Delete(itemID, categoryID)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrItemNotFound
	}
	return err
}

// ReorderItems moves the item at fromIndex to toIndex within the category's
// ordered item list. Bounds are checked against the loaded list, after the
// ownership check.
func (s *CollectionService) ReorderItems(userID, categoryID uuid.UUID, fromIndex, toIndex int) error {
	if _, err := s.requireOwnedCategory(userID, categoryID); err != nil {
		return err
	}

	err := retryOnConflict(func() error {
		return s.items.Reorder(categoryID, fromIndex, toIndex)
	})
	switch {
	case errors.Is(err, repo.ErrIndexOutOfRange):
		return ErrInvalidIndex
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrCategoryNotFound
	}
	return err
}

func (s *CollectionService) requireOwnedCategory(userID, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.categories.FindOwned(categoryID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func retryOnConflict(op func() error) error {
	var err error
	for attempt := 0; attempt < conflictRetries; attempt++ {
		err = op()
		if !errors.Is(err, repo.ErrConflict) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 5 * time.Millisecond)
	}
	return err
}

func normalizeIconURL(iconURL *string) *string {
	if iconURL == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*iconURL)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
