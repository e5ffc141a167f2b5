package repo

import (
	"github.com/google/uuid"
	"github.com/onelab-dev/community-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewsletterRepository interface {
	List(offset, limit int) ([]models.Newsletter, int64, error)
	ListPublished(offset, limit int) ([]models.Newsletter, int64, error)
	FindByID(id uuid.UUID) (*models.Newsletter, error)
	FindPublished(id uuid.UUID) (*models.Newsletter, error)
	Insert(newsletter *models.Newsletter) error
	Save(newsletter *models.Newsletter) error
	Delete(id uuid.UUID) error
	IncrementViews(id uuid.UUID) error
}

type newsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

// List returns all newsletters newest-created first, with authors attached.
func (r *newsletterRepository) List(offset, limit int) ([]models.Newsletter, int64, error) {
	var newsletters []models.Newsletter
	var total int64

	if err := r.db.Model(&models.Newsletter{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Author").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&newsletters).Error
	return newsletters, total, err
}

// ListPublished returns published newsletters newest-published first.
func (r *newsletterRepository) ListPublished(offset, limit int) ([]models.Newsletter, int64, error) {
	var newsletters []models.Newsletter
	var total int64

	if err := r.db.Model(&models.Newsletter{}).Where("published = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Author").
		Where("published = ?", true).
		Order("published_at DESC").
		Offset(offset).Limit(limit).
		Find(&newsletters).Error
	return newsletters, total, err
}

func (r *newsletterRepository) FindByID(id uuid.UUID) (*models.Newsletter, error) {
	var newsletter models.Newsletter
	if err := r.db.Preload("Author").First(&newsletter, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &newsletter, nil
}

// FindPublished hides unpublished newsletters behind the same not-found
// outcome as missing ones.
func (r *newsletterRepository) FindPublished(id uuid.UUID) (*models.Newsletter, error) {
	var newsletter models.Newsletter
	if err := r.db.Preload("Author").Where("published = ?", true).First(&newsletter, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &newsletter, nil
}

func (r *newsletterRepository) Insert(newsletter *models.Newsletter) error {
	return r.db.Omit(clause.Associations).Create(newsletter).Error
}

func (r *newsletterRepository) Save(newsletter *models.Newsletter) error {
	return r.db.Omit(clause.Associations).Save(newsletter).Error
}

func (r *newsletterRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Newsletter{}, "id = ?", id).Error
}

func (r *newsletterRepository) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&models.Newsletter{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
