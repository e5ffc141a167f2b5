package repo

import (
	"github.com/google/uuid"
	"github.com/onelab-dev/community-backend/internal/models"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	ListByOwner(userID uuid.UUID) ([]models.Category, error)
	FindOwned(id, userID uuid.UUID) (*models.Category, error)
	Append(category *models.Category) error
	UpdateTitle(id, userID uuid.UUID, title string) (*models.Category, error)
	Delete(id, userID uuid.UUID) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) ListByOwner(userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.
		Preload("Items", itemsInOrder).
		Where("user_id = ?", userID).
		Order(orderAsc).
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) FindOwned(id, userID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Append inserts the category with order = current count of the owner's
// categories. The owner's revision serializes concurrent appends so that two
// racing creates cannot both read the same count.
func (r *categoryRepository) Append(category *models.Category) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Select("id", "revision").First(&owner, "id = ?", category.UserID).Error; err != nil {
			return err
		}
		if err := bumpUserRevision(tx, owner.ID, owner.Revision); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Category{}).Where("user_id = ?", category.UserID).Count(&count).Error; err != nil {
			return err
		}
		category.Order = int(count)
		return tx.Create(category).Error
	})
}

func (r *categoryRepository) UpdateTitle(id, userID uuid.UUID, title string) (*models.Category, error) {
	result := r.db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("title", title)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var category models.Category
	if err := r.db.Preload("Items", itemsInOrder).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes the category with all its items in one transaction and
// renumbers the owner's remaining categories to keep orders dense.
func (r *categoryRepository) Delete(id, userID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Select("id", "revision").First(&owner, "id = ?", userID).Error; err != nil {
			return err
		}
		if err := bumpUserRevision(tx, owner.ID, owner.Revision); err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Category{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.AppItem{}).Error; err != nil {
			return err
		}

		var remaining []models.Category
		if err := tx.Where("user_id = ?", userID).Order(orderAsc).Find(&remaining).Error; err != nil {
			return err
		}
		for i, cat := range remaining {
			if cat.Order == i {
				continue
			}
			if err := tx.Model(&models.Category{}).Where("id = ?", cat.ID).Update("order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func itemsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order(orderAsc)
}
