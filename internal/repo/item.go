package repo

import (
	"github.com/google/uuid"
	"github.com/onelab-dev/community-backend/internal/models"
	"gorm.io/gorm"
)

type ItemRepository interface {
	ListByCategory(categoryID uuid.UUID) ([]models.AppItem, error)
	Append(item *models.AppItem) error
	Update(id, categoryID uuid.UUID, updates map[string]interface{}) (*models.AppItem, error)
	Delete(id, categoryID uuid.UUID) error
	Reorder(categoryID uuid.UUID, fromIndex, toIndex int) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) ListByCategory(categoryID uuid.UUID) ([]models.AppItem, error) {
	var items []models.AppItem
	err := r.db.Where("category_id = ?", categoryID).Order(orderAsc).Find(&items).Error
	return items, err
}

// Append inserts the item with order = current item count of the category
// (append semantics). The category revision serializes concurrent appends.
func (r *itemRepository) Append(item *models.AppItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Select("id", "revision").First(&category, "id = ?", item.CategoryID).Error; err != nil {
			return err
		}
		if err := bumpCategoryRevision(tx, category.ID, category.Revision); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.AppItem{}).Where("category_id = ?", item.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		item.Order = int(count)
		return tx.Create(item).Error
	})
}

func (r *itemRepository) Update(id, categoryID uuid.UUID, updates map[string]interface{}) (*models.AppItem, error) {
	var item models.AppItem
	if err := r.db.Where("id = ? AND category_id = ?", id, categoryID).First(&item).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.Model(&item).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &item, nil
}

// Delete removes the item and renumbers its siblings in one transaction, so
// the category's orders stay dense.
func (r *itemRepository) Delete(id, categoryID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Select("id", "revision").First(&category, "id = ?", categoryID).Error; err != nil {
			return err
		}
		if err := bumpCategoryRevision(tx, category.ID, category.Revision); err != nil {
			return err
		}

		result := tx.Where("id = ? AND category_id = ?", id, categoryID).Delete(&models.AppItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return renumberItems(tx, categoryID)
	})
}

// Reorder moves the item at fromIndex to toIndex (splice, not swap) and
// writes back order = positional index for every item whose position
// changed. The whole read-modify-write runs in one guarded transaction; out
// of range indices roll it back with zero writes.
func (r *itemRepository) Reorder(categoryID uuid.UUID, fromIndex, toIndex int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Select("id", "revision").First(&category, "id = ?", categoryID).Error; err != nil {
			return err
		}
		if err := bumpCategoryRevision(tx, category.ID, category.Revision); err != nil {
			return err
		}

		var items []models.AppItem
		if err := tx.Where("category_id = ?", categoryID).Order(orderAsc).Find(&items).Error; err != nil {
			return err
		}

		if fromIndex < 0 || fromIndex >= len(items) || toIndex < 0 || toIndex >= len(items) {
			return ErrIndexOutOfRange
		}

		moved := items[fromIndex]
		rest := make([]models.AppItem, 0, len(items)-1)
		rest = append(rest, items[:fromIndex]...)
		rest = append(rest, items[fromIndex+1:]...)

		reordered := make([]models.AppItem, 0, len(items))
		reordered = append(reordered, rest[:toIndex]...)
		reordered = append(reordered, moved)
		reordered = append(reordered, rest[toIndex:]...)

		for i, it := range reordered {
			if it.Order == i {
				continue
			}
			if err := tx.Model(&models.AppItem{}).Where("id = ?", it.ID).Update("order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func renumberItems(tx *gorm.DB, categoryID uuid.UUID) error {
	var remaining []models.AppItem
	if err := tx.Where("category_id = ?", categoryID).Order(orderAsc).Find(&remaining).Error; err != nil {
		return err
	}
	for i, it := range remaining {
		if it.Order == i {
			continue
		}
		if err := tx.Model(&models.AppItem{}).Where("id = ?", it.ID).Update("order", i).Error; err != nil {
			return err
		}
	}
	return nil
}
