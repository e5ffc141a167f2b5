package repo

import (
	"errors"

	"github.com/google/uuid"
	"github.com/onelab-dev/community-backend/internal/models"
	"gorm.io/gorm"
)

// ErrConflict signals that a guarded revision changed underneath a
// transaction; callers retry the whole operation.
var ErrConflict = errors.New("revision conflict")

// ErrIndexOutOfRange signals reorder indices outside the item list.
var ErrIndexOutOfRange = errors.New("index out of range")

// "order" is a reserved word in SQL, so it is always quoted.
const orderAsc = `"order" ASC`

// bumpUserRevision serializes order assignment across one user's categories:
// the conditional update fails with ErrConflict when another writer got
// there first, and the enclosing transaction rolls back.
func bumpUserRevision(tx *gorm.DB, id uuid.UUID, revision int64) error {
	result := tx.Model(&models.User{}).
		Where("id = ? AND revision = ?", id, revision).
		Update("revision", gorm.Expr("revision + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// bumpCategoryRevision does the same for the items of one category.
func bumpCategoryRevision(tx *gorm.DB, id uuid.UUID, revision int64) error {
	result := tx.Model(&models.Category{}).
		Where("id = ? AND revision = ?", id, revision).
		Update("revision", gorm.Expr("revision + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
