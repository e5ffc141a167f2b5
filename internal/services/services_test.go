package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/onelab-dev/community-backend/internal/models"
	"github.com/onelab-dev/community-backend/internal/repo"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB opens an in-memory SQLite database (modernc.org/sqlite, no cgo)
// named after the test so tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dial := gormsqlite.Dialector{
		DriverName: "sqlite",
		DSN:        "file:" + t.Name() + "?mode=memory&cache=shared",
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Session{},
		&models.VerificationToken{},
		&models.Category{},
		&models.AppItem{},
		&models.Newsletter{},
		&models.SystemLog{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: uuid.NewString() + "@example.com",
		Role:  role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newCollectionService(t *testing.T) (*CollectionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewCollectionService(repo.NewCategoryRepository(db), repo.NewItemRepository(db)), db
}

func newNewsletterService(t *testing.T) (*NewsletterService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewNewsletterService(repo.NewNewsletterRepository(db)), db
}

func strPtr(s string) *string { return &s }
