package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/onelab-dev/community-backend/internal/dto"
	"github.com/onelab-dev/community-backend/internal/models"
	"github.com/onelab-dev/community-backend/internal/repo"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryTrimsTitle(t *testing.T) {
	service, db := newCollectionService(t)
	user := seedUser(t, db, models.RoleUser)

	category, err := service.CreateCategory(user.ID, "  Productivity  ")
	require.NoError(t, err)
	require.Equal(t, "Productivity", category.Title)
	require.Equal(t, 0, category.Order)
	require.NotNil(t, category.Items)
	require.Empty(t, category.Items)
}

func TestCreateCategoryRejectsBlankTitle(t *testing.T) {
	service, db := newCollectionService(t)
	user := seedUser(t, db, models.RoleUser)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := service.CreateCategory(user.ID, title)
		require.ErrorIs(t, err, ErrTitleRequired)
	}
}

func TestListCategoriesItemsNeverNil(t *testing.T) {
	service, db := newCollectionService(t)
	user := seedUser(t, db, models.RoleUser)

	_, err := service.CreateCategory(user.ID, "Empty")
	require.NoError(t, err)

	categories, err := service.ListCategories(user.ID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.NotNil(t, categories[0].Items)
	require.Empty(t, categories[0].Items)
}

func TestDeleteCategoryKeepsOrdersDense(t *testing.T) {
	service, db := newCollectionService(t)
	user := seedUser(t, db, models.RoleUser)

	a, err := service.CreateCategory(user.ID, "A")
	require.NoError(t, err)
	_, err = service.CreateCategory(user.ID, "B")
	require.NoError(t, err)
	_, err = service.CreateCategory(user.ID, "C")
	require.NoError(t, err)

	require.NoError(t, service.DeleteCategory(user.ID, a.ID))

	categories, err := service.ListCategories(user.ID)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Equal(t, "B", categories[0].Title)
	require.Equal(t, 0, categories[0].Order)
	require.Equal(t, "C", categories[1].Title)
	require.Equal(t, 1, categories[1].Order)

	// New categories append after the renumbered tail.
	d, err := service.CreateCategory(user.ID, "D")
	require.NoError(t, err)
	require.Equal(t, 2, d.Order)
}

func TestOwnershipHiddenAsNotFound(t *testing.T) {
	service, db := newCollectionService(t)
	alice := seedUser(t, db, models.RoleUser)
	bob := seedUser(t, db, models.RoleUser)

	category, err := service.CreateCategory(alice.ID, "Private")
	require.NoError(t, err)

	_, err = service.UpdateCategory(bob.ID, category.ID, "Stolen")
	require.ErrorIs(t, err, ErrCategoryNotFound)

	err = service.DeleteCategory(bob.ID, category.ID)
	require.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = service.CreateItem(bob.ID, category.ID, &dto.CreateItemRequest{Name: "x", URL: "https://x.example"})
	require.ErrorIs(t, err, ErrCategoryNotFound)

	err = service.ReorderItems(bob.ID, category.ID, 0, 0)
	require.ErrorIs(t, err, ErrCategoryNotFound)

	// Alice still sees her category untouched.
	categories, err := service.ListCategories(alice.ID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Equal(t, "Private", categories[0].Title)
}

func TestCreateItemValidatesBeforeOwnership(t *testing.T) {
	service, db := newCollectionService(t)
	user := seedUser(t, db, models.RoleUser)

	// Validation fires even for a category that does not exist.
	_, err := service.CreateItem(user.ID, uuid.New(), &dto.CreateItemRequest{Name: " ", URL: ""})
	require.ErrorIs(t, err, ErrNameAndURLRequired)

	_, err = service.CreateItem(user.ID, uuid.New(), &dto.CreateItemRequest{Name: "ok", URL: "https://ok.example"})
	require.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateItemNormalizesIconURL(t *testing.T) {
	service, db := newCollectionService(t)
	user := seedUser(t, db, models.RoleUser)
	category, err := service.CreateCategory(user.ID, "Apps")
	require.NoError(t, err)

	item, err := service.CreateItem(user.ID, category.ID, &dto.CreateItemRequest{
		Name:    " Mail ",
		URL:     " https://mail.example.com ",
		IconURL: strPtr("   "),
	})
	require.NoError(t, err)
	require.Equal(t, "Mail", item.Name)
	require.Equal(t, "https://mail.example.com", item.URL)
	require.Nil(t, item.IconURL)
}

func TestUpdateItemAppliesOnlyPresentFields(t *testing.T) {
	service, db := newCollectionService(t)
	user := seedUser(t, db, models.RoleUser)
	category, err := service.CreateCategory(user.ID, "Apps")
	require.NoError(t, err)

	item, err := service.CreateItem(user.ID, category.ID, &dto.CreateItemRequest{
		Name:    "Mail",
		URL:     "https://mail.example.com",
		IconURL: strPtr("https://mail.example.com/icon.png"),
	})
	require.NoError(t, err)

	updated, err := service.UpdateItem(user.ID, category.ID, item.ID, &dto.UpdateItemRequest{
		Name: strPtr("Inbox"),
	})
	require.NoError(t, err)
	require.Equal(t, "Inbox", updated.Name)
	require.Equal(t, "https://mail.example.com", updated.URL)
	require.NotNil(t, updated.IconURL)

	// A present but blank iconUrl clears the icon.
	updated, err = service.UpdateItem(user.ID, category.ID, item.ID, &dto.UpdateItemRequest{
		IconURL: strPtr(""),
	})
	require.NoError(t, err)
	require.Nil(t, updated.IconURL)
}

func TestUpdateItemWithNoFieldsIsNoOp(t *testing.T) {
	service, db := newCollectionService(t)
	user := seedUser(t, db, models.RoleUser)
	category, err := service.CreateCategory(user.ID, "Apps")
	require.NoError(t, err)
	item, err := service.CreateItem(user.ID, category.ID, &dto.CreateItemRequest{Name: "Mail", URL: "https://mail.example.com"})
	require.NoError(t, err)

	updated, err := service.UpdateItem(user.ID, category.ID, item.ID, &dto.UpdateItemRequest{})
	require.NoError(t, err)
	require.Equal(t, "Mail", updated.Name)
}

func TestUpdateItemUnknownID(t *testing.T) {
	service, db := newCollectionService(t)
	user := seedUser(t, db, models.RoleUser)
	category, err := service.CreateCategory(user.ID, "Apps")
	require.NoError(t, err)

	_, err = service.UpdateItem(user.ID, category.ID, uuid.New(), &dto.UpdateItemRequest{Name: strPtr("x")})
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteItemRenumbersSiblings(t *testing.T) {
	service, db := newCollectionService(t)
	user := seedUser(t, db, models.RoleUser)
	category, err := service.CreateCategory(user.ID, "Apps")
	require.NoError(t, err)

	var ids []uuid.UUID
	for _, name := range []string{"a", "b", "c"} {
		item, err := service.CreateItem(user.ID, category.ID, &dto.CreateItemRequest{Name: name, URL: "https://" + name + ".example"})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	require.NoError(t, service.DeleteItem(user.ID, category.ID, ids[0]))

	categories, err := service.ListCategories(user.ID)
	require.NoError(t, err)
	require.Len(t, categories[0].Items, 2)
	require.Equal(t, "b", categories[0].Items[0].Name)
	require.Equal(t, 0, categories[0].Items[0].Order)
	require.Equal(t, "c", categories[0].Items[1].Name)
	require.Equal(t, 1, categories[0].Items[1].Order)
}

func TestReorderItemsMovesBySplice(t *testing.T) {
	service, db := newCollectionService(t)
	user := seedUser(t, db, models.RoleUser)
	category, err := service.CreateCategory(user.ID, "Apps")
	require.NoError(t, err)

	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := service.CreateItem(user.ID, category.ID, &dto.CreateItemRequest{Name: name, URL: "https://" + name + ".example"})
		require.NoError(t, err)
	}

	require.NoError(t, service.ReorderItems(user.ID, category.ID, 0, 2))

	categories, err := service.ListCategories(user.ID)
	require.NoError(t, err)
	names := make([]string, 0, 4)
	for _, item := range categories[0].Items {
		names = append(names, item.Name)
	}
	require.Equal(t, []string{"b", "c", "a", "d"}, names)
}

func TestReorderItemsInvalidIndexLeavesOrderUntouched(t *testing.T) {
	service, db := newCollectionService(t)
	user := seedUser(t, db, models.RoleUser)
	category, err := service.CreateCategory(user.ID, "Apps")
	require.NoError(t, err)

	for _, name := range []string{"a", "b"} {
		_, err := service.CreateItem(user.ID, category.ID, &dto.CreateItemRequest{Name: name, URL: "https://" + name + ".example"})
		require.NoError(t, err)
	}

	err = service.ReorderItems(user.ID, category.ID, 0, 5)
	require.ErrorIs(t, err, ErrInvalidIndex)
	err = service.ReorderItems(user.ID, category.ID, -1, 0)
	require.ErrorIs(t, err, ErrInvalidIndex)

	categories, err := service.ListCategories(user.ID)
	require.NoError(t, err)
	require.Equal(t, "a", categories[0].Items[0].Name)
	require.Equal(t, "b", categories[0].Items[1].Name)
}

func TestConcurrentItemAppendsKeepOrdersDense(t *testing.T) {
	service, db := newCollectionService(t)
	// Single connection so SQLite queues writers instead of failing them.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	user := seedUser(t, db, models.RoleUser)
	category, err := service.CreateCategory(user.ID, "Apps")
	require.NoError(t, err)

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := service.CreateItem(user.ID, category.ID, &dto.CreateItemRequest{
				Name: "app", URL: "https://app.example",
			})
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	categories, err := service.ListCategories(user.ID)
	require.NoError(t, err)
	require.Len(t, categories[0].Items, n)
	for i, item := range categories[0].Items {
		require.Equal(t, i, item.Order)
	}
}

// conflictingCategoryRepo loses the revision race a fixed number of times
// before delegating to the real repository.
type conflictingCategoryRepo struct {
	repo.CategoryRepository
	failures int
	attempts int
}

func (r *conflictingCategoryRepo) Append(category *models.Category) error {
	r.attempts++
	if r.attempts <= r.failures {
		return repo.ErrConflict
	}
	return r.CategoryRepository.Append(category)
}

func TestCreateCategoryRetriesOnConflict(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleUser)
	conflicting := &conflictingCategoryRepo{
		CategoryRepository: repo.NewCategoryRepository(db),
		failures:           2,
	}
	service := NewCollectionService(conflicting, repo.NewItemRepository(db))

	category, err := service.CreateCategory(user.ID, "Apps")
	require.NoError(t, err)
	require.Equal(t, 3, conflicting.attempts)
	require.Equal(t, 0, category.Order)
}

func TestCreateCategoryGivesUpAfterRetries(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleUser)
	conflicting := &conflictingCategoryRepo{
		CategoryRepository: repo.NewCategoryRepository(db),
		failures:           conflictRetries + 1,
	}
	service := NewCollectionService(conflicting, repo.NewItemRepository(db))

	_, err := service.CreateCategory(user.ID, "Apps")
	require.ErrorIs(t, err, repo.ErrConflict)
	require.Equal(t, conflictRetries, conflicting.attempts)
}
