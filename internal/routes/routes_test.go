package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/onelab-dev/community-backend/internal/config"
	"github.com/onelab-dev/community-backend/internal/database"
	"github.com/onelab-dev/community-backend/internal/dto"
	"github.com/onelab-dev/community-backend/internal/handlers"
	"github.com/onelab-dev/community-backend/internal/models"
	"github.com/onelab-dev/community-backend/internal/repo"
	"github.com/onelab-dev/community-backend/internal/services"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

type testEnv struct {
	app  *fiber.App
	auth *services.AuthService
	db   *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dial := gormsqlite.Dialector{
		DriverName: "sqlite",
		DSN:        "file:" + t.Name() + "?mode=memory&cache=shared",
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	cfg := &config.Config{
		Env:             "development",
		JWTSecret:       "test-secret",
		JWTAccessExpiry: time.Hour,
		SessionExpiry:   time.Hour,
		AdminEmails:     "listed-admin@example.com",
	}

	users := repo.NewUserRepository(db)
	sessions := repo.NewSessionRepository(db)
	authService := services.NewAuthService(users, sessions, cfg)
	collectionService := services.NewCollectionService(repo.NewCategoryRepository(db), repo.NewItemRepository(db))
	newsletterService := services.NewNewsletterService(repo.NewNewsletterRepository(db))

	app := fiber.New()
	Setup(app, cfg, db,
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(),
		handlers.NewCollectionHandler(collectionService),
		handlers.NewNewsletterHandler(newsletterService),
	)

	return &testEnv{app: app, auth: authService, db: db}
}

// login mints an access token through the dev login flow.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	resp, err := e.auth.TestLogin(&dto.TestLoginRequest{Email: email, Name: "Test User"})
	require.NoError(t, err)
	return resp.AccessToken
}

func (e *testEnv) loginAdmin(t *testing.T, email string) string {
	t.Helper()
	token := e.login(t, email)
	require.NoError(t, e.db.Model(&models.User{}).
		Where("email = ?", email).
		Update("role", models.RoleAdmin).Error)
	return token
}

func (e *testEnv) request(t *testing.T, method, target, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health dto.HealthResponse
	decodeBody(t, resp, &health)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "up", health.DB)
}

func TestCategoriesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/categories/", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/categories/", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRejectRegularUsers(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user@example.com")

	resp := env.request(t, http.MethodGet, "/api/admin/newsletters", token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var envelope dto.ErrorResponse
	decodeBody(t, resp, &envelope)
	require.True(t, envelope.Error)
	require.Equal(t, "Forbidden: Admin access required", envelope.Message)
}

func TestAdminRoleGrantsAccess(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAdmin(t, "admin@example.com")

	resp := env.request(t, http.MethodGet, "/api/admin/newsletters", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// The config admin list grants access without the DB role, so operators can
// be bootstrapped before any role exists.
func TestAdminEmailListGrantsAccess(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "listed-admin@example.com")

	resp := env.request(t, http.MethodGet, "/api/admin/newsletters", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInvalidCategoryIDRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user@example.com")

	resp := env.request(t, http.MethodPut, "/api/categories/not-a-uuid", token, fiber.Map{"title": "x"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var envelope dto.ErrorResponse
	decodeBody(t, resp, &envelope)
	require.True(t, envelope.Error)
	require.Equal(t, "Invalid category ID", envelope.Message)
}

func TestReorderRequiresBothIndices(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user@example.com")

	var created struct {
		Category models.Category `json:"category"`
	}
	resp := env.request(t, http.MethodPost, "/api/categories/", token, fiber.Map{"title": "Apps"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &created)

	resp = env.request(t, http.MethodPut, "/api/categories/"+created.Category.ID.String()+"/items/reorder", token, fiber.Map{"fromIndex": 0})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var envelope dto.ErrorResponse
	decodeBody(t, resp, &envelope)
	require.Equal(t, "fromIndex and toIndex are required", envelope.Message)
}

func TestCollectionFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user@example.com")

	var created struct {
		Category models.Category `json:"category"`
	}
	resp := env.request(t, http.MethodPost, "/api/categories/", token, fiber.Map{"title": "Apps"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &created)
	categoryID := created.Category.ID.String()

	for _, name := range []string{"a", "b", "c"} {
		resp = env.request(t, http.MethodPost, "/api/categories/"+categoryID+"/items", token, fiber.Map{
			"name": name, "url": "https://" + name + ".example",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp = env.request(t, http.MethodPut, "/api/categories/"+categoryID+"/items/reorder", token, fiber.Map{
		"fromIndex": 2, "toIndex": 0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var listed struct {
		Categories []models.Category `json:"categories"`
	}
	resp = env.request(t, http.MethodGet, "/api/categories/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &listed)
	require.Len(t, listed.Categories, 1)
	items := listed.Categories[0].Items
	require.Len(t, items, 3)
	require.Equal(t, "c", items[0].Name)
	require.Equal(t, "a", items[1].Name)
	require.Equal(t, "b", items[2].Name)
}

func TestOtherUsersCategoryHidden(t *testing.T) {
	env := newTestEnv(t)
	owner := env.login(t, "owner@example.com")
	intruder := env.login(t, "intruder@example.com")

	var created struct {
		Category models.Category `json:"category"`
	}
	resp := env.request(t, http.MethodPost, "/api/categories/", owner, fiber.Map{"title": "Private"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &created)

	resp = env.request(t, http.MethodDelete, "/api/categories/"+created.Category.ID.String(), intruder, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestPublicNewsletterRoutes(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAdmin(t, "admin@example.com")

	var draft dto.NewsletterResponse
	resp := env.request(t, http.MethodPost, "/api/admin/newsletters", admin, fiber.Map{
		"title": "Draft", "content": "body",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &draft)

	// Drafts are invisible publicly until toggled.
	resp = env.request(t, http.MethodGet, "/api/newsletters/"+draft.ID.String(), "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPatch, "/api/admin/newsletters/"+draft.ID.String()+"/publish", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/newsletters/"+draft.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var list dto.NewsletterListResponse
	resp = env.request(t, http.MethodGet, "/api/newsletters", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &list)
	require.Len(t, list.Newsletters, 1)
	require.Equal(t, int64(1), list.Pagination.Total)
}

func TestAuthMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "me@example.com")

	var body struct {
		User models.User `json:"user"`
	}
	resp := env.request(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	require.Equal(t, "me@example.com", body.User.Email)
}
