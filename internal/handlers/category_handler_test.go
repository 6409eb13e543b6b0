package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "clubhub/internal/errors"
	"clubhub/internal/models"
	"clubhub/internal/pagination"
	"clubhub/internal/services"
	"clubhub/internal/validator"
)

const (
	testUserID     = "0198c8b2-0000-7000-8000-000000000001"
	testCategoryID = "0198c8b2-0000-7000-8000-000000000002"
	testParentID   = "0198c8b2-0000-7000-8000-000000000003"
)

// --- mock services ---

type mockCategoryService struct {
	createCategoryFn    func(name, description string, parentID *string) (*models.Category, error)
	listCategoriesFn    func(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	getCategoryTreeFn   func() ([]*models.Category, error)
	getCategoryByIDFn   func(id string) (*models.Category, error)
	getCategoryBySlugFn func(path string) (*models.Category, error)
	updateCategoryFn    func(id string, in services.UpdateCategoryInput) (*models.Category, error)
	deleteCategoryFn    func(id string) error
}

func (m *mockCategoryService) CreateCategory(name, description string, parentID *string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(name, description, parentID)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(page)
	}
	resp := pagination.NewPageResponse([]models.Category{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockCategoryService) GetCategoryTree() ([]*models.Category, error) {
	if m.getCategoryTreeFn != nil {
		return m.getCategoryTreeFn()
	}
	return nil, nil
}

func (m *mockCategoryService) GetCategoryByID(id string) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(id)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryBySlug(path string) (*models.Category, error) {
	if m.getCategoryBySlugFn != nil {
		return m.getCategoryBySlugFn(path)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(id string, in services.UpdateCategoryInput) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(id, in)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(id string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(id)
	}
	return nil
}

type mockAuditService struct{}

func (m *mockAuditService) Log(_, _, _, _, _ string, _ map[string]interface{}) {}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("/", injectUserID(testUserID))
	auth.POST("/categories", handler.CreateCategory)
	auth.GET("/categories", handler.ListCategories)
	auth.GET("/categories/tree", handler.GetCategoryTree)
	auth.GET("/categories/:id", handler.GetCategoryByID)
	auth.GET("/categories/slug/*path", handler.GetCategoryBySlug)
	auth.PUT("/categories/:id", handler.UpdateCategory)
	auth.DELETE("/categories/:id", handler.DeleteCategory)
	return r
}

// --- tests ---

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("returns 201 with derived slug", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(name, description string, parentID *string) (*models.Category, error) {
				cat := &models.Category{Name: name, Slug: "sports", Description: description}
				cat.ID = testCategoryID
				return cat, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/categories", `{"name":"Sports"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		cat, ok := result["category"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected category object, got: %v", result)
		}
		if cat["slug"] != "sports" {
			t.Errorf("expected slug sports, got %v", cat["slug"])
		}
	})

	t.Run("passes parent_id through", func(t *testing.T) {
		var gotParent *string
		svc := &mockCategoryService{
			createCategoryFn: func(name, description string, parentID *string) (*models.Category, error) {
				gotParent = parentID
				return &models.Category{Name: name}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/categories",
			`{"name":"Football","parent_id":"`+testParentID+`"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotParent == nil || *gotParent != testParentID {
			t.Errorf("expected parent %s, got %v", testParentID, gotParent)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/categories", `{"description":"no name"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 on duplicate sibling name", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(string, string, *string) (*models.Category, error) {
				return nil, apperrors.ErrDuplicateCategory
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/categories", `{"name":"Sports"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_CATEGORY_NAME")
	})
}

func TestCategoryHandler_GetCategoryBySlug(t *testing.T) {
	t.Run("passes full path without leading slash", func(t *testing.T) {
		var gotPath string
		svc := &mockCategoryService{
			getCategoryBySlugFn: func(path string) (*models.Category, error) {
				gotPath = path
				return &models.Category{Slug: path}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/categories/slug/sports/football/youth-teams", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPath != "sports/football/youth-teams" {
			t.Errorf("expected path sports/football/youth-teams, got %q", gotPath)
		}
	})

	t.Run("returns 400 on malformed path", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/categories/slug/Sports%20Teams", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 on unknown path", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryBySlugFn: func(string) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/categories/slug/ghost", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	t.Run("passes tri-state parent_id", func(t *testing.T) {
		var gotInput services.UpdateCategoryInput
		svc := &mockCategoryService{
			updateCategoryFn: func(id string, in services.UpdateCategoryInput) (*models.Category, error) {
				gotInput = in
				return &models.Category{}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		// Explicit "" means move to root.
		rec := doRequest(r, http.MethodPut, "/categories/"+testCategoryID, `{"parent_id":""}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotInput.ParentID == nil || *gotInput.ParentID != "" {
			t.Errorf("expected pointer to empty string, got %v", gotInput.ParentID)
		}
		if gotInput.Name != nil {
			t.Errorf("expected nil name for omitted field, got %v", *gotInput.Name)
		}
	})

	t.Run("returns 400 on circular move", func(t *testing.T) {
		svc := &mockCategoryService{
			updateCategoryFn: func(string, services.UpdateCategoryInput) (*models.Category, error) {
				return nil, apperrors.ErrCircularCategoryMove
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPut, "/categories/"+testCategoryID,
			`{"parent_id":"`+testParentID+`"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CIRCULAR_CATEGORY_MOVE")
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodPut, "/categories/not-a-uuid", `{"name":"Sports"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deletedID string
		svc := &mockCategoryService{
			deleteCategoryFn: func(id string) error {
				deletedID = id
				return nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodDelete, "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deletedID != testCategoryID {
			t.Errorf("expected delete of %s, got %s", testCategoryID, deletedID)
		}
	})

	t.Run("returns 404 on unknown category", func(t *testing.T) {
		svc := &mockCategoryService{
			deleteCategoryFn: func(string) error { return apperrors.ErrCategoryNotFound },
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodDelete, "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
