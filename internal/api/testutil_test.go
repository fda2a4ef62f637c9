package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/najino/Cooko-application-api/internal/api"
	"github.com/najino/Cooko-application-api/internal/service"
	"github.com/najino/Cooko-application-api/internal/testhelpers"
)

type testEnv struct {
	router      *gin.Engine
	db          *gorm.DB
	categories  *service.CategoryService
	ingredients *service.IngredientService
	recipes     *service.RecipeService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	categories := service.NewCategoryService(db)
	ingredients := service.NewIngredientService(db)
	recipes := service.NewRecipeService(db, categories, ingredients)

	router := gin.New()
	router.GET("/health", api.HealthCheck)
	root := router.Group("")
	api.NewCategoryHandler(categories, ingredients).RegisterRoutes(root)
	api.NewIngredientHandler(ingredients).RegisterRoutes(root)
	api.NewRecipeHandler(recipes).RegisterRoutes(root)

	return &testEnv{
		router:      router,
		db:          db,
		categories:  categories,
		ingredients: ingredients,
		recipes:     recipes,
	}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// mockUploadService records the last upload and returns a canned URL.
type mockUploadService struct {
	lastUpload *service.FileUpload
	url        string
	err        error
}

func (m *mockUploadService) UploadFile(_ context.Context, upload *service.FileUpload) (string, error) {
	m.lastUpload = upload
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

func setupUploadRouter(mock *mockUploadService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api.NewUploadHandler(mock).RegisterRoutes(router.Group(""))
	return router
}

func assertErrorEnvelope(t *testing.T, w *httptest.ResponseRecorder, status int) map[string]interface{} {
	t.Helper()
	require.Equal(t, status, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, float64(status), body["statusCode"])
	require.Equal(t, http.StatusText(status), body["error"])
	require.NotEmpty(t, body["message"])
	return body
}
