package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/mocks"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

func TestExternalSearch(t *testing.T) {
	auth, _ := authed()
	external := new(mocks.MockExternalRecipeService)
	external.On("SearchRecipes", mock.Anything, mock.MatchedBy(func(p *types.ExternalSearchParams) bool {
		return p.Query == "pasta" && p.Number == 5
	})).Return(json.RawMessage(`{"results":[{"id":1}]}`), nil)

	r := newTestRouter(NewExternalRecipeHandler(external, auth))
	rec := perform(r, http.MethodGet, "/api/external/recipes/search?query=pasta&number=5", nil, testToken)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope(t, rec).Data.(map[string]interface{})
	assert.Len(t, data["results"], 1)
}

func TestExternalSearch_InvalidParams(t *testing.T) {
	auth, _ := authed()
	r := newTestRouter(NewExternalRecipeHandler(new(mocks.MockExternalRecipeService), auth))

	rec := perform(r, http.MethodGet, "/api/external/recipes/search", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = perform(r, http.MethodGet, "/api/external/recipes/search?number=500", nil, testToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(r, http.MethodGet, "/api/external/recipes/by-ingredients", nil, testToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExternalRecipe_Errors(t *testing.T) {
	auth, _ := authed()
	external := new(mocks.MockExternalRecipeService)
	external.On("GetRecipeInformation", mock.Anything, 7).Return(nil, service.ErrExternalDisabled)
	external.On("GetRecipeInformation", mock.Anything, 8).Return(nil, fmt.Errorf("status 500: %w", types.ErrBadGateway))

	r := newTestRouter(NewExternalRecipeHandler(external, auth))

	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/api/external/recipes/abc", nil, testToken).Code)
	assert.Equal(t, http.StatusServiceUnavailable, perform(r, http.MethodGet, "/api/external/recipes/7", nil, testToken).Code)
	assert.Equal(t, http.StatusBadGateway, perform(r, http.MethodGet, "/api/external/recipes/8", nil, testToken).Code)
}

func imageRequest(t *testing.T, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/images", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

func TestUploadImage(t *testing.T) {
	auth, _ := authed()
	images := new(mocks.MockImageService)
	content := []byte("\x89PNG\r\n\x1a\nrest")
	images.On("UploadImage", mock.Anything, content).Return("https://cdn.example.com/images/a.png", nil)

	r := newTestRouter(NewUploadHandler(images, auth))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, imageRequest(t, content))

	assert.Equal(t, http.StatusCreated, rec.Code)
	data := envelope(t, rec).Data.(map[string]interface{})
	assert.Equal(t, "https://cdn.example.com/images/a.png", data["url"])
}

func TestUploadImage_StorageDisabled(t *testing.T) {
	auth, _ := authed()
	images := new(mocks.MockImageService)
	images.On("UploadImage", mock.Anything, mock.Anything).Return("", config.ErrStorageDisabled)

	r := newTestRouter(NewUploadHandler(images, auth))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, imageRequest(t, []byte("data")))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUploadImage_MissingFile(t *testing.T) {
	auth, _ := authed()
	r := newTestRouter(NewUploadHandler(new(mocks.MockImageService), auth))
	rec := perform(r, http.MethodPost, "/api/uploads/images", nil, testToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
