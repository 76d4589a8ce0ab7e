package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T) *Server {
	db := testhelpers.SetupSQLite(t)
	cfg := &config.Config{
		ServerHost:  "localhost",
		ServerPort:  "8080",
		JWTSecret:   "test-secret",
		JWTExpiry:   time.Hour,
		CORSOrigins: []string{"http://localhost:3000"},
	}
	return New(cfg, db)
}

func call(t *testing.T, s *Server, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func register(t *testing.T, s *Server, username string) string {
	t.Helper()
	code, env := call(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     username,
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	return auth.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	code, env := call(t, s, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestUnknownRecipeIsEnvelope404(t *testing.T) {
	s := newTestServer(t)
	code, env := call(t, s, http.MethodGet, "/api/recipes/slug/missing", "", nil)

	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Recipe not found", env.Error)
}

func TestRecipeReviewFlow(t *testing.T) {
	s := newTestServer(t)
	author := register(t, s, "author")
	reviewer := register(t, s, "reviewer")

	code, env := call(t, s, http.MethodPost, "/api/recipes", author, map[string]interface{}{
		"title":        "Pancakes",
		"ingredients":  []map[string]interface{}{{"item": "flour", "quantity": 200, "unit": "g"}},
		"instructions": []string{"Mix", "Fry"},
		"servings":     4,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var recipe struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &recipe))
	assert.Equal(t, "pancakes", recipe.Slug)

	code, env = call(t, s, http.MethodPost, "/api/recipes/"+recipe.ID+"/reviews", author, map[string]interface{}{
		"rating": 5, "text": "Mine is the best",
	})
	assert.Equal(t, http.StatusBadRequest, code, "authors cannot review their own recipe")

	code, env = call(t, s, http.MethodPost, "/api/recipes/"+recipe.ID+"/reviews", reviewer, map[string]interface{}{
		"rating": 4, "text": "Fluffy",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, env = call(t, s, http.MethodGet, "/api/recipes/"+recipe.ID, "", nil)
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		AvgRating   float64 `json:"avgRating"`
		ReviewCount int     `json:"reviewCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 4.0, stats.AvgRating)
	assert.Equal(t, 1, stats.ReviewCount)

	code, _ = call(t, s, http.MethodGet, "/api/notifications", author, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestExternalRecipesDisabledWithoutKey(t *testing.T) {
	s := newTestServer(t)
	token := register(t, s, "explorer")
	code, env := call(t, s, http.MethodGet, "/api/external/recipes/random", token, nil)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, env.Success)
}

func TestUploadsDisabledWithoutBucket(t *testing.T) {
	s := newTestServer(t)
	token := register(t, s, "uploader")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
