package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/cache"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

func newUpstream(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newProxy(baseURL string) *service.SpoonacularService {
	return service.NewSpoonacularService(service.SpoonacularOptions{
		APIKey:            "test-key",
		BaseURL:           baseURL,
		RequestsPerSecond: 100,
		Burst:             100,
	}, cache.NewMemory())
}

func TestSpoonacular_IdenticalRequestsHitUpstreamOnce(t *testing.T) {
	srv, calls := newUpstream(t, http.StatusOK, `{"results":[{"id":1,"title":"Pasta"}],"totalResults":1}`)
	proxy := newProxy(srv.URL)
	ctx := context.Background()

	params := &types.ExternalSearchParams{Query: "pasta", Number: 5}
	first, err := proxy.SearchRecipes(ctx, params)
	require.NoError(t, err)
	second, err := proxy.SearchRecipes(ctx, &types.ExternalSearchParams{Query: "pasta", Number: 5})
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	_, err = proxy.SearchRecipes(ctx, &types.ExternalSearchParams{Query: "pizza"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestSpoonacular_Endpoints(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	proxy := newProxy(srv.URL)
	ctx := context.Background()

	_, err := proxy.GetRecipeInformation(ctx, 42)
	require.NoError(t, err)
	_, err = proxy.GetRandomRecipes(ctx, &types.ExternalRandomParams{Tags: "vegan"})
	require.NoError(t, err)
	_, err = proxy.FindByIngredients(ctx, &types.ExternalIngredientParams{Ingredients: "egg,flour"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/recipes/42/information", "/recipes/random", "/recipes/findByIngredients"}, paths)
}

func TestSpoonacular_Errors(t *testing.T) {
	ctx := context.Background()

	disabled := service.NewSpoonacularService(service.SpoonacularOptions{}, nil)
	_, err := disabled.GetRandomRecipes(ctx, &types.ExternalRandomParams{})
	assert.ErrorIs(t, err, types.ErrServiceUnavailable)

	srv, _ := newUpstream(t, http.StatusPaymentRequired, `{"message":"quota"}`)
	_, err = newProxy(srv.URL).GetRandomRecipes(ctx, &types.ExternalRandomParams{})
	assert.ErrorIs(t, err, types.ErrBadGateway)

	missing, _ := newUpstream(t, http.StatusNotFound, `{}`)
	_, err = newProxy(missing.URL).GetRecipeInformation(ctx, 7)
	assert.True(t, types.IsNotFound(err))
}

func TestSpoonacular_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv, calls := newUpstream(t, http.StatusInternalServerError, `{}`)
	proxy := newProxy(srv.URL)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := proxy.SearchRecipes(ctx, &types.ExternalSearchParams{Offset: i})
		assert.ErrorIs(t, err, types.ErrBadGateway)
	}

	_, err := proxy.SearchRecipes(ctx, &types.ExternalSearchParams{Offset: 99})
	assert.ErrorIs(t, err, types.ErrServiceUnavailable)
	assert.Equal(t, int32(5), atomic.LoadInt32(calls))
}
