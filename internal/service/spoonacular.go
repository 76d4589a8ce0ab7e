package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/pageza/recipe-share/backend/internal/cache"
	"github.com/pageza/recipe-share/backend/internal/metrics"
	"github.com/pageza/recipe-share/backend/internal/types"
)

const (
	spoonacularBreaker     = "spoonacular"
	defaultExternalResults = 10
	maxUpstreamBody        = 4 << 20
)

// ErrExternalDisabled is returned when no Spoonacular API key is configured.
var ErrExternalDisabled = fmt.Errorf("%w: external recipe API is not configured", types.ErrServiceUnavailable)

// SpoonacularOptions configures a SpoonacularService.
type SpoonacularOptions struct {
	APIKey   string
	BaseURL  string
	CacheTTL time.Duration
	// RequestsPerSecond and Burst size the outbound token bucket.
	RequestsPerSecond float64
	Burst             int
	BreakerTimeout    time.Duration
	HTTPClient        *http.Client
}

// SpoonacularService proxies the Spoonacular recipe API. Responses are
// cached by endpoint and parameters; upstream calls are rate limited and
// guarded by a circuit breaker.
type SpoonacularService struct {
	apiKey  string
	baseURL string
	ttl     time.Duration
	client  *http.Client
	cache   cache.Store
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewSpoonacularService creates a new SpoonacularService instance
func NewSpoonacularService(opts SpoonacularOptions, store cache.Store) *SpoonacularService {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.spoonacular.com"
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Minute
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 1
	}
	if opts.Burst <= 0 {
		opts.Burst = 5
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if store == nil {
		store = cache.NewMemory()
	}

	return &SpoonacularService{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		ttl:     opts.CacheTTL,
		client:  opts.HTTPClient,
		cache:   store,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		breaker: newBreaker[[]byte](spoonacularBreaker, opts.BreakerTimeout),
	}
}

// SearchRecipes calls the complex search endpoint.
func (s *SpoonacularService) SearchRecipes(ctx context.Context, params *types.ExternalSearchParams) (json.RawMessage, error) {
	q := url.Values{}
	setString(q, "query", params.Query)
	setString(q, "cuisine", params.Cuisine)
	setString(q, "diet", params.Diet)
	setString(q, "intolerances", params.Intolerances)
	setString(q, "type", params.Type)
	setInt(q, "maxReadyTime", params.MaxReadyTime)
	q.Set("number", strconv.Itoa(orDefault(params.Number, defaultExternalResults)))
	setInt(q, "offset", params.Offset)
	q.Set("addRecipeInformation", "true")

	return s.get(ctx, "search", "/recipes/complexSearch", q)
}

// GetRecipeInformation returns full details of one Spoonacular recipe.
func (s *SpoonacularService) GetRecipeInformation(ctx context.Context, id int) (json.RawMessage, error) {
	if id <= 0 {
		return nil, types.NotFound("Recipe")
	}
	q := url.Values{}
	q.Set("includeNutrition", "false")
	return s.get(ctx, "information", fmt.Sprintf("/recipes/%d/information", id), q)
}

// GetRandomRecipes returns random recipes, optionally filtered by tags.
func (s *SpoonacularService) GetRandomRecipes(ctx context.Context, params *types.ExternalRandomParams) (json.RawMessage, error) {
	q := url.Values{}
	setString(q, "tags", params.Tags)
	q.Set("number", strconv.Itoa(orDefault(params.Number, defaultExternalResults)))
	return s.get(ctx, "random", "/recipes/random", q)
}

// FindByIngredients finds recipes using a comma-separated ingredient list.
func (s *SpoonacularService) FindByIngredients(ctx context.Context, params *types.ExternalIngredientParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("ingredients", params.Ingredients)
	q.Set("number", strconv.Itoa(orDefault(params.Number, defaultExternalResults)))
	q.Set("ranking", strconv.Itoa(orDefault(params.Ranking, 1)))
	q.Set("ignorePantry", "true")
	return s.get(ctx, "by-ingredients", "/recipes/findByIngredients", q)
}

// get serves a GET from cache or upstream. The API key is never part of the
// cache key.
func (s *SpoonacularService) get(ctx context.Context, endpoint, path string, q url.Values) (json.RawMessage, error) {
	if s.apiKey == "" {
		return nil, ErrExternalDisabled
	}

	prefix := "spoonacular:" + endpoint
	key := cache.GenerateKey(prefix, map[string]interface{}{"path": path, "query": q})

	if body, ok, err := s.cache.Get(ctx, key); err != nil {
		slog.Warn("external cache read failed", "endpoint", endpoint, "error", err)
	} else if ok {
		metrics.RecordCacheLookup(prefix, true)
		return json.RawMessage(body), nil
	}
	metrics.RecordCacheLookup(prefix, false)

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := s.breaker.Execute(func() ([]byte, error) {
		return s.fetch(ctx, path, q)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.UpstreamRequests.WithLabelValues(endpoint, "rejected").Inc()
			return nil, fmt.Errorf("%w: external recipe API is temporarily unavailable", types.ErrServiceUnavailable)
		}
		metrics.UpstreamRequests.WithLabelValues(endpoint, "failure").Inc()
		return nil, err
	}
	metrics.UpstreamRequests.WithLabelValues(endpoint, "success").Inc()

	if err := s.cache.Set(ctx, key, body, s.ttl); err != nil {
		slog.Warn("external cache write failed", "endpoint", endpoint, "error", err)
	}
	return json.RawMessage(body), nil
}

func (s *SpoonacularService) fetch(ctx context.Context, path string, q url.Values) ([]byte, error) {
	withKey := url.Values{}
	for k, v := range q {
		withKey[k] = v
	}
	withKey.Set("apiKey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+withKey.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrBadGateway, redactKey(err.Error(), s.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", types.ErrBadGateway, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, types.NotFound("External recipe")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("external recipe API error", "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", types.ErrBadGateway, resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: invalid JSON response", types.ErrBadGateway)
	}
	return body, nil
}

func redactKey(msg, key string) string {
	if key == "" {
		return msg
	}
	return strings.ReplaceAll(msg, key, "***")
}

func setString(q url.Values, k, v string) {
	if v = strings.TrimSpace(v); v != "" {
		q.Set(k, v)
	}
}

func setInt(q url.Values, k string, v int) {
	if v > 0 {
		q.Set(k, strconv.Itoa(v))
	}
}

func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
