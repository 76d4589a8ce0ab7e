package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
	"github.com/pageza/recipe-share/backend/internal/validation"
)

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const (
	defaultPageSize = 12
	maxPageSize     = 50
)

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe validates req and stores a new recipe owned by authorID.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		ID:           uuid.New(),
		AuthorID:     authorID,
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  toIngredients(req.Ingredients),
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Category:     req.Category,
		Cuisine:      strings.TrimSpace(req.Cuisine),
		Tags:         normalizeTags(req.Tags),
		Images:       nonNil(req.Images),
		IsPublished:  true,
	}
	if recipe.Servings == 0 {
		recipe.Servings = models.DefaultServings
	}
	if recipe.Difficulty == "" {
		recipe.Difficulty = models.DifficultyMedium
	}
	if req.IsPublished != nil {
		recipe.IsPublished = *req.IsPublished
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := s.recipeSlug(tx, recipe.Title, uuid.Nil)
		if err != nil {
			return err
		}
		recipe.Slug = slug
		if err := tx.Create(recipe).Error; err != nil {
			return duplicateOr(err, "A recipe with this slug already exists", "failed to create recipe")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipe.ID, authorID)
}

// GetRecipe retrieves a recipe by ID. Unpublished recipes are visible to
// their author only.
func (s *RecipeService) GetRecipe(ctx context.Context, id, viewerID uuid.UUID) (*models.Recipe, error) {
	return s.findRecipe(ctx, viewerID, "recipes.id = ?", id)
}

// GetRecipeBySlug retrieves a recipe by its slug.
func (s *RecipeService) GetRecipeBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*models.Recipe, error) {
	return s.findRecipe(ctx, viewerID, "recipes.slug = ?", strings.ToLower(slug))
}

func (s *RecipeService) findRecipe(ctx context.Context, viewerID uuid.UUID, query string, arg interface{}) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author", selectPublicUser).
		Where(query, arg).
		First(&recipe).Error
	if err != nil {
		return nil, notFoundOr(err, "Recipe", "failed to load recipe")
	}
	if !recipe.IsPublished && recipe.AuthorID != viewerID {
		return nil, types.NotFound("Recipe")
	}
	return &recipe, nil
}

// ListRecipes returns one page of recipes matching filter. Drafts appear
// only for their author.
func (s *RecipeService) ListRecipes(ctx context.Context, filter *types.RecipeFilter, viewerID uuid.UUID) ([]models.Recipe, types.Pagination, error) {
	if err := validation.Struct(filter); err != nil {
		return nil, types.Pagination{}, err
	}
	page, limit := normalizePage(filter.Page, filter.Limit)

	q := s.db.WithContext(ctx).Model(&models.Recipe{})
	if viewerID != uuid.Nil {
		q = q.Where("is_published = ? OR author_id = ?", true, viewerID)
	} else {
		q = q.Where("is_published = ?", true)
	}
	if filter.Query != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(filter.Query)) + "%"
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, like, like)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Cuisine != "" {
		q = q.Where("LOWER(cuisine) = ?", strings.ToLower(filter.Cuisine))
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Tag != "" {
		// tags are stored lowercased as a JSON array; match one encoded element
		encoded, err := json.Marshal(strings.ToLower(filter.Tag))
		if err != nil {
			return nil, types.Pagination{}, fmt.Errorf("failed to encode tag filter: %w", err)
		}
		q = q.Where(`CAST(tags AS TEXT) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(string(encoded))+"%")
	}
	if filter.Author != "" {
		q = q.Where("author_id = ?", filter.Author)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, types.Pagination{}, fmt.Errorf("failed to count recipes: %w", err)
	}

	var recipes []models.Recipe
	err := q.Preload("Author", selectPublicUser).
		Order(recipeOrder(filter.Sort)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, types.Pagination{}, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, types.NewPagination(page, limit, total), nil
}

// UpdateRecipe applies req to the recipe. Only the author may update it.
// The slug is regenerated when the title changes.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, callerID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "Recipe", "failed to load recipe")
		}
		if recipe.AuthorID != callerID {
			return types.ErrForbidden
		}

		if err := validation.Struct(req); err != nil {
			return err
		}
		if req.Ingredients != nil && len(req.Ingredients) == 0 {
			return types.NewValidationError("A recipe needs at least one ingredient")
		}
		if req.Instructions != nil && len(req.Instructions) == 0 {
			return types.NewValidationError("A recipe needs at least one instruction")
		}

		titleChanged := false
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return types.NewValidationError("title is required")
			}
			titleChanged = title != recipe.Title
			recipe.Title = title
		}
		applyRecipeUpdate(&recipe, req)

		if titleChanged {
			slug, err := s.recipeSlug(tx, recipe.Title, recipe.ID)
			if err != nil {
				return err
			}
			recipe.Slug = slug
		}

		// avg_rating and review_count are owned by the rating recompute
		if err := tx.Omit("AvgRating", "ReviewCount", "Author").Save(&recipe).Error; err != nil {
			return duplicateOr(err, "A recipe with this slug already exists", "failed to update recipe")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, id, callerID)
}

// DeleteRecipe removes a recipe with its reviews, helpful votes and
// collection links. Only the author may delete it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, callerID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Select("id", "author_id").First(&recipe, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "Recipe", "failed to load recipe")
		}
		if recipe.AuthorID != callerID {
			return types.ErrForbidden
		}

		reviewIDs := tx.Model(&models.Review{}).Select("id").Where("recipe_id = ?", id)
		if err := tx.Where("review_id IN (?)", reviewIDs).Delete(&models.ReviewHelpfulVote{}).Error; err != nil {
			return fmt.Errorf("failed to delete helpful votes: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews: %w", err)
		}
		if err := tx.Exec("DELETE FROM collection_recipes WHERE recipe_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to unlink collections: %w", err)
		}
		if err := tx.Model(&models.Notification{}).Where("recipe_id = ?", id).Update("recipe_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach notifications: %w", err)
		}
		if err := tx.Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// recipeSlug derives a globally unique slug from title, ignoring the row
// identified by self.
func (s *RecipeService) recipeSlug(tx *gorm.DB, title string, self uuid.UUID) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "recipe"
	}
	return uniqueSlug(base, func(candidate string) (bool, error) {
		var count int64
		err := tx.Model(&models.Recipe{}).Where("slug = ? AND id <> ?", candidate, self).Count(&count).Error
		if err != nil {
			return false, fmt.Errorf("failed to check slug: %w", err)
		}
		return count > 0, nil
	})
}

func applyRecipeUpdate(recipe *models.Recipe, req *types.UpdateRecipeRequest) {
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Ingredients != nil {
		recipe.Ingredients = toIngredients(req.Ingredients)
	}
	if req.Instructions != nil {
		recipe.Instructions = req.Instructions
	}
	if req.PrepTime != nil {
		recipe.PrepTime = *req.PrepTime
	}
	if req.CookTime != nil {
		recipe.CookTime = *req.CookTime
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.Difficulty != nil {
		recipe.Difficulty = *req.Difficulty
	}
	if req.Category != nil {
		recipe.Category = *req.Category
	}
	if req.Cuisine != nil {
		recipe.Cuisine = strings.TrimSpace(*req.Cuisine)
	}
	if req.Tags != nil {
		recipe.Tags = normalizeTags(req.Tags)
	}
	if req.Images != nil {
		recipe.Images = req.Images
	}
	if req.IsPublished != nil {
		recipe.IsPublished = *req.IsPublished
	}
}

func recipeOrder(sort string) string {
	switch sort {
	case "rating":
		return "avg_rating DESC, review_count DESC, created_at DESC"
	case "popular":
		return "review_count DESC, avg_rating DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

func toIngredients(in []types.IngredientInput) []models.Ingredient {
	out := make([]models.Ingredient, len(in))
	for i, ing := range in {
		out[i] = models.Ingredient{
			Item:     strings.TrimSpace(ing.Item),
			Quantity: ing.Quantity,
			Unit:     strings.TrimSpace(ing.Unit),
			Notes:    ing.Notes,
			Group:    ing.Group,
		}
	}
	return out
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// selectPublicUser restricts an Author/Actor preload to public columns.
func selectPublicUser(db *gorm.DB) *gorm.DB {
	return db.Select(models.PublicUserColumns)
}
