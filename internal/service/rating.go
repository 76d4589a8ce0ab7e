package service

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-share/backend/internal/metrics"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// RatingStats is the denormalized rating summary stored on a recipe.
type RatingStats struct {
	AvgRating   float64 `json:"avgRating"`
	ReviewCount int     `json:"reviewCount"`
}

// ComputeRatingStats returns the mean of ratings rounded half-up to one
// decimal, and their count. An empty input yields the zero value.
func ComputeRatingStats(ratings []int) RatingStats {
	if len(ratings) == 0 {
		return RatingStats{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := math.Round(float64(sum)*10/float64(len(ratings))) / 10
	return RatingStats{AvgRating: avg, ReviewCount: len(ratings)}
}

// lockRecipe loads the recipe row and holds a row lock on it for the rest
// of tx. SQLite ignores the lock clause; its single writer serializes anyway.
func lockRecipe(tx *gorm.DB, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "author_id", "title", "is_published").
		First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		return nil, notFoundOr(err, "Recipe", "failed to lock recipe")
	}
	return &recipe, nil
}

// recomputeRecipeRating rescans every review of the recipe and overwrites
// its stored stats. Callers run it inside the transaction that changed the
// review set, after lockRecipe.
func recomputeRecipeRating(tx *gorm.DB, recipeID uuid.UUID) (RatingStats, error) {
	var ratings []int
	if err := tx.Model(&models.Review{}).Where("recipe_id = ?", recipeID).Pluck("rating", &ratings).Error; err != nil {
		return RatingStats{}, fmt.Errorf("failed to load ratings: %w", err)
	}

	stats := ComputeRatingStats(ratings)
	res := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(map[string]interface{}{
		"avg_rating":   stats.AvgRating,
		"review_count": stats.ReviewCount,
	})
	if res.Error != nil {
		return RatingStats{}, fmt.Errorf("failed to store rating stats: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return RatingStats{}, types.NotFound("Recipe")
	}

	metrics.RatingRecomputes.Inc()
	return stats, nil
}
