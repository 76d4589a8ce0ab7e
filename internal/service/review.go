package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
	"github.com/pageza/recipe-share/backend/internal/validation"
)

const errDuplicateReview = "You have already reviewed this recipe"

// ReviewService handles recipe reviews. Every change to the set of reviews
// of a recipe recomputes the recipe's rating stats in the same transaction.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new ReviewService instance
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// HelpfulResult reports the outcome of a helpful-vote toggle.
type HelpfulResult struct {
	Helpful      bool `json:"helpful"`
	HelpfulCount int  `json:"helpfulCount"`
}

// CreateReview stores authorID's review of recipeID.
func (s *ReviewService) CreateReview(ctx context.Context, recipeID, authorID uuid.UUID, req *types.CreateReviewRequest) (*models.Review, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:       uuid.New(),
		AuthorID: authorID,
		RecipeID: recipeID,
		Rating:   req.Rating,
		Title:    req.Title,
		Text:     req.Text,
		Images:   nonNil(req.Images),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := lockRecipe(tx, recipeID)
		if err != nil {
			return err
		}
		if !recipe.IsPublished {
			return types.NotFound("Recipe")
		}
		if recipe.AuthorID == authorID {
			return types.NewValidationError("You cannot review your own recipe")
		}

		var count int64
		if err := tx.Model(&models.Review{}).Where("recipe_id = ? AND author_id = ?", recipeID, authorID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing review: %w", err)
		}
		if count > 0 {
			return types.NewValidationError(errDuplicateReview)
		}

		if err := tx.Omit("Author").Create(review).Error; err != nil {
			return duplicateOr(err, errDuplicateReview, "failed to create review")
		}
		if _, err := recomputeRecipeRating(tx, recipeID); err != nil {
			return err
		}
		return notify(tx, recipe.AuthorID, authorID, models.NotificationReview, &recipeID,
			fmt.Sprintf("New %d-star review on %q", review.Rating, recipe.Title))
	})
	if err != nil {
		return nil, err
	}
	return s.getReview(ctx, review.ID)
}

// ListReviews returns one page of a recipe's reviews, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, recipeID uuid.UUID, page, limit int) ([]models.Review, types.Pagination, error) {
	page, limit = normalizePage(page, limit)
	db := s.db.WithContext(ctx)

	var exists int64
	if err := db.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&exists).Error; err != nil {
		return nil, types.Pagination{}, fmt.Errorf("failed to load recipe: %w", err)
	}
	if exists == 0 {
		return nil, types.Pagination{}, types.NotFound("Recipe")
	}

	var total int64
	if err := db.Model(&models.Review{}).Where("recipe_id = ?", recipeID).Count(&total).Error; err != nil {
		return nil, types.Pagination{}, fmt.Errorf("failed to count reviews: %w", err)
	}

	reviews := []models.Review{}
	err := db.Preload("Author", selectPublicUser).
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, types.Pagination{}, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, types.NewPagination(page, limit, total), nil
}

// UpdateReview applies req to a review. Only its author may update it.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, callerID uuid.UUID, req *types.UpdateReviewRequest) (*models.Review, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		review, err := s.authorReview(tx, reviewID, callerID)
		if err != nil {
			return err
		}
		if err := validation.Struct(req); err != nil {
			return err
		}
		if _, err := lockRecipe(tx, review.RecipeID); err != nil {
			return err
		}

		if req.Rating != nil {
			review.Rating = *req.Rating
		}
		if req.Title != nil {
			review.Title = *req.Title
		}
		if req.Text != nil {
			review.Text = *req.Text
		}
		if req.Images != nil {
			review.Images = req.Images
		}
		if err := tx.Omit("Author").Save(review).Error; err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}

		_, err = recomputeRecipeRating(tx, review.RecipeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.getReview(ctx, reviewID)
}

// DeleteReview removes a review and its helpful votes. Only its author may
// delete it.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, callerID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		review, err := s.authorReview(tx, reviewID, callerID)
		if err != nil {
			return err
		}
		if _, err := lockRecipe(tx, review.RecipeID); err != nil {
			return err
		}

		if err := tx.Where("review_id = ?", reviewID).Delete(&models.ReviewHelpfulVote{}).Error; err != nil {
			return fmt.Errorf("failed to delete helpful votes: %w", err)
		}
		if err := tx.Delete(&models.Review{}, "id = ?", reviewID).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}

		_, err = recomputeRecipeRating(tx, review.RecipeID)
		return err
	})
}

// ToggleHelpful adds userID's helpful vote to a review, or removes it if
// already present.
func (s *ReviewService) ToggleHelpful(ctx context.Context, reviewID, userID uuid.UUID) (*HelpfulResult, error) {
	result := &HelpfulResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the row lock serializes concurrent toggles on the same review
		var review models.Review
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&review, "id = ?", reviewID).Error; err != nil {
			return notFoundOr(err, "Review", "failed to load review")
		}
		if review.AuthorID == userID {
			return types.NewValidationError("You cannot vote on your own review")
		}

		res := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).Delete(&models.ReviewHelpfulVote{})
		if res.Error != nil {
			return fmt.Errorf("failed to remove helpful vote: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			vote := &models.ReviewHelpfulVote{ReviewID: reviewID, UserID: userID}
			if err := tx.Create(vote).Error; err != nil {
				return fmt.Errorf("failed to add helpful vote: %w", err)
			}
			result.Helpful = true
		}

		var count int64
		if err := tx.Model(&models.ReviewHelpfulVote{}).Where("review_id = ?", reviewID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count helpful votes: %w", err)
		}
		if err := tx.Model(&review).UpdateColumn("helpful_count", count).Error; err != nil {
			return fmt.Errorf("failed to store helpful count: %w", err)
		}
		result.HelpfulCount = int(count)

		if result.Helpful {
			return notify(tx, review.AuthorID, userID, models.NotificationHelpful, &review.RecipeID,
				"Someone found your review helpful")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ReviewService) authorReview(tx *gorm.DB, reviewID, callerID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
		return nil, notFoundOr(err, "Review", "failed to load review")
	}
	if review.AuthorID != callerID {
		return nil, types.ErrForbidden
	}
	return &review, nil
}

func (s *ReviewService) getReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).Preload("Author", selectPublicUser).First(&review, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "Review", "failed to load review")
	}
	return &review, nil
}
