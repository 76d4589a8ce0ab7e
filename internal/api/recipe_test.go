package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-share/backend/internal/mocks"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

func TestListRecipes_PassesFilterAndViewer(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	recipes.On("ListRecipes", mock.Anything, mock.MatchedBy(func(f *types.RecipeFilter) bool {
		return f.Category == "dessert"
	}), uuid.Nil).Return([]models.Recipe{{ID: uuid.New(), Title: "Pie"}}, types.Pagination{Page: 1, Limit: 12, Total: 1, Pages: 1}, nil)

	r := newTestRouter(NewRecipeHandler(recipes, new(mocks.MockReviewService), new(mocks.MockAuthService)))
	rec := perform(r, http.MethodGet, "/api/recipes?category=dessert", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope(t, rec).Data.(map[string]interface{})
	assert.Len(t, data["recipes"], 1)
	recipes.AssertExpectations(t)
}

func TestGetRecipe_InvalidIDIsNotFound(t *testing.T) {
	r := newTestRouter(NewRecipeHandler(new(mocks.MockRecipeService), new(mocks.MockReviewService), new(mocks.MockAuthService)))
	rec := perform(r, http.MethodGet, "/api/recipes/not-a-uuid", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Recipe not found", envelope(t, rec).Error)
}

func TestGetRecipe_OptionalAuthPassesViewer(t *testing.T) {
	auth, userID := authed()
	recipes := new(mocks.MockRecipeService)
	id := uuid.New()
	recipes.On("GetRecipe", mock.Anything, id, userID).Return(&models.Recipe{ID: id, Title: "Draft"}, nil)

	r := newTestRouter(NewRecipeHandler(recipes, new(mocks.MockReviewService), auth))
	rec := perform(r, http.MethodGet, "/api/recipes/"+id.String(), nil, testToken)

	assert.Equal(t, http.StatusOK, rec.Code)
	recipes.AssertExpectations(t)
}

func TestCreateRecipe(t *testing.T) {
	auth, userID := authed()
	recipes := new(mocks.MockRecipeService)
	recipes.On("CreateRecipe", mock.Anything, userID, mock.AnythingOfType("*types.CreateRecipeRequest")).
		Return(&models.Recipe{ID: uuid.New(), Title: "Pancakes", Slug: "pancakes"}, nil)

	r := newTestRouter(NewRecipeHandler(recipes, new(mocks.MockReviewService), auth))

	rec := perform(r, http.MethodPost, "/api/recipes", map[string]interface{}{"title": "Pancakes"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = perform(r, http.MethodPost, "/api/recipes", map[string]interface{}{"title": "Pancakes"}, testToken)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Recipe created", envelope(t, rec).Message)
}

func TestCreateRecipe_ValidationFields(t *testing.T) {
	auth, userID := authed()
	recipes := new(mocks.MockRecipeService)
	recipes.On("CreateRecipe", mock.Anything, userID, mock.Anything).
		Return(nil, &types.ValidationError{Message: "Validation failed", Fields: map[string]string{"title": "title is required"}})

	r := newTestRouter(NewRecipeHandler(recipes, new(mocks.MockReviewService), auth))
	rec := perform(r, http.MethodPost, "/api/recipes", map[string]interface{}{}, testToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope(t, rec).Success)
}

func TestUpdateRecipe_Forbidden(t *testing.T) {
	auth, userID := authed()
	recipes := new(mocks.MockRecipeService)
	id := uuid.New()
	recipes.On("UpdateRecipe", mock.Anything, id, userID, mock.Anything).Return(nil, types.ErrForbidden)

	r := newTestRouter(NewRecipeHandler(recipes, new(mocks.MockReviewService), auth))
	rec := perform(r, http.MethodPut, "/api/recipes/"+id.String(), map[string]interface{}{"title": "x"}, testToken)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized", envelope(t, rec).Error)
}

func TestDeleteRecipe_NotFound(t *testing.T) {
	auth, userID := authed()
	recipes := new(mocks.MockRecipeService)
	id := uuid.New()
	recipes.On("DeleteRecipe", mock.Anything, id, userID).Return(types.NotFound("Recipe"))

	r := newTestRouter(NewRecipeHandler(recipes, new(mocks.MockReviewService), auth))
	rec := perform(r, http.MethodDelete, "/api/recipes/"+id.String(), nil, testToken)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReview_Duplicate(t *testing.T) {
	auth, userID := authed()
	reviews := new(mocks.MockReviewService)
	recipeID := uuid.New()
	reviews.On("CreateReview", mock.Anything, recipeID, userID, mock.Anything).
		Return(nil, types.NewValidationError("You have already reviewed this recipe"))

	r := newTestRouter(NewRecipeHandler(new(mocks.MockRecipeService), reviews, auth))
	rec := perform(r, http.MethodPost, "/api/recipes/"+recipeID.String()+"/reviews",
		map[string]interface{}{"rating": 5, "text": "Great"}, testToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You have already reviewed this recipe", envelope(t, rec).Error)
}

func TestListReviews_Pagination(t *testing.T) {
	reviews := new(mocks.MockReviewService)
	recipeID := uuid.New()
	reviews.On("ListReviews", mock.Anything, recipeID, 2, 5).
		Return([]models.Review{}, types.Pagination{Page: 2, Limit: 5}, nil)

	r := newTestRouter(NewRecipeHandler(new(mocks.MockRecipeService), reviews, new(mocks.MockAuthService)))
	rec := perform(r, http.MethodGet, "/api/recipes/"+recipeID.String()+"/reviews?page=2&limit=5", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	reviews.AssertExpectations(t)
}

func TestToggleHelpful(t *testing.T) {
	auth, userID := authed()
	reviews := new(mocks.MockReviewService)
	reviewID := uuid.New()
	reviews.On("ToggleHelpful", mock.Anything, reviewID, userID).
		Return(&service.HelpfulResult{Helpful: true, HelpfulCount: 1}, nil)

	r := newTestRouter(NewReviewHandler(reviews, auth))
	rec := perform(r, http.MethodPost, "/api/reviews/"+reviewID.String()+"/helpful", nil, testToken)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope(t, rec).Data.(map[string]interface{})
	assert.Equal(t, true, data["helpful"])
	assert.Equal(t, float64(1), data["helpfulCount"])
}
