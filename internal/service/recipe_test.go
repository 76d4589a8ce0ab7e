package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/testhelpers"
	"github.com/pageza/recipe-share/backend/internal/types"
)

func newRecipeRequest(title string) *types.CreateRecipeRequest {
	return &types.CreateRecipeRequest{
		Title:        title,
		Ingredients:  []types.IngredientInput{{Item: "flour", Quantity: 200, Unit: "g"}},
		Instructions: []string{"Whisk.", "Fry."},
		Tags:         []string{"Breakfast", "breakfast", "Sweet"},
		Category:     "breakfast",
	}
}

func TestCreateRecipe_DefaultsAndSlugs(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	chef := testhelpers.CreateTestUser(t, db, "chef")
	svc := service.NewRecipeService(db)

	first, err := svc.CreateRecipe(ctx, chef.ID, newRecipeRequest("Pancakes"))
	require.NoError(t, err)
	second, err := svc.CreateRecipe(ctx, chef.ID, newRecipeRequest("Pancakes"))
	require.NoError(t, err)
	third, err := svc.CreateRecipe(ctx, chef.ID, newRecipeRequest("Pancakes!"))
	require.NoError(t, err)

	assert.Equal(t, "pancakes", first.Slug)
	assert.Equal(t, "pancakes-1", second.Slug)
	assert.Equal(t, "pancakes-2", third.Slug)

	assert.Equal(t, models.DefaultServings, first.Servings)
	assert.Equal(t, models.DifficultyMedium, first.Difficulty)
	assert.True(t, first.IsPublished)
	assert.Equal(t, []string{"breakfast", "sweet"}, []string(first.Tags))
	assert.Zero(t, first.AvgRating)
	require.NotNil(t, first.Author)
	assert.Equal(t, "chef", first.Author.Username)
}

func TestCreateRecipe_Validation(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	chef := testhelpers.CreateTestUser(t, db, "chef")
	svc := service.NewRecipeService(db)

	req := newRecipeRequest("Pancakes")
	req.Ingredients = nil
	req.Difficulty = "extreme"

	_, err := svc.CreateRecipe(context.Background(), chef.ID, req)
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ingredients")
	assert.Contains(t, verr.Fields, "difficulty")
}

func TestGetRecipe_DraftsHiddenFromOthers(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	chef := testhelpers.CreateTestUser(t, db, "chef")
	svc := service.NewRecipeService(db)

	req := newRecipeRequest("Secret Sauce")
	req.IsPublished = boolPtr(false)
	draft, err := svc.CreateRecipe(ctx, chef.ID, req)
	require.NoError(t, err)

	_, err = svc.GetRecipe(ctx, draft.ID, uuid.Nil)
	assert.EqualError(t, err, "Recipe not found")

	got, err := svc.GetRecipeBySlug(ctx, "secret-sauce", chef.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	list, pagination, err := svc.ListRecipes(ctx, &types.RecipeFilter{}, uuid.Nil)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, int64(0), pagination.Total)
}

func TestListRecipes_Filters(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	chef := testhelpers.CreateTestUser(t, db, "chef")
	baker := testhelpers.CreateTestUser(t, db, "baker")
	svc := service.NewRecipeService(db)

	_, err := svc.CreateRecipe(ctx, chef.ID, newRecipeRequest("Pancakes"))
	require.NoError(t, err)
	soup := newRecipeRequest("Tomato Soup")
	soup.Category = "lunch"
	soup.Tags = []string{"vegan"}
	soup.Difficulty = "easy"
	_, err = svc.CreateRecipe(ctx, baker.ID, soup)
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter types.RecipeFilter
		want   []string
	}{
		{"all", types.RecipeFilter{Sort: "newest"}, []string{"Tomato Soup", "Pancakes"}},
		{"query", types.RecipeFilter{Query: "soup"}, []string{"Tomato Soup"}},
		{"category", types.RecipeFilter{Category: "breakfast"}, []string{"Pancakes"}},
		{"difficulty", types.RecipeFilter{Difficulty: "easy"}, []string{"Tomato Soup"}},
		{"tag", types.RecipeFilter{Tag: "Vegan"}, []string{"Tomato Soup"}},
		{"author", types.RecipeFilter{Author: chef.ID.String()}, []string{"Pancakes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.filter
			recipes, _, err := svc.ListRecipes(ctx, &filter, uuid.Nil)
			require.NoError(t, err)
			var titles []string
			for _, r := range recipes {
				titles = append(titles, r.Title)
			}
			assert.ElementsMatch(t, tt.want, titles)
		})
	}

	_, _, err = svc.ListRecipes(ctx, &types.RecipeFilter{Limit: 500}, uuid.Nil)
	assert.True(t, types.IsValidation(err))
}

func TestListRecipes_FilterInputMatchesLiterally(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	chef := testhelpers.CreateTestUser(t, db, "chef")
	svc := service.NewRecipeService(db)

	rye := newRecipeRequest("100% Rye")
	rye.Tags = []string{"bread", "sour"}
	_, err := svc.CreateRecipe(ctx, chef.ID, rye)
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, chef.ID, newRecipeRequest("Plain Bread"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter types.RecipeFilter
		want   []string
	}{
		{"percent", types.RecipeFilter{Query: "%"}, []string{"100% Rye"}},
		{"underscore", types.RecipeFilter{Query: "_"}, nil},
		{"backslash", types.RecipeFilter{Query: `\`}, nil},
		{"tag spanning elements", types.RecipeFilter{Tag: `bread","sour`}, nil},
		{"tag wildcard", types.RecipeFilter{Tag: "%"}, nil},
		{"exact tag", types.RecipeFilter{Tag: "sour"}, []string{"100% Rye"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.filter
			recipes, _, err := svc.ListRecipes(ctx, &filter, uuid.Nil)
			require.NoError(t, err)
			var titles []string
			for _, r := range recipes {
				titles = append(titles, r.Title)
			}
			assert.ElementsMatch(t, tt.want, titles)
		})
	}
}

func TestUpdateRecipe(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	chef := testhelpers.CreateTestUser(t, db, "chef")
	other := testhelpers.CreateTestUser(t, db, "other")
	svc := service.NewRecipeService(db)

	recipe, err := svc.CreateRecipe(ctx, chef.ID, newRecipeRequest("Pancakes"))
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).
		Updates(map[string]interface{}{"avg_rating": 4.5, "review_count": 2}).Error)

	_, err = svc.UpdateRecipe(ctx, recipe.ID, other.ID, &types.UpdateRecipeRequest{Title: strPtr("Mine now")})
	assert.ErrorIs(t, err, types.ErrForbidden)

	// ownership is settled before the input is judged
	_, err = svc.UpdateRecipe(ctx, recipe.ID, other.ID, &types.UpdateRecipeRequest{Difficulty: strPtr("extreme")})
	assert.ErrorIs(t, err, types.ErrForbidden)

	updated, err := svc.UpdateRecipe(ctx, recipe.ID, chef.ID, &types.UpdateRecipeRequest{
		Title:    strPtr("Fluffy Pancakes"),
		Servings: intPtr(6),
	})
	require.NoError(t, err)
	assert.Equal(t, "fluffy-pancakes", updated.Slug)
	assert.Equal(t, 6, updated.Servings)
	assert.Equal(t, 4.5, updated.AvgRating)
	assert.Equal(t, 2, updated.ReviewCount)
	assert.Len(t, updated.Ingredients, 1)

	_, err = svc.UpdateRecipe(ctx, recipe.ID, chef.ID, &types.UpdateRecipeRequest{Ingredients: []types.IngredientInput{}})
	assert.True(t, types.IsValidation(err))
}

func TestDeleteRecipe_RemovesDependents(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	chef := testhelpers.CreateTestUser(t, db, "chef")
	critic := testhelpers.CreateTestUser(t, db, "critic")
	recipes := service.NewRecipeService(db)
	reviews := service.NewReviewService(db)
	collections := service.NewCollectionService(db)

	recipe, err := recipes.CreateRecipe(ctx, chef.ID, newRecipeRequest("Pancakes"))
	require.NoError(t, err)
	_, err = reviews.CreateReview(ctx, recipe.ID, critic.ID, &types.CreateReviewRequest{Rating: 5, Text: "great"})
	require.NoError(t, err)
	coll, err := collections.CreateCollection(ctx, critic.ID, &types.CreateCollectionRequest{Name: "Faves"})
	require.NoError(t, err)
	_, err = collections.AddRecipe(ctx, coll.ID, critic.ID, recipe.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, recipes.DeleteRecipe(ctx, recipe.ID, critic.ID), types.ErrForbidden)
	require.NoError(t, recipes.DeleteRecipe(ctx, recipe.ID, chef.ID))

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Table("collection_recipes").Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = recipes.GetRecipe(ctx, recipe.ID, chef.ID)
	assert.True(t, types.IsNotFound(err))
}
