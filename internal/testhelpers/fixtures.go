package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/models"
)

// CreateTestUser inserts a user with the given username.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Name:         "Test " + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashed_password",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestRecipe inserts a published recipe with the given native
// serving count and ingredients.
func CreateTestRecipe(t *testing.T, db *gorm.DB, authorID uuid.UUID, title string, servings int, ingredients ...models.Ingredient) *models.Recipe {
	t.Helper()

	if len(ingredients) == 0 {
		ingredients = []models.Ingredient{{Item: "water", Quantity: 1, Unit: "cup"}}
	}
	recipe := &models.Recipe{
		ID:           uuid.New(),
		AuthorID:     authorID,
		Title:        title,
		Slug:         title + "-" + uuid.NewString()[:8],
		Ingredients:  ingredients,
		Instructions: []string{"Mix everything."},
		Servings:     servings,
		Difficulty:   models.DifficultyEasy,
		Tags:         []string{},
		Images:       []string{},
		IsPublished:  true,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}
