package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/types"
)

func TestStruct_Valid(t *testing.T) {
	req := types.RegisterRequest{
		Name:     "Ada",
		Username: "ada_l",
		Email:    "ada@example.com",
		Password: "secret1",
	}
	assert.NoError(t, Struct(&req))
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	req := types.RegisterRequest{Name: "Ada", Username: "no spaces!", Email: "nope", Password: "123"}

	err := Struct(&req)
	require.Error(t, err)

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "email")
	assert.Equal(t, "password must be at least 6 characters", verr.Fields["password"])
}

func TestStruct_NestedIngredients(t *testing.T) {
	req := types.CreateRecipeRequest{
		Title:        "Soup",
		Ingredients:  []types.IngredientInput{{Item: "", Quantity: 1}},
		Instructions: []string{"boil"},
	}

	err := Struct(&req)
	require.Error(t, err)

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "ingredients[0].item is required", verr.Fields["ingredients[0].item"])
}

func TestStruct_Enum(t *testing.T) {
	req := types.CreateRecipeRequest{
		Title:        "Soup",
		Ingredients:  []types.IngredientInput{{Item: "water"}},
		Instructions: []string{"boil"},
		Difficulty:   "impossible",
	}

	err := Struct(&req)
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
	assert.Contains(t, err.Error(), "difficulty must be one of: easy medium hard")
}

func TestStruct_OptionalPointers(t *testing.T) {
	bad := -1
	req := types.RemoveSnackRequest{Date: "2024-01-01", Index: &bad}
	assert.Error(t, Struct(&req))

	missing := types.RemoveSnackRequest{Date: "2024-01-01"}
	assert.Error(t, Struct(&missing))

	zero := 0
	ok := types.RemoveSnackRequest{Date: "2024-01-01", Index: &zero}
	assert.NoError(t, Struct(&ok))
}
