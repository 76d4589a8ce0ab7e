package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/testhelpers"
	"github.com/pageza/recipe-share/backend/internal/types"
)

func intPtr(v int) *int          { return &v }
func strPtr(v string) *string    { return &v }
func boolPtr(v bool) *bool       { return &v }
func idPtr(id uuid.UUID) *string { s := id.String(); return &s }

type mealPlanFixture struct {
	svc    *service.MealPlanService
	owner  *models.User
	other  *models.User
	recipe *models.Recipe
	plan   *models.MealPlan
}

func setupMealPlan(t *testing.T) *mealPlanFixture {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	owner := testhelpers.CreateTestUser(t, db, "planner")
	other := testhelpers.CreateTestUser(t, db, "stranger")
	recipe := testhelpers.CreateTestRecipe(t, db, other.ID, "Pancakes", 2,
		models.Ingredient{Item: "flour", Quantity: 100, Unit: "g"})

	svc := service.NewMealPlanService(db)
	plan, err := svc.CreateMealPlan(context.Background(), owner.ID, &types.CreateMealPlanRequest{
		Name:      "Week 1",
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
	})
	require.NoError(t, err)

	return &mealPlanFixture{svc: svc, owner: owner, other: other, recipe: recipe, plan: plan}
}

func TestCreateMealPlan_OneDayPerDate(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	owner := testhelpers.CreateTestUser(t, db, "planner")
	svc := service.NewMealPlanService(db)

	plan, err := svc.CreateMealPlan(context.Background(), owner.ID, &types.CreateMealPlanRequest{
		Name:      "Leap week",
		StartDate: "2024-02-27",
		EndDate:   "2024-03-02T18:30:00Z",
	})
	require.NoError(t, err)

	require.Len(t, plan.Days, 5)
	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	for i, day := range plan.Days {
		assert.Equal(t, want[i], day.Key())
		assert.Nil(t, day.Breakfast)
		assert.Nil(t, day.Lunch)
		assert.Nil(t, day.Dinner)
		assert.Empty(t, day.Snacks)
	}
	assert.True(t, plan.IsActive)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), plan.EndDate)

	stored, err := svc.GetMealPlan(context.Background(), plan.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Days, 5)
}

func TestCreateMealPlan_SingleDay(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	owner := testhelpers.CreateTestUser(t, db, "planner")

	plan, err := service.NewMealPlanService(db).CreateMealPlan(context.Background(), owner.ID, &types.CreateMealPlanRequest{
		Name: "Today", StartDate: "2024-05-05", EndDate: "2024-05-05",
	})
	require.NoError(t, err)
	assert.Len(t, plan.Days, 1)
}

func TestCreateMealPlan_Invalid(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	owner := testhelpers.CreateTestUser(t, db, "planner")
	svc := service.NewMealPlanService(db)

	tests := []struct {
		name string
		req  types.CreateMealPlanRequest
	}{
		{"end before start", types.CreateMealPlanRequest{Name: "x", StartDate: "2024-03-05", EndDate: "2024-03-01"}},
		{"missing name", types.CreateMealPlanRequest{StartDate: "2024-03-01", EndDate: "2024-03-02"}},
		{"bad date", types.CreateMealPlanRequest{Name: "x", StartDate: "March 1st", EndDate: "2024-03-02"}},
		{"too long", types.CreateMealPlanRequest{Name: "x", StartDate: "2024-01-01", EndDate: "2025-06-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.CreateMealPlan(context.Background(), owner.ID, &req)
			require.Error(t, err)
			assert.True(t, types.IsValidation(err), "got %v", err)
		})
	}
}

func TestSetSlot_RoundTripAndClear(t *testing.T) {
	f := setupMealPlan(t)
	ctx := context.Background()

	plan, err := f.svc.SetSlot(ctx, f.plan.ID, f.owner.ID, &types.SetSlotRequest{
		Date: "2024-03-02", MealType: "lunch", RecipeID: idPtr(f.recipe.ID), Servings: intPtr(3),
	})
	require.NoError(t, err)

	lunch := plan.Days[1].Lunch
	require.NotNil(t, lunch)
	assert.Equal(t, f.recipe.ID, lunch.RecipeID)
	assert.Equal(t, 3, lunch.Servings)
	require.NotNil(t, lunch.Recipe)
	assert.Equal(t, "Pancakes", lunch.Recipe.Title)

	reread, err := f.svc.GetMealPlan(ctx, f.plan.ID, f.owner.ID)
	require.NoError(t, err)
	require.NotNil(t, reread.Days[1].Lunch)
	assert.Equal(t, 3, reread.Days[1].Lunch.Servings)

	plan, err = f.svc.SetSlot(ctx, f.plan.ID, f.owner.ID, &types.SetSlotRequest{Date: "2024-03-02", MealType: "lunch"})
	require.NoError(t, err)
	assert.Nil(t, plan.Days[1].Lunch)
}

func TestSetSlot_DefaultServings(t *testing.T) {
	f := setupMealPlan(t)
	ctx := context.Background()

	_, err := f.svc.SetSlot(ctx, f.plan.ID, f.owner.ID, &types.SetSlotRequest{
		Date: "2024-03-01", MealType: "dinner", RecipeID: idPtr(f.recipe.ID),
	})
	require.NoError(t, err)
	plan, err := f.svc.SetSlot(ctx, f.plan.ID, f.owner.ID, &types.SetSlotRequest{
		Date: "2024-03-01", MealType: "snacks", RecipeID: idPtr(f.recipe.ID),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, plan.Days[0].Dinner.Servings)
	require.Len(t, plan.Days[0].Snacks, 1)
	assert.Equal(t, 1, plan.Days[0].Snacks[0].Servings)
}

func TestSetSlot_Errors(t *testing.T) {
	f := setupMealPlan(t)
	ctx := context.Background()

	_, err := f.svc.SetSlot(ctx, f.plan.ID, f.owner.ID, &types.SetSlotRequest{
		Date: "2024-03-01", MealType: "brunch", RecipeID: idPtr(f.recipe.ID),
	})
	assert.True(t, types.IsValidation(err), "got %v", err)

	_, err = f.svc.SetSlot(ctx, f.plan.ID, f.owner.ID, &types.SetSlotRequest{
		Date: "2024-04-01", MealType: "lunch", RecipeID: idPtr(f.recipe.ID),
	})
	assert.True(t, types.IsNotFound(err), "got %v", err)
	assert.EqualError(t, err, "Day not found")

	_, err = f.svc.SetSlot(ctx, f.plan.ID, f.owner.ID, &types.SetSlotRequest{
		Date: "2024-03-01", MealType: "lunch", RecipeID: idPtr(uuid.New()),
	})
	assert.EqualError(t, err, "Recipe not found")

	_, err = f.svc.SetSlot(ctx, uuid.New(), f.owner.ID, &types.SetSlotRequest{Date: "2024-03-01", MealType: "lunch"})
	assert.True(t, types.IsNotFound(err))

	// snacks are only ever appended, so a snack without a recipe is rejected
	_, err = f.svc.SetSlot(ctx, f.plan.ID, f.owner.ID, &types.SetSlotRequest{Date: "2024-03-01", MealType: "snacks"})
	assert.EqualError(t, err, "recipeId is required when adding a snack")
	plan, err := f.svc.GetMealPlan(ctx, f.plan.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, plan.Days[0].Snacks)
}

func TestSetSlot_OtherUsersDraftIsNotFound(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	chef := testhelpers.CreateTestUser(t, db, "chef")
	planner := testhelpers.CreateTestUser(t, db, "planner")
	draft := testhelpers.CreateTestRecipe(t, db, chef.ID, "Secret Sauce", 4,
		models.Ingredient{Item: "secret spice", Quantity: 28, Unit: "g"})
	require.NoError(t, db.Model(draft).Update("is_published", false).Error)

	svc := service.NewMealPlanService(db)
	week := &types.CreateMealPlanRequest{Name: "Week", StartDate: "2024-03-01", EndDate: "2024-03-02"}

	plan, err := svc.CreateMealPlan(ctx, planner.ID, week)
	require.NoError(t, err)
	_, err = svc.SetSlot(ctx, plan.ID, planner.ID, &types.SetSlotRequest{
		Date: "2024-03-01", MealType: "dinner", RecipeID: idPtr(draft.ID),
	})
	assert.EqualError(t, err, "Recipe not found")

	list, err := svc.ShoppingList(ctx, plan.ID, planner.ID)
	require.NoError(t, err)
	assert.Empty(t, list.ShoppingList)

	own, err := svc.CreateMealPlan(ctx, chef.ID, week)
	require.NoError(t, err)
	updated, err := svc.SetSlot(ctx, own.ID, chef.ID, &types.SetSlotRequest{
		Date: "2024-03-01", MealType: "dinner", RecipeID: idPtr(draft.ID),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Days[0].Dinner)
	assert.Equal(t, draft.ID, updated.Days[0].Dinner.RecipeID)
}

func TestMealPlan_NonOwnerIsForbiddenRegardlessOfInput(t *testing.T) {
	f := setupMealPlan(t)
	ctx := context.Background()

	requests := []*types.SetSlotRequest{
		{Date: "2024-03-01", MealType: "lunch", RecipeID: idPtr(f.recipe.ID)},
		{},
		{Date: "not a date", MealType: "brunch", Servings: intPtr(-4)},
	}
	for _, req := range requests {
		_, err := f.svc.SetSlot(ctx, f.plan.ID, f.other.ID, req)
		assert.ErrorIs(t, err, types.ErrForbidden)
	}

	_, err := f.svc.ShoppingList(ctx, f.plan.ID, f.other.ID)
	assert.ErrorIs(t, err, types.ErrForbidden)

	_, err = f.svc.GetMealPlan(ctx, f.plan.ID, f.other.ID)
	assert.ErrorIs(t, err, types.ErrForbidden)

	_, err = f.svc.RemoveSnack(ctx, f.plan.ID, f.other.ID, &types.RemoveSnackRequest{})
	assert.ErrorIs(t, err, types.ErrForbidden)

	assert.ErrorIs(t, f.svc.DeleteMealPlan(ctx, f.plan.ID, f.other.ID), types.ErrForbidden)
	assert.ErrorIs(t, f.svc.CheckOwner(ctx, f.plan.ID, f.other.ID), types.ErrForbidden)
	assert.NoError(t, f.svc.CheckOwner(ctx, f.plan.ID, f.owner.ID))
}

func TestRemoveSnack_RemovesExactlyTheIndexedSnack(t *testing.T) {
	f := setupMealPlan(t)
	ctx := context.Background()

	for _, servings := range []int{1, 2, 3} {
		_, err := f.svc.SetSlot(ctx, f.plan.ID, f.owner.ID, &types.SetSlotRequest{
			Date: "2024-03-03", MealType: "snacks", RecipeID: idPtr(f.recipe.ID), Servings: intPtr(servings),
		})
		require.NoError(t, err)
	}

	plan, err := f.svc.RemoveSnack(ctx, f.plan.ID, f.owner.ID, &types.RemoveSnackRequest{Date: "2024-03-03", Index: intPtr(1)})
	require.NoError(t, err)

	snacks := plan.Days[2].Snacks
	require.Len(t, snacks, 2)
	assert.Equal(t, 1, snacks[0].Servings)
	assert.Equal(t, 3, snacks[1].Servings)

	_, err = f.svc.RemoveSnack(ctx, f.plan.ID, f.owner.ID, &types.RemoveSnackRequest{Date: "2024-03-03", Index: intPtr(2)})
	assert.True(t, types.IsValidation(err), "got %v", err)

	_, err = f.svc.RemoveSnack(ctx, f.plan.ID, f.owner.ID, &types.RemoveSnackRequest{Date: "2024-05-01", Index: intPtr(0)})
	assert.True(t, types.IsNotFound(err), "got %v", err)
}

func TestShoppingList_FromStoredPlan(t *testing.T) {
	f := setupMealPlan(t)
	ctx := context.Background()

	_, err := f.svc.SetSlot(ctx, f.plan.ID, f.owner.ID, &types.SetSlotRequest{
		Date: "2024-03-01", MealType: "breakfast", RecipeID: idPtr(f.recipe.ID), Servings: intPtr(2),
	})
	require.NoError(t, err)
	_, err = f.svc.SetSlot(ctx, f.plan.ID, f.owner.ID, &types.SetSlotRequest{
		Date: "2024-03-02", MealType: "dinner", RecipeID: idPtr(f.recipe.ID), Servings: intPtr(4),
	})
	require.NoError(t, err)

	list, err := f.svc.ShoppingList(ctx, f.plan.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Week 1", list.PlanName)
	require.Len(t, list.ShoppingList, 1)
	assert.Equal(t, types.ShoppingListEntry{Item: "flour", Quantity: 300, Unit: "g"}, list.ShoppingList[0])
}

func TestShoppingList_EmptyPlan(t *testing.T) {
	f := setupMealPlan(t)

	list, err := f.svc.ShoppingList(context.Background(), f.plan.ID, f.owner.ID)
	require.NoError(t, err)
	assert.NotNil(t, list.ShoppingList)
	assert.Empty(t, list.ShoppingList)
}

func TestUpdateAndListMealPlans(t *testing.T) {
	f := setupMealPlan(t)
	ctx := context.Background()

	updated, err := f.svc.UpdateMealPlan(ctx, f.plan.ID, f.owner.ID, &types.UpdateMealPlanRequest{
		Name: strPtr("Renamed"), IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.False(t, updated.IsActive)

	all, err := f.svc.ListMealPlans(ctx, f.owner.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	active, err := f.svc.ListMealPlans(ctx, f.owner.ID, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, f.svc.DeleteMealPlan(ctx, f.plan.ID, f.owner.ID))
	_, err = f.svc.GetMealPlan(ctx, f.plan.ID, f.owner.ID)
	assert.True(t, types.IsNotFound(err))
}
