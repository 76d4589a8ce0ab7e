package service

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// GenerateShoppingList consolidates the ingredients of every occupied slot
// in plan into one list. recipes maps the plan's recipe ids to their loaded
// recipes; slots whose recipe is absent or has no ingredients are skipped.
//
// Quantities are scaled by slot servings over the recipe's native servings,
// merged per lowercased (item, unit) pair, and rounded to one decimal only
// after all slots are summed.
func GenerateShoppingList(plan *models.MealPlan, recipes map[uuid.UUID]*models.Recipe) *types.ShoppingListResponse {
	totals := make(map[string]*types.ShoppingListEntry)
	var order []*types.ShoppingListEntry

	for d := range plan.Days {
		for _, slot := range plan.Days[d].Slots() {
			recipe, ok := recipes[slot.RecipeID]
			if !ok || recipe == nil || len(recipe.Ingredients) == 0 {
				continue
			}

			native := recipe.Servings
			if native <= 0 {
				native = 1
			}
			multiplier := float64(slot.Servings) / float64(native)

			for _, ing := range recipe.Ingredients {
				key := strings.ToLower(ing.Item) + "_" + strings.ToLower(ing.Unit)
				scaled := ing.Quantity * multiplier

				if entry, ok := totals[key]; ok {
					entry.Quantity += scaled
					continue
				}
				entry := &types.ShoppingListEntry{Item: ing.Item, Quantity: scaled, Unit: ing.Unit}
				totals[key] = entry
				order = append(order, entry)
			}
		}
	}

	list := make([]types.ShoppingListEntry, 0, len(order))
	for _, entry := range order {
		list = append(list, *entry)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Item) < strings.ToLower(list[j].Item)
	})
	for i := range list {
		list[i].Quantity = math.Round(list[i].Quantity*10) / 10
	}

	return &types.ShoppingListResponse{ShoppingList: list, PlanName: plan.Name}
}
