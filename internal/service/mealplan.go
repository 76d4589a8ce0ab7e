package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-share/backend/internal/metrics"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
	"github.com/pageza/recipe-share/backend/internal/validation"
)

// Default serving counts for newly assigned slots.
const (
	defaultMealServings  = 2
	defaultSnackServings = 1
)

// MealPlanService manages meal plans and derives shopping lists from them
type MealPlanService struct {
	db *gorm.DB
}

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(db *gorm.DB) *MealPlanService {
	return &MealPlanService{db: db}
}

// CreateMealPlan creates a plan with one empty day per calendar date in
// [StartDate, EndDate].
func (s *MealPlanService) CreateMealPlan(ctx context.Context, ownerID uuid.UUID, req *types.CreateMealPlanRequest) (*models.MealPlan, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	start, err := ParseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, types.NewValidationError("endDate must not be before startDate")
	}
	if dayCount(start, end) > maxPlanDays {
		return nil, types.NewValidationError("a meal plan may span at most %d days", maxPlanDays)
	}

	plan := &models.MealPlan{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		Days:      datatypes.JSONSlice[models.MealPlanDay](BuildDays(start, end)),
		Notes:     req.Notes,
		IsActive:  true,
	}
	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, fmt.Errorf("failed to create meal plan: %w", err)
	}
	return plan, nil
}

// BuildDays returns one empty day per calendar date from start to end
// inclusive. Both bounds are expected at UTC midnight.
func BuildDays(start, end time.Time) []models.MealPlanDay {
	n := dayCount(start, end)
	if n <= 0 {
		return []models.MealPlanDay{}
	}
	days := make([]models.MealPlanDay, 0, n)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, models.MealPlanDay{Date: d, Snacks: []models.MealSlot{}})
	}
	return days
}

func dayCount(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// GetMealPlan returns the caller's plan with recipe summaries resolved into
// each slot.
func (s *MealPlanService) GetMealPlan(ctx context.Context, id, callerID uuid.UUID) (*models.MealPlan, error) {
	db := s.db.WithContext(ctx)
	plan, err := ownedPlan(db, id, callerID, false)
	if err != nil {
		return nil, err
	}
	if err := resolveSummaries(db, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ListMealPlans returns the caller's plans, most recent start first.
func (s *MealPlanService) ListMealPlans(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]models.MealPlan, error) {
	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	plans := []models.MealPlan{}
	if err := q.Order("start_date DESC").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	return plans, nil
}

// UpdateMealPlan changes plan metadata. The date range is fixed at creation.
func (s *MealPlanService) UpdateMealPlan(ctx context.Context, id, callerID uuid.UUID, req *types.UpdateMealPlanRequest) (*models.MealPlan, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plan, err := ownedPlan(tx, id, callerID, true)
		if err != nil {
			return err
		}
		if err := validation.Struct(req); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return types.NewValidationError("name is required")
			}
			updates["name"] = name
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(plan).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update meal plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetMealPlan(ctx, id, callerID)
}

// SetSlot assigns a recipe to a meal on one day of the plan. Breakfast,
// lunch and dinner are replaced, or cleared when RecipeID is nil. Snacks are
// appended.
func (s *MealPlanService) SetSlot(ctx context.Context, id, callerID uuid.UUID, req *types.SetSlotRequest) (*models.MealPlan, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plan, err := ownedPlan(tx, id, callerID, true)
		if err != nil {
			return err
		}
		if err := validation.Struct(req); err != nil {
			return err
		}
		day, err := planDay(plan, req.Date)
		if err != nil {
			return err
		}

		meal := strings.ToLower(strings.TrimSpace(req.MealType))
		switch meal {
		case models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnacks:
		default:
			return types.NewValidationError("mealType must be one of: breakfast lunch dinner snacks")
		}

		var slot *models.MealSlot
		if req.RecipeID != nil {
			recipeID, err := uuid.Parse(*req.RecipeID)
			if err != nil {
				return types.NotFound("Recipe")
			}
			var recipe models.Recipe
			if err := tx.Select("id", "author_id", "is_published").First(&recipe, "id = ?", recipeID).Error; err != nil {
				return notFoundOr(err, "Recipe", "failed to check recipe")
			}
			// drafts are only plannable by their author
			if !recipe.IsPublished && recipe.AuthorID != callerID {
				return types.NotFound("Recipe")
			}
			servings := defaultMealServings
			if meal == models.MealSnacks {
				servings = defaultSnackServings
			}
			if req.Servings != nil {
				servings = *req.Servings
			}
			slot = &models.MealSlot{RecipeID: recipeID, Servings: servings, Notes: req.Notes}
		}

		switch meal {
		case models.MealBreakfast:
			day.Breakfast = slot
		case models.MealLunch:
			day.Lunch = slot
		case models.MealDinner:
			day.Dinner = slot
		case models.MealSnacks:
			if slot == nil {
				return types.NewValidationError("recipeId is required when adding a snack")
			}
			day.Snacks = append(day.Snacks, *slot)
		}
		return savePlanDays(tx, plan)
	})
	if err != nil {
		return nil, err
	}
	return s.GetMealPlan(ctx, id, callerID)
}

// RemoveSnack removes the snack at the zero-based index of the given day.
func (s *MealPlanService) RemoveSnack(ctx context.Context, id, callerID uuid.UUID, req *types.RemoveSnackRequest) (*models.MealPlan, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plan, err := ownedPlan(tx, id, callerID, true)
		if err != nil {
			return err
		}
		if err := validation.Struct(req); err != nil {
			return err
		}
		day, err := planDay(plan, req.Date)
		if err != nil {
			return err
		}

		idx := *req.Index
		if idx < 0 || idx >= len(day.Snacks) {
			return types.NewValidationError("index %d is out of range for %d snacks", idx, len(day.Snacks))
		}
		day.Snacks = append(day.Snacks[:idx:idx], day.Snacks[idx+1:]...)
		return savePlanDays(tx, plan)
	})
	if err != nil {
		return nil, err
	}
	return s.GetMealPlan(ctx, id, callerID)
}

// DeleteMealPlan removes a plan.
func (s *MealPlanService) DeleteMealPlan(ctx context.Context, id, callerID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ownedPlan(tx, id, callerID, false); err != nil {
			return err
		}
		if err := tx.Delete(&models.MealPlan{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete meal plan: %w", err)
		}
		return nil
	})
}

// ShoppingList aggregates the ingredients of every slot in the plan.
func (s *MealPlanService) ShoppingList(ctx context.Context, id, callerID uuid.UUID) (*types.ShoppingListResponse, error) {
	db := s.db.WithContext(ctx)
	plan, err := ownedPlan(db, id, callerID, false)
	if err != nil {
		return nil, err
	}
	recipes, err := loadRecipes(db, plan.RecipeIDs())
	if err != nil {
		return nil, err
	}

	list := GenerateShoppingList(plan, recipes)
	metrics.ShoppingListsGenerated.Inc()
	return list, nil
}

// CheckOwner reports NotFound or Forbidden for a plan the caller may not
// modify. Handlers use it so ownership is settled before input is judged.
func (s *MealPlanService) CheckOwner(ctx context.Context, id, callerID uuid.UUID) error {
	_, err := ownedPlan(s.db.WithContext(ctx), id, callerID, false)
	return err
}

func ownedPlan(tx *gorm.DB, id, callerID uuid.UUID, lock bool) (*models.MealPlan, error) {
	q := tx
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var plan models.MealPlan
	if err := q.First(&plan, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "Meal plan", "failed to load meal plan")
	}
	if plan.OwnerID != callerID {
		return nil, types.ErrForbidden
	}
	return &plan, nil
}

// planDay resolves the day addressed by a date string by its date-only key.
func planDay(plan *models.MealPlan, date string) (*models.MealPlanDay, error) {
	t, err := ParseDate("date", date)
	if err != nil {
		return nil, err
	}
	idx := plan.DayIndex(models.DateKey(t))
	if idx < 0 {
		return nil, types.NotFound("Day")
	}
	return &plan.Days[idx], nil
}

func savePlanDays(tx *gorm.DB, plan *models.MealPlan) error {
	for i := range plan.Days {
		for _, slot := range plan.Days[i].Slots() {
			slot.Recipe = nil
		}
	}
	if err := tx.Model(plan).Update("days", plan.Days).Error; err != nil {
		return fmt.Errorf("failed to save meal plan: %w", err)
	}
	return nil
}

func loadRecipes(tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]*models.Recipe, error) {
	out := make(map[uuid.UUID]*models.Recipe, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var recipes []models.Recipe
	if err := tx.Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load plan recipes: %w", err)
	}
	for i := range recipes {
		out[recipes[i].ID] = &recipes[i]
	}
	return out, nil
}

// resolveSummaries attaches a summary of each referenced recipe to the
// plan's slots. Slots whose recipe no longer exists are left bare.
func resolveSummaries(tx *gorm.DB, plan *models.MealPlan) error {
	recipes, err := loadRecipes(tx, plan.RecipeIDs())
	if err != nil {
		return err
	}
	for i := range plan.Days {
		for _, slot := range plan.Days[i].Slots() {
			if r, ok := recipes[slot.RecipeID]; ok {
				slot.Recipe = r.Summary()
			}
		}
	}
	return nil
}
