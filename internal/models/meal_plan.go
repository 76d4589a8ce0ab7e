package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meal types accepted by a plan day.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnacks    = "snacks"
)

// DateKeyLayout is the date-only form used to address a plan day.
const DateKeyLayout = "2006-01-02"

// MealSlot assigns a recipe and a serving count to one meal.
// Recipe is filled in when a plan is read and is never persisted.
type MealSlot struct {
	RecipeID uuid.UUID      `json:"recipeId"`
	Servings int            `json:"servings"`
	Notes    string         `json:"notes,omitempty"`
	Recipe   *RecipeSummary `json:"recipe,omitempty"`
}

type MealPlanDay struct {
	Date      time.Time  `json:"date"`
	Breakfast *MealSlot  `json:"breakfast"`
	Lunch     *MealSlot  `json:"lunch"`
	Dinner    *MealSlot  `json:"dinner"`
	Snacks    []MealSlot `json:"snacks"`
}

// Key returns the day's date-only key.
func (d *MealPlanDay) Key() string {
	return DateKey(d.Date)
}

// Slots returns every occupied slot of the day in schedule order.
func (d *MealPlanDay) Slots() []*MealSlot {
	var out []*MealSlot
	for _, s := range []*MealSlot{d.Breakfast, d.Lunch, d.Dinner} {
		if s != nil {
			out = append(out, s)
		}
	}
	for i := range d.Snacks {
		out = append(out, &d.Snacks[i])
	}
	return out
}

type MealPlan struct {
	ID        uuid.UUID                        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time                        `json:"createdAt"`
	UpdatedAt time.Time                        `json:"updatedAt"`
	OwnerID   uuid.UUID                        `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	Name      string                           `gorm:"size:100;not null" json:"name"`
	StartDate time.Time                        `gorm:"not null" json:"startDate"`
	EndDate   time.Time                        `gorm:"not null" json:"endDate"`
	Days      datatypes.JSONSlice[MealPlanDay] `gorm:"not null" json:"days"`
	Notes     string                           `gorm:"size:500" json:"notes"`
	IsActive  bool                             `gorm:"not null;index" json:"isActive"`
}

// DayIndex returns the index of the day whose date key is key, or -1.
func (p *MealPlan) DayIndex(key string) int {
	for i := range p.Days {
		if p.Days[i].Key() == key {
			return i
		}
	}
	return -1
}

// RecipeIDs returns the distinct recipe ids referenced by the plan.
func (p *MealPlan) RecipeIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for i := range p.Days {
		for _, s := range p.Days[i].Slots() {
			if _, ok := seen[s.RecipeID]; ok {
				continue
			}
			seen[s.RecipeID] = struct{}{}
			ids = append(ids, s.RecipeID)
		}
	}
	return ids
}

// DateKey normalizes t to its UTC date-only key.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

// TruncateToDay returns UTC midnight of t's UTC calendar date.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
