package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	// DefaultServings is the native serving count of a recipe created without one.
	DefaultServings = 4
)

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes,omitempty"`
	Group    string  `json:"group,omitempty"`
}

type Recipe struct {
	ID           uuid.UUID                       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time                       `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time                       `json:"updatedAt"`
	AuthorID     uuid.UUID                       `gorm:"type:varchar(36);not null;index" json:"authorId"`
	Author       *User                           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title        string                          `gorm:"size:100;not null" json:"title"`
	Slug         string                          `gorm:"size:120;not null;uniqueIndex" json:"slug"`
	Description  string                          `gorm:"size:1000" json:"description"`
	Ingredients  datatypes.JSONSlice[Ingredient] `gorm:"not null" json:"ingredients"`
	Instructions datatypes.JSONSlice[string]     `gorm:"not null" json:"instructions"`
	PrepTime     int                             `gorm:"not null" json:"prepTime"`
	CookTime     int                             `gorm:"not null" json:"cookTime"`
	Servings     int                             `gorm:"not null" json:"servings"`
	Difficulty   string                          `gorm:"size:10;not null" json:"difficulty"`
	Category     string                          `gorm:"size:20;index" json:"category"`
	Cuisine      string                          `gorm:"size:50;index" json:"cuisine"`
	Tags         datatypes.JSONSlice[string]     `json:"tags"`
	Images       datatypes.JSONSlice[string]     `json:"images"`
	AvgRating    float64                         `gorm:"not null;default:0;index" json:"avgRating"`
	ReviewCount  int                             `gorm:"not null;default:0" json:"reviewCount"`
	IsPublished  bool                            `gorm:"not null" json:"isPublished"`
}

// TotalTime is prep plus cook time in minutes.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// RecipeSummary is the view of a recipe embedded in meal plans.
type RecipeSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Image    string    `json:"image,omitempty"`
	Servings int       `json:"servings"`
	PrepTime int       `json:"prepTime"`
	CookTime int       `json:"cookTime"`
}

// Summary returns the embedded view of r.
func (r *Recipe) Summary() *RecipeSummary {
	s := &RecipeSummary{
		ID:       r.ID,
		Title:    r.Title,
		Slug:     r.Slug,
		Servings: r.Servings,
		PrepTime: r.PrepTime,
		CookTime: r.CookTime,
	}
	if len(r.Images) > 0 {
		s.Image = r.Images[0]
	}
	return s
}
