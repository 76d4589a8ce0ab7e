package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Review is a user's rating of a recipe. At most one per (author, recipe).
type Review struct {
	ID           uuid.UUID                   `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
	AuthorID     uuid.UUID                   `gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_author_recipe" json:"authorId"`
	Author       *User                       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	RecipeID     uuid.UUID                   `gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_author_recipe;index" json:"recipeId"`
	Rating       int                         `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title        string                      `gorm:"size:100" json:"title"`
	Text         string                      `gorm:"size:2000;not null" json:"text"`
	Images       datatypes.JSONSlice[string] `json:"images"`
	HelpfulCount int                         `gorm:"not null;default:0" json:"helpfulCount"`
}

// ReviewHelpfulVote records that a user found a review helpful.
type ReviewHelpfulVote struct {
	ReviewID  uuid.UUID `gorm:"type:varchar(36);primarykey" json:"reviewId"`
	UserID    uuid.UUID `gorm:"type:varchar(36);primarykey" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
