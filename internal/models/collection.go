package models

import (
	"time"

	"github.com/google/uuid"
)

type Collection struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	OwnerID     uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_collections_owner_slug" json:"ownerId"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"size:120;not null;uniqueIndex:idx_collections_owner_slug" json:"slug"`
	Description string    `gorm:"size:500" json:"description"`
	IsPublic    bool      `gorm:"not null" json:"isPublic"`
	Recipes     []Recipe  `gorm:"many2many:collection_recipes" json:"recipes,omitempty"`
	RecipeCount int64     `gorm:"-" json:"recipeCount"`
}
