package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationReview         = "review"
	NotificationHelpful        = "helpful"
	NotificationCollectionSave = "collection_save"
)

type Notification struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	RecipientID uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"recipientId"`
	ActorID     *uuid.UUID `gorm:"type:varchar(36)" json:"actorId,omitempty"`
	Actor       *User      `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Type        string     `gorm:"size:20;not null" json:"type"`
	RecipeID    *uuid.UUID `gorm:"type:varchar(36)" json:"recipeId,omitempty"`
	Message     string     `gorm:"size:500;not null" json:"message"`
	Read        bool       `gorm:"not null;default:false;index" json:"read"`
}
