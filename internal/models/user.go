package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `gorm:"size:50;not null" json:"name"`
	Username     string    `gorm:"size:30;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:254;not null;uniqueIndex" json:"email,omitempty"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Bio          string    `gorm:"size:500" json:"bio"`
	AvatarURL    string    `gorm:"size:500" json:"avatarUrl"`
}

// PublicUserColumns are the columns loaded when a user is embedded in
// another resource. Email stays private.
var PublicUserColumns = []string{"id", "name", "username", "avatar_url"}
