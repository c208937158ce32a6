package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a login identity. The unique index on Email is the authoritative
// duplicate guard; the application-level check before registration only
// exists to produce a friendlier error.
type User struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:50;not null;default:employee" json:"role"`
	ProfileImage string    `gorm:"size:2048" json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
