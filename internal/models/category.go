package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a meal category. The slug is the URL-safe uniqueness key;
// the title is the display name.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title     string    `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Slug      string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Image     string    `gorm:"size:512;default:''" json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
