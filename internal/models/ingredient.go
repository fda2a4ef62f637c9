package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient belongs to a category. The name is the uniqueness key and is
// trimmed before it is checked.
type Ingredient struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name       string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Slug       string    `gorm:"size:255" json:"slug"`
	ImageURL   string    `gorm:"size:512;default:''" json:"imageUrl"`
	CategoryID string    `gorm:"size:64" json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
