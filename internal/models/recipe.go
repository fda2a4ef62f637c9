package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe ingredient classification. MAIN ingredients count toward suggestion
// matching, ADDITIONAL ones are display-only.
const (
	IngredientTypeMain       = "MAIN"
	IngredientTypeAdditional = "ADDITIONAL"
)

// Recipe is the catalog's central entity. CategoryIDs keeps the caller's
// category ordering denormalized on the recipe, alongside the
// RecipeCategory join rows.
type Recipe struct {
	ID           uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	Title        string      `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Description  string      `gorm:"type:text;default:''" json:"description"`
	Instructions string      `gorm:"type:text;not null" json:"instructions"`
	Image        string      `gorm:"size:512;default:''" json:"image"`
	CategoryIDs  StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"categoryIds"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient links a recipe to an ingredient with a MAIN/ADDITIONAL
// tag. The ingredient id is stored as text on purpose: ingredient deletion
// does not cascade, so the reference may dangle.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"recipeId"`
	IngredientID string    `gorm:"size:64;not null;index" json:"ingredientId"`
	Type         string    `gorm:"size:16;not null" json:"type"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// RecipeCategory links a recipe to a category. Same dangling-reference rules
// as RecipeIngredient.
type RecipeCategory struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"recipeId"`
	CategoryID string    `gorm:"size:64;not null;index" json:"categoryId"`
}

func (rc *RecipeCategory) BeforeCreate(tx *gorm.DB) error {
	if rc.ID == uuid.Nil {
		rc.ID = uuid.New()
	}
	return nil
}

// All returns every model for auto-migration.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&RecipeCategory{},
	}
}
