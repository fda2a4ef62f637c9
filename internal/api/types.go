package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/najino/Cooko-application-api/internal/service"
)

// PaginationQuery is the shared page/limit query contract. Out-of-range
// values are rejected at binding time.
type PaginationQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Title string `json:"title" binding:"required"`
	Slug  string `json:"slug" binding:"required"`
	Image string `json:"image"`
}

// UpdateCategoryRequest is a partial category update; absent fields stay
// untouched.
type UpdateCategoryRequest struct {
	Title *string `json:"title" binding:"omitempty,min=1"`
	Slug  *string `json:"slug" binding:"omitempty,min=1"`
	Image *string `json:"image"`
}

// CreateIngredientRequest is the payload for creating an ingredient.
type CreateIngredientRequest struct {
	Name       string `json:"name" binding:"required"`
	Slug       string `json:"slug"`
	ImageURL   string `json:"imageUrl"`
	CategoryID string `json:"categoryId"`
}

// UpdateIngredientRequest is a partial ingredient update.
type UpdateIngredientRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1"`
	Slug       *string `json:"slug"`
	ImageURL   *string `json:"imageUrl"`
	CategoryID *string `json:"categoryId"`
}

// RecipeIngredientRequest pairs an ingredient id with its classification.
type RecipeIngredientRequest struct {
	IngredientID string `json:"ingredientId" binding:"required"`
	Type         string `json:"type" binding:"required,oneof=MAIN ADDITIONAL"`
}

// CreateRecipeRequest is the payload for creating a recipe.
type CreateRecipeRequest struct {
	Title         string                    `json:"title" binding:"required"`
	Description   string                    `json:"description"`
	Instructions  string                    `json:"instructions" binding:"required"`
	Image         string                    `json:"image"`
	CategoryIDs   []string                  `json:"categoryIds" binding:"required,dive,required"`
	IngredientIDs []RecipeIngredientRequest `json:"ingredientIds" binding:"required,dive"`
}

// UpdateRecipeRequest is a partial recipe update. A nil relation slice
// leaves the join rows untouched; a present one replaces them.
type UpdateRecipeRequest struct {
	Title         *string                   `json:"title" binding:"omitempty,min=1"`
	Description   *string                   `json:"description"`
	Instructions  *string                   `json:"instructions" binding:"omitempty,min=1"`
	Image         *string                   `json:"image"`
	CategoryIDs   []string                  `json:"categoryIds" binding:"omitempty,dive,required"`
	IngredientIDs []RecipeIngredientRequest `json:"ingredientIds" binding:"omitempty,dive"`
}

// SuggestionQuery is the suggestion endpoint's query contract.
type SuggestionQuery struct {
	Ingredients string `form:"ingredients" binding:"required"`
}

// respondError writes the structured error envelope. Domain errors map to
// their status; everything else is a 500 and gets logged with context.
func respondError(c *gin.Context, operation string, err error) {
	if domainErr, ok := service.AsError(err); ok {
		log.Printf("[API] %s failed: %s", operation, domainErr.Message)
		c.JSON(domainErr.Status, gin.H{
			"statusCode": domainErr.Status,
			"message":    domainErr.Message,
			"error":      http.StatusText(domainErr.Status),
		})
		return
	}

	log.Printf("[API] %s failed: %v", operation, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"statusCode": http.StatusInternalServerError,
		"message":    "Internal server error",
		"error":      http.StatusText(http.StatusInternalServerError),
	})
}

// respondBindingError writes the 400 envelope for payload validation
// failures.
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"statusCode": http.StatusBadRequest,
		"message":    err.Error(),
		"error":      http.StatusText(http.StatusBadRequest),
	})
}
