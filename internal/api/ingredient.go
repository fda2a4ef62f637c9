package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/najino/Cooko-application-api/internal/models"
	"github.com/najino/Cooko-application-api/internal/service"
)

// IngredientHandler serves the /ingredients routes.
type IngredientHandler struct {
	ingredientService *service.IngredientService
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// RegisterRoutes registers the ingredient routes
func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.POST("", h.Create)
		ingredients.GET("", h.FindAll)
		ingredients.GET("/:id", h.FindOne)
		ingredients.PATCH("/:id", h.Update)
		ingredients.DELETE("/:id", h.Remove)
	}
}

func (h *IngredientHandler) Create(c *gin.Context) {
	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ingredient, err := h.ingredientService.Create(c.Request.Context(), &models.Ingredient{
		Name:       req.Name,
		Slug:       req.Slug,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondError(c, "create ingredient", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Ingredient created successfully",
		"data":    ingredient,
	})
}

func (h *IngredientHandler) FindAll(c *gin.Context) {
	var query PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	ingredients, pagination, err := h.ingredientService.FindAll(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		respondError(c, "list ingredients", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Ingredients retrieved successfully",
		"data":       ingredients,
		"pagination": pagination,
	})
}

func (h *IngredientHandler) FindOne(c *gin.Context) {
	ingredient, err := h.ingredientService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "get ingredient", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Ingredient retrieved successfully",
		"data":    ingredient,
	})
}

func (h *IngredientHandler) Update(c *gin.Context) {
	var req UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ingredient, err := h.ingredientService.Update(c.Request.Context(), c.Param("id"), &service.IngredientUpdate{
		Name:       req.Name,
		Slug:       req.Slug,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondError(c, "update ingredient", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Ingredient updated successfully",
		"data":    ingredient,
	})
}

func (h *IngredientHandler) Remove(c *gin.Context) {
	ingredient, err := h.ingredientService.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "delete ingredient", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Ingredient deleted successfully",
		"data":    ingredient,
	})
}
