package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/najino/Cooko-application-api/internal/models"
	"github.com/najino/Cooko-application-api/internal/service"
)

// CategoryHandler serves the /categories routes.
type CategoryHandler struct {
	categoryService   *service.CategoryService
	ingredientService *service.IngredientService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService, ingredientService *service.IngredientService) *CategoryHandler {
	return &CategoryHandler{
		categoryService:   categoryService,
		ingredientService: ingredientService,
	}
}

// RegisterRoutes registers the category routes
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.POST("", h.Create)
		categories.GET("", h.FindAll)
		categories.GET("/:id", h.FindOne)
		categories.GET("/:id/ingredients", h.FindIngredients)
		categories.PATCH("/:id", h.Update)
		categories.DELETE("/:id", h.Remove)
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &models.Category{
		Title: req.Title,
		Slug:  req.Slug,
		Image: req.Image,
	})
	if err != nil {
		respondError(c, "create category", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Category created successfully",
		"data":    category,
	})
}

func (h *CategoryHandler) FindAll(c *gin.Context) {
	var query PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	categories, pagination, err := h.categoryService.FindAll(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		respondError(c, "list categories", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Categories retrieved successfully",
		"data":       categories,
		"pagination": pagination,
	})
}

func (h *CategoryHandler) FindOne(c *gin.Context) {
	category, err := h.categoryService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "get category", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category retrieved successfully",
		"data":    category,
	})
}

// FindIngredients lists the ingredients belonging to one category.
func (h *CategoryHandler) FindIngredients(c *gin.Context) {
	var query PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	category, err := h.categoryService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "get category ingredients", err)
		return
	}

	ingredients, pagination, err := h.ingredientService.FindByCategory(
		c.Request.Context(), category.ID.String(), query.Page, query.Limit)
	if err != nil {
		respondError(c, "get category ingredients", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Category ingredients retrieved successfully",
		"data":       ingredients,
		"pagination": pagination,
	})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), c.Param("id"), &service.CategoryUpdate{
		Title: req.Title,
		Slug:  req.Slug,
		Image: req.Image,
	})
	if err != nil {
		respondError(c, "update category", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category updated successfully",
		"data":    category,
	})
}

func (h *CategoryHandler) Remove(c *gin.Context) {
	category, err := h.categoryService.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "delete category", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted successfully",
		"data":    category,
	})
}
