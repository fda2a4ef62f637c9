package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/najino/Cooko-application-api/internal/service"
)

// RecipeHandler serves the /recipes routes.
type RecipeHandler struct {
	recipeService *service.RecipeService
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("", h.Create)
		recipes.GET("", h.FindAll)
		recipes.GET("/suggestions", h.Suggestions)
		recipes.GET("/:id", h.FindOne)
		recipes.PATCH("/:id", h.Update)
		recipes.DELETE("/:id", h.Remove)
	}
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), &service.RecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		Image:        req.Image,
		CategoryIDs:  req.CategoryIDs,
		Ingredients:  toIngredientInputs(req.IngredientIDs),
	})
	if err != nil {
		respondError(c, "create recipe", err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) FindAll(c *gin.Context) {
	var query PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	recipes, pagination, err := h.recipeService.FindAll(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		respondError(c, "list recipes", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       recipes,
		"pagination": pagination,
	})
}

// Suggestions ranks recipes by overlap between their MAIN ingredients and
// the requested ingredient id set.
func (h *RecipeHandler) Suggestions(c *gin.Context) {
	var query SuggestionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	suggestions, err := h.recipeService.Suggest(c.Request.Context(), query.Ingredients)
	if err != nil {
		respondError(c, "get recipe suggestions", err)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

func (h *RecipeHandler) FindOne(c *gin.Context) {
	recipe, err := h.recipeService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "get recipe", err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	update := &service.RecipeUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		Image:        req.Image,
		CategoryIDs:  req.CategoryIDs,
	}
	if req.IngredientIDs != nil {
		update.Ingredients = toIngredientInputs(req.IngredientIDs)
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, "update recipe", err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Remove(c *gin.Context) {
	if err := h.recipeService.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "delete recipe", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toIngredientInputs(pairs []RecipeIngredientRequest) []service.RecipeIngredientInput {
	inputs := make([]service.RecipeIngredientInput, len(pairs))
	for i, pair := range pairs {
		inputs[i] = service.RecipeIngredientInput{
			IngredientID: pair.IngredientID,
			Type:         pair.Type,
		}
	}
	return inputs
}
