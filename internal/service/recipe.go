package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/najino/Cooko-application-api/internal/models"
)

// RecipeService handles recipe operations and hosts the suggestion engine.
// Referenced categories and ingredients are validated through the catalog
// services before any write.
type RecipeService struct {
	db          *gorm.DB
	categories  *CategoryService
	ingredients *IngredientService
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, categories *CategoryService, ingredients *IngredientService) *RecipeService {
	return &RecipeService{
		db:          db,
		categories:  categories,
		ingredients: ingredients,
	}
}

// RecipeIngredientInput pairs an ingredient reference with its MAIN or
// ADDITIONAL classification.
type RecipeIngredientInput struct {
	IngredientID string
	Type         string
}

// RecipeInput is the payload for creating a recipe.
type RecipeInput struct {
	Title        string
	Description  string
	Instructions string
	Image        string
	CategoryIDs  []string
	Ingredients  []RecipeIngredientInput
}

// RecipeUpdate carries a partial update. Nil scalar fields are left
// untouched; nil relation slices leave the join rows as they are, while a
// non-nil slice replaces them wholesale.
type RecipeUpdate struct {
	Title        *string
	Description  *string
	Instructions *string
	Image        *string
	CategoryIDs  []string
	Ingredients  []RecipeIngredientInput
}

// RecipeListItem is the reduced projection used by the list view.
type RecipeListItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RecipeDetail is a recipe with its join rows expanded.
type RecipeDetail struct {
	models.Recipe
	Categories  []models.RecipeCategory   `json:"categories"`
	Ingredients []models.RecipeIngredient `json:"ingredients"`
}

// RecipeSuggestion is one ranked result of the suggestion engine.
type RecipeSuggestion struct {
	ID                  uuid.UUID           `json:"id"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	Image               string              `json:"image"`
	Instructions        string              `json:"instructions"`
	MatchCount          int                 `json:"matchCount"`
	MainIngredientsData []models.Ingredient `json:"mainIngredientsData"`
	CategoriesData      []models.Category   `json:"categoriesData"`
}

// Create inserts a recipe together with its ingredient and category join
// rows in one transaction; a failed validation persists nothing.
func (s *RecipeService) Create(ctx context.Context, input *RecipeInput) (*models.Recipe, error) {
	log.Printf("[RecipeService] Creating recipe: %s", input.Title)

	var existing models.Recipe
	err := s.db.WithContext(ctx).Where("title = ?", strings.TrimSpace(input.Title)).First(&existing).Error
	if err == nil {
		return nil, NewConflict(fmt.Sprintf("Recipe with title '%s' already exists", input.Title))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	categories, err := s.categories.FindManyByID(ctx, input.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(input.CategoryIDs) {
		return nil, NewNotFound("One or more categories not found")
	}

	ingredientIDs := make([]string, len(input.Ingredients))
	for i, ing := range input.Ingredients {
		ingredientIDs[i] = ing.IngredientID
	}
	ingredients, err := s.ingredients.FindManyByID(ctx, ingredientIDs)
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(input.Ingredients) {
		return nil, NewNotFound("One or more ingredients not found")
	}

	recipe := &models.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		Instructions: input.Instructions,
		Image:        input.Image,
		CategoryIDs:  models.StringArray(input.CategoryIDs),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		for _, ing := range input.Ingredients {
			row := models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ing.IngredientID,
				Type:         ing.Type,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, category := range categories {
			row := models.RecipeCategory{
				RecipeID:   recipe.ID,
				CategoryID: category.ID.String(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflict(fmt.Sprintf("Recipe with title '%s' already exists", input.Title))
		}
		return nil, err
	}

	log.Printf("[RecipeService] Recipe created successfully: %s", recipe.ID)
	return recipe, nil
}

// FindAll returns a page of recipes, newest first, as the reduced list
// projection. Child relations are not expanded here.
func (s *RecipeService) FindAll(ctx context.Context, page, limit int) ([]RecipeListItem, PaginationMeta, error) {
	log.Printf("[RecipeService] Fetching recipes - Page: %d, Limit: %d", page, limit)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Count(&total).Error; err != nil {
		return nil, PaginationMeta{}, err
	}

	var recipes []RecipeListItem
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Select("id", "title", "description", "image", "created_at", "updated_at").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, PaginationMeta{}, err
	}

	return recipes, NewPaginationMeta(page, limit, len(recipes), total), nil
}

// FindOne fetches a recipe with its category and ingredient join rows.
func (s *RecipeService) FindOne(ctx context.Context, id string) (*RecipeDetail, error) {
	recipeID, err := parseID("Recipe", id)
	if err != nil {
		return nil, err
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound(fmt.Sprintf("Recipe with ID '%s' not found", id))
		}
		return nil, err
	}

	detail := &RecipeDetail{
		Recipe:      recipe,
		Categories:  []models.RecipeCategory{},
		Ingredients: []models.RecipeIngredient{},
	}
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Find(&detail.Categories).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Find(&detail.Ingredients).Error; err != nil {
		return nil, err
	}
	return detail, nil
}

// Update merges the supplied fields and replaces the join rows of any
// relation present in the update. Omitted relations are left untouched.
func (s *RecipeService) Update(ctx context.Context, id string, update *RecipeUpdate) (*models.Recipe, error) {
	log.Printf("[RecipeService] Updating recipe: %s", id)

	recipeID, err := parseID("Recipe", id)
	if err != nil {
		return nil, err
	}

	var existing models.Recipe
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound(fmt.Sprintf("Recipe with ID '%s' not found", id))
		}
		return nil, err
	}

	if update.Title != nil && *update.Title != existing.Title {
		var conflict models.Recipe
		err := s.db.WithContext(ctx).Where("title = ?", *update.Title).First(&conflict).Error
		if err == nil {
			return nil, NewConflict(fmt.Sprintf("Recipe with title '%s' already exists", *update.Title))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if update.CategoryIDs != nil {
		categories, err := s.categories.FindManyByID(ctx, update.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if len(categories) != len(update.CategoryIDs) {
			return nil, NewNotFound("One or more categories not found")
		}
	}

	if update.Ingredients != nil {
		ingredientIDs := make([]string, len(update.Ingredients))
		for i, ing := range update.Ingredients {
			ingredientIDs[i] = ing.IngredientID
		}
		ingredients, err := s.ingredients.FindManyByID(ctx, ingredientIDs)
		if err != nil {
			return nil, err
		}
		if len(ingredients) != len(update.Ingredients) {
			return nil, NewNotFound("One or more ingredients not found")
		}
	}

	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Instructions != nil {
		fields["instructions"] = *update.Instructions
	}
	if update.Image != nil {
		fields["image"] = *update.Image
	}
	if update.CategoryIDs != nil {
		fields["category_ids"] = models.StringArray(update.CategoryIDs)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(fields).Error; err != nil {
				return err
			}
		}
		if update.CategoryIDs != nil {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeCategory{}).Error; err != nil {
				return err
			}
			for _, categoryID := range update.CategoryIDs {
				row := models.RecipeCategory{RecipeID: recipeID, CategoryID: categoryID}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		if update.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for _, ing := range update.Ingredients {
				row := models.RecipeIngredient{
					RecipeID:     recipeID,
					IngredientID: ing.IngredientID,
					Type:         ing.Type,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			title := existing.Title
			if update.Title != nil {
				title = *update.Title
			}
			return nil, NewConflict(fmt.Sprintf("Recipe with title '%s' already exists", title))
		}
		return nil, err
	}

	log.Printf("[RecipeService] Recipe updated successfully: %s", id)
	var updated models.Recipe
	if err := s.db.WithContext(ctx).First(&updated, "id = ?", recipeID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Remove deletes a recipe together with the join rows it owns.
func (s *RecipeService) Remove(ctx context.Context, id string) error {
	log.Printf("[RecipeService] Deleting recipe: %s", id)

	recipeID, err := parseID("Recipe", id)
	if err != nil {
		return err
	}

	var existing models.Recipe
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound(fmt.Sprintf("Recipe with ID '%s' not found", id))
		}
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", recipeID).Error
	})
	if err != nil {
		return err
	}

	log.Printf("[RecipeService] Recipe deleted successfully: %s", id)
	return nil
}

// suggestionRow is the scan target of the ranking query.
type suggestionRow struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Image        string
	Instructions string
	CategoryIDs  models.StringArray `gorm:"column:category_ids"`
	MatchCount   int
}

// Suggest ranks recipes by how many of their MAIN ingredients appear in the
// caller-supplied comma-separated ingredient id list. Ids that resolve to
// nothing simply never match; only a wholly empty list is an error. The
// query is read-only.
func (s *RecipeService) Suggest(ctx context.Context, ingredients string) ([]RecipeSuggestion, error) {
	requested := parseIngredientSet(ingredients)
	if len(requested) == 0 {
		return nil, NewBadRequest("No ingredients provided!")
	}

	log.Printf("[RecipeService] Getting recipe suggestions for ingredients: %s", strings.Join(requested, ", "))

	// One grouped join computes the per-recipe intersection size against the
	// requested set. The inner join keeps only recipes with matchCount > 0;
	// created_at/id break matchCount ties deterministically.
	var rows []suggestionRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT r.id, r.title, r.description, r.image, r.instructions, r.category_ids,
		       COUNT(DISTINCT ri.ingredient_id) AS match_count
		FROM recipes r
		JOIN recipe_ingredients ri ON ri.recipe_id = r.id AND ri.type = ?
		WHERE ri.ingredient_id IN ?
		GROUP BY r.id, r.title, r.description, r.image, r.instructions, r.category_ids, r.created_at
		ORDER BY match_count DESC, r.created_at DESC, r.id`,
		models.IngredientTypeMain, requested,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	suggestions := make([]RecipeSuggestion, 0, len(rows))
	if len(rows) == 0 {
		return suggestions, nil
	}

	recipeIDs := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		recipeIDs[i] = row.ID
	}

	// Hydrate display data: every MAIN ingredient of each matched recipe
	// (not only the matched ones) plus the referenced categories.
	var mainLinks []models.RecipeIngredient
	if err := s.db.WithContext(ctx).
		Where("recipe_id IN ? AND type = ?", recipeIDs, models.IngredientTypeMain).
		Find(&mainLinks).Error; err != nil {
		return nil, err
	}

	ingredientIDSet := map[string]struct{}{}
	mainByRecipe := map[uuid.UUID][]string{}
	for _, link := range mainLinks {
		mainByRecipe[link.RecipeID] = append(mainByRecipe[link.RecipeID], link.IngredientID)
		ingredientIDSet[link.IngredientID] = struct{}{}
	}
	categoryIDSet := map[string]struct{}{}
	for _, row := range rows {
		for _, id := range row.CategoryIDs {
			categoryIDSet[id] = struct{}{}
		}
	}

	ingredientsByID, err := s.ingredientIndex(ctx, ingredientIDSet)
	if err != nil {
		return nil, err
	}
	categoriesByID, err := s.categoryIndex(ctx, categoryIDSet)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		suggestion := RecipeSuggestion{
			ID:                  row.ID,
			Title:               row.Title,
			Description:         row.Description,
			Image:               row.Image,
			Instructions:        row.Instructions,
			MatchCount:          row.MatchCount,
			MainIngredientsData: []models.Ingredient{},
			CategoriesData:      []models.Category{},
		}
		// Dangling references resolve to nothing and are skipped.
		for _, ingredientID := range mainByRecipe[row.ID] {
			if ingredient, ok := ingredientsByID[ingredientID]; ok {
				suggestion.MainIngredientsData = append(suggestion.MainIngredientsData, ingredient)
			}
		}
		for _, categoryID := range row.CategoryIDs {
			if category, ok := categoriesByID[categoryID]; ok {
				suggestion.CategoriesData = append(suggestion.CategoriesData, category)
			}
		}
		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

func (s *RecipeService) ingredientIndex(ctx context.Context, ids map[string]struct{}) (map[string]models.Ingredient, error) {
	index := make(map[string]models.Ingredient, len(ids))
	if len(ids) == 0 {
		return index, nil
	}
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	ingredients, err := s.ingredients.FindManyByID(ctx, list)
	if err != nil {
		return nil, err
	}
	for _, ingredient := range ingredients {
		index[ingredient.ID.String()] = ingredient
	}
	return index, nil
}

func (s *RecipeService) categoryIndex(ctx context.Context, ids map[string]struct{}) (map[string]models.Category, error) {
	index := make(map[string]models.Category, len(ids))
	if len(ids) == 0 {
		return index, nil
	}
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	categories, err := s.categories.FindManyByID(ctx, list)
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		index[category.ID.String()] = category
	}
	return index, nil
}

// parseIngredientSet splits a comma-separated id list, trims each token,
// drops empty ones and deduplicates while preserving first-seen order.
func parseIngredientSet(ingredients string) []string {
	seen := map[string]struct{}{}
	var result []string
	for _, token := range strings.Split(ingredients, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		result = append(result, token)
	}
	return result
}
