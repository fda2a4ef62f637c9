package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/najino/Cooko-application-api/internal/models"
)

// IngredientService handles ingredient operations
type IngredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new IngredientService instance
func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// IngredientUpdate carries a partial update; nil fields are left untouched.
type IngredientUpdate struct {
	Name       *string
	Slug       *string
	ImageURL   *string
	CategoryID *string
}

// Create inserts a new ingredient. The trimmed name is the uniqueness key.
func (s *IngredientService) Create(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error) {
	log.Printf("[IngredientService] Creating ingredient: %s", ingredient.Name)

	var existing models.Ingredient
	err := s.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(ingredient.Name)).First(&existing).Error
	if err == nil {
		return nil, NewConflict(fmt.Sprintf("Ingredient with name '%s' already exists", ingredient.Name))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflict(fmt.Sprintf("Ingredient with name '%s' already exists", ingredient.Name))
		}
		return nil, err
	}

	log.Printf("[IngredientService] Ingredient created successfully: %s", ingredient.ID)
	return ingredient, nil
}

// FindAll returns a page of ingredients, newest first.
func (s *IngredientService) FindAll(ctx context.Context, page, limit int) ([]models.Ingredient, PaginationMeta, error) {
	log.Printf("[IngredientService] Fetching ingredients - Page: %d, Limit: %d", page, limit)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Count(&total).Error; err != nil {
		return nil, PaginationMeta{}, err
	}

	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&ingredients).Error; err != nil {
		return nil, PaginationMeta{}, err
	}

	return ingredients, NewPaginationMeta(page, limit, len(ingredients), total), nil
}

// FindByCategory returns a page of the ingredients belonging to one
// category, newest first.
func (s *IngredientService) FindByCategory(ctx context.Context, categoryID string, page, limit int) ([]models.Ingredient, PaginationMeta, error) {
	log.Printf("[IngredientService] Fetching ingredients of category %s - Page: %d, Limit: %d", categoryID, page, limit)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("category_id = ?", categoryID).
		Count(&total).Error; err != nil {
		return nil, PaginationMeta{}, err
	}

	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&ingredients).Error; err != nil {
		return nil, PaginationMeta{}, err
	}

	return ingredients, NewPaginationMeta(page, limit, len(ingredients), total), nil
}

// FindOne fetches an ingredient by id.
func (s *IngredientService) FindOne(ctx context.Context, id string) (*models.Ingredient, error) {
	ingredientID, err := parseID("Ingredient", id)
	if err != nil {
		return nil, err
	}

	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound(fmt.Sprintf("Ingredient with ID '%s' not found", id))
		}
		return nil, err
	}
	return &ingredient, nil
}

// Update merges the supplied fields into an existing ingredient. Changing
// the name to one used by a different ingredient is a conflict.
func (s *IngredientService) Update(ctx context.Context, id string, update *IngredientUpdate) (*models.Ingredient, error) {
	log.Printf("[IngredientService] Updating ingredient: %s", id)

	existing, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != existing.Name {
		var conflict models.Ingredient
		err := s.db.WithContext(ctx).Where("name = ?", *update.Name).First(&conflict).Error
		if err == nil {
			return nil, NewConflict(fmt.Sprintf("Ingredient with name '%s' already exists", *update.Name))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Slug != nil {
		fields["slug"] = *update.Slug
	}
	if update.ImageURL != nil {
		fields["image_url"] = *update.ImageURL
	}
	if update.CategoryID != nil {
		fields["category_id"] = *update.CategoryID
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(existing).Updates(fields).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, NewConflict(fmt.Sprintf("Ingredient with name '%s' already exists", existing.Name))
			}
			return nil, err
		}
	}

	log.Printf("[IngredientService] Ingredient updated successfully: %s", id)
	return s.FindOne(ctx, id)
}

// Remove deletes an ingredient and returns the deleted record. Recipe links
// to it are left in place; stale ids are accepted.
func (s *IngredientService) Remove(ctx context.Context, id string) (*models.Ingredient, error) {
	log.Printf("[IngredientService] Deleting ingredient: %s", id)

	existing, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", existing.ID).Error; err != nil {
		return nil, err
	}

	log.Printf("[IngredientService] Ingredient deleted successfully: %s", id)
	return existing, nil
}

// FindManyByID returns the subset of ingredients matching ids. Callers
// compare counts to detect missing ids.
func (s *IngredientService) FindManyByID(ctx context.Context, ids []string) ([]models.Ingredient, error) {
	valid := filterValidIDs(ids)
	if len(valid) == 0 {
		return nil, nil
	}

	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Where("id IN ?", valid).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
