package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/najino/Cooko-application-api/internal/models"
)

// CategoryService handles meal-category operations
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// CategoryUpdate carries a partial update; nil fields are left untouched.
type CategoryUpdate struct {
	Title *string
	Slug  *string
	Image *string
}

// Create inserts a new category. The slug is the uniqueness key; the
// pre-check is best effort and the unique index remains the authority.
func (s *CategoryService) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	log.Printf("[CategoryService] Creating category: %s", category.Title)

	var existing models.Category
	err := s.db.WithContext(ctx).Where("slug = ?", category.Slug).First(&existing).Error
	if err == nil {
		return nil, NewConflict(fmt.Sprintf("Category with slug '%s' already exists", category.Slug))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflict(fmt.Sprintf("Category with slug '%s' already exists", category.Slug))
		}
		return nil, err
	}

	log.Printf("[CategoryService] Category created successfully: %s", category.ID)
	return category, nil
}

// FindAll returns a page of categories, newest first.
func (s *CategoryService) FindAll(ctx context.Context, page, limit int) ([]models.Category, PaginationMeta, error) {
	log.Printf("[CategoryService] Fetching categories - Page: %d, Limit: %d", page, limit)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, PaginationMeta{}, err
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&categories).Error; err != nil {
		return nil, PaginationMeta{}, err
	}

	return categories, NewPaginationMeta(page, limit, len(categories), total), nil
}

// FindOne fetches a category by id.
func (s *CategoryService) FindOne(ctx context.Context, id string) (*models.Category, error) {
	categoryID, err := parseID("Category", id)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound(fmt.Sprintf("Category with ID '%s' not found", id))
		}
		return nil, err
	}
	return &category, nil
}

// Update merges the supplied fields into an existing category. Changing the
// slug to one used by a different category is a conflict.
func (s *CategoryService) Update(ctx context.Context, id string, update *CategoryUpdate) (*models.Category, error) {
	log.Printf("[CategoryService] Updating category: %s", id)

	existing, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Slug != nil && *update.Slug != existing.Slug {
		var conflict models.Category
		err := s.db.WithContext(ctx).Where("slug = ?", *update.Slug).First(&conflict).Error
		if err == nil {
			return nil, NewConflict(fmt.Sprintf("Category with slug '%s' already exists", *update.Slug))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Slug != nil {
		fields["slug"] = *update.Slug
	}
	if update.Image != nil {
		fields["image"] = *update.Image
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(existing).Updates(fields).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, NewConflict(fmt.Sprintf("Category with slug '%s' already exists", existing.Slug))
			}
			return nil, err
		}
	}

	log.Printf("[CategoryService] Category updated successfully: %s", id)
	return s.FindOne(ctx, id)
}

// Remove deletes a category and returns the deleted record. Recipes keep
// their references to it; stale ids are accepted.
func (s *CategoryService) Remove(ctx context.Context, id string) (*models.Category, error) {
	log.Printf("[CategoryService] Deleting category: %s", id)

	existing, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", existing.ID).Error; err != nil {
		return nil, err
	}

	log.Printf("[CategoryService] Category deleted successfully: %s", id)
	return existing, nil
}

// FindManyByID returns the subset of categories matching ids. Callers
// compare counts to detect missing ids.
func (s *CategoryService) FindManyByID(ctx context.Context, ids []string) ([]models.Category, error) {
	valid := filterValidIDs(ids)
	if len(valid) == 0 {
		return nil, nil
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Where("id IN ?", valid).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
