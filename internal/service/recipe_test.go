package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/najino/Cooko-application-api/internal/models"
	"github.com/najino/Cooko-application-api/internal/service"
	"github.com/najino/Cooko-application-api/internal/testhelpers"
)

type recipeFixture struct {
	db          *gorm.DB
	categories  *service.CategoryService
	ingredients *service.IngredientService
	recipes     *service.RecipeService

	mainDishes *models.Category
	tomato     *models.Ingredient
	onion      *models.Ingredient
	chicken    *models.Ingredient
}

func setupRecipeFixture(t *testing.T) *recipeFixture {
	t.Helper()

	db := testhelpers.SetupTestDB(t)
	f := &recipeFixture{
		db:          db,
		categories:  service.NewCategoryService(db),
		ingredients: service.NewIngredientService(db),
	}
	f.recipes = service.NewRecipeService(db, f.categories, f.ingredients)

	ctx := context.Background()
	var err error
	f.mainDishes, err = f.categories.Create(ctx, &models.Category{Title: "Main Dishes", Slug: "main-dishes"})
	require.NoError(t, err)
	f.tomato, err = f.ingredients.Create(ctx, &models.Ingredient{Name: "Tomato"})
	require.NoError(t, err)
	f.onion, err = f.ingredients.Create(ctx, &models.Ingredient{Name: "Onion"})
	require.NoError(t, err)
	f.chicken, err = f.ingredients.Create(ctx, &models.Ingredient{Name: "Chicken"})
	require.NoError(t, err)

	return f
}

func (f *recipeFixture) createRecipe(t *testing.T, title string, mains ...*models.Ingredient) *models.Recipe {
	t.Helper()

	pairs := make([]service.RecipeIngredientInput, len(mains))
	for i, ingredient := range mains {
		pairs[i] = service.RecipeIngredientInput{
			IngredientID: ingredient.ID.String(),
			Type:         models.IngredientTypeMain,
		}
	}

	recipe, err := f.recipes.Create(context.Background(), &service.RecipeInput{
		Title:        title,
		Instructions: "Cook everything.",
		CategoryIDs:  []string{f.mainDishes.ID.String()},
		Ingredients:  pairs,
	})
	require.NoError(t, err)
	// created_at is part of the ranking tie-break, keep inserts apart
	time.Sleep(5 * time.Millisecond)
	return recipe
}

func TestRecipeService_Create(t *testing.T) {
	f := setupRecipeFixture(t)
	ctx := context.Background()

	recipe, err := f.recipes.Create(ctx, &service.RecipeInput{
		Title:        "Tomato Soup",
		Description:  "A simple soup.",
		Instructions: "Simmer the tomatoes.",
		CategoryIDs:  []string{f.mainDishes.ID.String()},
		Ingredients: []service.RecipeIngredientInput{
			{IngredientID: f.tomato.ID.String(), Type: models.IngredientTypeMain},
			{IngredientID: f.onion.ID.String(), Type: models.IngredientTypeAdditional},
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, "", recipe.ID.String())

	var links []models.RecipeIngredient
	require.NoError(t, f.db.Where("recipe_id = ?", recipe.ID).Find(&links).Error)
	assert.Len(t, links, 2)
	typesByIngredient := map[string]string{}
	for _, link := range links {
		typesByIngredient[link.IngredientID] = link.Type
	}
	assert.Equal(t, models.IngredientTypeMain, typesByIngredient[f.tomato.ID.String()])
	assert.Equal(t, models.IngredientTypeAdditional, typesByIngredient[f.onion.ID.String()])

	var categoryLinks []models.RecipeCategory
	require.NoError(t, f.db.Where("recipe_id = ?", recipe.ID).Find(&categoryLinks).Error)
	assert.Len(t, categoryLinks, 1)

	t.Run("duplicate title is a conflict", func(t *testing.T) {
		_, err := f.recipes.Create(ctx, &service.RecipeInput{
			Title:        "Tomato Soup",
			Instructions: "Different soup.",
			CategoryIDs:  []string{f.mainDishes.ID.String()},
		})
		domainErr, ok := service.AsError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, domainErr.Status)
	})

	t.Run("unknown category persists nothing", func(t *testing.T) {
		_, err := f.recipes.Create(ctx, &service.RecipeInput{
			Title:        "Orphan Recipe",
			Instructions: "Never persisted.",
			CategoryIDs:  []string{"3f9c3f50-0000-4000-8000-000000000000"},
		})
		domainErr, ok := service.AsError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, domainErr.Status)

		var count int64
		require.NoError(t, f.db.Model(&models.Recipe{}).Where("title = ?", "Orphan Recipe").Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("unknown ingredient is not found", func(t *testing.T) {
		_, err := f.recipes.Create(ctx, &service.RecipeInput{
			Title:        "Another Orphan",
			Instructions: "Never persisted.",
			CategoryIDs:  []string{f.mainDishes.ID.String()},
			Ingredients: []service.RecipeIngredientInput{
				{IngredientID: "3f9c3f50-0000-4000-8000-000000000001", Type: models.IngredientTypeMain},
			},
		})
		domainErr, ok := service.AsError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, domainErr.Status)
	})
}

func TestRecipeService_FindOne(t *testing.T) {
	f := setupRecipeFixture(t)
	ctx := context.Background()

	created := f.createRecipe(t, "Chicken Skillet", f.chicken, f.tomato)

	detail, err := f.recipes.FindOne(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.ID)
	assert.Len(t, detail.Ingredients, 2)
	assert.Len(t, detail.Categories, 1)

	t.Run("malformed id is not found", func(t *testing.T) {
		_, err := f.recipes.FindOne(ctx, "42")
		domainErr, ok := service.AsError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, domainErr.Status)
	})
}

func TestRecipeService_Update(t *testing.T) {
	f := setupRecipeFixture(t)
	ctx := context.Background()

	created := f.createRecipe(t, "Roast Chicken", f.chicken)
	f.createRecipe(t, "Onion Soup", f.onion)

	t.Run("scalar update leaves relations untouched", func(t *testing.T) {
		description := "Crispy skin, juicy inside."
		updated, err := f.recipes.Update(ctx, created.ID.String(), &service.RecipeUpdate{
			Description: &description,
		})
		require.NoError(t, err)
		assert.Equal(t, description, updated.Description)

		var links []models.RecipeIngredient
		require.NoError(t, f.db.Where("recipe_id = ?", created.ID).Find(&links).Error)
		assert.Len(t, links, 1)
	})

	t.Run("supplied ingredient list replaces join rows", func(t *testing.T) {
		_, err := f.recipes.Update(ctx, created.ID.String(), &service.RecipeUpdate{
			Ingredients: []service.RecipeIngredientInput{
				{IngredientID: f.chicken.ID.String(), Type: models.IngredientTypeMain},
				{IngredientID: f.tomato.ID.String(), Type: models.IngredientTypeAdditional},
			},
		})
		require.NoError(t, err)

		var links []models.RecipeIngredient
		require.NoError(t, f.db.Where("recipe_id = ?", created.ID).Find(&links).Error)
		assert.Len(t, links, 2)
	})

	t.Run("title collision is a conflict", func(t *testing.T) {
		title := "Onion Soup"
		_, err := f.recipes.Update(ctx, created.ID.String(), &service.RecipeUpdate{Title: &title})
		domainErr, ok := service.AsError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, domainErr.Status)
		// the message names the title that collided, not the recipe's own
		assert.Contains(t, domainErr.Message, "Onion Soup")
	})
}

func TestRecipeService_Remove(t *testing.T) {
	f := setupRecipeFixture(t)
	ctx := context.Background()

	created := f.createRecipe(t, "Garden Salad", f.tomato, f.onion)

	require.NoError(t, f.recipes.Remove(ctx, created.ID.String()))

	var linkCount int64
	require.NoError(t, f.db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&linkCount).Error)
	assert.Equal(t, int64(0), linkCount)
	require.NoError(t, f.db.Model(&models.RecipeCategory{}).Where("recipe_id = ?", created.ID).Count(&linkCount).Error)
	assert.Equal(t, int64(0), linkCount)

	err := f.recipes.Remove(ctx, created.ID.String())
	domainErr, ok := service.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, domainErr.Status)
}

func TestRecipeService_Suggest(t *testing.T) {
	f := setupRecipeFixture(t)
	ctx := context.Background()

	onlyTomato := f.createRecipe(t, "Tomato Salad", f.tomato)
	tomatoAndOnion := f.createRecipe(t, "Tomato Onion Stew", f.tomato, f.onion)
	f.createRecipe(t, "Plain Chicken", f.chicken)

	query := f.tomato.ID.String() + "," + f.onion.ID.String()

	t.Run("ranks by main ingredient overlap", func(t *testing.T) {
		suggestions, err := f.recipes.Suggest(ctx, query)
		require.NoError(t, err)
		require.Len(t, suggestions, 2)

		assert.Equal(t, tomatoAndOnion.ID, suggestions[0].ID)
		assert.Equal(t, 2, suggestions[0].MatchCount)
		assert.Equal(t, onlyTomato.ID, suggestions[1].ID)
		assert.Equal(t, 1, suggestions[1].MatchCount)

		assert.Len(t, suggestions[0].MainIngredientsData, 2)
		require.Len(t, suggestions[0].CategoriesData, 1)
		assert.Equal(t, f.mainDishes.ID, suggestions[0].CategoriesData[0].ID)
	})

	t.Run("duplicate ids do not inflate the count", func(t *testing.T) {
		suggestions, err := f.recipes.Suggest(ctx, f.tomato.ID.String()+" , "+f.tomato.ID.String()+","+f.onion.ID.String())
		require.NoError(t, err)
		require.Len(t, suggestions, 2)
		assert.Equal(t, 2, suggestions[0].MatchCount)
	})

	t.Run("additional ingredients never match", func(t *testing.T) {
		_, err := f.recipes.Update(ctx, onlyTomato.ID.String(), &service.RecipeUpdate{
			Ingredients: []service.RecipeIngredientInput{
				{IngredientID: f.tomato.ID.String(), Type: models.IngredientTypeMain},
				{IngredientID: f.onion.ID.String(), Type: models.IngredientTypeAdditional},
			},
		})
		require.NoError(t, err)

		suggestions, err := f.recipes.Suggest(ctx, f.onion.ID.String())
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, tomatoAndOnion.ID, suggestions[0].ID)
	})

	t.Run("unknown ids simply never match", func(t *testing.T) {
		suggestions, err := f.recipes.Suggest(ctx, "3f9c3f50-0000-4000-8000-00000000000f")
		require.NoError(t, err)
		assert.Len(t, suggestions, 0)
	})

	t.Run("empty list is a bad request", func(t *testing.T) {
		for _, input := range []string{"", "  ", ", ,"} {
			_, err := f.recipes.Suggest(ctx, input)
			domainErr, ok := service.AsError(err)
			require.True(t, ok, "input %q", input)
			assert.Equal(t, http.StatusBadRequest, domainErr.Status)
		}
	})

	t.Run("deleted category leaves display data empty", func(t *testing.T) {
		_, err := f.categories.Remove(ctx, f.mainDishes.ID.String())
		require.NoError(t, err)

		suggestions, err := f.recipes.Suggest(ctx, query)
		require.NoError(t, err)
		require.NotEmpty(t, suggestions)
		assert.Len(t, suggestions[0].CategoriesData, 0)
	})
}
