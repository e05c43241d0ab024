package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mustIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ing, err := NewIngredientRepo(db).Create(&models.Ingredient{Name: name, Category: "vegetables", Unit: unit})
	require.NoError(t, err)
	return ing
}

func mustRecipe(t *testing.T, db *gorm.DB, name string, lines ...models.RecipeIngredient) *models.Recipe {
	t.Helper()
	recipe, err := NewRecipeRepo(db).Create(&models.Recipe{Name: name, ServingSize: 2}, lines)
	require.NoError(t, err)
	return recipe
}

func line(ing *models.Ingredient, qty float64, unit string) models.RecipeIngredient {
	return models.RecipeIngredient{IngredientID: ing.ID, Quantity: qty, Unit: unit}
}

func lineIngredientIDs(lines []models.RecipeIngredient) []uuid.UUID {
	ids := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		ids[i] = l.IngredientID
	}
	return ids
}
