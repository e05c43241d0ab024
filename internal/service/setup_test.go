package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/database/dbtest"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/rina-hagihara0844/meal-planner/internal/repository"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return monday.AddDate(0, 0, offset)
}

func dateStr(offset int) string {
	return day(offset).Format(DateLayout)
}

type testEnv struct {
	ingredients *IngredientService
	recipes     *RecipeService
	meals       *MealService
	shopping    *ShoppingService
	generator   *ShoppingListGenerator
	dashboard   *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.New(t)

	ingredientRepo := repository.NewIngredientRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	mealRepo := repository.NewMealRepo(db)
	shoppingRepo := repository.NewShoppingRepo(db)

	generator := NewShoppingListGenerator(mealRepo, recipeRepo)
	return &testEnv{
		ingredients: NewIngredientService(ingredientRepo),
		recipes:     NewRecipeService(recipeRepo, nil, nil),
		meals:       NewMealService(mealRepo),
		shopping:    NewShoppingService(shoppingRepo, generator),
		generator:   generator,
		dashboard:   NewDashboardService(mealRepo, recipeRepo, shoppingRepo),
	}
}

func (e *testEnv) ingredient(t *testing.T, name, category, unit string) *models.Ingredient {
	t.Helper()
	ing, err := e.ingredients.CreateIngredient(CreateIngredientDTO{Name: name, Category: category, Unit: unit})
	require.NoError(t, err)
	return ing
}

func (e *testEnv) recipe(t *testing.T, name string, lines ...RecipeIngredientDTO) *models.Recipe {
	t.Helper()
	recipe, err := e.recipes.CreateRecipe(CreateRecipeDTO{Name: name, ServingSize: 2, Ingredients: lines})
	require.NoError(t, err)
	return recipe
}

func (e *testEnv) meal(t *testing.T, offset int, mealType models.MealType, recipes ...*models.Recipe) *models.Meal {
	t.Helper()
	ids := make([]uuid.UUID, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	meal, err := e.meals.CreateMeal(CreateMealDTO{Date: dateStr(offset), MealType: mealType, RecipeIDs: ids})
	require.NoError(t, err)
	return meal
}

func uses(ing *models.Ingredient, qty float64, unit string) RecipeIngredientDTO {
	return RecipeIngredientDTO{IngredientID: ing.ID, Quantity: qty, Unit: unit}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func totals(lines []AggregatedLine) map[uuid.UUID]float64 {
	out := make(map[uuid.UUID]float64, len(lines))
	for _, l := range lines {
		out[l.IngredientID] += l.Quantity
	}
	return out
}
