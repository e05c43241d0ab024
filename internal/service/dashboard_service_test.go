package service

import (
	"testing"
	"time"

	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardToday(t *testing.T) {
	env := newTestEnv(t)
	egg := env.ingredient(t, "egg", "dairy", "個")
	first := env.recipe(t, "tamagoyaki", uses(egg, 2, "個"))
	second := env.recipe(t, "oyakodon", uses(egg, 3, "個"))

	breakfast := env.meal(t, 0, models.MealTypeBreakfast, first)
	env.meal(t, 0, models.MealTypeBreakfast, second) // duplicate slot
	env.meal(t, 3, models.MealTypeDinner, second)
	env.meal(t, 8, models.MealTypeDinner, second)
	env.meal(t, -1, models.MealTypeDinner, second)

	_, err := env.shopping.CreateItem(CreateShoppingItemDTO{IngredientID: egg.ID, Quantity: 10})
	require.NoError(t, err)
	bought, err := env.shopping.CreateItem(CreateShoppingItemDTO{IngredientID: egg.ID, Quantity: 6})
	require.NoError(t, err)
	_, err = env.shopping.TogglePurchased(bought.ID)
	require.NoError(t, err)

	now := time.Date(2025, 4, 14, 18, 45, 0, 0, time.UTC)
	dash, err := env.dashboard.Today(now)
	require.NoError(t, err)

	assert.Equal(t, "2025-04-14", dash.Date)
	require.Contains(t, dash.TodayMeals, models.MealTypeBreakfast)
	assert.Equal(t, breakfast.ID, dash.TodayMeals[models.MealTypeBreakfast].ID)
	assert.NotContains(t, dash.TodayMeals, models.MealTypeDinner)
	assert.Len(t, dash.UpcomingMeals, 3)
	assert.Equal(t, int64(2), dash.RecipeCount)
	require.Len(t, dash.ShoppingItems, 1)
	assert.Equal(t, 10.0, dash.ShoppingItems[0].Quantity)
}
