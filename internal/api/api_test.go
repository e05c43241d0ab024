package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rina-hagihara0844/meal-planner/internal/database/dbtest"
	"github.com/rina-hagihara0844/meal-planner/internal/importer"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/rina-hagihara0844/meal-planner/internal/repository"
	"github.com/rina-hagihara0844/meal-planner/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.New(t)

	ingredientRepo := repository.NewIngredientRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	mealRepo := repository.NewMealRepo(db)
	shoppingRepo := repository.NewShoppingRepo(db)
	generator := service.NewShoppingListGenerator(mealRepo, recipeRepo)

	h := NewHandlers(
		service.NewIngredientService(ingredientRepo),
		service.NewRecipeService(recipeRepo, nil, nil),
		service.NewMealService(mealRepo),
		service.NewShoppingService(shoppingRepo, generator),
		service.NewDashboardService(mealRepo, recipeRepo, shoppingRepo),
		nil,
	)
	h.now = func() time.Time { return time.Date(2025, 4, 14, 12, 0, 0, 0, time.UTC) }

	r := gin.New()
	SetupRoutes(r, h)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestIngredientCRUD(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/ingredients", gin.H{"name": "carrot", "category": "vegetables", "unit": "g"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	carrot := decode[models.Ingredient](t, w)

	w = do(t, r, http.MethodPut, "/api/ingredients/"+carrot.ID.String(), gin.H{"unit": "本"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "本", decode[models.Ingredient](t, w).Unit)

	w = do(t, r, http.MethodGet, "/api/ingredients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Ingredient](t, w), 1)

	w = do(t, r, http.MethodDelete, "/api/ingredients/"+carrot.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/ingredients/"+carrot.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/ingredients/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/ingredients", gin.H{"category": "vegetables"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteReferencedIngredientConflicts(t *testing.T) {
	r := newTestRouter(t)

	ing := decode[models.Ingredient](t, do(t, r, http.MethodPost, "/api/ingredients", gin.H{"name": "rice", "unit": "g"}))
	w := do(t, r, http.MethodPost, "/api/shopping-items", gin.H{"ingredient_id": ing.ID, "quantity": 500})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodDelete, "/api/ingredients/"+ing.ID.String(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGenerateShoppingListEndToEnd(t *testing.T) {
	r := newTestRouter(t)

	carrot := decode[models.Ingredient](t, do(t, r, http.MethodPost, "/api/ingredients", gin.H{"name": "carrot", "category": "vegetables", "unit": "g"}))
	onion := decode[models.Ingredient](t, do(t, r, http.MethodPost, "/api/ingredients", gin.H{"name": "onion", "category": "vegetables", "unit": "個"}))

	w := do(t, r, http.MethodPost, "/api/recipes", gin.H{
		"name": "curry",
		"ingredients": []gin.H{
			{"ingredient_id": carrot.ID, "quantity": 100, "unit": "g"},
			{"ingredient_id": onion.ID, "quantity": 0.5, "unit": "個"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	curry := decode[models.Recipe](t, w)
	require.Len(t, curry.Ingredients, 2)

	w = do(t, r, http.MethodPost, "/api/recipes", gin.H{
		"name":        "kinpira",
		"ingredients": []gin.H{{"ingredient_id": carrot.ID, "quantity": 50, "unit": "g"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	kinpira := decode[models.Recipe](t, w)

	for _, m := range []gin.H{
		{"date": "2025-04-14", "meal_type": "dinner", "recipe_ids": []string{curry.ID.String()}},
		{"date": "2025-04-16", "meal_type": "dinner", "recipe_ids": []string{kinpira.ID.String()}},
		{"date": "2025-04-30", "meal_type": "lunch", "recipe_ids": []string{curry.ID.String()}},
	} {
		w = do(t, r, http.MethodPost, "/api/meals", m)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/meals?start=2025-04-14&end=2025-04-20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Meal](t, w), 2)

	w = do(t, r, http.MethodGet, "/api/shopping-list/preview?start=2025-04-14&end=2025-04-20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	preview := decode[[]service.AggregatedLine](t, w)
	require.Len(t, preview, 2)
	assert.Equal(t, 150.0, preview[0].Quantity)
	assert.Equal(t, 1.0, preview[1].Quantity)

	// no body: the default week starting today
	w = do(t, r, http.MethodPost, "/api/shopping-list/generate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[generateResponse](t, w)
	assert.Len(t, resp.Lines, 2)
	assert.Len(t, resp.Result.Succeeded, 2)

	w = do(t, r, http.MethodGet, "/api/shopping-items?purchased=false", nil)
	items := decode[[]models.ShoppingItem](t, w)
	require.Len(t, items, 2)
	quantities := map[string]float64{}
	for _, item := range items {
		require.NotNil(t, item.Ingredient)
		quantities[item.Ingredient.Name] = item.Quantity
	}
	assert.Equal(t, map[string]float64{"carrot": 150, "onion": 1}, quantities)
}

func TestShoppingItemToggleAndClear(t *testing.T) {
	r := newTestRouter(t)

	egg := decode[models.Ingredient](t, do(t, r, http.MethodPost, "/api/ingredients", gin.H{"name": "egg", "unit": "個"}))
	first := decode[models.ShoppingItem](t, do(t, r, http.MethodPost, "/api/shopping-items", gin.H{"ingredient_id": egg.ID, "quantity": 6}))
	second := decode[models.ShoppingItem](t, do(t, r, http.MethodPost, "/api/shopping-items", gin.H{"ingredient_id": egg.ID, "quantity": 4}))

	w := do(t, r, http.MethodPut, "/api/shopping-items/"+first.ID.String(), gin.H{"is_purchased": true})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.ShoppingItem](t, w)
	assert.True(t, updated.IsPurchased)
	assert.NotNil(t, updated.PurchasedDate)

	w = do(t, r, http.MethodGet, "/api/shopping-items?purchased=true", nil)
	assert.Len(t, decode[[]models.ShoppingItem](t, w), 1)

	w = do(t, r, http.MethodGet, "/api/shopping-items?purchased=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodDelete, "/api/shopping-items/purchased", nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[service.BulkResult](t, w)
	assert.Equal(t, first.ID, result.Succeeded[0])

	w = do(t, r, http.MethodPost, "/api/shopping-items/"+second.ID.String()+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.ShoppingItem](t, w).IsPurchased)

	w = do(t, r, http.MethodGet, "/api/shopping-items", nil)
	assert.Len(t, decode[[]models.ShoppingItem](t, w), 1)
}

func TestMealValidation(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/meals", gin.H{"date": "2025-04-14", "meal_type": "brunch"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/meals?start=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/shopping-list/preview?start=2025-04-20&end=2025-04-14", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipeImageDisabled(t *testing.T) {
	r := newTestRouter(t)

	recipe := decode[models.Recipe](t, do(t, r, http.MethodPost, "/api/recipes", gin.H{"name": "gyoza"}))
	w := do(t, r, http.MethodPost, fmt.Sprintf("/api/recipes/%s/image", recipe.ID), gin.H{"image": "data:image/png;base64,AA=="})
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestDashboardAndHealth(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[service.Dashboard](t, w)
	assert.Equal(t, "2025-04-14", dash.Date)

	w = do(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", repository.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: x", repository.ErrConstraintViolation), http.StatusConflict},
		{fmt.Errorf("%w: x", repository.ErrTransientIO), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: x", service.ErrValidation), http.StatusBadRequest},
		{service.ErrImagesDisabled, http.StatusNotImplemented},
		{fmt.Errorf("fetch x: %w", importer.ErrBlockedHost), http.StatusBadRequest},
		{importer.ErrNoRecipe, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
