package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/rina-hagihara0844/meal-planner/pkg/utils"
)

// MealRangeReader is the slice of MealRepository the generator needs
type MealRangeReader interface {
	FindByDateRange(start, end *time.Time) ([]*models.Meal, error)
}

// RecipeLineReader is the slice of RecipeRepository the generator needs
type RecipeLineReader interface {
	FindIngredientsForRecipes(recipeIDs []uuid.UUID) ([]*models.RecipeIngredient, error)
}

// AggregatedLine - one consolidated shopping entry per ingredient
type AggregatedLine struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
}

type ShoppingListGenerator struct {
	meals   MealRangeReader
	recipes RecipeLineReader
}

func NewShoppingListGenerator(meals MealRangeReader, recipes RecipeLineReader) *ShoppingListGenerator {
	return &ShoppingListGenerator{meals: meals, recipes: recipes}
}

// Generate sums the ingredient lines of every recipe scheduled in
// [start, end]. A recipe scheduled n times contributes n times. Quantities
// are added as-is and tagged with the ingredient's own unit.
func (g *ShoppingListGenerator) Generate(start, end *time.Time) ([]AggregatedLine, error) {
	meals, err := g.meals.FindByDateRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("load meals: %w", err)
	}

	occurrences := make(map[uuid.UUID]int)
	var recipeIDs []uuid.UUID
	for _, meal := range meals {
		for _, link := range meal.MealRecipes {
			if occurrences[link.RecipeID] == 0 {
				recipeIDs = append(recipeIDs, link.RecipeID)
			}
			occurrences[link.RecipeID]++
		}
	}
	if len(recipeIDs) == 0 {
		return []AggregatedLine{}, nil
	}

	lines, err := g.recipes.FindIngredientsForRecipes(recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipe ingredients: %w", err)
	}

	byIngredient := make(map[uuid.UUID]*AggregatedLine)
	for _, line := range lines {
		n := occurrences[line.RecipeID]
		if n == 0 {
			continue
		}

		agg, ok := byIngredient[line.IngredientID]
		if !ok {
			agg = &AggregatedLine{IngredientID: line.IngredientID}
			if line.Ingredient != nil {
				agg.Name = line.Ingredient.Name
				agg.Category = line.Ingredient.Category
				agg.Unit = line.Ingredient.Unit
			}
			byIngredient[line.IngredientID] = agg
		}

		if line.Unit != "" && agg.Unit != "" && line.Unit != agg.Unit {
			utils.Log.Warnf("recipe %s lists %s in %q, summed as %q without conversion",
				line.RecipeID, agg.Name, line.Unit, agg.Unit)
		}
		agg.Quantity += line.Quantity * float64(n)
	}

	result := make([]AggregatedLine, 0, len(byIngredient))
	for _, agg := range byIngredient {
		if math.IsInf(agg.Quantity, 0) || math.IsNaN(agg.Quantity) {
			return nil, invalidf("%s: total quantity is not a finite number", agg.Name)
		}
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Category != result[j].Category {
			return result[i].Category < result[j].Category
		}
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].IngredientID.String() < result[j].IngredientID.String()
	})
	return result, nil
}
