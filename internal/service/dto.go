package service

import (
	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
)

// Ingredient DTOs
type CreateIngredientDTO struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

// UpdateIngredientDTO - nil fields are left unchanged
type UpdateIngredientDTO struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Unit     *string `json:"unit"`
}

// Recipe DTOs
type RecipeIngredientDTO struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
}

type CreateRecipeDTO struct {
	Name            string                `json:"name" binding:"required"`
	Description     string                `json:"description"`
	Category        string                `json:"category"`
	ServingSize     int                   `json:"serving_size"`
	Instructions    string                `json:"instructions"`
	CountryOfOrigin *string               `json:"country_of_origin"`
	ImageURL        *string               `json:"image_url"`
	Ingredients     []RecipeIngredientDTO `json:"ingredients"`
}

// UpdateRecipeDTO - Ingredients == nil keeps the current lines,
// a non-nil (even empty) slice replaces them all
type UpdateRecipeDTO struct {
	Name            *string                `json:"name"`
	Description     *string                `json:"description"`
	Category        *string                `json:"category"`
	ServingSize     *int                   `json:"serving_size"`
	Instructions    *string                `json:"instructions"`
	CountryOfOrigin *string                `json:"country_of_origin"`
	ImageURL        *string                `json:"image_url"`
	Ingredients     *[]RecipeIngredientDTO `json:"ingredients"`
}

// Meal DTOs
type CreateMealDTO struct {
	Date      string          `json:"date" binding:"required"` // YYYY-MM-DD
	MealType  models.MealType `json:"meal_type" binding:"required"`
	RecipeIDs []uuid.UUID     `json:"recipe_ids"`
}

type UpdateMealDTO struct {
	Date      *string          `json:"date"`
	MealType  *models.MealType `json:"meal_type"`
	RecipeIDs *[]uuid.UUID     `json:"recipe_ids"`
}

// Shopping DTOs
type CreateShoppingItemDTO struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
}

type UpdateShoppingItemDTO struct {
	Quantity    *float64 `json:"quantity"`
	IsPurchased *bool    `json:"is_purchased"`
}
