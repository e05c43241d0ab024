package models

import "github.com/google/uuid"

type Recipe struct {
	Base
	Name            string  `gorm:"type:varchar(255);not null;index" json:"name"`
	Description     string  `gorm:"type:text" json:"description"`
	Category        string  `gorm:"type:varchar(100)" json:"category"`
	ServingSize     int     `json:"serving_size"`
	Instructions    string  `gorm:"type:text" json:"instructions"`
	CountryOfOrigin *string `gorm:"type:varchar(100)" json:"country_of_origin,omitempty"`
	ImageURL        *string `gorm:"type:text" json:"image_url,omitempty"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"recipe_ingredients,omitempty"`
}

// RecipeIngredient - one ingredient line of a recipe.
// Unit is what the recipe author wrote and may differ from Ingredient.Unit.
type RecipeIngredient struct {
	Base
	RecipeID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID uuid.UUID   `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Quantity     float64     `gorm:"not null" json:"quantity"`
	Unit         string      `gorm:"type:varchar(50)" json:"unit"`
}
