package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base replaces gorm.Model: UUID keys, no soft delete.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an id when the caller did not
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All lists the tables in dependency order for AutoMigrate
func All() []interface{} {
	return []interface{}{
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&Meal{},
		&MealRecipe{},
		&ShoppingItem{},
	}
}
