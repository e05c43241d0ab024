package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// MealTypes in display order
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner}

func (t MealType) Valid() bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner:
		return true
	}
	return false
}

// Meal - one slot of the calendar. Nothing stops two meals from sharing
// the same (date, meal_type); readers take the first one.
type Meal struct {
	Base
	Date     datatypes.Date `gorm:"not null;index" json:"date"`
	MealType MealType       `gorm:"type:varchar(20);not null" json:"meal_type"`

	MealRecipes []MealRecipe `gorm:"foreignKey:MealID" json:"meal_recipes"`
}

// Day returns the meal date as a UTC midnight time.Time
func (m *Meal) Day() time.Time {
	return time.Time(m.Date)
}

type MealRecipe struct {
	Base
	MealID   uuid.UUID `gorm:"type:uuid;not null;index" json:"meal_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Recipe   *Recipe   `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

// DateOf truncates t to a calendar date in UTC
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
