package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MealRepository - календарь приёмов пищи и привязанные к ним рецепты
type MealRepository interface {
	Create(meal *models.Meal, recipeIDs []uuid.UUID) (*models.Meal, error)
	FindByID(id uuid.UUID) (*models.Meal, error)
	// FindByDateRange is inclusive on both ends; a nil bound is open
	FindByDateRange(start, end *time.Time) ([]*models.Meal, error)
	Update(meal *models.Meal) error
	// UpdateWithRecipes saves the meal and replaces all of its recipe links
	UpdateWithRecipes(meal *models.Meal, recipeIDs []uuid.UUID) error
	Delete(id uuid.UUID) error
}

type mealRepo struct {
	db *gorm.DB
}

func NewMealRepo(db *gorm.DB) MealRepository {
	return &mealRepo{db: db}
}

func (r *mealRepo) Create(meal *models.Meal, recipeIDs []uuid.UUID) (*models.Meal, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(meal).Error; err != nil {
			return err
		}
		return insertMealRecipes(tx, meal.ID, recipeIDs)
	})
	if err != nil {
		return nil, translateError(err)
	}
	return meal, nil
}

func (r *mealRepo) FindByID(id uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	if err := r.withRecipes().Where("id = ?", id).First(&meal).Error; err != nil {
		return nil, translateError(err)
	}
	return &meal, nil
}

func (r *mealRepo) FindByDateRange(start, end *time.Time) ([]*models.Meal, error) {
	q := r.withRecipes()
	if start != nil {
		q = q.Where("date >= ?", models.DateOf(*start))
	}
	if end != nil {
		q = q.Where("date <= ?", models.DateOf(*end))
	}

	var meals []*models.Meal
	err := q.Order("date").Order("created_at").Find(&meals).Error
	return meals, translateError(err)
}

func (r *mealRepo) Update(meal *models.Meal) error {
	return translateError(r.db.Omit(clause.Associations).Save(meal).Error)
}

func (r *mealRepo) UpdateWithRecipes(meal *models.Meal, recipeIDs []uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(meal).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealRecipe{}).Error; err != nil {
			return err
		}
		return insertMealRecipes(tx, meal.ID, recipeIDs)
	})
	return translateError(err)
}

// Delete removes the meal and its recipe links
func (r *mealRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", id).Delete(&models.MealRecipe{}).Error; err != nil {
			return translateError(err)
		}
		result := tx.Where("id = ?", id).Delete(&models.Meal{})
		return notFoundIfNone(result, "meal "+id.String())
	})
}

func (r *mealRepo) withRecipes() *gorm.DB {
	return r.db.
		Preload("MealRecipes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("MealRecipes.Recipe")
}

func insertMealRecipes(tx *gorm.DB, mealID uuid.UUID, recipeIDs []uuid.UUID) error {
	if len(recipeIDs) == 0 {
		return nil
	}
	links := make([]models.MealRecipe, len(recipeIDs))
	for i, recipeID := range recipeIDs {
		links[i] = models.MealRecipe{MealID: mealID, RecipeID: recipeID}
	}
	return tx.Omit(clause.Associations).Create(&links).Error
}
