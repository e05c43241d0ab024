package repository

import (
	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"gorm.io/gorm"
)

type IngredientRepository interface {
	Create(ingredient *models.Ingredient) (*models.Ingredient, error)
	FindAll() ([]*models.Ingredient, error)
	FindByID(id uuid.UUID) (*models.Ingredient, error)
	Update(ingredient *models.Ingredient) error
	Delete(id uuid.UUID) error
}

type ingredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) IngredientRepository {
	return &ingredientRepo{db: db}
}

func (r *ingredientRepo) Create(ingredient *models.Ingredient) (*models.Ingredient, error) {
	err := r.db.Create(ingredient).Error
	return ingredient, translateError(err)
}

// FindAll returns every ingredient ordered by name
func (r *ingredientRepo) FindAll() ([]*models.Ingredient, error) {
	var ingredients []*models.Ingredient
	err := r.db.Order("name").Find(&ingredients).Error
	return ingredients, translateError(err)
}

func (r *ingredientRepo) FindByID(id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, translateError(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepo) Update(ingredient *models.Ingredient) error {
	return translateError(r.db.Save(ingredient).Error)
}

// Delete fails with ErrConstraintViolation while recipe lines or shopping
// items still point at the ingredient
func (r *ingredientRepo) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Ingredient{})
	return notFoundIfNone(result, "ingredient "+id.String())
}
