package repository

import (
	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecipeRepository interface {
	// Create writes the recipe and its lines in one transaction
	Create(recipe *models.Recipe, lines []models.RecipeIngredient) (*models.Recipe, error)
	FindAll() ([]*models.Recipe, error)
	FindByID(id uuid.UUID) (*models.Recipe, error)
	Update(recipe *models.Recipe) error
	// UpdateWithIngredients saves the recipe and replaces all of its lines
	UpdateWithIngredients(recipe *models.Recipe, lines []models.RecipeIngredient) error
	Delete(id uuid.UUID) error
	FindIngredientsForRecipes(recipeIDs []uuid.UUID) ([]*models.RecipeIngredient, error)
	Count() (int64, error)
}

type recipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) RecipeRepository {
	return &recipeRepo{db: db}
}

func (r *recipeRepo) Create(recipe *models.Recipe, lines []models.RecipeIngredient) (*models.Recipe, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return insertRecipeLines(tx, recipe.ID, lines)
	})
	if err != nil {
		return nil, translateError(err)
	}
	return recipe, nil
}

// FindAll - lightweight listing without ingredient lines
func (r *recipeRepo) FindAll() ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	err := r.db.Order("name").Find(&recipes).Error
	return recipes, translateError(err)
}

func (r *recipeRepo) FindByID(id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &recipe, nil
}

func (r *recipeRepo) Update(recipe *models.Recipe) error {
	return translateError(r.db.Omit(clause.Associations).Save(recipe).Error)
}

func (r *recipeRepo) UpdateWithIngredients(recipe *models.Recipe, lines []models.RecipeIngredient) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return insertRecipeLines(tx, recipe.ID, lines)
	})
	return translateError(err)
}

// Delete removes the recipe together with its lines and meal links
func (r *recipeRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.MealRecipe{}).Error; err != nil {
			return translateError(err)
		}
		result := tx.Where("id = ?", id).Delete(&models.Recipe{})
		return notFoundIfNone(result, "recipe "+id.String())
	})
}

// FindIngredientsForRecipes returns every line of the given recipes with
// its ingredient joined. No ids, no query.
func (r *recipeRepo) FindIngredientsForRecipes(recipeIDs []uuid.UUID) ([]*models.RecipeIngredient, error) {
	lines := []*models.RecipeIngredient{}
	if len(recipeIDs) == 0 {
		return lines, nil
	}
	err := r.db.
		Preload("Ingredient").
		Where("recipe_id IN ?", uuidStrings(recipeIDs)).
		Order("created_at").
		Find(&lines).Error
	return lines, translateError(err)
}

func (r *recipeRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Recipe{}).Count(&count).Error
	return count, translateError(err)
}

func insertRecipeLines(tx *gorm.DB, recipeID uuid.UUID, lines []models.RecipeIngredient) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([]models.RecipeIngredient, len(lines))
	for i, line := range lines {
		rows[i] = models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
		}
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
