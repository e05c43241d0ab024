package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/rina-hagihara0844/meal-planner/internal/repository"
)

type IngredientService struct {
	repo repository.IngredientRepository
}

func NewIngredientService(repo repository.IngredientRepository) *IngredientService {
	return &IngredientService{repo: repo}
}

// CreateIngredient - создать ингредиент
func (s *IngredientService) CreateIngredient(dto CreateIngredientDTO) (*models.Ingredient, error) {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, invalidf("ingredient name must not be empty")
	}

	ingredient := &models.Ingredient{
		Name:     name,
		Category: dto.Category,
		Unit:     dto.Unit,
	}
	return s.repo.Create(ingredient)
}

// ListIngredients - all ingredients sorted by name
func (s *IngredientService) ListIngredients() ([]*models.Ingredient, error) {
	return s.repo.FindAll()
}

func (s *IngredientService) GetIngredient(id uuid.UUID) (*models.Ingredient, error) {
	return s.repo.FindByID(id)
}

// UpdateIngredient applies the non-nil fields of dto
func (s *IngredientService) UpdateIngredient(id uuid.UUID, dto UpdateIngredientDTO) (*models.Ingredient, error) {
	ingredient, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, invalidf("ingredient name must not be empty")
		}
		ingredient.Name = name
	}
	if dto.Category != nil {
		ingredient.Category = *dto.Category
	}
	if dto.Unit != nil {
		ingredient.Unit = *dto.Unit
	}

	if err := s.repo.Update(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (s *IngredientService) DeleteIngredient(id uuid.UUID) error {
	return s.repo.Delete(id)
}
