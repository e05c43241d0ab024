package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/importer"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/rina-hagihara0844/meal-planner/internal/repository"
	"github.com/rina-hagihara0844/meal-planner/internal/storage"
)

// ErrImagesDisabled is returned when no image bucket is configured
var ErrImagesDisabled = errors.New("recipe images are not configured")

// ImageUploader stores an object and returns its public URL
type ImageUploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// RecipePageImporter builds a draft from a recipe web page
type RecipePageImporter interface {
	Import(ctx context.Context, pageURL string) (*importer.RecipeDraft, error)
}

type RecipeService struct {
	repo     repository.RecipeRepository
	images   ImageUploader
	importer RecipePageImporter
	now      func() time.Time
}

// NewRecipeService - images and pages may be nil when those features are off
func NewRecipeService(repo repository.RecipeRepository, images ImageUploader, pages RecipePageImporter) *RecipeService {
	return &RecipeService{
		repo:     repo,
		images:   images,
		importer: pages,
		now:      time.Now,
	}
}

func (s *RecipeService) CreateRecipe(dto CreateRecipeDTO) (*models.Recipe, error) {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, invalidf("recipe name must not be empty")
	}
	if dto.ServingSize < 0 {
		return nil, invalidf("serving size must not be negative")
	}
	lines, err := recipeLines(dto.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Name:            name,
		Description:     dto.Description,
		Category:        dto.Category,
		ServingSize:     dto.ServingSize,
		Instructions:    dto.Instructions,
		CountryOfOrigin: dto.CountryOfOrigin,
		ImageURL:        dto.ImageURL,
	}
	if _, err := s.repo.Create(recipe, lines); err != nil {
		return nil, err
	}
	return s.repo.FindByID(recipe.ID)
}

// ListRecipes - sorted by name, without ingredient lines
func (s *RecipeService) ListRecipes() ([]*models.Recipe, error) {
	return s.repo.FindAll()
}

// GetRecipe - recipe with every line and its ingredient
func (s *RecipeService) GetRecipe(id uuid.UUID) (*models.Recipe, error) {
	return s.repo.FindByID(id)
}

// UpdateRecipe applies the non-nil fields; a non-nil Ingredients replaces
// the whole line set in the same transaction
func (s *RecipeService) UpdateRecipe(id uuid.UUID, dto UpdateRecipeDTO) (*models.Recipe, error) {
	recipe, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, invalidf("recipe name must not be empty")
		}
		recipe.Name = name
	}
	if dto.Description != nil {
		recipe.Description = *dto.Description
	}
	if dto.Category != nil {
		recipe.Category = *dto.Category
	}
	if dto.ServingSize != nil {
		if *dto.ServingSize < 0 {
			return nil, invalidf("serving size must not be negative")
		}
		recipe.ServingSize = *dto.ServingSize
	}
	if dto.Instructions != nil {
		recipe.Instructions = *dto.Instructions
	}
	if dto.CountryOfOrigin != nil {
		recipe.CountryOfOrigin = emptyToNil(*dto.CountryOfOrigin)
	}
	if dto.ImageURL != nil {
		recipe.ImageURL = emptyToNil(*dto.ImageURL)
	}

	if dto.Ingredients == nil {
		err = s.repo.Update(recipe)
	} else {
		var lines []models.RecipeIngredient
		if lines, err = recipeLines(*dto.Ingredients); err != nil {
			return nil, err
		}
		err = s.repo.UpdateWithIngredients(recipe, lines)
	}
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

func (s *RecipeService) DeleteRecipe(id uuid.UUID) error {
	return s.repo.Delete(id)
}

func (s *RecipeService) CountRecipes() (int64, error) {
	return s.repo.Count()
}

// AttachImage uploads a data-URL image and points the recipe at it
func (s *RecipeService) AttachImage(ctx context.Context, id uuid.UUID, dataURL string) (*models.Recipe, error) {
	if s.images == nil {
		return nil, ErrImagesDisabled
	}

	img, err := storage.DecodeDataURL(dataURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	recipe, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("recipe-images/%s-%d%s", recipe.ID, s.now().UnixNano(), img.Ext)
	url, err := s.images.Upload(ctx, key, img.Data, img.ContentType)
	if err != nil {
		return nil, err
	}

	recipe.ImageURL = &url
	if err := s.repo.Update(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// ImportDraft reads a recipe page; nothing is saved
func (s *RecipeService) ImportDraft(ctx context.Context, pageURL string) (*importer.RecipeDraft, error) {
	if s.importer == nil {
		return nil, invalidf("recipe import is disabled")
	}
	if strings.TrimSpace(pageURL) == "" {
		return nil, invalidf("url must not be empty")
	}
	return s.importer.Import(ctx, pageURL)
}

func recipeLines(dtos []RecipeIngredientDTO) ([]models.RecipeIngredient, error) {
	lines := make([]models.RecipeIngredient, 0, len(dtos))
	for i, dto := range dtos {
		if dto.IngredientID == uuid.Nil {
			return nil, invalidf("ingredient line %d has no ingredient", i+1)
		}
		if !ValidQuantity(dto.Quantity) {
			return nil, invalidf("ingredient line %d: quantity must be greater than 0 and at most %g", i+1, MaxQuantity)
		}
		lines = append(lines, models.RecipeIngredient{
			IngredientID: dto.IngredientID,
			Quantity:     dto.Quantity,
			Unit:         strings.TrimSpace(dto.Unit),
		})
	}
	return lines, nil
}

func emptyToNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
