package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/rina-hagihara0844/meal-planner/internal/repository"
)

// DateLayout is the calendar date format used by every surface
const DateLayout = "2006-01-02"

type MealService struct {
	repo repository.MealRepository
}

func NewMealService(repo repository.MealRepository) *MealService {
	return &MealService{repo: repo}
}

// ParseDate - "YYYY-MM-DD" в UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalidf("date %q must be YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseDateRange parses optional bounds; an empty string is an open bound
func ParseDateRange(start, end string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if start != "" {
		t, err := ParseDate(start)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if end != "" {
		t, err := ParseDate(end)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, invalidf("end date %s is before start date %s", end, start)
	}
	return from, to, nil
}

// CreateMeal - запланировать приём пищи
func (s *MealService) CreateMeal(dto CreateMealDTO) (*models.Meal, error) {
	date, err := ParseDate(dto.Date)
	if err != nil {
		return nil, err
	}
	if !dto.MealType.Valid() {
		return nil, invalidf("meal type %q must be breakfast, lunch or dinner", dto.MealType)
	}
	if err := checkRecipeIDs(dto.RecipeIDs); err != nil {
		return nil, err
	}

	meal := &models.Meal{
		Date:     models.DateOf(date),
		MealType: dto.MealType,
	}
	if _, err := s.repo.Create(meal, dto.RecipeIDs); err != nil {
		return nil, err
	}
	return s.repo.FindByID(meal.ID)
}

// ListMeals - inclusive range, nil bound is open
func (s *MealService) ListMeals(start, end *time.Time) ([]*models.Meal, error) {
	return s.repo.FindByDateRange(start, end)
}

func (s *MealService) GetMeal(id uuid.UUID) (*models.Meal, error) {
	return s.repo.FindByID(id)
}

// UpdateMeal - RecipeIDs != nil replaces every link of the meal
func (s *MealService) UpdateMeal(id uuid.UUID, dto UpdateMealDTO) (*models.Meal, error) {
	meal, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Date != nil {
		date, err := ParseDate(*dto.Date)
		if err != nil {
			return nil, err
		}
		meal.Date = models.DateOf(date)
	}
	if dto.MealType != nil {
		if !dto.MealType.Valid() {
			return nil, invalidf("meal type %q must be breakfast, lunch or dinner", *dto.MealType)
		}
		meal.MealType = *dto.MealType
	}

	if dto.RecipeIDs == nil {
		err = s.repo.Update(meal)
	} else {
		if err := checkRecipeIDs(*dto.RecipeIDs); err != nil {
			return nil, err
		}
		err = s.repo.UpdateWithRecipes(meal, *dto.RecipeIDs)
	}
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

func (s *MealService) DeleteMeal(id uuid.UUID) error {
	return s.repo.Delete(id)
}

func checkRecipeIDs(ids []uuid.UUID) error {
	for i, id := range ids {
		if id == uuid.Nil {
			return invalidf("recipe %d has no id", i+1)
		}
	}
	return nil
}
