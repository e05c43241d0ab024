package service

import (
	"time"

	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/rina-hagihara0844/meal-planner/internal/repository"
)

// upcomingDays - the dashboard shows today and the next week
const upcomingDays = 7

// Dashboard - what the home screen shows
type Dashboard struct {
	Date          string                           `json:"date"`
	TodayMeals    map[models.MealType]*models.Meal `json:"today_meals"`
	UpcomingMeals []*models.Meal                   `json:"upcoming_meals"`
	RecipeCount   int64                            `json:"recipe_count"`
	ShoppingItems []*models.ShoppingItem           `json:"shopping_items"`
}

type DashboardService struct {
	meals    repository.MealRepository
	recipes  repository.RecipeRepository
	shopping repository.ShoppingRepository
}

func NewDashboardService(meals repository.MealRepository, recipes repository.RecipeRepository, shopping repository.ShoppingRepository) *DashboardService {
	return &DashboardService{meals: meals, recipes: recipes, shopping: shopping}
}

// Today builds the dashboard for the calendar day of now
func (s *DashboardService) Today(now time.Time) (*Dashboard, error) {
	today := time.Time(models.DateOf(now))
	until := today.AddDate(0, 0, upcomingDays)

	upcoming, err := s.meals.FindByDateRange(&today, &until)
	if err != nil {
		return nil, err
	}
	count, err := s.recipes.Count()
	if err != nil {
		return nil, err
	}
	unpurchased := false
	items, err := s.shopping.FindAll(&unpurchased)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Date:          today.Format(DateLayout),
		TodayMeals:    MealsForDay(upcoming, today),
		UpcomingMeals: upcoming,
		RecipeCount:   count,
		ShoppingItems: items,
	}, nil
}

// MealsForDay picks the first meal per slot on day; later duplicates of
// the same slot are ignored
func MealsForDay(meals []*models.Meal, day time.Time) map[models.MealType]*models.Meal {
	want := time.Time(models.DateOf(day))
	slots := make(map[models.MealType]*models.Meal, len(models.MealTypes))
	for _, meal := range meals {
		if !meal.Day().Equal(want) {
			continue
		}
		if _, taken := slots[meal.MealType]; !taken {
			slots[meal.MealType] = meal
		}
	}
	return slots
}
