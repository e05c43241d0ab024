package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/rina-hagihara0844/meal-planner/internal/repository"
	"github.com/rina-hagihara0844/meal-planner/internal/service"
)

var mealTypeLabels = map[models.MealType]string{
	models.MealTypeBreakfast: "🌅 Breakfast",
	models.MealTypeLunch:     "☀️ Lunch",
	models.MealTypeDinner:    "🌙 Dinner",
}

// formatQuantity drops the fraction when there is none: 150, 0.5
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func recipeNames(meal *models.Meal) string {
	if meal == nil || len(meal.MealRecipes) == 0 {
		return "—"
	}
	names := make([]string, 0, len(meal.MealRecipes))
	for _, link := range meal.MealRecipes {
		if link.Recipe != nil {
			names = append(names, link.Recipe.Name)
		}
	}
	if len(names) == 0 {
		return "—"
	}
	return strings.Join(names, ", ")
}

func formatDay(day time.Time, meals []*models.Meal) string {
	slots := service.MealsForDay(meals, day)
	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s (%s)\n", day.Format(service.DateLayout), day.Weekday().String()[:3])
	for _, t := range models.MealTypes {
		fmt.Fprintf(&b, "%s: %s\n", mealTypeLabels[t], recipeNames(slots[t]))
	}
	return b.String()
}

func formatDashboard(d *service.Dashboard) string {
	var b strings.Builder
	b.WriteString("🍽 Today\n\n")
	for _, t := range models.MealTypes {
		fmt.Fprintf(&b, "%s: %s\n", mealTypeLabels[t], recipeNames(d.TodayMeals[t]))
	}
	fmt.Fprintf(&b, "\n📖 Recipes: %d\n", d.RecipeCount)
	fmt.Fprintf(&b, "🛒 To buy: %d\n", len(d.ShoppingItems))
	return b.String()
}

func formatWeek(start time.Time, meals []*models.Meal) string {
	var b strings.Builder
	b.WriteString("🗓 Next 7 days\n\n")
	for i := 0; i < 7; i++ {
		b.WriteString(formatDay(start.AddDate(0, 0, i), meals))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func itemLabel(item *models.ShoppingItem) string {
	name, unit := "?", ""
	if item.Ingredient != nil {
		name, unit = item.Ingredient.Name, item.Ingredient.Unit
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", name, formatQuantity(item.Quantity), unit))
}

func formatGenerated(lines []service.AggregatedLine, result service.BulkResult) string {
	if len(lines) == 0 {
		return "📭 No meals with recipes in that range, nothing to add."
	}

	failed := make(map[string]bool, len(result.Failed))
	for _, f := range result.Failed {
		failed[f.ID.String()] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Added %d of %d items:\n", len(result.Succeeded), len(lines))
	for _, l := range lines {
		mark := "•"
		if failed[l.IngredientID.String()] {
			mark = "❌"
		}
		fmt.Fprintf(&b, "%s %s %s %s\n", mark, l.Name, formatQuantity(service.RoundUpQuantity(l.Quantity)), l.Unit)
	}
	return strings.TrimRight(b.String(), "\n")
}

// parseGenerateArgs reads "[from [to]]"; missing bounds default to the week
// starting today
func parseGenerateArgs(args string, now time.Time) (time.Time, time.Time, error) {
	start, end := service.WeekRange(now)
	fields := strings.Fields(args)
	if len(fields) > 2 {
		return start, end, errors.New("usage: /generate [YYYY-MM-DD [YYYY-MM-DD]]")
	}
	if len(fields) >= 1 {
		t, err := service.ParseDate(fields[0])
		if err != nil {
			return start, end, err
		}
		start, end = t, t.AddDate(0, 0, 6)
	}
	if len(fields) == 2 {
		t, err := service.ParseDate(fields[1])
		if err != nil {
			return start, end, err
		}
		end = t
	}
	if end.Before(start) {
		return start, end, errors.New("end date is before start date")
	}
	return start, end, nil
}

// userMessage turns an error into a short chat reply
func userMessage(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "🔍 Not found, it may have been deleted."
	case errors.Is(err, repository.ErrConstraintViolation):
		return "⚠️ That conflicts with existing data."
	case errors.Is(err, service.ErrValidation):
		return "❌ " + err.Error()
	case errors.Is(err, repository.ErrTransientIO):
		return "⏳ Storage is unavailable, please try again later."
	}
	return "❌ Something went wrong."
}
