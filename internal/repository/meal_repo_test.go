package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/database/dbtest"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return monday.AddDate(0, 0, offset)
}

func TestMealRepoCreateAndFind(t *testing.T) {
	db := dbtest.New(t)
	repo := NewMealRepo(db)
	r1 := mustRecipe(t, db, "curry")
	r2 := mustRecipe(t, db, "salad")

	meal, err := repo.Create(&models.Meal{Date: models.DateOf(monday), MealType: models.MealTypeDinner}, []uuid.UUID{r1.ID, r2.ID})
	require.NoError(t, err)

	got, err := repo.FindByID(meal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MealTypeDinner, got.MealType)
	assert.True(t, got.Day().Equal(monday))
	require.Len(t, got.MealRecipes, 2)
	for _, mr := range got.MealRecipes {
		require.NotNil(t, mr.Recipe)
		assert.Equal(t, mr.RecipeID, mr.Recipe.ID)
	}

	_, err = repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMealRepoFindByDateRange(t *testing.T) {
	db := dbtest.New(t)
	repo := NewMealRepo(db)

	for _, offset := range []int{3, 0, 6, 7, -1} {
		_, err := repo.Create(&models.Meal{Date: models.DateOf(day(offset)), MealType: models.MealTypeLunch}, nil)
		require.NoError(t, err)
	}

	start, end := day(0), day(6)
	meals, err := repo.FindByDateRange(&start, &end)
	require.NoError(t, err)
	require.Len(t, meals, 3, "both bounds are inclusive")
	assert.True(t, meals[0].Day().Equal(day(0)))
	assert.True(t, meals[1].Day().Equal(day(3)))
	assert.True(t, meals[2].Day().Equal(day(6)))

	meals, err = repo.FindByDateRange(&start, nil)
	require.NoError(t, err)
	assert.Len(t, meals, 4)

	meals, err = repo.FindByDateRange(nil, &end)
	require.NoError(t, err)
	assert.Len(t, meals, 4)

	meals, err = repo.FindByDateRange(nil, nil)
	require.NoError(t, err)
	assert.Len(t, meals, 5)

	// a bound carrying a time of day still covers the whole day
	late := day(6).Add(20 * time.Hour)
	meals, err = repo.FindByDateRange(&late, &late)
	require.NoError(t, err)
	assert.Len(t, meals, 1)
}

func TestMealRepoDuplicateSlotsAllowed(t *testing.T) {
	db := dbtest.New(t)
	repo := NewMealRepo(db)

	for i := 0; i < 2; i++ {
		_, err := repo.Create(&models.Meal{Date: models.DateOf(monday), MealType: models.MealTypeBreakfast}, nil)
		require.NoError(t, err)
	}

	meals, err := repo.FindByDateRange(&monday, &monday)
	require.NoError(t, err)
	assert.Len(t, meals, 2)
}

func TestMealRepoReplaceRecipes(t *testing.T) {
	db := dbtest.New(t)
	repo := NewMealRepo(db)
	a := mustRecipe(t, db, "a")
	b := mustRecipe(t, db, "b")
	c := mustRecipe(t, db, "c")

	meal, err := repo.Create(&models.Meal{Date: models.DateOf(monday), MealType: models.MealTypeDinner}, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)

	meal.MealType = models.MealTypeLunch
	require.NoError(t, repo.UpdateWithRecipes(meal, []uuid.UUID{b.ID, c.ID}))

	got, err := repo.FindByID(meal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MealTypeLunch, got.MealType)
	ids := []uuid.UUID{}
	for _, mr := range got.MealRecipes {
		ids = append(ids, mr.RecipeID)
	}
	assert.ElementsMatch(t, []uuid.UUID{b.ID, c.ID}, ids)

	// plain update leaves links alone
	got.Date = models.DateOf(day(1))
	require.NoError(t, repo.Update(got))
	got, err = repo.FindByID(meal.ID)
	require.NoError(t, err)
	assert.True(t, got.Day().Equal(day(1)))
	assert.Len(t, got.MealRecipes, 2)
}

func TestMealRepoDelete(t *testing.T) {
	db := dbtest.New(t)
	repo := NewMealRepo(db)
	r := mustRecipe(t, db, "r")

	meal, err := repo.Create(&models.Meal{Date: models.DateOf(monday), MealType: models.MealTypeDinner}, []uuid.UUID{r.ID})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(meal.ID))
	_, err = repo.FindByID(meal.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var links int64
	require.NoError(t, db.Model(&models.MealRecipe{}).Count(&links).Error)
	assert.Zero(t, links)

	assert.ErrorIs(t, repo.Delete(meal.ID), ErrNotFound)
}
