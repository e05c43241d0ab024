package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rina-hagihara0844/meal-planner/internal/service"
)

// ListMeals - ?start=YYYY-MM-DD&end=YYYY-MM-DD, both optional and inclusive
func (h *Handlers) ListMeals(c *gin.Context) {
	start, end, err := service.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, err)
		return
	}
	meals, err := h.meals.ListMeals(start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *Handlers) CreateMeal(c *gin.Context) {
	var input service.CreateMealDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	meal, err := h.meals.CreateMeal(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *Handlers) GetMeal(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	meal, err := h.meals.GetMeal(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *Handlers) UpdateMeal(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var input service.UpdateMealDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	meal, err := h.meals.UpdateMeal(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *Handlers) DeleteMeal(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.meals.DeleteMeal(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
