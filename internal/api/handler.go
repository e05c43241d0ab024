package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rina-hagihara0844/meal-planner/internal/service"
)

// Handlers содержит зависимости от сервисов
type Handlers struct {
	ingredients *service.IngredientService
	recipes     *service.RecipeService
	meals       *service.MealService
	shopping    *service.ShoppingService
	dashboard   *service.DashboardService
	ping        func() error
	now         func() time.Time
}

func NewHandlers(
	ingredients *service.IngredientService,
	recipes *service.RecipeService,
	meals *service.MealService,
	shopping *service.ShoppingService,
	dashboard *service.DashboardService,
	ping func() error,
) *Handlers {
	return &Handlers{
		ingredients: ingredients,
		recipes:     recipes,
		meals:       meals,
		shopping:    shopping,
		dashboard:   dashboard,
		ping:        ping,
		now:         time.Now,
	}
}

func (h *Handlers) Health(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) Dashboard(c *gin.Context) {
	dash, err := h.dashboard.Today(h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// ---------- Ingredients ----------

func (h *Handlers) ListIngredients(c *gin.Context) {
	list, err := h.ingredients.ListIngredients()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) CreateIngredient(c *gin.Context) {
	var input service.CreateIngredientDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	ingredient, err := h.ingredients.CreateIngredient(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

func (h *Handlers) GetIngredient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ingredient, err := h.ingredients.GetIngredient(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *Handlers) UpdateIngredient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var input service.UpdateIngredientDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	ingredient, err := h.ingredients.UpdateIngredient(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *Handlers) DeleteIngredient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.ingredients.DeleteIngredient(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
