package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rina-hagihara0844/meal-planner/internal/service"
	"github.com/rina-hagihara0844/meal-planner/pkg/utils"
)

type imageUpload struct {
	Image string `json:"image" binding:"required"` // data:image/...;base64,...
}

type importRequest struct {
	URL string `json:"url" binding:"required"`
}

func (h *Handlers) ListRecipes(c *gin.Context) {
	list, err := h.recipes.ListRecipes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) CreateRecipe(c *gin.Context) {
	var input service.CreateRecipeDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	recipe, err := h.recipes.CreateRecipe(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *Handlers) GetRecipe(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *Handlers) UpdateRecipe(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var input service.UpdateRecipeDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	recipe, err := h.recipes.UpdateRecipe(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *Handlers) DeleteRecipe(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) UploadRecipeImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var input imageUpload
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	recipe, err := h.recipes.AttachImage(c.Request.Context(), id, input.Image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// ImportRecipe returns a draft; the client saves it with POST /api/recipes
func (h *Handlers) ImportRecipe(c *gin.Context) {
	var input importRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := h.recipes.ImportDraft(c.Request.Context(), input.URL)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			utils.Log.Warnf("recipe import from %s failed: %v", input.URL, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch the recipe page"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}
