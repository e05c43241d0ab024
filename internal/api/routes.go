package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes регистрирует все маршруты API
func SetupRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	api.GET("/dashboard", h.Dashboard)

	// Ингредиенты
	ingredients := api.Group("/ingredients")
	ingredients.GET("", h.ListIngredients)
	ingredients.POST("", h.CreateIngredient)
	ingredients.GET("/:id", h.GetIngredient)
	ingredients.PUT("/:id", h.UpdateIngredient)
	ingredients.DELETE("/:id", h.DeleteIngredient)

	// Рецепты
	recipes := api.Group("/recipes")
	recipes.GET("", h.ListRecipes)
	recipes.POST("", h.CreateRecipe)
	recipes.POST("/import", h.ImportRecipe)
	recipes.GET("/:id", h.GetRecipe)
	recipes.PUT("/:id", h.UpdateRecipe)
	recipes.DELETE("/:id", h.DeleteRecipe)
	recipes.POST("/:id/image", h.UploadRecipeImage)

	// Календарь
	meals := api.Group("/meals")
	meals.GET("", h.ListMeals)
	meals.POST("", h.CreateMeal)
	meals.GET("/:id", h.GetMeal)
	meals.PUT("/:id", h.UpdateMeal)
	meals.DELETE("/:id", h.DeleteMeal)

	// Список покупок
	items := api.Group("/shopping-items")
	items.GET("", h.ListShoppingItems)
	items.POST("", h.CreateShoppingItem)
	items.DELETE("/purchased", h.ClearPurchased)
	items.PUT("/:id", h.UpdateShoppingItem)
	items.POST("/:id/toggle", h.ToggleShoppingItem)
	items.DELETE("/:id", h.DeleteShoppingItem)

	list := api.Group("/shopping-list")
	list.GET("/preview", h.PreviewShoppingList)
	list.POST("/generate", h.GenerateShoppingList)
}
