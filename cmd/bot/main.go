package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rina-hagihara0844/meal-planner/internal/bot"
	"github.com/rina-hagihara0844/meal-planner/internal/config"
	"github.com/rina-hagihara0844/meal-planner/internal/database"
	"github.com/rina-hagihara0844/meal-planner/internal/repository"
	"github.com/rina-hagihara0844/meal-planner/internal/service"
	"github.com/rina-hagihara0844/meal-planner/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		utils.Log.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	// -----------------------
	// ENV
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if cfg.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN not set")
	}

	// -----------------------
	// DATABASE
	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			utils.Log.Errorf("close database: %v", err)
		}
	}()

	// -----------------------
	// REPOSITORIES
	ingredientRepo := repository.NewIngredientRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	mealRepo := repository.NewMealRepo(db)
	shoppingRepo := repository.NewShoppingRepo(db)

	// -----------------------
	// SERVICES
	generator := service.NewShoppingListGenerator(mealRepo, recipeRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)
	mealService := service.NewMealService(mealRepo)
	shoppingService := service.NewShoppingService(shoppingRepo, generator)
	dashboardService := service.NewDashboardService(mealRepo, recipeRepo, shoppingRepo)

	// -----------------------
	// BOT
	botApp, err := bot.NewBotApp(cfg.TelegramToken, ingredientService, mealService, shoppingService, dashboardService)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		utils.Log.Info("Stopping bot...")
		botApp.Stop()
	}()

	utils.Log.Info("Telegram bot starting...")
	botApp.Run()
	return nil
}
