package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rina-hagihara0844/meal-planner/internal/api"
	"github.com/rina-hagihara0844/meal-planner/internal/config"
	"github.com/rina-hagihara0844/meal-planner/internal/database"
	"github.com/rina-hagihara0844/meal-planner/internal/importer"
	"github.com/rina-hagihara0844/meal-planner/internal/repository"
	"github.com/rina-hagihara0844/meal-planner/internal/service"
	"github.com/rina-hagihara0844/meal-planner/internal/storage"
	"github.com/rina-hagihara0844/meal-planner/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		utils.Log.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

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
	var images service.ImageUploader
	if cfg.ImagesEnabled() {
		uploader, err := storage.NewS3Uploader(ctx, cfg.S3Region, cfg.S3Bucket, cfg.CloudFrontURL)
		if err != nil {
			return fmt.Errorf("failed to set up S3: %w", err)
		}
		images = uploader
		utils.Log.Infof("Recipe images go to s3://%s", cfg.S3Bucket)
	} else {
		utils.Log.Info("S3_BUCKET not set, recipe image upload disabled")
	}

	generator := service.NewShoppingListGenerator(mealRepo, recipeRepo)
	handlers := api.NewHandlers(
		service.NewIngredientService(ingredientRepo),
		service.NewRecipeService(recipeRepo, images, importer.New(nil)),
		service.NewMealService(mealRepo),
		service.NewShoppingService(shoppingRepo, generator),
		service.NewDashboardService(mealRepo, recipeRepo, shoppingRepo),
		func() error { return database.Ping(db) },
	)

	// -----------------------
	// HTTP
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())
	api.SetupRoutes(router, handlers)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		utils.Log.Infof("API listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	case <-ctx.Done():
	}
	utils.Log.Info("Shutting down...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}
	return nil
}
