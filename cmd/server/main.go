package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/contrib-fyi/server/internal/config"
	"github.com/contrib-fyi/server/internal/database"
	"github.com/contrib-fyi/server/internal/github"
	"github.com/contrib-fyi/server/internal/handler"
	"github.com/contrib-fyi/server/internal/middleware"
	"github.com/contrib-fyi/server/internal/repository"
	"github.com/contrib-fyi/server/internal/service"
)

// main is the single entry‑point for the REST API.
func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded:")
	log.Printf("  - Database: %s", cfg.DBName)
	log.Printf("  - Star filter: %d attempts, target %d",
		cfg.StarFilterMaxAttempts, cfg.StarFilterTargetCount)

	// Connect to MongoDB (picks, history, saved filters)
	client, ctx, cancel, err := database.NewMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer cancel()
	defer client.Disconnect(ctx)
	log.Printf("Connected to MongoDB")

	db := client.Database(cfg.DBName)

	// Initialize repositories
	pickRepo := repository.NewPickRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	filterRepo := repository.NewFilterRepository(db)

	// Initialize the GitHub collaborators and the search core
	ghClient := github.NewClient()
	gqlClient := github.NewGraphQLClient()
	repoCache := service.NewRepoCache(ghClient)
	fetcher := service.NewRawIssueFetcher(ghClient)
	runner := service.NewSearchRunner(fetcher, repoCache, gqlClient, service.SearchConfig{
		StarFilterMaxAttempts: cfg.StarFilterMaxAttempts,
		StarFilterTargetCount: cfg.StarFilterTargetCount,
	})

	// Initialize services
	pickSvc := service.NewPickService(pickRepo)
	historySvc := service.NewHistoryService(historyRepo)
	filterSvc := service.NewFilterService(filterRepo)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Add middleware
	app.Use(middleware.Logging())

	// Register routes
	handler.RegisterRoutes(app, runner, repoCache, cfg.GitHubToken, pickSvc, historySvc, filterSvc)

	// Add health check
	handler.NewHealthHandler(client).Register(app)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
