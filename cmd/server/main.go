package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"northshore/server/config"
	"northshore/server/internal/api"
	"northshore/server/internal/database"
	"northshore/server/internal/geometry"
	"northshore/server/internal/identity"
	"northshore/server/internal/media"
	"northshore/server/internal/processor"
	"northshore/server/internal/property"
	"northshore/server/internal/queue"
	"northshore/server/internal/scheduler"
	"northshore/server/internal/search"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Local development reads a .env file; deployments set real env vars
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	store, err := database.NewStore(
		database.Options{Driver: cfg.CRM.Driver, DSN: cfg.CRM.DSN},
		database.Options{Driver: cfg.MLS.Driver, DSN: cfg.MLS.DSN},
		logger,
	)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open stores")
	}
	defer store.Close()

	logger.Info("Running database migrations...")
	if err := store.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	aggregator := media.NewAggregator(store, logger)

	// Hero image cache resync pipeline
	refreshQueue := queue.NewRefreshQueue(cfg.HeroCache.QueueSize, logger)
	heroProcessor := processor.NewHeroCacheProcessor(store, aggregator, refreshQueue, cfg, logger)
	heroScheduler := scheduler.NewScheduler(store, refreshQueue, cfg, logger)

	heroProcessor.Start()
	refreshQueue.Start()
	heroScheduler.Start()
	defer func() {
		heroScheduler.Stop()
		refreshQueue.Close()
		heroProcessor.Stop()
	}()

	// Request-path services
	engine := search.NewEngine(store, aggregator, cfg, logger)
	resolver := identity.NewResolver(store, logger)
	properties := property.NewService(store, resolver, logger)
	mapService := geometry.NewMapService(store, logger)

	handler := api.NewHandler(store, engine, properties, mapService, heroScheduler, logger)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
