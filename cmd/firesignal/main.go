package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/piciu1221/firesignal/db"
	"github.com/piciu1221/firesignal/internal/auth"
	"github.com/piciu1221/firesignal/internal/cache"
	"github.com/piciu1221/firesignal/internal/config"
	"github.com/piciu1221/firesignal/internal/dispatch"
	"github.com/piciu1221/firesignal/internal/notifier"
	"github.com/piciu1221/firesignal/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	responseCache := cache.New(cfg.RedisAddr)
	if responseCache == nil {
		log.Println("Redis not configured, response caching disabled")
	}

	// One registry per process: the dispatch path and the subscription
	// endpoints must see the same channels.
	registry := notifier.NewRegistry()
	dispatcher := dispatch.NewDispatcher(dispatch.NewStore(db.DB), registry)

	r := router.NewRouter(router.Dependencies{
		Registry:   registry,
		Dispatcher: dispatcher,
		Cache:      responseCache,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
