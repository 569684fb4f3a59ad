package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/router"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/storage"
	"github.com/nandymandy1/auth-crud-vue-flutter/pkg/config"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize attachment storage
	store, err := initStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db, store, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func initStorage(cfg *config.Config) (storage.Store, error) {
	if cfg.StorageDriver == "minio" {
		return storage.NewMinioStore(context.Background(), storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	}
	return storage.NewDiskStore(cfg.UploadRoot), nil
}
