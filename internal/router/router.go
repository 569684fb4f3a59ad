package router

import (
	"log"
	"path/filepath"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/handlers"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/middleware"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/models"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/repositories"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/storage"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/token"
	"github.com/nandymandy1/auth-crud-vue-flutter/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *config.DB, store storage.Store, cfg *config.Config) {
	// AutoMigrate PostgreSQL models; the unique indexes on username and
	// email back up the application-level duplicate checks.
	if err := db.Postgres.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Uploaded images are served statically when stored on local disk.
	if cfg.StorageDriver == "disk" {
		e.Static("/uploads", filepath.Join(cfg.UploadRoot, "uploads"))
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDB))

	tokens := token.NewService(cfg.AppSecret, token.Lifetime)
	authRequired := middleware.JWTAuthMiddleware(tokens, userRepo)

	// --- User routes ---
	usersGroup := e.Group("/api/users")
	authHandler := handlers.NewAuthHandler(userRepo, tokens)
	authHandler.RegisterAuthRoutes(usersGroup)

	userHandler := handlers.NewUserHandler(userRepo)
	usersGroup.GET("/auth-profile", userHandler.GetProfile, authRequired)
	usersGroup.GET("", userHandler.GetUsers)
	log.Println("User routes configured.")

	// --- Post routes ---
	postsGroup := e.Group("/api/posts")
	postHandler := handlers.NewPostHandler(postRepo, userRepo, store)
	postHandler.RegisterPostRoutes(postsGroup, authRequired)
	log.Println("Post routes configured.")

	log.Println("All routes configured.")
}
