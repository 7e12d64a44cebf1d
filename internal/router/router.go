package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/linkmini/backend/internal/handlers"
	"github.com/linkmini/backend/internal/middleware"
	"github.com/linkmini/backend/internal/models"
	"github.com/linkmini/backend/internal/repositories"
	"github.com/linkmini/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "LinkMini API is running"})
	})

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDB))

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, userRepo))

	// Profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api.Group("/profile"))
	api.GET("/user/search", userHandler.SearchUsers)
	log.Println("Profile routes configured.")

	// Post routes (feed, CRUD, likes, comments)
	postGroup := api.Group("/post")
	postHandler := handlers.NewPostHandler(postRepo, userRepo)
	likeHandler := handlers.NewLikeHandler(postRepo)
	commentHandler := handlers.NewCommentHandler(postRepo, userRepo)
	likeHandler.RegisterLikeRoutes(postGroup)
	commentHandler.RegisterCommentRoutes(postGroup)
	postHandler.RegisterPostRoutes(postGroup)
	log.Println("Post routes configured.")

	log.Println("All routes configured.")
}
