package router

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/najino/Cooko-application-api/config"
	"github.com/najino/Cooko-application-api/internal/api"
	"github.com/najino/Cooko-application-api/internal/middleware"
	"github.com/najino/Cooko-application-api/internal/service"
)

// SetupRouter wires all services and handlers into a Gin engine.
func SetupRouter(db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	categoryService := service.NewCategoryService(db)
	ingredientService := service.NewIngredientService(db)
	recipeService := service.NewRecipeService(db, categoryService, ingredientService)
	uploadService := service.NewUploadService(s3Config)

	if redisClient == nil {
		log.Println("[Router] Redis unavailable, upload rate limiting disabled")
	}
	uploadLimiter := middleware.NewUploadRateLimiter(redisClient)

	router.GET("/health", api.HealthCheck)

	root := router.Group("")
	api.NewCategoryHandler(categoryService, ingredientService).RegisterRoutes(root)
	api.NewIngredientHandler(ingredientService).RegisterRoutes(root)
	api.NewRecipeHandler(recipeService).RegisterRoutes(root)
	api.NewUploadHandler(uploadService).RegisterRoutes(root, uploadLimiter.Middleware())

	return router
}
