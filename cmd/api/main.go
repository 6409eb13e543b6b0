package main

import (
	"fmt"
	"net/http"
	"os"

	"clubhub/internal/config"
	"clubhub/internal/database"
	"clubhub/internal/handlers"
	"clubhub/internal/logger"
	"clubhub/internal/middleware"
	"clubhub/internal/services"
	"clubhub/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "clubhub/internal/docs" // Import swagger docs
)

// @title           ClubHub Admin API
// @version         1.0
// @description     ClubHub is the admin backend of the club website: posts, hierarchical categories, tags, departments, media, and events.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	categoryService := services.NewCategoryService(db)
	postService := services.NewPostService(db)
	tagService := services.NewTagService(db)
	departmentService := services.NewDepartmentService(db)
	mediaService := services.NewMediaService(db)
	eventService := services.NewEventService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	postHandler := handlers.NewPostHandler(postService, auditService)
	tagHandler := handlers.NewTagHandler(tagService, auditService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService, auditService)
	mediaHandler := handlers.NewMediaHandler(mediaService, auditService)
	eventHandler := handlers.NewEventHandler(eventService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Public slug lookups for the website frontend
	v1.GET("/categories/slug/*path", categoryHandler.GetCategoryBySlug)
	v1.GET("/posts/slug/:slug", postHandler.GetPostBySlug)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/tree", categoryHandler.GetCategoryTree)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Post routes
	posts := protected.Group("/posts")
	posts.POST("", postHandler.CreatePost)
	posts.GET("", postHandler.ListPosts)
	posts.GET("/:id", postHandler.GetPostByID)
	posts.PUT("/:id", postHandler.UpdatePost)
	posts.DELETE("/:id", postHandler.DeletePost)

	// Tag routes
	tags := protected.Group("/tags")
	tags.POST("", tagHandler.CreateTag)
	tags.GET("", tagHandler.ListTags)
	tags.GET("/:id", tagHandler.GetTagByID)
	tags.PUT("/:id", tagHandler.UpdateTag)
	tags.DELETE("/:id", tagHandler.DeleteTag)

	// Department and contact person routes
	departments := protected.Group("/departments")
	departments.POST("", departmentHandler.CreateDepartment)
	departments.GET("", departmentHandler.ListDepartments)
	departments.GET("/:id", departmentHandler.GetDepartmentByID)
	departments.PUT("/:id", departmentHandler.UpdateDepartment)
	departments.DELETE("/:id", departmentHandler.DeleteDepartment)
	departments.POST("/:id/contacts", departmentHandler.CreateContactPerson)
	departments.GET("/:id/contacts", departmentHandler.ListContactPersons)

	contacts := protected.Group("/contacts")
	contacts.PUT("/:id", departmentHandler.UpdateContactPerson)
	contacts.DELETE("/:id", departmentHandler.DeleteContactPerson)

	// Media routes
	media := protected.Group("/media")
	media.POST("", mediaHandler.CreateMedia)
	media.GET("", mediaHandler.ListMedia)
	media.GET("/:id", mediaHandler.GetMediaByID)
	media.PUT("/:id", mediaHandler.UpdateMedia)
	media.DELETE("/:id", mediaHandler.DeleteMedia)

	// Event routes
	events := protected.Group("/events")
	events.POST("", eventHandler.CreateEvent)
	events.GET("", eventHandler.ListEvents)
	events.GET("/:id", eventHandler.GetEventByID)
	events.PUT("/:id", eventHandler.UpdateEvent)
	events.DELETE("/:id", eventHandler.DeleteEvent)

	log.Infof("Starting ClubHub backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
