package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/osi-labs/shramsaathi-api/config"
	"github.com/osi-labs/shramsaathi-api/controllers"
	"github.com/osi-labs/shramsaathi-api/middleware"
	"github.com/osi-labs/shramsaathi-api/models"
	"github.com/osi-labs/shramsaathi-api/realtime"
	"github.com/osi-labs/shramsaathi-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting ShramSaathi API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Owner{},
		&models.Job{},
		&models.JobApplication{},
		&models.ChatMessage{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Wire the geocoder used for job address resolution
	geocoder, err := services.NewGeocodeService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize geocoder: %v", err)
	}
	services.SetGeocoder(geocoder)

	// Realtime hub for chat and location fan-out
	hub := realtime.NewHub()
	controllers.SetChatHub(hub)

	router := setupRouter(cfg, hub)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all REST and websocket routes
func setupRouter(cfg *config.Config, hub *realtime.Hub) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")
	{
		// Health check endpoint
		api.GET("/health", healthCheck)

		// Database status endpoint
		api.GET("/database/status", databaseStatus)

		// Workers
		api.POST("/users", controllers.RegisterUser)
		api.GET("/users", controllers.ListUsers)
		api.GET("/users/:id", controllers.GetUser)

		// Owners
		api.POST("/owners", controllers.RegisterOwner)
		api.GET("/owners", controllers.ListOwners)

		// Jobs
		api.POST("/jobs", controllers.CreateJob)
		api.GET("/jobs", controllers.ListJobs)
		api.GET("/jobs/search", controllers.SearchJobs)
		api.GET("/jobs/owner/:ownerId", controllers.ListJobsByOwner)
		api.GET("/jobs/:id", controllers.GetJob)
		api.PUT("/jobs/:id", controllers.UpdateJob)
		api.DELETE("/jobs/:id", controllers.DeleteJob)

		// Applications
		api.POST("/applications", controllers.ApplyForJob)
		api.GET("/applications/job/:jobId", controllers.ListApplicationsByJob)
		api.GET("/applications/worker/:workerId", controllers.ListApplicationsByWorker)
		api.PUT("/applications/:id/status", controllers.UpdateApplicationStatus)

		// Analytics
		api.GET("/analytics/owner/:ownerId/application-counts", controllers.GetOwnerApplicationCounts)
		api.GET("/analytics/worker/:workerId/summary", controllers.GetWorkerSummary)

		// Chat history
		api.POST("/chat", controllers.SendChatMessage)
		api.GET("/chat/:applicationId", controllers.ListChatMessages)
		api.PUT("/chat/:id/read", controllers.MarkChatMessageRead)
	}

	// Realtime relays
	ws := router.Group("/ws")
	{
		ws.GET("/chat/:applicationId", realtime.ServeChat(hub))
		ws.GET("/location/:workerId", realtime.ServeLocation(hub))
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ShramSaathi API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	tables, err := db.Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
