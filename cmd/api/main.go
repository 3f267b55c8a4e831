package main

import (
	"log"
	"os"

	"garage/internal/database"
	"garage/internal/handler"
	"garage/internal/middleware"
	"garage/internal/repository"
	"garage/internal/service"
	"garage/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Garage Management API
// @version         1.0
// @description     Backend for a vehicle service shop: supplies, car services, inventory reconciliation and settlement.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "garage"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	supplyRepo := repository.NewSupplyRepository(db)
	carServiceRepo := repository.NewCarServiceRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	serviceInfoRepo := repository.NewServiceInfoRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo, auditRepo, txManager)
	supplierService := service.NewSupplierService(supplierRepo)
	supplyService := service.NewSupplyService(supplyRepo, auditRepo, txManager)
	carServiceService := service.NewCarServiceService(carServiceRepo, auditRepo, txManager)
	inventoryService := service.NewInventoryService(supplyRepo, carServiceRepo, auditRepo, txManager, wsHub)
	expenseService := service.NewExpenseService(expenseRepo, auditRepo, txManager)
	serviceInfoService := service.NewServiceInfoService(serviceInfoRepo)
	settingsService := service.NewSettingsService(settingsRepo, auditRepo, txManager)
	summaryService := service.NewSummaryService(summaryRepo)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	supplyHandler := handler.NewSupplyHandler(supplyService)
	carServiceHandler := handler.NewCarServiceHandler(carServiceService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	serviceInfoHandler := handler.NewServiceInfoHandler(serviceInfoService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	summaryHandler := handler.NewSummaryHandler(summaryService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	supplierHandler.RegisterRoutes(router.Group(""))
	supplyHandler.RegisterRoutes(router.Group(""))
	carServiceHandler.RegisterRoutes(router.Group(""))
	inventoryHandler.RegisterRoutes(router.Group(""))
	expenseHandler.RegisterRoutes(router.Group(""))
	serviceInfoHandler.RegisterRoutes(router.Group(""))
	settingsHandler.RegisterRoutes(router.Group(""))
	summaryHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
