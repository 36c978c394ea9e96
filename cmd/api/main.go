package main

import (
	"context"
	"invoicing-backend/internal/cache"
	"invoicing-backend/internal/database"
	"invoicing-backend/internal/handler"
	"invoicing-backend/internal/logger"
	"invoicing-backend/internal/middleware"
	"invoicing-backend/internal/repository"
	"invoicing-backend/internal/service"
	"invoicing-backend/internal/websocket"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Invoicing Backend API
// @version         1.0
// @description     Multi-tenant sale order, stock and invoicing API.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	zlog, err := logger.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("Logger init failed: %v", err)
	}
	defer zlog.Sync()

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
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	zlog.Info("connected to postgres", zap.String("host", dbHost), zap.String("db", dbName))

	redisCache := cache.New(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"))
	if redisCache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			zlog.Warn("redis unreachable, running without cache", zap.Error(err))
			redisCache = nil
		}
		cancel()
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleOrderRepo := repository.NewSaleOrderRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	middleware.InitAuthMiddleware(userRepo, redisCache)

	userService := service.NewUserService(userRepo, redisCache, middleware.GetJWTSecret())
	companyService := service.NewCompanyService(companyRepo)
	categoryService := service.NewCategoryService(categoryRepo, companyRepo)
	productService := service.NewProductService(productRepo, categoryRepo, redisCache, wsHub)
	invoiceService := service.NewInvoiceService(invoiceRepo)
	saleOrderService := service.NewSaleOrderService(
		saleOrderRepo,
		productRepo,
		companyRepo,
		sequenceRepo,
		invoiceService,
		txManager,
		wsHub,
		zlog,
	)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	companyHandler := handler.NewCompanyHandler(companyService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	saleOrderHandler := handler.NewSaleOrderHandler(saleOrderService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)

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
	companyHandler.RegisterRoutes(router.Group(""))
	categoryHandler.RegisterRoutes(router.Group(""))
	productHandler.RegisterRoutes(router.Group(""))
	saleOrderHandler.RegisterRoutes(router.Group(""))
	invoiceHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	zlog.Info("server listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}
