package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/clothcycle/clothcycle-api/internal/config"
	"github.com/clothcycle/clothcycle-api/internal/database"
	"github.com/clothcycle/clothcycle-api/internal/handlers"
	"github.com/clothcycle/clothcycle-api/internal/middleware"
	"github.com/clothcycle/clothcycle-api/internal/security"
	"github.com/clothcycle/clothcycle-api/internal/services"
	"github.com/clothcycle/clothcycle-api/internal/types"

	_ "github.com/clothcycle/clothcycle-api/docs/api" // Swagger docs
)

// @title ClothCycle API
// @version 1.0.0
// @description Donation tracking backend: bins, scans, points, badges and leaderboard

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:5001
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations and seed reference data
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}

	// Auth building blocks
	hasher := security.NewPasswordHasher()
	tokens := security.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("clothcycle")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Root banner, kept from the original backend
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ClothCycle backend running")
	})

	// Bin QR images
	app.Static("/qr", cfg.QRDir)

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Hasher: hasher, Tokens: tokens}
	binHandler := &handlers.BinHandler{DB: db}
	scanHandler := &handlers.ScanHandler{DB: db, Policy: services.RewardPolicy{
		PointsPerItem: cfg.PointsPerItem,
		CO2Factor:     cfg.CO2Factor,
	}}
	userHandler := &handlers.UserHandler{DB: db}
	leaderboardHandler := &handlers.LeaderboardHandler{DB: db}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	app.Get("/health", healthHandler.Health)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)

	api.Get("/bins", binHandler.ListBins)
	api.Get("/bins/code/:binCode", binHandler.GetBinByCode)
	// Legacy fallback route the original backend also served
	api.Get("/bins/:binCode", binHandler.GetBinByCode)

	api.Post("/scan", middleware.Auth(tokens), scanHandler.Scan)

	api.Get("/leaderboard", leaderboardHandler.List)
	api.Get("/leaderboard/impact", leaderboardHandler.Impact)

	api.Get("/user/:id", middleware.Auth(tokens), userHandler.GetUser)
	api.Put("/user/:id/update", middleware.Auth(tokens), userHandler.UpdateUser)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resource not found",
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler maps errors that escape the handlers onto the
// {"error": message} envelope
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Server error"

	switch e := err.(type) {
	case *types.CustomError:
		code = e.Code
		message = e.Message
	case *fiber.Error:
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
