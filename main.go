package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/gofiber/fiber/v2"

	"shelfmind_backend/config"
	"shelfmind_backend/handlers"
	"shelfmind_backend/internal/shelf"
	"shelfmind_backend/internal/ws"
	"shelfmind_backend/middleware"
	"shelfmind_backend/utils"
)

func main() {
	cfg := config.LoadConfig()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	registry := shelf.NewRegistry()
	generator := shelf.NewGenerator(
		rand.New(rand.NewSource(time.Now().UnixNano())),
		shelf.DefaultCatalog(),
		shelf.DefaultNearbyStores(),
	)

	app := fiber.New(fiber.Config{
		AppName:      "ShelfMind Backend",
		ServerHeader: "ShelfMind Backend Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app, cfg)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	authHandler := handlers.NewAuthHandler(db)
	scanHandler := handlers.NewScanHandler(registry, hub, generator, cfg.ScanStageDelay)
	taskHandler := handlers.NewTaskHandler(registry, hub)
	sessionHandler := handlers.NewSessionHandler(registry, hub)
	metricsHandler := handlers.NewMetricsHandler(registry)
	wsHandler := handlers.NewWSHandler(hub)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/roles", authHandler.Roles)
	auth.Get("/validate", utils.AuthMiddleware, authHandler.Validate)

	protected := api.Group("", utils.AuthMiddleware)
	protected.Post("/scans", scanHandler.CreateScan)
	protected.Get("/sessions", sessionHandler.GetSessions)
	protected.Get("/sessions/:id", sessionHandler.GetSession)
	protected.Delete("/sessions/:id", sessionHandler.DeleteSession)
	protected.Get("/tasks", taskHandler.GetTasks)
	protected.Get("/tasks/:id", taskHandler.GetTask)
	protected.Patch("/tasks/:id/status", taskHandler.UpdateTaskStatus)
	protected.Patch("/tasks/:id/priority", taskHandler.UpdateTaskPriority)
	protected.Get("/metrics", utils.RequireRole("manager"), metricsHandler.GetMetrics)

	app.Use("/ws", wsHandler.Upgrade)
	app.Get("/ws/dashboard", wsHandler.Dashboard())

	middleware.SetupErrorHandler(app)

	log.Printf("🚀 Server starting on host %s in port %s mode", cfg.HOST, cfg.AppPort)

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
