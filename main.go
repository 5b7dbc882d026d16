package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/virtualflux/mht-backend/database"
	"github.com/virtualflux/mht-backend/internal/config"
	"github.com/virtualflux/mht-backend/internal/handlers"
	"github.com/virtualflux/mht-backend/internal/jobs"
	"github.com/virtualflux/mht-backend/internal/models"
	"github.com/virtualflux/mht-backend/internal/routes"
	"github.com/virtualflux/mht-backend/internal/services"
	"github.com/virtualflux/mht-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(".env"); err != nil {
		if err := godotenv.Load("environments/.env.development"); err != nil {
			log.Println("⚠️  No .env file found - checking environment variables")
		}
	}

	cfg := config.Load()

	if cfg.GoogleMapsAPIKey == "" {
		log.Println("⚠️  GOOGLE_MAPS_API_KEY not found - location services will not work")
	}

	// Initialize storage
	var store storage.Store

	if cfg.UseMemoryStore {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect(cfg)

		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.User{},
			&models.Otp{},
			&models.Visit{},
			&models.EmergencyContact{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}
	storage.SetStore(store)

	// Initialize mailer
	mailer, err := services.NewSESMailer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize mailer:", err)
	}
	log.Println("✅ Mailer initialized")

	// Optional SMS channel for reminders
	var smsService *services.SMSService
	if smsService, err = services.NewSMSService(cfg); err != nil {
		log.Println("⚠️  Twilio not configured - SMS reminders disabled")
		smsService = nil
	}

	// Initialize all services
	otpService := services.NewOTPService(store, mailer)
	authService := services.NewAuthService(store, otpService)
	visitService := services.NewVisitService(store)
	contactService := services.NewContactService(store)

	var locationService *services.LocationService
	if cfg.GoogleMapsAPIKey != "" {
		locationService = services.NewLocationService(services.NewGooglePlacesClient(cfg.GoogleMapsAPIKey))
	} else {
		locationService = services.NewLocationService(nil)
	}

	// Seed the emergency-contact directory
	if err := contactService.Seed(); err != nil {
		log.Printf("⚠️  Failed to seed emergency contacts: %v", err)
	}

	// Start the daily reminder digest
	reminderJob := jobs.NewReminderJob(store, mailer, smsService, cfg.ReminderEmail, cfg.ReminderPhone)
	reminderJob.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "Maternal Health Tracker API v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
				"data":    nil,
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))

	// Root endpoint with database status
	app.Get("/", func(c *fiber.Ctx) error {
		response := fiber.Map{
			"service": "Maternal Health Tracker API",
			"version": "1.0.0",
			"status":  "healthy",
			"location": fiber.Map{
				"configured": cfg.GoogleMapsAPIKey != "",
			},
		}

		if !cfg.UseMemoryStore && database.DB != nil {
			sqlDB, err := database.DB.DB()
			dbStatus := "connected"
			if err != nil {
				dbStatus = "error: " + err.Error()
			} else if err := sqlDB.Ping(); err != nil {
				dbStatus = "error: " + err.Error()
			}

			userCount, _ := store.CountUsers()
			visitCount, _ := store.CountVisits()
			contactCount, _ := store.CountContacts()

			response["database"] = fiber.Map{
				"status":   dbStatus,
				"users":    userCount,
				"visits":   visitCount,
				"contacts": contactCount,
			}
		}

		return c.JSON(response)
	})

	// Health check endpoint for monitoring
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		statusCode := 200

		if !cfg.UseMemoryStore && database.DB != nil {
			sqlDB, err := database.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				status = "unhealthy"
				statusCode = 503
			}
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"services": fiber.Map{
				"database": status == "healthy",
				"location": cfg.GoogleMapsAPIKey != "",
			},
		})
	})

	// Setup routes
	routes.SetupRoutes(app,
		handlers.NewAuthHandler(authService),
		handlers.NewVisitHandler(visitService),
		handlers.NewContactHandler(contactService),
		handlers.NewLocationHandler(locationService),
	)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping reminder job...")
		reminderJob.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 Maternal Health Tracker API starting on port %s", cfg.Port)
	log.Printf("📊 Storage: %s", storageType(cfg))
	log.Printf("🗺️  Location services: %s", locationStatus(cfg))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + cfg.Port))
}

func storageType(cfg *config.Config) string {
	if cfg.UseMemoryStore {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func locationStatus(cfg *config.Config) string {
	if cfg.GoogleMapsAPIKey == "" {
		return "Not configured"
	}
	return "Configured"
}
