package main

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/drjidental/clinic_backend/config"
	"github.com/drjidental/clinic_backend/controllers"
	"github.com/drjidental/clinic_backend/middleware"
	"github.com/drjidental/clinic_backend/repositories"
	"github.com/drjidental/clinic_backend/routes"
	"github.com/drjidental/clinic_backend/services"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.LoadConfig()

	// Connect to Redis (optional, used for OTP attempt limiting)
	config.ConnectRedis(cfg)

	// Connect to database
	client := config.ConnectDB(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	if cfg.SeedData {
		repositories.SeedCatalog(client, cfg.DBName)
	}

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.NewCORSConfig(cfg.CORSOrigins)))
	e.Use(middleware.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Dr. JI Dental backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		database := "connected"
		if err := client.Ping(ctx, nil); err != nil {
			database = "unreachable"
		}
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": database,
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserRepository(client, cfg.DBName)
	otpRepo := repositories.NewOTPRepository(client, cfg.DBName)
	appointmentRepo := repositories.NewAppointmentRepository(client, cfg.DBName)
	catalogRepo := repositories.NewCatalogRepository(client, cfg.DBName)

	// Initialize services
	mailService := services.NewMailService(cfg)
	calendarService := services.NewCalendarService(cfg)
	bookingService := services.NewBookingService(appointmentRepo, calendarService, mailService, cfg, calendarService.Location())

	// Initialize controllers
	authController := controllers.NewAuthController(userRepo, otpRepo, mailService, config.GetRedisClient(), cfg)
	appointmentController := controllers.NewAppointmentController(bookingService, appointmentRepo)
	catalogController := controllers.NewCatalogController(catalogRepo)

	// Register routes
	routes.RegisterAuthRoutes(e, cfg, authController)
	routes.RegisterDentalRoutes(e, cfg, appointmentController, catalogController)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
