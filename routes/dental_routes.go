package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/drjidental/clinic_backend/config"
	"github.com/drjidental/clinic_backend/controllers"
	"github.com/drjidental/clinic_backend/middleware"
)

// RegisterDentalRoutes sets up the booking and public catalog routes.
func RegisterDentalRoutes(e *echo.Echo, cfg *config.AppConfig, appointmentController *controllers.AppointmentController, catalogController *controllers.CatalogController) {
	// Booking is open to visitors; a valid token attaches the booking to
	// the customer's account.
	e.GET("/api/appointments/available-slots", appointmentController.AvailableSlots)
	e.POST("/api/appointments", appointmentController.CreateAppointment, middleware.OptionalJWT(cfg.JWTSecret))
	e.GET("/api/appointments/mine", appointmentController.MyAppointments, middleware.JWTMiddleware(cfg.JWTSecret))

	// Public catalog
	e.GET("/api/dentists", catalogController.Dentists)
	e.GET("/api/services", catalogController.Services)
	e.GET("/api/services/:slug", catalogController.ServiceBySlug)
}
