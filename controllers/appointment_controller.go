package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drjidental/clinic_backend/middleware"
	"github.com/drjidental/clinic_backend/models"
	"github.com/drjidental/clinic_backend/services"
)

// AppointmentController exposes slot availability and booking.
type AppointmentController struct {
	booking *services.BookingService
	history AppointmentHistory
	logger  *log.Logger
}

// AppointmentHistory lists a customer's own bookings.
type AppointmentHistory interface {
	FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Appointment, error)
}

func NewAppointmentController(booking *services.BookingService, history AppointmentHistory) *AppointmentController {
	return &AppointmentController{
		booking: booking,
		history: history,
		logger:  log.New(os.Stdout, "[BOOKING] ", log.LstdFlags),
	}
}

// AvailableSlots returns the open slots for a given date. Calendar
// outages degrade to database-only availability.
func (ac *AppointmentController) AvailableSlots(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Missing required query parameter: date",
		})
	}

	slots, err := ac.booking.AvailableSlots(ctx, date)
	if err != nil {
		if verr, ok := err.(*services.ValidationError); ok {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: verr.Message,
				Errors:  map[string]string{verr.Field: verr.Message},
			})
		}
		ac.logger.Printf("Failed to compute availability for %s: %v", date, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to load available slots",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: map[string]interface{}{
			"date":  date,
			"slots": slots,
		},
	})
}

// CreateAppointment books an appointment. Works for anonymous visitors;
// a signed-in customer gets the booking attached to their account.
func (ac *AppointmentController) CreateAppointment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	var req models.AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Validation error.",
			Errors:  err.Error(),
		})
	}

	var customerID *primitive.ObjectID
	if hex := middleware.GetUserIDFromContext(c); hex != "" {
		if id, err := primitive.ObjectIDFromHex(hex); err == nil {
			customerID = &id
		}
	}

	appointment, err := ac.booking.CreateAppointment(ctx, &req, customerID)
	if err != nil {
		if verr, ok := err.(*services.ValidationError); ok {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: verr.Message,
				Errors:  map[string]string{verr.Field: verr.Message},
			})
		}
		ac.logger.Printf("Failed to create appointment: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to create appointment",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Appointment request received. We will contact you shortly to confirm.",
		Data:    appointment,
	})
}

// MyAppointments lists the signed-in customer's bookings, newest first.
func (ac *AppointmentController) MyAppointments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	customerID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromContext(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Authentication required",
		})
	}

	appointments, err := ac.history.FindByCustomer(ctx, customerID)
	if err != nil {
		ac.logger.Printf("Failed to list appointments for %s: %v", customerID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to load appointments",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    appointments,
	})
}
