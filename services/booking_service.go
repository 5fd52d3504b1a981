// services/booking_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drjidental/clinic_backend/config"
	"github.com/drjidental/clinic_backend/models"
	"github.com/drjidental/clinic_backend/repositories"
	"github.com/drjidental/clinic_backend/utils"
)

// ValidationError carries the offending field so handlers can return a
// structured error payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AppointmentStore is the persistence surface the booking flow needs.
type AppointmentStore interface {
	Create(ctx context.Context, appt *models.Appointment) error
	BookedSlotTimes(ctx context.Context, date string) ([]string, error)
}

// BusySource reports externally blocked slot times for a date and mirrors
// bookings out. BusySlots errors mean the source is unavailable; the
// booking flow logs and proceeds without the constraint.
type BusySource interface {
	BusySlots(ctx context.Context, date time.Time) (map[string]struct{}, error)
	CreateEvent(ctx context.Context, appt *models.Appointment)
}

// StaffNotifier tells the clinic about new bookings.
type StaffNotifier interface {
	SendAppointmentNotification(appt *models.Appointment) error
}

// BookingService computes slot availability and creates appointments.
type BookingService struct {
	store    AppointmentStore
	calendar BusySource
	notifier StaffNotifier
	cfg      *config.AppConfig
	logger   *log.Logger
	loc      *time.Location
}

func NewBookingService(store AppointmentStore, cal BusySource, notifier StaffNotifier, cfg *config.AppConfig, loc *time.Location) *BookingService {
	if loc == nil {
		loc = time.Local
	}
	return &BookingService{
		store:    store,
		calendar: cal,
		notifier: notifier,
		cfg:      cfg,
		logger:   log.New(os.Stdout, "[BOOKING] ", log.LstdFlags),
		loc:      loc,
	}
}

// SlotTimes generates the full slot grid for a working day, start hour to
// end hour in fixed-duration steps.
func (s *BookingService) SlotTimes() []models.Slot {
	step := time.Duration(s.cfg.SlotDurationMinutes) * time.Minute
	day := time.Date(2000, 1, 1, s.cfg.SlotStartHour, 0, 0, 0, time.UTC)
	end := time.Date(2000, 1, 1, s.cfg.SlotEndHour, 0, 0, 0, time.UTC)

	var slots []models.Slot
	for t := day; t.Before(end); t = t.Add(step) {
		slots = append(slots, models.Slot{
			Time:  t.Format("15:04"),
			Label: t.Format("3:04 PM"),
		})
	}
	return slots
}

// AvailableSlots returns the slot grid for a date minus slots already
// booked in the database and slots busy in the clinic calendar.
func (s *BookingService) AvailableSlots(ctx context.Context, dateStr string) ([]models.Slot, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, s.loc)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "Invalid date format. Use YYYY-MM-DD"}
	}
	if s.isPast(date) {
		return nil, &ValidationError{Field: "date", Message: "Date cannot be in the past"}
	}

	booked, err := s.store.BookedSlotTimes(ctx, dateStr)
	if err != nil {
		return nil, err
	}

	unavailable := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		unavailable[t] = struct{}{}
	}

	busy, err := s.calendar.BusySlots(ctx, date)
	if err != nil {
		// Calendar down means no external constraint, not a failed request.
		s.logger.Printf("Calendar busy lookup degraded: %v", err)
	}
	for t := range busy {
		unavailable[t] = struct{}{}
	}

	available := []models.Slot{}
	for _, slot := range s.SlotTimes() {
		if _, taken := unavailable[slot.Time]; !taken {
			available = append(available, slot)
		}
	}
	return available, nil
}

// CreateAppointment validates the payload, reserves the slot, notifies
// staff and mirrors the booking into the calendar. Notification and
// calendar failures never undo a persisted appointment.
func (s *BookingService) CreateAppointment(ctx context.Context, req *models.AppointmentRequest, customerID *primitive.ObjectID) (*models.Appointment, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return nil, &ValidationError{Field: "name", Message: "Name must be at least 2 characters."}
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return nil, &ValidationError{Field: "email", Message: "Please enter a valid email address."}
	}

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return nil, &ValidationError{Field: "phone", Message: "Please enter a valid phone number."}
	}

	if _, ok := models.ServiceChoices[req.Service]; !ok {
		return nil, &ValidationError{Field: "service", Message: "Unknown service."}
	}

	message := strings.TrimSpace(req.Message)
	if len(message) > 2000 {
		return nil, &ValidationError{Field: "message", Message: "Message must be at most 2000 characters."}
	}

	dateStr := strings.TrimSpace(req.PreferredDate)
	slotTime := strings.TrimSpace(req.SlotTime)

	if dateStr != "" {
		date, err := time.ParseInLocation("2006-01-02", dateStr, s.loc)
		if err != nil {
			return nil, &ValidationError{Field: "preferredDate", Message: "Invalid date format. Use YYYY-MM-DD"}
		}
		if s.isPast(date) {
			return nil, &ValidationError{Field: "preferredDate", Message: "Preferred date cannot be in the past."}
		}
	}
	if slotTime != "" {
		if dateStr == "" {
			return nil, &ValidationError{Field: "preferredDate", Message: "A preferred date is required when choosing a slot time."}
		}
		if !s.onSlotBoundary(slotTime) {
			return nil, &ValidationError{Field: "slotTime", Message: "Slot time is outside working hours."}
		}
	}

	appt := &models.Appointment{
		Name:          name,
		Email:         email,
		Phone:         phone,
		Service:       req.Service,
		PreferredDate: dateStr,
		SlotTime:      slotTime,
		Message:       message,
		CustomerID:    customerID,
	}

	if err := s.store.Create(ctx, appt); err != nil {
		if err == repositories.ErrSlotTaken {
			return nil, &ValidationError{Field: "slotTime", Message: "This slot has just been booked. Please pick another time."}
		}
		return nil, err
	}

	if err := s.notifier.SendAppointmentNotification(appt); err != nil {
		s.logger.Printf("Staff notification failed for appointment %s: %v", appt.ID.Hex(), err)
	}
	s.calendar.CreateEvent(ctx, appt)

	return appt, nil
}

// onSlotBoundary checks the time parses and lands exactly on the slot
// grid within working hours.
func (s *BookingService) onSlotBoundary(slotTime string) bool {
	t, err := time.Parse("15:04", slotTime)
	if err != nil {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	start := s.cfg.SlotStartHour * 60
	end := s.cfg.SlotEndHour * 60
	if minutes < start || minutes >= end {
		return false
	}
	return (minutes-start)%s.cfg.SlotDurationMinutes == 0
}

func (s *BookingService) isPast(date time.Time) bool {
	now := time.Now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	return date.Before(today)
}
