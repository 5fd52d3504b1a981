// services/calendar_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/drjidental/clinic_backend/config"
	"github.com/drjidental/clinic_backend/models"
)

// CalendarService queries the clinic's Google Calendar for busy intervals
// and mirrors confirmed bookings into it. It degrades explicitly: BusySlots
// returns an error when the bridge is unconfigured or the remote call
// fails, and callers decide whether to log and continue without the
// constraint. Event creation is always best-effort.
type CalendarService struct {
	cfg    *config.AppConfig
	logger *log.Logger
	loc    *time.Location
}

func NewCalendarService(cfg *config.AppConfig) *CalendarService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("Invalid TIME_ZONE %q, falling back to local: %v", cfg.Timezone, err)
		loc = time.Local
	}
	return &CalendarService{
		cfg:    cfg,
		logger: log.New(os.Stdout, "[CALENDAR] ", log.LstdFlags),
		loc:    loc,
	}
}

// Configured reports whether a calendar id and credentials file are set.
func (s *CalendarService) Configured() bool {
	return s.cfg.CalendarID != "" && s.cfg.CredentialsFile != ""
}

// Location returns the clinic timezone used for slot arithmetic.
func (s *CalendarService) Location() *time.Location {
	return s.loc
}

func (s *CalendarService) service(ctx context.Context, scope string) (*calendar.Service, error) {
	return calendar.NewService(ctx,
		option.WithCredentialsFile(s.cfg.CredentialsFile),
		option.WithScopes(scope),
	)
}

// BusySlots returns the slot times ("15:04") on the given date that
// overlap a busy interval in the clinic calendar. The date is interpreted
// in the clinic timezone and queried over the full day.
func (s *CalendarService) BusySlots(ctx context.Context, date time.Time) (map[string]struct{}, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("calendar bridge not configured")
	}

	svc, err := s.service(ctx, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("calendar client unavailable: %w", err)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	req := &calendar.FreeBusyRequest{
		TimeMin: dayStart.Format(time.RFC3339),
		TimeMax: dayEnd.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: s.cfg.CalendarID}},
	}
	result, err := svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query failed: %w", err)
	}

	var busy []busyInterval
	if cal, ok := result.Calendars[s.cfg.CalendarID]; ok {
		for _, period := range cal.Busy {
			start, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				continue
			}
			busy = append(busy, busyInterval{start: start.In(s.loc), end: end.In(s.loc)})
		}
	}

	return busySlotTimes(dayStart, busy, s.cfg.SlotStartHour, s.cfg.SlotEndHour, s.cfg.SlotDurationMinutes), nil
}

// CreateEvent mirrors a booked appointment into the calendar. No-op when
// the bridge is unconfigured or the appointment holds no slot; failures
// are logged and never propagated, the booking already succeeded.
func (s *CalendarService) CreateEvent(ctx context.Context, appt *models.Appointment) {
	if appt.PreferredDate == "" || appt.SlotTime == "" {
		return
	}
	if !s.Configured() {
		return
	}

	svc, err := s.service(ctx, calendar.CalendarEventsScope)
	if err != nil {
		s.logger.Printf("Calendar client unavailable, skipping event: %v", err)
		return
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", appt.PreferredDate+" "+appt.SlotTime, s.loc)
	if err != nil {
		s.logger.Printf("Bad appointment date/time %q %q: %v", appt.PreferredDate, appt.SlotTime, err)
		return
	}
	end := start.Add(time.Duration(s.cfg.SlotDurationMinutes) * time.Minute)

	event := &calendar.Event{
		Summary: fmt.Sprintf("Appointment: %s - %s", appt.Name, models.ServiceDisplay(appt.Service)),
		Description: fmt.Sprintf("Patient: %s\nEmail: %s\nPhone: %s\nService: %s\nMessage: %s",
			appt.Name, appt.Email, appt.Phone, models.ServiceDisplay(appt.Service), appt.Message),
		Start: &calendar.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: s.loc.String()},
		End:   &calendar.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: s.loc.String()},
	}

	if _, err := svc.Events.Insert(s.cfg.CalendarID, event).Context(ctx).Do(); err != nil {
		s.logger.Printf("Failed to create calendar event: %v", err)
		return
	}
	s.logger.Printf("Created calendar event for appointment %s", appt.ID.Hex())
}

type busyInterval struct {
	start time.Time
	end   time.Time
}

// busySlotTimes walks the slot grid for the day and marks every slot that
// overlaps a busy interval, using half-open overlap: a slot is busy when
// slotStart < busyEnd and slotEnd > busyStart.
func busySlotTimes(dayStart time.Time, busy []busyInterval, startHour, endHour, durationMinutes int) map[string]struct{} {
	busySlots := make(map[string]struct{})
	if len(busy) == 0 {
		return busySlots
	}

	step := time.Duration(durationMinutes) * time.Minute
	slotStart := dayStart.Add(time.Duration(startHour) * time.Hour)
	gridEnd := dayStart.Add(time.Duration(endHour) * time.Hour)

	for ; slotStart.Before(gridEnd); slotStart = slotStart.Add(step) {
		slotEnd := slotStart.Add(step)
		for _, b := range busy {
			if slotStart.Before(b.end) && slotEnd.After(b.start) {
				busySlots[slotStart.Format("15:04")] = struct{}{}
				break
			}
		}
	}
	return busySlots
}
