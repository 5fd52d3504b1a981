package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drjidental/clinic_backend/config"
	"github.com/drjidental/clinic_backend/models"
	"github.com/drjidental/clinic_backend/services"
)

type memAppointmentStore struct {
	appointments []*models.Appointment
}

func (m *memAppointmentStore) Create(ctx context.Context, appt *models.Appointment) error {
	appt.ID = primitive.NewObjectID()
	appt.CreatedAt = time.Now()
	m.appointments = append(m.appointments, appt)
	return nil
}

func (m *memAppointmentStore) BookedSlotTimes(ctx context.Context, date string) ([]string, error) {
	var times []string
	for _, a := range m.appointments {
		if a.PreferredDate == date && a.SlotTime != "" {
			times = append(times, a.SlotTime)
		}
	}
	return times, nil
}

func (m *memAppointmentStore) FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range m.appointments {
		if a.CustomerID != nil && *a.CustomerID == customerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type quietCalendar struct{}

func (quietCalendar) BusySlots(ctx context.Context, date time.Time) (map[string]struct{}, error) {
	return nil, nil
}

func (quietCalendar) CreateEvent(ctx context.Context, appt *models.Appointment) {}

type quietNotifier struct{}

func (quietNotifier) SendAppointmentNotification(appt *models.Appointment) error { return nil }

func newAppointmentFixture() (*echo.Echo, *AppointmentController, *memAppointmentStore) {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	store := &memAppointmentStore{}
	cfg := &config.AppConfig{SlotStartHour: 9, SlotEndHour: 17, SlotDurationMinutes: 30}
	booking := services.NewBookingService(store, quietCalendar{}, quietNotifier{}, cfg, time.UTC)
	return e, NewAppointmentController(booking, store), store
}

func TestAvailableSlotsEndpoint(t *testing.T) {
	e, ctrl, _ := newAppointmentFixture()
	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/available-slots?date="+date, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl.AvailableSlots(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	require.Equal(t, date, data["date"])
	require.Len(t, data["slots"].([]interface{}), 16)
}

func TestAvailableSlotsEndpointRequiresDate(t *testing.T) {
	e, ctrl, _ := newAppointmentFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/available-slots", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl.AvailableSlots(e.NewContext(req, rec)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	e, ctrl, store := newAppointmentFixture()
	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	body := `{"name":"Jane Doe","email":"jane@example.com","phone":"+12025550123","service":"cleaning","preferredDate":"` + date + `","slotTime":"10:00"}`

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl.CreateAppointment(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	require.Len(t, store.appointments, 1)
	require.Nil(t, store.appointments[0].CustomerID)
}

func TestCreateAppointmentEndpointAttachesSignedInCustomer(t *testing.T) {
	e, ctrl, store := newAppointmentFixture()
	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	body := `{"name":"Jane Doe","email":"jane@example.com","phone":"+12025550123","service":"cleaning","preferredDate":"` + date + `","slotTime":"10:00"}`
	customerID := primitive.NewObjectID()

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("userId", customerID.Hex())
	require.NoError(t, ctrl.CreateAppointment(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, store.appointments[0].CustomerID)
	require.Equal(t, customerID, *store.appointments[0].CustomerID)
}

func TestCreateAppointmentEndpointValidationError(t *testing.T) {
	e, ctrl, _ := newAppointmentFixture()
	body := `{"name":"Jane Doe","email":"jane@example.com","phone":"+12025550123","service":"tattoos"}`

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl.CreateAppointment(e.NewContext(req, rec)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	require.False(t, resp.Success)
	errs := resp.Errors.(map[string]interface{})
	require.Contains(t, errs, "service")
}

func TestMyAppointmentsEndpoint(t *testing.T) {
	e, ctrl, store := newAppointmentFixture()
	customerID := primitive.NewObjectID()
	store.appointments = append(store.appointments, &models.Appointment{
		ID:         primitive.NewObjectID(),
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Service:    "cleaning",
		CustomerID: &customerID,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/mine", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("userId", customerID.Hex())
	require.NoError(t, ctrl.MyAppointments(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    []models.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.Equal(t, "cleaning", resp.Data[0].Service)
}

func TestMyAppointmentsEndpointRequiresAuth(t *testing.T) {
	e, ctrl, _ := newAppointmentFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/mine", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl.MyAppointments(e.NewContext(req, rec)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
