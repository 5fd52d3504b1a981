package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drjidental/clinic_backend/config"
	"github.com/drjidental/clinic_backend/models"
	"github.com/drjidental/clinic_backend/repositories"
)

type fakeAppointmentStore struct {
	booked  map[string]map[string]bool // date -> slotTime
	created []*models.Appointment
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{booked: map[string]map[string]bool{}}
}

func (f *fakeAppointmentStore) Create(ctx context.Context, appt *models.Appointment) error {
	if appt.PreferredDate != "" && appt.SlotTime != "" {
		if f.booked[appt.PreferredDate][appt.SlotTime] {
			return repositories.ErrSlotTaken
		}
		if f.booked[appt.PreferredDate] == nil {
			f.booked[appt.PreferredDate] = map[string]bool{}
		}
		f.booked[appt.PreferredDate][appt.SlotTime] = true
	}
	appt.ID = primitive.NewObjectID()
	appt.CreatedAt = time.Now()
	f.created = append(f.created, appt)
	return nil
}

func (f *fakeAppointmentStore) BookedSlotTimes(ctx context.Context, date string) ([]string, error) {
	var times []string
	for t := range f.booked[date] {
		times = append(times, t)
	}
	return times, nil
}

type fakeBusySource struct {
	busy   map[string]struct{}
	err    error
	events []*models.Appointment
}

func (f *fakeBusySource) BusySlots(ctx context.Context, date time.Time) (map[string]struct{}, error) {
	return f.busy, f.err
}

func (f *fakeBusySource) CreateEvent(ctx context.Context, appt *models.Appointment) {
	f.events = append(f.events, appt)
}

type fakeNotifier struct {
	sent []*models.Appointment
	err  error
}

func (f *fakeNotifier) SendAppointmentNotification(appt *models.Appointment) error {
	f.sent = append(f.sent, appt)
	return f.err
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		SlotStartHour:       9,
		SlotEndHour:         17,
		SlotDurationMinutes: 30,
	}
}

func newTestBookingService(store *fakeAppointmentStore, cal *fakeBusySource, notifier *fakeNotifier) *BookingService {
	return NewBookingService(store, cal, notifier, testConfig(), time.UTC)
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 14).Format("2006-01-02")
}

func TestSlotTimesGrid(t *testing.T) {
	svc := newTestBookingService(newFakeAppointmentStore(), &fakeBusySource{}, &fakeNotifier{})

	slots := svc.SlotTimes()
	require.Len(t, slots, 16)
	require.Equal(t, models.Slot{Time: "09:00", Label: "9:00 AM"}, slots[0])
	require.Equal(t, models.Slot{Time: "16:30", Label: "4:30 PM"}, slots[15])
}

func TestAvailableSlotsSubtractsBookedAndBusy(t *testing.T) {
	date := futureDate()
	store := newFakeAppointmentStore()
	store.booked[date] = map[string]bool{"09:00": true, "10:30": true}
	cal := &fakeBusySource{busy: map[string]struct{}{"10:30": {}, "14:00": {}}}
	svc := newTestBookingService(store, cal, &fakeNotifier{})

	slots, err := svc.AvailableSlots(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, slots, 13)
	for _, slot := range slots {
		require.NotContains(t, []string{"09:00", "10:30", "14:00"}, slot.Time)
	}
}

func TestAvailableSlotsCalendarOutageDegrades(t *testing.T) {
	date := futureDate()
	store := newFakeAppointmentStore()
	store.booked[date] = map[string]bool{"09:00": true}
	cal := &fakeBusySource{err: context.DeadlineExceeded}
	svc := newTestBookingService(store, cal, &fakeNotifier{})

	slots, err := svc.AvailableSlots(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, slots, 15)
}

func TestAvailableSlotsRejectsPastAndMalformedDates(t *testing.T) {
	svc := newTestBookingService(newFakeAppointmentStore(), &fakeBusySource{}, &fakeNotifier{})

	_, err := svc.AvailableSlots(context.Background(), "2020-01-01")
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Equal(t, "date", verr.Field)

	_, err = svc.AvailableSlots(context.Background(), "01/02/2030")
	verr, ok = err.(*ValidationError)
	require.True(t, ok)
	require.Equal(t, "date", verr.Field)
}

func validRequest() *models.AppointmentRequest {
	return &models.AppointmentRequest{
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "+12025550123",
		Service:       "cleaning",
		PreferredDate: futureDate(),
		SlotTime:      "10:00",
	}
}

func TestCreateAppointment(t *testing.T) {
	store := newFakeAppointmentStore()
	cal := &fakeBusySource{}
	notifier := &fakeNotifier{}
	svc := newTestBookingService(store, cal, notifier)

	appt, err := svc.CreateAppointment(context.Background(), validRequest(), nil)
	require.NoError(t, err)
	require.False(t, appt.ID.IsZero())
	require.Equal(t, "jane@example.com", appt.Email)
	require.Len(t, notifier.sent, 1)
	require.Len(t, cal.events, 1)
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	store := newFakeAppointmentStore()
	svc := newTestBookingService(store, &fakeBusySource{}, &fakeNotifier{})

	_, err := svc.CreateAppointment(context.Background(), validRequest(), nil)
	require.NoError(t, err)

	_, err = svc.CreateAppointment(context.Background(), validRequest(), nil)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Equal(t, "slotTime", verr.Field)
	require.Equal(t, "This slot has just been booked. Please pick another time.", verr.Message)
}

func TestCreateAppointmentValidation(t *testing.T) {
	svc := newTestBookingService(newFakeAppointmentStore(), &fakeBusySource{}, &fakeNotifier{})

	cases := []struct {
		name   string
		mutate func(*models.AppointmentRequest)
		field  string
	}{
		{"short name", func(r *models.AppointmentRequest) { r.Name = " J " }, "name"},
		{"bad email", func(r *models.AppointmentRequest) { r.Email = "nope" }, "email"},
		{"short phone", func(r *models.AppointmentRequest) { r.Phone = "123" }, "phone"},
		{"unknown service", func(r *models.AppointmentRequest) { r.Service = "tattoos" }, "service"},
		{"past date", func(r *models.AppointmentRequest) { r.PreferredDate = "2020-01-01" }, "preferredDate"},
		{"slot without date", func(r *models.AppointmentRequest) { r.PreferredDate = "" }, "preferredDate"},
		{"off-grid slot", func(r *models.AppointmentRequest) { r.SlotTime = "10:15" }, "slotTime"},
		{"slot before opening", func(r *models.AppointmentRequest) { r.SlotTime = "08:30" }, "slotTime"},
		{"slot at closing", func(r *models.AppointmentRequest) { r.SlotTime = "17:00" }, "slotTime"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			_, err := svc.CreateAppointment(context.Background(), req, nil)
			verr, ok := err.(*ValidationError)
			require.True(t, ok, "expected validation error, got %v", err)
			require.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCreateAppointmentNotifierFailureIsNotFatal(t *testing.T) {
	store := newFakeAppointmentStore()
	notifier := &fakeNotifier{err: context.DeadlineExceeded}
	svc := newTestBookingService(store, &fakeBusySource{}, notifier)

	appt, err := svc.CreateAppointment(context.Background(), validRequest(), nil)
	require.NoError(t, err)
	require.NotNil(t, appt)
	require.Len(t, store.created, 1)
}

func TestCreateAppointmentAttachesCustomer(t *testing.T) {
	store := newFakeAppointmentStore()
	svc := newTestBookingService(store, &fakeBusySource{}, &fakeNotifier{})

	customerID := primitive.NewObjectID()
	appt, err := svc.CreateAppointment(context.Background(), validRequest(), &customerID)
	require.NoError(t, err)
	require.NotNil(t, appt.CustomerID)
	require.Equal(t, customerID, *appt.CustomerID)
}
