// services/mail_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/drjidental/clinic_backend/config"
	"github.com/drjidental/clinic_backend/models"
)

// MailService sends transactional email over SMTP: OTP codes to customers
// and booking notifications to clinic staff.
type MailService struct {
	cfg    *config.AppConfig
	logger *log.Logger
}

func NewMailService(cfg *config.AppConfig) *MailService {
	return &MailService{
		cfg:    cfg,
		logger: log.New(os.Stdout, "[MAIL] ", log.LstdFlags),
	}
}

// SendOTPEmail delivers a one-time code. The signup and forgot-password
// purposes get different subjects and wording.
func (m *MailService) SendOTPEmail(email, code, purpose string) error {
	var subject, body string
	if purpose == models.OTPPurposeSignup {
		subject = "Verify your email - Dr. JI Dental"
		body = fmt.Sprintf(
			"Your verification code is: %s\n\n"+
				"This code expires in 5 minutes. Do not share it with anyone.\n\n"+
				"If you did not request this, please ignore this email.",
			code,
		)
	} else {
		subject = "Password reset code - Dr. JI Dental"
		body = fmt.Sprintf(
			"Your password reset code is: %s\n\n"+
				"This code expires in 5 minutes. Do not share it with anyone.\n\n"+
				"If you did not request a password reset, please ignore this email.",
			code,
		)
	}

	if err := m.send([]string{email}, subject, body); err != nil {
		m.logger.Printf("Failed to send OTP email to %s: %v", email, err)
		return err
	}
	return nil
}

// SendAppointmentNotification emails the staff recipients the full detail
// of a new booking request.
func (m *MailService) SendAppointmentNotification(appt *models.Appointment) error {
	if len(m.cfg.NotifyEmails) == 0 {
		return nil
	}

	subject := fmt.Sprintf("New appointment request: %s - %s", appt.Name, models.ServiceDisplay(appt.Service))

	var b strings.Builder
	fmt.Fprintf(&b, "A new appointment request has been received.\n\n")
	fmt.Fprintf(&b, "Patient: %s\n", appt.Name)
	fmt.Fprintf(&b, "Email: %s\n", appt.Email)
	fmt.Fprintf(&b, "Phone: %s\n", appt.Phone)
	fmt.Fprintf(&b, "Service: %s\n", models.ServiceDisplay(appt.Service))
	if appt.PreferredDate != "" {
		fmt.Fprintf(&b, "Preferred date: %s\n", appt.PreferredDate)
	}
	if appt.SlotTime != "" {
		fmt.Fprintf(&b, "Slot time: %s\n", appt.SlotTime)
	}
	if appt.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", appt.Message)
	}

	if err := m.send(m.cfg.NotifyEmails, subject, b.String()); err != nil {
		m.logger.Printf("Failed to send appointment notification: %v", err)
		return err
	}
	return nil
}

func (m *MailService) send(to []string, subject, body string) error {
	if m.cfg.SMTPHost == "" || m.cfg.SMTPUser == "" {
		return fmt.Errorf("missing SMTP configuration")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromEmail)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
