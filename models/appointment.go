package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceChoices maps appointment service codes to display names.
var ServiceChoices = map[string]string{
	"general":       "General Dentistry",
	"cleaning":      "Teeth Cleaning & Polishing",
	"root_canal":    "Root Canal Treatment",
	"extraction":    "Tooth Extraction",
	"implants":      "Dental Implants",
	"orthodontics":  "Braces & Orthodontics",
	"whitening":     "Teeth Whitening",
	"cosmetic":      "Cosmetic Dentistry",
	"pediatric":     "Pediatric Dentistry",
	"gum_treatment": "Gum Treatment",
}

// ServiceDisplay returns the display name for a service code, falling
// back to the code itself for unknown values.
func ServiceDisplay(code string) string {
	if name, ok := ServiceChoices[code]; ok {
		return name
	}
	return code
}

// Appointment is a booking request from the public site. PreferredDate is
// "2006-01-02" and SlotTime "15:04"; both empty means a general inquiry
// with no slot held. Staff confirm appointments out of band.
type Appointment struct {
	ID            primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string              `json:"name" bson:"name"`
	Email         string              `json:"email" bson:"email"`
	Phone         string              `json:"phone" bson:"phone"`
	Service       string              `json:"service" bson:"service"`
	PreferredDate string              `json:"preferredDate,omitempty" bson:"preferredDate"`
	SlotTime      string              `json:"slotTime,omitempty" bson:"slotTime"`
	Message       string              `json:"message,omitempty" bson:"message"`
	CustomerID    *primitive.ObjectID `json:"customerId,omitempty" bson:"customerId,omitempty"`
	IsConfirmed   bool                `json:"isConfirmed" bson:"isConfirmed"`
	CreatedAt     time.Time           `json:"createdAt" bson:"createdAt"`
}

// AppointmentRequest is the booking payload from the public site.
type AppointmentRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Service       string `json:"service" validate:"required"`
	PreferredDate string `json:"preferredDate,omitempty"`
	SlotTime      string `json:"slotTime,omitempty"`
	Message       string `json:"message,omitempty" validate:"max=2000"`
}

// Slot is one bookable time window: Time is the 24-hour form used as the
// wire value ("09:00"), Label the 12-hour form shown to patients ("9:00 AM").
type Slot struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}
