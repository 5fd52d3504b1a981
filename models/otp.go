package models

import (
	"time"
)

// OTP purposes. A code issued for one purpose is never valid for another.
const (
	OTPPurposeSignup         = "signup"
	OTPPurposeForgotPassword = "forgot_password"
)

// OTPExpiry is how long an issued code stays valid.
const OTPExpiry = 5 * time.Minute

// OTP is a one-time passcode sent to a customer's email to prove control
// of the address during signup or password reset.
type OTP struct {
	Email     string    `json:"email" bson:"email"`
	Code      string    `json:"-" bson:"code"`
	Purpose   string    `json:"purpose" bson:"purpose"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}

// IsExpired reports whether the code is past its validity window.
func (o *OTP) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
