package repositories

import "errors"

// Sentinel errors the handlers translate into HTTP statuses. Duplicate-key
// faults from the unique indexes surface as ErrEmailTaken / ErrSlotTaken so
// concurrent writers lose cleanly instead of violating an invariant.
var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
	ErrSlotTaken  = errors.New("slot already booked")
	ErrOTPInvalid = errors.New("invalid or expired code")
)
