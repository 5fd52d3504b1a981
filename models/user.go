// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a customer account. Accounts are created inactive and activated
// once the signup OTP is verified. Staff accounts sign in through the
// back office, never through the public login endpoint.
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password,omitempty" bson:"password"`
	FullName  string             `json:"fullName" bson:"fullName"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	IsStaff   bool               `json:"isStaff" bson:"isStaff"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PublicUser is the identity shape embedded in the login response.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
