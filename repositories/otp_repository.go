package repositories

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drjidental/clinic_backend/models"
	"github.com/drjidental/clinic_backend/utils"
)

const otpLength = 6

// OTPRepository stores one-time passcodes. At most one live code exists
// per (email, purpose): issuing deletes all earlier codes for the pair.
type OTPRepository struct {
	collection *mongo.Collection
}

func NewOTPRepository(db *mongo.Client, dbName string) *OTPRepository {
	return &OTPRepository{
		collection: db.Database(dbName).Collection("otps"),
	}
}

// Issue invalidates any previous code for (email, purpose) and stores a
// fresh 6-digit one valid for five minutes.
func (r *OTPRepository) Issue(ctx context.Context, email, purpose string) (*models.OTP, error) {
	email = strings.ToLower(email)

	if _, err := r.collection.DeleteMany(ctx, bson.M{"email": email, "purpose": purpose}); err != nil {
		return nil, err
	}

	code, err := utils.GenerateOTP(otpLength)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	otp := &models.OTP{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(models.OTPExpiry),
	}
	if _, err := r.collection.InsertOne(ctx, otp); err != nil {
		return nil, err
	}
	return otp, nil
}

// Verify returns the matching code if one exists and has not expired.
// It is a pure check: callers that consume a code on success must Delete
// it explicitly. Should several codes match, the newest wins.
func (r *OTPRepository) Verify(ctx context.Context, email, code, purpose string) (*models.OTP, error) {
	filter := bson.M{
		"email":   strings.ToLower(email),
		"purpose": purpose,
		"code":    strings.TrimSpace(code),
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var otp models.OTP
	err := r.collection.FindOne(ctx, filter, opts).Decode(&otp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOTPInvalid
		}
		return nil, err
	}
	if otp.IsExpired(time.Now()) {
		return nil, ErrOTPInvalid
	}
	return &otp, nil
}

// Delete consumes a verified code.
func (r *OTPRepository) Delete(ctx context.Context, otp *models.OTP) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{
		"email":     otp.Email,
		"purpose":   otp.Purpose,
		"code":      otp.Code,
		"createdAt": otp.CreatedAt,
	})
	return err
}
