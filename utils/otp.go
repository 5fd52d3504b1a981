// utils/otp.go
package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
)

// GenerateOTP generates a numeric one-time code of the given length.
// Each digit is drawn independently from crypto/rand, so leading zeros
// are as likely as any other digit.
func GenerateOTP(length int) (string, error) {
	const digits = "0123456789"
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		result[i] = digits[num.Int64()]
	}
	return string(result), nil
}

// ValidateOTPAttempts counts verification attempts per email in Redis.
// Limit is 5 attempts per hour; a nil client disables the check.
func ValidateOTPAttempts(ctx context.Context, email string, rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}
	key := "otp_attempts:" + email
	attempts, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return err
	}

	// Set expiry if first attempt
	if attempts == 1 {
		rdb.Expire(ctx, key, 1*time.Hour)
	}

	if attempts > 5 {
		return errors.New("too many OTP attempts")
	}

	return nil
}
