// utils/password.go
package utils

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const specialCharacters = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// ValidateStrongPassword enforces the customer password policy: minimum
// 8 characters with an uppercase letter, a lowercase letter, a digit and
// a special character. The first violated rule is reported.
func ValidateStrongPassword(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters long.")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(specialCharacters, r) {
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.New("Password must contain at least one uppercase letter.")
	}
	if !hasLower {
		return errors.New("Password must contain at least one lowercase letter.")
	}
	if !hasDigit {
		return errors.New("Password must contain at least one digit.")
	}
	if !hasSpecial {
		return errors.New("Password must contain at least one special character (!@#$%^&* etc.).")
	}
	return nil
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against its bcrypt hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
