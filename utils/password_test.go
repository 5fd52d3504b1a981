package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateStrongPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"too short", "Ab1!", "Password must be at least 8 characters long."},
		{"no uppercase", "alllower1!", "Password must contain at least one uppercase letter."},
		{"no lowercase", "ALLUPPER1!", "Password must contain at least one lowercase letter."},
		{"no digit", "NoDigits!", "Password must contain at least one digit."},
		{"no special", "NoSpecial1", "Password must contain at least one special character (!@#$%^&* etc.)."},
		{"valid", "Valid1Pass!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStrongPassword(tc.password)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestValidateStrongPasswordReportsLengthFirst(t *testing.T) {
	// "abc" violates every rule; length is reported first.
	err := ValidateStrongPassword("abc")
	require.EqualError(t, err, "Password must be at least 8 characters long.")
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Valid1Pass!")
	require.NoError(t, err)
	require.NotEqual(t, "Valid1Pass!", hash)

	require.NoError(t, CheckPassword("Valid1Pass!", hash))
	require.Error(t, CheckPassword("Wrong1Pass!", hash))
}
