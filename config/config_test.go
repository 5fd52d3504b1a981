package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "drjidental", cfg.DBName)
	require.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	require.Equal(t, 587, cfg.SMTPPort)
	require.Equal(t, 9, cfg.SlotStartHour)
	require.Equal(t, 17, cfg.SlotEndHour)
	require.Equal(t, 30, cfg.SlotDurationMinutes)
	require.False(t, cfg.SeedData)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APPOINTMENT_SLOT_DURATION_MINUTES", "45")
	t.Setenv("SEED_DATA", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := LoadConfig()
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 45, cfg.SlotDurationMinutes)
	require.True(t, cfg.SeedData)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}
