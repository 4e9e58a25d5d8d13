package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "https://api.nasa.gov/planetary/apod", cfg.NasaAPODURL)
	assert.Equal(t, 10*time.Second, cfg.NasaTimeout)
	assert.Equal(t, []string{"*"}, cfg.AcceptedOrigins)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_API_TOKEN", "sekrit")
	t.Setenv("ACCEPTED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("NASA_TIMEOUT_SECONDS", "3")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sekrit", cfg.AdminToken)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AcceptedOrigins)
	assert.Equal(t, 3*time.Second, cfg.NasaTimeout)
}

func TestLoadIgnoresUnparsableInt(t *testing.T) {
	t.Setenv("NASA_TIMEOUT_SECONDS", "soon")

	cfg := Load()
	assert.Equal(t, 10*time.Second, cfg.NasaTimeout)
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Environment: "production"}).IsProduction())
	assert.True(t, (&Config{Environment: "PRODUCTION"}).IsProduction())
	assert.False(t, (&Config{Environment: "development"}).IsProduction())
	assert.False(t, (&Config{Environment: ""}).IsProduction())
}
