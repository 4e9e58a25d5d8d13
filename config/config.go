package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the process reads from its environment, built once
// at startup and passed by reference. Business logic never reads env state
// directly.
type Config struct {
	Port        string
	Environment string // "production" disables error details and fallbacks

	DatabaseURL string

	AdminToken string

	NasaAPIKey  string
	NasaAPODURL string
	NasaTimeout time.Duration

	AcceptedOrigins []string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

const defaultAPODURL = "https://api.nasa.gov/planetary/apod"

// Load snapshots the environment into a Config.
func Load() *Config {
	c := New()

	return &Config{
		Port:        GetString(c, "PORT", "8080"),
		Environment: GetString(c, "APP_ENV", "development"),

		DatabaseURL: GetString(c, "DATABASE_URL", ""),

		AdminToken: GetString(c, "ADMIN_API_TOKEN", ""),

		NasaAPIKey:  GetString(c, "NASA_API_KEY", ""),
		NasaAPODURL: GetString(c, "NASA_APOD_URL", defaultAPODURL),
		NasaTimeout: time.Duration(GetInt(c, "NASA_TIMEOUT_SECONDS", 10)) * time.Second,

		AcceptedOrigins: splitList(GetString(c, "ACCEPTED_ORIGINS", "*")),

		ReadTimeout:  time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 60)) * time.Second,
		WriteTimeout: time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 60)) * time.Second,
		IdleTimeout:  time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,
	}
}

// IsProduction reports whether the process runs with production error hygiene.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}
