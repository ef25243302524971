package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultInviteMessage = "You're invited to our event! RSVP now."
	jwtSecretFile        = "jwt.secret"
	minJWTSecretLen      = 32
)

var ErrWeakJWTSecret = fmt.Errorf("JWT secret must be at least %d bytes", minJWTSecretLen)

// Config holds the application configuration
type Config struct {
	DataDir  string
	DBPath   string
	LogLevel string

	HTTPAddr        string
	CORSOrigins     []string
	AuthRate        float64
	AuthBurst       int
	ShutdownTimeout time.Duration

	JWTSecret  string
	SessionTTL time.Duration

	WhatsAppEnabled    bool
	DefaultCountryCode string
	InviteMessage      string
	SendRate           float64
	SendBurst          int

	VCardPath string
}

// LoadConfig loads configuration from an optional .env file, environment
// variables, or defaults
func LoadConfig() *Config {
	_ = godotenv.Load()

	dataDir := getEnv("PLANNER_DATA_DIR", "data")
	return &Config{
		DataDir:            dataDir,
		DBPath:             getEnv("PLANNER_DB_PATH", filepath.Join(dataDir, "planner.db")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CORSOrigins:        getEnvAsList("CORS_ORIGINS", "*"),
		AuthRate:           getEnvAsFloat("AUTH_RATE", 1),
		AuthBurst:          getEnvAsInt("AUTH_BURST", 5),
		ShutdownTimeout:    getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		SessionTTL:         getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		WhatsAppEnabled:    getEnvAsBool("WHATSAPP_ENABLED", false),
		DefaultCountryCode: getEnv("DEFAULT_COUNTRY_CODE", ""),
		InviteMessage:      getEnv("INVITE_MESSAGE", defaultInviteMessage),
		SendRate:           getEnvAsFloat("SEND_RATE", 1),
		SendBurst:          getEnvAsInt("SEND_BURST", 3),
		VCardPath:          getEnv("VCARD_PATH", ""),
	}
}

// EnsureJWTSecret makes sure JWTSecret is usable for signing sessions. An
// explicit secret shorter than 32 bytes is rejected. Without one, a random
// secret is generated once and kept in the data directory.
func (c *Config) EnsureJWTSecret() error {
	if c.JWTSecret != "" {
		if len(c.JWTSecret) < minJWTSecretLen {
			return ErrWeakJWTSecret
		}
		return nil
	}

	path := filepath.Join(c.DataDir, jwtSecretFile)
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		secret := strings.TrimSpace(string(b))
		if len(secret) < minJWTSecretLen {
			return fmt.Errorf("%s: %w", path, ErrWeakJWTSecret)
		}
		c.JWTSecret = secret
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to read JWT secret: %w", err)
	}

	raw := make([]byte, minJWTSecretLen)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	secret := hex.EncodeToString(raw)
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(secret+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to save JWT secret: %w", err)
	}
	c.JWTSecret = secret
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnvAsBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvAsInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return f
}
