package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Centralized auth tuning. These used to be magic numbers scattered across
// call sites; keep them here so every flow agrees on the same values.
const (
	// DefaultBcryptCost is the work factor for password hashing.
	DefaultBcryptCost = 12
	// ResetTokenTTL is how long a password-reset token stays usable.
	ResetTokenTTL = 10 * time.Minute
	// PasswordChangedSlack absorbs the clock skew between signing a JWT and
	// persisting the password-changed timestamp. A token issued within this
	// window of a password change is still accepted.
	PasswordChangedSlack = time.Second
	// LogoutCookieTTL is the lifetime of the dummy cookie written on logout.
	LogoutCookieTTL = 10 * time.Second
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env          string
	ServerPort   string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	JWTSecret    string
	JWTExpiry    time.Duration
	CookieExpiry time.Duration
	BcryptCost   int
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	EmailFrom    string
	SwaggerHost  string
}

// Load builds Config from environment with sensible defaults. A local .env
// file is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:          getEnv("APP_ENV", "development"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		MySQLDSN:     getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/tourly?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		JWTExpiry:    getEnvDuration("JWT_EXPIRES_IN", 90*24*time.Hour),
		CookieExpiry: getEnvDuration("JWT_COOKIE_EXPIRES_IN", 90*24*time.Hour),
		BcryptCost:   getEnvInt("BCRYPT_COST", DefaultBcryptCost),
		SMTPHost:     getEnv("EMAIL_HOST", "localhost"),
		SMTPPort:     getEnvInt("EMAIL_PORT", 587),
		SMTPUser:     os.Getenv("EMAIL_USERNAME"),
		SMTPPass:     os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:    getEnv("EMAIL_FROM", "Tourly <hello@tourly.dev>"),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
	}
}

// Production reports whether the process runs in a production posture.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
