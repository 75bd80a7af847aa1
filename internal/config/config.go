package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Server
	Port        string
	CORSOrigins string
	Env         string

	// Auth (mock bearer tokens, replaced in production)
	UseMockAuth bool

	// Rate limiting
	RateLimitEnabled bool
	RateLimitWindow  time.Duration
	RateLimitMax     int

	// ML microservice
	MLServiceURL     string
	MLServiceTimeout time.Duration
	MLServiceRetries int

	// URL analysis
	URLFetchTimeout time.Duration

	// Uploads
	PersistUploads bool
	UploadsDir     string
	MaxFileSize    int64

	// Admin seeding
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "truthlens"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Port:        getEnv("PORT", "3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		Env:         getEnv("APP_ENV", "development"),

		UseMockAuth: getBool("USE_MOCK_AUTH", true),

		RateLimitEnabled: getBool("RATE_LIMIT_ENABLED", true),
		RateLimitWindow:  time.Duration(getInt("RATE_LIMIT_WINDOW_MS", 60000)) * time.Millisecond,
		RateLimitMax:     getInt("RATE_LIMIT_MAX_REQUESTS", 100),

		MLServiceURL:     getEnv("ML_SERVICE_URL", "http://localhost:5000"),
		MLServiceTimeout: parseDuration(getEnv("ML_SERVICE_TIMEOUT", "10s")),
		MLServiceRetries: getInt("ML_SERVICE_RETRIES", 3),

		URLFetchTimeout: parseDuration(getEnv("URL_FETCH_TIMEOUT", "10s")),

		PersistUploads: getBool("PERSIST_UPLOADS", false),
		UploadsDir:     getEnv("UPLOADS_DIR", "uploads"),
		MaxFileSize:    int64(getInt("MAX_FILE_SIZE", 10*1024*1024)),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// Production reports whether internal error detail should be suppressed
// from API responses.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
