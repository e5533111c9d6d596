package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Redis
	RedisURL string

	// Session tokens
	JWTSecret  string
	SessionTTL time.Duration

	// CORS
	AllowedOrigins []string

	// ERP booking API
	ERPBaseURL        string
	ERPTimeoutSeconds int

	// Auth token gateway
	AuthGatewayURL            string
	AuthGatewayTimeoutSeconds int

	// Catalog
	CatalogPageSize    int
	CatalogLoadDelayMs int
	SessionIdleTTL     time.Duration
	ProfileCacheTTL    time.Duration

	// Logging
	LogLevel string
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Session tokens
		JWTSecret:  getEnv("JWT_SECRET", "super-secret-key-change-me"),
		SessionTTL: parseDuration(getEnv("SESSION_TTL", "12h"), 12*time.Hour),

		// CORS
		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		// ERP booking API
		ERPBaseURL:        getEnv("ERP_BASE_URL", ""),
		ERPTimeoutSeconds: parseInt(getEnv("ERP_TIMEOUT_SECONDS", "10"), 10),

		// Auth token gateway
		AuthGatewayURL:            getEnv("AUTH_GATEWAY_URL", ""),
		AuthGatewayTimeoutSeconds: parseInt(getEnv("AUTH_GATEWAY_TIMEOUT_SECONDS", "10"), 10),

		// Catalog
		CatalogPageSize:    parseInt(getEnv("CATALOG_PAGE_SIZE", "20"), 20),
		CatalogLoadDelayMs: parseInt(getEnv("CATALOG_LOAD_DELAY_MS", "500"), 500),
		SessionIdleTTL:     parseDuration(getEnv("SESSION_IDLE_TTL", "2h"), 2*time.Hour),
		ProfileCacheTTL:    parseDuration(getEnv("PROFILE_CACHE_TTL", "1h"), time.Hour),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	// Simple split by comma
	var result []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if start < i {
				result = append(result, s[start:i])
			}
			start = i + 1
		}
	}
	return result
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
