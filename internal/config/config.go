package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	Env             string
	StaticFilesPath string
	AppBaseURL      string

	// Store selects the key-value backend: "sql", "redis" or "memory"
	StoreBackend string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string
	RedisAddr    string
	RedisPrefix  string

	// CredentialScheme is "plaintext" (compatible with existing data) or "bcrypt"
	CredentialScheme string
	ShareSecret      string
	ShareTTL         time.Duration

	TTSEnabled  bool
	TTSEndpoint string

	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		AppBaseURL:      strings.TrimSuffix(getEnv("APP_BASE_URL", "http://localhost:8080"), "/"),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", "sql")),
		DatabaseType: getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./learnmate.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPrefix:  getEnv("REDIS_PREFIX", "learnmate:"),

		CredentialScheme: strings.ToLower(getEnv("CREDENTIAL_SCHEME", "plaintext")),
		ShareSecret:      getEnv("SHARE_SECRET", "change-me-in-production"),
		ShareTTL:         getEnvDuration("SHARE_TTL", 7*24*time.Hour),

		TTSEnabled:  getEnvBool("TTS_ENABLED", true),
		TTSEndpoint: getEnv("TTS_ENDPOINT", "https://translate.google.com/translate_tts"),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "LearnMate"),

		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getEnvDuration("LOGIN_RATE_WINDOW", time.Minute),
	}
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("[WARN] Invalid boolean value for %s: %s, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARN] Invalid integer value for %s: %s, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("[WARN] Invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
