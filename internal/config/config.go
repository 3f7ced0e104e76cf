package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration. It is constructed once at
// startup and passed by reference; nothing in it is mutated at runtime.
type Config struct {
	ServerPort   int
	DatabasePath string
	LogLevel     string

	// Token signing. The default secret is for local development only and
	// must be overridden in production.
	JWTSecret    string
	JWTAlgorithm string
	TokenTTL     time.Duration

	// Photo uploads attached to help requests.
	UploadDir        string
	MaxUploadSize    int64
	AllowedPhotoExts map[string]bool

	CORSOrigins []string
}

// Load loads configuration from environment variables (and a .env file when
// present) or sets defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	ttlMinutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil {
		return nil, err
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_SIZE", "5242880"), 10, 64)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./disaster.db"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		JWTSecret:     getEnv("JWT_SECRET", "secret_disaster_key_change_in_production"),
		JWTAlgorithm:  getEnv("JWT_ALGORITHM", "HS256"),
		TokenTTL:      time.Duration(ttlMinutes) * time.Minute,
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize: maxUpload,
		AllowedPhotoExts: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".gif":  true,
			".webp": true,
		},
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"), ","),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
