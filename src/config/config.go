package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment value the process consumes. It is loaded
// once in main and passed down; nothing reads os.Getenv after startup.
type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Razorpay RazorpayConfig
	Uploads  UploadConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins string
	LogLevel       string
	SeedSampleData bool
}

type MongoConfig struct {
	URI      string
	Database string
	// Timeout bounds every template lookup, uniqueness query and write.
	// Retries belong to the caller, not to the data layer.
	Timeout time.Duration
}

type RedisConfig struct {
	URI string
}

type AuthConfig struct {
	JWTSecret            string
	DefaultAdminEmail    string
	DefaultAdminPassword string
}

type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

type UploadConfig struct {
	MaxFiles    int
	MaxFileSize int64 // bytes
}

// Load reads .env (if present) and builds the config with defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8888"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			SeedSampleData: getEnv("SEED_SAMPLE_DATA", "") == "true",
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "formdesk"),
			Timeout:  getEnvDuration("MONGO_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URI: getEnv("REDIS_URI", ""),
		},
		Auth: AuthConfig{
			JWTSecret:            getEnv("JWT_SECRET", ""),
			DefaultAdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", ""),
			DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
		},
		Razorpay: RazorpayConfig{
			KeyID:         getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret:     getEnv("RAZORPAY_KEY_SECRET", ""),
			WebhookSecret: getEnv("RAZORPAY_WEBHOOK_SECRET", ""),
		},
		Uploads: UploadConfig{
			MaxFiles:    getEnvInt("UPLOAD_MAX_FILES", 5),
			MaxFileSize: int64(getEnvInt("UPLOAD_MAX_FILE_SIZE", 5<<20)),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
