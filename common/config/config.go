package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service configuration
type Config struct {
	Service ServiceConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Disk    DiskConfig
	Sheets  SheetsConfig
	Media   MediaConfig
	Auth    AuthConfig
}

// ServiceConfig holds service-specific settings
type ServiceConfig struct {
	Name        string
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	EnablePprof bool
	PprofPort   int
}

// MongoConfig holds document store connection settings
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// DiskConfig holds cloud storage (Yandex Disk) settings
type DiskConfig struct {
	BaseURL    string
	Token      string
	RootFolder string
	Timeout    time.Duration
}

// SheetsConfig holds Google Sheets settings
type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	DeliverySheet   string
	DocsSheet       string
}

// MediaConfig holds audio tooling and staging settings
type MediaConfig struct {
	FFprobeBinary string
	FFmpegBinary  string
	StagingDir    string
	TempDir       string
}

// AuthConfig holds session token settings
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	cfg := &Config{
		Service: ServiceConfig{
			Name:        serviceName,
			Port:        getEnvInt("PORT", 8080),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"),
			EnablePprof: getEnvBool("ENABLE_PPROF", false),
			PprofPort:   getEnvInt("PPROF_PORT", 6060),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGO_DB", "intake"),
			ConnectTimeout: getEnvDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Disk: DiskConfig{
			BaseURL:    getEnv("DISK_API_URL", "https://cloud-api.yandex.net/v1/disk"),
			Token:      getEnv("DISK_TOKEN", ""),
			RootFolder: getEnv("DISK_ROOT_FOLDER", "/releases"),
			Timeout:    getEnvDuration("DISK_TIMEOUT", 5*time.Minute),
		},
		Sheets: SheetsConfig{
			CredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", "credentials.json"),
			SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
			DeliverySheet:   getEnv("SHEETS_DELIVERY_SHEET", "Delivery"),
			DocsSheet:       getEnv("SHEETS_DOCS_SHEET", "Docs"),
		},
		Media: MediaConfig{
			FFprobeBinary: getEnv("FFPROBE_BINARY", "ffprobe"),
			FFmpegBinary:  getEnv("FFMPEG_BINARY", "ffmpeg"),
			StagingDir:    getEnv("STAGING_DIR", "/var/lib/intake/staging"),
			TempDir:       getEnv("TEMP_DIR", "/var/lib/intake/tmp"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvDuration("TOKEN_TTL", 30*24*time.Hour),
		},
	}

	return cfg, cfg.Validate()
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Service.Port)
	}

	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo URI is required")
	}

	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo database is required")
	}

	if c.Service.Environment != "development" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required outside development")
	}

	return nil
}

// RedisAddr returns the redis host:port address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
