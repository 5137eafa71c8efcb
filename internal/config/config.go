package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers
const (
	DriverMemory   = "memory"
	DriverSurreal  = "surrealdb"
	DriverMongo    = "mongo"
	StorageS3      = "s3"
	StorageMinio   = "minio"
	StorageNone    = "none"
	defaultEnvFile = ".env"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Mail     MailConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
	RateLimit      int
	RateBurst      int
	AuthRateLimit  int // per minute on register and login; 0 uses RateLimit
}

// DatabaseConfig selects the job and user store and holds its connection settings
type DatabaseConfig struct {
	Driver  string
	Surreal SurrealConfig
	Mongo   MongoConfig
}

// SurrealConfig holds SurrealDB connection settings
type SurrealConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// MongoConfig holds MongoDB connection settings
type MongoConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT signing settings
type JWTConfig struct {
	Secret         string
	PrivateKeyPath string
	PublicKeyPath  string
	ExpiresIn      time.Duration
	Issuer         string
}

// StorageConfig holds object storage settings for job attachments
type StorageConfig struct {
	Driver          string
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	KeyPrefix       string
	MaxUploadBytes  int64
}

// MailConfig holds SMTP settings for outgoing mail
type MailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Load reads configuration from environment variables with sensible defaults.
// Values from the dotenv file named by CONFIG_FILE (default .env) are applied
// first; variables already present in the environment win.
func Load() (*Config, error) {
	envFile := getEnv("CONFIG_FILE", defaultEnvFile)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "3000"),
			Env:            getEnv("NODE_ENV", getEnv("SERVER_ENV", "development")),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
			RateLimit:      getIntEnv("RATE_LIMIT_PER_MINUTE", 100),
			RateBurst:      getIntEnv("RATE_LIMIT_BURST", 20),
			AuthRateLimit:  getIntEnv("RATE_LIMIT_AUTH_PER_MINUTE", 10),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", DriverMemory),
			Surreal: SurrealConfig{
				Host:      getEnv("SURREAL_HOST", "localhost"),
				Port:      getEnv("SURREAL_PORT", "8000"),
				Namespace: getEnv("SURREAL_NAMESPACE", "jobboard"),
				Database:  getEnv("SURREAL_DATABASE", "main"),
				User:      getEnv("SURREAL_USER", "root"),
				Password:  getEnv("SURREAL_PASSWORD", "root"),
			},
			Mongo: MongoConfig{
				URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
				Database: getEnv("MONGO_DATABASE", "jobboard"),
			},
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", ""),
			PrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", ""),
			PublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", ""),
			ExpiresIn:      getDurationEnv("JWT_EXPIRES_TIME", 7*24*time.Hour),
			Issuer:         getEnv("JWT_ISSUER", "jobboard"),
		},
		Storage: StorageConfig{
			Driver:          getEnv("STORAGE_DRIVER", StorageNone),
			Bucket:          getEnv("STORAGE_BUCKET", "jobboard-uploads"),
			Region:          getEnv("AWS_REGION", "us-east-1"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			UseSSL:          getBoolEnv("STORAGE_USE_SSL", true),
			KeyPrefix:       getEnv("STORAGE_KEY_PREFIX", "jobs"),
			MaxUploadBytes:  int64(getIntEnv("UPLOAD_MAX_BYTES", 2_000_000)),
		},
		Mail: MailConfig{
			Enabled:  getBoolEnv("SMTP_ENABLED", false),
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getIntEnv("SMTP_PORT", 587),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@jobboard.local"),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("NODE_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}
	if c.Server.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be positive"))
	}
	if c.Server.AuthRateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_AUTH_PER_MINUTE must not be negative"))
	}

	// Database validation
	switch c.Database.Driver {
	case DriverMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_DRIVER 'memory' is not allowed in production"))
		}
	case DriverSurreal:
		s := c.Database.Surreal
		if s.Host == "" || s.Port == "" {
			errs = append(errs, errors.New("SURREAL_HOST and SURREAL_PORT are required"))
		}
		if s.Namespace == "" || s.Database == "" {
			errs = append(errs, errors.New("SURREAL_NAMESPACE and SURREAL_DATABASE are required"))
		}
	case DriverMongo:
		if c.Database.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGO_URI is required"))
		}
		if c.Database.Mongo.Database == "" {
			errs = append(errs, errors.New("MONGO_DATABASE is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be '%s', '%s', or '%s', got '%s'",
			DriverMemory, DriverSurreal, DriverMongo, c.Database.Driver))
	}

	// JWT validation
	if c.JWT.Secret == "" && c.JWT.PrivateKeyPath == "" {
		errs = append(errs, errors.New("JWT_SECRET or JWT_PRIVATE_KEY_PATH is required"))
	}
	if c.JWT.ExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_TIME must be positive"))
	}

	// Storage validation
	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("storage: %w", err))
	}

	// Mail validation
	if c.Mail.Enabled {
		if c.Mail.Host == "" {
			errs = append(errs, errors.New("SMTP_HOST is required when SMTP_ENABLED is true"))
		}
		if c.Mail.From == "" {
			errs = append(errs, errors.New("SMTP_FROM is required when SMTP_ENABLED is true"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks the storage settings required by the selected driver
func (s StorageConfig) Validate() error {
	if s.MaxUploadBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}

	var missing []string
	switch s.Driver {
	case StorageNone:
		return nil
	case StorageS3:
		if s.Region == "" {
			missing = append(missing, "AWS_REGION")
		}
	case StorageMinio:
		if s.Endpoint == "" {
			missing = append(missing, "STORAGE_ENDPOINT")
		}
		if s.AccessKeyID == "" {
			missing = append(missing, "AWS_ACCESS_KEY_ID")
		}
		if s.SecretAccessKey == "" {
			missing = append(missing, "AWS_SECRET_ACCESS_KEY")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be '%s', '%s', or '%s', got '%s'",
			StorageS3, StorageMinio, StorageNone, s.Driver)
	}
	if s.Bucket == "" {
		missing = append(missing, "STORAGE_BUCKET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
