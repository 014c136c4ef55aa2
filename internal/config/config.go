package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	Port        string `envconfig:"PORT" default:"8080"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"mongo"`
	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB       string `envconfig:"MONGO_DB" default:"newsroom"`

	JWTSecret     string        `envconfig:"JWT_SECRET"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"5h"`
	ResetTokenTTL time.Duration `envconfig:"RESET_TOKEN_TTL" default:"1h"`
	BcryptCost    int           `envconfig:"BCRYPT_COST" default:"10"`

	FrontendURL        string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	AuthRateLimit      int    `envconfig:"AUTH_RATE_LIMIT" default:"20"`

	SMTPHost     string        `envconfig:"SMTP_HOST"`
	SMTPPort     string        `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string        `envconfig:"SMTP_USERNAME"`
	SMTPPassword string        `envconfig:"SMTP_PASSWORD"`
	MailFrom     string        `envconfig:"MAIL_FROM" default:"no-reply@localhost"`
	ContactInbox string        `envconfig:"CONTACT_INBOX"`
	MailRetries  uint64        `envconfig:"MAIL_RETRIES" default:"2"`
	MailBackoff  time.Duration `envconfig:"MAIL_BACKOFF" default:"2s"`
	MailWorkers  int           `envconfig:"MAIL_WORKERS" default:"2"`

	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"newsroom-media"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	UploadMaxBytes int    `envconfig:"UPLOAD_MAX_BYTES" default:"5242880"`
}

// IsProduction reports whether the service runs with production safeguards.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// GetAllowedOrigins joins the configured origins in the form the CORS
// middleware expects.
func (c *Config) GetAllowedOrigins() string {
	origins := strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
	return strings.Join(origins, ",")
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET must be set in production")
		}
		c.JWTSecret = "development-secret"
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST %d out of range", c.BcryptCost)
	}
	return nil
}

// Load loads configuration from an optional env file and the environment.
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
