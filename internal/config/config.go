package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	SMTP       SMTPConfig
	MinIO      MinIOConfig
	Platform   PlatformConfig
	Newsletter NewsletterConfig
	Domains    DomainConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // hours
}

type SMTPConfig struct {
	Host string
	Port string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// PlatformConfig describes how the platform itself is addressed.
// ApexDomain is the hosting domain subdomains hang off of
// (acme → acme.<ApexDomain>); any other non-local hostname is treated
// as a tenant custom domain.
type PlatformConfig struct {
	ApexDomain string
	BaseScheme string // https in production, http locally
}

type NewsletterConfig struct {
	MaxRecipients  int // per-broadcast cap
	SendTimeoutSec int // per-recipient dispatch timeout
}

// DomainConfig configures the external domain provisioning API used
// for custom-domain verification.
type DomainConfig struct {
	ProvisionerURL string
	ProjectID      string
	APIToken       string
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Inkwell API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "inkwell"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 24),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "localhost"),
			Port: getEnv("SMTP_PORT", "1025"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "inkwell"),
			UseSSL:    false,
		},
		Platform: PlatformConfig{
			ApexDomain: getEnv("PLATFORM_APEX_DOMAIN", "inkwell.pub"),
			BaseScheme: getEnv("PLATFORM_BASE_SCHEME", "https"),
		},
		Newsletter: NewsletterConfig{
			MaxRecipients:  getEnvInt("NEWSLETTER_MAX_RECIPIENTS", 50),
			SendTimeoutSec: getEnvInt("NEWSLETTER_SEND_TIMEOUT", 10),
		},
		Domains: DomainConfig{
			ProvisionerURL: getEnv("DOMAIN_PROVISIONER_URL", "https://api.vercel.com"),
			ProjectID:      getEnv("DOMAIN_PROJECT_ID", ""),
			APIToken:       getEnv("DOMAIN_API_TOKEN", ""),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the config is usable
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Domains.APIToken == "" {
			fmt.Println("WARNING: DOMAIN_API_TOKEN not set - custom domain verification will not work")
		}
	}

	if c.Newsletter.MaxRecipients <= 0 {
		return fmt.Errorf("NEWSLETTER_MAX_RECIPIENTS must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
