package config

import (
	"os"
	"strings"
	"time"

	"github.com/saransh1220/notify-dispatch/internal/shared/infrastructure/database"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database database.PostgresConfig
	Tenants  TenantConfig
	Redis    database.RedisConfig
	JWT      JWTConfig
	AWS      AWSConfig
	Email    EmailConfig
	SMS      SMSConfig
	Push     PushConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins string
	MigrationsPath string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// TenantConfig maps tenant identifiers to their isolated database DSNs.
// The default tenant always resolves to the primary database.
type TenantConfig struct {
	DefaultTenant string
	DSNs          map[string]string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// AWSConfig holds explicit AWS credentials. Empty values defer to the SDK
// default provider chain.
type AWSConfig struct {
	AccessKey string
	SecretKey string
}

// EmailConfig holds the email gateway configuration
type EmailConfig struct {
	Region      string
	FromAddress string
}

// SMSConfig holds the SMS gateway configuration
type SMSConfig struct {
	Region     string
	FromNumber string
}

// PushConfig holds the web push signing configuration. Empty keys leave the
// push channel permanently disabled.
type PushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string
}

// Load reads configuration from environment variables
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:4200"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Database: database.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "notify"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Tenants: TenantConfig{
			DefaultTenant: getEnv("DEFAULT_TENANT", "default"),
			DSNs:          parseTenantDSNs(getEnv("TENANT_DSNS", "")),
		},
		Redis: database.RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "default-dev-secret"),
			Expiry: parseDuration(getEnv("JWT_EXPIRATION", "24h"), 24*time.Hour),
		},
		AWS: AWSConfig{
			AccessKey: getEnv("AWS_ACCESS_KEY", ""),
			SecretKey: getEnv("AWS_SECRET_KEY", ""),
		},
		Email: EmailConfig{
			Region:      getEnv("SES_REGION", "us-east-1"),
			FromAddress: getEnv("EMAIL_FROM", ""),
		},
		SMS: SMSConfig{
			Region:     getEnv("SNS_REGION", "us-east-1"),
			FromNumber: getEnv("SMS_FROM", ""),
		},
		Push: PushConfig{
			VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
			VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
			Subscriber:      getEnv("VAPID_SUBSCRIBER", "mailto:admin@localhost"),
		},
	}
}

// parseTenantDSNs parses "tenantA=dsnA;tenantB=dsnB" into a map.
func parseTenantDSNs(raw string) map[string]string {
	dsns := make(map[string]string)
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		dsns[parts[0]] = parts[1]
	}
	return dsns
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration string or returns a default value
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
