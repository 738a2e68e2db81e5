// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// SiteConfig provides the public site location used by feeds and QR codes.
type SiteConfig interface {
	GetSiteBaseURL() string
	GetSiteName() string
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketEntityImages() string
	GetMinioBucketEntityDocuments() string
	IsMinIOEnabled() bool
}

// CacheConfig provides settings for the Redis visibility cache.
type CacheConfig interface {
	GetRedisURL() string
	GetVisibilityCacheTTL() time.Duration
}

// SchedulerConfig provides settings for the background task queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetSlotExpiryDigestDays() int
}

// EmailConfig provides settings for SMTP email sending.
type EmailConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetContactRecipient() string
	IsEmailEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                        string
	HTTPAddr                   string
	DatabaseURL                string
	JWTAccessSecret            string
	AccessTokenTTL             time.Duration
	CORSAllowAll               bool
	CORSOrigins                []string
	CORSAllowCreds             bool
	SiteBaseURL                string
	SiteName                   string
	MinIOEndpoint              string
	MinIOAccessKey             string
	MinIOSecretKey             string
	MinIOUseSSL                bool
	MinIOMaxFileSize           int64
	MinioBucketEntityImages    string
	MinioBucketEntityDocuments string
	RedisURL                   string
	VisibilityCacheTTL         time.Duration
	SlotExpiryDigestDays       int
	SMTPHost                   string
	SMTPPort                   int
	SMTPUsername               string
	SMTPPassword               string
	EmailFromName              string
	EmailFromAddress           string
	ContactRecipient           string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// AuthServiceConfig implementation
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SiteConfig implementation
func (c *Config) GetSiteBaseURL() string { return c.SiteBaseURL }
func (c *Config) GetSiteName() string    { return c.SiteName }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string   { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string  { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string  { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool       { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64 { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketEntityImages() string {
	return c.MinioBucketEntityImages
}
func (c *Config) GetMinioBucketEntityDocuments() string {
	return c.MinioBucketEntityDocuments
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// CacheConfig implementation
func (c *Config) GetRedisURL() string                  { return c.RedisURL }
func (c *Config) GetVisibilityCacheTTL() time.Duration { return c.VisibilityCacheTTL }

// SchedulerConfig implementation
func (c *Config) GetSlotExpiryDigestDays() int { return c.SlotExpiryDigestDays }

// EmailConfig implementation
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetContactRecipient() string { return c.ContactRecipient }
func (c *Config) IsEmailEnabled() bool        { return c.SMTPHost != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4321"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                        getEnv("APP_ENV", "development"),
		HTTPAddr:                   getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:                getEnv("DATABASE_URL", ""),
		JWTAccessSecret:            getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:             mustDuration(getEnv("JWT_ACCESS_TTL", "12h")),
		CORSAllowAll:               corsAllowAll,
		CORSOrigins:                corsOrigins,
		CORSAllowCreds:             strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		SiteBaseURL:                strings.TrimRight(getEnv("SITE_BASE_URL", "https://modtok.cl"), "/"),
		SiteName:                   getEnv("SITE_NAME", "MODTOK"),
		MinIOEndpoint:              getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:             getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:             getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:                strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:           mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "20971520")),
		MinioBucketEntityImages:    getEnv("MINIO_BUCKET_ENTITY_IMAGES", "entity-images"),
		MinioBucketEntityDocuments: getEnv("MINIO_BUCKET_ENTITY_DOCUMENTS", "entity-documents"),
		RedisURL:                   getEnv("REDIS_URL", ""),
		VisibilityCacheTTL:         mustDuration(getEnv("VISIBILITY_CACHE_TTL", "60s")),
		SlotExpiryDigestDays:       int(mustInt64(getEnv("SLOT_EXPIRY_DIGEST_DAYS", "7"))),
		SMTPHost:                   getEnv("SMTP_HOST", ""),
		SMTPPort:                   int(mustInt64(getEnv("SMTP_PORT", "587"))),
		SMTPUsername:               getEnv("SMTP_USERNAME", ""),
		SMTPPassword:               getEnv("SMTP_PASSWORD", ""),
		EmailFromName:              getEnv("EMAIL_FROM_NAME", "MODTOK"),
		EmailFromAddress:           getEnv("EMAIL_FROM_ADDRESS", ""),
		ContactRecipient:           getEnv("CONTACT_RECIPIENT", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.IsEmailEnabled() && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when SMTP_HOST is set")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
