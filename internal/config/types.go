package config

import (
	"time"

	"github.com/soldout/backend/internal/cache"
	"github.com/soldout/backend/internal/events"
	"github.com/soldout/backend/internal/logger"
	"github.com/soldout/backend/internal/storage"
)

// Config represents the application configuration
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Redis       cache.Config     `mapstructure:"redis"`
	Storage     storage.Config   `mapstructure:"storage"`
	Logging     logger.Config    `mapstructure:"logging"`
	Auth        AuthConfig       `mapstructure:"auth"`
	Video       VideoConfig      `mapstructure:"video"`
	Moderation  ModerationConfig `mapstructure:"moderation"`
	Views       ViewsConfig      `mapstructure:"views"`
	Events      events.Config    `mapstructure:"events"`
}

// ServerConfig represents server configuration settings
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	CORSOrigin      string        `mapstructure:"corsOrigin"`
}

// DatabaseConfig represents database configuration settings
type DatabaseConfig struct {
	Host          string        `mapstructure:"host"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	Dbname        string        `mapstructure:"dbname"`
	Port          int           `mapstructure:"port"`
	Sslmode       string        `mapstructure:"sslmode"`
	Timezone      string        `mapstructure:"timezone"`
	SlowThreshold time.Duration `mapstructure:"slowThreshold"`
	Pool          struct {
		MaxOpen     int           `mapstructure:"maxOpen"`
		MaxIdle     int           `mapstructure:"maxIdle"`
		MaxLifetime time.Duration `mapstructure:"maxLifetime"`
	} `mapstructure:"pool"`
}

// AuthConfig represents authentication configuration settings
type AuthConfig struct {
	JWT struct {
		Secret         string        `mapstructure:"secret"`
		AccessTokenTTL time.Duration `mapstructure:"accessTokenTTL"`
		AdminTokenTTL  time.Duration `mapstructure:"adminTokenTTL"`
	} `mapstructure:"jwt"`
	BcryptCost int              `mapstructure:"bcryptCost"`
	SuperAdmin SuperAdminConfig `mapstructure:"superAdmin"`
}

// SuperAdminConfig describes the account seeded at startup. An empty email disables seeding.
type SuperAdminConfig struct {
	Email     string `mapstructure:"email"`
	Password  string `mapstructure:"password"`
	FirstName string `mapstructure:"firstName"`
	LastName  string `mapstructure:"lastName"`
}

// VideoConfig represents video configuration settings
type VideoConfig struct {
	MaxSize             int64         `mapstructure:"maxSize"`
	MaxThumbnailSize    int64         `mapstructure:"maxThumbnailSize"`
	MaxPictureSize      int64         `mapstructure:"maxPictureSize"`
	MinTitleLength      int           `mapstructure:"minTitleLength"`
	MaxTitleLength      int           `mapstructure:"maxTitleLength"`
	MaxDescLength       int           `mapstructure:"maxDescLength"`
	AllowedFormats      []string      `mapstructure:"allowedFormats"`
	AllowedImageFormats []string      `mapstructure:"allowedImageFormats"`
	PremiumWindow       time.Duration `mapstructure:"premiumWindow"`
	ListCacheSize       int           `mapstructure:"listCacheSize"`
	ListCacheTTL        time.Duration `mapstructure:"listCacheTTL"`
}

// ModerationConfig lists the allowed status transitions as "FROM->TO" pairs.
type ModerationConfig struct {
	Transitions []string `mapstructure:"transitions"`
}

// ViewsConfig selects how view counts are written.
type ViewsConfig struct {
	Mode          string        `mapstructure:"mode"` // direct or buffered
	FlushInterval time.Duration `mapstructure:"flushInterval"`
}
