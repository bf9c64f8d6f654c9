package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ConfigService implements the Service interface
type ConfigService struct {
	logger Logger
}

// NewConfigService creates a new configuration service
func NewConfigService(logger Logger) *ConfigService {
	return &ConfigService{
		logger: logger,
	}
}

// Load reads .env (if any), then config.yaml from path, applying defaults and environment overrides.
func (s *ConfigService) Load(path string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.LogWarn("Failed to read .env file", map[string]interface{}{"error": err.Error()})
	}

	v := viper.New()
	v.AddConfigPath(path)
	if os.Getenv("ENV") == "test" {
		v.SetConfigName("config_test")
	} else {
		v.SetConfigName("config")
	}
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindSecrets(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
		s.logger.LogWarn("No config file found, using defaults and environment", map[string]interface{}{"path": path})
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	if err := resolveStoragePaths(&config, path); err != nil {
		return nil, fmt.Errorf("failed to resolve storage paths: %v", err)
	}

	s.logger.LogInfo("Configuration loaded successfully", map[string]interface{}{
		"environment": config.Environment,
		"storage":     config.Storage.Driver,
	})
	return &config, nil
}

// DefaultTransitions is the moderation transition set used when none is configured.
var DefaultTransitions = []string{
	"PENDING->APPROVED",
	"PENDING->REJECTED",
	"APPROVED->PENDING",
	"APPROVED->APPROVED",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 120*time.Second)
	v.SetDefault("server.shutdownTimeout", 30*time.Second)
	v.SetDefault("server.corsOrigin", "http://localhost:3000")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("database.slowThreshold", 200*time.Millisecond)
	v.SetDefault("database.pool.maxOpen", 50)
	v.SetDefault("database.pool.maxIdle", 10)
	v.SetDefault("database.pool.maxLifetime", time.Hour)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.uploadDir", "uploads")
	v.SetDefault("storage.publicPath", "/uploads")
	v.SetDefault("storage.ipfs.apiAddress", "localhost:5001")
	v.SetDefault("storage.ipfs.gateway", "http://localhost:8080/ipfs/")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")

	v.SetDefault("auth.jwt.accessTokenTTL", 24*time.Hour)
	v.SetDefault("auth.jwt.adminTokenTTL", 24*time.Hour)
	v.SetDefault("auth.bcryptCost", 10)
	v.SetDefault("auth.superAdmin.firstName", "Super")
	v.SetDefault("auth.superAdmin.lastName", "Admin")

	v.SetDefault("video.maxSize", 1024*1024*1024) // 1GB
	v.SetDefault("video.maxThumbnailSize", 10*1024*1024)
	v.SetDefault("video.maxPictureSize", 5*1024*1024)
	v.SetDefault("video.minTitleLength", 1)
	v.SetDefault("video.maxTitleLength", 200)
	v.SetDefault("video.maxDescLength", 5000)
	v.SetDefault("video.allowedFormats", []string{".mp4", ".mov", ".webm", ".mkv"})
	v.SetDefault("video.allowedImageFormats", []string{".jpg", ".jpeg", ".png", ".webp"})
	v.SetDefault("video.premiumWindow", 30*24*time.Hour)
	v.SetDefault("video.listCacheSize", 64)
	v.SetDefault("video.listCacheTTL", 30*time.Second)

	v.SetDefault("moderation.transitions", DefaultTransitions)

	v.SetDefault("views.mode", "direct")
	v.SetDefault("views.flushInterval", 10*time.Second)

	v.SetDefault("events.enabled", false)
	v.SetDefault("events.exchange", "soldout.events")
}

// bindSecrets registers keys that usually only come from the environment so
// Unmarshal sees them even when config.yaml leaves them out.
func bindSecrets(v *viper.Viper) {
	for _, key := range []string{
		"auth.jwt.secret",
		"auth.superAdmin.password",
		"database.password",
		"redis.password",
		"storage.s3.accessKeyId",
		"storage.s3.secretAccessKey",
	} {
		_ = v.BindEnv(key)
	}
}

func validate(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("invalid server port")
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if config.Database.Dbname == "" {
		return fmt.Errorf("database name is required")
	}
	if config.Database.Port <= 0 {
		return fmt.Errorf("invalid database port")
	}

	if config.Auth.JWT.Secret == "" {
		if config.Environment != "development" && config.Environment != "test" {
			return fmt.Errorf("auth.jwt.secret is required in %s", config.Environment)
		}
		config.Auth.JWT.Secret = "insecure-development-secret"
	}
	if config.Auth.JWT.AccessTokenTTL <= 0 || config.Auth.JWT.AdminTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}

	switch config.Storage.Driver {
	case "local", "s3", "ipfs":
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}
	if config.Storage.Driver == "s3" && (config.Storage.S3.Endpoint == "" || config.Storage.S3.Bucket == "") {
		return fmt.Errorf("storage.s3.endpoint and storage.s3.bucket are required for the s3 driver")
	}

	for _, t := range config.Moderation.Transitions {
		if parts := strings.Split(t, "->"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("malformed moderation transition %q", t)
		}
	}

	switch config.Views.Mode {
	case "direct":
	case "buffered":
		if !config.Redis.Enabled {
			return fmt.Errorf("views.mode=buffered requires redis.enabled")
		}
	default:
		return fmt.Errorf("unknown views mode %q", config.Views.Mode)
	}

	if config.Events.Enabled && config.Events.URL == "" {
		return fmt.Errorf("events.url is required when events are enabled")
	}

	return nil
}

// resolveStoragePaths converts a relative upload dir to an absolute path
func resolveStoragePaths(config *Config, basePath string) error {
	uploadDir := config.Storage.UploadDir
	if !filepath.IsAbs(uploadDir) {
		absPath, err := filepath.Abs(filepath.Join(basePath, uploadDir))
		if err != nil {
			return fmt.Errorf("failed to resolve upload directory path: %v", err)
		}
		config.Storage.UploadDir = absPath
	}
	return nil
}
