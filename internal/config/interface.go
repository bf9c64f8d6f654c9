package config

// Service defines the interface for configuration operations
type Service interface {
	Load(path string) (*Config, error)
}

// Logger is the subset of logger.Logger the config package needs.
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogWarn(message string, fields map[string]interface{})
}
