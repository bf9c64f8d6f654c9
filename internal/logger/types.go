package logger

// Level represents the logging level
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
	FatalLevel Level = "fatal"
)

// FileConfig controls writing logs to a file instead of Output.
type FileConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// SamplingConfig mirrors zap's sampling knobs. Zero values disable sampling.
type SamplingConfig struct {
	Initial    int `mapstructure:"initial" yaml:"initial"`
	Thereafter int `mapstructure:"thereafter" yaml:"thereafter"`
}

// Config holds the logger configuration
type Config struct {
	Level       Level          `mapstructure:"level" yaml:"level"`
	Format      string         `mapstructure:"format" yaml:"format"` // json or console
	Output      string         `mapstructure:"output" yaml:"output"` // stdout, stderr or a path
	Development bool           `mapstructure:"development" yaml:"development"`
	File        FileConfig     `mapstructure:"file" yaml:"file"`
	Sampling    SamplingConfig `mapstructure:"sampling" yaml:"sampling"`
}
