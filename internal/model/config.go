package model

import "time"

// Source identifiers understood by the adapter registry
const (
	SourceHealthCareMagic = "healthcaremagic"
	SourceICliniq         = "icliniq"
)

// Default per-source caps
const (
	DefaultHealthCareMagicLimit = 10000
	DefaultICliniqLimit         = 5000
)

// Output write modes
const (
	OutputModeTruncate = "truncate"
	OutputModeAtomic   = "atomic"
)

// Config is the complete medprep configuration
type Config struct {
	Paths    PathsConfig    `mapstructure:"paths" yaml:"paths" validate:"required"`
	Sources  []SourceConfig `mapstructure:"sources" yaml:"sources" validate:"required,min=1,unique=ID,dive"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Progress ProgressConfig `mapstructure:"progress" yaml:"progress"`
}

// PathsConfig holds the two path roots and the output file name
type PathsConfig struct {
	RawDir       string `mapstructure:"raw_dir" yaml:"raw_dir" validate:"required"`
	ProcessedDir string `mapstructure:"processed_dir" yaml:"processed_dir" validate:"required"`
	OutputFile   string `mapstructure:"output_file" yaml:"output_file" validate:"required,excludesall=/\\"`
}

// SourceConfig binds an input file to an adapter and a cap
type SourceConfig struct {
	ID    string `mapstructure:"id" yaml:"id" validate:"required,source_id"`
	File  string `mapstructure:"file" yaml:"file" validate:"required"`
	Limit int    `mapstructure:"limit" yaml:"limit" validate:"gte=0"`
}

// OutputConfig controls how the dataset file is replaced
type OutputConfig struct {
	Mode string `mapstructure:"mode" yaml:"mode" validate:"oneof=truncate atomic"`
}

// CacheConfig controls the sanitizer memo
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL             time.Duration `mapstructure:"ttl" yaml:"ttl" validate:"gte=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval" validate:"gte=0"`
}

// LogConfig controls zerolog output
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=console json"`
}

// ProgressConfig throttles progress lines while adapting records
type ProgressConfig struct {
	Interval time.Duration `mapstructure:"interval" yaml:"interval" validate:"gte=0"`
}

// DefaultConfig returns the built-in configuration. Running with it
// reproduces the fixed two-source layout under data/raw and data/processed.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			RawDir:       "data/raw",
			ProcessedDir: "data/processed",
			OutputFile:   "medical_train_dataset.jsonl",
		},
		Sources: []SourceConfig{
			{ID: SourceHealthCareMagic, File: "HealthCareMagic-100k.json", Limit: DefaultHealthCareMagicLimit},
			{ID: SourceICliniq, File: "iCliniq.json", Limit: DefaultICliniqLimit},
		},
		Output: OutputConfig{
			Mode: OutputModeTruncate,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             0, // no expiry within a run
			CleanupInterval: 10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Progress: ProgressConfig{
			Interval: 2 * time.Second,
		},
	}
}
