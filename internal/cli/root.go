package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/medprep/internal/model"
	"github.com/ppiankov/medprep/internal/pipeline"
	"github.com/ppiankov/medprep/internal/validate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "MEDPREP"

var (
	cfgFile string
	verbose bool

	// configErr holds a config file read failure found during initConfig
	configErr error
)

// rootCmd builds the dataset when invoked without a subcommand
var rootCmd = &cobra.Command{
	Use:   "medprep",
	Short: "medprep - build a unified medical instruction-tuning dataset",
	Long: `medprep merges the HealthCareMagic and iCliniq question/answer dumps into
one line-delimited JSON dataset for instruction tuning.

Each record is sanitized on the way through: provider sign-offs are removed,
greeted patient names are replaced with "Patient", and whitespace is
collapsed. Sanitization is a best-effort heuristic, not de-identification.

Inputs (under data/raw):
  HealthCareMagic-100k.json   first 10000 records
  iCliniq.json                first 5000 records

Output:
  data/processed/medical_train_dataset.jsonl`,
	Args:          cobra.NoArgs,
	RunE:          runBuild,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to subcommands
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "medprep v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./medprep.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	configErr = readConfig(viper.GetViper(), cfgFile)
	if configErr == nil && verbose && viper.ConfigFileUsed() != "" {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// readConfig points v at the config file and environment. A missing
// default config file is not an error; a missing explicit one is.
func readConfig(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("medprep")
	}

	// MEDPREP_PATHS_RAW_DIR overrides paths.raw_dir, and so on
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// loadConfig merges defaults, the config file and environment into a validated Config
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	setDefaults(v, cfg)

	// A configured source list replaces the defaults instead of merging by index
	if v.IsSet("sources") {
		cfg.Sources = nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validate.NewConfigValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers scalar keys so environment overrides reach Unmarshal.
// Sources stay on the struct default unless a config file sets them.
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("paths.raw_dir", cfg.Paths.RawDir)
	v.SetDefault("paths.processed_dir", cfg.Paths.ProcessedDir)
	v.SetDefault("paths.output_file", cfg.Paths.OutputFile)
	v.SetDefault("output.mode", cfg.Output.Mode)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("cache.cleanup_interval", cfg.Cache.CleanupInterval)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("progress.interval", cfg.Progress.Interval)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger := newLogger(cfg.Log, cmd.ErrOrStderr())
	logger.Debug().
		Str("raw_dir", cfg.Paths.RawDir).
		Str("processed_dir", cfg.Paths.ProcessedDir).
		Int("sources", len(cfg.Sources)).
		Msg("configuration loaded")

	p := pipeline.NewPipeline(cfg, logger)
	result, err := p.Run(cmd.Context())
	if err != nil {
		logger.Error().Err(err).Msg("dataset build failed")
		return err
	}

	pipeline.RenderSummary(cmd.ErrOrStderr(), result)
	return nil
}
