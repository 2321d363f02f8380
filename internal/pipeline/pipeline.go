package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ppiankov/medprep/internal/adapters"
	"github.com/ppiankov/medprep/internal/cache"
	"github.com/ppiankov/medprep/internal/model"
	"github.com/ppiankov/medprep/internal/sanitize"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Pipeline builds the unified training dataset from the configured sources
type Pipeline struct {
	config    *model.Config
	sanitizer *sanitize.Sanitizer
	registry  *adapters.Registry
	writer    *DatasetWriter
	logger    zerolog.Logger
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger zerolog.Logger) *Pipeline {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}
	sanitizer := sanitize.NewSanitizer(c)

	return &Pipeline{
		config:    cfg,
		sanitizer: sanitizer,
		registry:  adapters.NewRegistry(sanitizer),
		writer:    NewDatasetWriter(cfg.Output.Mode),
		logger:    logger,
	}
}

// Result describes a completed run
type Result struct {
	Dataset     model.Dataset
	Sources     []model.SourceStats
	OutputPath  string
	CacheHits   int
	CacheMisses int
	Duration    time.Duration
}

// OutputPath returns where the dataset is written
func (p *Pipeline) OutputPath() string {
	return filepath.Join(p.config.Paths.ProcessedDir, p.config.Paths.OutputFile)
}

// SourcePath resolves a source file against the raw-data root
func (p *Pipeline) SourcePath(src model.SourceConfig) string {
	if filepath.IsAbs(src.File) {
		return src.File
	}
	return filepath.Join(p.config.Paths.RawDir, src.File)
}

// Run processes every source in order, then writes the dataset once.
// A missing source is skipped; any other load error aborts before the
// output file is touched.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{OutputPath: p.OutputPath()}

	for _, src := range p.config.Sources {
		stats, err := p.processSource(ctx, src, &result.Dataset)
		if err != nil {
			return nil, err
		}
		result.Sources = append(result.Sources, stats)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	p.logger.Info().
		Str("path", result.OutputPath).
		Int("records", len(result.Dataset)).
		Str("mode", p.writer.mode).
		Msg("writing dataset")

	if err := p.writer.WriteFile(result.OutputPath, result.Dataset); err != nil {
		return nil, fmt.Errorf("write dataset %s: %w", result.OutputPath, err)
	}

	result.CacheHits, result.CacheMisses = p.sanitizer.Stats()
	result.Duration = time.Since(start)

	p.logger.Info().
		Str("path", result.OutputPath).
		Int("records", len(result.Dataset)).
		Dur("duration", result.Duration).
		Msg("dataset written")

	return result, nil
}

// processSource appends at most src.Limit adapted records to dataset
func (p *Pipeline) processSource(ctx context.Context, src model.SourceConfig, dataset *model.Dataset) (model.SourceStats, error) {
	path := p.SourcePath(src)
	stats := model.SourceStats{ID: src.ID, Path: path}
	log := p.logger.With().Str("source", src.ID).Str("path", path).Logger()

	adapter, ok := p.registry.Lookup(src.ID)
	if !ok {
		return stats, fmt.Errorf("no adapter for source %q", src.ID)
	}

	log.Info().Msg("reading source")
	records, err := LoadRecords(src.ID, path)
	if err != nil {
		if errors.Is(err, ErrSourceMissing) {
			log.Warn().Msg("source file not found, skipping")
			return stats, nil
		}
		return stats, err
	}
	stats.Found = true
	stats.InFile = len(records)

	if len(records) > src.Limit {
		records = records[:src.Limit]
	}

	progress := &rate.Sometimes{First: 1, Interval: p.config.Progress.Interval}
	for i, raw := range records {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("run cancelled: %w", err)
		}
		*dataset = append(*dataset, adapter.Adapt(raw))
		stats.Taken++

		progress.Do(func() {
			log.Debug().Int("done", i+1).Int("total", len(records)).Msg("adapting records")
		})
	}

	log.Info().
		Int("in_file", stats.InFile).
		Int("taken", stats.Taken).
		Int("limit", src.Limit).
		Msg("source processed")

	return stats, nil
}
