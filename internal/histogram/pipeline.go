package histogram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dtnitsch/book-fingerprint/models"
	"github.com/dtnitsch/book-fingerprint/pkg/caching"
	"github.com/dtnitsch/book-fingerprint/pkg/canvas"
	"github.com/dtnitsch/book-fingerprint/pkg/db"
	"github.com/dtnitsch/book-fingerprint/pkg/detector"
	"github.com/dtnitsch/book-fingerprint/pkg/manifest"
	"github.com/dtnitsch/book-fingerprint/pkg/mapreduce"
	"github.com/dtnitsch/book-fingerprint/pkg/progress"
	"github.com/dtnitsch/book-fingerprint/pkg/storage"
	"github.com/dtnitsch/book-fingerprint/pkg/tokenizer"
)

// Result summarizes a finished run.
type Result struct {
	OutputPath   string
	ManifestPath string
	RunID        int64
	LineCount    int
	Counts       mapreduce.FrequencyTable
	Dimension    int
	Step         float64
	Language     string
	CacheHit     bool
}

// Runner executes the fingerprint pipeline. Zero-value fields fall back to
// quiet defaults.
type Runner struct {
	Logger  *slog.Logger
	Storage *storage.Storage
	// NewSink returns the progress sink for one phase.
	NewSink func(phase Phase) progress.Sink
	// Tokenizer overrides the one named in the config.
	Tokenizer tokenizer.Tokenizer
	// Stdout receives the top keyword listing.
	Stdout io.Writer
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

func (r *Runner) sink(phase Phase) progress.Sink {
	if r.NewSink == nil {
		return progress.Nop{}
	}
	return r.NewSink(phase)
}

func finish(sink progress.Sink) {
	if f, ok := sink.(interface{ Finish() }); ok {
		f.Finish()
	}
}

func (r *Runner) tokenizerName(cfg models.Config) string {
	if r.Tokenizer != nil {
		return r.Tokenizer.Name()
	}
	return cfg.Tokenizer
}

func (r *Runner) loadTokenizer(cfg models.Config) (tokenizer.Tokenizer, error) {
	if r.Tokenizer != nil {
		return r.Tokenizer, nil
	}
	logger := r.logger()
	logger.Info("Loading tokenizer (might take a while)", "tokenizer", cfg.Tokenizer)
	tok, err := tokenizer.New(cfg.Tokenizer)
	if err != nil {
		return nil, err
	}
	logger.Info("Tokenizer ready", "tokenizer", tok.Name())
	return tok, nil
}

// Run reads cfg.Input, counts its tokens in parallel and writes the
// fingerprint image to cfg.Output. It either produces the complete image or
// fails; nothing partial is kept.
func (r *Runner) Run(ctx context.Context, cfg models.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, phaseErr(PhaseConfig, err)
	}

	logger := r.logger()
	s := r.Storage
	if s == nil {
		s = &storage.Storage{}
	}

	stats, err := s.GetFileStats(cfg.Input)
	if err != nil {
		return nil, phaseErr(PhaseRead, err)
	}
	logger.Info("Parsing file", "input", cfg.Input, "output", cfg.Output, "size_bytes", stats.SizeBytes)
	if s.HasFile(cfg.Output) {
		logger.Warn("Output file exists and will be overwritten", "output", cfg.Output)
	}
	data, err := s.ReadFile(cfg.Input)
	if err != nil {
		return nil, phaseErr(PhaseRead, err)
	}
	lines, err := storage.SplitLines(data)
	if err != nil {
		return nil, phaseErr(PhaseRead, err)
	}
	result := &Result{OutputPath: cfg.Output, LineCount: len(lines)}

	if cfg.DetectLanguage {
		result.Language = r.detectLanguage(lines)
	}

	tokName := r.tokenizerName(cfg)
	var cache *caching.Cache
	var cacheKey string
	if cfg.CacheDir != "" {
		cache, err = caching.NewCache(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			logger.Warn("Cache unavailable, counting from scratch", "error", err)
		} else {
			cacheKey = caching.Key(data, tokName)
			if counts, ok := cache.GetCounts(cacheKey); ok {
				logger.Info("Aggregated counts found in cache", "key", cacheKey[:12], "tokens", len(counts))
				result.Counts = counts
				result.CacheHit = true
			}
		}
	}

	if !result.CacheHit {
		counts, err := r.count(ctx, cfg, lines)
		if err != nil {
			return nil, err
		}
		result.Counts = counts

		if cache != nil {
			if err := cache.SetCounts(cacheKey, counts); err != nil {
				logger.Warn("Failed to cache aggregated counts", "error", err)
			}
		}
	}

	if err := r.render(cfg, result); err != nil {
		return nil, err
	}

	r.record(cfg, tokName, data, result)

	if cfg.Manifest {
		path, err := manifest.GenerateSummary(manifest.SummaryManifest{
			GeneratedAt:    time.Now().Format(time.RFC3339),
			InputPath:      cfg.Input,
			OutputPath:     cfg.Output,
			Tokenizer:      tokName,
			Language:       result.Language,
			LineCount:      result.LineCount,
			DistinctTokens: len(result.Counts),
			TotalTokens:    result.Counts.Total(),
			Dimension:      result.Dimension,
			EmptyCells:     result.Dimension*result.Dimension - len(result.Counts),
			Step:           result.Step,
			Scale:          cfg.Scale,
			CacheHit:       result.CacheHit,
			TopKeywords:    mapreduce.TopKeywords(result.Counts, cfg.TopN),
		}, s)
		if err != nil {
			logger.Warn("Failed to write summary manifest", "error", err)
		} else {
			result.ManifestPath = path
		}
	}

	if cfg.TopN > 0 {
		top := mapreduce.TopKeywords(result.Counts, cfg.TopN)
		keywords := make([]string, len(top))
		for i, kw := range top {
			keywords[i] = kw.String()
		}
		logger.Info("Top keywords", "keywords", keywords)
		if r.Stdout != nil && !cfg.Quiet {
			fmt.Fprintf(r.Stdout, "--- Top %d Words ---\n", cfg.TopN)
			mapreduce.PrintTopKeywords(r.Stdout, result.Counts, cfg.TopN)
		}
	}

	logger.Info("fin", "output", cfg.Output, "dimension", result.Dimension)
	return result, nil
}

// count runs the mapping phase and the reduction tree.
func (r *Runner) count(ctx context.Context, cfg models.Config, lines []string) (mapreduce.FrequencyTable, error) {
	logger := r.logger()

	tok, err := r.loadTokenizer(cfg)
	if err != nil {
		return nil, phaseErr(PhaseTokenizer, err)
	}

	logger.Info("Reading lines using all available workers", "lines", len(lines), "workers", cfg.WorkerCount)
	mapSink := r.sink(PhaseMapping)
	partials, err := mapreduce.MapLines(ctx, lines, tok, mapreduce.Options{
		Workers:      cfg.WorkerCount,
		PollInterval: cfg.PollInterval,
		Sink:         mapSink,
	})
	finish(mapSink)
	if err != nil {
		return nil, phaseErr(PhaseMapping, err)
	}

	logger.Info("Reducing counters", "tables", len(partials), "chunk_size", cfg.ChunkSize)
	reduceSink := r.sink(PhaseReduction)
	counts, err := mapreduce.ReduceAll(ctx, partials, mapreduce.Options{
		ChunkSize:    cfg.ChunkSize,
		Workers:      cfg.WorkerCount,
		PollInterval: cfg.PollInterval,
		Sink:         reduceSink,
		Logger:       logger,
	})
	finish(reduceSink)
	if err != nil {
		return nil, phaseErr(PhaseReduction, err)
	}

	logger.Info("Reduction complete", "distinct_tokens", len(counts), "total_tokens", counts.Total())
	return counts, nil
}

// render resolves the canvas, encodes it and writes the image.
func (r *Runner) render(cfg models.Config, result *Result) error {
	logger := r.logger()
	s := r.Storage
	if s == nil {
		s = &storage.Storage{}
	}

	if len(result.Counts) == 0 {
		return phaseErr(PhaseDimension, canvas.ErrEmptyCorpus)
	}

	logger.Info("Computing nearest perfect square", "tokens", len(result.Counts))
	result.Dimension = canvas.ResolveDimension(len(result.Counts))
	result.Step = canvas.Step(result.Counts)
	logger.Info("Found nearest perfect square", "cells", result.Dimension*result.Dimension, "dimension", result.Dimension, "step", result.Step)

	encodeSink := r.sink(PhaseEncoding)
	img, err := canvas.Encode(result.Counts, encodeSink)
	finish(encodeSink)
	if err != nil {
		return phaseErr(PhaseEncoding, err)
	}

	if err := s.SaveImage(cfg.Output, canvas.Scale(img, cfg.Scale)); err != nil {
		return phaseErr(PhaseWrite, err)
	}
	logger.Info("Image saved", "output", cfg.Output, "scale", cfg.Scale)
	return nil
}

// detectLanguage warns when the corpus does not look English, since the
// tagger only knows English.
func (r *Runner) detectLanguage(lines []string) string {
	logger := r.logger()
	lang, ok := detector.New().Detect(lines)
	if !ok {
		logger.Warn("Could not determine corpus language")
		return ""
	}
	if !detector.IsEnglish(lang) {
		logger.Warn("Corpus does not look English; part-of-speech tags may be unreliable", "language", lang.String())
	} else {
		logger.Info("Corpus language detected", "language", lang.String())
	}
	return lang.String()
}

// record stores the run in the history database when one is configured.
func (r *Runner) record(cfg models.Config, tokName string, data []byte, result *Result) {
	if cfg.Database == "" {
		return
	}
	logger := r.logger()

	database, err := db.Open(cfg.Database)
	if err != nil {
		logger.Warn("Failed to open database", "error", err)
		return
	}
	defer database.Close()

	runID, err := database.InsertRun(db.Run{
		InputPath:      cfg.Input,
		OutputPath:     cfg.Output,
		ContentHash:    caching.Key(data, ""),
		Tokenizer:      tokName,
		LineCount:      result.LineCount,
		DistinctTokens: len(result.Counts),
		TotalTokens:    result.Counts.Total(),
		Dimension:      result.Dimension,
		Step:           result.Step,
	}, result.Counts)
	if err != nil {
		logger.Warn("Failed to record run", "error", err)
		return
	}
	result.RunID = runID
	logger.Info("Run recorded", "run_id", runID, "database", database.Path())
}
