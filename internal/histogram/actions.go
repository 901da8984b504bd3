package histogram

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dtnitsch/book-fingerprint/models"
	"github.com/dtnitsch/book-fingerprint/pkg/progress"
	"github.com/dtnitsch/book-fingerprint/pkg/storage"
	"github.com/urfave/cli/v2"
)

// Flags are the options of the default command.
var Flags = []cli.Flag{
	&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
	&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: models.DefaultOutput, Usage: "output PNG path"},
	&cli.IntFlag{Name: "chunk-size", Value: 4, Usage: "tables merged per reduction job (>= 2)"},
	&cli.IntFlag{Name: "workers", Usage: "worker count (0 = all CPUs)"},
	&cli.DurationFlag{Name: "poll-interval", Value: 500 * time.Millisecond, Usage: "progress re-sample interval"},
	&cli.IntFlag{Name: "scale", Value: 1, Usage: "upscale factor for the saved image"},
	&cli.StringFlag{Name: "tokenizer", Value: "prose", Usage: "tokenizer: prose or simple"},
	&cli.BoolFlag{Name: "detect-language", Value: true, Usage: "warn when the corpus is not English"},
	&cli.StringFlag{Name: "database", Usage: "SQLite file to record the run in"},
	&cli.StringFlag{Name: "cache-dir", Usage: "directory caching aggregated counts"},
	&cli.DurationFlag{Name: "cache-ttl", Usage: "cache entry lifetime (0 = never expires)"},
	&cli.IntFlag{Name: "top", Value: 25, Usage: "number of top keywords to report"},
	&cli.BoolFlag{Name: "manifest", Usage: "write a YAML summary next to the image"},
	&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors, no progress bars"},
}

// configFromContext layers defaults, the config file and explicit flags.
func configFromContext(c *cli.Context) (models.Config, error) {
	config := models.DefaultConfig()
	if c.IsSet("config") {
		loaded, err := models.LoadConfig(c.String("config"))
		if err != nil {
			return config, err
		}
		config = loaded
	}

	if c.IsSet("output") {
		config.Output = c.String("output")
	}
	if c.IsSet("chunk-size") {
		config.ChunkSize = c.Int("chunk-size")
	}
	if c.IsSet("workers") {
		config.WorkerCount = c.Int("workers")
	}
	if c.IsSet("poll-interval") {
		config.PollInterval = c.Duration("poll-interval")
	}
	if c.IsSet("scale") {
		config.Scale = c.Int("scale")
	}
	if c.IsSet("tokenizer") {
		config.Tokenizer = c.String("tokenizer")
	}
	if c.IsSet("detect-language") {
		config.DetectLanguage = c.Bool("detect-language")
	}
	if c.IsSet("database") {
		config.Database = c.String("database")
	}
	if c.IsSet("cache-dir") {
		config.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("cache-ttl") {
		config.CacheTTL = c.Duration("cache-ttl")
	}
	if c.IsSet("top") {
		config.TopN = c.Int("top")
	}
	if c.IsSet("manifest") {
		config.Manifest = c.Bool("manifest")
	}
	if c.IsSet("quiet") {
		config.Quiet = c.Bool("quiet")
	}

	config.Input = c.Args().First()
	return config, nil
}

// HistogramAction renders the fingerprint of the file named by the single
// positional argument.
func HistogramAction(c *cli.Context) error {
	config, err := configFromContext(c)

	logLevel := slog.LevelInfo
	if config.Quiet {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if c.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one input file")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  book-fingerprint book.txt                  # writes output.png")
		fmt.Fprintln(os.Stderr, "  book-fingerprint -o moby.png --scale 4 moby.txt")
		os.Exit(1)
	}

	runner := &Runner{
		Logger:  logger,
		Storage: &storage.Storage{},
		NewSink: func(phase Phase) progress.Sink {
			if config.Quiet {
				return progress.Nop{}
			}
			return progress.NewBar(os.Stderr, string(phase))
		},
		Stdout: os.Stdout,
	}

	result, err := runner.Run(c.Context, config)
	if err != nil {
		attrs := []any{"error", err}
		var pe *PhaseError
		if errors.As(err, &pe) {
			attrs = append(attrs, "phase", pe.Phase)
		}
		logger.Error("fingerprint failed", attrs...)
		os.Exit(ExitCode(err))
	}

	fmt.Printf("Fingerprint saved to: %s (%dx%d, %d distinct tokens)\n",
		result.OutputPath, result.Dimension, result.Dimension, len(result.Counts))
	if result.ManifestPath != "" {
		fmt.Printf("Summary manifest saved to: %s\n", result.ManifestPath)
	}
	if result.RunID > 0 {
		fmt.Printf("Run #%d recorded\n", result.RunID)
	}
	return nil
}
