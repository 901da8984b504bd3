package mapreduce

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dtnitsch/book-fingerprint/pkg/dispatch"
	"github.com/dtnitsch/book-fingerprint/pkg/progress"
	"github.com/dtnitsch/book-fingerprint/pkg/tokenizer"
)

// DefaultChunkSize is the number of tables merged by one reduction job.
const DefaultChunkSize = 4

// ErrInvalidChunkSize is returned for chunk sizes that would never shrink
// the list of tables.
var ErrInvalidChunkSize = errors.New("chunk size must be at least 2")

// Options tunes the parallel phases.
type Options struct {
	ChunkSize    int
	Workers      int
	PollInterval time.Duration
	// Sink receives progress; nil discards it.
	Sink   progress.Sink
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MapLines runs Map over every line in parallel, one job per line, and
// returns the partial tables in line order.
func MapLines(ctx context.Context, lines []string, tok tokenizer.Tokenizer, opts Options) ([]FrequencyTable, error) {
	job := dispatch.Dispatch(ctx, lines, func(_ context.Context, line string) (FrequencyTable, error) {
		return Map(line, tok)
	}, dispatch.Options{Workers: opts.Workers})

	job.Observe(opts.Sink, opts.PollInterval)

	tables, err := job.Collect()
	if err != nil {
		return nil, fmt.Errorf("failed to map lines: %w", err)
	}
	return tables, nil
}

// Chunk partitions tables into consecutive groups of at most n.
func Chunk(tables []FrequencyTable, n int) [][]FrequencyTable {
	chunks := make([][]FrequencyTable, 0, (len(tables)+n-1)/n)
	for i := 0; i < len(tables); i += n {
		end := min(i+n, len(tables))
		chunks = append(chunks, tables[i:end])
	}
	return chunks
}

// ReduceAll merges tables round by round. Each round splits the current list
// into chunks of opts.ChunkSize and reduces every chunk in parallel, until a
// single table remains.
func ReduceAll(ctx context.Context, tables []FrequencyTable, opts Options) (FrequencyTable, error) {
	n := opts.ChunkSize
	if n == 0 {
		n = DefaultChunkSize
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, n)
	}

	switch len(tables) {
	case 0:
		return FrequencyTable{}, nil
	case 1:
		return tables[0], nil
	}

	logger := opts.logger()
	current := tables
	for round := 1; len(current) > 1; round++ {
		chunks := Chunk(current, n)
		logger.Info("Reduction round started", "round", round, "tables", len(current), "chunks", len(chunks))

		job := dispatch.Dispatch(ctx, chunks, func(_ context.Context, chunk []FrequencyTable) (FrequencyTable, error) {
			return Reduce(chunk), nil
		}, dispatch.Options{Workers: opts.Workers})
		job.Observe(opts.Sink, opts.PollInterval)

		next, err := job.Collect()
		if err != nil {
			return nil, fmt.Errorf("reduction round %d failed: %w", round, err)
		}
		current = next
	}

	return current[0], nil
}
