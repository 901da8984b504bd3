// Package dispatch runs independent jobs on a bounded worker pool and lets the
// caller watch them drain.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dtnitsch/book-fingerprint/pkg/progress"
	"golang.org/x/sync/errgroup"
)

// DefaultPollInterval is how often Observe re-samples Remaining when no
// completion signal arrives.
const DefaultPollInterval = 500 * time.Millisecond

// ErrCollected is returned by a second Collect on the same Job.
var ErrCollected = errors.New("job already collected")

// WorkerError reports the item whose worker failed first.
type WorkerError struct {
	Index int
	Err   error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker failed on item %d: %v", e.Index, e.Err)
}

func (e *WorkerError) Unwrap() error { return e.Err }

// Options configures a dispatch.
type Options struct {
	// Workers caps concurrent workers. Zero means runtime.GOMAXPROCS(0).
	Workers int
}

// Job is the handle for one dispatch. It is owned by the caller of Dispatch
// and can be collected once.
type Job[O any] struct {
	total     int
	remaining atomic.Int64
	collected atomic.Bool

	// signal coalesces "an item finished" notifications.
	signal chan struct{}
	done   chan struct{}

	results []O
	err     error
}

// Dispatch submits every item to a fresh worker pool and returns immediately.
// fn runs once per item; results keep submission order. The first error
// cancels the remaining items and is reported by Collect.
func Dispatch[I, O any](ctx context.Context, items []I, fn func(context.Context, I) (O, error), opts Options) *Job[O] {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	job := &Job[O]{
		total:   len(items),
		signal:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		results: make([]O, len(items)),
	}
	job.remaining.Store(int64(len(items)))

	go func() {
		defer close(job.done)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		for i, item := range items {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() (err error) {
				defer job.finish()
				defer func() {
					if r := recover(); r != nil {
						err = &WorkerError{Index: i, Err: fmt.Errorf("panic: %v", r)}
					}
				}()

				if err := gctx.Err(); err != nil {
					return err
				}
				out, err := fn(gctx, item)
				if err != nil {
					return &WorkerError{Index: i, Err: err}
				}
				job.results[i] = out
				return nil
			})
		}

		err := g.Wait()
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			job.err = err
			job.results = nil
		}
	}()

	return job
}

func (j *Job[O]) finish() {
	j.remaining.Add(-1)
	select {
	case j.signal <- struct{}{}:
	default:
	}
}

// Total is the number of submitted items.
func (j *Job[O]) Total() int { return j.total }

// Remaining is the number of items not yet completed.
func (j *Job[O]) Remaining() int {
	if n := j.remaining.Load(); n > 0 {
		return int(n)
	}
	return 0
}

// Ready reports whether the job has finished, successfully or not.
func (j *Job[O]) Ready() bool {
	select {
	case <-j.done:
		return true
	default:
		return false
	}
}

// Done is closed once the job has finished.
func (j *Job[O]) Done() <-chan struct{} { return j.done }

// Collect blocks until the job finishes and returns results in submission
// order. On failure no partial results are returned.
func (j *Job[O]) Collect() ([]O, error) {
	if !j.collected.CompareAndSwap(false, true) {
		return nil, ErrCollected
	}
	<-j.done

	results, err := j.results, j.err
	j.results = nil
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Observe forwards completion deltas to sink until the job finishes. The
// completed count it reports never decreases.
func (j *Job[O]) Observe(sink progress.Sink, interval time.Duration) {
	if sink == nil {
		sink = progress.Nop{}
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	sink.SetTotal(j.total)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	reported := 0
	sample := func() {
		completed := j.total - j.Remaining()
		if completed > reported {
			sink.Advance(completed - reported)
			reported = completed
		}
	}

	for {
		select {
		case <-j.signal:
			sample()
		case <-ticker.C:
			sample()
		case <-j.done:
			sample()
			return
		}
	}
}
