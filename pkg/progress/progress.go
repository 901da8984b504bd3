// Package progress reports how much of a phase has completed.
package progress

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Sink receives progress for one observed phase. It is purely
// observational: a Sink must never influence the work it watches.
type Sink interface {
	SetTotal(n int)
	Advance(delta int)
}

// Nop discards all progress.
type Nop struct{}

func (Nop) SetTotal(int) {}
func (Nop) Advance(int)  {}

// Bar renders progress as a terminal bar. Each SetTotal starts a new bar,
// finishing the previous one.
type Bar struct {
	mu          sync.Mutex
	w           io.Writer
	description string
	bar         *progressbar.ProgressBar
}

// NewBar creates a Bar that writes to w.
func NewBar(w io.Writer, description string) *Bar {
	return &Bar{w: w, description: description}
}

func (b *Bar) SetTotal(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar != nil {
		_ = b.bar.Finish()
	}
	b.bar = progressbar.NewOptions(n,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription(b.description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(b.w, "\n")
		}),
	)
}

func (b *Bar) Advance(delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar == nil || delta <= 0 {
		return
	}
	_ = b.bar.Add(delta)
}

// Finish completes the current bar, if any.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar != nil {
		_ = b.bar.Finish()
		b.bar = nil
	}
}

// Counter tallies progress in memory.
type Counter struct {
	mu        sync.Mutex
	total     int
	completed int
	updates   int
}

func (c *Counter) SetTotal(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = n
	c.completed = 0
}

func (c *Counter) Advance(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed += delta
	c.updates++
}

// Snapshot returns the current total, completed count and number of Advance calls.
func (c *Counter) Snapshot() (total, completed, updates int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total, c.completed, c.updates
}
