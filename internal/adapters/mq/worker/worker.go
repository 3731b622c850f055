// Package worker drives the rolling log simulator on a fixed interval.
package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/statusfolio/internal/adapters/mq/queue"
	"github.com/okian/statusfolio/internal/domain/logsim"
	"github.com/okian/statusfolio/pkg/logger"
	"github.com/okian/statusfolio/pkg/metrics"
)

// Simulator is the part of logsim.Simulator the ticker drives.
type Simulator interface {
	TickWithEvictions() (logsim.Entry, []logsim.Entry)
	Entries() []logsim.Entry
	Capacity() int
}

// Worker is a cancellable background loop.
type Worker interface {
	// Run starts the loop until ctx is canceled or Shutdown is called.
	Run(ctx context.Context)

	// Shutdown stops the loop. Once it returns no further tick happens.
	Shutdown(ctx context.Context) error
}

// LogTicker appends one simulated log entry per interval.
type LogTicker struct {
	sim       Simulator
	publisher queue.Publisher
	interval  time.Duration
	source    <-chan time.Time
	name      string

	// mu orders ticks against Shutdown.
	mu      sync.Mutex
	stopped bool

	started  atomic.Bool
	ticks    atomic.Uint64
	shutdown chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	logger logger.Logger
}

var _ Worker = (*LogTicker)(nil)

// NewTicker creates a ticker for sim. A non-positive interval falls back to
// logsim.DefaultInterval.
func NewTicker(sim Simulator, interval time.Duration, opts ...Option) *LogTicker {
	if interval <= 0 {
		interval = logsim.DefaultInterval
	}
	t := &LogTicker{
		sim:      sim,
		interval: interval,
		name:     "log-ticker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("ticker"),
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.name != "log-ticker" {
		t.logger = t.logger.Named(t.name)
	}

	return t
}

// Run ticks until ctx is canceled, Shutdown is called, or the tick source
// closes. Only the first call runs; later calls return immediately.
func (t *LogTicker) Run(ctx context.Context) {
	if !t.started.CompareAndSwap(false, true) {
		return
	}
	defer close(t.done)

	source := t.source
	if source == nil {
		tk := time.NewTicker(t.interval)
		defer tk.Stop()
		source = tk.C
	}

	metrics.UpdateTickerRunning(true)
	defer metrics.UpdateTickerRunning(false)

	t.logger.Info(ctx, "log ticker started",
		logger.Duration("interval", t.interval),
		logger.Int("capacity", t.sim.Capacity()),
	)
	defer t.logger.Info(context.WithoutCancel(ctx), "log ticker stopped", logger.Uint64("ticks", t.ticks.Load()))

	for {
		select {
		case <-ctx.Done():
			t.stop()
			return
		case <-t.shutdown:
			return
		case _, ok := <-source:
			if !ok {
				t.stop()
				return
			}
			t.step(ctx)
		}
	}
}

// Shutdown stops the ticker and waits for Run to return. It is safe to call
// more than once and before Run.
func (t *LogTicker) Shutdown(ctx context.Context) error {
	t.stop()
	t.stopOnce.Do(func() { close(t.shutdown) })

	if !t.started.Load() {
		return nil
	}

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		t.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Ticks returns how many entries this ticker generated.
func (t *LogTicker) Ticks() uint64 {
	return t.ticks.Load()
}

// Running reports whether Run is active.
func (t *LogTicker) Running() bool {
	if !t.started.Load() {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

func (t *LogTicker) stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

// step performs one tick and publishes the resulting snapshot.
func (t *LogTicker) step(ctx context.Context) {
	start := time.Now()

	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	entry, evicted := t.sim.TickWithEvictions()
	snap := queue.Snapshot{Entries: t.sim.Entries(), Capacity: t.sim.Capacity()}
	t.mu.Unlock()

	t.ticks.Add(1)

	if t.publisher != nil {
		if err := t.publisher.Publish(snap); err != nil {
			metrics.RecordErrorByComponent("ticker", "publish")
			t.logger.Debug(ctx, "snapshot not published", logger.Error(err))
		}
	}

	metrics.RecordLogTick(len(evicted), float64(time.Since(start).Microseconds())/1000)
	metrics.UpdateLogBufferSize(len(snap.Entries))

	t.logger.Debug(ctx, "log entry appended",
		logger.Uint64("seq", entry.Seq),
		logger.String("id", entry.ID),
		logger.String("message", entry.Message),
		logger.Int("evicted", len(evicted)),
	)
}
