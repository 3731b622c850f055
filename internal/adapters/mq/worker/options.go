package worker

import (
	"time"

	"github.com/okian/statusfolio/internal/adapters/mq/queue"
	"github.com/okian/statusfolio/pkg/logger"
)

// Option applies a configuration option to the LogTicker.
type Option func(*LogTicker)

// WithName sets the ticker name for identification and logging.
func WithName(name string) Option {
	return func(t *LogTicker) {
		if name != "" {
			t.name = name
		}
	}
}

// WithLogger sets a custom logger for the ticker.
func WithLogger(logger logger.Logger) Option {
	return func(t *LogTicker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithPublisher sets where snapshots go after every tick.
func WithPublisher(pub queue.Publisher) Option {
	return func(t *LogTicker) {
		if pub != nil {
			t.publisher = pub
		}
	}
}

// WithTickSource replaces the wall-clock ticker. Each value received on ch
// triggers one tick; a closed ch stops Run.
func WithTickSource(ch <-chan time.Time) Option {
	return func(t *LogTicker) {
		if ch != nil {
			t.source = ch
		}
	}
}
