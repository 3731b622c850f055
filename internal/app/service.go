// Package service wires the portfolio domain together and implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/statusfolio/internal/adapters/mq/queue"
	"github.com/okian/statusfolio/internal/adapters/mq/worker"
	"github.com/okian/statusfolio/internal/domain/logsim"
	"github.com/okian/statusfolio/internal/domain/palette"
	"github.com/okian/statusfolio/internal/domain/profile"
	"github.com/okian/statusfolio/internal/domain/radar"
	"github.com/okian/statusfolio/pkg/logger"
	"github.com/okian/statusfolio/pkg/metrics"
)

const (
	defaultMaxSkills    = 32
	defaultStreamBuffer = 16
	tickerStopTimeout   = 5 * time.Second
)

// Service serves the portfolio page: static content, radar charts and the
// live log simulator.
type Service struct {
	mu sync.RWMutex

	// Core components
	profile *profile.Profile
	sim     *logsim.Simulator
	ticker  *worker.LogTicker
	stream  *queue.Broadcaster
	cancel  context.CancelFunc

	// Configuration
	profilePath  string
	logCapacity  int
	logInterval  time.Duration
	logCatalog   []string
	streamBuffer int
	maxSkills    int
	radarOpts    []radar.Option
	simOpts      []logsim.Option
	tickSource   <-chan time.Time

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProfilePath loads page content from a YAML file on Start.
func WithProfilePath(path string) Option {
	return func(s *Service) {
		s.profilePath = path
	}
}

// WithProfile uses p as page content instead of loading it.
func WithProfile(p *profile.Profile) Option {
	return func(s *Service) {
		if p != nil {
			s.profile = p
		}
	}
}

// WithLogCapacity sets the number of visible log lines.
func WithLogCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.logCapacity = capacity
		}
	}
}

// WithLogInterval sets the log tick period.
func WithLogInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.logInterval = interval
		}
	}
}

// WithLogCatalog replaces the simulated messages.
func WithLogCatalog(messages []string) Option {
	return func(s *Service) {
		if len(messages) > 0 {
			s.logCatalog = messages
		}
	}
}

// WithStreamBuffer sets the per-subscriber buffer of the live log stream.
func WithStreamBuffer(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.streamBuffer = size
		}
	}
}

// WithMaxSkills caps the number of skills a radar request may carry.
func WithMaxSkills(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSkills = n
		}
	}
}

// WithRadarOptions sets the chart geometry used for every projection.
func WithRadarOptions(opts ...radar.Option) Option {
	return func(s *Service) {
		s.radarOpts = append(s.radarOpts, opts...)
	}
}

// WithSimulatorOptions passes extra options to the log simulator.
func WithSimulatorOptions(opts ...logsim.Option) Option {
	return func(s *Service) {
		s.simOpts = append(s.simOpts, opts...)
	}
}

// WithTickSource drives the log ticker from ch instead of the wall clock.
func WithTickSource(ch <-chan time.Time) Option {
	return func(s *Service) {
		s.tickSource = ch
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		logCapacity:  logsim.DefaultCapacity,
		logInterval:  logsim.DefaultInterval,
		streamBuffer: defaultStreamBuffer,
		maxSkills:    defaultMaxSkills,
		logger:       nil, // replaced on Start
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the profile and launches the log ticker. Starting a started
// service is a no-op. The ticker stops when ctx ends or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting statusfolio service...")

	if s.profile == nil {
		p, err := profile.Load(ctx, s.profilePath)
		if err != nil {
			return fmt.Errorf("start service: %w", err)
		}
		s.profile = p
	}

	simOpts := []logsim.Option{logsim.WithCapacity(s.logCapacity)}
	if len(s.logCatalog) > 0 {
		simOpts = append(simOpts, logsim.WithCatalog(s.logCatalog))
	}
	s.sim = logsim.NewSimulator(append(simOpts, s.simOpts...)...)
	s.stream = queue.NewBroadcaster(queue.WithBufferSize(s.streamBuffer))

	tickerOpts := []worker.Option{
		worker.WithPublisher(s.stream),
		worker.WithLogger(s.logger.Named("ticker")),
	}
	if s.tickSource != nil {
		tickerOpts = append(tickerOpts, worker.WithTickSource(s.tickSource))
	}
	s.ticker = worker.NewTicker(s.sim, s.logInterval, tickerOpts...)

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.ticker.Run(runCtx)

	metrics.UpdateLogBufferSize(len(s.sim.Entries()))

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "statusfolio service started",
		logger.String("profile", s.profile.Name),
		logger.Int("skills", len(s.profile.Skills)),
		logger.Int("logCapacity", s.logCapacity),
		logger.Duration("logInterval", s.logInterval),
	)

	return nil
}

// Stop halts the log ticker and closes every live stream. After Stop
// returns the log buffer no longer changes. It is safe to call repeatedly.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping statusfolio service...")

	if s.cancel != nil {
		s.cancel()
	}

	stopCtx, cancel := context.WithTimeout(ctx, tickerStopTimeout)
	defer cancel()
	if err := s.ticker.Shutdown(stopCtx); err != nil {
		s.logger.Warn(ctx, "log ticker did not stop cleanly", logger.Error(err))
	}

	_ = s.stream.Close()

	s.started = false
	s.logger.Info(ctx, "statusfolio service stopped", logger.Uint64("ticks", s.ticker.Ticks()))
}

// Profile returns the page content. Before Start it is the built-in profile
// or the one passed with WithProfile.
func (s *Service) Profile() *profile.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return profile.Default()
	}
	return s.profile
}

// Radar projects skills onto the configured chart geometry. opts override
// the configured geometry for this call only.
func (s *Service) Radar(_ context.Context, skills []radar.Skill, opts ...radar.Option) (radar.Chart, error) {
	s.mu.RLock()
	maxSkills := s.maxSkills
	all := append(append([]radar.Option(nil), s.radarOpts...), opts...)
	s.mu.RUnlock()

	if len(skills) > maxSkills {
		metrics.RecordRadarError()
		return radar.Chart{}, fmt.Errorf("%w: %d > %d", ErrTooManySkills, len(skills), maxSkills)
	}

	chart, err := radar.Project(skills, all...)
	if err != nil {
		metrics.RecordRadarError()
		return radar.Chart{}, err
	}

	metrics.RecordRadarProjection(len(skills))
	return chart, nil
}

// DefaultRadar projects the profile skills.
func (s *Service) DefaultRadar(ctx context.Context) (radar.Chart, error) {
	return s.Radar(ctx, s.Profile().Skills)
}

// Logs returns the current log buffer, oldest entry first.
func (s *Service) Logs(_ context.Context) (queue.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return queue.Snapshot{}, ErrNotStarted
	}
	return queue.Snapshot{Entries: s.sim.Entries(), Capacity: s.sim.Capacity()}, nil
}

// Subscribe streams a snapshot after every tick until ctx ends, cancel is
// called, or the service stops.
func (s *Service) Subscribe(ctx context.Context) (<-chan queue.Snapshot, func(), error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, nil, ErrNotStarted
	}
	ch, cancel := s.stream.Subscribe(ctx, s.streamBuffer)
	return ch, cancel, nil
}

// Commands returns the palette actions whose label matches query.
func (s *Service) Commands(_ context.Context, query string) []palette.Action {
	return palette.Filter(s.Profile().Commands, query)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"logCapacity":   s.logCapacity,
		"logIntervalMs": s.logInterval.Milliseconds(),
		"maxSkills":     s.maxSkills,
	}

	if s.profile != nil {
		stats["skills"] = len(s.profile.Skills)
	}

	if s.started {
		bufferLen := len(s.sim.Entries())
		subscribers := s.stream.Len()

		stats["bufferLength"] = bufferLen
		stats["subscribers"] = subscribers
		stats["ticks"] = s.ticker.Ticks()
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())

		metrics.UpdateLogBufferSize(bufferLen)
		metrics.UpdateStreamSubscribers(subscribers)
	}

	return stats
}
