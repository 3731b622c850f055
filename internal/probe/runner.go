// Package probe smoke-tests a running statusfolio service over HTTP.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/statusfolio/internal/adapters/mq/queue"
	"github.com/okian/statusfolio/internal/domain/palette"
	"github.com/okian/statusfolio/internal/domain/profile"
	"github.com/okian/statusfolio/internal/domain/radar"
	"github.com/okian/statusfolio/pkg/logger"
)

// Run executes every probe step against config.BaseURL.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(config.BaseURL, config.Timeout)

	logger.Get().Info(ctx, "starting statusfolio probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("ticks", config.Ticks),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Verify the profile radar and a custom projection
	if err := verifyRadar(ctx, client, stats); err != nil {
		return stats, fmt.Errorf("radar verification failed: %w", err)
	}

	// Step 3: Watch the rolling log
	if err := watchLogs(ctx, client, config.Ticks, stats); err != nil {
		return stats, fmt.Errorf("log verification failed: %w", err)
	}

	// Step 4: Query the command palette
	if err := verifyCommands(ctx, client, stats); err != nil {
		return stats, fmt.Errorf("command verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "probe completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	status, _, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	// Any 200 is healthy; the body is the Prometheus exposition.
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

func verifyRadar(ctx context.Context, client *HTTPClient, stats *Stats) error {
	logger.Get().Info(ctx, "verifying radar geometry")

	var p profile.Profile
	if err := client.GetJSON(ctx, "/api/profile", &p); err != nil {
		return err
	}
	var chart radar.Chart
	if err := client.GetJSON(ctx, "/api/radar", &chart); err != nil {
		return err
	}
	if err := VerifyChart(chart, p.Skills); err != nil {
		return err
	}
	stats.ChartsVerified++
	logger.Get().Debug(ctx, "profile radar verified", logger.Int("skills", len(p.Skills)))

	custom := []radar.Skill{{Name: "Go", Level: 100}, {Name: "Ops", Level: 50}, {Name: "Docs", Level: 0}}
	status, body, err := client.Post(ctx, "/api/radar", map[string]interface{}{
		"skills":      custom,
		"radius":      50.0,
		"center":      radar.Point{X: 60, Y: 60},
		"grid_levels": []float64{50, 100},
	})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: POST /api/radar returned %d", ErrUnexpected, status)
	}
	if err := decodeJSON(body, &chart); err != nil {
		return err
	}
	if chart.Radius != 50 || chart.Center != (radar.Point{X: 60, Y: 60}) || len(chart.Rings) != 2 {
		return fmt.Errorf("%w: custom geometry not applied", ErrChartMismatch)
	}
	if err := VerifyChart(chart, custom); err != nil {
		return err
	}
	stats.ChartsVerified++

	status, _, err = client.Post(ctx, "/api/radar", map[string]interface{}{"skills": []radar.Skill{}})
	if err != nil {
		return err
	}
	if status != http.StatusBadRequest {
		return fmt.Errorf("%w: empty skill list returned %d, want 400", ErrUnexpected, status)
	}

	logger.Get().Info(ctx, "radar geometry verified", logger.Int("charts", stats.ChartsVerified))
	return nil
}

// serviceStats is the subset of /stats the probe relies on.
type serviceStats struct {
	Started       bool  `json:"started"`
	LogCapacity   int   `json:"logCapacity"`
	LogIntervalMs int64 `json:"logIntervalMs"`
}

func watchLogs(ctx context.Context, client *HTTPClient, ticks int, stats *Stats) error {
	if ticks <= 0 {
		logger.Get().Info(ctx, "skipping log watch")
		return nil
	}

	var svc serviceStats
	if err := client.GetJSON(ctx, "/stats", &svc); err != nil {
		return err
	}
	if !svc.Started {
		return fmt.Errorf("%w: log ticker not started", ErrUnexpected)
	}
	interval := time.Duration(svc.LogIntervalMs) * time.Millisecond
	poll := interval / PollsPerTick
	if poll < MinPollInterval {
		poll = MinPollInterval
	}
	deadline := time.Duration(ticks+TickGrace) * interval
	if deadline < MinWatch {
		deadline = MinWatch
	}

	logger.Get().Info(ctx, "watching rolling log",
		logger.Int("ticks", ticks),
		logger.Duration("interval", interval),
		logger.Int("capacity", svc.LogCapacity))

	var prev queue.Snapshot
	if err := client.GetJSON(ctx, "/api/logs", &prev); err != nil {
		return err
	}
	if _, _, err := VerifyWindow(queue.Snapshot{}, prev); err != nil {
		return err
	}
	if svc.LogCapacity > 0 && prev.Capacity != svc.LogCapacity {
		return fmt.Errorf("%w: capacity %d, stats report %d", ErrWindowMismatch, prev.Capacity, svc.LogCapacity)
	}
	stats.LogPolls++
	stats.EntriesObserved += len(prev.Entries)

	watchCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for stats.TicksObserved < ticks {
		select {
		case <-watchCtx.Done():
			return fmt.Errorf("%w: saw %d of %d ticks in %s", ErrNoTicks, stats.TicksObserved, ticks, deadline)
		case <-ticker.C:
		}

		var next queue.Snapshot
		if err := client.GetJSON(watchCtx, "/api/logs", &next); err != nil {
			return err
		}
		advanced, evicted, err := VerifyWindow(prev, next)
		if err != nil {
			return err
		}
		stats.LogPolls++
		stats.TicksObserved += advanced
		stats.EntriesObserved += advanced
		stats.Evictions += evicted
		if advanced > 0 {
			latest, _ := next.Latest()
			logger.Get().Debug(ctx, "log advanced",
				logger.Int("ticks", advanced),
				logger.Int("evicted", evicted),
				logger.Uint64("seq", latest.Seq),
				logger.String("message", latest.Message))
		}
		prev = next
	}

	logger.Get().Info(ctx, "rolling log verified",
		logger.Int("ticks", stats.TicksObserved),
		logger.Int("evictions", stats.Evictions))
	return nil
}

func verifyCommands(ctx context.Context, client *HTTPClient, stats *Stats) error {
	var all []palette.Action
	if err := client.GetJSON(ctx, "/api/commands", &all); err != nil {
		return err
	}
	if len(all) == 0 {
		return fmt.Errorf("%w: command palette is empty", ErrUnexpected)
	}
	var none []palette.Action
	if err := client.GetJSON(ctx, "/api/commands?q=no-such-command", &none); err != nil {
		return err
	}
	if len(none) != 0 {
		return fmt.Errorf("%w: unmatched query returned %d commands", ErrUnexpected, len(none))
	}
	stats.CommandsChecked = len(all)
	return nil
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var ticksPerSecond float64
	if stats.Duration > 0 {
		ticksPerSecond = float64(stats.TicksObserved) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Duration("duration", stats.Duration),
		logger.Int("chartsVerified", stats.ChartsVerified),
		logger.Int("logPolls", stats.LogPolls),
		logger.Int("ticksObserved", stats.TicksObserved),
		logger.Int("entriesObserved", stats.EntriesObserved),
		logger.Int("evictions", stats.Evictions),
		logger.Int("commands", stats.CommandsChecked),
		logger.Float64("ticksPerSecond", ticksPerSecond))
}
