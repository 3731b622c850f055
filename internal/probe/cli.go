package probe

import (
	"fmt"
	"os"

	"github.com/okian/statusfolio/pkg/logger"
)

// SetupLogging initializes the global logger for the probe.
func SetupLogging(verbose bool) error {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		logger.SetLevelString("debug") //nolint:errcheck // constant level
	}
	return nil
}

// ShowHelp prints usage information for the probe.
func ShowHelp() {
	os.Stdout.WriteString(`statusfolio probe
=================

Smoke-tests a running statusfolio service: health, radar geometry, the
rolling log window and the command palette.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -timeout duration
        HTTP request timeout (default 10s)
  -ticks int
        Number of log ticks to observe (default 6)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Probe a local instance
  go run ./cmd/probe

  # Watch more ticks with debug output
  go run ./cmd/probe -ticks 12 -verbose
`)
}
