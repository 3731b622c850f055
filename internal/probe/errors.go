package probe

import "errors"

// Sentinel kinds for probe failures.
var (
	ErrUnhealthy      = errors.New("service unhealthy")
	ErrChartMismatch  = errors.New("radar chart mismatch")
	ErrWindowMismatch = errors.New("log window mismatch")
	ErrNoTicks        = errors.New("log did not advance")
	ErrUnexpected     = errors.New("unexpected response")
)
