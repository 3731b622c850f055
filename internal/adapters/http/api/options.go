package api

import "time"

const (
	defaultHeartbeat     = 15 * time.Second
	defaultMaxGridLevels = 16
)

// Option configures the API server.
type Option func(*serverConfig)

type serverConfig struct {
	heartbeat     time.Duration
	maxGridLevels int
}

// WithStreamHeartbeat sets how often an idle log stream sends an SSE comment
// to keep intermediaries from closing the connection.
func WithStreamHeartbeat(d time.Duration) Option {
	return func(c *serverConfig) {
		if d > 0 {
			c.heartbeat = d
		}
	}
}

// WithMaxGridLevels caps the grid rings a POST /api/radar request may ask for.
func WithMaxGridLevels(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxGridLevels = n
		}
	}
}
