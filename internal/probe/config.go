package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // Base URL of the service
	Timeout time.Duration // HTTP request timeout
	Ticks   int           // Number of log ticks to observe
	Verbose bool          // Enable verbose logging
}

// Stats holds probe statistics.
type Stats struct {
	ChartsVerified  int
	LogPolls        int
	TicksObserved   int
	EntriesObserved int
	Evictions       int
	CommandsChecked int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
