package probe

import "time"

// Polling configuration constants.
const (
	// PollsPerTick is how often the log endpoint is read per tick interval.
	PollsPerTick = 4
	// MinPollInterval bounds polling against very short tick intervals.
	MinPollInterval = 5 * time.Millisecond
	// TickGrace is how many extra intervals the probe waits for a tick.
	TickGrace = 4
	// MinWatch is the shortest time the probe waits for ticks.
	MinWatch = 2 * time.Second
)

// geometryTolerance is the allowed absolute error for plot coordinates.
const geometryTolerance = 1e-6
