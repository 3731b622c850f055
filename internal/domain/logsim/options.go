package logsim

import (
	"math/rand"
	"time"
)

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithRand injects the random source used to pick catalog messages.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithClock injects the wall clock used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator injects the entry id generator.
func WithIDGenerator(next func() string) Option {
	return func(s *Simulator) {
		if next != nil {
			s.nextID = next
		}
	}
}

// WithCatalog replaces the candidate messages. Empty catalogs are ignored.
func WithCatalog(messages []string) Option {
	return func(s *Simulator) {
		if len(messages) > 0 {
			s.catalog = append([]string(nil), messages...)
		}
	}
}

// WithSeed replaces the entries the buffer starts with.
func WithSeed(entries []Entry) Option {
	return func(s *Simulator) {
		s.seed = append([]Entry(nil), entries...)
	}
}

// WithCapacity sets the maximum number of visible entries.
func WithCapacity(capacity int) Option {
	return func(s *Simulator) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}
