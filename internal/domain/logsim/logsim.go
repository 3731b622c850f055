// Package logsim simulates the rolling "system log" panel: a bounded window
// of synthetic status lines that grows by one randomly chosen message per tick.
package logsim

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Reference behavior of the log panel.
const (
	DefaultCapacity = 5
	DefaultInterval = 2500 * time.Millisecond
	TimestampLayout = "15:04:05"
)

// DefaultCatalog lists the candidate messages a tick chooses from.
var DefaultCatalog = []string{
	"GET /api/status 200 OK",
	"Compiling modules...",
	"Visitor session active",
	"Updating cache...",
	"Ping: 14ms",
	"Fetching repo data...",
	"Rendering components...",
	"Garbage collection...",
	"Syncing state...",
}

// DefaultSeed returns the entries shown before the first tick.
func DefaultSeed() []Entry {
	return []Entry{
		{ID: "1", Timestamp: "10:00:01", Message: "System initialized..."},
		{ID: "2", Timestamp: "10:00:02", Message: "Loading assets..."},
		{ID: "3", Timestamp: "10:00:03", Message: "Connected to edge network"},
	}
}

// Entry is one synthetic status line.
type Entry struct {
	Seq       uint64 `json:"seq"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// Simulator owns the log buffer and advances it one entry per Tick.
// Tick and Entries are safe to call from different goroutines.
type Simulator struct {
	mu       sync.Mutex
	buffer   *Buffer
	catalog  []string
	seed     []Entry
	capacity int
	seq      uint64

	rng    *rand.Rand
	now    func() time.Time
	nextID func() string
}

// NewSimulator creates a simulator preloaded with its seed entries.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		catalog:  DefaultCatalog,
		seed:     DefaultSeed(),
		capacity: DefaultCapacity,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // cosmetic message selection
		now:      time.Now,
		nextID:   newEntryID,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.buffer = NewBuffer(s.capacity)
	for _, e := range s.seed {
		s.seq++
		e.Seq = s.seq
		s.buffer.Push(e)
	}
	return s
}

// Tick appends one randomly chosen message stamped with the current time and
// returns it. Entries beyond the capacity are evicted oldest first.
func (s *Simulator) Tick() Entry {
	e, _ := s.tick()
	return e
}

// TickWithEvictions behaves like Tick and also reports the evicted entries.
func (s *Simulator) TickWithEvictions() (Entry, []Entry) {
	return s.tick()
}

func (s *Simulator) tick() (Entry, []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	e := Entry{
		Seq:       s.seq,
		ID:        s.nextID(),
		Timestamp: s.now().Format(TimestampLayout),
		Message:   s.catalog[s.rng.Intn(len(s.catalog))],
	}
	evicted := s.buffer.Push(e)
	return e, evicted
}

// Entries returns the visible entries, oldest first.
func (s *Simulator) Entries() []Entry {
	return s.buffer.Snapshot()
}

// Capacity returns the maximum number of visible entries.
func (s *Simulator) Capacity() int {
	return s.buffer.Cap()
}

// Catalog returns a copy of the candidate messages.
func (s *Simulator) Catalog() []string {
	return append([]string(nil), s.catalog...)
}

// newEntryID returns a time-ordered UUID, falling back to a random one.
func newEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
