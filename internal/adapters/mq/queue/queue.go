// Package queue fans log snapshots out to live subscribers.
//
// Publish never blocks: a subscriber whose buffer is full loses its oldest
// pending snapshot so it always catches up to the latest state.
package queue

import (
	"context"
	"sync"

	"github.com/okian/statusfolio/internal/domain/logsim"
	"github.com/okian/statusfolio/pkg/metrics"
)

const defaultBufferSize = 16

// Snapshot is the rolling log buffer at one point in time, oldest entry first.
// Subscribers share the Entries slice and must not modify it.
type Snapshot struct {
	Entries  []logsim.Entry `json:"entries"`
	Capacity int            `json:"capacity"`
}

// Latest returns the newest entry of the snapshot.
func (s Snapshot) Latest() (logsim.Entry, bool) {
	if len(s.Entries) == 0 {
		return logsim.Entry{}, false
	}
	return s.Entries[len(s.Entries)-1], true
}

// Publisher is the write side used by the log ticker.
type Publisher interface {
	Publish(s Snapshot) error
}

type subscriber struct {
	ch   chan Snapshot
	done chan struct{}
	once sync.Once
}

func (s *subscriber) stop() {
	s.once.Do(func() {
		close(s.done)
		close(s.ch)
	})
}

// Broadcaster delivers every published snapshot to all current subscribers.
type Broadcaster struct {
	mu         sync.RWMutex
	subs       map[uint64]*subscriber
	nextID     uint64
	bufferSize int
	closed     bool
}

// NewBroadcaster creates an open broadcaster.
func NewBroadcaster(opts ...Option) *Broadcaster {
	b := &Broadcaster{
		subs:       make(map[uint64]*subscriber),
		bufferSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	metrics.UpdateStreamSubscribers(0)
	return b
}

// Subscribe registers a new subscriber. The returned channel is closed when
// ctx ends, when cancel is called, or when the broadcaster is closed.
// Subscribing to a closed broadcaster yields an already closed channel.
func (b *Broadcaster) Subscribe(ctx context.Context, buffer int) (<-chan Snapshot, func()) {
	if buffer <= 0 {
		buffer = b.bufferSize
	}
	sub := &subscriber{
		ch:   make(chan Snapshot, buffer),
		done: make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.stop()
		return sub.ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	metrics.UpdateStreamSubscribers(len(b.subs))
	b.mu.Unlock()

	cancel := func() { b.unsubscribe(id) }

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-sub.done:
		}
	}()

	return sub.ch, cancel
}

func (b *Broadcaster) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subs[id]
	if !ok {
		return
	}
	delete(b.subs, id)
	sub.stop()
	metrics.UpdateStreamSubscribers(len(b.subs))
}

// Publish hands s to every subscriber without blocking.
func (b *Broadcaster) Publish(s Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	dropped := 0
	for _, sub := range b.subs {
		if !deliver(sub.ch, s) {
			dropped++
		}
	}
	metrics.RecordStreamPublish(dropped)
	return nil
}

// deliver sends s, evicting the oldest pending snapshot when the buffer is
// full. It reports false when a pending snapshot had to be dropped.
func deliver(ch chan Snapshot, s Snapshot) bool {
	select {
	case ch <- s:
		return true
	default:
	}

	select {
	case <-ch:
	default:
	}

	select {
	case ch <- s:
	default:
	}
	return false
}

// Len returns the number of live subscribers.
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Further publishes fail with ErrClosed.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		sub.stop()
	}
	metrics.UpdateStreamSubscribers(0)
	return nil
}

// IsClosed returns true if the broadcaster has been closed.
func (b *Broadcaster) IsClosed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}
