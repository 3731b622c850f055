package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/statusfolio/internal/adapters/mq/queue"
)

// LogsHandler serves the rolling log buffer and its live stream.
type LogsHandler struct {
	deps      LogSource
	heartbeat time.Duration
}

// NewLogsHandler creates a new logs handler. A non-positive heartbeat uses
// the default.
func NewLogsHandler(deps LogSource, heartbeat time.Duration) *LogsHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &LogsHandler{deps: deps, heartbeat: heartbeat}
}

// HandleGetLogs handles GET /api/logs requests.
func (h *LogsHandler) HandleGetLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Logs(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", fmt.Errorf("%w: %w", ErrUnavailable, err))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleStream handles GET /api/logs/stream requests with Server-Sent
// Events. The current buffer is sent first, then one "logs" event per tick.
func (h *LogsHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	// Subscribe before reading so a tick in between still reaches the stream.
	updates, cancel, err := h.deps.Subscribe(ctx)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", fmt.Errorf("%w: %w", ErrUnavailable, err))
		return
	}
	defer cancel()
	current, err := h.deps.Logs(ctx)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", fmt.Errorf("%w: %w", ErrUnavailable, err))
		return
	}

	rc := http.NewResponseController(w)
	// Streams outlive the server write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, current); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		return
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := writeEvent(w, snap); err != nil {
				return
			}
		case <-heartbeat.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

// writeEvent writes one SSE frame carrying snap. The event id is the
// sequence number of the newest entry.
func writeEvent(w io.Writer, snap queue.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if latest, ok := snap.Latest(); ok {
		if _, err := fmt.Fprintf(w, "id: %d\n", latest.Seq); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "event: logs\ndata: %s\n\n", data)
	return err
}
