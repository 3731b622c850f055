// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/statusfolio/internal/adapters/mq/queue"
	"github.com/okian/statusfolio/internal/domain/palette"
	"github.com/okian/statusfolio/internal/domain/profile"
	"github.com/okian/statusfolio/internal/domain/radar"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ProfileProvider
	RadarProjector
	LogSource
	CommandFinder
}

// ProfileProvider exposes the page content.
type ProfileProvider interface {
	Profile() *profile.Profile
}

// RadarProjector turns skills into chart geometry.
type RadarProjector interface {
	Radar(ctx context.Context, skills []radar.Skill, opts ...radar.Option) (radar.Chart, error)
	DefaultRadar(ctx context.Context) (radar.Chart, error)
}

// LogSource exposes the rolling log buffer and its live stream.
type LogSource interface {
	Logs(ctx context.Context) (queue.Snapshot, error)
	Subscribe(ctx context.Context) (<-chan queue.Snapshot, func(), error)
}

// CommandFinder filters the command palette.
type CommandFinder interface {
	Commands(ctx context.Context, query string) []palette.Action
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	profileHandler   *ProfileHandler
	radarHandler     *RadarHandler
	logsHandler      *LogsHandler
	commandsHandler  *CommandsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		profileHandler:   NewProfileHandler(deps),
		radarHandler:     NewRadarHandler(deps, cfg.maxGridLevels),
		logsHandler:      NewLogsHandler(deps, cfg.heartbeat),
		commandsHandler:  NewCommandsHandler(deps),
		dashboardHandler: newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/profile", MetricsMiddleware(s.profileHandler.HandleGetProfile, "profile"))
	mux.HandleFunc("/api/radar", MetricsMiddleware(s.radarHandler.HandleRadar, "radar"))
	mux.HandleFunc("/api/logs", MetricsMiddleware(s.logsHandler.HandleGetLogs, "logs"))
	mux.HandleFunc("/api/logs/stream", MetricsMiddleware(s.logsHandler.HandleStream, "logs_stream"))
	mux.HandleFunc("/api/commands", MetricsMiddleware(s.commandsHandler.HandleGetCommands, "commands"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
