package api

import (
	"net/http"
)

// CommandsHandler serves the command palette.
type CommandsHandler struct {
	deps CommandFinder
}

// NewCommandsHandler creates a new commands handler.
func NewCommandsHandler(deps CommandFinder) *CommandsHandler {
	return &CommandsHandler{deps: deps}
}

// HandleGetCommands handles GET /api/commands?q= requests.
func (h *CommandsHandler) HandleGetCommands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Commands(r.Context(), r.URL.Query().Get("q")))
}
