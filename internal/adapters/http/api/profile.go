package api

import (
	"net/http"

	"github.com/okian/statusfolio/internal/domain/profile"
)

// ProfileHandler serves the page content.
type ProfileHandler struct {
	deps ProfileProvider
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileProvider) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

type profileResponse struct {
	*profile.Profile
	Marquee []profile.Tech `json:"marquee"`
}

// HandleGetProfile handles GET /api/profile requests.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	p := h.deps.Profile()
	writeJSON(w, http.StatusOK, profileResponse{Profile: p, Marquee: p.Marquee()})
}
