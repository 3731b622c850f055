package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/statusfolio/internal/domain/radar"
)

const maxRadarBody = 64 << 10

// RadarHandler serves radar chart geometry.
type RadarHandler struct {
	deps          RadarProjector
	maxGridLevels int
}

// NewRadarHandler creates a new radar handler. A non-positive maxGridLevels
// uses the default.
func NewRadarHandler(deps RadarProjector, maxGridLevels int) *RadarHandler {
	if maxGridLevels <= 0 {
		maxGridLevels = defaultMaxGridLevels
	}
	return &RadarHandler{deps: deps, maxGridLevels: maxGridLevels}
}

// radarRequest mirrors the OpenAPI schema for POST /api/radar.
type radarRequest struct {
	Skills     []radar.Skill `json:"skills"`
	Radius     *float64      `json:"radius,omitempty"`
	Center     *radar.Point  `json:"center,omitempty"`
	GridLevels []float64     `json:"grid_levels,omitempty"`
}

func (req radarRequest) validate(maxGridLevels int) error {
	if len(req.Skills) == 0 {
		return radar.ErrNoSkills
	}
	if len(req.GridLevels) > maxGridLevels {
		return fmt.Errorf("%d grid levels exceed the limit of %d", len(req.GridLevels), maxGridLevels)
	}
	for i, s := range req.Skills {
		if s.Name == "" {
			return fmt.Errorf("skill %d has no name", i)
		}
	}
	if req.Radius != nil && *req.Radius <= 0 {
		return errors.New("radius must be positive")
	}
	return nil
}

func (req radarRequest) options() []radar.Option {
	var opts []radar.Option
	if req.Radius != nil {
		opts = append(opts, radar.WithRadius(*req.Radius))
	}
	if req.Center != nil {
		opts = append(opts, radar.WithCenter(*req.Center))
	}
	if len(req.GridLevels) > 0 {
		opts = append(opts, radar.WithGridLevels(req.GridLevels...))
	}
	return opts
}

// radarResponse carries the chart plus ready-to-use SVG points attributes.
type radarResponse struct {
	radar.Chart
	DataPoints string   `json:"data_points"`
	RingPoints []string `json:"ring_points"`
}

func newRadarResponse(c radar.Chart) radarResponse {
	rings := make([]string, len(c.Rings))
	for i, r := range c.Rings {
		rings[i] = r.Points.SVGPoints()
	}
	return radarResponse{Chart: c, DataPoints: c.Data.SVGPoints(), RingPoints: rings}
}

// HandleRadar handles GET and POST /api/radar requests. GET projects the
// profile skills; POST projects the skills in the request body.
func (h *RadarHandler) HandleRadar(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *RadarHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	chart, err := h.deps.DefaultRadar(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, newRadarResponse(chart))
}

func (h *RadarHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req radarRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRadarBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(h.maxGridLevels); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	chart, err := h.deps.Radar(r.Context(), req.Skills, req.options()...)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, newRadarResponse(chart))
}
