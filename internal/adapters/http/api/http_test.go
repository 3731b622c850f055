package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/statusfolio/internal/adapters/http/api"
	"github.com/okian/statusfolio/internal/adapters/mq/queue"
	"github.com/okian/statusfolio/internal/domain/logsim"
	"github.com/okian/statusfolio/internal/domain/palette"
	"github.com/okian/statusfolio/internal/domain/profile"
	"github.com/okian/statusfolio/internal/domain/radar"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps implements api.Dependencies on top of the real domain packages.
type mockDeps struct {
	profile   *profile.Profile
	snapshot  queue.Snapshot
	updates   chan queue.Snapshot
	logsErr   error
	cancelled bool
	calls     []string
	// tickOnSubscribe lands one tick right after a subscriber is added.
	tickOnSubscribe bool
}

func newMockDeps() *mockDeps {
	seed := logsim.DefaultSeed()
	for i := range seed {
		seed[i].Seq = uint64(i + 1)
	}
	return &mockDeps{
		profile:  profile.Default(),
		snapshot: queue.Snapshot{Entries: seed, Capacity: logsim.DefaultCapacity},
		updates:  make(chan queue.Snapshot, 4),
	}
}

func (m *mockDeps) Profile() *profile.Profile { return m.profile }

func (m *mockDeps) Radar(_ context.Context, skills []radar.Skill, opts ...radar.Option) (radar.Chart, error) {
	return radar.Project(skills, opts...)
}

func (m *mockDeps) DefaultRadar(ctx context.Context) (radar.Chart, error) {
	return m.Radar(ctx, m.profile.Skills)
}

func (m *mockDeps) Logs(context.Context) (queue.Snapshot, error) {
	m.calls = append(m.calls, "logs")
	return m.snapshot, m.logsErr
}

func (m *mockDeps) Subscribe(context.Context) (<-chan queue.Snapshot, func(), error) {
	m.calls = append(m.calls, "subscribe")
	if m.logsErr != nil {
		return nil, nil, m.logsErr
	}
	if m.tickOnSubscribe {
		next := m.snapshot
		next.Entries = append(append([]logsim.Entry(nil), next.Entries...),
			logsim.Entry{Seq: 4, ID: "late", Timestamp: "10:00:04", Message: "Syncing state..."})
		m.snapshot = next
		m.updates <- next
		close(m.updates)
	}
	return m.updates, func() { m.cancelled = true }, nil
}

func (m *mockDeps) Commands(_ context.Context, query string) []palette.Action {
	return palette.Filter(m.profile.Commands, query)
}

type mockStats struct{}

func (mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true, "ticks": 3}
}

func newMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, mockStats{}).Register(context.Background(), mux)
	return mux
}

func serve(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(newMockDeps())

		Convey("When GET /healthz is requested", func() {
			w := serve(mux, http.MethodGet, "/healthz", "")

			Convey("Then the Prometheus exposition is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "statusfolio_site_")
			})
		})

		Convey("When GET /stats is requested", func() {
			w := serve(mux, http.MethodGet, "/stats", "")

			Convey("Then the provider stats are encoded", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var stats map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
			})
		})

		Convey("When POST /stats is requested", func() {
			w := serve(mux, http.MethodPost, "/stats", "")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When GET /dashboard is requested", func() {
			w := serve(mux, http.MethodGet, "/dashboard", "")

			Convey("Then the dashboard page is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "STATUSFOLIO // DASHBOARD")
			})
		})
	})
}

func TestProfileAndCommands(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(newMockDeps())

		Convey("When GET /api/profile is requested", func() {
			w := serve(mux, http.MethodGet, "/api/profile", "")

			Convey("Then the profile and its marquee are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Name    string            `json:"name"`
					Skills  []radar.Skill     `json:"skills"`
					Marquee []json.RawMessage `json:"marquee"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Name, ShouldEqual, "SEMMOZHIYAN")
				So(body.Skills, ShouldHaveLength, 6)
				So(body.Marquee, ShouldHaveLength, 20)
			})
		})

		Convey("When GET /api/commands?q=writ is requested", func() {
			w := serve(mux, http.MethodGet, "/api/commands?q=writ", "")

			Convey("Then only matching actions are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var actions []palette.Action
				So(json.Unmarshal(w.Body.Bytes(), &actions), ShouldBeNil)
				So(actions, ShouldHaveLength, 1)
				So(actions[0].Href, ShouldEqual, "#writing")
			})
		})

		Convey("When the query matches nothing", func() {
			w := serve(mux, http.MethodGet, "/api/commands?q=zzz", "")

			Convey("Then an empty array is returned", func() {
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
			})
		})
	})
}

type radarBody struct {
	Center     radar.Point   `json:"center"`
	Radius     float64       `json:"radius"`
	Rings      []radar.Ring  `json:"rings"`
	Data       []radar.Point `json:"data"`
	Labels     []radar.Label `json:"labels"`
	DataPoints string        `json:"data_points"`
	RingPoints []string      `json:"ring_points"`
}

func TestRadar(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(newMockDeps())

		Convey("When GET /api/radar is requested", func() {
			w := serve(mux, http.MethodGet, "/api/radar", "")

			Convey("Then the profile skills are projected", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body radarBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Data, ShouldHaveLength, 6)
				So(body.Labels, ShouldHaveLength, 6)
				So(body.Rings, ShouldHaveLength, 4)
				So(body.RingPoints, ShouldHaveLength, 4)
				So(body.Labels[0].Name, ShouldEqual, "Java")
				// Java 90 sits straight above the center.
				So(body.Data[0].X, ShouldAlmostEqual, 160, 1e-9)
				So(body.Data[0].Y, ShouldAlmostEqual, 70, 1e-9)
			})
		})

		Convey("When POST /api/radar carries skills and geometry", func() {
			w := serve(mux, http.MethodPost, "/api/radar",
				`{"skills":[{"name":"A","level":100},{"name":"B","level":50}],"radius":10,"center":{"x":0,"y":0}}`)

			Convey("Then the chart uses the requested geometry", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body radarBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Radius, ShouldEqual, 10)
				So(body.DataPoints, ShouldEqual, "0.00,-10.00 0.00,5.00")
			})
		})

		Convey("When POST /api/radar has no skills", func() {
			w := serve(mux, http.MethodPost, "/api/radar", `{"skills":[]}`)

			Convey("Then 400 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "bad_request")
			})
		})

		Convey("When POST /api/radar asks for more rings than allowed", func() {
			levels := strings.TrimSuffix(strings.Repeat("10,", 17), ",")
			w := serve(mux, http.MethodPost, "/api/radar",
				`{"skills":[{"name":"A","level":1}],"grid_levels":[`+levels+`]}`)

			Convey("Then 400 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "grid levels exceed")
			})
		})

		Convey("When POST /api/radar asks for exactly the allowed rings", func() {
			levels := strings.TrimSuffix(strings.Repeat("10,", 16), ",")
			w := serve(mux, http.MethodPost, "/api/radar",
				`{"skills":[{"name":"A","level":1}],"grid_levels":[`+levels+`]}`)

			Convey("Then the chart is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When the server is built with a lower ring limit", func() {
			limited := http.NewServeMux()
			api.NewServer(newMockDeps(), mockStats{}, api.WithMaxGridLevels(2)).Register(context.Background(), limited)
			w := serve(limited, http.MethodPost, "/api/radar",
				`{"skills":[{"name":"A","level":1}],"grid_levels":[30,60,90]}`)

			Convey("Then the lower limit applies", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When POST /api/radar is malformed", func() {
			w := serve(mux, http.MethodPost, "/api/radar", `{"skills":`)

			Convey("Then 400 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When POST /api/radar has a negative radius", func() {
			w := serve(mux, http.MethodPost, "/api/radar", `{"skills":[{"name":"A","level":1}],"radius":-1}`)

			Convey("Then 400 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When DELETE /api/radar is requested", func() {
			w := serve(mux, http.MethodDelete, "/api/radar", "")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestLogs(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newMockDeps()
		mux := newMux(deps)

		Convey("When GET /api/logs is requested", func() {
			w := serve(mux, http.MethodGet, "/api/logs", "")

			Convey("Then the buffer is returned oldest first", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var snap queue.Snapshot
				So(json.Unmarshal(w.Body.Bytes(), &snap), ShouldBeNil)
				So(snap.Entries, ShouldHaveLength, 3)
				So(snap.Entries[0].Message, ShouldEqual, "System initialized...")
				So(snap.Capacity, ShouldEqual, 5)
			})
		})

		Convey("When the simulator is not running", func() {
			deps.logsErr = errors.New("service not started")

			Convey("Then /api/logs is unavailable", func() {
				So(serve(mux, http.MethodGet, "/api/logs", "").Code, ShouldEqual, http.StatusServiceUnavailable)
			})

			Convey("And /api/logs/stream is unavailable", func() {
				So(serve(mux, http.MethodGet, "/api/logs/stream", "").Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})

		Convey("When GET /api/logs/stream sees one tick and the stream closes", func() {
			next := deps.snapshot
			next.Entries = append(append([]logsim.Entry(nil), next.Entries...),
				logsim.Entry{Seq: 4, ID: "abc", Timestamp: "10:00:04", Message: "Ping: 14ms"})
			deps.updates <- next
			close(deps.updates)

			w := serve(mux, http.MethodGet, "/api/logs/stream", "")

			Convey("Then the current buffer and the tick are sent as SSE frames", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/event-stream")
				body := w.Body.String()
				So(strings.Count(body, "event: logs\n"), ShouldEqual, 2)
				So(body, ShouldStartWith, "id: 3\n")
				So(body, ShouldContainSubstring, "id: 4\n")
				So(body, ShouldContainSubstring, `"message":"Ping: 14ms"`)
				So(deps.cancelled, ShouldBeTrue)
			})
		})
	})
}

func TestLogStreamOrdering(t *testing.T) {
	Convey("Given a tick that lands right after the stream subscribes", t, func() {
		deps := newMockDeps()
		deps.tickOnSubscribe = true
		mux := newMux(deps)

		w := serve(mux, http.MethodGet, "/api/logs/stream", "")

		Convey("Then the handler subscribes before reading the buffer", func() {
			So(deps.calls, ShouldResemble, []string{"subscribe", "logs"})
		})

		Convey("And the first frame already carries the new entry", func() {
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldStartWith, "id: 4\n")
		})
	})
}

func TestRegisterNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("Then Register panics", func() {
			So(func() {
				api.NewServer(newMockDeps(), mockStats{}).Register(context.Background(), nil)
			}, ShouldPanic)
		})
	})
}
