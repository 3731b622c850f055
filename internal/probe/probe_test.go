package probe_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/okian/statusfolio/internal/adapters/http/api"
	"github.com/okian/statusfolio/internal/adapters/mq/queue"
	"github.com/okian/statusfolio/internal/app"
	"github.com/okian/statusfolio/internal/domain/logsim"
	"github.com/okian/statusfolio/internal/domain/radar"
	"github.com/okian/statusfolio/internal/probe"
	"github.com/okian/statusfolio/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func entries(seqs ...uint64) []logsim.Entry {
	out := make([]logsim.Entry, len(seqs))
	for i, s := range seqs {
		out[i] = logsim.Entry{Seq: s, ID: fmt.Sprintf("e%d", s), Message: "m"}
	}
	return out
}

func TestVerifyChart(t *testing.T) {
	skills := []radar.Skill{{Name: "A", Level: 100}, {Name: "B", Level: 40}, {Name: "C", Level: 0}}

	Convey("Given a projected chart", t, func() {
		chart, err := radar.Project(skills)
		So(err, ShouldBeNil)

		Convey("Then it verifies against its skills", func() {
			So(probe.VerifyChart(chart, skills), ShouldBeNil)
		})

		Convey("When a data vertex is moved", func() {
			chart.Data[1].X += 1

			Convey("Then verification fails", func() {
				So(errors.Is(probe.VerifyChart(chart, skills), probe.ErrChartMismatch), ShouldBeTrue)
			})
		})

		Convey("When a ring loses a point", func() {
			chart.Rings[0].Points = chart.Rings[0].Points[:2]

			Convey("Then verification fails", func() {
				So(errors.Is(probe.VerifyChart(chart, skills), probe.ErrChartMismatch), ShouldBeTrue)
			})
		})

		Convey("When labels are reordered", func() {
			chart.Labels[0], chart.Labels[1] = chart.Labels[1], chart.Labels[0]

			Convey("Then verification fails", func() {
				So(probe.VerifyChart(chart, skills), ShouldNotBeNil)
			})
		})
	})
}

func TestVerifyWindow(t *testing.T) {
	Convey("Given a full window of three", t, func() {
		prev := queue.Snapshot{Entries: entries(1, 2, 3), Capacity: 3}

		Convey("When two ticks evict the two oldest", func() {
			ticks, evicted, err := probe.VerifyWindow(prev, queue.Snapshot{Entries: entries(3, 4, 5), Capacity: 3})

			Convey("Then both are counted", func() {
				So(err, ShouldBeNil)
				So(ticks, ShouldEqual, 2)
				So(evicted, ShouldEqual, 2)
			})
		})

		Convey("When nothing happened", func() {
			ticks, evicted, err := probe.VerifyWindow(prev, prev)

			Convey("Then the window is unchanged", func() {
				So(err, ShouldBeNil)
				So(ticks, ShouldEqual, 0)
				So(evicted, ShouldEqual, 0)
			})
		})

		Convey("When the window grew past capacity", func() {
			_, _, err := probe.VerifyWindow(prev, queue.Snapshot{Entries: entries(1, 2, 3, 4), Capacity: 3})

			Convey("Then verification fails", func() {
				So(errors.Is(err, probe.ErrWindowMismatch), ShouldBeTrue)
			})
		})

		Convey("When the newest entry went backwards", func() {
			_, _, err := probe.VerifyWindow(prev, queue.Snapshot{Entries: entries(1, 2), Capacity: 3})

			Convey("Then verification fails", func() {
				So(errors.Is(err, probe.ErrWindowMismatch), ShouldBeTrue)
			})
		})

		Convey("When the newest entry was evicted instead of the oldest", func() {
			_, _, err := probe.VerifyWindow(prev, queue.Snapshot{Entries: entries(1, 2, 4), Capacity: 3})

			Convey("Then verification fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given a window that is not yet full", t, func() {
		prev := queue.Snapshot{Entries: entries(1), Capacity: 3}

		Convey("When one tick lands", func() {
			ticks, evicted, err := probe.VerifyWindow(prev, queue.Snapshot{Entries: entries(1, 2), Capacity: 3})

			Convey("Then nothing is evicted", func() {
				So(err, ShouldBeNil)
				So(ticks, ShouldEqual, 1)
				So(evicted, ShouldEqual, 0)
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running service with a fast ticker", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		svc := app.New(app.WithLogCapacity(3), app.WithLogInterval(10*time.Millisecond))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When the probe runs", func() {
			stats, err := probe.Run(ctx, &probe.Config{BaseURL: srv.URL, Timeout: time.Second, Ticks: 4})

			Convey("Then every step passes", func() {
				So(err, ShouldBeNil)
				So(stats.ChartsVerified, ShouldEqual, 2)
				So(stats.TicksObserved, ShouldBeGreaterThanOrEqualTo, 4)
				So(stats.Evictions, ShouldBeGreaterThan, 0)
				So(stats.CommandsChecked, ShouldEqual, 5)
			})
		})
	})

	Convey("Given an unhealthy service", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		Convey("Then the probe stops at the health check", func() {
			_, err := probe.Run(context.Background(), &probe.Config{BaseURL: srv.URL, Timeout: time.Second, Ticks: 1})
			So(errors.Is(err, probe.ErrUnhealthy), ShouldBeTrue)
		})
	})
}
