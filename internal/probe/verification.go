package probe

import (
	"fmt"
	"math"

	"github.com/okian/statusfolio/internal/adapters/mq/queue"
	"github.com/okian/statusfolio/internal/domain/radar"
)

// VerifyChart checks chart geometry against the skills it was projected
// from: K points per ring, data and labels, each data vertex at
// radius*level/100 from the center along its spoke.
func VerifyChart(chart radar.Chart, skills []radar.Skill) error {
	k := len(skills)
	if k == 0 {
		return fmt.Errorf("%w: no skills to verify against", ErrChartMismatch)
	}
	if len(chart.Data) != k {
		return fmt.Errorf("%w: %d data points for %d skills", ErrChartMismatch, len(chart.Data), k)
	}
	if len(chart.Labels) != k {
		return fmt.Errorf("%w: %d labels for %d skills", ErrChartMismatch, len(chart.Labels), k)
	}

	for r, ring := range chart.Rings {
		if len(ring.Points) != k {
			return fmt.Errorf("%w: ring %d has %d points", ErrChartMismatch, r, len(ring.Points))
		}
		for i, p := range ring.Points {
			want := radar.PointAt(chart.Center, chart.Radius, ring.Level, radar.Angle(i, k))
			if !near(p, want) {
				return fmt.Errorf("%w: ring %d point %d at %v, want %v", ErrChartMismatch, r, i, p, want)
			}
		}
	}

	for i, s := range skills {
		want := radar.PointAt(chart.Center, chart.Radius, s.Level, radar.Angle(i, k))
		if !near(chart.Data[i], want) {
			return fmt.Errorf("%w: data point %d (%s) at %v, want %v", ErrChartMismatch, i, s.Name, chart.Data[i], want)
		}
		if chart.Labels[i].Name != s.Name {
			return fmt.Errorf("%w: label %d is %q, want %q", ErrChartMismatch, i, chart.Labels[i].Name, s.Name)
		}
	}
	return nil
}

// VerifyWindow checks a log snapshot on its own and against the previous
// poll. It returns the number of ticks between the polls and how many of
// the previous entries were evicted.
func VerifyWindow(prev, next queue.Snapshot) (ticks, evicted int, err error) {
	if err := verifySnapshot(next); err != nil {
		return 0, 0, err
	}
	prevLast, ok := prev.Latest()
	if !ok {
		return 0, 0, nil
	}
	nextLast, ok := next.Latest()
	if !ok {
		return 0, 0, fmt.Errorf("%w: buffer emptied after holding entries", ErrWindowMismatch)
	}
	if nextLast.Seq < prevLast.Seq {
		return 0, 0, fmt.Errorf("%w: newest seq went back from %d to %d", ErrWindowMismatch, prevLast.Seq, nextLast.Seq)
	}
	ticks = int(nextLast.Seq - prevLast.Seq)

	// Entries present in both polls must be unchanged.
	byID := make(map[uint64]string, len(prev.Entries))
	for _, e := range prev.Entries {
		byID[e.Seq] = e.ID
	}
	first := next.Entries[0].Seq
	for _, e := range next.Entries {
		if id, seen := byID[e.Seq]; seen && id != e.ID {
			return 0, 0, fmt.Errorf("%w: entry %d changed id", ErrWindowMismatch, e.Seq)
		}
	}
	for _, e := range prev.Entries {
		if e.Seq < first {
			evicted++
		}
	}

	if ticks > 0 && len(prev.Entries) == prev.Capacity && evicted == 0 {
		return 0, 0, fmt.Errorf("%w: full buffer grew without evicting the oldest entry", ErrWindowMismatch)
	}
	want := len(prev.Entries) + ticks - next.Capacity
	if want > len(prev.Entries) {
		want = len(prev.Entries)
	}
	if want > 0 && evicted != want {
		return 0, 0, fmt.Errorf("%w: %d entries evicted, want %d", ErrWindowMismatch, evicted, want)
	}
	return ticks, evicted, nil
}

func verifySnapshot(s queue.Snapshot) error {
	if s.Capacity <= 0 {
		return fmt.Errorf("%w: capacity %d", ErrWindowMismatch, s.Capacity)
	}
	if len(s.Entries) > s.Capacity {
		return fmt.Errorf("%w: %d entries exceed capacity %d", ErrWindowMismatch, len(s.Entries), s.Capacity)
	}
	ids := make(map[string]struct{}, len(s.Entries))
	for i, e := range s.Entries {
		if i > 0 && e.Seq <= s.Entries[i-1].Seq {
			return fmt.Errorf("%w: entries out of order at %d", ErrWindowMismatch, i)
		}
		if _, dup := ids[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrWindowMismatch, e.ID)
		}
		ids[e.ID] = struct{}{}
	}
	return nil
}

func near(a, b radar.Point) bool {
	return math.Abs(a.X-b.X) <= geometryTolerance && math.Abs(a.Y-b.Y) <= geometryTolerance
}
