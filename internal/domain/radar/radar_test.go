package radar_test

import (
	"math"
	"testing"

	"github.com/okian/statusfolio/internal/domain/radar"
	. "github.com/smartystreets/goconvey/convey"
)

const epsilon = 1e-9

func distance(a, b radar.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func fiveSkills() []radar.Skill {
	return []radar.Skill{
		{Name: "Java", Level: 90},
		{Name: "Docker", Level: 85},
		{Name: "AWS", Level: 70},
		{Name: "Linux", Level: 80},
		{Name: "Python", Level: 75},
	}
}

func TestProject(t *testing.T) {
	Convey("Given five skills, R=100 and center (160,160)", t, func() {
		skills := fiveSkills()
		chart, err := radar.Project(skills, radar.WithRadius(100), radar.WithCenter(radar.Point{X: 160, Y: 160}))
		So(err, ShouldBeNil)

		Convey("Then every ring, the data polygon and the labels have five points", func() {
			So(chart.Rings, ShouldHaveLength, 4)
			for _, ring := range chart.Rings {
				So(ring.Points, ShouldHaveLength, 5)
			}
			So(chart.Data, ShouldHaveLength, 5)
			So(chart.Labels, ShouldHaveLength, 5)
		})

		Convey("And skill 0 at level 90 sits straight above the center", func() {
			So(chart.Data[0].X, ShouldAlmostEqual, 160, epsilon)
			So(chart.Data[0].Y, ShouldAlmostEqual, 70, epsilon)
		})

		Convey("And skill 1 matches the direct trigonometric computation", func() {
			a := -math.Pi/2 + 2*math.Pi/5
			So(chart.Data[1].X, ShouldAlmostEqual, 160+85*math.Cos(a), epsilon)
			So(chart.Data[1].Y, ShouldAlmostEqual, 160+85*math.Sin(a), epsilon)
		})

		Convey("And the grid rings use the default levels in order", func() {
			levels := make([]float64, 0, len(chart.Rings))
			for _, ring := range chart.Rings {
				levels = append(levels, ring.Level)
			}
			So(levels, ShouldResemble, []float64{25, 50, 75, 100})
		})

		Convey("And each ring point lies at its level's fraction of R", func() {
			for _, ring := range chart.Rings {
				for _, pt := range ring.Points {
					So(distance(pt, chart.Center), ShouldAlmostEqual, ring.Level, epsilon)
				}
			}
		})

		Convey("And labels sit at 120% of R and keep the skill names", func() {
			for i, l := range chart.Labels {
				So(l.Name, ShouldEqual, skills[i].Name)
				So(distance(l.Anchor, chart.Center), ShouldAlmostEqual, 120, epsilon)
			}
		})
	})
}

func TestProjectAngularSpacing(t *testing.T) {
	Convey("Given skill lists of one to twelve entries", t, func() {
		Convey("Then consecutive points are 2π/K apart, starting straight up", func() {
			for k := 1; k <= 12; k++ {
				skills := make([]radar.Skill, k)
				for i := range skills {
					skills[i] = radar.Skill{Name: "s", Level: 100}
				}
				chart, err := radar.Project(skills)
				So(err, ShouldBeNil)
				So(radar.Angle(0, k), ShouldAlmostEqual, -math.Pi/2, epsilon)

				for i := 1; i < k; i++ {
					So(radar.Angle(i, k)-radar.Angle(i-1, k), ShouldAlmostEqual, 2*math.Pi/float64(k), epsilon)
				}
				for i, pt := range chart.Data {
					got := math.Atan2(pt.Y-chart.Center.Y, pt.X-chart.Center.X)
					diff := math.Remainder(got-radar.Angle(i, k), 2*math.Pi)
					So(math.Abs(diff), ShouldBeLessThan, 1e-9)
				}
			}
		})
	})
}

func TestProjectLevels(t *testing.T) {
	Convey("Given skills at level 100 and level 0", t, func() {
		skills := []radar.Skill{{Name: "full", Level: 100}, {Name: "none", Level: 0}, {Name: "half", Level: 50}}
		chart, err := radar.Project(skills, radar.WithRadius(80))
		So(err, ShouldBeNil)

		Convey("Then level 100 lands on R and level 0 on the center", func() {
			So(distance(chart.Data[0], chart.Center), ShouldAlmostEqual, 80, epsilon)
			So(distance(chart.Data[1], chart.Center), ShouldAlmostEqual, 0, epsilon)
			So(distance(chart.Data[2], chart.Center), ShouldAlmostEqual, 40, epsilon)
		})
	})

	Convey("Given a level above 100", t, func() {
		chart, err := radar.Project([]radar.Skill{{Name: "over", Level: 150}})
		So(err, ShouldBeNil)

		Convey("Then it is projected without clamping", func() {
			So(distance(chart.Data[0], chart.Center), ShouldAlmostEqual, 150, epsilon)
		})
	})
}

func TestProjectEdgeCases(t *testing.T) {
	Convey("Given no skills", t, func() {
		_, err := radar.Project(nil)

		Convey("Then projection is rejected", func() {
			So(err, ShouldEqual, radar.ErrNoSkills)
		})
	})

	Convey("Given a single skill", t, func() {
		chart, err := radar.Project([]radar.Skill{{Name: "solo", Level: 60}})
		So(err, ShouldBeNil)

		Convey("Then each polygon degenerates to one point", func() {
			So(chart.Data, ShouldHaveLength, 1)
			for _, ring := range chart.Rings {
				So(ring.Points, ShouldHaveLength, 1)
			}
			So(chart.Labels, ShouldHaveLength, 1)
		})
	})

	Convey("Given custom grid levels and label offset", t, func() {
		chart, err := radar.Project(fiveSkills(), radar.WithGridLevels(20, 40, 60, 80, 100), radar.WithLabelOffset(1.5))
		So(err, ShouldBeNil)

		Convey("Then the rings and anchors follow the options", func() {
			So(chart.Rings, ShouldHaveLength, 5)
			So(distance(chart.Labels[2].Anchor, chart.Center), ShouldAlmostEqual, 150, epsilon)
		})
	})
}

func TestProjectIsPure(t *testing.T) {
	Convey("Given the same input twice", t, func() {
		first, err1 := radar.Project(fiveSkills())
		second, err2 := radar.Project(fiveSkills())

		Convey("Then the outputs are identical", func() {
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(second, ShouldResemble, first)
		})

		Convey("And mutating one result does not leak into the next", func() {
			first.Data[0] = radar.Point{}
			first.Rings[0].Points[0] = radar.Point{}
			third, _ := radar.Project(fiveSkills())
			So(third, ShouldResemble, second)
		})
	})
}

func TestPolygonSVGPoints(t *testing.T) {
	Convey("Given a triangle", t, func() {
		p := radar.Polygon{{X: 1, Y: 2}, {X: 3.456, Y: 4}, {X: 0, Y: -1.25}}

		Convey("Then it renders as an SVG points list", func() {
			So(p.SVGPoints(), ShouldEqual, "1.00,2.00 3.46,4.00 0.00,-1.25")
		})
	})

	Convey("Given an empty polygon", t, func() {
		Convey("Then it renders as an empty string", func() {
			So(radar.Polygon(nil).SVGPoints(), ShouldEqual, "")
		})
	})
}
