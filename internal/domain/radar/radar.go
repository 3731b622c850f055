// Package radar projects skill levels onto the polygons of a spider chart.
//
// Everything here is pure: a projection reads its inputs, allocates fresh
// slices and returns. Callers may invoke it on every render.
package radar

import (
	"math"
	"strconv"
	"strings"
)

// Default projection parameters.
const (
	DefaultRadius      = 100.0
	DefaultLabelFactor = 1.2
	fullScale          = 100.0
)

// DefaultCenter is the plot center used when no WithCenter option is given.
var DefaultCenter = Point{X: 160, Y: 160}

// DefaultGridLevels are the reference ring levels, in percent of the radius.
var DefaultGridLevels = []float64{25, 50, 75, 100}

// Skill is a named proficiency. Level is a percentage; values outside
// [0,100] are projected as given.
type Skill struct {
	Name  string  `json:"name" koanf:"name"`
	Level float64 `json:"level" koanf:"level"`
}

// Point is a Cartesian plot coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is a closed shape; the last point implicitly joins the first.
type Polygon []Point

// SVGPoints renders the polygon in the format of an SVG points attribute.
func (p Polygon) SVGPoints() string {
	var b strings.Builder
	for i, pt := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(pt.X, 'f', 2, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(pt.Y, 'f', 2, 64))
	}
	return b.String()
}

// Ring is a reference polygon drawn at a fixed percentage of the radius.
type Ring struct {
	Level  float64 `json:"level"`
	Points Polygon `json:"points"`
}

// Label anchors a skill's text slightly beyond the outer ring.
type Label struct {
	Name   string  `json:"name"`
	Level  float64 `json:"level"`
	Anchor Point   `json:"anchor"`
}

// Chart is the full geometry of one radar chart.
type Chart struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Rings  []Ring  `json:"rings"`
	Data   Polygon `json:"data"`
	Labels []Label `json:"labels"`
}

type projection struct {
	radius      float64
	center      Point
	gridLevels  []float64
	labelFactor float64
}

// Angle returns the angular position of skill i out of k. Index 0 points
// straight up and positions advance clockwise in screen coordinates.
func Angle(i, k int) float64 {
	return -math.Pi/2 + float64(i)*(2*math.Pi/float64(k))
}

// PointAt places a magnitude of percent (0-100) of radius at angle around center.
func PointAt(center Point, radius, percent, angle float64) Point {
	r := radius * (percent / fullScale)
	return Point{
		X: center.X + r*math.Cos(angle),
		Y: center.Y + r*math.Sin(angle),
	}
}

// Project computes the grid rings, the data polygon and the label anchors
// for skills. A single skill yields single-point polygons.
func Project(skills []Skill, opts ...Option) (Chart, error) {
	if len(skills) == 0 {
		return Chart{}, ErrNoSkills
	}

	p := projection{
		radius:      DefaultRadius,
		center:      DefaultCenter,
		gridLevels:  DefaultGridLevels,
		labelFactor: DefaultLabelFactor,
	}
	for _, opt := range opts {
		opt(&p)
	}

	k := len(skills)
	angles := make([]float64, k)
	for i := range angles {
		angles[i] = Angle(i, k)
	}

	chart := Chart{
		Center: p.center,
		Radius: p.radius,
		Rings:  make([]Ring, len(p.gridLevels)),
		Data:   make(Polygon, k),
		Labels: make([]Label, k),
	}

	for r, level := range p.gridLevels {
		ring := Ring{Level: level, Points: make(Polygon, k)}
		for i, a := range angles {
			ring.Points[i] = PointAt(p.center, p.radius, level, a)
		}
		chart.Rings[r] = ring
	}

	labelPercent := p.labelFactor * fullScale
	for i, s := range skills {
		chart.Data[i] = PointAt(p.center, p.radius, s.Level, angles[i])
		chart.Labels[i] = Label{
			Name:   s.Name,
			Level:  s.Level,
			Anchor: PointAt(p.center, p.radius, labelPercent, angles[i]),
		}
	}

	return chart, nil
}
