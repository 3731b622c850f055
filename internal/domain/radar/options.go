package radar

// Option applies a configuration option to a projection.
type Option func(*projection)

// WithRadius sets the plot radius R. Non-positive values are ignored.
func WithRadius(radius float64) Option {
	return func(p *projection) {
		if radius > 0 {
			p.radius = radius
		}
	}
}

// WithCenter sets the plot center C.
func WithCenter(center Point) Option {
	return func(p *projection) {
		p.center = center
	}
}

// WithGridLevels replaces the reference ring levels (percent of R).
func WithGridLevels(levels ...float64) Option {
	return func(p *projection) {
		if len(levels) > 0 {
			p.gridLevels = append([]float64(nil), levels...)
		}
	}
}

// WithLabelOffset sets how far beyond R the label anchors sit, as a factor of R.
func WithLabelOffset(factor float64) Option {
	return func(p *projection) {
		if factor > 0 {
			p.labelFactor = factor
		}
	}
}
