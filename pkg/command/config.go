package command

import "math"

// Config carries the geometry constants commands need. It is injected into
// constructors rather than read from ambient globals so commands stay
// independently testable.
type Config struct {
	// SnapDivision is the number of grid cells per unit coordinate; new
	// vertex positions are snapped to this grid.
	SnapDivision int

	// WInputOffset is the vertical distance between a W output vertex and
	// its synthesized input partner.
	WInputOffset float64
}

// DefaultConfig returns the editor defaults.
func DefaultConfig() Config {
	return Config{
		SnapDivision: 4,
		WInputOffset: 0.3,
	}
}

// snap rounds a coordinate onto the discretization grid.
func (c Config) snap(x float64) float64 {
	div := float64(c.SnapDivision)
	if div <= 0 {
		return x
	}
	return math.Round(x*div) / div
}
