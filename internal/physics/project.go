// Package physics maps simulation world coordinates onto the 2D scene.
package physics

import (
	"github.com/orbitguard/deflect/internal/draw"
	"github.com/orbitguard/deflect/internal/vec"
)

// Projection flattens 3D world coordinates into logical canvas space.
// Depth is rendered as a diagonal skew so out-of-plane deflection stays
// visible on a flat terminal.
type Projection struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
	SkewX   float64
	SkewY   float64
}

// Project converts a world position to a logical canvas point.
func (p Projection) Project(v vec.Vec3) draw.Point {
	return draw.Point{
		X: p.OffsetX + v.X*p.Scale + v.Z*p.SkewX*p.Scale,
		Y: p.OffsetY + v.Y*p.Scale + v.Z*p.SkewY*p.Scale,
	}
}
