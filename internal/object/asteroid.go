package object

import (
	"math"
	"math/rand"

	"github.com/orbitguard/deflect/internal/draw"
	"github.com/orbitguard/deflect/internal/vec"
)

// Asteroid is the threat object's visual: an irregular polygon that spins
// slowly in place. Its position comes from the simulation every frame;
// only the shape and spin live here.
type Asteroid struct {
	Radius        float64
	Angle         float64
	RotationSpeed float64   // Radians/sec
	Vertices      []float64 // Vertex distances from center (for irregular shape)
}

// NewAsteroid creates the asteroid visual with the given draw radius.
func NewAsteroid(radius float64) *Asteroid {
	// Irregular polygon (8-12 vertices, radius varied by ±30%).
	numVerts := 8 + rand.Intn(5)
	vertices := make([]float64, numVerts)
	for i := 0; i < numVerts; i++ {
		vertices[i] = radius * (0.7 + rand.Float64()*0.6)
	}

	return &Asteroid{
		Radius:        radius,
		Angle:         rand.Float64() * 2 * math.Pi,
		RotationSpeed: 0.4,
		Vertices:      vertices,
	}
}

// Update advances the spin.
func (a *Asteroid) Update(deltaSeconds float64) {
	a.Angle += a.RotationSpeed * deltaSeconds
}

// Draw renders the asteroid outline at the given world position.
func (a *Asteroid) Draw(ctx DrawContext, worldPos vec.Vec3) {
	center := ctx.Proj.Project(worldPos)

	n := len(a.Vertices)
	points := ctx.Canvas.BorrowPoints(n)
	for i := 0; i < n; i++ {
		angle := a.Angle + float64(i)*2*math.Pi/float64(n)
		points[i] = draw.Point{
			X: center.X + math.Cos(angle)*a.Vertices[i],
			Y: center.Y + math.Sin(angle)*a.Vertices[i],
		}
	}
	ctx.Canvas.DrawPolygon(points, false)
}
