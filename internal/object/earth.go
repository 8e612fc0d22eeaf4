package object

import "github.com/orbitguard/deflect/internal/vec"

// Earth is the static target body on the left edge of the scene.
type Earth struct {
	Pos    vec.Vec3
	Radius float64
}

// NewEarth creates the Earth visual at the given world position.
func NewEarth(pos vec.Vec3, radius float64) *Earth {
	return &Earth{Pos: pos, Radius: radius}
}

// Draw renders Earth as a filled disc so it reads as a solid body next to
// the asteroid's hollow outline.
func (e *Earth) Draw(ctx DrawContext) {
	center := ctx.Proj.Project(e.Pos)
	ctx.Canvas.DrawCircle(center, e.Radius*ctx.Proj.Scale, true)
}
