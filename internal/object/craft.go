package object

import (
	"math"

	"github.com/orbitguard/deflect/internal/draw"
	"github.com/orbitguard/deflect/internal/effect"
	"github.com/orbitguard/deflect/internal/vec"
)

const craftSize = 2.2

// DrawEffect renders one technique's visual state for the frame: the
// craft (a small triangle pointed at the asteroid), any active beam and
// the detonation flash.
func DrawEffect(ctx DrawContext, vis effect.Visual, asteroidPos vec.Vec3) {
	target := ctx.Proj.Project(asteroidPos)

	if vis.CraftVisible {
		drawCraft(ctx, ctx.Proj.Project(vis.CraftPos), target)
	}
	if vis.BeamActive {
		ctx.Canvas.DrawDashedLine(ctx.Proj.Project(vis.BeamFrom), target, 1.5, 1.0)
	}
	if vis.Flash > 0 {
		drawFlash(ctx, target, vis.Flash)
	}
}

// drawCraft draws a triangle at pos with its nose toward target.
func drawCraft(ctx DrawContext, pos, target draw.Point) {
	heading := math.Atan2(target.Y-pos.Y, target.X-pos.X)

	points := ctx.Canvas.BorrowPoints(3)
	points[0] = draw.Point{
		X: pos.X + math.Cos(heading)*craftSize,
		Y: pos.Y + math.Sin(heading)*craftSize,
	}
	for i, offset := range []float64{2.5, -2.5} {
		a := heading + offset
		points[i+1] = draw.Point{
			X: pos.X + math.Cos(a)*craftSize,
			Y: pos.Y + math.Sin(a)*craftSize,
		}
	}
	ctx.Canvas.DrawPolygon(points, true)
}

// drawFlash draws the detonation burst, growing and filling with
// intensity so it swallows the asteroid at full strength.
func drawFlash(ctx DrawContext, center draw.Point, intensity float64) {
	radius := 3.0 + 9.0*intensity
	ctx.Canvas.DrawCircle(center, radius, intensity > 0.5)
}
