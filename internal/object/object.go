// Package object draws the scene entities: Earth, the threat asteroid,
// deflection craft and short-lived particles. Objects are pure render
// state; the simulation in internal/sim never depends on this package.
package object

import (
	"github.com/orbitguard/deflect/internal/draw"
	"github.com/orbitguard/deflect/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(p *Particle)
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // High-resolution canvas (2x vertical)
	Writer *draw.ChunkWriter // Direct terminal output (for text/particles)
	Proj   physics.Projection
}
