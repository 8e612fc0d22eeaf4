package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/orbitguard/deflect/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect in logical canvas space.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity (logical units/sec)
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Symbol      rune    // Character to display
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, symbol rune) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Symbol = symbol
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the scene.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Update advances the particle. Returns true when it has expired.
func (p *Particle) Update(deltaSeconds float64) (remove bool) {
	p.Lifetime -= deltaSeconds
	if p.Lifetime <= 0 {
		return true
	}
	p.X += p.VX * deltaSeconds
	p.Y += p.VY * deltaSeconds
	p.VX *= p.Drag
	p.VY *= p.Drag
	return false
}

// Draw writes the particle's symbol at its terminal cell, dimmed in the
// last third of its lifetime. The cell is marked dirty so the canvas
// repaints it once the particle moves on.
func (p *Particle) Draw(ctx DrawContext) {
	col, row := ctx.Canvas.LogicalToTerminal(p.X, p.Y)
	s := string(p.Symbol)
	if p.Lifetime < p.MaxLifetime/3 {
		s = draw.ColorDim + s + draw.ColorReset
	}
	ctx.Writer.WriteAt(col, row, s)
	ctx.Canvas.MarkTextDirty(col, row, 1)
}

// SpawnExplosion creates particles in a circular burst around a logical
// point. Used for impacts and detonations.
func SpawnExplosion(center draw.Point, count int, speed, lifetime float64, spawner Spawner) {
	if spawner == nil {
		return
	}

	symbols := []rune{'#', '@', '*', '%', 'X', 'O', '+'}

	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rand.Float64())
		life := lifetime * (0.5 + rand.Float64()*0.5)

		p := NewParticle(
			center.X, center.Y,
			math.Cos(angle)*spd, math.Sin(angle)*spd,
			life, symbols[rand.Intn(len(symbols))],
		)
		spawner.Spawn(p)
	}
}
