package sim

import "github.com/orbitguard/deflect/internal/vec"

// Asteroid is the canonical asteroid scene state: a base position fixed
// for the scene's lifetime, an accumulated deflection offset and a
// visibility flag. The world position is always derived, never stored.
type Asteroid struct {
	base       vec.Vec3
	deflection Accumulator
	visible    bool
}

// NewAsteroid creates a visible asteroid at the given base position.
func NewAsteroid(base vec.Vec3) *Asteroid {
	return &Asteroid{base: base, visible: true}
}

// BasePosition returns the immutable base position.
func (a *Asteroid) BasePosition() vec.Vec3 {
	return a.base
}

// WorldPosition returns base position plus the current deflection offset.
func (a *Asteroid) WorldPosition() vec.Vec3 {
	return a.base.Add(a.deflection.Current())
}

// Deflection exposes the offset accumulator, the only mutation path for
// the asteroid's position.
func (a *Asteroid) Deflection() *Accumulator {
	return &a.deflection
}

// Visible reports whether the asteroid is currently shown.
func (a *Asteroid) Visible() bool {
	return a.visible
}

// Hide removes the asteroid from the scene. Running engines observe this
// through their active guard and discard state.
func (a *Asteroid) Hide() {
	a.visible = false
}

// Show returns the asteroid to the scene with a cleared offset, so a
// re-shown asteroid always reappears at its base position.
func (a *Asteroid) Show() {
	a.visible = true
	a.deflection.Reset()
}
