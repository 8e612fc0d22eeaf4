package sim

import "github.com/orbitguard/deflect/internal/vec"

// Accumulator owns the asteroid's deflection offset. The offset is only
// ever mutated through ApplyDelta and Reset; deltas commute, so any number
// of active engines may contribute within one tick without ordering
// concerns.
type Accumulator struct {
	offset vec.Vec3
}

// ApplyDelta adds the delta vector to the current offset.
func (a *Accumulator) ApplyDelta(delta vec.Vec3) {
	a.offset = a.offset.Add(delta)
}

// Reset sets the offset back to the zero vector.
func (a *Accumulator) Reset() {
	a.offset = vec.Zero
}

// Current returns a snapshot of the offset.
func (a *Accumulator) Current() vec.Vec3 {
	return a.offset
}
