package effect

import (
	"time"

	"github.com/orbitguard/deflect/internal/vec"
)

// Gravity tractor timings and force.
const (
	tractorDuration = 9 * time.Second
	tractorForce    = 0.028 // Delta magnitude per emission
)

// Hover point relative to the asteroid, maintained for the whole run.
var tractorHoverOffset = vec.Vec3{X: 0, Y: 5.5, Z: 0}

// Tractor models a gravity tractor: a craft station-keeps above the
// asteroid and pulls it with a constant small force every emission for a
// fixed duration.
type Tractor struct {
	run runState
}

// NewTractor creates an idle gravity tractor engine.
func NewTractor() *Tractor {
	return &Tractor{}
}

// Technique implements Engine.
func (t *Tractor) Technique() Technique {
	return GravityTractor
}

// Update implements Engine.
func (t *Tractor) Update(in Input, now time.Time) Output {
	if !in.Active {
		t.run.discard()
		return Output{Phase: PhaseIdle}
	}

	t.run.begin(now)

	if t.run.elapsed(now) >= tractorDuration {
		return Output{Phase: PhaseDone, Completed: t.run.signalOnce()}
	}

	craft := in.AsteroidPos.Add(tractorHoverOffset)
	out := Output{
		Phase: PhaseStationKeeping,
		Visual: Visual{
			CraftVisible: true,
			CraftPos:     craft,
		},
	}
	if t.run.shouldEmit(now) {
		// Gravity pulls the asteroid toward the hovering craft.
		out.Delta = tractorHoverOffset.Normalize().Scale(tractorForce)
		out.HasDelta = true
	}
	return out
}
