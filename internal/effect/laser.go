package effect

import (
	"time"

	"github.com/orbitguard/deflect/internal/vec"
)

// Laser ablation timings and force.
const (
	laserDuration = 6500 * time.Millisecond
	laserForce    = 0.02 // Delta magnitude per emission
)

// Laser station position relative to the asteroid at activation. The
// station does not move once the beam is firing.
var laserStationOffset = vec.Vec3{X: -20, Y: 6, Z: 0}

// Laser models surface ablation: a fixed station fires a continuous beam
// and the vaporized surface material pushes the asteroid away from the
// station for the beam duration.
type Laser struct {
	run     runState
	station vec.Vec3
}

// NewLaser creates an idle laser ablation engine.
func NewLaser() *Laser {
	return &Laser{}
}

// Technique implements Engine.
func (l *Laser) Technique() Technique {
	return LaserAblation
}

// Update implements Engine.
func (l *Laser) Update(in Input, now time.Time) Output {
	if !in.Active {
		l.run.discard()
		return Output{Phase: PhaseIdle}
	}

	if l.run.begin(now) {
		l.station = in.AsteroidPos.Add(laserStationOffset)
	}

	if l.run.elapsed(now) >= laserDuration {
		return Output{Phase: PhaseDone, Completed: l.run.signalOnce()}
	}

	out := Output{
		Phase: PhaseBeam,
		Visual: Visual{
			CraftVisible: true,
			CraftPos:     l.station,
			BeamActive:   true,
			BeamFrom:     l.station,
		},
	}
	if l.run.shouldEmit(now) {
		dir := in.AsteroidPos.Sub(l.station).Normalize()
		out.Delta = dir.Scale(laserForce)
		out.HasDelta = true
	}
	return out
}
