package effect

import (
	"time"

	"github.com/orbitguard/deflect/internal/vec"
)

// Ion beam shepherd timings and force.
const (
	ionApproachDuration = 2 * time.Second
	ionShepherdDuration = 7 * time.Second
	ionForce            = 0.012 // Base delta magnitude per emission

	// The beam force ramps from this fraction of ionForce up to full force
	// as shepherd progress approaches 1.
	ionRampFloor = 0.25
)

// Craft start and shepherd station, relative to the asteroid.
var (
	ionStartOffset   = vec.Vec3{X: -30, Y: 10, Z: 0}
	ionStationOffset = vec.Vec3{X: -11, Y: 3.5, Z: 0}
)

// IonBeam models an ion beam shepherd: the craft first flies to a station
// point offset from the asteroid (no deflection yet), then fires a
// quasi-continuous ion beam whose force grows with phase progress, pushing
// the asteroid away from the craft.
type IonBeam struct {
	run      runState
	craftPos vec.Vec3
}

// NewIonBeam creates an idle ion beam shepherd engine.
func NewIonBeam() *IonBeam {
	return &IonBeam{}
}

// Technique implements Engine.
func (i *IonBeam) Technique() Technique {
	return IonBeamShepherd
}

// Update implements Engine.
func (i *IonBeam) Update(in Input, now time.Time) Output {
	if !in.Active {
		i.run.discard()
		return Output{Phase: PhaseIdle}
	}

	if i.run.begin(now) {
		i.craftPos = in.AsteroidPos.Add(ionStartOffset)
	}

	elapsed := i.run.elapsed(now)

	if elapsed < ionApproachDuration {
		progress := float64(elapsed) / float64(ionApproachDuration)
		start := in.AsteroidPos.Add(ionStartOffset)
		station := in.AsteroidPos.Add(ionStationOffset)
		i.craftPos = start.Lerp(station, progress)
		return Output{
			Phase: PhaseApproach,
			Visual: Visual{
				CraftVisible: true,
				CraftPos:     i.craftPos,
			},
		}
	}

	if elapsed >= ionApproachDuration+ionShepherdDuration {
		return Output{Phase: PhaseDone, Completed: i.run.signalOnce()}
	}

	// Shepherd phase: the craft holds station while the beam ramps up.
	progress := float64(elapsed-ionApproachDuration) / float64(ionShepherdDuration)
	i.craftPos = in.AsteroidPos.Add(ionStationOffset)

	out := Output{
		Phase: PhaseBeam,
		Visual: Visual{
			CraftVisible: true,
			CraftPos:     i.craftPos,
			BeamActive:   true,
			BeamFrom:     i.craftPos,
		},
	}
	if i.run.shouldEmit(now) {
		force := ionForce * (ionRampFloor + (1-ionRampFloor)*progress)
		dir := in.AsteroidPos.Sub(i.craftPos).Normalize()
		out.Delta = dir.Scale(force)
		out.HasDelta = true
	}
	return out
}
