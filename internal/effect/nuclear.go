package effect

import (
	"time"

	"github.com/orbitguard/deflect/internal/vec"
)

// Nuclear standoff detonation timings and geometry.
const (
	nuclearApproachDuration = 2800 * time.Millisecond
	nuclearFlashDuration    = 1200 * time.Millisecond
	nuclearDeflection       = 8.0 // Impulse magnitude for the deflect outcome

	// Bodies at or below this diameter are vaporized outright; larger ones
	// are deflected.
	NuclearDestroyMaxDiameterM = 150.0
)

// Craft launch point and standoff detonation point, relative to the
// asteroid at activation.
var (
	nuclearLaunchOffset   = vec.Vec3{X: -24, Y: 12, Z: 0}
	nuclearStandoffOffset = vec.Vec3{X: -3, Y: 1.2, Z: 0}
)

// Nuclear models a standoff nuclear detonation. The detonation either
// destroys the asteroid (small bodies) or applies one large deflection
// impulse; exactly one of the Destroyed/Completed signals fires per
// activation.
type Nuclear struct {
	run        runState
	diameterM  float64
	launchPos  vec.Vec3
	standoff   vec.Vec3
	detonated  bool
	destroying bool
}

// NewNuclear creates an idle nuclear engine for an asteroid of the given
// diameter.
func NewNuclear(asteroidDiameterM float64) *Nuclear {
	return &Nuclear{diameterM: asteroidDiameterM}
}

// Technique implements Engine.
func (n *Nuclear) Technique() Technique {
	return NuclearDetonation
}

// Update implements Engine.
func (n *Nuclear) Update(in Input, now time.Time) Output {
	if !in.Active {
		n.run.discard()
		n.detonated = false
		n.destroying = false
		return Output{Phase: PhaseIdle}
	}

	if n.run.begin(now) {
		n.launchPos = in.AsteroidPos.Add(nuclearLaunchOffset)
		n.standoff = in.AsteroidPos.Add(nuclearStandoffOffset)
	}

	elapsed := n.run.elapsed(now)

	if elapsed < nuclearApproachDuration {
		progress := float64(elapsed) / float64(nuclearApproachDuration)
		return Output{
			Phase: PhaseApproach,
			Visual: Visual{
				CraftVisible: true,
				CraftPos:     n.launchPos.Lerp(n.standoff, progress),
			},
		}
	}

	if !n.detonated {
		n.detonated = true
		n.destroying = n.diameterM <= NuclearDestroyMaxDiameterM
		out := Output{
			Phase:  PhaseDetonation,
			Visual: Visual{Flash: 1},
		}
		if n.destroying {
			// The destroy signal fires at the detonation instant so the
			// orchestrator can hide the asteroid under the flash.
			out.Destroyed = n.run.signalOnce()
		} else {
			dir := in.AsteroidPos.Sub(n.standoff).Normalize()
			out.Delta = dir.Scale(nuclearDeflection)
			out.HasDelta = true
		}
		return out
	}

	if elapsed < nuclearApproachDuration+nuclearFlashDuration {
		remaining := nuclearApproachDuration + nuclearFlashDuration - elapsed
		return Output{
			Phase:  PhaseDetonation,
			Visual: Visual{Flash: float64(remaining) / float64(nuclearFlashDuration)},
		}
	}

	out := Output{Phase: PhaseDone}
	if !n.destroying {
		out.Completed = n.run.signalOnce()
	}
	return out
}
