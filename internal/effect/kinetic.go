package effect

import (
	"time"

	"github.com/orbitguard/deflect/internal/vec"
)

// Kinetic impactor timings and geometry.
const (
	kineticApproachDuration = 2500 * time.Millisecond
	kineticCooldownDuration = 800 * time.Millisecond
	kineticDeflection       = 5.0 // Single impulse magnitude
)

// Launch point relative to the asteroid at activation.
var kineticLaunchOffset = vec.Vec3{X: -26, Y: 9, Z: 0}

// Kinetic models a DART-style impactor: approach, one large impulse at the
// impact instant, a short cooldown, then completion. It emits exactly one
// non-zero delta per activation.
type Kinetic struct {
	run       runState
	launchPos vec.Vec3
	impacted  bool
}

// NewKinetic creates an idle kinetic impactor engine.
func NewKinetic() *Kinetic {
	return &Kinetic{}
}

// Technique implements Engine.
func (k *Kinetic) Technique() Technique {
	return KineticImpactor
}

// Update implements Engine.
func (k *Kinetic) Update(in Input, now time.Time) Output {
	if !in.Active {
		k.run.discard()
		k.impacted = false
		return Output{Phase: PhaseIdle}
	}

	if k.run.begin(now) {
		k.launchPos = in.AsteroidPos.Add(kineticLaunchOffset)
	}

	elapsed := k.run.elapsed(now)

	if elapsed < kineticApproachDuration {
		progress := float64(elapsed) / float64(kineticApproachDuration)
		return Output{
			Phase: PhaseApproach,
			Visual: Visual{
				CraftVisible: true,
				CraftPos:     k.launchPos.Lerp(in.AsteroidPos, progress),
			},
		}
	}

	if !k.impacted {
		k.impacted = true
		dir := in.AsteroidPos.Sub(k.launchPos).Normalize()
		return Output{
			Phase:    PhaseImpact,
			Delta:    dir.Scale(kineticDeflection),
			HasDelta: true,
			Visual:   Visual{Flash: 1},
		}
	}

	if elapsed < kineticApproachDuration+kineticCooldownDuration {
		remaining := kineticApproachDuration + kineticCooldownDuration - elapsed
		return Output{
			Phase:  PhaseCooldown,
			Visual: Visual{Flash: float64(remaining) / float64(kineticCooldownDuration)},
		}
	}

	return Output{Phase: PhaseDone, Completed: k.run.signalOnce()}
}
