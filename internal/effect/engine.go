// Package effect implements the timed phase machines behind each
// mitigation technique. An engine consumes the asteroid's world position
// and an active flag every tick and produces at most one deflection delta
// per tick plus one-shot terminal signals.
package effect

import (
	"time"

	"github.com/orbitguard/deflect/internal/vec"
)

// Technique identifies a deflection technique. The analysis scan is not a
// technique; it has its own state machine (see Scan).
type Technique int

const (
	KineticImpactor Technique = iota
	NuclearDetonation
	GravityTractor
	LaserAblation
	IonBeamShepherd
)

// Techniques lists all deflection techniques in display order.
var Techniques = []Technique{
	KineticImpactor,
	NuclearDetonation,
	GravityTractor,
	LaserAblation,
	IonBeamShepherd,
}

// String returns the display name of the technique.
func (t Technique) String() string {
	switch t {
	case KineticImpactor:
		return "Kinetic Impactor"
	case NuclearDetonation:
		return "Nuclear Detonation"
	case GravityTractor:
		return "Gravity Tractor"
	case LaserAblation:
		return "Laser Ablation"
	case IonBeamShepherd:
		return "Ion Beam Shepherd"
	}
	return "Unknown"
}

// Phase is an ordered sub-state within a technique's timed sequence.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseApproach
	PhaseImpact
	PhaseDetonation
	PhaseStationKeeping
	PhaseBeam
	PhaseCooldown
	PhaseDone
)

// String returns the HUD label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseApproach:
		return "approach"
	case PhaseImpact:
		return "impact"
	case PhaseDetonation:
		return "detonation"
	case PhaseStationKeeping:
		return "station-keeping"
	case PhaseBeam:
		return "beam"
	case PhaseCooldown:
		return "cooldown"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// Input is what an engine reads each tick.
type Input struct {
	AsteroidPos vec.Vec3
	Active      bool
}

// Visual carries phase-specific render state. The renderer is the only
// consumer; the simulation never reads it back.
type Visual struct {
	CraftVisible bool     `json:"craftVisible"`
	CraftPos     vec.Vec3 `json:"craftPos"`
	BeamActive   bool     `json:"beamActive"`
	BeamFrom     vec.Vec3 `json:"beamFrom"`
	Flash        float64  `json:"flash"` // Explosion intensity in [0, 1]
}

// Output is what an engine produces each tick. Completed and Destroyed are
// one-shot: each fires on at most one tick per activation, and never both.
type Output struct {
	Phase     Phase
	Delta     vec.Vec3
	HasDelta  bool
	Completed bool
	Destroyed bool
	Visual    Visual
}

// Engine is the per-technique phase machine contract. Update must be a
// no-op (state discarded, idle output) whenever in.Active is false.
type Engine interface {
	Technique() Technique
	Update(in Input, now time.Time) Output
}

// minDeltaInterval rate-limits continuous-delta engines so a fast host
// render loop cannot over-apply force.
const minDeltaInterval = 50 * time.Millisecond

// runState holds the activation bookkeeping every engine shares: start
// capture on the first active tick, one-shot terminal gating and delta
// rate limiting.
type runState struct {
	started    bool
	startTime  time.Time
	signaled   bool // Completed or Destroyed already fired
	lastEmit   time.Time
	hasEmitted bool
}

// begin captures the start time on the first active tick. Returns true on
// that first tick.
func (r *runState) begin(now time.Time) bool {
	if r.started {
		return false
	}
	r.started = true
	r.startTime = now
	return true
}

// elapsed returns time since activation.
func (r *runState) elapsed(now time.Time) time.Duration {
	return now.Sub(r.startTime)
}

// discard throws away all activation state. Used when the active guard
// drops mid-run; no terminal signal fires.
func (r *runState) discard() {
	*r = runState{}
}

// signalOnce returns true the first time it is called per activation.
func (r *runState) signalOnce() bool {
	if r.signaled {
		return false
	}
	r.signaled = true
	return true
}

// shouldEmit reports whether enough time has passed since the last delta
// emission, and records the emission when it has.
func (r *runState) shouldEmit(now time.Time) bool {
	if r.hasEmitted && now.Sub(r.lastEmit) < minDeltaInterval {
		return false
	}
	r.lastEmit = now
	r.hasEmitted = true
	return true
}

// NewEngine constructs the engine for a technique. asteroidDiameterM is
// only consulted by the nuclear engine, which needs it to pick between the
// destroy and deflect outcomes.
func NewEngine(t Technique, asteroidDiameterM float64) Engine {
	switch t {
	case KineticImpactor:
		return NewKinetic()
	case NuclearDetonation:
		return NewNuclear(asteroidDiameterM)
	case GravityTractor:
		return NewTractor()
	case LaserAblation:
		return NewLaser()
	case IonBeamShepherd:
		return NewIonBeam()
	}
	return nil
}
