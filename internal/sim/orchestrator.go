package sim

import (
	"time"

	"github.com/orbitguard/deflect/internal/effect"
)

// Post-completion windows. Beam effects clear their residual offset after
// a short cooldown; impulse effects blink the asteroid; a nuclear destroy
// keeps it hidden noticeably longer before the scene resets.
const (
	beamResetCooldown    = 2 * time.Second
	nuclearResetCooldown = 4 * time.Second
	blinkHideDuration    = 1500 * time.Millisecond
	destroyHideDuration  = 6 * time.Second
)

// EffectStatus is the orchestrator's per-technique view for the renderer.
type EffectStatus struct {
	Technique effect.Technique
	Requested bool
	Running   bool
	Phase     effect.Phase
	Visual    effect.Visual
}

// Orchestrator maps request flags to running engine instances, guarantees
// at most one live instance per technique, routes deltas into the
// asteroid's accumulator and schedules the post-completion resets.
type Orchestrator struct {
	clock     Clock
	asteroid  *Asteroid
	diameterM float64

	requested map[effect.Technique]bool
	engines   map[effect.Technique]effect.Engine
	outputs   map[effect.Technique]effect.Output

	scan          *effect.Scan
	scanRequested bool
	scanStatus    effect.ScanStatus

	timers timerQueue
}

// NewOrchestrator creates an orchestrator for the given asteroid.
// asteroidDiameterM feeds the nuclear engine's destroy-or-deflect
// decision.
func NewOrchestrator(clock Clock, asteroid *Asteroid, asteroidDiameterM float64) *Orchestrator {
	return &Orchestrator{
		clock:     clock,
		asteroid:  asteroid,
		diameterM: asteroidDiameterM,
		requested: make(map[effect.Technique]bool),
		engines:   make(map[effect.Technique]effect.Engine),
		outputs:   make(map[effect.Technique]effect.Output),
		scan:      effect.NewScan(),
	}
}

// Request sets a technique's activation flag. Requesting a technique that
// is already running is a no-op; the run continues undisturbed.
func (o *Orchestrator) Request(t effect.Technique, on bool) {
	o.requested[t] = on
}

// Requested reports a technique's current request flag.
func (o *Orchestrator) Requested(t effect.Technique) bool {
	return o.requested[t]
}

// Running reports whether a technique has a live engine instance.
func (o *Orchestrator) Running(t effect.Technique) bool {
	_, ok := o.engines[t]
	return ok
}

// RequestAnalysis sets the analysis scan flag. The scan is independent of
// the deflection techniques and never touches asteroid state.
func (o *Orchestrator) RequestAnalysis(on bool) {
	o.scanRequested = on
}

// CloseReport dismisses a completed analysis and returns the scan to idle.
func (o *Orchestrator) CloseReport() {
	o.scanRequested = false
	o.scan.Close()
}

// ScanStatus returns the analysis scan's state as of the last step.
func (o *Orchestrator) ScanStatus() effect.ScanStatus {
	return o.scanStatus
}

// Asteroid returns the canonical asteroid state.
func (o *Orchestrator) Asteroid() *Asteroid {
	return o.asteroid
}

// Effects returns the per-technique status in display order.
func (o *Orchestrator) Effects() []EffectStatus {
	statuses := make([]EffectStatus, 0, len(effect.Techniques))
	for _, t := range effect.Techniques {
		out := o.outputs[t]
		statuses = append(statuses, EffectStatus{
			Technique: t,
			Requested: o.requested[t],
			Running:   o.Running(t),
			Phase:     out.Phase,
			Visual:    out.Visual,
		})
	}
	return statuses
}

// Step advances the whole simulation by one tick: due timers first, then
// the scan, then every technique in a fixed order. All deltas land in the
// accumulator before the caller reads WorldPosition for the frame.
func (o *Orchestrator) Step() {
	now := o.clock.Now()
	o.timers.runDue(now)

	o.scanStatus = o.scan.Update(o.scanRequested, now)

	for _, t := range effect.Techniques {
		o.stepTechnique(t, now)
	}
}

func (o *Orchestrator) stepTechnique(t effect.Technique, now time.Time) {
	engine, running := o.engines[t]

	if !running {
		// Deflection techniques only start against a visible asteroid.
		if !o.requested[t] || !o.asteroid.Visible() {
			o.outputs[t] = effect.Output{}
			return
		}
		engine = effect.NewEngine(t, o.diameterM)
		o.engines[t] = engine
	}

	active := o.asteroid.Visible()
	out := engine.Update(effect.Input{
		AsteroidPos: o.asteroid.WorldPosition(),
		Active:      active,
	}, now)
	o.outputs[t] = out

	if !active {
		// Hard cancellation: the engine has already discarded its state;
		// drop the instance and the stale request with it.
		delete(o.engines, t)
		o.requested[t] = false
		return
	}

	if out.HasDelta {
		o.asteroid.Deflection().ApplyDelta(out.Delta)
	}
	if out.Destroyed {
		o.handleDestroy(now)
	}
	if out.Completed {
		o.handleCompletion(t, now)
	}
	if out.Phase == effect.PhaseDone {
		delete(o.engines, t)
		o.requested[t] = false
	}
}

// handleDestroy hides the vaporized asteroid under the detonation flash
// and brings a fresh one back after the long destroy window.
func (o *Orchestrator) handleDestroy(now time.Time) {
	o.asteroid.Hide()
	o.timers.schedule(now.Add(destroyHideDuration), o.asteroid.Show)
}

func (o *Orchestrator) handleCompletion(t effect.Technique, now time.Time) {
	switch t {
	case effect.KineticImpactor, effect.LaserAblation:
		// Deflection achieved: blink the asteroid out and bring it back at
		// its base position. Both impulse paths share this reset beat.
		o.asteroid.Hide()
		o.asteroid.Deflection().Reset()
		o.timers.schedule(now.Add(blinkHideDuration), o.asteroid.Show)
	case effect.NuclearDetonation:
		o.timers.schedule(now.Add(nuclearResetCooldown), o.asteroid.Deflection().Reset)
	case effect.GravityTractor, effect.IonBeamShepherd:
		o.timers.schedule(now.Add(beamResetCooldown), o.asteroid.Deflection().Reset)
	}
}
