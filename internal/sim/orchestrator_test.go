package sim

import (
	"testing"
	"time"

	"github.com/orbitguard/deflect/internal/effect"
	"github.com/orbitguard/deflect/internal/vec"
)

const testDiameterM = 320.0

func newTestOrchestrator(diameterM float64) (*Orchestrator, *ManualClock) {
	clock := NewManualClock(time.Unix(10_000, 0))
	asteroid := NewAsteroid(vec.Vec3{X: 35, Y: 0, Z: 0})
	return NewOrchestrator(clock, asteroid, diameterM), clock
}

// stepFor drives the orchestrator for the given duration at the given
// tick interval.
func stepFor(o *Orchestrator, clock *ManualClock, total, tick time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += tick {
		o.Step()
		clock.Advance(tick)
	}
	o.Step()
}

func TestTractorRunAccumulatesAndResets(t *testing.T) {
	o, clock := newTestOrchestrator(testDiameterM)
	o.Request(effect.GravityTractor, true)

	// Run well past the tractor's fixed duration.
	stepFor(o, clock, 10*time.Second, 60*time.Millisecond)

	if o.Running(effect.GravityTractor) {
		t.Fatalf("tractor must have completed")
	}
	if o.Requested(effect.GravityTractor) {
		t.Fatalf("request flag must clear on completion")
	}
	offset := o.Asteroid().Deflection().Current()
	if offset.Y <= 0 {
		t.Fatalf("tractor must have pulled the asteroid upward, offset %+v", offset)
	}

	// The scheduled cooldown clears the offset to exactly zero.
	stepFor(o, clock, 3*time.Second, 60*time.Millisecond)
	if !o.Asteroid().Deflection().Current().IsZero() {
		t.Fatalf("offset after cooldown = %+v", o.Asteroid().Deflection().Current())
	}
}

func TestRetriggerWhileRunningIsNoOp(t *testing.T) {
	o, clock := newTestOrchestrator(testDiameterM)
	o.Request(effect.GravityTractor, true)

	// Keep re-requesting every tick; the run must still complete on the
	// original schedule (~9 s), not restart.
	deadline := 10 * time.Second
	tick := 60 * time.Millisecond
	var completedAt time.Duration = -1
	for elapsed := time.Duration(0); elapsed < deadline; elapsed += tick {
		o.Request(effect.GravityTractor, true)
		o.Step()
		if completedAt < 0 && elapsed > time.Second && !o.Running(effect.GravityTractor) {
			completedAt = elapsed
			break
		}
		clock.Advance(tick)
	}
	if completedAt < 0 {
		t.Fatalf("tractor never completed despite re-requests")
	}
	if completedAt > 9*time.Second+500*time.Millisecond {
		t.Fatalf("re-requests must not extend the run, completed at %v", completedAt)
	}
}

func TestKineticBlinkResetsScene(t *testing.T) {
	o, clock := newTestOrchestrator(testDiameterM)
	o.Request(effect.KineticImpactor, true)

	// Run to completion (approach + cooldown is ~3.3 s).
	stepFor(o, clock, 4*time.Second, 30*time.Millisecond)

	if o.Running(effect.KineticImpactor) {
		t.Fatalf("kinetic must have completed")
	}
	if o.Asteroid().Visible() {
		t.Fatalf("completion must hide the asteroid for the blink")
	}
	if !o.Asteroid().Deflection().Current().IsZero() {
		t.Fatalf("blink must clear the offset immediately")
	}

	stepFor(o, clock, 2*time.Second, 30*time.Millisecond)
	if !o.Asteroid().Visible() {
		t.Fatalf("asteroid must re-show after the blink window")
	}
}

func TestNuclearDestroyHidesThenRestores(t *testing.T) {
	o, clock := newTestOrchestrator(100) // Small body: destroy outcome
	o.Request(effect.NuclearDetonation, true)

	// Past the detonation instant (~2.8 s).
	stepFor(o, clock, 3*time.Second, 30*time.Millisecond)
	if o.Asteroid().Visible() {
		t.Fatalf("destroyed asteroid must be hidden")
	}

	// The destroy window is longer than any other reset.
	stepFor(o, clock, 7*time.Second, 30*time.Millisecond)
	if !o.Asteroid().Visible() {
		t.Fatalf("asteroid must return after the destroy window")
	}
	if !o.Asteroid().Deflection().Current().IsZero() {
		t.Fatalf("restored asteroid must carry a zero offset")
	}
}

func TestNuclearDeflectSchedulesOffsetReset(t *testing.T) {
	o, clock := newTestOrchestrator(testDiameterM) // Large body: deflect
	o.Request(effect.NuclearDetonation, true)

	stepFor(o, clock, 5*time.Second, 30*time.Millisecond)
	if o.Running(effect.NuclearDetonation) {
		t.Fatalf("nuclear run must have completed")
	}
	if !o.Asteroid().Visible() {
		t.Fatalf("deflect outcome must not hide the asteroid")
	}
	if o.Asteroid().Deflection().Current().IsZero() {
		t.Fatalf("deflect outcome must leave a residual offset")
	}

	stepFor(o, clock, 5*time.Second, 30*time.Millisecond)
	if !o.Asteroid().Deflection().Current().IsZero() {
		t.Fatalf("offset must clear after the nuclear cooldown")
	}
}

func TestHiddenAsteroidGatesStarts(t *testing.T) {
	o, _ := newTestOrchestrator(testDiameterM)
	o.Asteroid().Hide()
	o.Request(effect.LaserAblation, true)
	o.Step()
	if o.Running(effect.LaserAblation) {
		t.Fatalf("effects must not start against a hidden asteroid")
	}
}

func TestHidingCancelsRunningEffects(t *testing.T) {
	o, clock := newTestOrchestrator(testDiameterM)
	o.Request(effect.GravityTractor, true)
	stepFor(o, clock, time.Second, 30*time.Millisecond)
	if !o.Running(effect.GravityTractor) {
		t.Fatalf("tractor should be mid-run")
	}

	o.Asteroid().Hide()
	o.Step()
	if o.Running(effect.GravityTractor) {
		t.Fatalf("hiding the asteroid must discard the running engine")
	}
	if o.Requested(effect.GravityTractor) {
		t.Fatalf("the stale request must be dropped with the engine")
	}
}

func TestConcurrentTechniquesShareAccumulator(t *testing.T) {
	o, clock := newTestOrchestrator(testDiameterM)
	o.Request(effect.GravityTractor, true)
	o.Request(effect.LaserAblation, true)

	stepFor(o, clock, 2*time.Second, 60*time.Millisecond)
	if !o.Running(effect.GravityTractor) || !o.Running(effect.LaserAblation) {
		t.Fatalf("both techniques must run concurrently")
	}
	offset := o.Asteroid().Deflection().Current()
	// Tractor pulls +Y, laser pushes +X: both contributions must be present.
	if offset.X <= 0 || offset.Y <= 0 {
		t.Fatalf("merged offset missing a contribution: %+v", offset)
	}
}

func TestAnalysisScanIndependentOfAsteroid(t *testing.T) {
	o, clock := newTestOrchestrator(testDiameterM)
	o.RequestAnalysis(true)

	stepFor(o, clock, effect.ScanDuration+time.Second, 60*time.Millisecond)
	if got := o.ScanStatus().State; got != effect.ScanComplete {
		t.Fatalf("scan state = %v", got)
	}
	if !o.Asteroid().Deflection().Current().IsZero() {
		t.Fatalf("the scan must never move the asteroid")
	}

	o.CloseReport()
	o.Step()
	if got := o.ScanStatus().State; got != effect.ScanIdle {
		t.Fatalf("closed scan state = %v", got)
	}
}
