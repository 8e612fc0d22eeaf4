package effect

import (
	"testing"
	"time"

	"github.com/orbitguard/deflect/internal/vec"
)

var testAsteroidPos = vec.Vec3{X: 35, Y: 0, Z: 0}

// drive advances an engine tick by tick at the given interval and returns
// all outputs emitted over the total duration.
func drive(e Engine, pos vec.Vec3, start time.Time, total, step time.Duration) []Output {
	var outs []Output
	for elapsed := time.Duration(0); elapsed <= total; elapsed += step {
		outs = append(outs, e.Update(Input{AsteroidPos: pos, Active: true}, start.Add(elapsed)))
	}
	return outs
}

func countDeltas(outs []Output) (n int, sum vec.Vec3) {
	for _, o := range outs {
		if o.HasDelta {
			n++
			sum = sum.Add(o.Delta)
		}
	}
	return n, sum
}

func countSignals(outs []Output) (completed, destroyed int) {
	for _, o := range outs {
		if o.Completed {
			completed++
		}
		if o.Destroyed {
			destroyed++
		}
	}
	return completed, destroyed
}

func TestKineticSingleImpulse(t *testing.T) {
	start := time.Unix(1000, 0)
	outs := drive(NewKinetic(), testAsteroidPos, start, 5*time.Second, 16*time.Millisecond)

	n, sum := countDeltas(outs)
	if n != 1 {
		t.Fatalf("kinetic must emit exactly one delta, got %d", n)
	}
	if sum.IsZero() {
		t.Fatalf("impact delta must be non-zero")
	}
	completed, destroyed := countSignals(outs)
	if completed != 1 {
		t.Fatalf("completion fired %d times", completed)
	}
	if destroyed != 0 {
		t.Fatalf("kinetic must never signal destroy")
	}
}

func TestKineticPhaseOrder(t *testing.T) {
	start := time.Unix(1000, 0)
	k := NewKinetic()
	in := Input{AsteroidPos: testAsteroidPos, Active: true}

	if out := k.Update(in, start); out.Phase != PhaseApproach {
		t.Fatalf("first tick phase = %v", out.Phase)
	}
	if out := k.Update(in, start.Add(kineticApproachDuration)); out.Phase != PhaseImpact {
		t.Fatalf("impact instant phase = %v", out.Phase)
	}
	if out := k.Update(in, start.Add(kineticApproachDuration+kineticCooldownDuration/2)); out.Phase != PhaseCooldown {
		t.Fatalf("cooldown phase = %v", out.Phase)
	}
	if out := k.Update(in, start.Add(10*time.Second)); out.Phase != PhaseDone {
		t.Fatalf("terminal phase = %v", out.Phase)
	}
}

func TestKineticInactiveShortCircuits(t *testing.T) {
	start := time.Unix(1000, 0)
	k := NewKinetic()
	k.Update(Input{AsteroidPos: testAsteroidPos, Active: true}, start)

	out := k.Update(Input{AsteroidPos: testAsteroidPos, Active: false}, start.Add(time.Second))
	if out.Phase != PhaseIdle || out.HasDelta || out.Completed {
		t.Fatalf("inactive update must be an idle no-op, got %+v", out)
	}

	// Reactivation starts a fresh approach, not a resumed one.
	out = k.Update(Input{AsteroidPos: testAsteroidPos, Active: true}, start.Add(10*time.Second))
	if out.Phase != PhaseApproach {
		t.Fatalf("reactivation phase = %v", out.Phase)
	}
}

func TestKineticCraftMovesTowardAsteroid(t *testing.T) {
	start := time.Unix(1000, 0)
	k := NewKinetic()
	in := Input{AsteroidPos: testAsteroidPos, Active: true}

	first := k.Update(in, start)
	later := k.Update(in, start.Add(kineticApproachDuration/2))
	if !first.Visual.CraftVisible || !later.Visual.CraftVisible {
		t.Fatalf("craft must be visible during approach")
	}
	d0 := first.Visual.CraftPos.DistanceTo(testAsteroidPos)
	d1 := later.Visual.CraftPos.DistanceTo(testAsteroidPos)
	if d1 >= d0 {
		t.Fatalf("craft must close distance: %v then %v", d0, d1)
	}
}
