package server

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/orbitguard/deflect/internal/effect"
	"github.com/orbitguard/deflect/internal/report"
	"github.com/orbitguard/deflect/internal/sim"
)

var testThreat = report.Asteroid{
	DiameterM:   320,
	DensityKgM3: 2600,
	VelocityMS:  18000,
	AngleDeg:    45,
}

func newTestServer() (*Server, *sim.ManualClock) {
	clock := sim.NewManualClock(time.Unix(0, 0))
	return newServer(testThreat, log.New(io.Discard), clock), clock
}

// tick runs one server iteration without the frame-timing loop.
func tick(s *Server) {
	s.processRegistrations()
	s.applyCommands()
	s.orch.Step()
	s.updateReport()
	s.publishSnapshot()
}

func TestToggleTechniqueCommand(t *testing.T) {
	s, _ := newTestServer()
	handle := s.RegisterClient("tester")

	s.SendCommand(handle.ID, Command{Kind: CommandToggleTechnique, Technique: effect.GravityTractor})
	tick(s)
	if !s.orch.Requested(effect.GravityTractor) {
		t.Fatalf("expected tractor requested after toggle")
	}

	s.SendCommand(handle.ID, Command{Kind: CommandToggleTechnique, Technique: effect.GravityTractor})
	tick(s)
	if s.orch.Requested(effect.GravityTractor) {
		t.Fatalf("expected tractor cleared after second toggle")
	}
}

func TestSnapshotShape(t *testing.T) {
	s, _ := newTestServer()
	tick(s)

	snap := s.GetSnapshot()
	if len(snap.Effects) != len(effect.Techniques) {
		t.Fatalf("expected %d effect views, got %d", len(effect.Techniques), len(snap.Effects))
	}
	for i, ev := range snap.Effects {
		if ev.Key != i+1 {
			t.Errorf("effect %d: key = %d, want %d", i, ev.Key, i+1)
		}
		if ev.Name == "" {
			t.Errorf("effect %d: empty name", i)
		}
	}
	if !snap.Asteroid.Visible {
		t.Errorf("expected asteroid visible at start")
	}
	if snap.Report != nil {
		t.Errorf("expected no report before any analysis")
	}
}

func TestSnapshotTracksDeflection(t *testing.T) {
	s, clock := newTestServer()
	handle := s.RegisterClient("tester")

	s.SendCommand(handle.ID, Command{Kind: CommandToggleTechnique, Technique: effect.GravityTractor})
	for i := 0; i < 50; i++ {
		tick(s)
		clock.Advance(100 * time.Millisecond)
	}

	snap := s.GetSnapshot()
	if snap.Asteroid.Deflection.IsZero() {
		t.Fatalf("expected accumulated deflection after tractor run")
	}
	want := snap.Asteroid.Deflection.X + 35
	if snap.Asteroid.WorldPos.X != want {
		t.Errorf("world position not derived from base plus offset: got %v, want %v",
			snap.Asteroid.WorldPos.X, want)
	}
}

func TestAnalysisReportLifecycle(t *testing.T) {
	s, clock := newTestServer()
	handle := s.RegisterClient("tester")

	s.SendCommand(handle.ID, Command{Kind: CommandStartAnalysis})
	tick(s)
	if s.GetSnapshot().Report != nil {
		t.Fatalf("report must not appear before the scan finishes")
	}

	clock.Advance(effect.ScanDuration + 100*time.Millisecond)
	tick(s)

	snap := s.GetSnapshot()
	if snap.Report == nil {
		t.Fatalf("expected report after scan completion")
	}
	if snap.Report.Severity == "" || snap.Report.Energy == "" {
		t.Fatalf("report missing fields: %+v", snap.Report)
	}

	// Report persists across ticks until dismissed.
	tick(s)
	if s.GetSnapshot().Report == nil {
		t.Fatalf("report should persist while the scan stays complete")
	}

	s.SendCommand(handle.ID, Command{Kind: CommandCloseReport})
	tick(s)
	if s.GetSnapshot().Report != nil {
		t.Fatalf("expected report cleared after close")
	}
	if s.GetSnapshot().Scan.State != effect.ScanIdle {
		t.Fatalf("expected scan idle after close, got %v", s.GetSnapshot().Scan.StateLabel)
	}
}

func TestUnregisterRemovesClient(t *testing.T) {
	s, _ := newTestServer()
	handle := s.RegisterClient("tester")
	tick(s)

	if got := s.GetSnapshot().Clients; got != 1 {
		t.Fatalf("expected 1 client, got %d", got)
	}

	s.UnregisterClient(handle.ID)
	tick(s)

	if got := s.GetSnapshot().Clients; got != 0 {
		t.Fatalf("expected 0 clients after unregister, got %d", got)
	}
	if _, ok := <-handle.EventsCh; ok {
		t.Fatalf("expected events channel closed after unregister")
	}
}
