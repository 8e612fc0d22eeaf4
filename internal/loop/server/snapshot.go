package server

import (
	"github.com/orbitguard/deflect/internal/effect"
	"github.com/orbitguard/deflect/internal/report"
	"github.com/orbitguard/deflect/internal/vec"
)

// AsteroidView is the asteroid's state as seen by clients.
type AsteroidView struct {
	Visible    bool     `json:"visible"`
	WorldPos   vec.Vec3 `json:"worldPos"`
	Deflection vec.Vec3 `json:"deflection"`
	DiameterM  float64  `json:"diameterM"`
}

// EffectView is one technique's state as seen by clients. Key is the
// 1-based toggle key shown in the HUD.
type EffectView struct {
	Key        int           `json:"key"`
	Name       string        `json:"name"`
	Requested  bool          `json:"requested"`
	Running    bool          `json:"running"`
	Phase      effect.Phase  `json:"phase"`
	PhaseLabel string        `json:"phaseLabel"`
	Visual     effect.Visual `json:"visual"`
}

// ScanView is the analysis scan's state as seen by clients.
type ScanView struct {
	State      effect.ScanState `json:"state"`
	StateLabel string           `json:"stateLabel"`
	Progress   float64          `json:"progress"`
}

// Snapshot is an immutable view of the simulation published once per
// server tick. Clients read it lock-free through an atomic pointer and
// must never mutate it.
type Snapshot struct {
	Asteroid AsteroidView          `json:"asteroid"`
	Effects  []EffectView          `json:"effects"`
	Scan     ScanView              `json:"scan"`
	Report   *report.DisplayRecord `json:"report,omitempty"`
	Clients  int                   `json:"clients"`
}
