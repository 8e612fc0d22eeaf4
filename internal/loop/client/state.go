package client

import (
	"time"

	"github.com/orbitguard/deflect/internal/draw"
	"github.com/orbitguard/deflect/internal/effect"
	"github.com/orbitguard/deflect/internal/input"
)

// SessionState represents the current screen for a client.
type SessionState int

const (
	SessionStateIntro    SessionState = iota // Title screen
	SessionStateScene                        // Live simulation view
	SessionStateShutdown                     // Server is shutting down
)

// ClientState holds per-session state. Each connected terminal has its
// own instance; the simulation itself is shared through the server.
type ClientState struct {
	Input         input.Input
	State         SessionState
	Running       bool // Client loop running
	termSizeFunc  draw.TermSizeFunc
	delta         time.Duration // Frame delta time (client-side)
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	wasInactive   bool
	prevState     SessionState

	// Previous frame's per-technique phases, for edge-triggered particle
	// bursts on impact and detonation.
	prevPhases []effect.Phase
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		State:      SessionStateIntro,
		Running:    true,
		prevPhases: make([]effect.Phase, len(effect.Techniques)),
	}
}
