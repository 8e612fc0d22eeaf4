package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/orbitguard/deflect/internal/effect"
	"github.com/orbitguard/deflect/internal/loop/config"
	"github.com/orbitguard/deflect/internal/report"
	"github.com/orbitguard/deflect/internal/sim"
	"github.com/orbitguard/deflect/internal/vec"
)

// SimServer is the interface clients use to communicate with the
// simulation server. Decouples the Client from the concrete Server
// implementation, enabling testing and headless feeds.
type SimServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendCommand(clientID int, cmd Command)
	GetSnapshot() *Snapshot
}

// CommandKind identifies a client command.
type CommandKind int

const (
	CommandToggleTechnique CommandKind = iota
	CommandStartAnalysis
	CommandCloseReport
)

// Command is a client's request against the shared simulation.
type Command struct {
	Kind      CommandKind
	Technique effect.Technique // Only for CommandToggleTechnique
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent
}

// clientCommand pairs a command with its sender.
type clientCommand struct {
	ClientID int
	Command  Command
}

// Server owns the shared simulation and processes commands from all
// clients. Every connected session views and steers the same asteroid.
type Server struct {
	orch      *sim.Orchestrator
	threat    report.Asteroid
	reportRec *report.DisplayRecord

	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	commandChan  chan clientCommand
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex

	logger *log.Logger
}

// Compile-time check that Server implements SimServer.
var _ SimServer = (*Server)(nil)

// NewServer creates a server simulating the given threat object.
func NewServer(threat report.Asteroid, logger *log.Logger) *Server {
	return newServer(threat, logger, sim.NewClock())
}

func newServer(threat report.Asteroid, logger *log.Logger, clock sim.Clock) *Server {
	asteroid := sim.NewAsteroid(vec.Vec3{X: config.AsteroidBaseX})

	s := &Server{
		orch:         sim.NewOrchestrator(clock, asteroid, threat.DiameterM),
		threat:       threat,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		commandChan:  make(chan clientCommand, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		logger:       logger,
	}

	s.snapshot.Store(&Snapshot{Effects: []EffectView{}})
	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	s.logger.Info("simulation started",
		"diameter_m", s.threat.DiameterM,
		"velocity_ms", s.threat.VelocityMS)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()

		s.processRegistrations()
		s.applyCommands()
		s.orch.Step()
		s.updateReport()
		s.publishSnapshot()

		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// Shutdown gracefully shuts down the server by notifying all connected
// clients and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendCommand sends a command from a client to the server.
func (s *Server) SendCommand(clientID int, cmd Command) {
	select {
	case s.commandChan <- clientCommand{ClientID: clientID, Command: cmd}:
	default:
		// Command channel full, drop command
	}
}

// GetSnapshot returns the current simulation snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Info("client connected", "id", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.logger.Info("client disconnected", "id", clientID)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// applyCommands drains pending commands into the orchestrator.
func (s *Server) applyCommands() {
	for {
		select {
		case cc := <-s.commandChan:
			switch cc.Command.Kind {
			case CommandToggleTechnique:
				t := cc.Command.Technique
				s.orch.Request(t, !s.orch.Requested(t))
			case CommandStartAnalysis:
				s.orch.RequestAnalysis(true)
			case CommandCloseReport:
				s.orch.CloseReport()
			}
		default:
			return
		}
	}
}

// updateReport builds the impact report when a scan completes and drops
// it when the scan returns to idle.
func (s *Server) updateReport() {
	status := s.orch.ScanStatus()
	switch {
	case status.JustCompleted:
		rec := report.BuildDisplay(report.Compute(s.threat))
		s.reportRec = &rec
		s.logger.Info("analysis complete", "severity", rec.Severity, "energy", rec.Energy)
	case status.State == effect.ScanIdle:
		s.reportRec = nil
	}
}

// publishSnapshot builds a fresh snapshot and swaps it in for clients.
func (s *Server) publishSnapshot() {
	asteroid := s.orch.Asteroid()

	statuses := s.orch.Effects()
	effects := make([]EffectView, 0, len(statuses))
	for i, st := range statuses {
		effects = append(effects, EffectView{
			Key:        i + 1,
			Name:       st.Technique.String(),
			Requested:  st.Requested,
			Running:    st.Running,
			Phase:      st.Phase,
			PhaseLabel: st.Phase.String(),
			Visual:     st.Visual,
		})
	}

	scan := s.orch.ScanStatus()

	s.mu.RLock()
	clientCount := len(s.clients)
	s.mu.RUnlock()

	s.snapshot.Store(&Snapshot{
		Asteroid: AsteroidView{
			Visible:    asteroid.Visible(),
			WorldPos:   asteroid.WorldPosition(),
			Deflection: asteroid.Deflection().Current(),
			DiameterM:  s.threat.DiameterM,
		},
		Effects: effects,
		Scan: ScanView{
			State:      scan.State,
			StateLabel: scan.State.String(),
			Progress:   scan.Progress,
		},
		Report:  s.reportRec,
		Clients: clientCount,
	})
}
