package client

import (
	"bufio"
	"io"
	"time"

	"github.com/orbitguard/deflect/internal/draw"
	"github.com/orbitguard/deflect/internal/effect"
	"github.com/orbitguard/deflect/internal/input"
	"github.com/orbitguard/deflect/internal/loop/config"
	"github.com/orbitguard/deflect/internal/loop/server"
	"github.com/orbitguard/deflect/internal/object"
	"github.com/orbitguard/deflect/internal/physics"
	"github.com/orbitguard/deflect/internal/vec"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.SimServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc

	proj        physics.Projection
	earth       *object.Earth
	asteroidVis *object.Asteroid
	particles   []*object.Particle
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
}

// NewClient creates a new client connected to the given server.
func NewClient(ss server.SimServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	handle := ss.RegisterClient(opts.Username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	proj := physics.Projection{
		OffsetX: config.ProjOffsetX,
		OffsetY: config.ProjOffsetY,
		Scale:   config.ProjScale,
		SkewX:   config.ProjSkewX,
		SkewY:   config.ProjSkewY,
	}

	return &Client{
		server:       ss,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		proj:         proj,
		earth:        object.NewEarth(vec.Vec3{X: config.EarthX}, config.EarthRadius),
		asteroidVis:  object.NewAsteroid(4.5),
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.State {
		case SessionStateIntro:
			c.updateIntroState()
		case SessionStateScene:
			c.updateSceneState()
		case SessionStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// Spawn implements object.Spawner for particle bursts.
func (c *Client) Spawn(p *object.Particle) {
	c.particles = append(c.particles, p)
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.State = SessionStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateIntroState handles the title screen.
func (c *Client) updateIntroState() {
	if c.state.Input.Enter {
		c.state.State = SessionStateScene
	}
}

// updateSceneState forwards control events to the server and advances the
// client-side visuals.
func (c *Client) updateSceneState() {
	in := c.state.Input
	if in.Technique >= 1 && in.Technique <= len(effect.Techniques) {
		c.server.SendCommand(c.handle.ID, server.Command{
			Kind:      server.CommandToggleTechnique,
			Technique: effect.Techniques[in.Technique-1],
		})
	}
	if in.Analyze {
		c.server.SendCommand(c.handle.ID, server.Command{Kind: server.CommandStartAnalysis})
	}
	if in.CloseReport {
		c.server.SendCommand(c.handle.ID, server.Command{Kind: server.CommandCloseReport})
	}

	delta := c.state.delta.Seconds()
	c.asteroidVis.Update(delta)
	c.updateParticles(delta)
	c.spawnPhaseParticles(c.server.GetSnapshot())
}

// updateParticles advances and reaps the particle list.
func (c *Client) updateParticles(deltaSeconds float64) {
	kept := c.particles[:0]
	for _, p := range c.particles {
		if p.Update(deltaSeconds) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	c.particles = kept
}

// spawnPhaseParticles fires a burst when a technique enters its impact or
// detonation phase. Phases come from the shared snapshot, so every client
// sees the burst at the same moment.
func (c *Client) spawnPhaseParticles(snapshot *server.Snapshot) {
	center := c.proj.Project(snapshot.Asteroid.WorldPos)

	for i, ev := range snapshot.Effects {
		if i >= len(c.state.prevPhases) {
			break
		}
		prev := c.state.prevPhases[i]
		if ev.Phase != prev {
			switch ev.Phase {
			case effect.PhaseImpact:
				object.SpawnExplosion(center, 14, 18, 0.8, c)
			case effect.PhaseDetonation:
				object.SpawnExplosion(center, 30, 28, 1.2, c)
			}
		}
		c.state.prevPhases[i] = ev.Phase
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
