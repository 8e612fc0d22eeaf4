package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/orbitguard/deflect/internal/draw"
	"github.com/orbitguard/deflect/internal/effect"
	"github.com/orbitguard/deflect/internal/loop/config"
	"github.com/orbitguard/deflect/internal/loop/server"
	"github.com/orbitguard/deflect/internal/object"
	"github.com/orbitguard/deflect/internal/report"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On session state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.State != c.state.prevState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevState = c.state.State
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snapshot := c.server.GetSnapshot()
	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: c.chunkWriter,
		Proj:   c.proj,
	}

	if c.state.State == SessionStateScene {
		c.earth.Draw(ctx)
		if snapshot.Asteroid.Visible {
			c.asteroidVis.Draw(ctx, snapshot.Asteroid.WorldPos)
		}
		for _, ev := range snapshot.Effects {
			if ev.Running {
				object.DrawEffect(ctx, ev.Visual, snapshot.Asteroid.WorldPos)
			}
		}
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	if c.state.State == SessionStateScene {
		for _, p := range c.particles {
			p.Draw(ctx)
		}
	}

	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// drawUI draws the UI overlay for the current session state.
func (c *Client) drawUI(snapshot *server.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.State == SessionStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.State {
	case SessionStateScene:
		c.drawSceneHUD(termWidth, termHeight, snapshot)
	case SessionStateIntro:
		c.drawIntroScreen(centerX, centerY)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawIntroScreen draws the title screen.
func (c *Client) drawIntroScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___  ___ ___ _    ___ ___ _____  `,
		` |   \| __| __| |  | __/ __|_   _| `,
		` | |) | _|| _|| |__| _| (__  | |   `,
		` |___/|___|_| |____|___\___| |_|   `,
		`                                   `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		if len(line) > titleWidth {
			titleWidth = len(line)
		}
	}

	cw := c.chunkWriter
	titleStartY := centerY - 7
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	subtitle := "~ Planetary defense console over SSH ~"
	cw.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	controlHeader := "Controls"
	cw.WriteAt(centerX-len(controlHeader)/2, controlsY, controlHeader)

	controlLines := []string{
		"1-5 . . Toggle deflection technique",
		"A . . . . . . . . . Analyze threat",
		"ESC . . . . . . . . . Close report",
		"Q . . . . . . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(line)/2, controlsY+1+i, line)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press ENTER to take the console  <<"
		cw.WriteAt(centerX-len(prompt)/2, controlsY+len(controlLines)+2, prompt)
	}
}

// drawSceneHUD draws the technique panel, scan bar and report overlay.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen (since we no longer clear every frame).
func (c *Client) drawSceneHUD(termWidth, termHeight int, snapshot *server.Snapshot) {
	cw := c.chunkWriter

	header := fmt.Sprintf("DEFLECT  threat %.0f m", snapshot.Asteroid.DiameterM)
	cw.WriteAt(2, 1, header)

	viewersText := fmt.Sprintf("Viewers: %-4d", snapshot.Clients)
	cw.WriteAt(termWidth-len(viewersText)-1, 1, viewersText)

	c.drawTechniquePanel(snapshot)
	c.drawScanBar(termHeight, snapshot)

	if snapshot.Report != nil {
		c.drawReportPanel(termWidth, termHeight, snapshot.Report)
	}

	hint := "1-5 toggle  A analyze  ESC close report  Q quit"
	cw.WriteAt(2, termHeight, hint)
}

// drawTechniquePanel lists every technique with its toggle key and phase.
func (c *Client) drawTechniquePanel(snapshot *server.Snapshot) {
	cw := c.chunkWriter

	for i, ev := range snapshot.Effects {
		color := draw.ColorDim
		switch {
		case ev.Running:
			color = draw.ColorGreen
		case ev.Requested:
			color = draw.ColorYellow
		}

		phase := ev.PhaseLabel
		if !ev.Running {
			phase = ""
		}
		line := fmt.Sprintf("%s[%d] %-18s %-15s%s", color, ev.Key, ev.Name, phase, draw.ColorReset)
		cw.WriteAt(2, 3+i, line)
	}
}

// drawScanBar draws the analysis progress bar above the controls hint.
func (c *Client) drawScanBar(termHeight int, snapshot *server.Snapshot) {
	cw := c.chunkWriter
	row := termHeight - 2

	const barWidth = 24
	switch snapshot.Scan.State {
	case effect.ScanRunning:
		filled := int(snapshot.Scan.Progress * barWidth)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		cw.WriteAt(2, row, fmt.Sprintf("Analyzing [%s] %3.0f%%", bar, snapshot.Scan.Progress*100))
	case effect.ScanComplete:
		cw.WriteAt(2, row, fmt.Sprintf("%-42s", "Analysis complete"))
	default:
		cw.WriteAt(2, row, fmt.Sprintf("%-42s", "[A] Analyze threat"))
	}
}

// severityColor maps report severity to a HUD color.
func severityColor(s report.Severity) string {
	switch s {
	case report.SeverityCritical:
		return draw.ColorRed
	case report.SeverityMajor:
		return draw.ColorYellow
	}
	return draw.ColorGreen
}

// drawReportPanel draws the impact report in a centered box. The box
// overlaps the scene, so its cells are marked dirty for the canvas diff.
func (c *Client) drawReportPanel(termWidth, termHeight int, rec *report.DisplayRecord) {
	cw := c.chunkWriter

	lines := []string{
		fmt.Sprintf("%sIMPACT ASSESSMENT: %s%s", severityColor(rec.Severity), rec.EffectLabel, draw.ColorReset),
		"",
		fmt.Sprintf("Energy released   %s", rec.Energy),
	}
	if rec.Airburst {
		lines = append(lines,
			fmt.Sprintf("Airburst altitude %s", rec.BreakupAltitude))
	} else {
		lines = append(lines,
			fmt.Sprintf("Crater diameter   %s", rec.CraterDiameter),
			fmt.Sprintf("Crater depth      %s", rec.CraterDepth))
	}
	lines = append(lines,
		fmt.Sprintf("Thermal radius    %s", rec.ThermalRadius),
		fmt.Sprintf("Blast radius      %s", rec.BlastRadius),
		"",
		rec.EffectDetail,
		"",
		"Press ESC to close")

	const boxWidth = 56
	boxHeight := len(lines) + 2
	startCol := (termWidth - boxWidth) / 2
	startRow := (termHeight - boxHeight) / 2
	if startCol < 1 {
		startCol = 1
	}
	if startRow < 1 {
		startRow = 1
	}

	bar := strings.Repeat("─", boxWidth-2)
	cw.WriteAt(startCol, startRow, "┌"+bar+"┐")
	c.canvas.MarkTextDirty(startCol, startRow, boxWidth)
	for i, line := range lines {
		pad := boxWidth - 4 - visibleLen(line)
		if pad < 0 {
			pad = 0
		}
		cw.WriteAt(startCol, startRow+1+i, "│ "+line+strings.Repeat(" ", pad)+" │")
		c.canvas.MarkTextDirty(startCol, startRow+1+i, boxWidth)
	}
	cw.WriteAt(startCol, startRow+1+len(lines), "└"+bar+"┘")
	c.canvas.MarkTextDirty(startCol, startRow+1+len(lines), boxWidth)
}

// visibleLen counts printable characters, skipping ANSI escape sequences.
func visibleLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			n++
		}
	}
	return n
}

// drawShutdownScreen draws the server shutdown notice.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-1, title)

	msg := fmt.Sprintf("Disconnecting in %d seconds...", int(c.state.shutdownTimer)+1)
	cw.WriteAt(centerX-len(msg)/2, centerY+1, msg)
}
