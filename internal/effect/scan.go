package effect

import "time"

// ScanDuration is how long the analysis scan takes to reach 100%.
const ScanDuration = 3 * time.Second

// ScanState is the analysis scan's lifecycle state.
type ScanState int

const (
	ScanIdle ScanState = iota
	ScanRunning
	ScanComplete
)

// String returns the HUD label for the scan state.
func (s ScanState) String() string {
	switch s {
	case ScanIdle:
		return "idle"
	case ScanRunning:
		return "scanning"
	case ScanComplete:
		return "complete"
	}
	return "unknown"
}

// ScanStatus is the scan engine's per-tick output.
type ScanStatus struct {
	State         ScanState
	Progress      float64 // 0..1 while running, 1 once complete
	JustCompleted bool    // Fires on exactly one tick per run
}

// Scan is the analysis progress machine that gates the impact report. It
// is deliberately independent of the deflection engines: it never reads or
// mutates asteroid state.
type Scan struct {
	started   bool
	startTime time.Time
	complete  bool
	announced bool
}

// NewScan creates an idle scan.
func NewScan() *Scan {
	return &Scan{}
}

// Update advances the scan. active=false discards any run in progress.
func (s *Scan) Update(active bool, now time.Time) ScanStatus {
	if !active {
		s.reset()
		return ScanStatus{State: ScanIdle}
	}

	if s.complete {
		return ScanStatus{State: ScanComplete, Progress: 1}
	}

	if !s.started {
		s.started = true
		s.startTime = now
	}

	progress := float64(now.Sub(s.startTime)) / float64(ScanDuration)
	if progress >= 1 {
		s.complete = true
		justCompleted := !s.announced
		s.announced = true
		return ScanStatus{State: ScanComplete, Progress: 1, JustCompleted: justCompleted}
	}

	return ScanStatus{State: ScanRunning, Progress: progress}
}

// Close dismisses the report and returns the scan to idle.
func (s *Scan) Close() {
	s.reset()
}

func (s *Scan) reset() {
	*s = Scan{}
}
