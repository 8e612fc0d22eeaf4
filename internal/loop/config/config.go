// Package config centralizes all tunable scene parameters.
package config

import (
	"time"

	env "github.com/orbitguard/deflect/internal/config"
	"github.com/orbitguard/deflect/internal/report"
)

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Maximum render resolution. Larger terminals get a centered viewport
// with a border instead of a stretched scene.
const (
	MaxTermWidth  = 120
	MaxTermHeight = 40
)

// Scene layout in world units. The asteroid sits on the right, Earth on
// the left; the projection maps that span onto the logical viewport.
const (
	AsteroidBaseX = 35.0
	EarthX        = -2.0
	EarthRadius   = 7.0

	ProjOffsetX = 14.0
	ProjOffsetY = 38.0
	ProjScale   = 1.6
	ProjSkewX   = 0.35
	ProjSkewY   = 0.25
)

// Default threat-object parameters. Overridable via DEFLECT_* environment
// variables at startup (see cmd entrypoints).
const (
	DefaultDiameterM   = 320.0
	DefaultDensityKgM3 = 2600.0
	DefaultVelocityMS  = 18000.0
	DefaultAngleDeg    = 45.0
)

// ThreatFromEnv builds the threat-object parameters from DEFLECT_*
// environment variables, falling back to the defaults above.
func ThreatFromEnv() report.Asteroid {
	return report.Asteroid{
		DiameterM:   env.GetEnvFloat("DEFLECT_DIAMETER_M", DefaultDiameterM),
		DensityKgM3: env.GetEnvFloat("DEFLECT_DENSITY_KGM3", DefaultDensityKgM3),
		VelocityMS:  env.GetEnvFloat("DEFLECT_VELOCITY_MS", DefaultVelocityMS),
		AngleDeg:    env.GetEnvFloat("DEFLECT_ANGLE_DEG", DefaultAngleDeg),
	}
}

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)
