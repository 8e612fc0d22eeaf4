package report

import "math"

// Asteroid holds the physical parameters of the threat object.
type Asteroid struct {
	DiameterM   float64 `json:"diameterM"`
	DensityKgM3 float64 `json:"densityKgM3"`
	VelocityMS  float64 `json:"velocityMS"`
	AngleDeg    float64 `json:"angleDeg"` // Entry angle from horizontal
}

// Impact scaling parameters. Crater dimensions follow the pi-group scaling
// of Collins, Melosh & Marcus; the remaining radii use cube-root yield
// scaling. All of it is an approximation tuned for display, not research.
const (
	targetDensityKgM3 = 2500.0 // Crustal rock
	surfaceGravityMS2 = 9.81

	// Bodies below this diameter break up in the atmosphere instead of
	// cratering. Dense (iron-like) impactors punch through regardless.
	airburstMaxDiameterM = 120.0
	ironDensityKgM3      = 6000.0

	// Earth-effect category thresholds in megatons.
	destroyedThresholdMt = 1e6
	disturbedThresholdMt = 1e3
)

// Compute derives the full impact-physics record for an unmitigated impact
// of the given asteroid.
func Compute(a Asteroid) PhysicsRecord {
	angle := a.AngleDeg
	if angle <= 0 || angle > 90 {
		angle = 45
	}

	radius := a.DiameterM / 2
	mass := a.DensityKgM3 * (4.0 / 3.0) * math.Pi * radius * radius * radius
	energy := 0.5 * mass * a.VelocityMS * a.VelocityMS
	megatons := energy / JoulesPerMegaton

	rec := PhysicsRecord{
		EnergyJoules: energy,
		EarthEffect:  categorize(megatons),
	}

	if a.DiameterM < airburstMaxDiameterM && a.DensityKgM3 < ironDensityKgM3 {
		rec.Airburst = true
		alt := breakupAltitudeM(a.DiameterM)
		rec.BreakupAltitudeM = &alt
	} else {
		diameter := craterDiameterM(a, angle)
		depth := diameter / 3
		rec.CraterDiameterM = &diameter
		rec.CraterDepthM = &depth
	}

	// Damage radii are meaningless once the planet itself is gone.
	if rec.EarthEffect != EarthDestroyed {
		thermal := thermalRadiusM(megatons)
		blast := blastRadiusM(megatons)
		rec.ThermalRadiusM = &thermal
		rec.BlastRadiusM = &blast
	}

	return rec
}

func categorize(megatons float64) EarthEffect {
	switch {
	case megatons >= destroyedThresholdMt:
		return EarthDestroyed
	case megatons >= disturbedThresholdMt:
		return EarthStronglyDisturbed
	default:
		return EarthNegligiblyDisturbed
	}
}

// breakupAltitudeM estimates where a weak body disintegrates. Larger bodies
// penetrate deeper before the ram pressure shreds them.
func breakupAltitudeM(diameterM float64) float64 {
	alt := 43000 - 7600*math.Log(diameterM)
	if alt < 1000 {
		alt = 1000
	}
	return alt
}

// craterDiameterM computes the final crater diameter in meters from
// transient-crater pi scaling, with the usual 1.25 transient-to-final
// enlargement for simple craters.
func craterDiameterM(a Asteroid, angleDeg float64) float64 {
	sinTheta := math.Sin(angleDeg * math.Pi / 180)
	transient := 1.161 *
		math.Cbrt(a.DensityKgM3/targetDensityKgM3) *
		math.Pow(a.DiameterM, 0.78) *
		math.Pow(a.VelocityMS, 0.44) *
		math.Pow(surfaceGravityMS2, -0.22) *
		math.Cbrt(sinTheta)
	return 1.25 * transient
}

// thermalRadiusM is the third-degree-burn radius by yield scaling.
func thermalRadiusM(megatons float64) float64 {
	return 1900 * math.Pow(megatons, 0.41)
}

// blastRadiusM is the 5 psi overpressure radius by cube-root yield scaling.
func blastRadiusM(megatons float64) float64 {
	return 2200 * math.Cbrt(megatons)
}
