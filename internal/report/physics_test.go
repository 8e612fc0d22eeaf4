package report

import "testing"

func TestComputeSurfaceImpact(t *testing.T) {
	rec := Compute(Asteroid{
		DiameterM:   320,
		DensityKgM3: 2600,
		VelocityMS:  18000,
		AngleDeg:    45,
	})
	if rec.Airburst {
		t.Fatalf("320 m rocky body must reach the surface")
	}
	if rec.CraterDiameterM == nil || rec.CraterDepthM == nil {
		t.Fatalf("surface impact must carry crater dimensions")
	}
	if *rec.CraterDiameterM <= 0 {
		t.Fatalf("crater diameter = %v", *rec.CraterDiameterM)
	}
	if *rec.CraterDepthM >= *rec.CraterDiameterM {
		t.Fatalf("crater depth %v must be below diameter %v",
			*rec.CraterDepthM, *rec.CraterDiameterM)
	}
	if rec.BreakupAltitudeM != nil {
		t.Fatalf("surface impact must not report a breakup altitude")
	}
	if rec.EnergyJoules <= 0 {
		t.Fatalf("energy = %v", rec.EnergyJoules)
	}
}

func TestComputeAirburst(t *testing.T) {
	rec := Compute(Asteroid{
		DiameterM:   50,
		DensityKgM3: 3000,
		VelocityMS:  19000,
		AngleDeg:    45,
	})
	if !rec.Airburst {
		t.Fatalf("50 m rocky body must airburst")
	}
	if rec.CraterDiameterM != nil || rec.CraterDepthM != nil {
		t.Fatalf("airburst must not carry crater dimensions")
	}
	if rec.BreakupAltitudeM == nil || *rec.BreakupAltitudeM <= 0 {
		t.Fatalf("airburst must report a positive breakup altitude")
	}
}

func TestComputeIronPunchesThrough(t *testing.T) {
	rec := Compute(Asteroid{
		DiameterM:   50,
		DensityKgM3: 7800,
		VelocityMS:  19000,
		AngleDeg:    45,
	})
	if rec.Airburst {
		t.Fatalf("dense iron body must not airburst")
	}
}

func TestComputeCategoryThresholds(t *testing.T) {
	small := Compute(Asteroid{DiameterM: 30, DensityKgM3: 2600, VelocityMS: 15000})
	if small.EarthEffect != EarthNegligiblyDisturbed {
		t.Fatalf("small body effect = %q", small.EarthEffect)
	}
	large := Compute(Asteroid{DiameterM: 10_000, DensityKgM3: 3000, VelocityMS: 25000})
	if large.EarthEffect == EarthNegligiblyDisturbed {
		t.Fatalf("10 km body cannot be negligible")
	}
	// Damage radii are withheld for the destroyed category only.
	if large.EarthEffect == EarthDestroyed && large.BlastRadiusM != nil {
		t.Fatalf("destroyed outcome must not report blast radius")
	}
	if small.BlastRadiusM == nil || small.ThermalRadiusM == nil {
		t.Fatalf("survivable impact must report damage radii")
	}
}

func TestComputeEnergyGrowsWithDiameter(t *testing.T) {
	a := Compute(Asteroid{DiameterM: 100, DensityKgM3: 2600, VelocityMS: 18000})
	b := Compute(Asteroid{DiameterM: 200, DensityKgM3: 2600, VelocityMS: 18000})
	if b.EnergyJoules <= a.EnergyJoules {
		t.Fatalf("energy must grow with diameter: %v vs %v",
			a.EnergyJoules, b.EnergyJoules)
	}
}
