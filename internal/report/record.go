// Package report converts raw impact physics into categorized, human-readable
// outcome records for the analysis HUD.
package report

// EarthEffect is the categorical outcome of an unmitigated impact.
type EarthEffect string

const (
	EarthDestroyed           EarthEffect = "destroyed"
	EarthStronglyDisturbed   EarthEffect = "strongly_disturbed"
	EarthNegligiblyDisturbed EarthEffect = "negligible_disturbed"
)

// Severity is the display tier attached to an earth effect.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// PhysicsRecord holds the raw physical quantities of an unmitigated impact.
// Nullable fields are nil when not applicable (e.g. no crater on an airburst).
type PhysicsRecord struct {
	EnergyJoules     float64     `json:"energyJoules"`
	Airburst         bool        `json:"airburst"`
	BreakupAltitudeM *float64    `json:"breakupAltitudeM,omitempty"`
	CraterDiameterM  *float64    `json:"craterDiameterM,omitempty"`
	CraterDepthM     *float64    `json:"craterDepthM,omitempty"`
	ThermalRadiusM   *float64    `json:"thermalRadiusM,omitempty"`
	BlastRadiusM     *float64    `json:"blastRadiusM,omitempty"`
	EarthEffect      EarthEffect `json:"earthEffect"`
}

// DisplayRecord is the formatted counterpart of a PhysicsRecord.
// Every field is recomputed from the input record; it has no lifecycle of
// its own.
type DisplayRecord struct {
	Energy          string   `json:"energy"`
	Airburst        bool     `json:"airburst"`
	BreakupAltitude string   `json:"breakupAltitude"`
	CraterDiameter  string   `json:"craterDiameter"`
	CraterDepth     string   `json:"craterDepth"`
	ThermalRadius   string   `json:"thermalRadius"`
	BlastRadius     string   `json:"blastRadius"`
	Severity        Severity `json:"severity"`
	EffectLabel     string   `json:"effectLabel"`
	EffectDetail    string   `json:"effectDetail"`
}

// BuildDisplay derives the formatted display record from raw physics output.
func BuildDisplay(rec PhysicsRecord) DisplayRecord {
	severity, label, detail := ClassifyEarthEffect(rec.EarthEffect)
	return DisplayRecord{
		Energy:          FormatEnergy(rec.EnergyJoules),
		Airburst:        rec.Airburst,
		BreakupAltitude: FormatOptionalDistance(rec.BreakupAltitudeM),
		CraterDiameter:  FormatOptionalDistance(rec.CraterDiameterM),
		CraterDepth:     FormatOptionalDistance(rec.CraterDepthM),
		ThermalRadius:   FormatOptionalDistance(rec.ThermalRadiusM),
		BlastRadius:     FormatOptionalDistance(rec.BlastRadiusM),
		Severity:        severity,
		EffectLabel:     label,
		EffectDetail:    detail,
	}
}
