package report

// ClassifyEarthEffect maps the categorical earth effect to a severity tier,
// a short display label and a longer descriptive line. Unknown categories
// degrade to the minor tier rather than failing.
func ClassifyEarthEffect(effect EarthEffect) (Severity, string, string) {
	switch effect {
	case EarthDestroyed:
		return SeverityCritical, "Earth Destroyed",
			"Impact energy exceeds the planetary binding threshold. Total loss of the biosphere."
	case EarthStronglyDisturbed:
		return SeverityMajor, "Severe Global Disruption",
			"Continental-scale devastation, impact winter and mass extinction likely."
	case EarthNegligiblyDisturbed:
		return SeverityMinor, "Negligible Disturbance",
			"Local damage only. No lasting effect on the planet as a whole."
	default:
		return SeverityMinor, "Unknown Effect",
			"Impact outcome could not be categorized."
	}
}
