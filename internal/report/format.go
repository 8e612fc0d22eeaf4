package report

import "fmt"

// JoulesPerMegaton converts between joules and megatons of TNT.
const JoulesPerMegaton = 4.184e15

// FormatDistance renders a distance in meters as a human-scaled string.
// Values under a kilometer render in meters with no decimals; everything
// above renders in kilometers with one decimal. The divisor switches from
// thousands to millions at 1,000,000 m while keeping the km label.
func FormatDistance(meters float64) string {
	switch {
	case meters < 1000:
		return fmt.Sprintf("%.0f m", meters)
	case meters < 1_000_000:
		return fmt.Sprintf("%.1f km", meters/1000)
	default:
		return fmt.Sprintf("%.1f km", meters/1_000_000)
	}
}

// FormatOptionalDistance renders a nullable distance; nil means the
// quantity does not apply (e.g. crater size on an airburst) and renders
// as "N/A".
func FormatOptionalDistance(meters *float64) string {
	if meters == nil {
		return "N/A"
	}
	return FormatDistance(*meters)
}

// FormatEnergy renders impact energy in joules as kilotons, megatons or
// gigatons of TNT with one decimal.
func FormatEnergy(joules float64) string {
	megatons := joules / JoulesPerMegaton
	switch {
	case megatons >= 1000:
		return fmt.Sprintf("%.1f Gigatons", megatons/1000)
	case megatons >= 1:
		return fmt.Sprintf("%.1f Megatons", megatons)
	default:
		return fmt.Sprintf("%.1f Kilotons", megatons*1000)
	}
}
