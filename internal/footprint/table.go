// Package footprint estimates travel CO2 emissions from a fixed table of per-mode factors.
package footprint

// Mode transport mode identifier
type Mode string

// Known transport modes
const (
	Car   Mode = "car"
	Bus   Mode = "bus"
	Train Mode = "train"
	Plane Mode = "plane"
)

// defaultFactors kg CO2 per km
var defaultFactors = map[Mode]float64{
	Car:   0.12,
	Bus:   0.07,
	Train: 0.04,
	Plane: 0.25,
}

// Table read-only emission factor lookup. Safe for concurrent use.
type Table struct {
	factors map[Mode]float64
}

// NewTable returns the table of built-in emission factors
func NewTable() *Table {
	factors := make(map[Mode]float64, len(defaultFactors))
	for mode, factor := range defaultFactors {
		factors[mode] = factor
	}
	return &Table{factors: factors}
}

// Factor returns the emission factor of mode, or 0 for an unknown mode.
// Matching is case-sensitive.
func (t *Table) Factor(mode string) float64 {
	return t.factors[Mode(mode)]
}

// Known reports whether mode is in the table
func (t *Table) Known(mode string) bool {
	_, ok := t.factors[Mode(mode)]
	return ok
}

// Calculate returns distance multiplied by the factor of mode as a string with exactly two
// fractional digits. It never fails: unknown modes yield "0.00" and negative distances are
// multiplied through.
func (t *Table) Calculate(distance float64, mode string) string {
	return FormatFixed(distance*t.Factor(mode), 2)
}
