package plot

import "fmt"

// Physical constants (SI).
const (
	planck       = 6.62607015e-34 // J s
	speedOfLight = 299792458.0    // m / s
)

// voltsPerMeterPerKVCM rescales stored field strengths (V/m) to the kV/cm
// display axis. The x axis is always kV/cm, whatever the y unit.
const voltsPerMeterPerKVCM = 1e5

// FieldAxisLabel is the x-axis caption of every panel.
const FieldAxisLabel = "field strength (kV/cm)"

// Unit is one display unit of the closed enumeration. Energy panels accept
// J, MHz, GHz and invcm; dipole panels additionally accept Debye.
type Unit int

const (
	UnitJoule Unit = iota
	UnitMHz
	UnitGHz
	UnitInvCm
	UnitDebye // dipole only
)

// String returns the configuration token of the unit.
func (u Unit) String() string {
	switch u {
	case UnitJoule:
		return "J"
	case UnitMHz:
		return "MHz"
	case UnitGHz:
		return "GHz"
	case UnitInvCm:
		return "invcm"
	case UnitDebye:
		return "Debye"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// ParseEnergyUnit maps a configuration token to an energy display unit.
func ParseEnergyUnit(s string) (Unit, error) {
	switch s {
	case "J":
		return UnitJoule, nil
	case "MHz":
		return UnitMHz, nil
	case "GHz":
		return UnitGHz, nil
	case "invcm":
		return UnitInvCm, nil
	default:
		return 0, fmt.Errorf("energy unit %q: %w", s, ErrUnknownUnit)
	}
}

// ParseDipoleUnit maps a configuration token to a dipole display unit.
// "D" is accepted as shorthand for Debye.
func ParseDipoleUnit(s string) (Unit, error) {
	switch s {
	case "J":
		return UnitJoule, nil
	case "MHz":
		return UnitMHz, nil
	case "GHz":
		return UnitGHz, nil
	case "invcm":
		return UnitInvCm, nil
	case "Debye", "D":
		return UnitDebye, nil
	default:
		return 0, fmt.Errorf("dipole unit %q: %w", s, ErrUnknownUnit)
	}
}

type unitConv struct {
	factor float64
	label  string
}

// energyConv converts Joule energies into the display unit. Frequency
// units divide by h, wavenumbers by hc.
var energyConv = map[Unit]unitConv{
	UnitJoule: {1, "energy (J)"},
	UnitMHz:   {1 / (planck * 1e6), "energy / h (MHz)"},
	UnitGHz:   {1 / (planck * 1e9), "energy / h (GHz)"},
	UnitInvCm: {1 / (planck * speedOfLight * 100), "energy / hc (cm⁻¹)"},
}

// dipoleConv converts effective dipole moments, already rescaled to the
// per-kV/cm basis (J/(kV/cm)), into the display unit. The rounded wavenumber
// and Debye constants are the values the calculation engine has always used;
// keep them bit-identical.
var dipoleConv = map[Unit]unitConv{
	UnitJoule: {1, "effective dipole (J/(kV/cm))"},
	UnitMHz:   {1 / (planck * 1e6), "effective dipole (MHz/(kV/cm))"},
	UnitGHz:   {1 / (planck * 1e9), "effective dipole (GHz/(kV/cm))"},
	UnitInvCm: {1 / (planck * 29979e6), "effective dipole (cm⁻¹/(kV/cm))"},
	UnitDebye: {2.998e24, "effective dipole (D)"},
}

// ConvertEnergy rescales Joule energies into the display unit and returns
// the converted values with the matching axis label.
func ConvertEnergy(values []float64, u Unit) ([]float64, string, error) {
	c, ok := energyConv[u]
	if !ok {
		return nil, "", fmt.Errorf("energy unit %s: %w", u, ErrUnknownUnit)
	}
	return scaled(values, c.factor), c.label, nil
}

// ConvertDipole rescales effective dipole moments (per-kV/cm basis) into the
// display unit and returns the converted values with the matching axis label.
func ConvertDipole(values []float64, u Unit) ([]float64, string, error) {
	c, ok := dipoleConv[u]
	if !ok {
		return nil, "", fmt.Errorf("dipole unit %s: %w", u, ErrUnknownUnit)
	}
	return scaled(values, c.factor), c.label, nil
}

// EnergyLabel returns the y-axis caption of an energy display unit.
func EnergyLabel(u Unit) (string, error) {
	c, ok := energyConv[u]
	if !ok {
		return "", fmt.Errorf("energy unit %s: %w", u, ErrUnknownUnit)
	}
	return c.label, nil
}

// DipoleLabel returns the y-axis caption of a dipole display unit.
func DipoleLabel(u Unit) (string, error) {
	c, ok := dipoleConv[u]
	if !ok {
		return "", fmt.Errorf("dipole unit %s: %w", u, ErrUnknownUnit)
	}
	return c.label, nil
}

// FieldKVCM rescales a stored field grid (V/m) to the kV/cm display axis.
func FieldKVCM(fields []float64) []float64 {
	return scaled(fields, 1/voltsPerMeterPerKVCM)
}

func scaled(values []float64, factor float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * factor
	}
	return out
}
