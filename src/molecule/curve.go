package molecule

import "sort"

// SampleCurve is one sampled quantity as a function of the applied electric
// field strength: parallel slices, ascending by field. Fields are stored in
// V/m; energy values in J, effective-dipole values in C·m. Curves handed out
// by a File are views into its data and must not be modified by callers.
type SampleCurve struct {
	Fields []float64
	Values []float64
}

// Len returns the number of samples in the curve.
func (c SampleCurve) Len() int { return len(c.Fields) }

// effectiveDipole derives the effective-dipole-moment curve from a Stark
// energy curve as mu_eff = -dE/dF, approximated by central differences for
// interior points and a forward difference for the last one. The first
// sample, at the weakest field, is defined as zero.
func effectiveDipole(fields, energies []float64) []float64 {
	n := len(fields)
	mueff := make([]float64, n)
	if n < 2 {
		return mueff
	}
	for i := 1; i < n-1; i++ {
		mueff[i] = (energies[i-1] - energies[i+1]) / (fields[i+1] - fields[i-1])
	}
	mueff[n-1] = (energies[n-2] - energies[n-1]) / (fields[n-1] - fields[n-2])
	return mueff
}

// mergeColumns merges a later set of (field, value) samples into an earlier
// one: the result is the union of both, ascending by field strength, with
// the later set winning at equal field strengths. Used when a storage file
// carries several curve records for the same state (the calculation engine
// appends and flushes incrementally).
func mergeColumns(oldF, oldV, newF, newV []float64) ([]float64, []float64) {
	byField := make(map[float64]float64, len(oldF)+len(newF))
	for i, f := range oldF {
		byField[f] = oldV[i]
	}
	for i, f := range newF {
		byField[f] = newV[i]
	}
	fields := make([]float64, 0, len(byField))
	for f := range byField {
		fields = append(fields, f)
	}
	sort.Float64s(fields)
	values := make([]float64, len(fields))
	for i, f := range fields {
		values[i] = byField[f]
	}
	return fields, values
}
