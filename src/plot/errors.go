package plot

import "errors"

// Sentinel errors of the render pipeline. Callers attach context with
// fmt.Errorf("…: %w", err) and match with errors.Is.
var (
	// ErrMalformedStateSpec reports an explicit state token that does not
	// parse into quantum-number digits.
	ErrMalformedStateSpec = errors.New("plot: malformed state spec")

	// ErrUnknownUnit reports a display unit outside the closed enumeration.
	ErrUnknownUnit = errors.New("plot: unknown display unit")

	// ErrCorruptStorage reports energy and dipole curves of one state that
	// disagree in length. The storage file is inconsistent as a whole, so
	// the run aborts.
	ErrCorruptStorage = errors.New("plot: corrupt storage")
)
