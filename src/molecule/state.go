package molecule

import "fmt"

// State labels one rotational quantum state in asymmetric-top notation.
// J, Ka, Kc are the rotational quantum numbers, M the projection of J onto
// the field axis and Isomer the index of the structural variant the state
// belongs to. For symmetric tops the single K is stored in the natural
// choice of Ka or Kc, which is why those two may be negative while J and M
// are not. States are plain value objects: comparable, usable as map keys,
// never mutated after creation.
type State struct {
	J      int `json:"j"`
	Ka     int `json:"ka"`
	Kc     int `json:"kc"`
	M      int `json:"m"`
	Isomer int `json:"isomer"`
}

// Validate reports whether the quantum numbers form a representable state:
// J and Isomer non-negative and 0 <= M <= J.
func (s State) Validate() error {
	if s.J < 0 {
		return fmt.Errorf("J=%d: %w", s.J, ErrInvalidState)
	}
	if s.M < 0 || s.M > s.J {
		return fmt.Errorf("M=%d out of 0..J=%d: %w", s.M, s.J, ErrInvalidState)
	}
	if s.Isomer < 0 {
		return fmt.Errorf("isomer=%d: %w", s.Isomer, ErrInvalidState)
	}
	return nil
}

// Name returns the canonical space-separated label "J Ka Kc M isomer" used
// in legends and diagnostics.
func (s State) Name() string {
	return fmt.Sprintf("%d %d %d %d %d", s.J, s.Ka, s.Kc, s.M, s.Isomer)
}

// Weight returns the nuclear-spin statistical weight of the state under the
// given exclusion rule: 0 for states forbidden by nuclear-spin statistics,
// 1 otherwise. Recognized rules are "Ka" (odd Ka forbidden), "Kb" (odd
// Ka+Kc forbidden) and "Kc" (odd Kc forbidden); any other value, including
// the empty string, forbids nothing.
func (s State) Weight(forbidden string) int {
	switch forbidden {
	case "Ka":
		if s.Ka%2 != 0 {
			return 0
		}
	case "Kb":
		if (s.Ka+s.Kc)%2 != 0 {
			return 0
		}
	case "Kc":
		if s.Kc%2 != 0 {
			return 0
		}
	}
	return 1
}

// less orders states by (J, Ka, Kc, M, Isomer); used for the stable
// enumeration order of File.States.
func (s State) less(o State) bool {
	if s.J != o.J {
		return s.J < o.J
	}
	if s.Ka != o.Ka {
		return s.Ka < o.Ka
	}
	if s.Kc != o.Kc {
		return s.Kc < o.Kc
	}
	if s.M != o.M {
		return s.M < o.M
	}
	return s.Isomer < o.Isomer
}
