package plot

import (
	"fmt"
	"strings"

	"github.com/gharib85/cmistark/src/molecule"
)

// Selection bounds the set of states to render. A non-empty StateList
// overrides the range bounds entirely. Build Selections through the config
// package, which resolves the documented defaults (Mmax and Kamax fall back
// to Jmax).
type Selection struct {
	// StateList is the explicit comma-separated token list, e.g. "1010,202".
	StateList string

	Jmin, Jmax int
	Mmin, Mmax int
	Kamax      int

	// Isomers is the isomer index set, kept in input order.
	Isomers []int

	// NSSForbidden names the nuclear-spin exclusion rule ("Ka", "Kb" or
	// "Kc"); any other value keeps every state.
	NSSForbidden string
}

// SelectStates produces the ordered sequence of states to render. With an
// explicit token list the states are built outright, ordered token, then
// isomer, then M ascending; otherwise the known states are walked in their
// native (stable) order and filtered against the range bounds.
func SelectStates(sel Selection, known []molecule.State) ([]molecule.State, error) {
	if sel.StateList != "" {
		return expandStateList(sel.StateList, sel.Isomers)
	}
	return filterRange(sel, known), nil
}

// expandStateList parses the explicit state list. Each token is 1 to 4
// decimal digits read positionally as J, Ka, Kc, M; missing Ka or Kc read as
// zero. The M digit exists only in 4-character tokens; without one the token
// expands to every M from 0 to J. Quantum numbers above 9 are not
// representable in this format.
func expandStateList(list string, isomers []int) ([]molecule.State, error) {
	var out []molecule.State
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		j, ka, kc, m, hasM, err := parseStateToken(tok)
		if err != nil {
			return nil, err
		}
		for _, iso := range isomers {
			if hasM {
				out = append(out, molecule.State{J: j, Ka: ka, Kc: kc, M: m, Isomer: iso})
				continue
			}
			for mm := 0; mm <= j; mm++ {
				out = append(out, molecule.State{J: j, Ka: ka, Kc: kc, M: mm, Isomer: iso})
			}
		}
	}
	return out, nil
}

func parseStateToken(tok string) (j, ka, kc, m int, hasM bool, err error) {
	if len(tok) == 0 || len(tok) > 4 {
		return 0, 0, 0, 0, false, fmt.Errorf("state token %q: %w", tok, ErrMalformedStateSpec)
	}
	digits := make([]int, 0, 4)
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, 0, 0, 0, false, fmt.Errorf("state token %q: %w", tok, ErrMalformedStateSpec)
		}
		digits = append(digits, int(r-'0'))
	}
	j = digits[0]
	if len(digits) > 1 {
		ka = digits[1]
	}
	if len(digits) > 2 {
		kc = digits[2]
	}
	if len(digits) > 3 {
		m, hasM = digits[3], true
		if m > j {
			return 0, 0, 0, 0, false, fmt.Errorf("state token %q: M exceeds J: %w", tok, ErrMalformedStateSpec)
		}
	}
	return j, ka, kc, m, hasM, nil
}

// filterRange keeps the states inside the quantum-number bounds, preserving
// the enumeration order of the input. M is non-negative by construction, so
// the |M| window reduces to a plain comparison.
func filterRange(sel Selection, known []molecule.State) []molecule.State {
	var out []molecule.State
	for _, st := range known {
		if st.M < sel.Mmin || st.M > sel.Mmax {
			continue
		}
		if st.J < sel.Jmin || st.J > sel.Jmax {
			continue
		}
		if st.Ka > sel.Kamax {
			continue
		}
		if !containsInt(sel.Isomers, st.Isomer) {
			continue
		}
		if st.Weight(sel.NSSForbidden) <= 0 {
			continue
		}
		out = append(out, st)
	}
	return out
}

func containsInt(set []int, v int) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}
