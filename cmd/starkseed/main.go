// starkseed writes a small synthetic Stark storage file: low-J states with
// smooth toy curves on a uniform field grid. Handy for trying starkplot and
// starkviewer without running the calculation engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gharib85/cmistark/src/molecule"
)

func main() {
	var out string
	var name string
	var jmax int
	var samples int
	var maxKVCM float64
	flag.StringVar(&out, "out", "demo.jsonl", "output storage path")
	flag.StringVar(&name, "molecule", "demomol", "molecule name for the meta line")
	flag.IntVar(&jmax, "Jmax", 2, "highest J to generate")
	flag.IntVar(&samples, "samples", 101, "samples per curve")
	flag.Float64Var(&maxKVCM, "max-field", 100, "largest field strength in kV/cm")
	flag.Parse()

	if samples < 2 || jmax < 0 {
		fmt.Fprintln(os.Stderr, "error: need at least 2 samples and Jmax >= 0")
		os.Exit(2)
	}

	w, err := molecule.Create(out, name, []molecule.IsomerMass{{Num: 0, Name: "only", Mass: 46.0053}})
	if err != nil {
		fatal(err)
	}

	fields := make([]float64, samples)
	for i := range fields {
		fields[i] = float64(i) * maxKVCM * 1e5 / float64(samples-1)
	}

	n := 0
	for j := 0; j <= jmax; j++ {
		for ka := 0; ka <= j; ka++ {
			st := molecule.State{J: j, Ka: ka, Kc: j - ka}
			for m := 0; m <= j; m++ {
				st.M = m
				if err := w.WriteCurve(st, fields, toyCurve(j, ka, m, fields), nil); err != nil {
					fatal(err)
				}
				n++
			}
		}
	}
	if err := w.Close(); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %d states to %s\n", n, out)
}

// toyCurve fabricates a second-order-looking Stark shift: a field-free
// offset growing with J and Ka, and a downward quadratic response that
// weakens for higher M. Plausible shapes, no physics claimed.
func toyCurve(j, ka, m int, fields []float64) []float64 {
	base := 1e-23*float64(j*(j+1)) + 2e-25*float64(ka)
	alpha := 2e-37 / float64(1+m*m)
	out := make([]float64, len(fields))
	for i, f := range fields {
		out[i] = base - 0.5*alpha*f*f
	}
	return out
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
