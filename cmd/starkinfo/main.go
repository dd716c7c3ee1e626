// starkinfo prints a summary of Stark storage files: molecule name, isomer
// masses and per-J state counts, optionally every state with its sample
// count and field coverage.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gharib85/cmistark/src/molecule"
	"github.com/gharib85/cmistark/src/plot"
)

func main() {
	var list bool
	flag.BoolVar(&list, "list", false, "list every state with sample count and field coverage")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: starkinfo [-list] <storage.jsonl> [more files...]")
		os.Exit(2)
	}
	for _, path := range flag.Args() {
		f, err := molecule.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		printSummary(f, list)
	}
}

func printSummary(f *molecule.File, list bool) {
	states := f.States()
	fmt.Printf("%s: %d states\n", f.Name(), len(states))
	for _, im := range f.Masses() {
		name := im.Name
		if name == "" {
			name = "-"
		}
		fmt.Printf("  isomer %d (%s): mass %.4f u\n", im.Num, name, im.Mass)
	}
	counts := map[int]int{}
	var js []int
	for _, st := range states {
		if _, seen := counts[st.J]; !seen {
			js = append(js, st.J)
		}
		counts[st.J]++
	}
	for _, j := range js {
		fmt.Printf("  J=%d: %d states\n", j, counts[j])
	}
	if !list {
		return
	}
	for _, st := range states {
		ec, err := f.EnergyCurve(st)
		if err != nil || ec.Len() == 0 {
			continue
		}
		kvcm := plot.FieldKVCM(ec.Fields)
		fmt.Printf("    %-12s %4d samples  %g..%g kV/cm\n", st.Name(), ec.Len(), kvcm[0], kvcm[len(kvcm)-1])
	}
}
