// Stark curve plotter.
//
// Reads one or more Stark storage files (JSONL) and renders the energy
// curves of the selected rotational states, optionally with the
// effective-dipole panel, into a single PNG figure.
//
// State selection is range-based (-Jmin/-Jmax/-Mmin/-Mmax/-Kamax, -isomer,
// -nss-forbidden) or explicit (-states "1010,2"); an explicit list
// overrides the range bounds. Display units are chosen per panel with
// -energy-unit and -dipole-unit. Defaults come from an optional
// starkplot.yaml and STARKPLOT_* environment variables; flags win. Several
// storage files share one figure and one color cycle, with legend labels
// prefixed by the file name.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/gharib85/cmistark/src/config"
	"github.com/gharib85/cmistark/src/figure"
	"github.com/gharib85/cmistark/src/molecule"
	"github.com/gharib85/cmistark/src/plot"
)

func main() {
	cfg := config.Load()

	flag.IntVar(&cfg.Jmin, "Jmin", cfg.Jmin, "lowest J to plot")
	flag.IntVar(&cfg.Jmax, "Jmax", cfg.Jmax, "highest J to plot")
	flag.IntVar(&cfg.Mmin, "Mmin", cfg.Mmin, "lowest M to plot")
	flag.IntVar(&cfg.Mmax, "Mmax", cfg.Mmax, "highest M to plot (-1 follows Jmax)")
	flag.IntVar(&cfg.Kamax, "Kamax", cfg.Kamax, "highest Ka to plot (-1 follows Jmax)")
	flag.StringVar(&cfg.Isomer, "isomer", cfg.Isomer, "comma-separated isomer indices")
	flag.StringVar(&cfg.States, "states", cfg.States, "explicit state tokens JKaKc[M], e.g. \"1010,2\"; overrides the range bounds")
	flag.StringVar(&cfg.EnergyUnit, "energy-unit", cfg.EnergyUnit, "energy display unit (J|MHz|GHz|invcm)")
	flag.StringVar(&cfg.DipoleUnit, "dipole-unit", cfg.DipoleUnit, "dipole display unit (J|MHz|GHz|invcm|Debye)")
	flag.BoolVar(&cfg.Dipole, "dipole", cfg.Dipole, "also draw the effective-dipole panel")
	flag.StringVar(&cfg.NSSForbidden, "nss-forbidden", cfg.NSSForbidden, "drop states forbidden by nuclear spin statistics (Ka|Kb|Kc)")
	flag.BoolVar(&cfg.Legend, "legend", cfg.Legend, "attach a legend to each panel")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "per-state diagnostics")
	flag.StringVar(&cfg.Out, "out", cfg.Out, "output PNG path (default: first input's stem + .png)")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "figure width in pixels")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: starkplot [flags] <storage.jsonl> [more files...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	config.InitLogging(cfg.Verbose)

	opt, err := cfg.PlotOptions()
	if err != nil {
		fatal(err)
	}

	stores := make([]plot.Store, 0, len(files))
	names := make([]string, 0, len(files))
	for _, path := range files {
		f, err := molecule.Open(path)
		if err != nil {
			fatal(err)
		}
		stores = append(stores, f)
		names = append(names, filepath.Base(path))
	}

	var buf bytes.Buffer
	fig := figure.New(stores[0].Name(), cfg.Width, &buf)
	fig.SetFooter(strings.Join(names, ", "))
	if err := plot.Render(stores, opt, fig); err != nil {
		fatal(err)
	}

	outPath := cfg.Out
	if outPath == "" {
		base := filepath.Base(files[0])
		outPath = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		fatal(err)
	}
	color.Green("wrote %s", outPath)
}

func fatal(err error) {
	color.Red("error: %v", err)
	os.Exit(1)
}
