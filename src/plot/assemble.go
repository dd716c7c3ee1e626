package plot

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/gharib85/cmistark/src/molecule"
)

// Panel identifies one logical axes grouping of the figure.
type Panel int

const (
	PanelEnergy Panel = iota
	PanelDipole
)

// PlotSpec is one renderer-agnostic curve instruction: x in kV/cm, y in the
// configured display unit. PlotSpecs live for a single render pass.
type PlotSpec struct {
	Panel Panel
	X     []float64
	Y     []float64
	Color drawing.Color
	Label string
}

// Store is the storage collaborator contract the pipeline reads through.
// The reader in package molecule satisfies it.
type Store interface {
	Name() string
	States() []molecule.State
	EnergyCurve(molecule.State) (molecule.SampleCurve, error)
	DipoleCurve(molecule.State) (molecule.SampleCurve, error)
}

// Composer is the figure collaborator plot instructions are pushed into.
type Composer interface {
	AddCurve(panel Panel, x, y []float64, col drawing.Color, label string)
	SetAxisLabels(panel Panel, xlabel, ylabel string)
	ShowLegend(panel Panel)
	Render() error
}

// Options configures one render pass. Units must come out of the Parse
// functions; the config package validates them before a pass starts.
type Options struct {
	Selection  Selection
	EnergyUnit Unit
	DipoleUnit Unit

	// Dipole switches the effective-dipole panel on.
	Dipole bool

	// Legend attaches a legend to every panel.
	Legend bool
}

// Assemble selects states from one store and emits their plot instructions,
// drawing colors from the shared cycle. Both panels of a state share the
// color drawn when the state is first assembled. labelPrefix is prepended to
// every legend label; Render uses it to keep curves from several storage
// files apart.
func Assemble(store Store, opt Options, cyc *Cycle, labelPrefix string) ([]PlotSpec, error) {
	states, err := SelectStates(opt.Selection, store.States())
	if err != nil {
		return nil, err
	}
	specs := make([]PlotSpec, 0, 2*len(states))
	for _, st := range states {
		energy, err := store.EnergyCurve(st)
		if err != nil {
			return nil, fmt.Errorf("energy curve: %w", err)
		}
		var dipole molecule.SampleCurve
		if opt.Dipole {
			dipole, err = store.DipoleCurve(st)
			if err != nil {
				return nil, fmt.Errorf("dipole curve: %w", err)
			}
			if dipole.Len() != energy.Len() {
				return nil, fmt.Errorf("state %s: %d energy samples vs %d dipole samples: %w",
					st.Name(), energy.Len(), dipole.Len(), ErrCorruptStorage)
			}
		}

		col := cyc.Next()
		label := labelPrefix + st.Name()

		y, _, err := ConvertEnergy(energy.Values, opt.EnergyUnit)
		if err != nil {
			return nil, err
		}
		specs = append(specs, PlotSpec{
			Panel: PanelEnergy,
			X:     FieldKVCM(energy.Fields),
			Y:     y,
			Color: col,
			Label: label,
		})

		if opt.Dipole {
			// shift from the stored SI basis (J/(V/m)) to per-kV/cm
			// before the unit table applies
			perKVCM := scaled(dipole.Values, voltsPerMeterPerKVCM)
			yd, _, err := ConvertDipole(perKVCM, opt.DipoleUnit)
			if err != nil {
				return nil, err
			}
			specs = append(specs, PlotSpec{
				Panel: PanelDipole,
				X:     FieldKVCM(dipole.Fields),
				Y:     yd,
				Color: col,
				Label: label,
			})
		}

		log.Debug().Str("state", st.Name()).Int("samples", energy.Len()).Msg("assembled state")
	}
	return specs, nil
}

// Render drives a full pass: assemble plot instructions from every store in
// order, sharing one color cycle across stores, push them into the composer,
// caption the axes and render. Legend labels carry the store name as prefix
// when more than one store is given.
func Render(stores []Store, opt Options, comp Composer) error {
	energyLabel, err := EnergyLabel(opt.EnergyUnit)
	if err != nil {
		return err
	}
	var dipoleLabel string
	if opt.Dipole {
		if dipoleLabel, err = DipoleLabel(opt.DipoleUnit); err != nil {
			return err
		}
	}

	var cyc Cycle
	for _, store := range stores {
		prefix := ""
		if len(stores) > 1 {
			prefix = store.Name() + ": "
		}
		specs, err := Assemble(store, opt, &cyc, prefix)
		if err != nil {
			return fmt.Errorf("%s: %w", store.Name(), err)
		}
		log.Debug().Str("store", store.Name()).Int("curves", len(specs)).Msg("assembled store")
		for _, sp := range specs {
			comp.AddCurve(sp.Panel, sp.X, sp.Y, sp.Color, sp.Label)
		}
	}

	comp.SetAxisLabels(PanelEnergy, FieldAxisLabel, energyLabel)
	if opt.Dipole {
		comp.SetAxisLabels(PanelDipole, FieldAxisLabel, dipoleLabel)
	}
	if opt.Legend {
		comp.ShowLegend(PanelEnergy)
		if opt.Dipole {
			comp.ShowLegend(PanelDipole)
		}
	}
	return comp.Render()
}
