package config

import (
	"errors"
	"testing"

	"github.com/gharib85/cmistark/src/plot"
)

func TestLoadDefaults(t *testing.T) {
	s := Load()
	if s.Jmin != 0 || s.Jmax != 2 || s.Mmin != 0 {
		t.Fatalf("range defaults: %+v", s)
	}
	if s.Mmax != -1 || s.Kamax != -1 {
		t.Fatalf("Mmax/Kamax should stay -1 until resolved: %+v", s)
	}
	if s.EnergyUnit != "MHz" || s.DipoleUnit != "MHz" {
		t.Fatalf("unit defaults: %+v", s)
	}
	if s.Dipole || s.Legend || s.Verbose {
		t.Fatalf("boolean defaults: %+v", s)
	}
	if s.Isomer != "0" || s.Width != 1000 {
		t.Fatalf("isomer/width defaults: %+v", s)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STARKPLOT_JMAX", "5")
	t.Setenv("STARKPLOT_ENERGY_UNIT", "GHz")
	t.Setenv("STARKPLOT_DIPOLE", "true")
	s := Load()
	if s.Jmax != 5 {
		t.Fatalf("Jmax = %d, want 5 from environment", s.Jmax)
	}
	if s.EnergyUnit != "GHz" {
		t.Fatalf("EnergyUnit = %q, want GHz from environment", s.EnergyUnit)
	}
	if !s.Dipole {
		t.Fatalf("Dipole not picked up from environment")
	}
}

func TestPlotOptionsResolvesBounds(t *testing.T) {
	s := Load()
	s.Jmax = 4
	opt, err := s.PlotOptions()
	if err != nil {
		t.Fatalf("PlotOptions: %v", err)
	}
	if opt.Selection.Mmax != 4 || opt.Selection.Kamax != 4 {
		t.Fatalf("Mmax/Kamax should follow Jmax: %+v", opt.Selection)
	}
	if opt.EnergyUnit != plot.UnitMHz {
		t.Fatalf("energy unit = %v, want MHz", opt.EnergyUnit)
	}
	if len(opt.Selection.Isomers) != 1 || opt.Selection.Isomers[0] != 0 {
		t.Fatalf("isomer set = %v, want [0]", opt.Selection.Isomers)
	}
}

func TestPlotOptionsExplicitBoundsKept(t *testing.T) {
	s := Load()
	s.Jmax = 4
	s.Mmax = 1
	s.Kamax = 2
	opt, err := s.PlotOptions()
	if err != nil {
		t.Fatalf("PlotOptions: %v", err)
	}
	if opt.Selection.Mmax != 1 || opt.Selection.Kamax != 2 {
		t.Fatalf("explicit bounds overridden: %+v", opt.Selection)
	}
}

func TestPlotOptionsBadEnergyUnitFails(t *testing.T) {
	s := Load()
	s.EnergyUnit = "eV"
	if _, err := s.PlotOptions(); !errors.Is(err, plot.ErrUnknownUnit) {
		t.Fatalf("error %v does not match ErrUnknownUnit", err)
	}
}

func TestPlotOptionsBadDipoleUnitDegrades(t *testing.T) {
	s := Load()
	s.Dipole = true
	s.DipoleUnit = "statC" // unknown: panel disabled, run continues
	opt, err := s.PlotOptions()
	if err != nil {
		t.Fatalf("bad dipole unit should not fail the run: %v", err)
	}
	if opt.Dipole {
		t.Fatalf("dipole panel should be disabled for an unknown unit")
	}
}

func TestPlotOptionsDipoleUnitAlias(t *testing.T) {
	s := Load()
	s.Dipole = true
	s.DipoleUnit = "D"
	opt, err := s.PlotOptions()
	if err != nil {
		t.Fatalf("PlotOptions: %v", err)
	}
	if !opt.Dipole || opt.DipoleUnit != plot.UnitDebye {
		t.Fatalf("D alias not honored: %+v", opt)
	}
}

func TestParseIsomers(t *testing.T) {
	got, err := ParseIsomers("0, 2,1")
	if err != nil {
		t.Fatalf("ParseIsomers: %v", err)
	}
	want := []int{0, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if _, err := ParseIsomers("1,x"); err == nil {
		t.Fatalf("bad index accepted")
	}
	if _, err := ParseIsomers("-1"); err == nil {
		t.Fatalf("negative index accepted")
	}
	got, err = ParseIsomers("")
	if err != nil || len(got) != 1 || got[0] != 0 {
		t.Fatalf("empty list: got %v, %v; want [0]", got, err)
	}
}

func TestStatesListReachesSelection(t *testing.T) {
	s := Load()
	s.States = "2,210"
	opt, err := s.PlotOptions()
	if err != nil {
		t.Fatalf("PlotOptions: %v", err)
	}
	if opt.Selection.StateList != "2,210" {
		t.Fatalf("state list lost: %+v", opt.Selection)
	}
}
