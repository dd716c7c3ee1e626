package molecule

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeTestFile builds a small storage file with the given curve records.
func writeTestFile(t *testing.T, name string, curves ...CurveRecord) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	w, err := Create(path, "testmol", []IsomerMass{{Num: 0, Name: "cis", Mass: 46.0}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, c := range curves {
		if err := w.WriteCurve(c.State, c.DCField, c.DCStarkEnergy, c.MuEff); err != nil {
			t.Fatalf("write curve %s: %v", c.State.Name(), err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func TestOpenRoundTrip(t *testing.T) {
	ground := CurveRecord{
		State:         State{J: 0, Ka: 0, Kc: 0, M: 0, Isomer: 0},
		DCField:       []float64{0, 1000},
		DCStarkEnergy: []float64{0, 5e-24},
	}
	excited := CurveRecord{
		State:         State{J: 1, Ka: 0, Kc: 1, M: 1, Isomer: 0},
		DCField:       []float64{0, 1000},
		DCStarkEnergy: []float64{2e-23, 2.4e-23},
		MuEff:         []float64{0, 1e-30},
	}
	// write in reverse order to prove States() sorts
	path := writeTestFile(t, "mol.jsonl", excited, ground)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if f.Name() != "testmol" {
		t.Fatalf("molecule name: got %q", f.Name())
	}
	if len(f.Masses()) != 1 || f.Masses()[0].Mass != 46.0 {
		t.Fatalf("masses: got %+v", f.Masses())
	}
	states := f.States()
	if len(states) != 2 {
		t.Fatalf("states: got %d want 2", len(states))
	}
	if states[0] != ground.State || states[1] != excited.State {
		t.Fatalf("state order: got %v then %v", states[0].Name(), states[1].Name())
	}

	ec, err := f.EnergyCurve(ground.State)
	if err != nil {
		t.Fatalf("energy curve: %v", err)
	}
	if ec.Len() != 2 || ec.Values[1] != 5e-24 {
		t.Fatalf("energy curve content: %+v", ec)
	}

	// stored mueff is returned verbatim
	dc, err := f.DipoleCurve(excited.State)
	if err != nil {
		t.Fatalf("dipole curve: %v", err)
	}
	if dc.Len() != 2 || dc.Values[1] != 1e-30 {
		t.Fatalf("stored dipole curve content: %+v", dc)
	}

	// absent mueff is derived and stays aligned with the energy curve
	dc, err = f.DipoleCurve(ground.State)
	if err != nil {
		t.Fatalf("derived dipole curve: %v", err)
	}
	if dc.Len() != ec.Len() {
		t.Fatalf("derived dipole length %d vs energy %d", dc.Len(), ec.Len())
	}
	if dc.Values[0] != 0 {
		t.Fatalf("derived dipole first sample: got %g want 0", dc.Values[0])
	}
}

func TestOpenMergesDuplicateStates(t *testing.T) {
	st := State{J: 1, Ka: 1, Kc: 0, M: 0}
	first := CurveRecord{State: st, DCField: []float64{0, 100, 200}, DCStarkEnergy: []float64{1, 2, 3}}
	second := CurveRecord{State: st, DCField: []float64{100, 300}, DCStarkEnergy: []float64{20, 30}}
	path := writeTestFile(t, "merge.jsonl", first, second)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(f.States()) != 1 {
		t.Fatalf("states after merge: got %d want 1", len(f.States()))
	}
	ec, err := f.EnergyCurve(st)
	if err != nil {
		t.Fatalf("energy curve: %v", err)
	}
	wantF := []float64{0, 100, 200, 300}
	wantV := []float64{1, 20, 3, 30}
	if ec.Len() != len(wantF) {
		t.Fatalf("merged length: got %d want %d", ec.Len(), len(wantF))
	}
	for i := range wantF {
		if ec.Fields[i] != wantF[i] || ec.Values[i] != wantV[i] {
			t.Fatalf("merged[%d]: got (%g,%g) want (%g,%g)", i, ec.Fields[i], ec.Values[i], wantF[i], wantV[i])
		}
	}
}

func TestOpenRejectsBadFiles(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"garbage", "not json at all\n", ErrBadRecord},
		{"empty envelope", "{}\n", ErrBadRecord},
		{"schema mismatch", `{"meta":{"schema_version":99}}` + "\n", ErrBadRecord},
		{"duplicate meta", `{"meta":{"schema_version":1}}` + "\n" + `{"meta":{"schema_version":1}}` + "\n", ErrBadRecord},
		{"misaligned arrays", `{"curve":{"state":{"j":0,"ka":0,"kc":0,"m":0,"isomer":0},"dcfield":[0,1],"dcstarkenergy":[0]}}` + "\n", ErrBadRecord},
		{"misaligned mueff", `{"curve":{"state":{"j":0,"ka":0,"kc":0,"m":0,"isomer":0},"dcfield":[0,1],"dcstarkenergy":[0,1],"mueff":[0]}}` + "\n", ErrBadRecord},
		{"invalid state", `{"curve":{"state":{"j":1,"ka":0,"kc":1,"m":2,"isomer":0},"dcfield":[0],"dcstarkenergy":[0]}}` + "\n", ErrInvalidState},
		{"unsorted grid", `{"curve":{"state":{"j":0,"ka":0,"kc":0,"m":0,"isomer":0},"dcfield":[5,1],"dcstarkenergy":[0,0]}}` + "\n", ErrBadRecord},
	}
	for _, c := range cases {
		path := filepath.Join(t.TempDir(), "bad.jsonl")
		if err := os.WriteFile(path, []byte(c.body), 0o644); err != nil {
			t.Fatalf("%s: write: %v", c.name, err)
		}
		_, err := Open(path)
		if err == nil {
			t.Fatalf("%s: expected Open to fail", c.name)
		}
		if !errors.Is(err, c.want) {
			t.Fatalf("%s: error %v does not match %v", c.name, err, c.want)
		}
	}
}

func TestCurveLookupUnknownState(t *testing.T) {
	path := writeTestFile(t, "one.jsonl", CurveRecord{
		State: State{}, DCField: []float64{0}, DCStarkEnergy: []float64{0},
	})
	f, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, err = f.EnergyCurve(State{J: 5, M: 5})
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("energy lookup: error %v does not match ErrStateNotFound", err)
	}
	_, err = f.DipoleCurve(State{J: 5, M: 5})
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("dipole lookup: error %v does not match ErrStateNotFound", err)
	}
}

func TestNameFallsBackToFileStem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benzonitrile.jsonl")
	w, err := Append(path) // append writes no meta line
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.WriteCurve(State{}, []float64{0}, []float64{0}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	f, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if f.Name() != "benzonitrile" {
		t.Fatalf("fallback name: got %q", f.Name())
	}
}

func TestWriterRejectsInvalidInput(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "w.jsonl"), "m", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer w.Close()
	if err := w.WriteCurve(State{J: -1}, []float64{0}, []float64{0}, nil); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("invalid state: got %v", err)
	}
	if err := w.WriteCurve(State{}, []float64{0, 1}, []float64{0}, nil); !errors.Is(err, ErrBadRecord) {
		t.Fatalf("misaligned arrays: got %v", err)
	}
	if err := w.WriteCurve(State{}, []float64{1, 0}, []float64{0, 0}, nil); !errors.Is(err, ErrBadRecord) {
		t.Fatalf("unsorted grid: got %v", err)
	}
}
