package molecule

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SchemaVersion is the storage schema this package reads and writes.
// Bump on breaking changes to the envelope layout or field names.
const SchemaVersion = 1

// Meta is the storage file header, written as the first JSONL line. It
// carries the molecule name (the original storage kept it as the file
// title) and the per-isomer mass table.
type Meta struct {
	Molecule      string       `json:"molecule,omitempty"`
	SchemaVersion int          `json:"schema_version"`
	CreatedUTC    string       `json:"created_utc,omitempty"`
	IsomerMasses  []IsomerMass `json:"isomer_masses,omitempty"`
}

// IsomerMass names one isomer and its mass in unified atomic mass units.
type IsomerMass struct {
	Num  int     `json:"num"`
	Name string  `json:"name,omitempty"`
	Mass float64 `json:"mass"`
}

// CurveRecord is one persisted Stark curve: the field grid, the eigenenergy
// at every grid point and, optionally, the effective dipole moment. The
// array names follow the original storage layout (dcfield, dcstarkenergy).
type CurveRecord struct {
	State         State     `json:"state"`
	DCField       []float64 `json:"dcfield"`
	DCStarkEnergy []float64 `json:"dcstarkenergy"`
	MuEff         []float64 `json:"mueff,omitempty"`
}

// Envelope is the typed root object of one JSONL storage line. Exactly one
// member is populated per line.
type Envelope struct {
	Meta  *Meta        `json:"meta,omitempty"`
	Curve *CurveRecord `json:"curve,omitempty"`
}

// maxLineBytes caps a single storage line; a dense field grid of a few
// thousand samples stays well below 1 MB, so anything near the cap is junk.
const maxLineBytes = 32 * 1024 * 1024

// File is a read-only view of one Stark storage file. It satisfies the
// store contract the plot pipeline consumes: state enumeration plus energy
// and effective-dipole curve lookup.
type File struct {
	path   string
	meta   Meta
	states []State
	curves map[State]*curveData
}

type curveData struct {
	fields   []float64
	energies []float64
	// mueff is kept only while every merged record for the state carried
	// one; otherwise the dipole curve is derived from the energies.
	mueff []float64
}

// Open reads a whole storage file into memory. The first bad line aborts:
// a storage file is either consistent or unusable.
func Open(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	defer fh.Close()

	f := &File{path: path, curves: make(map[State]*curveData)}
	sawMeta := false

	scanner := bufio.NewScanner(fh)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(line, &env); err != nil {
			return nil, fmt.Errorf("%s line %d: %v: %w", path, lineNo, err, ErrBadRecord)
		}
		switch {
		case env.Meta != nil:
			if sawMeta {
				return nil, fmt.Errorf("%s line %d: duplicate meta: %w", path, lineNo, ErrBadRecord)
			}
			if env.Meta.SchemaVersion != SchemaVersion {
				return nil, fmt.Errorf("%s line %d: schema version %d (want %d): %w",
					path, lineNo, env.Meta.SchemaVersion, SchemaVersion, ErrBadRecord)
			}
			f.meta = *env.Meta
			sawMeta = true
		case env.Curve != nil:
			if err := f.addCurve(env.Curve); err != nil {
				return nil, fmt.Errorf("%s line %d: %w", path, lineNo, err)
			}
		default:
			return nil, fmt.Errorf("%s line %d: empty envelope: %w", path, lineNo, ErrBadRecord)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read storage %s: %w", path, err)
	}

	f.states = make([]State, 0, len(f.curves))
	for st := range f.curves {
		f.states = append(f.states, st)
	}
	sort.Slice(f.states, func(i, j int) bool { return f.states[i].less(f.states[j]) })
	return f, nil
}

// addCurve validates one record and merges it into the in-memory view.
// Later records for the same state win at equal field strengths, mirroring
// the incremental merge the calculation engine performs between flushes.
func (f *File) addCurve(rec *CurveRecord) error {
	if err := rec.State.Validate(); err != nil {
		return fmt.Errorf("state %s: %w", rec.State.Name(), err)
	}
	if err := validateArrays(rec.DCField, rec.DCStarkEnergy, rec.MuEff); err != nil {
		return fmt.Errorf("state %s: %w", rec.State.Name(), err)
	}
	cd, ok := f.curves[rec.State]
	if !ok {
		f.curves[rec.State] = &curveData{
			fields:   rec.DCField,
			energies: rec.DCStarkEnergy,
			mueff:    rec.MuEff,
		}
		return nil
	}
	var mueff []float64
	if cd.mueff != nil && rec.MuEff != nil {
		_, mueff = mergeColumns(cd.fields, cd.mueff, rec.DCField, rec.MuEff)
	}
	cd.fields, cd.energies = mergeColumns(cd.fields, cd.energies, rec.DCField, rec.DCStarkEnergy)
	cd.mueff = mueff
	return nil
}

func validateArrays(fields, energies, mueff []float64) error {
	if len(fields) != len(energies) {
		return fmt.Errorf("%d fields vs %d energies: %w", len(fields), len(energies), ErrBadRecord)
	}
	if mueff != nil && len(mueff) != len(fields) {
		return fmt.Errorf("%d fields vs %d mueff values: %w", len(fields), len(mueff), ErrBadRecord)
	}
	for i := 1; i < len(fields); i++ {
		if fields[i] <= fields[i-1] {
			return fmt.Errorf("field grid not ascending at index %d: %w", i, ErrBadRecord)
		}
	}
	return nil
}

// Name returns the molecule name from the header, falling back to the file
// stem when the file has no meta line.
func (f *File) Name() string {
	if f.meta.Molecule != "" {
		return f.meta.Molecule
	}
	base := filepath.Base(f.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Masses returns the per-isomer mass table from the header, possibly empty.
func (f *File) Masses() []IsomerMass { return f.meta.IsomerMasses }

// States lists every state the file holds a Stark curve for, ordered by
// (J, Ka, Kc, M, isomer). The order is stable across loads of equivalent
// files regardless of line order.
func (f *File) States() []State { return f.states }

// EnergyCurve returns the Stark energy curve of the given state.
func (f *File) EnergyCurve(s State) (SampleCurve, error) {
	cd, ok := f.curves[s]
	if !ok {
		return SampleCurve{}, fmt.Errorf("state %s: %w", s.Name(), ErrStateNotFound)
	}
	return SampleCurve{Fields: cd.fields, Values: cd.energies}, nil
}

// DipoleCurve returns the effective-dipole-moment curve of the given state:
// the persisted values when the engine stored them, otherwise the finite
// differences of the energy curve.
func (f *File) DipoleCurve(s State) (SampleCurve, error) {
	cd, ok := f.curves[s]
	if !ok {
		return SampleCurve{}, fmt.Errorf("state %s: %w", s.Name(), ErrStateNotFound)
	}
	if cd.mueff != nil {
		return SampleCurve{Fields: cd.fields, Values: cd.mueff}, nil
	}
	return SampleCurve{Fields: cd.fields, Values: effectiveDipole(cd.fields, cd.energies)}, nil
}

// Writer appends Stark curves to a storage file. It is the persistence
// half of the calculation engine's contract; the render pipeline never
// writes.
type Writer struct {
	fh *os.File
	bw *bufio.Writer
}

// Create truncates or creates a storage file and writes the meta line.
func Create(path, moleculeName string, masses []IsomerMass) (*Writer, error) {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create storage: %w", err)
	}
	w := &Writer{fh: fh, bw: bufio.NewWriter(fh)}
	meta := Meta{
		Molecule:      moleculeName,
		SchemaVersion: SchemaVersion,
		CreatedUTC:    time.Now().UTC().Format(time.RFC3339Nano),
		IsomerMasses:  masses,
	}
	if err := w.writeLine(Envelope{Meta: &meta}); err != nil {
		fh.Close()
		return nil, err
	}
	return w, nil
}

// Append opens a storage file for appending further curve records, e.g.
// after an engine run over an extended field grid. No meta line is written;
// duplicate states merge at read time.
func Append(path string) (*Writer, error) {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("append storage: %w", err)
	}
	return &Writer{fh: fh, bw: bufio.NewWriter(fh)}, nil
}

// WriteCurve appends one curve record. mueff may be nil; readers derive the
// dipole curve in that case.
func (w *Writer) WriteCurve(s State, fields, energies, mueff []float64) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := validateArrays(fields, energies, mueff); err != nil {
		return fmt.Errorf("state %s: %w", s.Name(), err)
	}
	rec := CurveRecord{State: s, DCField: fields, DCStarkEnergy: energies, MuEff: mueff}
	return w.writeLine(Envelope{Curve: &rec})
}

func (w *Writer) writeLine(env Envelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode storage line: %w", err)
	}
	if _, err := w.bw.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write storage line: %w", err)
	}
	return nil
}

// Close flushes buffered lines and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		w.fh.Close()
		return fmt.Errorf("flush storage: %w", err)
	}
	return w.fh.Close()
}
