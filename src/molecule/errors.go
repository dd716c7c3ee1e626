package molecule

import "errors"

var (
	// ErrInvalidState indicates quantum numbers that no state can carry
	// (negative J, M outside 0..J, negative isomer index).
	ErrInvalidState = errors.New("molecule: invalid quantum state")

	// ErrStateNotFound is returned when a curve is requested for a state the
	// storage file knows nothing about.
	ErrStateNotFound = errors.New("molecule: state not present in storage")

	// ErrBadRecord indicates a storage line that cannot be used: unparseable
	// JSON, an envelope with no payload, misaligned sample arrays, or an
	// invalid state label. Storage integrity is all-or-nothing, so Open
	// aborts on the first bad record.
	ErrBadRecord = errors.New("molecule: bad storage record")
)
