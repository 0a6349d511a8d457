package bimap

import "errors"

var (
	// ErrNotFound is returned by AtLeft and AtRight when the requested value has no pair.
	ErrNotFound = errors.New("bimap: not found")
	// ErrDuplicate is returned when decoding input which pairs a value more than once.
	ErrDuplicate = errors.New("bimap: duplicate value")
)
