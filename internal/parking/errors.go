package parking

import "errors"

var (
	// ErrInvalidArgument is returned for a bad lot size or an out-of-range slot number.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotCreated is returned by every operation except Create on a lot that has no slots yet.
	ErrNotCreated = errors.New("parking lot not created")
)
