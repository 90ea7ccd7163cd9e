package resolvers

import "errors"

// The enumerable reasons a single address is skipped. None of them
// ever fails a whole batch.
var (
	ErrBadIP         = errors.New("cannot parse ip address")
	ErrNoCoordinates = errors.New("record has no usable coordinates")
	ErrNotSuccessful = errors.New("service has not resolved this address")
)
