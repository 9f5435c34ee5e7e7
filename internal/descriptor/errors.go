package descriptor

import "errors"

// Sentinel errors returned by Load. All are fatal configuration errors.
var (
	ErrNoInput      = errors.New("no convert list file given")
	ErrRead         = errors.New("cannot read descriptor")
	ErrParse        = errors.New("cannot parse descriptor XML")
	ErrNoRoot       = errors.New("root node not found in descriptor")
	ErrIncludeCycle = errors.New("include cycle")
)
