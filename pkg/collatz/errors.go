package collatz

import "errors"

// Query errors.
var (
	// ErrNotGenerated is returned when a query names a value whose node has
	// not been constructed yet. Construct it first, then retry.
	ErrNotGenerated = errors.New("node has not been generated")

	// ErrInvalidDomain is returned when a value lies outside the variant's
	// residue domain (zero, even values for Odd, multiples of 2 or 3 for
	// Compact).
	ErrInvalidDomain = errors.New("value outside variant domain")
)

// Construction and arithmetic errors.
var (
	// ErrOverflow is returned when a step result does not fit in 64 bits.
	ErrOverflow = errors.New("step result overflows uint64")

	// ErrDuplicateNode is returned by the node store when a value is created
	// twice. The graph treats it as a broken invariant and panics.
	ErrDuplicateNode = errors.New("node already exists")

	// ErrUnknownVariant is returned when a variant name or code is not recognized.
	ErrUnknownVariant = errors.New("unknown variant")
)
