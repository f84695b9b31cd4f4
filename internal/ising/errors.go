package ising

import "github.com/pkg/errors"

var (
	// ErrInvalidSize indicates a lattice side length that is not positive.
	ErrInvalidSize = errors.New("ising: lattice size must be positive")
	// ErrInvalidSpin indicates a cell value other than -1 or +1.
	ErrInvalidSpin = errors.New("ising: spin must be -1 or +1")
	// ErrInvalidCoordination indicates a non-positive coordination number.
	ErrInvalidCoordination = errors.New("ising: coordination number must be positive")
	// ErrNilRNG indicates a random initialization was requested without a source.
	ErrNilRNG = errors.New("ising: random source is required")
	// ErrNumericDomain indicates beta*deltaE left the range exp can represent;
	// the acceptance probability was clamped to 0.
	ErrNumericDomain = errors.New("ising: acceptance exponent out of range")
)
