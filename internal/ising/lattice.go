// Package ising implements the Metropolis single-spin-flip dynamics of a
// square Ising lattice with periodic boundaries: lattice storage, local and
// global observables, and the sequential full-lattice sweep.
package ising

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"ising-mc/internal/core"
	pkgcore "ising-mc/pkg/core"
)

const (
	// Up is the +1 spin state.
	Up int8 = 1
	// Down is the -1 spin state.
	Down int8 = -1
)

// InitMode selects how a fresh lattice is populated.
type InitMode int

const (
	// InitRandom draws every spin independently and uniformly from {-1, +1}.
	InitRandom InitMode = iota
	// InitUniform sets every spin to +1.
	InitUniform
	// InitUniformDown sets every spin to -1.
	InitUniformDown
)

func (m InitMode) String() string {
	switch m {
	case InitRandom:
		return "random"
	case InitUniform:
		return "uniform"
	case InitUniformDown:
		return "uniform-down"
	default:
		return fmt.Sprintf("InitMode(%d)", int(m))
	}
}

// ParseInitMode accepts the String form of a mode, plus "hot" and "cold" as
// aliases for random and uniform.
func ParseInitMode(s string) (InitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "hot", "":
		return InitRandom, nil
	case "uniform", "cold", "up":
		return InitUniform, nil
	case "uniform-down", "down":
		return InitUniformDown, nil
	}
	return 0, errors.Errorf("ising: unknown init mode %q", s)
}

// MarshalText encodes the mode by its String form.
func (m InitMode) MarshalText() ([]byte, error) {
	switch m {
	case InitRandom, InitUniform, InitUniformDown:
		return []byte(m.String()), nil
	}
	return nil, errors.Errorf("ising: unknown init mode %d", int(m))
}

// UnmarshalText accepts anything ParseInitMode does.
func (m *InitMode) UnmarshalText(text []byte) error {
	mode, err := ParseInitMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Lattice is a size×size grid of spins. Cells are only ever -1 or +1.
type Lattice struct {
	size int
	grid *core.Grid[int8]
}

// NewLattice allocates a lattice and populates it according to mode. rng may
// be nil unless mode is InitRandom.
func NewLattice(size int, mode InitMode, rng *pkgcore.RNG) (*Lattice, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "size %d", size)
	}
	l := &Lattice{size: size, grid: core.NewGrid[int8](size, size)}
	switch mode {
	case InitRandom:
		if rng == nil {
			return nil, ErrNilRNG
		}
		pkgcore.FillSpins(rng.Source(), l.grid.Cells())
	case InitUniform:
		l.grid.Fill(Up)
	case InitUniformDown:
		l.grid.Fill(Down)
	default:
		return nil, errors.Errorf("ising: unknown init mode %d", int(mode))
	}
	return l, nil
}

// FromSpins builds a lattice from row-major spins. The slice is copied.
func FromSpins(size int, spins []int8) (*Lattice, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "size %d", size)
	}
	if len(spins) != size*size {
		return nil, errors.Errorf("ising: got %d spins for a %dx%d lattice", len(spins), size, size)
	}
	l := &Lattice{size: size, grid: core.NewGrid[int8](size, size)}
	for i, s := range spins {
		if s != Up && s != Down {
			return nil, errors.Wrapf(ErrInvalidSpin, "cell %d holds %d", i, s)
		}
	}
	copy(l.grid.Cells(), spins)
	return l, nil
}

// Size returns the side length.
func (l *Lattice) Size() int { return l.size }

// At returns the spin at (row, col).
func (l *Lattice) At(row, col int) int8 { return l.grid.At(col, row) }

// Set overwrites the spin at (row, col).
func (l *Lattice) Set(row, col int, s int8) error {
	if s != Up && s != Down {
		return errors.Wrapf(ErrInvalidSpin, "(%d,%d) <- %d", row, col, s)
	}
	l.grid.Set(col, row, s)
	return nil
}

// Spins exposes the row-major backing slice. Callers must keep values in {-1, +1}.
func (l *Lattice) Spins() []int8 { return l.grid.Cells() }

// Clone returns an independent copy.
func (l *Lattice) Clone() *Lattice {
	c := &Lattice{size: l.size, grid: core.NewGrid[int8](l.size, l.size)}
	copy(c.grid.Cells(), l.grid.Cells())
	return c
}
