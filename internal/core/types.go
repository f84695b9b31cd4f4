package core

import (
	"sort"

	"github.com/pkg/errors"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the contract the interactive viewer drives: reseed, advance one
// tick, and expose a display buffer of W*H cells.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Factory constructs a Sim using an optional flag-style configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var (
	// ErrDuplicateSim indicates a second factory was registered under a taken name.
	ErrDuplicateSim = errors.New("core: simulation already registered")
	// ErrUnknownSim indicates no factory is registered under the requested name.
	ErrUnknownSim = errors.New("core: unknown simulation")
)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) error {
	if name == "" || f == nil {
		return errors.New("core: register requires a name and a factory")
	}
	if _, ok := sims[name]; ok {
		return errors.Wrap(ErrDuplicateSim, name)
	}
	sims[name] = f
	return nil
}

// MustRegister is Register for package init functions.
func MustRegister(name string, f Factory) {
	if err := Register(name, f); err != nil {
		panic(err)
	}
}

// Build looks up name and invokes its factory with cfg.
func Build(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSim, "%q (have %v)", name, Names())
	}
	return f(cfg)
}

// Names lists the registered simulations in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
