package ising

import (
	"strconv"

	"ising-mc/internal/core"
	pkgcore "ising-mc/pkg/core"
)

const (
	betaControlStep = 0.01
	betaControlMax  = 2.0
)

// Sim runs sweeps of a single lattice at a fixed, adjustable beta. It backs
// the interactive viewer through core.Sim.
type Sim struct {
	cfg     SimConfig
	lattice *Lattice
	rng     *pkgcore.RNG
	last    SweepStats
	sweeps  int
	display []uint8
}

// NewSim validates cfg and returns a Sim seeded with cfg.Seed.
func NewSim(cfg SimConfig) (*Sim, error) {
	if cfg.Coordination <= 0 {
		return nil, ErrInvalidCoordination
	}
	s := &Sim{cfg: cfg}
	if err := s.reset(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "ising" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.cfg.Size, H: s.cfg.Size} }

// Lattice exposes the current lattice.
func (s *Sim) Lattice() *Lattice { return s.lattice }

// Beta returns the current inverse temperature.
func (s *Sim) Beta() float64 { return s.cfg.Beta }

// LastSweep reports the statistics of the most recent Step.
func (s *Sim) LastSweep() SweepStats { return s.last }

// Reset rebuilds the lattice. A zero seed falls back to the configured seed.
func (s *Sim) Reset(seed int64) {
	// NewSim already proved the configuration valid.
	_ = s.reset(seed)
}

func (s *Sim) reset(seed int64) error {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.rng = pkgcore.NewRNG(seed)
	l, err := NewLattice(s.cfg.Size, s.cfg.Init, s.rng)
	if err != nil {
		return err
	}
	s.lattice = l
	s.last = SweepStats{}
	s.sweeps = 0
	s.display = make([]uint8, s.cfg.Size*s.cfg.Size)
	s.refreshDisplay()
	return nil
}

// Step performs one Metropolis sweep.
func (s *Sim) Step() {
	s.last = Sweep(s.lattice, s.cfg.Beta, s.rng)
	s.sweeps++
	s.refreshDisplay()
}

// Cells exposes the display buffer: 1 for up spins, 0 for down spins.
func (s *Sim) Cells() []uint8 { return s.display }

func (s *Sim) refreshDisplay() {
	for i, spin := range s.lattice.Spins() {
		if spin == Up {
			s.display[i] = 1
			continue
		}
		s.display[i] = 0
	}
}

// ParameterControls exposes beta to the viewer.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{{
		Key:    "beta",
		Label:  "Beta",
		Step:   betaControlStep,
		Min:    0,
		Max:    betaControlMax,
		HasMin: true,
		HasMax: true,
	}}
}

// SetFloatParameter updates beta; other keys are rejected.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	if key != "beta" {
		return false
	}
	s.cfg.Beta = s.ParameterControls()[0].Clamp(value)
	return true
}

// Parameters reports configuration and live observables.
func (s *Sim) Parameters() core.ParameterSnapshot {
	energy := averageEnergyPerSite(s.lattice, float64(s.cfg.Coordination))
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				intParam("size", "Size", s.cfg.Size),
				int64Param("seed", "Seed", s.cfg.Seed),
				floatParam("beta", "Beta", s.cfg.Beta),
			},
		},
		{
			Name: "Observables",
			Params: []core.Parameter{
				intParam("sweeps", "Sweeps", s.sweeps),
				floatParam("magnetization", "Magnetization", Magnetization(s.lattice)),
				floatParam("energy_per_site", "Energy per site", energy),
				floatParam("acceptance", "Acceptance", s.last.AcceptanceRatio()),
			},
		},
	}}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', 4, 64)}
}

func init() {
	core.MustRegister("ising", func(cfg map[string]string) (core.Sim, error) {
		return NewSim(FromMap(cfg))
	})
}
