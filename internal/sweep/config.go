package sweep

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"ising-mc/internal/ising"
)

// Config holds every parameter of a run. Nothing is read from ambient state.
type Config struct {
	Size           int     `yaml:"size" mapstructure:"size"`
	SizeMultiplier int     `yaml:"size-multiplier" mapstructure:"size-multiplier"`
	SizeIterations int     `yaml:"size-iterations" mapstructure:"size-iterations"`
	BetaStart      float64 `yaml:"beta-start" mapstructure:"beta-start"`
	BetaStep       float64 `yaml:"beta-step" mapstructure:"beta-step"`
	BetaCount      int     `yaml:"beta-count" mapstructure:"beta-count"`
	Ninit          int     `yaml:"ninit" mapstructure:"ninit"`
	Nsweeps        int     `yaml:"nsweeps" mapstructure:"nsweeps"`
	Coordination   int     `yaml:"coordination" mapstructure:"coordination"`
	// EnergyScale multiplies each sampled order parameter before it enters
	// the heat-capacity series.
	EnergyScale float64 `yaml:"energy-scale" mapstructure:"energy-scale"`
	// Init is decoded by the loader from its text form.
	Init ising.InitMode `yaml:"init" mapstructure:"-"`
	// Seed fixes the random source; nil draws one from the clock.
	Seed *int64 `yaml:"seed,omitempty" mapstructure:"-"`
}

// DefaultConfig mirrors the reference run: a 20x20 lattice, 40 betas from
// 0.2 in steps of 0.01, 300 thermalization and 1000 sampling sweeps.
func DefaultConfig() Config {
	return Config{
		Size:           20,
		SizeMultiplier: 2,
		SizeIterations: 1,
		BetaStart:      0.2,
		BetaStep:       0.01,
		BetaCount:      40,
		Ninit:          300,
		Nsweeps:        1000,
		Coordination:   ising.DefaultCoordination,
		EnergyScale:    2,
		Init:           ising.InitRandom,
	}
}

// Validate checks every field and returns the first problem found.
func (c Config) Validate() error {
	switch {
	case c.Size <= 0:
		return invalid("size", c.Size, ising.ErrInvalidSize)
	case c.SizeMultiplier <= 0:
		return invalid("size-multiplier", c.SizeMultiplier, ising.ErrInvalidSize)
	case c.SizeIterations <= 0:
		return invalid("size-iterations", c.SizeIterations, ising.ErrInvalidSize)
	case c.Ninit < 0:
		return invalid("ninit", c.Ninit, ErrInvalidSweepCount)
	case c.Nsweeps <= 0:
		return invalid("nsweeps", c.Nsweeps, ErrInvalidSweepCount)
	case c.BetaCount <= 0:
		return invalid("beta-count", c.BetaCount, ErrInvalidTemperatureGrid)
	case math.IsNaN(c.BetaStart) || math.IsInf(c.BetaStart, 0):
		return invalid("beta-start", c.BetaStart, ErrInvalidTemperatureGrid)
	case !(c.BetaStep > 0) || math.IsInf(c.BetaStep, 0):
		return invalid("beta-step", c.BetaStep, ErrInvalidTemperatureGrid)
	case c.Coordination <= 0:
		return invalid("coordination", c.Coordination, ising.ErrInvalidCoordination)
	case math.IsNaN(c.EnergyScale) || math.IsInf(c.EnergyScale, 0):
		return invalid("energy-scale", c.EnergyScale, ErrInvalidConfig)
	}
	if err := c.validateSizes(); err != nil {
		return err
	}
	grid := c.Betas()
	for i := 1; i < len(grid); i++ {
		if !(grid[i] > grid[i-1]) {
			return invalid("beta-step", c.BetaStep, ErrInvalidTemperatureGrid)
		}
	}
	return nil
}

// maxSide is the largest side whose site count size*size fits in an int.
var maxSide = int(math.Sqrt(float64(math.MaxInt)))

// validateSizes rejects size sequences whose lattices could not be allocated
// without overflowing int.
func (c Config) validateSizes() error {
	size := c.Size
	for i := 0; i < c.SizeIterations; i++ {
		if size > maxSide {
			return invalid("size-iterations", c.SizeIterations, ising.ErrInvalidSize)
		}
		if i == c.SizeIterations-1 || c.SizeMultiplier == 1 {
			break
		}
		if c.SizeMultiplier > maxSide/size {
			return invalid("size-multiplier", c.SizeMultiplier, ising.ErrInvalidSize)
		}
		size *= c.SizeMultiplier
	}
	return nil
}

// Betas returns the temperature grid.
func (c Config) Betas() []float64 { return BetaGrid(c.BetaStart, c.BetaStep, c.BetaCount) }

// Sizes returns the lattice side lengths visited by the run, in order.
func (c Config) Sizes() []int {
	sizes := make([]int, 0, c.SizeIterations)
	size := c.Size
	for i := 0; i < c.SizeIterations; i++ {
		sizes = append(sizes, size)
		if i < c.SizeIterations-1 {
			size *= c.SizeMultiplier
		}
	}
	return sizes
}

// BetaGrid returns count linearly spaced values start, start+step, ...
func BetaGrid(start, step float64, count int) []float64 {
	switch {
	case count <= 0:
		return nil
	case count == 1:
		return []float64{start}
	}
	grid := make([]float64, count)
	return floats.Span(grid, start, start+float64(count-1)*step)
}
