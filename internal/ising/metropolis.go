package ising

import (
	"math"

	"github.com/pkg/errors"

	pkgcore "ising-mc/pkg/core"
)

// maxExpArg is the largest x for which math.Exp(x) is finite.
var maxExpArg = math.Log(math.MaxFloat64)

// SweepStats summarizes one full-lattice sweep.
type SweepStats struct {
	Sites    int
	Accepted int
	// Clamped counts proposals whose acceptance probability hit ErrNumericDomain.
	Clamped int
}

// AcceptanceRatio is the fraction of sites whose flip was accepted.
func (s SweepStats) AcceptanceRatio() float64 {
	if s.Sites == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Sites)
}

// AcceptanceProbability returns the Metropolis probability of accepting a
// change of deltaE at inverse temperature beta. Non-positive deltaE is always
// accepted. When beta*deltaE is not representable the result is 0 together
// with ErrNumericDomain.
func AcceptanceProbability(beta, deltaE float64) (float64, error) {
	if deltaE <= 0 {
		return 1, nil
	}
	x := beta * deltaE
	if math.IsNaN(x) || math.IsInf(x, 0) || -x > maxExpArg {
		return 0, errors.Wrapf(ErrNumericDomain, "beta=%g deltaE=%g", beta, deltaE)
	}
	return math.Exp(-x), nil
}

// Sweep proposes a flip at every site in row-major order. Accepted flips are
// written immediately, so later sites in the same sweep see them. A uniform
// draw is consumed only for proposals that raise the energy.
func Sweep(l *Lattice, beta float64, rng *pkgcore.RNG) SweepStats {
	stats := SweepStats{Sites: l.size * l.size}
	spins := l.Spins()
	for row := 0; row < l.size; row++ {
		for col := 0; col < l.size; col++ {
			idx := row*l.size + col
			cur := spins[idx]
			next := -cur
			deltaE := int(next-cur) * NeighborSum(l, row, col)
			if deltaE <= 0 {
				spins[idx] = next
				stats.Accepted++
				continue
			}
			p, err := AcceptanceProbability(beta, float64(deltaE))
			if err != nil {
				stats.Clamped++
			}
			if rng.Float64() < p {
				spins[idx] = next
				stats.Accepted++
			}
		}
	}
	return stats
}
