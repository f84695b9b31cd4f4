package ising

import (
	"github.com/pkg/errors"

	"ising-mc/internal/core"
)

// DefaultCoordination is the neighbour count of the von Neumann topology.
const DefaultCoordination = 4

// NeighborSum adds the four periodic von Neumann neighbours of (row, col).
func NeighborSum(l *Lattice, row, col int) int {
	n := l.size
	return int(l.At(core.Wrap(row-1, n), col)) +
		int(l.At(core.Wrap(row+1, n), col)) +
		int(l.At(row, core.Wrap(col-1, n))) +
		int(l.At(row, core.Wrap(col+1, n)))
}

// LocalEnergy is the site contribution -s*sum(neighbours); aligned
// neighbourhoods are lower in energy.
func LocalEnergy(l *Lattice, row, col int) int {
	return -int(l.At(row, col)) * NeighborSum(l, row, col)
}

// Magnetization is the mean spin, in [-1, 1].
func Magnetization(l *Lattice) float64 {
	total := 0
	for _, s := range l.Spins() {
		total += int(s)
	}
	return float64(total) / float64(len(l.Spins()))
}

// AverageEnergyPerSite is the mean over all sites of LocalEnergy/coordination.
func AverageEnergyPerSite(l *Lattice, coordination int) (float64, error) {
	if coordination <= 0 {
		return 0, errors.Wrapf(ErrInvalidCoordination, "coordination %d", coordination)
	}
	return averageEnergyPerSite(l, float64(coordination)), nil
}

func averageEnergyPerSite(l *Lattice, coordination float64) float64 {
	var m float64
	for row := 0; row < l.size; row++ {
		for col := 0; col < l.size; col++ {
			m += float64(LocalEnergy(l, row, col)) / coordination
		}
	}
	return m / float64(l.size*l.size)
}

// TotalEnergy sums LocalEnergy over all sites, halved so each bond counts once.
func TotalEnergy(l *Lattice) float64 {
	total := 0
	for row := 0; row < l.size; row++ {
		for col := 0; col < l.size; col++ {
			total += LocalEnergy(l, row, col)
		}
	}
	return float64(total) / 2
}
