package sweep

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"ising-mc/internal/ising"
)

// Metrics exports sweep progress and acceptance statistics. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	sweeps       *prometheus.CounterVec
	acceptance   prometheus.Histogram
	clamps       prometheus.Counter
	temperatures prometheus.Counter
	latticeSize  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		sweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ising_sweeps_total",
			Help: "Full-lattice Metropolis sweeps executed, by phase.",
		}, []string{"phase"}),
		acceptance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ising_acceptance_ratio",
			Help:    "Fraction of accepted flips per sampling sweep.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
		clamps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ising_probability_clamps_total",
			Help: "Acceptance probabilities clamped to zero because beta*deltaE was out of range.",
		}),
		temperatures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ising_temperatures_completed_total",
			Help: "Temperature grid points aggregated.",
		}),
		latticeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ising_lattice_size",
			Help: "Side length of the lattice currently being simulated.",
		}),
	}
	for _, c := range []prometheus.Collector{m.sweeps, m.acceptance, m.clamps, m.temperatures, m.latticeSize} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "sweep: register metrics")
		}
	}
	return m, nil
}

func (m *Metrics) observeSweep(phase Phase, stats ising.SweepStats) {
	if m == nil {
		return
	}
	m.sweeps.WithLabelValues(phase.String()).Inc()
	if stats.Clamped > 0 {
		m.clamps.Add(float64(stats.Clamped))
	}
	if phase == PhaseSampling {
		m.acceptance.Observe(stats.AcceptanceRatio())
	}
}

func (m *Metrics) temperatureDone() {
	if m == nil {
		return
	}
	m.temperatures.Inc()
}

func (m *Metrics) setSize(size int) {
	if m == nil {
		return
	}
	m.latticeSize.Set(float64(size))
}
