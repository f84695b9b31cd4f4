package sweep

import (
	"math"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"ising-mc/internal/ising"
	"ising-mc/internal/logging"
	pkgcore "ising-mc/pkg/core"
)

func smallConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Size = 4
	cfg.BetaStart = 0.2
	cfg.BetaStep = 0.1
	cfg.BetaCount = 3
	cfg.Ninit = 5
	cfg.Nsweeps = 20
	cfg.Seed = &seed
	return cfg
}

var _ = g.Describe("Driver", func() {
	g.Context("with an invalid configuration", func() {
		g.It("fails before any sweep runs", func() {
			cfg := smallConfig(1)
			cfg.Nsweeps = 0
			var events []PhaseEvent
			d, err := New(cfg, WithObserver(func(ev PhaseEvent) { events = append(events, ev) }))
			Expect(err).To(MatchError(ErrInvalidSweepCount))
			Expect(err).To(MatchError(ErrInvalidConfig))
			Expect(d).To(BeNil())
			Expect(events).To(BeEmpty())
		})

		g.It("rejects a non-positive lattice size", func() {
			cfg := smallConfig(1)
			cfg.Size = 0
			_, err := New(cfg)
			Expect(err).To(MatchError(ising.ErrInvalidSize))
		})
	})

	g.Context("with a seeded configuration", func() {
		var (
			cfg    Config
			report *Report
		)

		g.BeforeEach(func() {
			cfg = smallConfig(42)
			cfg.SizeIterations = 2
			d, err := New(cfg, WithLogger(logging.NewNop()))
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Seed()).To(Equal(int64(42)))
			report, err = d.Run()
			Expect(err).NotTo(HaveOccurred())
		})

		g.It("produces one result per size in doubling order", func() {
			Expect(report.Seed).To(Equal(int64(42)))
			Expect(report.Sizes).To(HaveLen(2))
			Expect(report.Sizes[0].Size).To(Equal(4))
			Expect(report.Sizes[1].Size).To(Equal(8))
		})

		g.It("records every grid point in increasing beta order", func() {
			for _, res := range report.Sizes {
				Expect(res.Records).To(HaveLen(3))
				for i, rec := range res.Records {
					Expect(rec.Beta).To(BeNumerically("~", 0.2+0.1*float64(i), 1e-12))
					Expect(rec.OrderParameter).To(And(BeNumerically(">=", -1), BeNumerically("<=", 1)))
					Expect(rec.Magnetization).To(And(BeNumerically(">=", -1), BeNumerically("<=", 1)))
					Expect(rec.AcceptanceRatio).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))
					Expect(rec.HeatCapacity).To(BeNumerically(">=", 0))
					Expect(rec.Magnitude).To(Equal(math.Abs(rec.OrderParameter)))
				}
			}
		})

		g.It("keeps the final temperature trajectory", func() {
			for _, res := range report.Sizes {
				Expect(res.Trajectory).To(HaveLen(cfg.Nsweeps))
				Expect(res.TrajectoryBeta).To(Equal(res.Records[len(res.Records)-1].Beta))

				var sum float64
				for _, m := range res.Trajectory {
					sum += m
				}
				last := res.Records[len(res.Records)-1]
				Expect(sum / float64(cfg.Nsweeps)).To(BeNumerically("~", last.OrderParameter, 1e-12))
				Expect(HeatCapacity(scaled(res.Trajectory, cfg.EnergyScale))).To(BeNumerically("~", last.HeatCapacity, 1e-12))
			}
		})

		g.It("reproduces the same report for the same seed", func() {
			d, err := New(cfg)
			Expect(err).NotTo(HaveOccurred())
			again, err := d.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(report))
		})
	})

	g.It("walks Init, Thermalizing, Sampling, Aggregated for every temperature", func() {
		var events []PhaseEvent
		d, err := New(smallConfig(7), WithObserver(func(ev PhaseEvent) { events = append(events, ev) }))
		Expect(err).NotTo(HaveOccurred())
		_, err = d.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(events).To(HaveLen(3 * 4))
		order := []Phase{PhaseInit, PhaseThermalizing, PhaseSampling, PhaseAggregated}
		for i, ev := range events {
			Expect(ev.Phase).To(Equal(order[i%4]))
			Expect(ev.Index).To(Equal(i / 4))
			Expect(ev.Size).To(Equal(4))
		}
	})

	g.It("settles a uniform start into a frozen checkerboard", func() {
		cfg := smallConfig(3)
		cfg.Init = ising.InitUniform
		cfg.BetaStart = 50
		cfg.BetaStep = 1
		cfg.BetaCount = 2
		d, err := New(cfg)
		Expect(err).NotTo(HaveOccurred())
		report, err := d.Run()
		Expect(err).NotTo(HaveOccurred())

		// Aligned neighbourhoods flip downhill, so thermalization ends in
		// the antialigned checkerboard, where every proposal costs +8.
		for _, rec := range report.Sizes[0].Records {
			Expect(rec.HeatCapacity).To(Equal(0.0))
			Expect(rec.OrderParameter).To(Equal(1.0))
			Expect(rec.Magnitude).To(Equal(1.0))
			Expect(rec.Magnetization).To(Equal(0.0))
			Expect(rec.AcceptanceRatio).To(Equal(0.0))
		}
	})

	g.It("counts sweeps and clamps in prometheus", func() {
		reg := prometheus.NewRegistry()
		m, err := NewMetrics(reg)
		Expect(err).NotTo(HaveOccurred())

		cfg := smallConfig(9)
		cfg.BetaStart = math.MaxFloat64 / 2
		cfg.BetaStep = math.MaxFloat64 / 4
		cfg.BetaCount = 2
		cfg.Init = ising.InitUniform
		d, err := New(cfg, WithMetrics(m))
		Expect(err).NotTo(HaveOccurred())
		report, err := d.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(testutil.ToFloat64(m.sweeps.WithLabelValues("thermalizing"))).To(Equal(float64(2 * cfg.Ninit)))
		Expect(testutil.ToFloat64(m.sweeps.WithLabelValues("sampling"))).To(Equal(float64(2 * cfg.Nsweeps)))
		Expect(testutil.ToFloat64(m.temperatures)).To(Equal(2.0))
		Expect(testutil.ToFloat64(m.latticeSize)).To(Equal(4.0))

		// Every uphill proposal overflows beta*deltaE, so the run is fully
		// determined by the sign of deltaE and can be replayed directly.
		wantClamps := 0
		for range cfg.Betas() {
			l, err := ising.NewLattice(cfg.Size, ising.InitUniform, nil)
			Expect(err).NotTo(HaveOccurred())
			rng := pkgcore.NewRNG(1)
			for n := 0; n < cfg.Ninit+cfg.Nsweeps; n++ {
				wantClamps += ising.Sweep(l, math.Inf(1), rng).Clamped
			}
		}
		Expect(wantClamps).To(Equal(752))
		Expect(testutil.ToFloat64(m.clamps)).To(Equal(float64(wantClamps)))
		for _, rec := range report.Sizes[0].Records {
			Expect(rec.Magnetization).To(Equal(0.0))
			Expect(rec.OrderParameter).To(Equal(1.0))
		}

		_, err = NewMetrics(reg)
		Expect(err).To(HaveOccurred())
	})
})

func scaled(series []float64, k float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = v * k
	}
	return out
}
