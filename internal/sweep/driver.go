// Package sweep drives Metropolis simulations across a grid of inverse
// temperatures and a sequence of lattice sizes, aggregating the order
// parameter and heat capacity at every grid point.
package sweep

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ising-mc/internal/ising"
	pkgcore "ising-mc/pkg/core"
)

// Phase is the driver state for one temperature.
type Phase int

const (
	// PhaseInit is entered when a fresh lattice is built for a temperature.
	PhaseInit Phase = iota
	// PhaseThermalizing runs the Ninit discarded sweeps.
	PhaseThermalizing
	// PhaseSampling runs the Nsweeps measured sweeps.
	PhaseSampling
	// PhaseAggregated means the Record for the temperature is final.
	PhaseAggregated
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseThermalizing:
		return "thermalizing"
	case PhaseSampling:
		return "sampling"
	case PhaseAggregated:
		return "aggregated"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// PhaseEvent is delivered to observers on every phase transition.
type PhaseEvent struct {
	Phase Phase
	Size  int
	// Index is the position of Beta in the temperature grid.
	Index int
	Beta  float64
}

// Record is the aggregate for one temperature.
type Record struct {
	Beta float64 `yaml:"beta"`
	// OrderParameter is the mean of the per-sweep average energy per site.
	OrderParameter float64 `yaml:"orderParameter"`
	// Magnitude is |OrderParameter|.
	Magnitude    float64 `yaml:"magnitude"`
	HeatCapacity float64 `yaml:"heatCapacity"`
	// Magnetization is the mean spin averaged over sampling sweeps.
	Magnetization   float64 `yaml:"magnetization"`
	AcceptanceRatio float64 `yaml:"acceptanceRatio"`
}

// SizeResult holds everything produced for one lattice size.
type SizeResult struct {
	Size    int      `yaml:"size"`
	Records []Record `yaml:"records"`
	// Trajectory is the per-sweep order parameter at the last grid point.
	Trajectory     []float64 `yaml:"trajectory"`
	TrajectoryBeta float64   `yaml:"trajectoryBeta"`
}

// Report is the output of a full run.
type Report struct {
	Seed  int64        `yaml:"seed"`
	Sizes []SizeResult `yaml:"sizes"`
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option { return func(d *Driver) { d.log = l } }

// WithMetrics attaches prometheus collectors.
func WithMetrics(m *Metrics) Option { return func(d *Driver) { d.metrics = m } }

// WithObserver registers fn to receive every PhaseEvent.
func WithObserver(fn func(PhaseEvent)) Option {
	return func(d *Driver) { d.observers = append(d.observers, fn) }
}

// Driver runs the thermalize-then-sample loop. It is single-use and not safe
// for concurrent use.
type Driver struct {
	cfg       Config
	seed      int64
	rng       *pkgcore.RNG
	log       *zap.Logger
	metrics   *Metrics
	observers []func(PhaseEvent)
}

// New validates cfg and returns a Driver that owns a freshly seeded RNG.
func New(cfg Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	d := &Driver{
		cfg:  cfg,
		seed: seed,
		rng:  pkgcore.NewRNG(seed),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Seed reports the seed the RNG was built from.
func (d *Driver) Seed() int64 { return d.seed }

// Run simulates every configured size in order.
func (d *Driver) Run() (*Report, error) {
	betas := d.cfg.Betas()
	d.log.Info("starting run",
		zap.Int64("seed", d.seed),
		zap.Ints("sizes", d.cfg.Sizes()),
		zap.Int("betas", len(betas)),
		zap.Int("ninit", d.cfg.Ninit),
		zap.Int("nsweeps", d.cfg.Nsweeps))

	start := time.Now()
	report := &Report{Seed: d.seed}
	for _, size := range d.cfg.Sizes() {
		res, err := d.runSize(size, betas)
		if err != nil {
			return nil, err
		}
		report.Sizes = append(report.Sizes, res)
	}
	d.log.Info("run complete", zap.Duration("elapsed", time.Since(start)))
	return report, nil
}

func (d *Driver) runSize(size int, betas []float64) (SizeResult, error) {
	d.log.Info("simulating lattice", zap.Int("size", size))
	d.metrics.setSize(size)

	res := SizeResult{Size: size, Records: make([]Record, 0, len(betas))}
	for i, beta := range betas {
		rec, trajectory, err := d.runTemperature(size, i, beta)
		if err != nil {
			return SizeResult{}, err
		}
		res.Records = append(res.Records, rec)
		res.Trajectory = trajectory
		res.TrajectoryBeta = beta
	}
	return res, nil
}

func (d *Driver) runTemperature(size, index int, beta float64) (Record, []float64, error) {
	ev := PhaseEvent{Phase: PhaseInit, Size: size, Index: index, Beta: beta}
	d.emit(ev)
	lattice, err := ising.NewLattice(size, d.cfg.Init, d.rng)
	if err != nil {
		return Record{}, nil, err
	}

	clamped := 0
	ev.Phase = PhaseThermalizing
	d.emit(ev)
	for n := 0; n < d.cfg.Ninit; n++ {
		stats := ising.Sweep(lattice, beta, d.rng)
		clamped += stats.Clamped
		d.metrics.observeSweep(PhaseThermalizing, stats)
	}

	ev.Phase = PhaseSampling
	d.emit(ev)
	var sum, magSum, accSum float64
	trajectory := make([]float64, d.cfg.Nsweeps)
	energies := make([]float64, d.cfg.Nsweeps)
	for n := 0; n < d.cfg.Nsweeps; n++ {
		stats := ising.Sweep(lattice, beta, d.rng)
		clamped += stats.Clamped
		d.metrics.observeSweep(PhaseSampling, stats)

		m, err := ising.AverageEnergyPerSite(lattice, d.cfg.Coordination)
		if err != nil {
			return Record{}, nil, err
		}
		sum += m
		trajectory[n] = m
		energies[n] = m * d.cfg.EnergyScale
		magSum += ising.Magnetization(lattice)
		accSum += stats.AcceptanceRatio()
	}

	nsweeps := float64(d.cfg.Nsweeps)
	rec := Record{
		Beta:            beta,
		OrderParameter:  sum / nsweeps,
		Magnitude:       math.Abs(sum / nsweeps),
		HeatCapacity:    HeatCapacity(energies),
		Magnetization:   magSum / nsweeps,
		AcceptanceRatio: accSum / nsweeps,
	}
	ev.Phase = PhaseAggregated
	d.emit(ev)
	d.metrics.temperatureDone()

	if clamped > 0 {
		d.log.Debug("acceptance probabilities clamped",
			zap.Int("size", size), zap.Float64("beta", beta), zap.Int("count", clamped))
	}
	d.log.Debug("temperature aggregated",
		zap.Int("size", size),
		zap.Float64("beta", rec.Beta),
		zap.Float64("orderParameter", rec.OrderParameter),
		zap.Float64("heatCapacity", rec.HeatCapacity),
		zap.Float64("acceptance", rec.AcceptanceRatio))
	return rec, trajectory, nil
}

func (d *Driver) emit(ev PhaseEvent) {
	for _, fn := range d.observers {
		fn(ev)
	}
}

// HeatCapacity returns sum((x - mean)^2) / len(series), or 0 for an empty
// series. Deviations are taken relative to the first sample so a constant
// series yields exactly 0.
func HeatCapacity(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	shifted := make([]float64, len(series))
	copy(shifted, series)
	floats.AddConst(-series[0], shifted)
	mean := stat.Mean(shifted, nil)

	var ss float64
	for _, x := range shifted {
		dev := x - mean
		ss += dev * dev
	}
	return ss / float64(len(series))
}
