package app

import (
	"strconv"

	"github.com/spf13/pflag"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64
	Size  int
	Beta  float64
	Init  string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "ising", Scale: 4, TPS: 30, Seed: 42, Size: 128, Beta: 0.44, Init: "random"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "sweeps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Size, "size", c.Size, "lattice side length")
	fs.Float64Var(&c.Beta, "beta", c.Beta, "inverse temperature")
	fs.StringVar(&c.Init, "init", c.Init, "lattice initialization: random, uniform or uniform-down")
}

// SimParams converts the flags into the factory's key/value form.
func (c *Config) SimParams() map[string]string {
	return map[string]string{
		"size": strconv.Itoa(c.Size),
		"beta": strconv.FormatFloat(c.Beta, 'g', -1, 64),
		"seed": strconv.FormatInt(c.Seed, 10),
		"init": c.Init,
	}
}
