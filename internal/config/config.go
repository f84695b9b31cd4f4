// Package config resolves run settings from defaults, an optional YAML file,
// ISING_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ising-mc/internal/ising"
	"ising-mc/internal/logging"
	"ising-mc/internal/sweep"
)

// EnvPrefix is prepended to every environment override, e.g. ISING_BETA_STEP.
const EnvPrefix = "ISING"

// Options is the fully resolved command-line configuration.
type Options struct {
	Sweep       sweep.Config
	LogLevel    string
	LogFormat   string
	MetricsAddr string
}

// BindFlags registers every setting on fs with defaults from sweep.DefaultConfig.
func BindFlags(fs *pflag.FlagSet) {
	d := sweep.DefaultConfig()
	fs.String("config", "", "YAML file with run settings")
	fs.Int("size", d.Size, "initial lattice side length")
	fs.Int("size-multiplier", d.SizeMultiplier, "side length growth factor per size iteration")
	fs.Int("size-iterations", d.SizeIterations, "number of lattice sizes to simulate")
	fs.Float64("beta-start", d.BetaStart, "first inverse temperature")
	fs.Float64("beta-step", d.BetaStep, "inverse temperature increment")
	fs.Int("beta-count", d.BetaCount, "number of inverse temperatures")
	fs.Int("ninit", d.Ninit, "thermalization sweeps per temperature")
	fs.Int("nsweeps", d.Nsweeps, "sampling sweeps per temperature")
	fs.Int("coordination", d.Coordination, "coordination number dividing the local energy")
	fs.Float64("energy-scale", d.EnergyScale, "factor applied to samples in the heat-capacity series")
	fs.String("init", d.Init.String(), "lattice initialization: random, uniform or uniform-down")
	fs.Int64("seed", 0, "random seed (default: derived from the clock)")
	fs.String("log-level", "info", "log level")
	fs.String("log-format", logging.FormatConsole, "log format: console or json")
	fs.String("metrics-addr", "", "serve prometheus metrics on this address while running")
}

// Load merges the sources and validates the resulting sweep configuration.
// fs must have been set up with BindFlags and parsed.
func Load(fs *pflag.FlagSet) (Options, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Options{}, errors.Wrap(err, "config: bind flags")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Options{}, errors.Wrapf(err, "config: read %s", path)
		}
	}

	cfg := sweep.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return Options{}, errors.Wrap(err, "config: decode")
	}
	mode, err := ising.ParseInitMode(v.GetString("init"))
	if err != nil {
		return Options{}, err
	}
	cfg.Init = mode
	if v.IsSet("seed") {
		seed := v.GetInt64("seed")
		cfg.Seed = &seed
	}
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}

	return Options{
		Sweep:       cfg,
		LogLevel:    v.GetString("log-level"),
		LogFormat:   v.GetString("log-format"),
		MetricsAddr: v.GetString("metrics-addr"),
	}, nil
}
