package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ising-mc/internal/ising"
	"ising-mc/internal/sweep"
)

func parse(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	opts, err := Load(parse(t))
	require.NoError(t, err)

	want := sweep.DefaultConfig()
	assert.Equal(t, want, opts.Sweep)
	assert.Nil(t, opts.Sweep.Seed)
	assert.Equal(t, "info", opts.LogLevel)
	assert.Empty(t, opts.MetricsAddr)
}

func TestLoadFlags(t *testing.T) {
	opts, err := Load(parse(t,
		"--size=8",
		"--size-iterations=3",
		"--beta-start=0.3",
		"--beta-count=5",
		"--nsweeps=50",
		"--init=cold",
		"--seed=17",
	))
	require.NoError(t, err)

	cfg := opts.Sweep
	assert.Equal(t, 8, cfg.Size)
	assert.Equal(t, 3, cfg.SizeIterations)
	assert.Equal(t, 0.3, cfg.BetaStart)
	assert.Equal(t, 5, cfg.BetaCount)
	assert.Equal(t, 50, cfg.Nsweeps)
	assert.Equal(t, ising.InitUniform, cfg.Init)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(17), *cfg.Seed)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("ISING_NINIT", "0")
	t.Setenv("ISING_BETA_STEP", "0.05")

	opts, err := Load(parse(t))
	require.NoError(t, err)
	assert.Equal(t, 0, opts.Sweep.Ninit)
	assert.Equal(t, 0.05, opts.Sweep.BetaStep)

	opts, err = Load(parse(t, "--ninit=10"))
	require.NoError(t, err)
	assert.Equal(t, 10, opts.Sweep.Ninit, "flags take precedence over the environment")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	body := "size: 16\nsize-multiplier: 3\nbeta-count: 10\nseed: 99\nlog-format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	opts, err := Load(parse(t, "--config="+path))
	require.NoError(t, err)
	assert.Equal(t, 16, opts.Sweep.Size)
	assert.Equal(t, 3, opts.Sweep.SizeMultiplier)
	assert.Equal(t, 10, opts.Sweep.BetaCount)
	require.NotNil(t, opts.Sweep.Seed)
	assert.Equal(t, int64(99), *opts.Sweep.Seed)
	assert.Equal(t, "json", opts.LogFormat)
}

func TestLoadReadsMarshalledConfig(t *testing.T) {
	seed := int64(77)
	want := sweep.Config{
		Size:           6,
		SizeMultiplier: 3,
		SizeIterations: 2,
		BetaStart:      0.35,
		BetaStep:       0.05,
		BetaCount:      4,
		Ninit:          12,
		Nsweeps:        30,
		Coordination:   2,
		EnergyScale:    1.5,
		Init:           ising.InitUniform,
		Seed:           &seed,
	}
	body, err := yaml.Marshal(want)
	require.NoError(t, err)
	assert.Contains(t, string(body), "size-multiplier: 3")
	assert.Contains(t, string(body), "init: uniform")

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, body, 0o600))
	opts, err := Load(parse(t, "--config="+path))
	require.NoError(t, err)
	assert.Equal(t, want, opts.Sweep)
}

func TestLoadRejects(t *testing.T) {
	_, err := Load(parse(t, "--size=0"))
	require.ErrorIs(t, err, sweep.ErrInvalidConfig)
	require.ErrorIs(t, err, ising.ErrInvalidSize)

	_, err = Load(parse(t, "--beta-count=0"))
	require.ErrorIs(t, err, sweep.ErrInvalidTemperatureGrid)

	_, err = Load(parse(t, "--init=lukewarm"))
	require.Error(t, err)

	_, err = Load(parse(t, "--config="+filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
}
