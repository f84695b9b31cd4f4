package app

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/core"
	"ising-mc/internal/ising"
)

func TestConfigBuildsSim(t *testing.T) {
	cfg := NewConfig()
	fs := pflag.NewFlagSet("ca", pflag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"--size=10", "--beta=0.7", "--init=cold"}))

	sim, err := core.Build(cfg.Sim, cfg.SimParams())
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 10, H: 10}, sim.Size())

	is, ok := sim.(*ising.Sim)
	require.True(t, ok)
	assert.Equal(t, 0.7, is.Beta())
	assert.Equal(t, 1.0, ising.Magnetization(is.Lattice()))
}
