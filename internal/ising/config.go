package ising

import "strconv"

// SimConfig controls the interactive single-temperature simulation.
type SimConfig struct {
	Size         int
	Beta         float64
	Seed         int64
	Coordination int
	Init         InitMode
}

// DefaultSimConfig returns the standard viewer configuration.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Size:         128,
		Beta:         0.44,
		Seed:         1337,
		Coordination: DefaultCoordination,
		Init:         InitRandom,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparsable or out-of-range entries keep their defaults.
func FromMap(cfg map[string]string) SimConfig {
	c := DefaultSimConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Size = parsed
		}
	}
	if v, ok := cfg["beta"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Beta = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["coordination"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Coordination = parsed
		}
	}
	if v, ok := cfg["init"]; ok {
		if mode, err := ParseInitMode(v); err == nil {
			c.Init = mode
		}
	}
	return c
}
