// Package ui holds the viewer's parameter panel and the keyboard bindings
// that adjust a simulation's tunable values.
package ui

import (
	"strconv"

	"ising-mc/internal/core"
)

// Nudge moves the control named key by steps increments of its Step,
// clamped to its bounds. It reports whether the simulation accepted the value.
func Nudge(sim core.Sim, key string, steps int) bool {
	controls, ok := sim.(core.ParameterControlsProvider)
	if !ok {
		return false
	}
	setter, ok := sim.(core.FloatParameterSetter)
	if !ok {
		return false
	}
	provider, ok := sim.(core.ParameterProvider)
	if !ok {
		return false
	}
	for _, ctrl := range controls.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		param, ok := provider.Parameters().Lookup(key)
		if !ok {
			return false
		}
		current, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return false
		}
		return setter.SetFloatParameter(key, ctrl.Clamp(current+float64(steps)*ctrl.Step))
	}
	return false
}

// Lines renders a parameter snapshot as one "Label: value" line per
// parameter, with group names as headers.
func Lines(snap core.ParameterSnapshot) []string {
	var out []string
	for _, g := range snap.Groups {
		out = append(out, g.Name)
		for _, p := range g.Params {
			out = append(out, "  "+p.Label+": "+p.Value)
		}
	}
	return out
}
