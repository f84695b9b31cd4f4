//go:build ebiten

package main

import (
	"errors"
	"log"

	"ising-mc/internal/app"
	"ising-mc/internal/core"
	_ "ising-mc/internal/ising"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(pflag.CommandLine)
	pflag.Parse()

	sim, err := core.Build(cfg.Sim, cfg.SimParams())
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg.Scale, cfg.Seed)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("ising-mc — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
