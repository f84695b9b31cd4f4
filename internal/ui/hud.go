//go:build ebiten

package ui

import (
	"image/color"

	"ising-mc/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const lineHeight = 16

// HUD renders the parameter panel to the right of the lattice view. Up and
// Down nudge the first adjustable control.
type HUD struct {
	sim   core.Sim
	width int
	panel *ebiten.Image
	lines []string
	key   string
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: width}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		if controls := provider.ParameterControls(); len(controls) > 0 {
			h.key = controls[0].Key
		}
	}
	return h
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int { return h.width }

// Update handles key input and refreshes the cached text.
func (h *HUD) Update() {
	if h.key != "" {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyUp):
			Nudge(h.sim, h.key, 1)
		case inpututil.IsKeyJustPressed(ebiten.KeyDown):
			Nudge(h.sim, h.key, -1)
		}
	}
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.lines = Lines(provider.Parameters())
	}
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int) {
	if h.width <= 0 {
		return
	}
	height := screen.Bounds().Dy()
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	for i, line := range h.lines {
		text.Draw(h.panel, line, basicfont.Face7x13, 8, lineHeight*(i+1), color.White)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
