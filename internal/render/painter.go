//go:build ebiten

package render

import "github.com/hajimehoshi/ebiten/v2"

// GridPainter uploads spin display cells into a single image and draws it scaled.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette Palette
}

// NewGridPainter allocates a painter for a w*h lattice.
func NewGridPainter(w, h int, p Palette) *GridPainter {
	return &GridPainter{
		w:       w,
		h:       h,
		img:     ebiten.NewImage(w, h),
		buf:     make([]byte, 4*w*h),
		palette: p,
	}
}

// Blit draws cells onto dst at the given integer scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillSpinRGBA(gp.buf, cells, gp.palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
