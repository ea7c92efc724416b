// Package display draws selection overlays on top of rendered frames.
//
// Overlays are drawn on a copy of the frame, never into the scheduler's
// buffers, so they do not leak into exports. The ebiten window that shows
// them lives in the window subpackage.
package display

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/matzehuels/glitcher/pkg/bitmap"
	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/selection"
)

// Accent is the overlay color (#4ecdc4).
var Accent = [3]float64{78.0 / 255, 205.0 / 255, 196.0 / 255}

const (
	maskAlpha   = 0.3
	strokeAlpha = 0.8
	cursorAlpha = 0.6
	strokeWidth = 2
	dashLength  = 5
)

// Overlay selects which selection layers are drawn.
type Overlay struct {
	Mask   bool // tint manually selected pixels
	Clumps bool // fill and outline live clumps
	Tools  bool // rectangle, lasso and brush previews

	// ClumpAlpha is the clump fill opacity.
	ClumpAlpha float64
}

// DefaultOverlay draws every layer.
func DefaultOverlay() Overlay {
	return Overlay{Mask: true, Clumps: true, Tools: true, ClumpAlpha: maskAlpha}
}

// Compose returns a copy of f.Image with the overlay drawn on top.
func (o Overlay) Compose(f engine.Frame) *bitmap.Buffer {
	out := f.Image.Clone()
	if !out.Empty() {
		o.Draw(out.RGBA(), f)
	}
	return out
}

// Draw paints the overlay for f onto img, which must have f's dimensions.
func (o Overlay) Draw(img *image.RGBA, f engine.Frame) {
	dc := gg.NewContextForRGBA(img)
	if o.Mask && f.Mask != nil {
		drawMask(dc, f.Mask)
	}
	if o.Clumps {
		drawClumps(dc, f.Clumps, o.ClumpAlpha)
	}
	if o.Tools {
		drawPreview(dc, f.Preview)
	}
}

func drawMask(dc *gg.Context, m *bitmap.Mask) {
	if m.Width != dc.Width() || m.Height != dc.Height() || m.Empty() {
		return
	}
	// Mask bytes are 0 or 255, so they serve directly as an alpha mask.
	alpha := &image.Alpha{Pix: m.Bits, Stride: m.Width, Rect: image.Rect(0, 0, m.Width, m.Height)}
	if err := dc.SetMask(alpha); err != nil {
		return
	}
	dc.SetRGBA(Accent[0], Accent[1], Accent[2], maskAlpha)
	dc.DrawRectangle(0, 0, float64(m.Width), float64(m.Height))
	dc.Fill()
	dc.ResetClip()
}

func drawClumps(dc *gg.Context, clumps []selection.Clump, fill float64) {
	if len(clumps) == 0 {
		return
	}
	dc.SetLineWidth(strokeWidth)
	for _, c := range clumps {
		x, y, w, h := float64(c.X), float64(c.Y), float64(c.W), float64(c.H)
		dc.DrawRectangle(x, y, w, h)
		dc.SetRGBA(Accent[0], Accent[1], Accent[2], fill)
		dc.FillPreserve()
		dc.SetRGBA(Accent[0], Accent[1], Accent[2], strokeAlpha)
		dc.Stroke()
	}
}

func drawPreview(dc *gg.Context, p selection.Preview) {
	switch p.Tool {
	case selection.ToolRect:
		if !p.Drawing || p.Rect.Empty() {
			return
		}
		dashed(dc)
		dc.DrawRectangle(float64(p.Rect.X), float64(p.Rect.Y), float64(p.Rect.W), float64(p.Rect.H))
		dc.Stroke()
	case selection.ToolLasso:
		if !p.Drawing || len(p.Lasso) < 2 {
			return
		}
		dashed(dc)
		dc.MoveTo(float64(p.Lasso[0].X), float64(p.Lasso[0].Y))
		for _, pt := range p.Lasso[1:] {
			dc.LineTo(float64(pt.X), float64(pt.Y))
		}
		dc.Stroke()
	case selection.ToolBrush:
		if p.Cursor.X < 0 || p.Cursor.Y < 0 || p.Radius <= 0 {
			return
		}
		dc.SetDash()
		dc.SetLineWidth(1)
		dc.SetRGBA(Accent[0], Accent[1], Accent[2], cursorAlpha)
		dc.DrawCircle(float64(p.Cursor.X), float64(p.Cursor.Y), float64(p.Radius))
		dc.Stroke()
	}
	dc.SetDash()
}

func dashed(dc *gg.Context) {
	dc.SetLineWidth(strokeWidth)
	dc.SetDash(dashLength, dashLength)
	dc.SetRGBA(Accent[0], Accent[1], Accent[2], strokeAlpha)
}
