package display

import (
	"testing"

	"github.com/matzehuels/glitcher/pkg/bitmap"
	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/selection"
)

func frame(w, h int) engine.Frame {
	return engine.Frame{Image: bitmap.Filled(w, h, 0, 0, 0, 255)}
}

func tinted(buf *bitmap.Buffer, x, y int) bool {
	r, g, b, _ := buf.At(x, y)
	return r > 0 && g > r && b > r
}

func TestComposeLeavesFrameIntact(t *testing.T) {
	f := frame(40, 40)
	f.Clumps = []selection.Clump{{Region: bitmap.Rect(5, 5, 10, 10), FramesRemaining: 3}}
	orig := f.Image.Clone()

	out := DefaultOverlay().Compose(f)
	if !f.Image.Equal(orig) {
		t.Error("Compose modified the frame image")
	}
	if out.Equal(orig) {
		t.Error("Compose drew nothing")
	}
}

func TestMaskTint(t *testing.T) {
	f := frame(32, 32)
	f.Mask = bitmap.NewMask(32, 32)
	for y := 8; y < 16; y++ {
		for x := 8; x < 16; x++ {
			f.Mask.Set(x, y)
		}
	}
	out := Overlay{Mask: true}.Compose(f)

	if !tinted(out, 12, 12) {
		r, g, b, _ := out.At(12, 12)
		t.Errorf("selected pixel = %d,%d,%d, want accent tint", r, g, b)
	}
	if r, g, b, _ := out.At(24, 24); r != 0 || g != 0 || b != 0 {
		t.Errorf("unselected pixel = %d,%d,%d, want 0,0,0", r, g, b)
	}
}

func TestClumpLayer(t *testing.T) {
	f := frame(40, 40)
	f.Clumps = []selection.Clump{{Region: bitmap.Rect(10, 10, 10, 10), FramesRemaining: 1}}

	out := Overlay{Clumps: true, ClumpAlpha: 0.3}.Compose(f)
	if !tinted(out, 15, 15) {
		t.Error("clump interior not filled")
	}
	if !tinted(out, 10, 15) {
		t.Error("clump edge not outlined")
	}
	if r, g, b, _ := out.At(30, 30); r != 0 || g != 0 || b != 0 {
		t.Error("pixel outside the clump changed")
	}

	off := Overlay{}.Compose(f)
	if !off.Equal(f.Image) {
		t.Error("disabled overlay drew")
	}
}

func TestToolPreview(t *testing.T) {
	tests := []struct {
		name    string
		preview selection.Preview
		x, y    int
		want    bool
	}{
		{"rect edge", selection.Preview{Tool: selection.ToolRect, Drawing: true, Rect: bitmap.Rect(4, 4, 20, 20)}, 6, 4, true},
		{"rect idle", selection.Preview{Tool: selection.ToolRect, Rect: bitmap.Rect(4, 4, 20, 20)}, 6, 4, false},
		{"lasso", selection.Preview{Tool: selection.ToolLasso, Drawing: true, Lasso: []bitmap.Point{{X: 2, Y: 16}, {X: 30, Y: 16}}}, 16, 16, true},
		{"brush", selection.Preview{Tool: selection.ToolBrush, Cursor: bitmap.Point{X: 16, Y: 16}, Radius: 6}, 22, 16, true},
		{"none", selection.Preview{Tool: selection.ToolNone, Drawing: true}, 16, 16, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := frame(32, 32)
			f.Preview = tt.preview
			out := Overlay{Tools: true}.Compose(f)
			r, g, b, _ := out.At(tt.x, tt.y)
			if got := r != 0 || g != 0 || b != 0; got != tt.want {
				t.Errorf("pixel (%d,%d) = %d,%d,%d, drawn = %v, want %v", tt.x, tt.y, r, g, b, got, tt.want)
			}
		})
	}
}
