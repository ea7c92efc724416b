package bitmap

import (
	"image"
)

// BytesPerPixel is the stride of one RGBA8 pixel.
const BytesPerPixel = 4

// Buffer is an RGBA8 bitmap. Pix holds Width*Height*4 bytes in row-major
// order.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte
}

// New allocates a zeroed (transparent black) buffer. Non-positive dimensions
// produce an empty buffer.
func New(width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		return &Buffer{}
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// Filled allocates a buffer where every pixel has the given color.
func Filled(width, height int, r, g, b, a uint8) *Buffer {
	buf := New(width, height)
	for i := 0; i < len(buf.Pix); i += BytesPerPixel {
		buf.Pix[i] = r
		buf.Pix[i+1] = g
		buf.Pix[i+2] = b
		buf.Pix[i+3] = a
	}
	return buf
}

// FromRGBA copies an *image.RGBA into a new buffer. The image's bounds are
// translated so its top-left pixel becomes (0, 0).
func FromRGBA(img *image.RGBA) *Buffer {
	bounds := img.Bounds()
	buf := New(bounds.Dx(), bounds.Dy())
	rowLen := buf.Width * BytesPerPixel
	for y := 0; y < buf.Height; y++ {
		src := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(buf.Pix[y*rowLen:(y+1)*rowLen], img.Pix[src:src+rowLen])
	}
	return buf
}

// RGBA wraps the buffer as an *image.RGBA without copying. Writes through
// the image are visible in the buffer.
func (b *Buffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * BytesPerPixel,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Empty reports whether the buffer has no pixels.
func (b *Buffer) Empty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0 || len(b.Pix) == 0
}

// Bounds returns the full-buffer region.
func (b *Buffer) Bounds() Region {
	return Region{W: b.Width, H: b.Height}
}

// Len returns the number of pixels.
func (b *Buffer) Len() int {
	return b.Width * b.Height
}

// In reports whether (x, y) lies inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// Offset returns the byte offset of pixel (x, y). The caller is responsible
// for bounds checking.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * BytesPerPixel
}

// At returns the RGBA value at (x, y). Coordinates are clamped to the edge.
func (b *Buffer) At(x, y int) (r, g, bl, a uint8) {
	x = clampInt(x, 0, b.Width-1)
	y = clampInt(y, 0, b.Height-1)
	i := b.Offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Set writes an RGBA value at (x, y). Out-of-bounds writes are ignored.
func (b *Buffer) Set(x, y int, r, g, bl, a uint8) {
	if !b.In(x, y) {
		return
	}
	i := b.Offset(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	out := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

// CopyFrom overwrites b with src. Both buffers must have the same
// dimensions; mismatched sizes copy nothing and return false.
func (b *Buffer) CopyFrom(src *Buffer) bool {
	if src == nil || src.Width != b.Width || src.Height != b.Height {
		return false
	}
	copy(b.Pix, src.Pix)
	return true
}

// Equal reports whether two buffers have the same size and bytes.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Width != o.Width || b.Height != o.Height || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Extract copies the clipped region into a new buffer of the region's size.
func (b *Buffer) Extract(r Region) *Buffer {
	r = r.Clip(b.Width, b.Height)
	out := New(r.W, r.H)
	rowLen := r.W * BytesPerPixel
	for y := 0; y < r.H; y++ {
		src := b.Offset(r.X, r.Y+y)
		copy(out.Pix[y*rowLen:(y+1)*rowLen], b.Pix[src:src+rowLen])
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
