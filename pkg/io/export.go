package io

import (
	"bufio"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// EncodePNG writes buf as a PNG.
func EncodePNG(w io.Writer, buf *bitmap.Buffer) error {
	if err := png.Encode(w, buf.RGBA()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes buf to a PNG file at path.
func SavePNG(path string, buf *bitmap.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := EncodePNG(bw, buf); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// GIFEncoder accumulates frames for an animated GIF. Each frame is
// dithered to the Plan 9 palette when added, so memory use is one byte per
// pixel per frame.
type GIFEncoder struct {
	delay int // hundredths of a second
	anim  gif.GIF
}

// NewGIFEncoder creates an encoder for fps frames per second. GIF delays
// have a resolution of 10ms, so fps is rounded to the nearest delay.
func NewGIFEncoder(fps float64) *GIFEncoder {
	delay := 4
	if fps > 0 {
		delay = max(2, int(math.Round(100/fps)))
	}
	return &GIFEncoder{delay: delay}
}

// Add quantizes buf and appends it as the next frame.
func (e *GIFEncoder) Add(buf *bitmap.Buffer) {
	bounds := image.Rect(0, 0, buf.Width, buf.Height)
	p := image.NewPaletted(bounds, palette.Plan9)
	draw.FloydSteinberg.Draw(p, bounds, buf.RGBA(), image.Point{})
	e.anim.Image = append(e.anim.Image, p)
	e.anim.Delay = append(e.anim.Delay, e.delay)
}

// Len returns the number of frames added.
func (e *GIFEncoder) Len() int {
	return len(e.anim.Image)
}

// Encode writes the animation to w, looping forever.
func (e *GIFEncoder) Encode(w io.Writer) error {
	if len(e.anim.Image) == 0 {
		return fmt.Errorf("encode gif: no frames")
	}
	e.anim.LoopCount = 0
	if err := gif.EncodeAll(w, &e.anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// FrameWriter writes frames as a numbered PNG sequence into a directory.
type FrameWriter struct {
	dir   string
	next  int
	paths []string
}

// NewFrameWriter creates dir if needed.
func NewFrameWriter(dir string) (*FrameWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return &FrameWriter{dir: dir}, nil
}

// Add writes buf as the next frame and returns its path.
func (fw *FrameWriter) Add(buf *bitmap.Buffer) (string, error) {
	path := filepath.Join(fw.dir, fmt.Sprintf("frame_%05d.png", fw.next))
	if err := SavePNG(path, buf); err != nil {
		return "", err
	}
	fw.next++
	fw.paths = append(fw.paths, path)
	return path, nil
}

// Paths returns the files written so far.
func (fw *FrameWriter) Paths() []string {
	return fw.paths
}

// WriteFrames writes every buffer into dir as a PNG sequence.
func WriteFrames(dir string, frames []*bitmap.Buffer) ([]string, error) {
	fw, err := NewFrameWriter(dir)
	if err != nil {
		return nil, err
	}
	for _, f := range frames {
		if _, err := fw.Add(f); err != nil {
			return fw.Paths(), err
		}
	}
	return fw.Paths(), nil
}
