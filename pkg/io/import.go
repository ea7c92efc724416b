package io

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	// Extra decoders beyond the ones imaging registers.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/glitcher/pkg/bitmap"
	"github.com/matzehuels/glitcher/pkg/errors"
)

// Load reads the image at path and normalizes it with [Normalize].
func Load(path string) (*bitmap.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// Decode reads an image from r, applies its EXIF orientation and normalizes
// it with [Normalize]. Decode does not close r.
func Decode(r io.Reader) (*bitmap.Buffer, error) {
	img, err := decode(r)
	if err != nil {
		return nil, err
	}
	return Normalize(img), nil
}

// DecodeRaw is Decode without resizing. Images larger than
// errors.MaxPixels are rejected.
func DecodeRaw(r io.Reader) (*bitmap.Buffer, error) {
	img, err := decode(r)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if err := errors.ValidateDimensions(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	return ToBuffer(img), nil
}

func decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode image")
	}
	if b := img.Bounds(); b.Empty() {
		return nil, errors.New(errors.ErrCodeInvalidDimensions, "image is empty")
	}
	return img, nil
}

// Normalize resizes img to its [OptimalDimensions] with a Lanczos filter
// and converts it to a buffer.
func Normalize(img image.Image) *bitmap.Buffer {
	b := img.Bounds()
	w, h := OptimalDimensions(b.Dx(), b.Dy())
	if w == b.Dx() && h == b.Dy() {
		return ToBuffer(img)
	}
	return ToBuffer(imaging.Resize(img, w, h, imaging.Lanczos))
}

// ToBuffer converts any image to an RGBA buffer anchored at the origin.
func ToBuffer(img image.Image) *bitmap.Buffer {
	if rgba, ok := img.(*image.RGBA); ok {
		return bitmap.FromRGBA(rgba)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return bitmap.FromRGBA(rgba)
}
