package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glitcher/pkg/cache"
	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/errors"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 3), uint8(y * 5), 128, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{Level: log.ErrorLevel})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"gif", false},
		{"frames", false},
		{"GIF", true}, // case-sensitive
		{"mp4", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsSetDefaults(t *testing.T) {
	opts := Options{}
	opts.SetDefaults()

	if opts.Frames != DefaultFrames {
		t.Errorf("Frames = %d, want %d", opts.Frames, DefaultFrames)
	}
	if opts.FPS != DefaultFPS {
		t.Errorf("FPS = %g, want %g", opts.FPS, DefaultFPS)
	}
	if opts.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", opts.Format, DefaultFormat)
	}
	if opts.Config.TargetFPS != engine.DefaultTargetFPS {
		t.Errorf("Config.TargetFPS = %g, want %g", opts.Config.TargetFPS, engine.DefaultTargetFPS)
	}
}

func TestOptionsValidate(t *testing.T) {
	img := []byte{1}
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no source", Options{}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Image: img, Format: "bmp"}, errors.ErrCodeInvalidFormat},
		{"too many frames", Options{Image: img, Frames: 5000}, errors.ErrCodeInvalidInput},
		{"fps too high", Options{Image: img, FPS: 120}, errors.ErrCodeInvalidInput},
		{"width only", Options{Image: img, Width: 100}, errors.ErrCodeInvalidDimensions},
		{"huge size", Options{Image: img, Width: 4000, Height: 4000}, errors.ErrCodeInvalidDimensions},
		{"unknown preset", Options{Image: img, Preset: "sparkle"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAppliesPreset(t *testing.T) {
	opts := Options{Image: []byte{1}, Config: engine.DefaultConfig(), Preset: "rainbow-sort"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	p, _ := engine.LookupPreset("rainbow-sort")
	if opts.Config.PixelSort != p.PixelSort {
		t.Errorf("PixelSort = %v, want %v", opts.Config.PixelSort, p.PixelSort)
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{Image: []byte{1}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	// A second call must not re-validate fields changed afterwards.
	opts.Format = "bogus"
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call: %v", err)
	}
}

func TestExecuteGIFCachesRender(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	r := NewRunner(mem, nil, quietLogger())

	opts := Options{
		Image:  testPNG(t, 96, 64),
		Config: engine.DefaultConfig(),
		Frames: 6,
		Format: FormatGIF,
		Width:  64,
		Height: 64,
	}
	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.RenderHit || first.CacheInfo.ImageHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	anim, err := gif.DecodeAll(bytes.NewReader(first.Artifact))
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	if len(anim.Image) != 6 {
		t.Errorf("gif frames = %d, want 6", len(anim.Image))
	}
	if first.Width != 64 || first.Height != 64 {
		t.Errorf("size = %dx%d, want 64x64", first.Width, first.Height)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute (cached): %v", err)
	}
	if !second.CacheInfo.RenderHit || !second.CacheInfo.ImageHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifact, second.Artifact) {
		t.Error("cached artifact differs from the rendered one")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute (refresh): %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh run hit the render cache")
	}
	if !bytes.Equal(first.Artifact, third.Artifact) {
		t.Error("re-render with the same seed produced different bytes")
	}
}

func TestExecutePNGAndFrames(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, quietLogger())
	src := testPNG(t, 40, 30)

	res, err := r.Execute(ctx, Options{Image: src, Frames: 4, Format: FormatPNG, Width: 32, Height: 24})
	if err != nil {
		t.Fatalf("Execute png: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(res.Artifact))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("png size = %dx%d, want 32x24", b.Dx(), b.Dy())
	}

	res, err = r.Execute(ctx, Options{Image: src, Frames: 5, Format: FormatFrames, Width: 40, Height: 30})
	if err != nil {
		t.Fatalf("Execute frames: %v", err)
	}
	if len(res.Frames) != 5 || res.Artifact != nil {
		t.Errorf("frames result = %d frames, %d artifact bytes; want 5, 0", len(res.Frames), len(res.Artifact))
	}
	if res.Frames[0] == res.Frames[4] {
		t.Error("frames share one buffer")
	}
}

func TestExecuteProgress(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	var calls, last, total int
	opts := Options{
		Image: testPNG(t, 32, 32), Frames: 6, Format: FormatPNG, Width: 32, Height: 32,
		Progress: func(done, n int) {
			calls++
			last, total = done, n
		},
	}
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if calls != 6 || last != 6 || total != 6 {
		t.Errorf("progress calls=%d last=%d total=%d, want 6 6 6", calls, last, total)
	}
}

func TestExecuteMissingSource(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	_, err := r.Execute(context.Background(), Options{Source: filepath.Join(t.TempDir(), "nope.png")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Execute = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, quietLogger())
	if _, err := r.Execute(ctx, Options{Image: testPNG(t, 16, 16), Frames: 3, Width: 16, Height: 16}); err == nil {
		t.Error("Execute with canceled context succeeded")
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode(nil, FormatGIF, 30); err == nil {
		t.Error("Encode(nil) succeeded")
	}
}
