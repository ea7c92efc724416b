package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/glitcher/pkg/bitmap"
	"github.com/matzehuels/glitcher/pkg/cache"
	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/errors"
	pkgio "github.com/matzehuels/glitcher/pkg/io"
	"github.com/matzehuels/glitcher/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases the underlying cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete load → animate → encode pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	logger := r.loggerFor(opts)
	result := &Result{Format: opts.Format}

	// Stage 1: Load
	loadStart := time.Now()
	buf, sourceHash, imageHit, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.SourceHash = sourceHash
	result.Width, result.Height = buf.Width, buf.Height
	result.Stats.LoadTime = time.Since(loadStart)
	result.CacheInfo.ImageHit = imageHit

	logger.Info("loaded image",
		"width", buf.Width,
		"height", buf.Height,
		"cached", imageHit,
		"duration", result.Stats.LoadTime)

	// Stage 2 and 3: Animate and encode. Frame sequences are never cached;
	// they are written to disk by the caller.
	imageKey := r.Keyer.ImageKey(sourceHash, opts.ImageKeyOpts())
	renderKey := r.Keyer.RenderKey(imageKey, opts.RenderKeyOpts())
	if opts.Format != FormatFrames && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, renderKey); err == nil && hit {
			result.Artifact = data
			result.Stats.Frames = opts.Frames
			result.CacheInfo.RenderHit = true
			logger.Info("render cache hit", "format", opts.Format, "bytes", len(data))
			return result, nil
		}
	}

	renderStart := time.Now()
	frames, err := r.Render(ctx, buf, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.Frames = len(frames)

	logger.Info("rendered frames",
		"frames", len(frames),
		"duration", result.Stats.RenderTime)

	if opts.Format == FormatFrames {
		result.Frames = frames
		return result, nil
	}

	encodeStart := time.Now()
	data, err := Encode(frames, opts.Format, opts.FPS)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Artifact = data
	result.Stats.EncodeTime = time.Since(encodeStart)

	r.store(ctx, renderKey, data)
	return result, nil
}

// Load reads and normalizes the source image, consulting the image cache.
// It returns the buffer, the content hash of the source bytes and whether the
// normalized image came from cache.
func (r *Runner) Load(ctx context.Context, opts Options) (*bitmap.Buffer, string, bool, error) {
	source := opts.Source
	if len(opts.Image) > 0 {
		source = "upload"
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	buf, hash, hit, err := r.load(ctx, opts)
	w, h := 0, 0
	if buf != nil {
		w, h = buf.Width, buf.Height
	}
	hooks.OnLoadComplete(ctx, source, w, h, time.Since(start), err)
	return buf, hash, hit, err
}

func (r *Runner) load(ctx context.Context, opts Options) (*bitmap.Buffer, string, bool, error) {
	data := opts.Image
	if len(data) == 0 {
		var err error
		data, err = os.ReadFile(opts.Source)
		if os.IsNotExist(err) {
			return nil, "", false, errors.New(errors.ErrCodeFileNotFound, "image not found: %s", opts.Source)
		}
		if err != nil {
			return nil, "", false, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", opts.Source)
		}
	}
	sourceHash := cache.Hash(data)
	key := r.Keyer.ImageKey(sourceHash, opts.ImageKeyOpts())

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if buf, err := pkgio.DecodeRaw(bytes.NewReader(cached)); err == nil {
				return buf, sourceHash, true, nil
			}
		}
	}

	buf, err := decodeSized(data, opts.Width, opts.Height)
	if err != nil {
		return nil, "", false, err
	}
	var png bytes.Buffer
	if err := pkgio.EncodePNG(&png, buf); err == nil {
		r.store(ctx, key, png.Bytes())
	}
	return buf, sourceHash, false, nil
}

// decodeSized decodes data and resizes it to width×height, or to its optimal
// dimensions when no size is given.
func decodeSized(data []byte, width, height int) (*bitmap.Buffer, error) {
	if width == 0 || height == 0 {
		return pkgio.Decode(bytes.NewReader(data))
	}
	raw, err := pkgio.DecodeRaw(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if raw.Width == width && raw.Height == height {
		return raw, nil
	}
	return pkgio.ToBuffer(imaging.Resize(raw.RGBA(), width, height, imaging.Lanczos)), nil
}

// Render animates buf for opts.Frames frames. Only the last frame is kept
// for FormatPNG.
func (r *Runner) Render(ctx context.Context, buf *bitmap.Buffer, opts Options) ([]*bitmap.Buffer, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Frames, opts.Format)
	start := time.Now()

	frames, err := r.render(ctx, buf, opts)
	hooks.OnRenderComplete(ctx, opts.Frames, opts.Format, time.Since(start), err)
	return frames, err
}

func (r *Runner) render(ctx context.Context, buf *bitmap.Buffer, opts Options) ([]*bitmap.Buffer, error) {
	s := engine.New(opts.Config, r.loggerFor(opts))
	if err := s.LoadImage(buf); err != nil {
		return nil, err
	}

	if opts.Format == FormatPNG {
		var last *bitmap.Buffer
		keep := engine.SinkFunc(func(_ context.Context, f engine.Frame) error {
			if last == nil {
				last = f.Image.Clone()
			} else {
				last.CopyFrom(f.Image)
			}
			return nil
		})
		if err := s.Render(ctx, opts.Frames, withProgress(keep, opts)); err != nil {
			return nil, err
		}
		return []*bitmap.Buffer{last}, nil
	}

	mem := &engine.MemorySink{Frames: make([]*bitmap.Buffer, 0, opts.Frames)}
	if err := s.Render(ctx, opts.Frames, withProgress(mem, opts)); err != nil {
		return nil, err
	}
	return mem.Frames, nil
}

func withProgress(sink engine.Sink, opts Options) engine.Sink {
	if opts.Progress == nil {
		return sink
	}
	done := 0
	return engine.MultiSink(sink, engine.SinkFunc(func(context.Context, engine.Frame) error {
		done++
		opts.Progress(done, opts.Frames)
		return nil
	}))
}

// Encode serializes rendered frames. FormatPNG writes the last frame and
// FormatGIF a looping animation at fps.
func Encode(frames []*bitmap.Buffer, format string, fps float64) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no frames to encode")
	}
	var out bytes.Buffer
	if err := encodeTo(&out, frames, format, fps); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func encodeTo(w io.Writer, frames []*bitmap.Buffer, format string, fps float64) error {
	switch format {
	case FormatPNG:
		return pkgio.EncodePNG(w, frames[len(frames)-1])
	case FormatGIF:
		enc := pkgio.NewGIFEncoder(fps)
		for _, f := range frames {
			enc.Add(f)
		}
		return enc.Encode(w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "cannot encode format %q", format)
	}
}

// store writes to the cache, retrying transient backend errors. Failures are
// logged and otherwise ignored; the render result is still valid.
func (r *Runner) store(ctx context.Context, key string, data []byte) {
	err := cache.DefaultBackoff.Do(ctx, func() error {
		return r.Cache.Set(ctx, key, data, cache.DefaultTTL)
	})
	if err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	}
}

func (r *Runner) loggerFor(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
