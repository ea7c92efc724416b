// Package pipeline provides the batch render pipeline for glitcher.
//
// This package implements the complete load → animate → encode pipeline used
// by the CLI and the HTTP API. By centralizing this logic, every entry point
// normalizes, seeds and caches renders the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode the source image and normalize its dimensions
//  2. Animate: Run an [engine.Scheduler] for the requested number of frames
//  3. Encode: Write the frames as a GIF, the last frame as a PNG, or keep
//     every frame for a PNG sequence
//
// Normalized images and encoded renders are cached. Rendering is
// deterministic for a given image, config, seed, frame count and format.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source: "photo.jpg",
//	    Config: cfg,
//	    Frames: 90,
//	    Format: pipeline.FormatGIF,
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("out.gif", result.Artifact, 0644)
package pipeline

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glitcher/pkg/bitmap"
	"github.com/matzehuels/glitcher/pkg/cache"
	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFrames is two seconds at DefaultFPS.
	DefaultFrames = 60

	// DefaultFPS is the playback rate of exported animations.
	DefaultFPS = 30.0

	// MaxFPS is the highest export rate. GIF delays bottom out at 20ms.
	MaxFPS = 50.0

	// DefaultFormat is the default output format.
	DefaultFormat = FormatGIF
)

// Format constants for output formats.
const (
	FormatPNG    = "png"    // last frame
	FormatGIF    = "gif"    // animated, looping
	FormatFrames = "frames" // every frame, written as a PNG sequence
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatPNG, FormatGIF, FormatFrames}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of Source and Image is used; Image wins.
	Source string `json:"source,omitempty"`
	Image  []byte `json:"-"`

	// Width and Height override the normalized dimensions when both are set.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Animate options
	Config engine.Config `json:"config"`
	Preset string        `json:"preset,omitempty"`
	Frames int           `json:"frames,omitempty"`

	// Encode options
	Format string  `json:"format,omitempty"`
	FPS    float64 `json:"fps,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run (not serialized).
	Logger *log.Logger `json:"-"`

	// Progress, if set, is called after every rendered frame.
	Progress func(done, total int) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifact is the encoded PNG or GIF. Empty for FormatFrames.
	Artifact []byte

	// Frames holds every rendered frame for FormatFrames.
	Frames []*bitmap.Buffer

	Format string
	Width  int
	Height int

	// SourceHash is the content hash of the source bytes.
	SourceHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Frames     int
	LoadTime   time.Duration
	RenderTime time.Duration
	EncodeTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ImageHit  bool // Whether the normalized image came from cache
	RenderHit bool // Whether the encoded artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, gif, frames)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Frames == 0 {
		o.Frames = DefaultFrames
	}
	if o.FPS == 0 {
		o.FPS = DefaultFPS
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	o.Config.SetDefaults()
}

// ValidateAndSetDefaults checks the options and applies defaults and the
// preset. This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" && len(o.Image) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "source image is required")
	}
	if (o.Width == 0) != (o.Height == 0) {
		return errors.New(errors.ErrCodeInvalidDimensions, "width and height must be set together")
	}
	if o.Width != 0 {
		if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
			return err
		}
	}
	o.SetDefaults()

	cfg, err := o.Config.WithPreset(o.Preset)
	if err != nil {
		return err
	}
	o.Config = cfg
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateFrameCount(o.Frames); err != nil {
		return err
	}
	if o.FPS < 1 || o.FPS > MaxFPS {
		return errors.New(errors.ErrCodeInvalidInput, "fps must be between 1 and %g, got %g", MaxFPS, o.FPS)
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ImageKeyOpts returns cache key options for the normalized image.
func (o *Options) ImageKeyOpts() cache.ImageKeyOpts {
	return cache.ImageKeyOpts{Width: o.Width, Height: o.Height}
}

// RenderKeyOpts returns cache key options for the encoded artifact.
func (o *Options) RenderKeyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		ConfigHash: o.Config.Hash(),
		Frames:     o.Frames,
		FPS:        o.FPS,
		Format:     o.Format,
		Seed:       o.Config.Seed,
	}
}
