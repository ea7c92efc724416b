package engine

import (
	"encoding/json"

	"github.com/matzehuels/glitcher/pkg/cache"
	"github.com/matzehuels/glitcher/pkg/errors"
	"github.com/matzehuels/glitcher/pkg/filter"
	"github.com/matzehuels/glitcher/pkg/selection"
	"github.com/matzehuels/glitcher/pkg/transform"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTargetFPS is the frame rate Tick limits to.
	DefaultTargetFPS = 60.0

	// DefaultSortInterval runs the pixel sort on every fifth frame. Sorting
	// every frame collapses the image within a second.
	DefaultSortInterval = 5

	DefaultSpeed           = 2
	DefaultSwirlStrength   = 0.06
	DefaultColorOffset     = 20
	DefaultColorIntensity  = 50.0
	DefaultFilterIntensity = 50.0

	// DefaultSeed keeps renders reproducible when no seed is given.
	DefaultSeed = uint64(42)

	// MaxSpeed bounds the per-frame shift distance.
	MaxSpeed = 50
)

// =============================================================================
// Config
// =============================================================================

// Config is everything that controls the animation. It decodes from TOML
// (see pkg/config) and JSON (HTTP API); enums are written by name.
type Config struct {
	// Selection
	Method    selection.Method `toml:"method" json:"method"`
	Selection selection.Config `toml:"selection" json:"selection"`
	Manual    bool             `toml:"manual" json:"manual"`

	// Destructive effects
	Direction      transform.DirectionMode `toml:"direction" json:"direction"`
	Speed          int                     `toml:"speed" json:"speed"` // px per frame
	Spiral         transform.SpiralMode    `toml:"spiral" json:"spiral"`
	Turn           transform.Turn          `toml:"turn" json:"turn"`
	SwirlStrength  float64                 `toml:"swirl_strength" json:"swirl_strength"` // radians per frame at the rim
	Slice          transform.SliceMode     `toml:"slice" json:"slice"`
	ColorOffset    int                     `toml:"color_offset" json:"color_offset"`
	PixelSort      transform.SortMode      `toml:"pixel_sort" json:"pixel_sort"`
	SortInterval   int                     `toml:"sort_interval" json:"sort_interval"`
	ColorEffect    transform.ColorEffect   `toml:"color_effect" json:"color_effect"`
	ColorIntensity float64                 `toml:"color_intensity" json:"color_intensity"`
	Color          transform.ColorOptions  `toml:"color" json:"color"`

	// Non-destructive filter
	Filter          filter.Kind    `toml:"filter" json:"filter"`
	FilterIntensity float64        `toml:"filter_intensity" json:"filter_intensity"`
	FilterOptions   filter.Options `toml:"filter_options" json:"filter_options"`

	// Clump lifetimes in frames, inclusive.
	MinLifetime int `toml:"min_lifetime" json:"min_lifetime"`
	MaxLifetime int `toml:"max_lifetime" json:"max_lifetime"`

	TargetFPS float64 `toml:"target_fps" json:"target_fps"`
	Seed      uint64  `toml:"seed" json:"seed"`
}

// DefaultConfig returns the configuration a new session starts with:
// random selections shifted along each clump's own direction, every other
// effect off.
func DefaultConfig() Config {
	return Config{
		Method:          selection.MethodRandom,
		Selection:       selection.DefaultConfig(),
		Direction:       transform.DirectionRandom,
		Speed:           DefaultSpeed,
		Turn:            transform.TurnCW,
		SwirlStrength:   DefaultSwirlStrength,
		ColorOffset:     DefaultColorOffset,
		SortInterval:    DefaultSortInterval,
		ColorIntensity:  DefaultColorIntensity,
		FilterIntensity: DefaultFilterIntensity,
		FilterOptions:   filter.DefaultOptions(),
		MinLifetime:     selection.DefaultMinLifetime,
		MaxLifetime:     selection.DefaultMaxLifetime,
		TargetFPS:       DefaultTargetFPS,
		Seed:            DefaultSeed,
	}
}

// SetDefaults fills zero-valued timing fields. Effect fields are left alone
// because their zero values (off, 0) are meaningful.
func (c *Config) SetDefaults() {
	if c.SortInterval <= 0 {
		c.SortInterval = DefaultSortInterval
	}
	if c.MinLifetime <= 0 {
		c.MinLifetime = selection.DefaultMinLifetime
	}
	if c.MaxLifetime <= 0 {
		c.MaxLifetime = selection.DefaultMaxLifetime
	}
	if c.TargetFPS <= 0 {
		c.TargetFPS = DefaultTargetFPS
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case !c.Method.Valid():
		return errors.New(errors.ErrCodeInvalidMethod, "unknown selection method %d", c.Method)
	case c.Speed < 0 || c.Speed > MaxSpeed:
		return errors.New(errors.ErrCodeInvalidConfig, "speed must be between 0 and %d, got %d", MaxSpeed, c.Speed)
	case c.SwirlStrength < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "swirl strength must not be negative")
	case c.ColorOffset < 0 || c.ColorOffset > 255:
		return errors.New(errors.ErrCodeInvalidConfig, "color offset must be between 0 and 255, got %d", c.ColorOffset)
	case c.ColorIntensity < 0 || c.ColorIntensity > 100:
		return errors.New(errors.ErrCodeInvalidConfig, "color intensity must be between 0 and 100, got %g", c.ColorIntensity)
	case c.FilterIntensity < 0 || c.FilterIntensity > 100:
		return errors.New(errors.ErrCodeInvalidConfig, "filter intensity must be between 0 and 100, got %g", c.FilterIntensity)
	case c.Selection.MaxRegions < 0 || c.Selection.MaxRegions > selection.MaxRegionLimit:
		return errors.New(errors.ErrCodeInvalidConfig, "max regions must be between 0 and %d, got %d", selection.MaxRegionLimit, c.Selection.MaxRegions)
	case c.Selection.Organic.Count < 0 || c.Selection.Organic.Count > selection.MaxShapeCount:
		return errors.New(errors.ErrCodeInvalidConfig, "organic shape count must be between 0 and %d, got %d", selection.MaxShapeCount, c.Selection.Organic.Count)
	case c.MinLifetime > c.MaxLifetime:
		return errors.New(errors.ErrCodeInvalidConfig, "min lifetime %d exceeds max lifetime %d", c.MinLifetime, c.MaxLifetime)
	case c.TargetFPS < 0 || c.TargetFPS > 240:
		return errors.New(errors.ErrCodeInvalidConfig, "target fps must be between 0 and 240, got %g", c.TargetFPS)
	}
	return nil
}

// Hash returns a content hash of the configuration, used in render cache
// keys.
func (c Config) Hash() string {
	data, _ := json.Marshal(c)
	return cache.Hash(data)
}
