package engine

import (
	"slices"

	"github.com/matzehuels/glitcher/pkg/errors"
	"github.com/matzehuels/glitcher/pkg/selection"
	"github.com/matzehuels/glitcher/pkg/transform"
)

// Preset is a named combination of destructive effects. Applying a preset
// replaces the effect fields of a Config and leaves selection, filter and
// timing settings untouched.
type Preset struct {
	Name        string
	Title       string
	Description string

	Direction      transform.DirectionMode
	Spiral         transform.SpiralMode
	Slice          transform.SliceMode
	PixelSort      transform.SortMode
	ColorEffect    transform.ColorEffect
	Intensity      selection.Intensity
	Speed          int
	SwirlStrength  float64
	ColorOffset    int
	ColorIntensity float64
}

var presets = []Preset{
	{
		Name:           "vintage-tv",
		Title:          "Vintage TV",
		Description:    "rolling picture with horizontal tears and faded color",
		Direction:      transform.DirectionDown,
		Spiral:         transform.SpiralOff,
		Slice:          transform.SliceHorizontal,
		PixelSort:      transform.SortOff,
		ColorEffect:    transform.ColorVintage,
		Intensity:      selection.IntensityMedium,
		Speed:          2,
		SwirlStrength:  0.03,
		ColorOffset:    15,
		ColorIntensity: 70,
	},
	{
		Name:           "digital-chaos",
		Title:          "Digital Chaos",
		Description:    "jittering swirls, double slices and split channels",
		Direction:      transform.DirectionJitter,
		Spiral:         transform.SpiralRandom,
		Slice:          transform.SliceBoth,
		PixelSort:      transform.SortRandomLines,
		ColorEffect:    transform.ColorChromaticAberration,
		Intensity:      selection.IntensityExtraLarge,
		Speed:          4,
		SwirlStrength:  0.12,
		ColorOffset:    35,
		ColorIntensity: 80,
	},
	{
		Name:           "rainbow-sort",
		Title:          "Rainbow Sort",
		Description:    "columns sorted by hue under a rotating palette",
		Direction:      transform.DirectionOff,
		Spiral:         transform.SpiralOff,
		Slice:          transform.SliceOff,
		PixelSort:      transform.SortColumnHue,
		ColorEffect:    transform.ColorHueShift,
		Intensity:      selection.IntensityLarge,
		Speed:          1,
		SwirlStrength:  0.06,
		ColorOffset:    10,
		ColorIntensity: 90,
	},
	{
		Name:           "cyberpunk",
		Title:          "Cyberpunk",
		Description:    "rightward drift, clockwise swirls and diagonal sorting",
		Direction:      transform.DirectionRight,
		Spiral:         transform.SpiralCW,
		Slice:          transform.SliceVertical,
		PixelSort:      transform.SortDiagonal,
		ColorEffect:    transform.ColorChromaticAberration,
		Intensity:      selection.IntensityLarge,
		Speed:          3,
		SwirlStrength:  0.08,
		ColorOffset:    25,
		ColorIntensity: 75,
	},
	{
		Name:           "film-burn",
		Title:          "Film Burn",
		Description:    "rising smears that unwind from their centers",
		Direction:      transform.DirectionUp,
		Spiral:         transform.SpiralInsideOut,
		Slice:          transform.SliceHorizontal,
		PixelSort:      transform.SortRowBrightness,
		ColorEffect:    transform.ColorVintage,
		Intensity:      selection.IntensityMedium,
		Speed:          2,
		SwirlStrength:  0.04,
		ColorOffset:    20,
		ColorIntensity: 60,
	},
}

// Presets returns the built-in presets in display order.
func Presets() []Preset {
	return slices.Clone(presets)
}

// LookupPreset finds a built-in preset by name.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Apply returns cfg with the preset's effects.
func (p Preset) Apply(cfg Config) Config {
	cfg.Direction = p.Direction
	cfg.Spiral = p.Spiral
	cfg.Slice = p.Slice
	cfg.PixelSort = p.PixelSort
	cfg.ColorEffect = p.ColorEffect
	cfg.Selection.Intensity = p.Intensity
	cfg.Speed = p.Speed
	cfg.SwirlStrength = p.SwirlStrength
	cfg.ColorOffset = p.ColorOffset
	cfg.ColorIntensity = p.ColorIntensity
	return cfg
}

// WithPreset applies the named preset. An empty name returns c unchanged.
func (c Config) WithPreset(name string) (Config, error) {
	if name == "" {
		return c, nil
	}
	p, ok := LookupPreset(name)
	if !ok {
		return c, errors.New(errors.ErrCodeInvalidConfig, "unknown preset: %s", name)
	}
	return p.Apply(c), nil
}
