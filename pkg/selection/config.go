package selection

// Config carries the parameters for every method. Only the fields relevant to
// the chosen method are read. Config is comparable and is used directly as
// part of the engine's cache key.
//
// Zero is a meaningful value for most fields (an edge threshold of 0 selects
// every non-flat pixel), so callers should start from [DefaultConfig] rather
// than a zero Config.
type Config struct {
	// MaxRegions caps the number of regions returned. Zero means the
	// method's own default (5 for color and brightness, 8 for edges, 1 for
	// random).
	MaxRegions int       `toml:"max_regions" json:"max_regions"`
	Intensity  Intensity `toml:"intensity" json:"intensity"`

	Color      ColorRangeConfig `toml:"color" json:"color"`
	Brightness BrightnessConfig `toml:"brightness" json:"brightness"`
	Edges      EdgeConfig       `toml:"edges" json:"edges"`
	Organic    OrganicConfig    `toml:"organic" json:"organic"`
	Combined   CombinedConfig   `toml:"combined" json:"combined"`
}

// ColorRangeConfig drives MethodColorRange.
type ColorRangeConfig struct {
	TargetHue     float64 `toml:"target_hue" json:"target_hue"`         // degrees
	HueTolerance  float64 `toml:"hue_tolerance" json:"hue_tolerance"`   // degrees
	SaturationMin float64 `toml:"saturation_min" json:"saturation_min"` // 0..1
	LightnessMin  float64 `toml:"lightness_min" json:"lightness_min"`   // 0..1
	LightnessMax  float64 `toml:"lightness_max" json:"lightness_max"`   // 0..1
	MinRegionSize int     `toml:"min_region_size" json:"min_region_size"`
}

// BrightnessConfig drives MethodBrightness.
type BrightnessConfig struct {
	Zone Zone `toml:"zone" json:"zone"`
}

// EdgeConfig drives MethodEdgeDetection.
type EdgeConfig struct {
	Threshold     float64 `toml:"threshold" json:"threshold"`
	MinRegionSize int     `toml:"min_region_size" json:"min_region_size"`
}

// OrganicConfig drives MethodOrganicShapes.
type OrganicConfig struct {
	Count      int     `toml:"count" json:"count"`
	Randomness float64 `toml:"randomness" json:"randomness"`
}

// CombinedConfig selects which methods MethodCombined unions.
type CombinedConfig struct {
	UseColor      bool `toml:"use_color" json:"use_color"`
	UseBrightness bool `toml:"use_brightness" json:"use_brightness"`
	UseEdges      bool `toml:"use_edges" json:"use_edges"`
}

// Defaults used by DefaultConfig.
const (
	DefaultTargetHue      = 180
	DefaultHueTolerance   = 30
	DefaultColorMinRegion = 100
	DefaultEdgeThreshold  = 30
	DefaultEdgeMinRegion  = 50
	DefaultShapeCount     = 3
	DefaultShapeRandom    = 0.3
)

// Upper bounds accepted for MaxRegions and Organic.Count.
const (
	MaxRegionLimit = 1000
	MaxShapeCount  = 1000
)

// Per-method region caps applied when Config.MaxRegions is zero.
const (
	defaultColorRegions      = 5
	defaultBrightnessRegions = 5
	defaultEdgeRegions       = 8
	defaultRandomRegions     = 1
)

// DefaultConfig returns the configuration the interactive UI starts with.
func DefaultConfig() Config {
	return Config{
		Intensity: IntensityMedium,
		Color: ColorRangeConfig{
			TargetHue:     DefaultTargetHue,
			HueTolerance:  DefaultHueTolerance,
			SaturationMin: 0.2,
			LightnessMin:  0.2,
			LightnessMax:  0.8,
			MinRegionSize: DefaultColorMinRegion,
		},
		Brightness: BrightnessConfig{Zone: ZoneShadows},
		Edges: EdgeConfig{
			Threshold:     DefaultEdgeThreshold,
			MinRegionSize: DefaultEdgeMinRegion,
		},
		Organic: OrganicConfig{
			Count:      DefaultShapeCount,
			Randomness: DefaultShapeRandom,
		},
		Combined: CombinedConfig{UseColor: true, UseBrightness: true, UseEdges: true},
	}
}

// regionCap returns MaxRegions or the fallback when unset.
func (c Config) regionCap(fallback int) int {
	if c.MaxRegions > 0 {
		return c.MaxRegions
	}
	return fallback
}

// withMax returns a copy of c with MaxRegions replaced.
func (c Config) withMax(n int) Config {
	c.MaxRegions = n
	return c
}
