package filter

import "github.com/matzehuels/glitcher/pkg/bitmap"

// RGB is an opaque color used by filter options. It decodes from a
// three-element TOML or JSON array.
type RGB [3]uint8

// Tone is a per-channel color-grading offset in percent (-100 to 100).
type Tone struct {
	R float64 `toml:"r" json:"r"`
	G float64 `toml:"g" json:"g"`
	B float64 `toml:"b" json:"b"`
}

// Options holds the per-family parameters. Zero values are used as given, so
// start from DefaultOptions and override.
type Options struct {
	Emboss       EmbossOptions       `toml:"emboss" json:"emboss"`
	Edge         EdgeOptions         `toml:"edge" json:"edge"`
	MotionBlur   MotionBlurOptions   `toml:"motion_blur" json:"motionBlur"`
	Vignette     VignetteOptions     `toml:"vignette" json:"vignette"`
	Halftone     HalftoneOptions     `toml:"halftone" json:"halftone"`
	Liquify      LiquifyOptions      `toml:"liquify" json:"liquify"`
	ColorGrading ColorGradingOptions `toml:"color_grading" json:"colorGrading"`
	Noise        NoiseOptions        `toml:"noise" json:"noise"`
	Vintage      VintageOptions      `toml:"vintage" json:"vintage"`
	Cyberpunk    CyberpunkOptions    `toml:"cyberpunk" json:"cyberpunk"`
	Artistic     ArtisticOptions     `toml:"artistic" json:"artistic"`
	Atmospheric  AtmosphericOptions  `toml:"atmospheric" json:"atmospheric"`
	Experimental ExperimentalOptions `toml:"experimental" json:"experimental"`
}

type EmbossOptions struct {
	Angle float64     `toml:"angle" json:"angle"` // degrees
	Depth float64     `toml:"depth" json:"depth"`
	Blend EmbossBlend `toml:"blend" json:"blend"`
}

type EdgeOptions struct {
	Method     EdgeMethod     `toml:"method" json:"method"`
	Threshold  float64        `toml:"threshold" json:"threshold"`
	Color      RGB            `toml:"color" json:"color"`
	Background EdgeBackground `toml:"background" json:"background"`
}

type MotionBlurOptions struct {
	Direction BlurDirection `toml:"direction" json:"direction"`
	Distance  float64       `toml:"distance" json:"distance"`
	Angle     float64       `toml:"angle" json:"angle"` // degrees, BlurCustom only
	Fade      BlurFade      `toml:"fade" json:"fade"`
	Quality   BlurQuality   `toml:"quality" json:"quality"`
	Radial    RadialBlur    `toml:"radial" json:"radial"`
}

type VignetteOptions struct {
	Shape    VignetteShape `toml:"shape" json:"shape"`
	Size     float64       `toml:"size" json:"size"`         // percent
	Softness float64       `toml:"softness" json:"softness"` // percent
	CenterX  float64       `toml:"center_x" json:"centerX"`  // percent of width
	CenterY  float64       `toml:"center_y" json:"centerY"`  // percent of height
	Color    RGB           `toml:"color" json:"color"`
}

type HalftoneOptions struct {
	DotSize   int           `toml:"dot_size" json:"dotSize"`
	Pattern   DotPattern    `toml:"pattern" json:"pattern"`
	Angle     float64       `toml:"angle" json:"angle"` // degrees
	Threshold float64       `toml:"threshold" json:"threshold"`
	ColorMode HalftoneColor `toml:"color_mode" json:"colorMode"`
	Duotone   [2]RGB        `toml:"duotone" json:"duotone"`
}

type LiquifyOptions struct {
	Warp     WarpType `toml:"warp" json:"warp"`
	Coverage float64  `toml:"coverage" json:"coverage"` // percent of the half-diagonal
	Strength float64  `toml:"strength" json:"strength"` // percent
}

type ColorGradingOptions struct {
	Shadows     Tone    `toml:"shadows" json:"shadows"`
	Midtones    Tone    `toml:"midtones" json:"midtones"`
	Highlights  Tone    `toml:"highlights" json:"highlights"`
	Temperature float64 `toml:"temperature" json:"temperature"`
	Tint        float64 `toml:"tint" json:"tint"`
	Vibrance    float64 `toml:"vibrance" json:"vibrance"`
	Saturation  float64 `toml:"saturation" json:"saturation"`
}

type NoiseOptions struct {
	Type   NoiseType `toml:"type" json:"type"`
	Amount float64   `toml:"amount" json:"amount"` // percent
	Size   float64   `toml:"size" json:"size"`
	Color  bool      `toml:"color" json:"color"`
}

type VintageOptions struct {
	Grain float64 `toml:"grain" json:"grain"` // percent
}

type CyberpunkOptions struct {
	GlowRadius       float64 `toml:"glow_radius" json:"glowRadius"`
	DigitalNoise     float64 `toml:"digital_noise" json:"digitalNoise"`
	GradientStrength float64 `toml:"gradient_strength" json:"gradientStrength"`
	RainDensity      float64 `toml:"rain_density" json:"rainDensity"`
	FlickerRate      float64 `toml:"flicker_rate" json:"flickerRate"`
	ScanSpeed        float64 `toml:"scan_speed" json:"scanSpeed"`
}

type ArtisticOptions struct {
	OilPainting  OilPaintingOptions  `toml:"oil_painting" json:"oilPainting"`
	Watercolor   WatercolorOptions   `toml:"watercolor" json:"watercolor"`
	PencilSketch PencilSketchOptions `toml:"pencil_sketch" json:"pencilSketch"`
	Mosaic       MosaicOptions       `toml:"mosaic" json:"mosaic"`
	StainedGlass StainedGlassOptions `toml:"stained_glass" json:"stainedGlass"`
	ComicBook    ComicBookOptions    `toml:"comic_book" json:"comicBook"`
	Crosshatch   CrosshatchOptions   `toml:"crosshatch" json:"crosshatch"`
	Pointillism  PointillismOptions  `toml:"pointillism" json:"pointillism"`
}

type OilPaintingOptions struct {
	BrushSize       int     `toml:"brush_size" json:"brushSize"`
	StrokeLength    int     `toml:"stroke_length" json:"strokeLength"`
	TextureStrength float64 `toml:"texture_strength" json:"textureStrength"`
	ColorSmearing   float64 `toml:"color_smearing" json:"colorSmearing"`
}

type WatercolorOptions struct {
	Bleed          float64 `toml:"bleed" json:"bleed"`
	PigmentDensity float64 `toml:"pigment_density" json:"pigmentDensity"`
	EdgeDarkening  float64 `toml:"edge_darkening" json:"edgeDarkening"`
	PaperTexture   float64 `toml:"paper_texture" json:"paperTexture"`
}

type PencilSketchOptions struct {
	HatchDensity    float64 `toml:"hatch_density" json:"hatchDensity"`
	EdgeThreshold   float64 `toml:"edge_threshold" json:"edgeThreshold"`
	GraphiteShading float64 `toml:"graphite_shading" json:"graphiteShading"`
}

type MosaicOptions struct {
	TileSize       int     `toml:"tile_size" json:"tileSize"`
	Grout          int     `toml:"grout" json:"grout"`
	ColorVariation float64 `toml:"color_variation" json:"colorVariation"`
	GroutColor     RGB     `toml:"grout_color" json:"groutColor"`
}

type StainedGlassOptions struct {
	CellSize        int     `toml:"cell_size" json:"cellSize"`
	BorderThickness int     `toml:"border_thickness" json:"borderThickness"`
	BorderColor     RGB     `toml:"border_color" json:"borderColor"`
	LightRefraction float64 `toml:"light_refraction" json:"lightRefraction"`
}

type ComicBookOptions struct {
	InkStrength   float64 `toml:"ink_strength" json:"inkStrength"`
	ColorLevels   int     `toml:"color_levels" json:"colorLevels"`
	HalftoneDot   int     `toml:"halftone_dot" json:"halftoneDot"`
	EdgeThreshold float64 `toml:"edge_threshold" json:"edgeThreshold"`
}

type CrosshatchOptions struct {
	LineSpacing    float64 `toml:"line_spacing" json:"lineSpacing"`
	LineThickness  float64 `toml:"line_thickness" json:"lineThickness"`
	AngleVariation float64 `toml:"angle_variation" json:"angleVariation"`
	Darkness       float64 `toml:"darkness" json:"darkness"`
	Background     float64 `toml:"background" json:"background"`
}

type PointillismOptions struct {
	DotSize        int      `toml:"dot_size" json:"dotSize"`
	Density        float64  `toml:"density" json:"density"`
	ColorVariation float64  `toml:"color_variation" json:"colorVariation"`
	Shape          DotShape `toml:"shape" json:"shape"`
	Background     float64  `toml:"background" json:"background"`
}

type AtmosphericOptions struct {
	FogDensity      float64 `toml:"fog_density" json:"fogDensity"`
	FogColor        RGB     `toml:"fog_color" json:"fogColor"`
	RainDensity     float64 `toml:"rain_density" json:"rainDensity"`
	RainLength      int     `toml:"rain_length" json:"rainLength"`
	SnowDensity     float64 `toml:"snow_density" json:"snowDensity"`
	SnowSize        int     `toml:"snow_size" json:"snowSize"`
	DustDensity     float64 `toml:"dust_density" json:"dustDensity"`
	DustColor       RGB     `toml:"dust_color" json:"dustColor"`
	Distortion      float64 `toml:"distortion" json:"distortion"`
	BubbleDensity   float64 `toml:"bubble_density" json:"bubbleDensity"`
	LightningChance float64 `toml:"lightning_chance" json:"lightningChance"`
}

type ExperimentalOptions struct {
	Segments      int        `toml:"segments" json:"segments"`
	Iterations    int        `toml:"iterations" json:"iterations"`
	Zoom          float64    `toml:"zoom" json:"zoom"`
	TunnelSpeed   float64    `toml:"tunnel_speed" json:"tunnelSpeed"`
	WarpStrength  float64    `toml:"warp_strength" json:"warpStrength"`
	ShiftAmount   float64    `toml:"shift_amount" json:"shiftAmount"`
	BendStrength  float64    `toml:"bend_strength" json:"bendStrength"`
	Mirror        MirrorType `toml:"mirror" json:"mirror"`
	GlitchDensity float64    `toml:"glitch_density" json:"glitchDensity"`
}

// DefaultOptions returns the parameters every family uses out of the box.
func DefaultOptions() Options {
	return Options{
		Emboss: EmbossOptions{Angle: 45, Depth: 1, Blend: EmbossGray},
		Edge: EdgeOptions{
			Method:    EdgeSobel,
			Threshold: 50,
			Color:     RGB{255, 255, 255},
		},
		MotionBlur: MotionBlurOptions{Distance: 10},
		Vignette:   VignetteOptions{Size: 50, Softness: 50, CenterX: 50, CenterY: 50},
		Halftone: HalftoneOptions{
			DotSize:   4,
			Threshold: 128,
			Duotone:   [2]RGB{{0, 0, 0}, {255, 255, 255}},
		},
		Liquify: LiquifyOptions{Coverage: 100, Strength: 50},
		Noise:   NoiseOptions{Amount: 50, Size: 1, Color: true},
		Vintage: VintageOptions{Grain: 30},
		Cyberpunk: CyberpunkOptions{
			GlowRadius:       3,
			DigitalNoise:     0.1,
			GradientStrength: 0.5,
			RainDensity:      0.05,
			FlickerRate:      0.1,
			ScanSpeed:        1,
		},
		Artistic: ArtisticOptions{
			OilPainting:  OilPaintingOptions{BrushSize: 5, StrokeLength: 15, TextureStrength: 0.3, ColorSmearing: 0.5},
			Watercolor:   WatercolorOptions{Bleed: 0.5, PigmentDensity: 0.6, EdgeDarkening: 0.3, PaperTexture: 0.1},
			PencilSketch: PencilSketchOptions{HatchDensity: 0.3, EdgeThreshold: 50, GraphiteShading: 0.5},
			Mosaic:       MosaicOptions{TileSize: 10, Grout: 1, ColorVariation: 0.1},
			StainedGlass: StainedGlassOptions{CellSize: 20, BorderThickness: 2, BorderColor: RGB{10, 10, 10}, LightRefraction: 0.1},
			ComicBook:    ComicBookOptions{InkStrength: 0.7, ColorLevels: 4, EdgeThreshold: 60},
			Crosshatch:   CrosshatchOptions{LineSpacing: 6, LineThickness: 1, AngleVariation: 0.1, Darkness: 0.7, Background: 0.95},
			Pointillism:  PointillismOptions{DotSize: 4, Density: 0.6, ColorVariation: 0.2, Background: 0.95},
		},
		Atmospheric: AtmosphericOptions{
			FogDensity:      0.3,
			FogColor:        RGB{200, 200, 220},
			RainDensity:     0.1,
			RainLength:      20,
			SnowDensity:     0.05,
			SnowSize:        2,
			DustDensity:     0.02,
			DustColor:       RGB{180, 160, 120},
			Distortion:      2,
			BubbleDensity:   0.01,
			LightningChance: 0.1,
		},
		Experimental: ExperimentalOptions{
			Segments:      6,
			Iterations:    5,
			Zoom:          1,
			TunnelSpeed:   1,
			WarpStrength:  20,
			ShiftAmount:   10,
			BendStrength:  0.1,
			Mirror:        MirrorQuad,
			GlitchDensity: 0.05,
		},
	}
}

// =============================================================================
// Option enums
// =============================================================================

type EmbossBlend uint8

const (
	EmbossGray EmbossBlend = iota
	EmbossColor
	EmbossOverlay
)

type EdgeMethod uint8

const (
	EdgeSobel EdgeMethod = iota
	EdgePrewitt
	EdgeRoberts
	EdgeLaplacian
)

type EdgeBackground uint8

const (
	BackgroundBlack EdgeBackground = iota
	BackgroundWhite
	BackgroundOriginal
)

type BlurDirection uint8

const (
	BlurHorizontal BlurDirection = iota
	BlurVertical
	BlurDiagonal
	BlurDiagonalLeft
	BlurRadial
	BlurCustom
)

type BlurFade uint8

const (
	FadeLinear BlurFade = iota
	FadeExponential
	FadeSine
	FadeNone
)

type BlurQuality uint8

const (
	QualityNormal BlurQuality = iota
	QualityFast
	QualityHigh
)

type RadialBlur uint8

const (
	RadialZoom RadialBlur = iota
	RadialSpin
)

type VignetteShape uint8

const (
	VignetteCircular VignetteShape = iota
	VignetteElliptical
	VignetteSquare
)

type DotPattern uint8

const (
	DotCircle DotPattern = iota
	DotSquare
	DotDiamond
	DotLines
	DotCrosshatch
)

type HalftoneColor uint8

const (
	HalftoneBW HalftoneColor = iota
	HalftoneDuotone
	HalftoneFullColor
)

type WarpType uint8

const (
	WarpPush WarpType = iota
	WarpPull
	WarpTwirl
	WarpBloat
	WarpPinch
)

type NoiseType uint8

const (
	NoiseFilm NoiseType = iota
	NoiseDigital
	NoisePerlin
	NoiseCellular
)

type DotShape uint8

const (
	ShapeCircle DotShape = iota
	ShapeSquare
)

type MirrorType uint8

const (
	MirrorQuad MirrorType = iota
	MirrorHorizontal
	MirrorVertical
	MirrorRadial
)

var (
	embossBlendNames    = []string{"gray", "color", "overlay"}
	edgeMethodNames     = []string{"sobel", "prewitt", "roberts", "laplacian"}
	edgeBackgroundNames = []string{"black", "white", "original"}
	blurDirectionNames  = []string{"horizontal", "vertical", "diagonal", "diagonalLeft", "radial", "custom"}
	blurFadeNames       = []string{"linear", "exponential", "sine", "none"}
	blurQualityNames    = []string{"normal", "fast", "high"}
	radialBlurNames     = []string{"zoom", "spin"}
	vignetteShapeNames  = []string{"circular", "elliptical", "square"}
	dotPatternNames     = []string{"circle", "square", "diamond", "lines", "crosshatch"}
	halftoneColorNames  = []string{"bw", "duotone", "color"}
	warpTypeNames       = []string{"push", "pull", "twirl", "bloat", "pinch"}
	noiseTypeNames      = []string{"film", "digital", "perlin", "cellular"}
	dotShapeNames       = []string{"circle", "square"}
	mirrorTypeNames     = []string{"quad", "horizontal", "vertical", "radial"}
)

func enumString[T ~uint8](v T, names []string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return "unknown"
}

func enumUnmarshal[T ~uint8](dst *T, names []string, kind string, b []byte) error {
	i, ok := lookup(names, string(b))
	if !ok {
		return &bitmap.ParseError{Kind: kind, Value: string(b)}
	}
	*dst = T(i)
	return nil
}

func (v EmbossBlend) String() string               { return enumString(v, embossBlendNames) }
func (v EmbossBlend) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *EmbossBlend) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, embossBlendNames, "emboss blend", b)
}

func (v EdgeMethod) String() string               { return enumString(v, edgeMethodNames) }
func (v EdgeMethod) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *EdgeMethod) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, edgeMethodNames, "edge method", b)
}

func (v EdgeBackground) String() string               { return enumString(v, edgeBackgroundNames) }
func (v EdgeBackground) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *EdgeBackground) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, edgeBackgroundNames, "edge background", b)
}

func (v BlurDirection) String() string               { return enumString(v, blurDirectionNames) }
func (v BlurDirection) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *BlurDirection) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, blurDirectionNames, "blur direction", b)
}

func (v BlurFade) String() string               { return enumString(v, blurFadeNames) }
func (v BlurFade) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *BlurFade) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, blurFadeNames, "blur fade", b)
}

func (v BlurQuality) String() string               { return enumString(v, blurQualityNames) }
func (v BlurQuality) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *BlurQuality) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, blurQualityNames, "blur quality", b)
}

func (v RadialBlur) String() string               { return enumString(v, radialBlurNames) }
func (v RadialBlur) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *RadialBlur) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, radialBlurNames, "radial blur", b)
}

func (v VignetteShape) String() string               { return enumString(v, vignetteShapeNames) }
func (v VignetteShape) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *VignetteShape) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, vignetteShapeNames, "vignette shape", b)
}

func (v DotPattern) String() string               { return enumString(v, dotPatternNames) }
func (v DotPattern) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *DotPattern) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, dotPatternNames, "dot pattern", b)
}

func (v HalftoneColor) String() string               { return enumString(v, halftoneColorNames) }
func (v HalftoneColor) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *HalftoneColor) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, halftoneColorNames, "halftone color", b)
}

func (v WarpType) String() string               { return enumString(v, warpTypeNames) }
func (v WarpType) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *WarpType) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, warpTypeNames, "warp type", b)
}

func (v NoiseType) String() string               { return enumString(v, noiseTypeNames) }
func (v NoiseType) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *NoiseType) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, noiseTypeNames, "noise type", b)
}

func (v DotShape) String() string               { return enumString(v, dotShapeNames) }
func (v DotShape) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *DotShape) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, dotShapeNames, "dot shape", b)
}

func (v MirrorType) String() string               { return enumString(v, mirrorTypeNames) }
func (v MirrorType) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v *MirrorType) UnmarshalText(b []byte) error {
	return enumUnmarshal(v, mirrorTypeNames, "mirror type", b)
}
