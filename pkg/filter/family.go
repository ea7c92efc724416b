package filter

import (
	"strings"

	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// Family is a filter family. Styled families (PopArt through Experimental)
// additionally select one of their sub-styles.
type Family uint8

const (
	Off Family = iota
	Emboss
	EdgeDetect
	MotionBlur
	Vignette
	Halftone
	Liquify
	ColorGrading
	Noise
	PopArt
	Vintage
	Cyberpunk
	Artistic
	Atmospheric
	Experimental
)

var familyNames = []string{
	"off", "emboss", "edgeDetect", "motionBlur", "vignette", "halftone",
	"liquify", "colorGrading", "noise", "popArt", "vintage", "cyberpunk",
	"artistic", "atmospheric", "experimental",
}

// Families lists every family except Off, in declaration order.
var Families = []Family{
	Emboss, EdgeDetect, MotionBlur, Vignette, Halftone, Liquify, ColorGrading,
	Noise, PopArt, Vintage, Cyberpunk, Artistic, Atmospheric, Experimental,
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "unknown"
}

// Styled reports whether f has sub-styles.
func (f Family) Styled() bool {
	return len(styleNames[f]) > 0
}

// Styles returns the sub-style names of f, or nil for unstyled families.
func (f Family) Styles() []string {
	return styleNames[f]
}

// Style is a sub-style of a styled family. Its meaning depends on the family;
// the zero value is each family's default style.
type Style uint8

// PopArt styles.
const (
	PopArtWarhol Style = iota
	PopArtLichtenstein
	PopArtNeon
	PopArtPsychedelic
)

// Vintage styles.
const (
	VintagePolaroid Style = iota
	VintageKodachrome
	VintageFaded
	VintageSepia
)

// Cyberpunk styles.
const (
	CyberpunkNeon Style = iota
	CyberpunkMatrix
	CyberpunkSynthwave
	CyberpunkDigitalRain
	CyberpunkHologram
	CyberpunkGlitchScan
)

// Artistic styles.
const (
	ArtisticOilPainting Style = iota
	ArtisticWatercolor
	ArtisticPencilSketch
	ArtisticMosaic
	ArtisticStainedGlass
	ArtisticComicBook
	ArtisticCrosshatch
	ArtisticPointillism
)

// Atmospheric styles.
const (
	AtmosphericFog Style = iota
	AtmosphericRain
	AtmosphericSnow
	AtmosphericDust
	AtmosphericHeatHaze
	AtmosphericUnderwater
	AtmosphericAurora
	AtmosphericLightning
)

// Experimental styles.
const (
	ExperimentalKaleidoscope Style = iota
	ExperimentalFractal
	ExperimentalTunnel
	ExperimentalWarp
	ExperimentalChromaticShift
	ExperimentalDataBend
	ExperimentalMirrorWorld
	ExperimentalRealityGlitch
)

var styleNames = map[Family][]string{
	PopArt:       {"warhol", "lichtenstein", "neon", "psychedelic"},
	Vintage:      {"polaroid", "kodachrome", "faded", "sepia"},
	Cyberpunk:    {"neon", "matrix", "synthwave", "digitalRain", "hologram", "glitchScan"},
	Artistic:     {"oilPainting", "watercolor", "pencilSketch", "mosaic", "stainedGlass", "comicBook", "crosshatch", "pointillism"},
	Atmospheric:  {"fog", "rain", "snow", "dust", "heatHaze", "underwater", "aurora", "lightning"},
	Experimental: {"kaleidoscope", "fractal", "tunnel", "warp", "chromaticShift", "dataBend", "mirrorWorld", "realityGlitch"},
}

// Kind names one concrete filter: a family plus, for styled families, a
// sub-style. Its text form is "family" or "family-style".
type Kind struct {
	Family Family
	Style  Style
}

func (k Kind) String() string {
	names := styleNames[k.Family]
	if len(names) == 0 {
		return k.Family.String()
	}
	if int(k.Style) >= len(names) {
		return k.Family.String() + "-unknown"
	}
	return k.Family.String() + "-" + names[k.Style]
}

// ParseKind parses "family" or "family-style". Style names match without
// regard to case or underscores, so "cyberpunk-digital_rain" and
// "cyberpunk-digitalRain" are the same filter. A styled family given without
// a style gets its first style.
func ParseKind(s string) (Kind, error) {
	fam, style, _ := strings.Cut(s, "-")
	var k Kind
	f, ok := lookup(familyNames, fam)
	if !ok {
		return k, &bitmap.ParseError{Kind: "filter", Value: s}
	}
	k.Family = Family(f)
	if style == "" {
		return k, nil
	}
	names := styleNames[k.Family]
	if len(names) == 0 {
		return k, &bitmap.ParseError{Kind: "filter style", Value: s}
	}
	i, ok := lookup(names, style)
	if !ok {
		return k, &bitmap.ParseError{Kind: "filter style", Value: s}
	}
	k.Style = Style(i)
	return k, nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Kinds returns every concrete filter, styled families expanded.
func Kinds() []Kind {
	var out []Kind
	for _, f := range Families {
		names := styleNames[f]
		if len(names) == 0 {
			out = append(out, Kind{Family: f})
			continue
		}
		for i := range names {
			out = append(out, Kind{Family: f, Style: Style(i)})
		}
	}
	return out
}

func lookup(names []string, s string) (int, bool) {
	norm := func(v string) string { return strings.ToLower(strings.ReplaceAll(v, "_", "")) }
	want := norm(s)
	for i, name := range names {
		if norm(name) == want {
			return i, true
		}
	}
	return 0, false
}
