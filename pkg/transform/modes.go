package transform

import "github.com/matzehuels/glitcher/pkg/bitmap"

// parseName returns the index of s in names.
func parseName(names []string, s string) (int, bool) {
	for i, name := range names {
		if name == s {
			return i, true
		}
	}
	return 0, false
}

func nameOf(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return "unknown"
}

// =============================================================================
// Direction
// =============================================================================

// DirectionMode selects how clumps are shifted.
type DirectionMode uint8

const (
	DirectionOff DirectionMode = iota
	DirectionDown
	DirectionUp
	DirectionLeft
	DirectionRight
	DirectionRandom // use the clump's own direction
	DirectionJitter // re-roll a direction every frame
)

var directionModeNames = []string{"off", "down", "up", "left", "right", "random", "jitter"}

func (m DirectionMode) String() string { return nameOf(directionModeNames, int(m)) }

// ParseDirectionMode maps a name to a DirectionMode.
func ParseDirectionMode(s string) (DirectionMode, bool) {
	i, ok := parseName(directionModeNames, s)
	return DirectionMode(i), ok
}

// MarshalText implements encoding.TextMarshaler.
func (m DirectionMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *DirectionMode) UnmarshalText(b []byte) error {
	v, ok := ParseDirectionMode(string(b))
	if !ok {
		return &bitmap.ParseError{Kind: "direction", Value: string(b)}
	}
	*m = v
	return nil
}

// =============================================================================
// Spiral
// =============================================================================

// SpiralMode selects the swirl angle function.
type SpiralMode uint8

const (
	SpiralOff SpiralMode = iota
	SpiralCW
	SpiralCCW
	SpiralSpiral // constant rotation in the configured Turn
	SpiralInsideOut
	SpiralOutsideIn
	SpiralRandom
	SpiralVortex
	SpiralRipple
)

var spiralModeNames = []string{"off", "cw", "ccw", "spiral", "insideOut", "outsideIn", "random", "vortex", "ripple"}

func (m SpiralMode) String() string { return nameOf(spiralModeNames, int(m)) }

// ParseSpiralMode maps a name to a SpiralMode.
func ParseSpiralMode(s string) (SpiralMode, bool) {
	i, ok := parseName(spiralModeNames, s)
	return SpiralMode(i), ok
}

// MarshalText implements encoding.TextMarshaler.
func (m SpiralMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SpiralMode) UnmarshalText(b []byte) error {
	v, ok := ParseSpiralMode(string(b))
	if !ok {
		return &bitmap.ParseError{Kind: "spiral", Value: string(b)}
	}
	*m = v
	return nil
}

// Turn is a rotation sense.
type Turn uint8

const (
	TurnCW Turn = iota
	TurnCCW
)

var turnNames = []string{"cw", "ccw"}

func (t Turn) String() string { return nameOf(turnNames, int(t)) }

// ParseTurn maps "cw" or "ccw" to a Turn.
func ParseTurn(s string) (Turn, bool) {
	i, ok := parseName(turnNames, s)
	return Turn(i), ok
}

// MarshalText implements encoding.TextMarshaler.
func (t Turn) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Turn) UnmarshalText(b []byte) error {
	v, ok := ParseTurn(string(b))
	if !ok {
		return &bitmap.ParseError{Kind: "turn", Value: string(b)}
	}
	*t = v
	return nil
}

func (t Turn) sign() float64 {
	if t == TurnCCW {
		return -1
	}
	return 1
}

// =============================================================================
// Slice
// =============================================================================

// SliceMode selects the slice glitch.
type SliceMode uint8

const (
	SliceOff SliceMode = iota
	SliceHorizontal
	SliceVertical
	SliceBoth
	SliceDigitalTear
	SliceScanlines
	SliceChannelDisplacement
	SliceBlockCorruption
)

var sliceModeNames = []string{
	"off", "horizontal", "vertical", "both",
	"digitalTear", "scanlines", "channelDisplacement", "blockCorruption",
}

func (m SliceMode) String() string { return nameOf(sliceModeNames, int(m)) }

// ParseSliceMode maps a name to a SliceMode.
func ParseSliceMode(s string) (SliceMode, bool) {
	i, ok := parseName(sliceModeNames, s)
	return SliceMode(i), ok
}

// MarshalText implements encoding.TextMarshaler.
func (m SliceMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SliceMode) UnmarshalText(b []byte) error {
	v, ok := ParseSliceMode(string(b))
	if !ok {
		return &bitmap.ParseError{Kind: "slice", Value: string(b)}
	}
	*m = v
	return nil
}

// =============================================================================
// Pixel sort
// =============================================================================

// SortMode selects the pixel-sort path and key.
type SortMode uint8

const (
	SortOff SortMode = iota
	SortColumnBrightness
	SortRowBrightness
	SortColumnHue
	SortRowHue
	SortRandomLines
	SortDiagonal
	SortCircular
	SortWave
)

var sortModeNames = []string{
	"off", "columnBrightness", "rowBrightness", "columnHue", "rowHue",
	"randomLines", "diagonal", "circular", "wave",
}

func (m SortMode) String() string { return nameOf(sortModeNames, int(m)) }

// ParseSortMode maps a name to a SortMode.
func ParseSortMode(s string) (SortMode, bool) {
	i, ok := parseName(sortModeNames, s)
	return SortMode(i), ok
}

// MarshalText implements encoding.TextMarshaler.
func (m SortMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SortMode) UnmarshalText(b []byte) error {
	v, ok := ParseSortMode(string(b))
	if !ok {
		return &bitmap.ParseError{Kind: "pixel sort", Value: string(b)}
	}
	*m = v
	return nil
}

// =============================================================================
// Color
// =============================================================================

// ColorEffect selects the per-pixel recoloring.
type ColorEffect uint8

const (
	ColorOff ColorEffect = iota
	ColorChromaticAberration
	ColorHueShift
	ColorSaturation
	ColorVintage
	ColorInvert
	ColorNoise
	ColorChannelShift
)

var colorEffectNames = []string{
	"off", "chromaticAberration", "hueShift", "saturation",
	"vintage", "invert", "colorNoise", "channelShift",
}

func (c ColorEffect) String() string { return nameOf(colorEffectNames, int(c)) }

// ParseColorEffect maps a name to a ColorEffect.
func ParseColorEffect(s string) (ColorEffect, bool) {
	i, ok := parseName(colorEffectNames, s)
	return ColorEffect(i), ok
}

// MarshalText implements encoding.TextMarshaler.
func (c ColorEffect) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ColorEffect) UnmarshalText(b []byte) error {
	v, ok := ParseColorEffect(string(b))
	if !ok {
		return &bitmap.ParseError{Kind: "color effect", Value: string(b)}
	}
	*c = v
	return nil
}

// Aberration is the chromatic aberration offset pattern.
type Aberration uint8

const (
	AberrationHorizontal Aberration = iota
	AberrationVertical
	AberrationRadial
	AberrationCustom // offset along ColorOptions.Angle
)

var aberrationNames = []string{"horizontal", "vertical", "radial", "custom"}

func (a Aberration) String() string { return nameOf(aberrationNames, int(a)) }

// ParseAberration maps a name to an Aberration.
func ParseAberration(s string) (Aberration, bool) {
	i, ok := parseName(aberrationNames, s)
	return Aberration(i), ok
}

// MarshalText implements encoding.TextMarshaler.
func (a Aberration) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Aberration) UnmarshalText(b []byte) error {
	v, ok := ParseAberration(string(b))
	if !ok {
		return &bitmap.ParseError{Kind: "aberration", Value: string(b)}
	}
	*a = v
	return nil
}

// InvertChannel picks which channels ColorInvert flips.
type InvertChannel uint8

const (
	InvertFull InvertChannel = iota
	InvertRed
	InvertGreen
	InvertBlue
)

var invertChannelNames = []string{"full", "red", "green", "blue"}

func (c InvertChannel) String() string { return nameOf(invertChannelNames, int(c)) }

// ParseInvertChannel maps a name to an InvertChannel.
func ParseInvertChannel(s string) (InvertChannel, bool) {
	i, ok := parseName(invertChannelNames, s)
	return InvertChannel(i), ok
}

// MarshalText implements encoding.TextMarshaler.
func (c InvertChannel) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *InvertChannel) UnmarshalText(b []byte) error {
	v, ok := ParseInvertChannel(string(b))
	if !ok {
		return &bitmap.ParseError{Kind: "invert channel", Value: string(b)}
	}
	*c = v
	return nil
}
