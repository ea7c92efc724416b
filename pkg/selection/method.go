package selection

import "github.com/matzehuels/glitcher/pkg/bitmap"

// Method is a region-selection algorithm.
type Method uint8

const (
	MethodRandom        Method = iota // random rectangles
	MethodColorRange                  // hue-matched flood fill
	MethodBrightness                  // brightness zone blocks
	MethodEdgeDetection               // Sobel edge-dense blocks
	MethodOrganicShapes               // jittered blobs
	MethodContentAware                // edges + color
	MethodCombined                    // configurable union
)

var methodNames = [...]string{
	MethodRandom:        "random",
	MethodColorRange:    "colorRange",
	MethodBrightness:    "brightness",
	MethodEdgeDetection: "edgeDetection",
	MethodOrganicShapes: "organicShapes",
	MethodContentAware:  "contentAware",
	MethodCombined:      "combined",
}

// Methods lists every method in declaration order.
func Methods() []Method {
	out := make([]Method, len(methodNames))
	for i := range methodNames {
		out[i] = Method(i)
	}
	return out
}

func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return "unknown"
}

// Valid reports whether m is one of the declared methods.
func (m Method) Valid() bool {
	return int(m) < len(methodNames)
}

// Cacheable reports whether results for m may be reused across calls.
func (m Method) Cacheable() bool {
	return m != MethodRandom && m != MethodOrganicShapes
}

// ParseMethod maps a method name to a Method.
func ParseMethod(s string) (Method, bool) {
	for i, name := range methodNames {
		if name == s {
			return Method(i), true
		}
	}
	return MethodRandom, false
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	v, ok := ParseMethod(string(b))
	if !ok {
		return &bitmap.ParseError{Kind: "selection method", Value: string(b)}
	}
	*m = v
	return nil
}

// Intensity scales random and organic region sizes.
type Intensity uint8

const (
	IntensityMedium     Intensity = iota // width/6 random, width/8 organic
	IntensityLarge                       // width/3 random, width/5 organic
	IntensityExtraLarge                  // width/2 random, width/3 organic
)

var intensityNames = [...]string{
	IntensityMedium:     "medium",
	IntensityLarge:      "large",
	IntensityExtraLarge: "extraLarge",
}

func (i Intensity) String() string {
	if int(i) < len(intensityNames) {
		return intensityNames[i]
	}
	return "unknown"
}

// ParseIntensity maps a name to an Intensity.
func ParseIntensity(s string) (Intensity, bool) {
	for i, name := range intensityNames {
		if name == s {
			return Intensity(i), true
		}
	}
	return IntensityMedium, false
}

// MarshalText implements encoding.TextMarshaler.
func (i Intensity) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Intensity) UnmarshalText(b []byte) error {
	v, ok := ParseIntensity(string(b))
	if !ok {
		return &bitmap.ParseError{Kind: "intensity", Value: string(b)}
	}
	*i = v
	return nil
}

// randomDivisor is the fraction of the buffer a random region may span.
func (i Intensity) randomDivisor() int {
	switch i {
	case IntensityLarge:
		return 3
	case IntensityExtraLarge:
		return 2
	}
	return 6
}

// organicDivisor is the fraction of the width an organic blob radius spans.
func (i Intensity) organicDivisor() int {
	switch i {
	case IntensityLarge:
		return 5
	case IntensityExtraLarge:
		return 3
	}
	return 8
}

// Zone is a brightness band.
type Zone uint8

const (
	ZoneShadows    Zone = iota // mean brightness < 0.3
	ZoneMidtones               // 0.3 .. 0.7
	ZoneHighlights             // > 0.7
)

var zoneNames = [...]string{
	ZoneShadows:    "shadows",
	ZoneMidtones:   "midtones",
	ZoneHighlights: "highlights",
}

func (z Zone) String() string {
	if int(z) < len(zoneNames) {
		return zoneNames[z]
	}
	return "unknown"
}

// ParseZone maps a name to a Zone.
func ParseZone(s string) (Zone, bool) {
	for i, name := range zoneNames {
		if name == s {
			return Zone(i), true
		}
	}
	return ZoneShadows, false
}

// MarshalText implements encoding.TextMarshaler.
func (z Zone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Zone) UnmarshalText(b []byte) error {
	v, ok := ParseZone(string(b))
	if !ok {
		return &bitmap.ParseError{Kind: "zone", Value: string(b)}
	}
	*z = v
	return nil
}

// Contains reports whether a normalized brightness falls in the zone.
func (z Zone) Contains(brightness float64) bool {
	switch z {
	case ZoneShadows:
		return brightness < 0.3
	case ZoneMidtones:
		return brightness >= 0.3 && brightness <= 0.7
	case ZoneHighlights:
		return brightness > 0.7
	}
	return false
}
