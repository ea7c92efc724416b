package filter

import (
	"testing"

	"github.com/matzehuels/glitcher/pkg/bitmap"
)

func gradient(w, h int) *bitmap.Buffer {
	buf := bitmap.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, uint8(x*9), uint8(y*13), uint8((x*y)%256), 255)
		}
	}
	return buf
}

// halves returns a buffer that is black on the left half and white on the
// right.
func halves(w, h int) *bitmap.Buffer {
	buf := bitmap.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if x >= w/2 {
				v = 255
			}
			buf.Set(x, y, v, v, v, 255)
		}
	}
	return buf
}

func TestApplyNeverMutatesSource(t *testing.T) {
	for _, k := range Kinds() {
		src := gradient(24, 16)
		orig := src.Clone()
		Apply(src, Spec{Kind: k, Intensity: 100, Options: DefaultOptions(), Frame: 7})
		if !src.Equal(orig) {
			t.Errorf("Apply(%s) modified its source", k)
		}
	}
}

func TestApplyIdentityCases(t *testing.T) {
	src := gradient(16, 16)
	tests := []struct {
		name string
		spec Spec
	}{
		{"off", Spec{Kind: Kind{Family: Off}, Intensity: 100, Options: DefaultOptions()}},
		{"zero intensity", Spec{Kind: Kind{Family: Cyberpunk, Style: CyberpunkNeon}, Intensity: 0, Options: DefaultOptions()}},
		{"negative intensity", Spec{Kind: Kind{Family: Emboss}, Intensity: -20, Options: DefaultOptions()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(src, tt.spec)
			if got == src {
				t.Fatal("Apply returned its input, want a copy")
			}
			if !got.Equal(src) {
				t.Error("Apply changed pixels")
			}
		})
	}
}

func TestApplyEmptyBuffer(t *testing.T) {
	got := Apply(bitmap.New(0, 0), Spec{Kind: Kind{Family: Noise}, Intensity: 50, Options: DefaultOptions()})
	if !got.Empty() {
		t.Errorf("Apply on empty buffer = %dx%d, want empty", got.Width, got.Height)
	}
}

func TestEveryKindKeepsDimensions(t *testing.T) {
	sizes := [][2]int{{1, 1}, {3, 2}, {17, 11}, {40, 30}}
	for _, k := range Kinds() {
		for _, sz := range sizes {
			src := gradient(sz[0], sz[1])
			got := Apply(src, Spec{Kind: k, Intensity: 80, Options: DefaultOptions(), Frame: 3})
			if got.Width != sz[0] || got.Height != sz[1] || len(got.Pix) != len(src.Pix) {
				t.Errorf("Apply(%s) on %dx%d = %dx%d", k, sz[0], sz[1], got.Width, got.Height)
			}
		}
	}
}

func TestApplyIsDeterministicPerFrame(t *testing.T) {
	src := gradient(32, 24)
	for _, k := range Kinds() {
		spec := Spec{Kind: k, Intensity: 60, Options: DefaultOptions(), Frame: 42}
		a, b := Apply(src, spec), Apply(src, spec)
		if !a.Equal(b) {
			t.Errorf("Apply(%s) differs between identical calls", k)
		}
	}
}

func TestEdgeDetectZeroThreshold(t *testing.T) {
	opts := DefaultOptions()
	opts.Edge.Threshold = 0
	got := Apply(halves(8, 8), Spec{Kind: Kind{Family: EdgeDetect}, Intensity: 100, Options: opts})

	tests := []struct {
		x    int
		want uint8
	}{
		{1, 0},
		{3, 255},
		{4, 255},
		{6, 0},
	}
	for _, tt := range tests {
		r, g, b, _ := got.At(tt.x, 4)
		if r != tt.want || g != tt.want || b != tt.want {
			t.Errorf("pixel (%d,4) = %d,%d,%d, want %d", tt.x, r, g, b, tt.want)
		}
	}
}

func TestMixScalesWithIntensity(t *testing.T) {
	src := halves(8, 8)
	opts := DefaultOptions()
	opts.Edge.Threshold = 0
	spec := Spec{Kind: Kind{Family: EdgeDetect}, Intensity: 50, Options: opts}
	got := Apply(src, spec)

	// An edge pixel on the black side moves halfway to white.
	r, _, _, _ := got.At(3, 4)
	if r < 127 || r > 128 {
		t.Errorf("half-intensity edge pixel = %d, want ~128", r)
	}
}

func TestPopArtUsesPalette(t *testing.T) {
	src := bitmap.Filled(4, 4, 0, 0, 0, 255)
	got := Apply(src, Spec{Kind: Kind{Family: PopArt, Style: PopArtWarhol}, Intensity: 100, Options: DefaultOptions()})
	r, g, b, a := got.At(1, 1)
	if r != 255 || g != 0 || b != 255 || a != 255 {
		t.Errorf("black under warhol = %d,%d,%d,%d, want 255,0,255,255", r, g, b, a)
	}
}

func TestMirrorQuadIsSymmetric(t *testing.T) {
	src := gradient(10, 8)
	got := Apply(src, Spec{Kind: Kind{Family: Experimental, Style: ExperimentalMirrorWorld}, Intensity: 100, Options: DefaultOptions()})
	for y := 0; y < 8; y++ {
		for x := 0; x < 10; x++ {
			r1, g1, b1, _ := got.At(x, y)
			r2, g2, b2, _ := got.At(9-x, 7-y)
			if r1 != r2 || g1 != g2 || b1 != b2 {
				t.Fatalf("pixel (%d,%d) differs from its mirror", x, y)
			}
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"emboss", Kind{Family: Emboss}, false},
		{"edgeDetect", Kind{Family: EdgeDetect}, false},
		{"cyberpunk-digital_rain", Kind{Family: Cyberpunk, Style: CyberpunkDigitalRain}, false},
		{"cyberpunk-digitalRain", Kind{Family: Cyberpunk, Style: CyberpunkDigitalRain}, false},
		{"atmospheric-heat_haze", Kind{Family: Atmospheric, Style: AtmosphericHeatHaze}, false},
		{"vintage", Kind{Family: Vintage, Style: VintagePolaroid}, false},
		{"emboss-deep", Kind{}, true},
		{"cyberpunk-laser", Kind{}, true},
		{"sparkle", Kind{}, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKindTextRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", k, err)
		}
		var got Kind
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if got != k {
			t.Errorf("round trip %q = %v, want %v", b, got, k)
		}
	}
}

func TestOptionEnumText(t *testing.T) {
	var m MirrorType
	if err := m.UnmarshalText([]byte("radial")); err != nil || m != MirrorRadial {
		t.Errorf("UnmarshalText(radial) = %v, %v", m, err)
	}
	if err := m.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("UnmarshalText(sideways) succeeded")
	}
}
