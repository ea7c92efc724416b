package config

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/errors"
	"github.com/matzehuels/glitcher/pkg/filter"
	"github.com/matzehuels/glitcher/pkg/selection"
	"github.com/matzehuels/glitcher/pkg/transform"
)

func TestDecode(t *testing.T) {
	src := `
method = "edgeDetection"
direction = "left"
speed = 7
filter = "cyberpunk-digital_rain"
filter_intensity = 80
sort_interval = 3

[selection]
intensity = "large"

[selection.edges]
threshold = 0
`
	res, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cfg := res.Config
	if cfg.Method != selection.MethodEdgeDetection {
		t.Errorf("Method = %s, want edgeDetection", cfg.Method)
	}
	if cfg.Direction != transform.DirectionLeft || cfg.Speed != 7 {
		t.Errorf("direction/speed = %s/%d, want left/7", cfg.Direction, cfg.Speed)
	}
	if want := (filter.Kind{Family: filter.Cyberpunk, Style: filter.CyberpunkDigitalRain}); cfg.Filter != want {
		t.Errorf("Filter = %s, want %s", cfg.Filter, want)
	}
	if cfg.Selection.Intensity != selection.IntensityLarge || cfg.Selection.Edges.Threshold != 0 {
		t.Errorf("selection = %s/%v, want large/0", cfg.Selection.Intensity, cfg.Selection.Edges.Threshold)
	}
	// Unset keys keep their defaults.
	if cfg.TargetFPS != engine.DefaultTargetFPS || cfg.Selection.Color.TargetHue != selection.DefaultTargetHue {
		t.Errorf("defaults lost: fps %v hue %v", cfg.TargetFPS, cfg.Selection.Color.TargetHue)
	}
	if len(res.Undecoded) != 0 {
		t.Errorf("Undecoded = %v, want none", res.Undecoded)
	}
}

func TestDecodePresetThenOverrides(t *testing.T) {
	res, err := Decode(strings.NewReader("preset = \"cyberpunk\"\nspeed = 9\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Preset != "cyberpunk" {
		t.Errorf("Preset = %q, want cyberpunk", res.Preset)
	}
	if res.Config.Direction != transform.DirectionRight {
		t.Errorf("Direction = %s, want the preset's right", res.Config.Direction)
	}
	if res.Config.Speed != 9 {
		t.Errorf("Speed = %d, want the explicit 9", res.Config.Speed)
	}
}

func TestDecodeReportsUnknownKeys(t *testing.T) {
	res, err := Decode(strings.NewReader("sped = 3\n[selection]\nmax_regionz = 2\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	slices.Sort(res.Undecoded)
	want := []string{"selection.max_regionz", "sped"}
	if !slices.Equal(res.Undecoded, want) {
		t.Errorf("Undecoded = %v, want %v", res.Undecoded, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"syntax", "speed = ", errors.ErrCodeInvalidConfig},
		{"unknown enum", `direction = "sideways"`, errors.ErrCodeInvalidConfig},
		{"unknown preset", `preset = "glitter"`, errors.ErrCodeInvalidConfig},
		{"out of range", "speed = 500", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if !errors.Is(err, tt.code) {
				t.Errorf("Decode(%q) error = %v, want %s", tt.src, err, tt.code)
			}
		})
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg, err := engine.DefaultConfig().WithPreset("film-burn")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Filter = filter.Kind{Family: filter.Atmospheric, Style: filter.AtmosphericSnow}

	if err := Write(path, cfg, false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write(path, cfg, false); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second Write error = %v, want %s", err, errors.ErrCodeInvalidPath)
	}

	res, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Config.Hash() != cfg.Hash() {
		var a, b bytes.Buffer
		_ = Encode(&a, cfg)
		_ = Encode(&b, res.Config)
		t.Errorf("round trip changed config:\n%s\nvs\n%s", a.String(), b.String())
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-config", appName); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestFindPrefersLocalFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if _, ok := Find(); ok {
		t.Fatal("Find() found a config in an empty directory")
	}
	if err := os.WriteFile(LocalFileName, []byte("speed = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if p, ok := Find(); !ok || p != LocalFileName {
		t.Errorf("Find() = %q, %v, want %q", p, ok, LocalFileName)
	}
}
