package engine

import (
	"testing"

	"github.com/matzehuels/glitcher/pkg/errors"
	"github.com/matzehuels/glitcher/pkg/selection"
	"github.com/matzehuels/glitcher/pkg/transform"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   errors.Code
	}{
		{"unknown method", func(c *Config) { c.Method = selection.Method(99) }, errors.ErrCodeInvalidMethod},
		{"negative speed", func(c *Config) { c.Speed = -1 }, errors.ErrCodeInvalidConfig},
		{"speed too high", func(c *Config) { c.Speed = MaxSpeed + 1 }, errors.ErrCodeInvalidConfig},
		{"negative swirl", func(c *Config) { c.SwirlStrength = -0.1 }, errors.ErrCodeInvalidConfig},
		{"color offset", func(c *Config) { c.ColorOffset = 300 }, errors.ErrCodeInvalidConfig},
		{"color intensity", func(c *Config) { c.ColorIntensity = 101 }, errors.ErrCodeInvalidConfig},
		{"filter intensity", func(c *Config) { c.FilterIntensity = -1 }, errors.ErrCodeInvalidConfig},
		{"lifetimes", func(c *Config) { c.MinLifetime, c.MaxLifetime = 10, 5 }, errors.ErrCodeInvalidConfig},
		{"fps", func(c *Config) { c.TargetFPS = 1000 }, errors.ErrCodeInvalidConfig},
		{"huge max regions", func(c *Config) { c.Selection.MaxRegions = 1 << 62 }, errors.ErrCodeInvalidConfig},
		{"negative max regions", func(c *Config) { c.Selection.MaxRegions = -1 }, errors.ErrCodeInvalidConfig},
		{"huge shape count", func(c *Config) { c.Selection.Organic.Count = 1 << 40 }, errors.ErrCodeInvalidConfig},
		{"negative shape count", func(c *Config) { c.Selection.Organic.Count = -3 }, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if cfg.SortInterval != DefaultSortInterval {
		t.Errorf("SortInterval = %d, want %d", cfg.SortInterval, DefaultSortInterval)
	}
	if cfg.MinLifetime != selection.DefaultMinLifetime || cfg.MaxLifetime != selection.DefaultMaxLifetime {
		t.Errorf("lifetimes = %d..%d, want %d..%d", cfg.MinLifetime, cfg.MaxLifetime,
			selection.DefaultMinLifetime, selection.DefaultMaxLifetime)
	}
	if cfg.TargetFPS != DefaultTargetFPS {
		t.Errorf("TargetFPS = %v, want %v", cfg.TargetFPS, DefaultTargetFPS)
	}
	if cfg.Direction != transform.DirectionOff {
		t.Errorf("SetDefaults changed Direction to %s", cfg.Direction)
	}
}

func TestConfigHash(t *testing.T) {
	a, b := DefaultConfig(), DefaultConfig()
	if a.Hash() != b.Hash() {
		t.Error("equal configs hash differently")
	}
	b.Speed++
	if a.Hash() == b.Hash() {
		t.Error("different configs hash equally")
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name      string
		direction transform.DirectionMode
		sort      transform.SortMode
		intensity selection.Intensity
		speed     int
	}{
		{"vintage-tv", transform.DirectionDown, transform.SortOff, selection.IntensityMedium, 2},
		{"digital-chaos", transform.DirectionJitter, transform.SortRandomLines, selection.IntensityExtraLarge, 4},
		{"rainbow-sort", transform.DirectionOff, transform.SortColumnHue, selection.IntensityLarge, 1},
		{"cyberpunk", transform.DirectionRight, transform.SortDiagonal, selection.IntensityLarge, 3},
		{"film-burn", transform.DirectionUp, transform.SortRowBrightness, selection.IntensityMedium, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := DefaultConfig().WithPreset(tt.name)
			if err != nil {
				t.Fatalf("WithPreset: %v", err)
			}
			if cfg.Direction != tt.direction || cfg.PixelSort != tt.sort {
				t.Errorf("effects = %s/%s, want %s/%s", cfg.Direction, cfg.PixelSort, tt.direction, tt.sort)
			}
			if cfg.Selection.Intensity != tt.intensity || cfg.Speed != tt.speed {
				t.Errorf("intensity/speed = %s/%d, want %s/%d", cfg.Selection.Intensity, cfg.Speed, tt.intensity, tt.speed)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset config invalid: %v", err)
			}
		})
	}
}

func TestWithPresetUnknown(t *testing.T) {
	cfg := DefaultConfig()
	got, err := cfg.WithPreset("glitter")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("WithPreset(glitter) error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
	if got.Hash() != cfg.Hash() {
		t.Error("failed WithPreset changed the config")
	}
	if same, err := cfg.WithPreset(""); err != nil || same.Hash() != cfg.Hash() {
		t.Errorf("WithPreset(\"\") = %v", err)
	}
}
