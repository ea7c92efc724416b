// Package config reads and writes engine configuration files.
//
// A config file is TOML. Its top-level keys are the fields of
// [engine.Config] plus an optional preset name, which is applied before the
// explicit keys so that the file can override single preset values:
//
//	preset = "cyberpunk"
//	speed = 5
//	filter = "cyberpunk-neon"
//	filter_intensity = 80
//
//	[selection]
//	intensity = "extraLarge"
//
// Keys that match no field are not an error; [Load] and [Decode] return them
// as warnings so the CLI can point out typos.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/errors"
)

const (
	appName = "glitcher"

	// FileName is the config file name looked up by Find.
	FileName = "config.toml"

	// LocalFileName is the project-local config file, checked before the
	// user config.
	LocalFileName = "glitcher.toml"
)

// File is a decoded config file.
type File struct {
	Preset string `toml:"preset"`
	engine.Config
}

// Result is the outcome of decoding a config file.
type Result struct {
	Config engine.Config
	Preset string

	// Undecoded lists keys that matched no config field.
	Undecoded []string
}

// Decode reads a config from r on top of engine.DefaultConfig and
// validates it.
func Decode(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read config: %w", err)
	}

	var head struct {
		Preset string `toml:"preset"`
	}
	if _, err := toml.Decode(string(data), &head); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	base, err := engine.DefaultConfig().WithPreset(head.Preset)
	if err != nil {
		return Result{}, err
	}

	f := File{Preset: head.Preset, Config: base}
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	f.Config.SetDefaults()
	if err := f.Config.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{Config: f.Config, Preset: f.Preset}
	for _, k := range md.Undecoded() {
		res.Undecoded = append(res.Undecoded, k.String())
	}
	return res, nil
}

// Load decodes the config file at path.
func Load(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Result{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	res, err := Decode(f)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg engine.Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Write saves cfg to path, creating parent directories. An existing file is
// only replaced when overwrite is set.
func Write(path string, cfg engine.Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidPath, "%s already exists", path)
		}
	}
	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// =============================================================================
// Paths
// =============================================================================

// Dir returns the user config directory using the XDG standard
// (~/.config/glitcher/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the user config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Find returns the config file to use: glitcher.toml in the working
// directory, then the user config file. ok is false when neither exists.
func Find() (path string, ok bool) {
	if fileExists(LocalFileName) {
		return LocalFileName, true
	}
	p, err := Path()
	if err != nil || !fileExists(p) {
		return "", false
	}
	return p, true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
