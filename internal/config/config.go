// Package config holds the settings of the lottie2png command. Settings
// come from Default, then an optional YAML or TOML file, then flags.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrFormat is returned for config files with an unknown extension.
var ErrFormat = errors.New("config: unknown file format")

// Font registers a font file for a family and style.
type Font struct {
	Family string `yaml:"family" toml:"family"`
	Style  string `yaml:"style" toml:"style"`
	Path   string `yaml:"path" toml:"path"`
}

// Config is the full set of render settings.
type Config struct {
	Input  string `yaml:"input" toml:"input"`
	Output string `yaml:"output" toml:"output"`

	// Width and Height default to the composition size times Scale.
	Width  int     `yaml:"width" toml:"width"`
	Height int     `yaml:"height" toml:"height"`
	Scale  float64 `yaml:"scale" toml:"scale"`

	// Background is a hex color; empty keeps the background transparent.
	Background string `yaml:"background" toml:"background"`

	// StartFrame and EndFrame bound the rendered range; negative values
	// select the composition bounds. EndFrame is exclusive.
	StartFrame float64 `yaml:"start_frame" toml:"start_frame"`
	EndFrame   float64 `yaml:"end_frame" toml:"end_frame"`
	Step       float64 `yaml:"step" toml:"step"`

	Workers    int    `yaml:"workers" toml:"workers"`
	Assets     string `yaml:"assets" toml:"assets"`
	Fonts      []Font `yaml:"fonts" toml:"fonts"`
	MergePaths bool   `yaml:"merge_paths" toml:"merge_paths"`
	Clip       bool   `yaml:"clip" toml:"clip"`
	Strict     bool   `yaml:"strict" toml:"strict"`
	Watch      bool   `yaml:"watch" toml:"watch"`
	LogLevel   string `yaml:"log_level" toml:"log_level"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		Output:     "frame_%04d.png",
		Scale:      1,
		StartFrame: -1,
		EndFrame:   -1,
		Step:       1,
		Workers:    runtime.NumCPU(),
		MergePaths: true,
		Clip:       true,
		LogLevel:   "warn",
	}
}

// Load reads a config file on top of Default. The format follows the file
// extension: .yaml, .yml or .toml.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		_, err = toml.Decode(string(data), &cfg)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrFormat, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Input == "":
		return errors.New("config: input is required")
	case c.Output == "":
		return errors.New("config: output is required")
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	case c.Scale <= 0:
		return fmt.Errorf("config: invalid scale %v", c.Scale)
	case c.Step <= 0:
		return fmt.Errorf("config: invalid step %v", c.Step)
	case c.Workers < 1:
		return fmt.Errorf("config: invalid worker count %d", c.Workers)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor parses Background. The zero color is returned when it
// is empty.
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	if c.Background == "" {
		return color.NRGBA{}, nil
	}
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("config: background: %w", err)
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// OutputPath returns the file name of the n-th rendered frame. Output may
// contain one integer verb; otherwise the index is appended before the
// extension.
func (c *Config) OutputPath(n int) string {
	if strings.Contains(c.Output, "%") {
		return fmt.Sprintf(c.Output, n)
	}
	ext := filepath.Ext(c.Output)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(c.Output, ext), n, ext)
}
