package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 1.0, c.Scale)
	assert.Equal(t, 1.0, c.Step)
	assert.True(t, c.MergePaths)
	assert.Positive(t, c.Workers)
	c.Input = "a.json"
	assert.NoError(t, c.Validate())
}

func TestLoadYAML(t *testing.T) {
	p := write(t, "render.yaml", `
input: anim.json
width: 320
background: "#ff0000"
fonts:
  - family: Roboto
    style: Bold
    path: fonts/Roboto-Bold.ttf
`)
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "anim.json", c.Input)
	assert.Equal(t, 320, c.Width)
	assert.Equal(t, 1.0, c.Scale, "unset keys keep their defaults")
	require.Len(t, c.Fonts, 1)
	assert.Equal(t, Font{Family: "Roboto", Style: "Bold", Path: "fonts/Roboto-Bold.ttf"}, c.Fonts[0])

	bg, err := c.BackgroundColor()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, bg)
}

func TestLoadTOML(t *testing.T) {
	p := write(t, "render.toml", `
input = "anim.json"
scale = 2.0
start_frame = 10.0
merge_paths = false

[[fonts]]
family = "Roboto"
path = "r.ttf"
`)
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 2.0, c.Scale)
	assert.Equal(t, 10.0, c.StartFrame)
	assert.False(t, c.MergePaths)
	require.Len(t, c.Fonts, 1)
	assert.Equal(t, "r.ttf", c.Fonts[0].Path)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(write(t, "render.ini", "input=a"))
	assert.ErrorIs(t, err, ErrFormat)

	_, err = Load(write(t, "bad.yaml", "input: [unterminated"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no input", func(c *Config) { c.Input = "" }},
		{"no output", func(c *Config) { c.Output = "" }},
		{"negative size", func(c *Config) { c.Width = -1 }},
		{"zero scale", func(c *Config) { c.Scale = 0 }},
		{"zero step", func(c *Config) { c.Step = 0 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"bad background", func(c *Config) { c.Background = "red" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.Input = "a.json"
			tt.modify(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestOutputPath(t *testing.T) {
	c := Default()
	assert.Equal(t, "frame_0007.png", c.OutputPath(7))
	c.Output = "out/shot.png"
	assert.Equal(t, "out/shot_0012.png", c.OutputPath(12))
}
