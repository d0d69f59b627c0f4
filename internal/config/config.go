package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/olivier-w/bandscope/internal/bands"
	"github.com/olivier-w/bandscope/internal/render"
	"github.com/olivier-w/bandscope/internal/surface"
)

var (
	ErrInvalidFPS  = errors.New("fps must be between 1 and 240")
	ErrInvalidZoom = errors.New("zoom must be positive")
)

// VisualGainConfig are the global display multipliers.
type VisualGainConfig struct {
	All  float64 `yaml:"all"`
	Low  float64 `yaml:"low"`
	Mid  float64 `yaml:"mid"`
	High float64 `yaml:"high"`
}

// ColorConfig are "#rrggbb" stroke colours.
type ColorConfig struct {
	Low        string `yaml:"low"`
	Mid        string `yaml:"mid"`
	High       string `yaml:"high"`
	Axes       string `yaml:"axes"`
	Background string `yaml:"background"`
}

// DeckConfig are the initial deck settings.
type DeckConfig struct {
	Zoom time.Duration `yaml:"zoom"`
	Gain float64       `yaml:"gain"`
	BPM  float64       `yaml:"bpm"`
	Seed uint64        `yaml:"seed"`
}

type Config struct {
	Alignment  string           `yaml:"alignment"`
	FPS        int              `yaml:"fps"`
	VisualGain VisualGainConfig `yaml:"visual_gain"`
	Colors     ColorConfig      `yaml:"colors"`
	Deck       DeckConfig       `yaml:"deck"`
	LogLevel   string           `yaml:"log_level"`
}

func DefaultConfig() *Config {
	hex := surface.DefaultPaletteHex()
	return &Config{
		Alignment: render.AlignCenter.String(),
		FPS:       30,
		VisualGain: VisualGainConfig{
			All:  1,
			Low:  1,
			Mid:  1,
			High: 1,
		},
		Colors: ColorConfig{
			Low:        hex.Low,
			Mid:        hex.Mid,
			High:       hex.High,
			Axes:       hex.Axes,
			Background: hex.Background,
		},
		Deck: DeckConfig{
			Zoom: 8 * time.Second,
			Gain: 1,
			BPM:  124,
			Seed: 1,
		},
		LogLevel: "info",
	}
}

// LoadFromFile overlays the YAML file at path onto c.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// TryLoadDefault loads the first config file found in the usual places.
// It returns the path used, or "" when none exists.
func (c *Config) TryLoadDefault() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	paths := []string{
		filepath.Join(home, ".config", "bandscope", "config.yaml"),
		filepath.Join(home, ".config", "bandscope", "config.yml"),
		filepath.Join(home, ".bandscope.yaml"),
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, c.LoadFromFile(p)
		}
	}
	return "", nil
}

// Validate checks every field that has a restricted domain.
func (c *Config) Validate() error {
	if _, err := c.ParsedAlignment(); err != nil {
		return err
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w: got %d", ErrInvalidFPS, c.FPS)
	}
	if c.Deck.Zoom <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidZoom, c.Deck.Zoom)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

func (c *Config) ParsedAlignment() (render.Alignment, error) {
	return render.ParseAlignment(c.Alignment)
}

// VisualGains converts the visual_gain section for the gain resolver.
func (c *Config) VisualGains() bands.VisualGains {
	return bands.VisualGains{
		All:  c.VisualGain.All,
		Band: [bands.Count]float64{c.VisualGain.Low, c.VisualGain.Mid, c.VisualGain.High},
	}
}

func (c *Config) Palette() (surface.Palette, error) {
	return surface.PaletteHex{
		Low:        c.Colors.Low,
		Mid:        c.Colors.Mid,
		High:       c.Colors.High,
		Axes:       c.Colors.Axes,
		Background: c.Colors.Background,
	}.Parse()
}

// FrameInterval is the time between rendered frames.
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FPS)
}
