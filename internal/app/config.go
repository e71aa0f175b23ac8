package app

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/rook-computer/lifedesk/internal/render"
	"github.com/rook-computer/lifedesk/internal/state"
)

// Config is read from an optional TOML file. Missing keys keep their defaults.
type Config struct {
	World   WorldConfig   `toml:"world"`
	Display DisplayConfig `toml:"display"`
	Theme   ThemeConfig   `toml:"theme"`
}

type WorldConfig struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	AliveProb float64 `toml:"alive_prob"`
}

type DisplayConfig struct {
	// RefreshRate is the frame clock rate in Hz.
	RefreshRate int `toml:"refresh_rate"`
	// StepEvery advances the world once every StepEvery frames.
	StepEvery   int     `toml:"step_every"`
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	FontSize    float64 `toml:"font_size"`
	Framebuffer string  `toml:"framebuffer"`
	ShowQR      bool    `toml:"show_qr"`
}

type ThemeConfig struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Text       string `toml:"text"`
}

func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Width:     state.DefaultWorld.Width,
			Height:    state.DefaultWorld.Height,
			AliveProb: state.DefaultWorld.AliveProb,
		},
		Display: DisplayConfig{
			RefreshRate: 60,
			StepEvery:   6,
			Width:       render.CanvasWidth,
			Height:      render.CanvasHeight,
			FontSize:    32,
			Framebuffer: "/dev/fb0",
		},
		Theme: ThemeConfig{
			Foreground: "#9000ff",
			Background: "#ffdc00",
			Text:       "#000000",
		},
	}
}

// LoadConfig returns the defaults overlaid with the TOML file at path.
// An empty path returns the defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if cfg.World.Width <= 0 || cfg.World.Height <= 0 {
		return fmt.Errorf("world size must be positive (got %dx%d)", cfg.World.Width, cfg.World.Height)
	}
	if cfg.World.AliveProb < 0 || cfg.World.AliveProb > 1 {
		return fmt.Errorf("alive_prob must be within [0, 1] (got %v)", cfg.World.AliveProb)
	}
	if cfg.Display.Width <= 0 || cfg.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive (got %dx%d)", cfg.Display.Width, cfg.Display.Height)
	}
	_, err := cfg.RenderTheme()
	return err
}

func (cfg Config) WorldConfig() state.WorldConfig {
	return state.WorldConfig{Width: cfg.World.Width, Height: cfg.World.Height, AliveProb: cfg.World.AliveProb}
}

func (cfg Config) RenderTheme() (render.Theme, error) {
	var theme render.Theme
	var err error
	if theme.Foreground, err = render.ParseHexColor(cfg.Theme.Foreground); err != nil {
		return render.Theme{}, fmt.Errorf("theme.foreground: %w", err)
	}
	if theme.Background, err = render.ParseHexColor(cfg.Theme.Background); err != nil {
		return render.Theme{}, fmt.Errorf("theme.background: %w", err)
	}
	if theme.Text, err = render.ParseHexColor(cfg.Theme.Text); err != nil {
		return render.Theme{}, fmt.Errorf("theme.text: %w", err)
	}
	return theme, nil
}
