// Package config loads the TOML configuration of trishade.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Window Window `toml:"window"`
	GL     GL     `toml:"gl"`
	Scene  Scene  `toml:"scene"`
	Log    Log    `toml:"log"`
}

type Window struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	Resizable bool   `toml:"resizable"`
}

type GL struct {
	Major int  `toml:"major"`
	Minor int  `toml:"minor"`
	// Debug enables KHR_debug output when the driver supports it.
	Debug bool `toml:"debug"`
}

type Scene struct {
	// Colored selects the program with a per-vertex color attribute.
	Colored     bool       `toml:"colored"`
	// Animate cycles the color of the first vertex every frame. Requires
	// Colored.
	Animate     bool       `toml:"animate"`
	ClearColor  [4]float32 `toml:"clear_color"`
	CyclePeriod Duration   `toml:"cycle_period"`
}

type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration that is written as a string like "3s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the settings of the original demonstration: an 800x600
// window with a green background and an OpenGL 3.3 core context.
func Default() Config {
	return Config{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "OpenGLTest",
		},
		GL: GL{
			Major: 3,
			Minor: 3,
		},
		Scene: Scene{
			ClearColor:  [4]float32{0, 1, 0, 1},
			CyclePeriod: Duration{3 * time.Second},
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads the file at path on top of the defaults. Keys that do not map to
// a setting are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys: %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("%w: window dimensions must be positive, got %dx%d", ErrInvalid, cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.GL.Major < 3 || (cfg.GL.Major == 3 && cfg.GL.Minor < 3) {
		return fmt.Errorf("%w: OpenGL %d.%d is too old, at least 3.3 is required", ErrInvalid, cfg.GL.Major, cfg.GL.Minor)
	}
	for i, c := range cfg.Scene.ClearColor {
		if c < 0 || c > 1 {
			return fmt.Errorf("%w: clear_color[%d] must be within [0, 1], got %v", ErrInvalid, i, c)
		}
	}
	if cfg.Scene.Animate && !cfg.Scene.Colored {
		return fmt.Errorf("%w: animate requires colored", ErrInvalid)
	}
	if cfg.Scene.CyclePeriod.Duration <= 0 {
		return fmt.Errorf("%w: cycle_period must be positive", ErrInvalid)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, cfg.Log.Level)
	}
	return nil
}
