package config

import (
	"fmt"
	"io"
	"os"

	"github.com/san-kum/planetfield/internal/field"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS    = 60
	DefaultFrames = 600
	DefaultTheme  = "cyberpunk"
)

type Config struct {
	Seed         int64        `yaml:"seed"`
	World        field.World  `yaml:"world"`
	Bodies       int          `yaml:"bodies"`
	Velocity     field.Range  `yaml:"velocity"`
	RadiusSample field.Range  `yaml:"radius_sample"`
	PositionX    *field.Range `yaml:"position_x,omitempty"`
	PositionY    *field.Range `yaml:"position_y,omitempty"`
	Run          RunConfig    `yaml:"run"`
}

type RunConfig struct {
	FPS    int    `yaml:"fps"`
	Frames int    `yaml:"frames"`
	Theme  string `yaml:"theme"`
}

func DefaultConfig() *Config {
	p := field.DefaultParams()
	return &Config{
		World:        p.World,
		Bodies:       p.Count,
		Velocity:     p.Velocity,
		RadiusSample: p.RadiusSample,
		Run: RunConfig{
			FPS:    DefaultFPS,
			Frames: DefaultFrames,
			Theme:  DefaultTheme,
		},
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Params converts the config into generator params. Position ranges default
// to the full world.
func (c *Config) Params() field.Params {
	p := field.ParamsFor(c.World, c.Bodies)
	p.Velocity = c.Velocity
	p.RadiusSample = c.RadiusSample
	if c.PositionX != nil {
		p.PositionX = *c.PositionX
	}
	if c.PositionY != nil {
		p.PositionY = *c.PositionY
	}
	return p
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Run.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Run.FPS)
	}
	if c.Run.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", c.Run.Frames)
	}
	return nil
}

// Clone returns a deep copy, so presets can be tweaked without touching the
// shared table.
func (c *Config) Clone() *Config {
	out := *c
	if c.PositionX != nil {
		r := *c.PositionX
		out.PositionX = &r
	}
	if c.PositionY != nil {
		r := *c.PositionY
		out.PositionY = &r
	}
	return &out
}
