package config

import (
	"sort"

	"github.com/san-kum/planetfield/internal/field"
)

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"dense": {
		World: field.World{Width: 2000, Height: 2000}, Bodies: 1200,
		Velocity: field.Range{Min: -150, Max: 150}, RadiusSample: field.Range{Min: 4, Max: 200},
		Run: RunConfig{FPS: 60, Frames: 600, Theme: "retro"},
	},
	"sparse": {
		World: field.World{Width: 8000, Height: 8000}, Bodies: 150,
		Velocity: field.Range{Min: -300, Max: 300}, RadiusSample: field.Range{Min: 1, Max: 100},
		Run: RunConfig{FPS: 60, Frames: 600, Theme: "ocean"},
	},
	"giants": {
		World: field.World{Width: 4000, Height: 4000}, Bodies: 40,
		Velocity: field.Range{Min: -150, Max: 150}, RadiusSample: field.Range{Min: 1, Max: 4},
		Run: RunConfig{FPS: 30, Frames: 300, Theme: "minimal"},
	},
	"dust": {
		World: field.World{Width: 4000, Height: 4000}, Bodies: 3000,
		Velocity: field.Range{Min: -150, Max: 150}, RadiusSample: field.Range{Min: 100, Max: 400},
		Run: RunConfig{FPS: 60, Frames: 600, Theme: "cyberpunk"},
	},
	"band": {
		World: field.World{Width: 4000, Height: 4000}, Bodies: 400,
		Velocity: field.Range{Min: -150, Max: 150}, RadiusSample: field.Range{Min: 1, Max: 200},
		PositionY: &field.Range{Min: 1800, Max: 2200},
		Run:       RunConfig{FPS: 60, Frames: 600, Theme: "sunset"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
