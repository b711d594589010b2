package config

import "sort"

// Presets are named, known-stable run descriptions.
var Presets = map[string]*Config{
	"gauss-diagonal": {
		NX: 128, NY: 128, Init: "gauss", Flow: "diagonal",
		Diffusivity: 0.0005, TEnd: 1.0, Steps: 2000,
	},
	"sinus-diagonal": {
		NX: 128, NY: 128, Init: "sinus", Flow: "diagonal",
		Diffusivity: 0, TEnd: 1.0, Steps: 2000,
	},
	"gauss-vortex": {
		NX: 192, NY: 192, Init: "gauss", Flow: "circular",
		Diffusivity: 0.0002, TEnd: 2.0, Steps: 8000,
	},
	"cross-swirl": {
		NX: 192, NY: 192, Init: "cross", Flow: "circular2",
		Diffusivity: 0.0002, TEnd: 2.0, Steps: 8000,
	},
	"cross2-swirl": {
		NX: 192, NY: 192, Init: "cross2", Flow: "circular2",
		Diffusivity: 0.0005, TEnd: 2.0, Steps: 8000,
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
