package config

import "sort"

var Presets = map[string]*Config{
	"fifteen": {
		N: 15, MaxBase: 20, MaxAttempts: 5, Seed: 42,
	},
	"twentyone": {
		N: 21, MaxBase: 20, MaxAttempts: 5, Seed: 42,
	},
	"thirtythree": {
		N: 33, MaxBase: 20, MaxAttempts: 8, Seed: 7,
	},
	"thirtyfive": {
		N: 35, MaxBase: 20, MaxAttempts: 8, Seed: 7,
	},
	"fast": {
		N: 15, MaxBase: 8, MaxAttempts: 3, Seed: 1, RegisterA: 4,
	},
}

// GetPreset returns a copy of the named preset merged onto the defaults, or
// nil if it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.N = p.N
	cfg.MaxBase = p.MaxBase
	cfg.MaxAttempts = p.MaxAttempts
	cfg.Seed = p.Seed
	cfg.RegisterA = p.RegisterA
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
