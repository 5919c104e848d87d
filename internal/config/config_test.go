package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.N != 15 {
		t.Errorf("expected N 15, got %d", cfg.N)
	}
	if cfg.MaxAttempts <= 0 {
		t.Error("max attempts should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"small N", func(c *Config) { c.N = 3 }},
		{"huge N", func(c *Config) { c.N = 1000 }},
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"negative workers", func(c *Config) { c.Engine.Workers = -1 }},
		{"no data dir", func(c *Config) { c.DataDir = "" }},
		{"too many qubits", func(c *Config) { c.N = 255; c.RegisterA = 20 }},
		{"zero runs", func(c *Config) { c.Ensemble.Runs = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLogLevelValidation(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error", "disabled"} {
		if err := validate.Var(level, "loglevel"); err != nil {
			t.Errorf("level %q should validate: %v", level, err)
		}
	}
	if err := validate.Var("loud", "loglevel"); err == nil {
		t.Error("expected unknown level to fail")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("twentyone")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.N != 21 {
		t.Errorf("expected N 21, got %d", cfg.N)
	}
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("preset should inherit defaults, got data dir %q", cfg.DataDir)
	}

	cfg.N = 99
	if Presets["twentyone"].N != 21 {
		t.Error("GetPreset must not hand out the shared preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shorsim.yaml")

	cfg := DefaultConfig()
	cfg.N = 21
	cfg.Seed = 7
	cfg.Engine.Workers = 2
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.N != 21 || loaded.Seed != 7 || loaded.Engine.Workers != 2 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("n: 35\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.N != 35 {
		t.Errorf("expected N 35, got %d", cfg.N)
	}
	if cfg.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("expected default attempts, got %d", cfg.MaxAttempts)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("n: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for n below 4")
	}
}

func TestFactorizerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Workers = 3
	cfg.Engine.ParallelThreshold = 64

	fc := cfg.Factorizer(zerolog.Nop())
	if fc.MaxAttempts != cfg.MaxAttempts || fc.Seed != cfg.Seed {
		t.Errorf("unexpected factorizer config: %+v", fc)
	}
	if fc.Engine.Workers != 3 || fc.Engine.ParallelThreshold != 64 {
		t.Errorf("unexpected engine: %+v", fc.Engine)
	}
}
