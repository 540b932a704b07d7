package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != WindowWidth || cfg.Window.Height != WindowHeight {
		t.Errorf("window = %dx%d, want %dx%d", cfg.Window.Width, cfg.Window.Height, WindowWidth, WindowHeight)
	}
	if cfg.Field.ParticleCount != 200 || cfg.Field.SizeStep != 3 {
		t.Errorf("field = %+v", cfg.Field)
	}
	if cfg.TraceInterval() != 60 {
		t.Errorf("trace interval = %d, want 60", cfg.TraceInterval())
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("field:\n  particle_count: 42\n  pixelated: true\nsoundtrack:\n  volume: 10\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Field.ParticleCount != 42 || !cfg.Field.Pixelated {
		t.Errorf("field = %+v, want overlay applied", cfg.Field)
	}
	// untouched keys keep their defaults
	if cfg.Field.SizeStep != 3 || cfg.Window.Width != WindowWidth {
		t.Errorf("defaults lost: %+v %+v", cfg.Field, cfg.Window)
	}
	if cfg.Soundtrack.Volume != 10 {
		t.Errorf("volume = %d, want 10", cfg.Soundtrack.Volume)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("field: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("field:\n  accent_ratio: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"malformed yaml", bad},
		{"out of range", invalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			if err := cfg.ApplyPreset(name); err != nil {
				t.Fatalf("ApplyPreset: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset fails validation: %v", err)
			}
			sc := cfg.StarfieldConfig()
			if sc.ParticleCount != Presets[name].ParticleCount || sc.Pixelated != Presets[name].Pixelated {
				t.Errorf("starfield config = %+v, want %+v", sc, Presets[name])
			}
		})
	}

	if err := cfg.ApplyPreset("vaporwave"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
}
