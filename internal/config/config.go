// Package config loads the starfield host configuration.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/starfield/internal/starfield"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Page layout
	NavBarHeight  = 48
	SectionMargin = 24
	LineHeight    = 16

	// Scrolling
	ScrollStep  = 40
	WheelFactor = 60

	// Trace sampling
	TraceEvery = 60
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrUnknownPreset is returned by ApplyPreset for names not in Presets.
var ErrUnknownPreset = errors.New("config: unknown preset")

// Config holds everything the host needs to run the field.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Field      FieldConfig      `yaml:"field"`
	Content    ContentConfig    `yaml:"content"`
	Soundtrack SoundtrackConfig `yaml:"soundtrack"`
	Trace      TraceConfig      `yaml:"trace"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// FieldConfig mirrors starfield.Config.
type FieldConfig struct {
	ParticleCount      int     `yaml:"particle_count"`
	Pixelated          bool    `yaml:"pixelated"`
	SizeStep           int     `yaml:"size_step"`
	FullDocumentHeight bool    `yaml:"full_document_height"`
	Tinted             bool    `yaml:"tinted"`
	AccentRatio        float64 `yaml:"accent_ratio"`
}

// ContentConfig points at the page content file.
type ContentConfig struct {
	Path string `yaml:"path"`
}

// SoundtrackConfig holds the optional background track.
type SoundtrackConfig struct {
	Path   string `yaml:"path"`
	Volume int    `yaml:"volume"` // percent, 0..100
	Muted  bool   `yaml:"muted"`
}

// TraceConfig controls the CSV frame trace.
type TraceConfig struct {
	Path  string `yaml:"path"`
	Every int    `yaml:"every"` // frames between samples
}

// Presets are the three variants of the site background.
var Presets = map[string]FieldConfig{
	"classic": {ParticleCount: 200},
	"pixel":   {ParticleCount: 250, Pixelated: true, SizeStep: 3, FullDocumentHeight: true},
	"ember":   {ParticleCount: 300, Tinted: true, AccentRatio: 0.3, FullDocumentHeight: true},
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyPreset replaces the field section with a named preset.
func (c *Config) ApplyPreset(name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w %q (have %v)", ErrUnknownPreset, name, PresetNames())
	}
	c.Field = p
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Field.ParticleCount < 0 {
		errs = append(errs, fmt.Errorf("field.particle_count %d must not be negative", c.Field.ParticleCount))
	}
	if c.Field.SizeStep < 0 {
		errs = append(errs, fmt.Errorf("field.size_step %d must not be negative", c.Field.SizeStep))
	}
	if c.Field.AccentRatio < 0 || c.Field.AccentRatio > 1 {
		errs = append(errs, fmt.Errorf("field.accent_ratio %v must be within [0, 1]", c.Field.AccentRatio))
	}
	if c.Soundtrack.Volume < 0 || c.Soundtrack.Volume > 100 {
		errs = append(errs, fmt.Errorf("soundtrack.volume %d must be within [0, 100]", c.Soundtrack.Volume))
	}
	if c.Trace.Every < 0 {
		errs = append(errs, fmt.Errorf("trace.every %d must not be negative", c.Trace.Every))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// StarfieldConfig converts the field section for starfield.Attach.
func (c *Config) StarfieldConfig() starfield.Config {
	return starfield.Config{
		ParticleCount:      c.Field.ParticleCount,
		Pixelated:          c.Field.Pixelated,
		SizeStep:           c.Field.SizeStep,
		FullDocumentHeight: c.Field.FullDocumentHeight,
		Tinted:             c.Field.Tinted,
		AccentRatio:        c.Field.AccentRatio,
	}
}

// TraceInterval returns the frames between trace samples.
func (c *Config) TraceInterval() int {
	if c.Trace.Every <= 0 {
		return TraceEvery
	}
	return c.Trace.Every
}
