// Package starfield renders a drifting, twinkling field of point-lights
// onto a host-provided 2D surface.
package starfield

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
)

const (
	DefaultParticleCount = 200
	DefaultSizeStep      = 3
	DefaultAccentRatio   = 0.3
)

// Config selects the field variant. Zero counts and steps fall back to the
// defaults.
type Config struct {
	ParticleCount int
	// Pixelated draws grid-snapped squares without anti-aliasing.
	Pixelated bool
	SizeStep  int
	// FullDocumentHeight makes the surface span the whole scrollable page
	// instead of the viewport.
	FullDocumentHeight bool
	Tinted             bool
	// AccentRatio is the share of accent particles when tinted. Zero means
	// none; a negative value selects DefaultAccentRatio.
	AccentRatio float64
}

func (c Config) withDefaults() Config {
	if c.ParticleCount <= 0 {
		c.ParticleCount = DefaultParticleCount
	}
	if c.SizeStep <= 0 {
		c.SizeStep = DefaultSizeStep
	}
	if c.AccentRatio < 0 {
		c.AccentRatio = DefaultAccentRatio
	}
	c.AccentRatio = min(c.AccentRatio, 1)
	return c
}

// Option customizes a Field at attach time.
type Option func(*Field)

// WithRand replaces the random source. fn must return uniform values in [0, 1).
func WithRand(fn func() float64) Option {
	return func(f *Field) {
		if fn != nil {
			f.rand = fn
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Field) {
		if l != nil {
			f.log = l
		}
	}
}

func WithPalette(p Palette) Option {
	return func(f *Field) { f.palette = p }
}

// Stats is a snapshot of the field counters.
type Stats struct {
	Frames        uint64
	Wraps         uint64
	Regenerations uint64 // population builds, the initial one included
	Particles     int
	Width         int
	Height        int
	Running       bool
}

// Field owns a particle population and its render loop. All methods must
// be called from the goroutine that runs the host's frame callbacks.
type Field struct {
	surface Surface
	host    Host
	ctx     Context
	cfg     Config
	rand    func() float64
	log     *slog.Logger
	palette Palette

	particles     []Particle
	width, height int

	running bool
	frame   FrameID
	detach  []func()

	frames, wraps, regenerations uint64
}

// Attach binds a field to surface and builds the initial population.
// When the surface has no 2D context the failure is logged, an inert
// field is returned together with ErrSurfaceUnavailable, and Start and
// Stop on it do nothing.
func Attach(surface Surface, host Host, cfg Config, opts ...Option) (*Field, error) {
	f := &Field{
		surface: surface,
		host:    host,
		cfg:     cfg.withDefaults(),
		rand:    rand.Float64,
		log:     slog.Default(),
		palette: DefaultPalette(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if surface == nil || host == nil {
		f.log.Warn("starfield disabled", "reason", "missing surface or host")
		return f, ErrSurfaceUnavailable
	}
	ctx, err := surface.Context()
	if err == nil && ctx == nil {
		err = ErrSurfaceUnavailable
	}
	if err != nil {
		if !errors.Is(err, ErrSurfaceUnavailable) {
			err = fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
		}
		f.log.Warn("starfield disabled", "error", err)
		return f, err
	}
	f.ctx = ctx

	f.onGeometryChanged()
	f.log.Debug("starfield attached",
		"particle_count", f.cfg.ParticleCount,
		"pixelated", f.cfg.Pixelated,
		"tinted", f.cfg.Tinted,
		"full_document_height", f.cfg.FullDocumentHeight,
	)
	return f, nil
}

// Start begins the render loop. Calling it on a running field does nothing.
func (f *Field) Start() {
	if f.ctx == nil || f.running {
		return
	}
	f.running = true
	f.detach = append(f.detach, f.host.OnResize(f.onGeometryChanged))
	if f.cfg.FullDocumentHeight {
		f.detach = append(f.detach, f.host.OnContentResize(f.onGeometryChanged))
	}

	// the geometry may have moved while no listener was attached
	if w, h := f.target(); w != f.width || h != f.height {
		f.onGeometryChanged()
	}
	f.frame = f.host.RequestFrame(f.tick)
}

// Stop cancels the pending frame and detaches every listener. Once it
// returns the surface is no longer touched. Safe to call repeatedly.
func (f *Field) Stop() {
	if !f.running {
		return
	}
	f.running = false
	f.host.CancelFrame(f.frame)
	for _, detach := range f.detach {
		detach()
	}
	f.detach = f.detach[:0]
}

// Running reports whether the render loop is active.
func (f *Field) Running() bool { return f.running }

// Particles returns a copy of the current population.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

func (f *Field) Stats() Stats {
	return Stats{
		Frames:        f.frames,
		Wraps:         f.wraps,
		Regenerations: f.regenerations,
		Particles:     len(f.particles),
		Width:         f.width,
		Height:        f.height,
		Running:       f.running,
	}
}

func (f *Field) tick() {
	if !f.running {
		return
	}
	f.render()
	f.frames++
	f.frame = f.host.RequestFrame(f.tick)
}

// target returns the surface dimensions the current geometry calls for.
func (f *Field) target() (int, int) {
	w, h := f.host.ViewportSize()
	if f.cfg.FullDocumentHeight {
		if ch := f.host.ContentHeight(); ch > h {
			h = ch
		}
	}
	return max(w, 0), max(h, 0)
}

// onGeometryChanged handles both viewport resize and content growth.
// It resizes the surface and rebuilds the whole population before
// returning, so the next frame sees either the old or the new state.
func (f *Field) onGeometryChanged() {
	w, h := f.target()
	f.surface.Resize(w, h)
	f.width, f.height = w, h
	f.populate()
	f.log.Debug("starfield regenerated", "width", w, "height", h, "particle_count", len(f.particles))
}

func (f *Field) populate() {
	n := f.cfg.ParticleCount
	if cap(f.particles) < n {
		f.particles = make([]Particle, n)
	}
	f.particles = f.particles[:n]
	w, h := float64(f.width), float64(f.height)
	for i := range f.particles {
		f.spawn(&f.particles[i], w, h)
	}
	f.regenerations++
}
