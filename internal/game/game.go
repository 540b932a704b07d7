// Package game hosts the starfield in an ebiten window, playing the part
// of the promo page around it.
package game

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/content"
	"github.com/iburimskiy/starfield/internal/starfield"
	"github.com/iburimskiy/starfield/internal/telemetry"
)

// Options configures a Game.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	Seed   int64
	// Trace receives the CSV frame trace; nil disables it.
	Trace io.Writer
}

// Game implements ebiten.Game.
type Game struct {
	cfg *config.Config
	log *slog.Logger

	host    *host
	surface *imageSurface
	field   *starfield.Field

	// page
	page        *content.Content
	pageLayout  []content.Section
	pageHeight  int
	layoutFor   int // viewport height pageLayout was built for
	pageResults <-chan content.Result
	cancelLoad  context.CancelFunc
	scrollY     float64

	// latest size reported by Layout, applied on the next Update
	outsideW, outsideH int

	music *soundtrack

	trace      *telemetry.Writer
	traceEvery uint64
	lastFrame  uint64 // field frame of the last trace row
	lastSample time.Time

	paused  bool
	closed  bool
	lastErr error
}

// NewGame attaches and starts the field. A surface without a drawing
// context only disables the background.
func NewGame(opts Options) (*Game, error) {
	if opts.Config == nil {
		return nil, errors.New("game: nil config")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	cfg := opts.Config
	w, h := cfg.Window.Width, cfg.Window.Height

	g := &Game{
		cfg:        cfg,
		log:        log,
		host:       newHost(w, h),
		surface:    newImageSurface(),
		outsideW:   w,
		outsideH:   h,
		music:      newSoundtrack(log, cfg.Soundtrack.Volume, cfg.Soundtrack.Muted),
		traceEvery: uint64(cfg.TraceInterval()),
		lastSample: time.Now(),
	}

	field, err := starfield.Attach(g.surface, g.host, cfg.StarfieldConfig(),
		starfield.WithRand(rand.New(rand.NewSource(opts.Seed)).Float64),
		starfield.WithLogger(log),
	)
	if err != nil && !errors.Is(err, starfield.ErrSurfaceUnavailable) {
		return nil, err
	}
	g.field = field
	g.field.Start()

	if cfg.Content.Path != "" {
		ctx, cancel := context.WithCancel(context.Background())
		g.cancelLoad = cancel
		g.pageResults = content.LoadAsync(ctx, cfg.Content.Path)
	}

	if cfg.Soundtrack.Path != "" {
		if err := g.music.play(cfg.Soundtrack.Path); err != nil {
			log.Error("soundtrack failed", "path", cfg.Soundtrack.Path, "error", err)
			g.lastErr = err
		}
	}

	if opts.Trace != nil {
		g.trace = telemetry.NewWriter(opts.Trace)
	}
	return g, nil
}

func (g *Game) Update() error {
	g.applyPage()
	g.host.setGeometry(g.outsideW, g.outsideH, g.documentHeight(g.outsideH))

	if err := g.handleInput(); err != nil {
		return err
	}

	g.host.runFrames()
	g.sampleTrace()
	return nil
}

func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.music.toggleMute()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.openSoundtrackDialog(); err != nil {
			g.lastErr = err
		}
	}

	var dy float64
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		dy = float64(g.outsideH)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		dy = -float64(g.outsideH)
	case ebiten.IsKeyPressed(ebiten.KeyDown):
		dy = config.ScrollStep / 4
	case ebiten.IsKeyPressed(ebiten.KeyUp):
		dy = -config.ScrollStep / 4
	}
	_, wheel := ebiten.Wheel()
	dy -= wheel * config.WheelFactor
	g.scroll(dy)
	return nil
}

// togglePause stops or restarts the field together with the soundtrack.
func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.field.Stop()
	} else {
		g.field.Start()
		// paused wall time is not frame time
		g.lastSample = time.Now()
	}
	g.music.setPaused(g.paused)
	g.log.Debug("pause toggled", "paused", g.paused)
}

func (g *Game) openSoundtrackDialog() error {
	path, err := chooseSoundtrack()
	if err != nil || path == "" {
		return err
	}
	return g.music.play(path)
}

// applyPage takes a finished content load, if any.
func (g *Game) applyPage() {
	if g.pageResults == nil {
		return
	}
	select {
	case res, ok := <-g.pageResults:
		g.pageResults = nil
		if !ok {
			return
		}
		if res.Err != nil {
			g.log.Error("failed to load content", "path", g.cfg.Content.Path, "error", res.Err)
			g.lastErr = res.Err
			return
		}
		g.page = res.Content
		g.pageLayout = nil
		g.log.Info("content loaded",
			"game", res.Content.GameName,
			"elapsed", res.Elapsed.Round(time.Microsecond),
		)
	default:
	}
}

// documentHeight is the scrollable page height for a viewport of height h.
func (g *Game) documentHeight(h int) int {
	if g.page == nil {
		return h
	}
	g.layout(h)
	return g.pageHeight
}

// layout returns the page sections for a viewport of height h, rebuilding
// them only when h changes.
func (g *Game) layout(h int) []content.Section {
	if g.page == nil {
		return nil
	}
	if g.pageLayout == nil || g.layoutFor != h {
		g.pageLayout = g.page.Sections(h)
		g.pageHeight = content.LayoutHeight(g.pageLayout)
		g.layoutFor = h
	}
	return g.pageLayout
}

func (g *Game) scroll(dy float64) {
	limit := float64(max(g.host.ContentHeight()-g.host.viewportH, 0))
	g.scrollY = clampf(g.scrollY+dy, 0, limit)
}

func (g *Game) sampleTrace() {
	if g.trace == nil {
		return
	}
	stats := g.field.Stats()
	if stats.Frames < g.lastFrame+g.traceEvery {
		return
	}
	now := time.Now()
	advanced := stats.Frames - g.lastFrame
	rec := telemetry.NewRecord(stats, now.Sub(g.lastSample)/time.Duration(advanced))
	g.lastFrame = stats.Frames
	g.lastSample = now
	if err := g.trace.Write(rec); err != nil {
		g.log.Error("trace write failed", "error", err)
		g.trace = nil
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outsideW, g.outsideH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Field exposes the running field.
func (g *Game) Field() *starfield.Field { return g.field }

// Close stops the field and releases the surface and the soundtrack.
// Safe to call more than once.
func (g *Game) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.field.Stop()
	if g.cancelLoad != nil {
		g.cancelLoad()
	}
	g.surface.Dispose()
	g.music.close()
	if g.trace != nil {
		return g.trace.Flush()
	}
	return nil
}
