package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	preset := flag.String("preset", "", "Field preset: "+strings.Join(config.PresetNames(), ", "))
	contentPath := flag.String("content", "", "Path to content.json")
	soundtrack := flag.String("soundtrack", "", "Background track (.wav, .mp3, .flac)")
	tracePath := flag.String("trace", "", "Write a CSV frame trace to this file")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logJSON := flag.Bool("log-json", false, "Log JSON instead of text")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, hopts)
	if *logJSON {
		handler = slog.NewJSONHandler(os.Stderr, hopts)
	}
	slog.SetDefault(slog.New(handler))

	if err := run(*configPath, *preset, *contentPath, *soundtrack, *tracePath, *seed); err != nil {
		slog.Error("starfield exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath, preset, contentPath, soundtrack, tracePath string, seed int64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return err
		}
	}
	if contentPath != "" {
		cfg.Content.Path = contentPath
	}
	if soundtrack != "" {
		cfg.Soundtrack.Path = soundtrack
	}
	if tracePath != "" {
		cfg.Trace.Path = tracePath
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var trace io.Writer
	if cfg.Trace.Path != "" {
		f, err := os.Create(cfg.Trace.Path)
		if err != nil {
			return fmt.Errorf("creating trace file: %w", err)
		}
		defer f.Close()
		trace = f
	}

	g, err := game.NewGame(game.Options{
		Config: cfg,
		Logger: slog.Default(),
		Seed:   seed,
		Trace:  trace,
	})
	if err != nil {
		return err
	}
	defer g.Close()

	slog.Info("starting starfield",
		"seed", seed,
		"particle_count", cfg.Field.ParticleCount,
		"pixelated", cfg.Field.Pixelated,
		"tinted", cfg.Field.Tinted,
		"full_document_height", cfg.Field.FullDocumentHeight,
	)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title + " - Space: pause, O: soundtrack, M: mute, Esc/Q: quit")
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
