package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
)

// ErrUnsupportedFormat is returned for soundtrack files beep cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported soundtrack format")

// soundtrack loops one background track: file -> loop -> volume -> ctrl -> speaker.
type soundtrack struct {
	log *slog.Logger

	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	volume      *effects.Volume

	percent  int
	muted    bool
	paused   bool
	initDone bool
}

func newSoundtrack(log *slog.Logger, percent int, muted bool) *soundtrack {
	return &soundtrack{log: log, percent: percent, muted: muted}
}

// chooseSoundtrack asks the user for a track. An empty path means the
// dialog was cancelled.
func chooseSoundtrack() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Choose Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, *os.File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var dec func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)
	switch ext {
	case ".wav":
		dec = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".mp3":
		dec = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	case ".flac":
		dec = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }
	default:
		return nil, beep.Format{}, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, nil, err
	}
	streamer, format, err := dec(f)
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return streamer, format, f, nil
}

// play replaces the current track with path, looping forever.
func (s *soundtrack) play(path string) error {
	streamer, format, f, err := decode(path)
	if err != nil {
		return err
	}

	// (Re)initialize speaker if needed
	bufferSize := format.SampleRate.N(time.Second / 20)
	if !s.initDone || s.format.SampleRate != format.SampleRate {
		if s.initDone {
			speaker.Clear()
		}
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("initializing speaker: %w", err)
		}
		s.initDone = true
	} else {
		speaker.Clear()
	}
	s.closeStream()

	s.volume = &effects.Volume{Streamer: beep.Loop(-1, streamer), Base: 2}
	s.applyVolume()
	s.ctrl = &beep.Ctrl{Streamer: s.volume, Paused: s.paused}
	s.currentFile = f
	s.streamer = streamer
	s.format = format

	speaker.Play(s.ctrl)
	s.log.Info("soundtrack playing", "path", path, "sample_rate", int(format.SampleRate))
	return nil
}

func (s *soundtrack) playing() bool { return s.ctrl != nil }

func (s *soundtrack) setPaused(paused bool) {
	s.paused = paused
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
}

func (s *soundtrack) toggleMute() {
	s.muted = !s.muted
	if s.volume == nil {
		return
	}
	speaker.Lock()
	s.applyVolume()
	speaker.Unlock()
}

func (s *soundtrack) applyVolume() {
	s.volume.Volume, s.volume.Silent = volumeFor(s.percent, s.muted)
}

// volumeFor maps a 0..100 percentage onto beep's base-2 volume.
func volumeFor(percent int, muted bool) (float64, bool) {
	if muted || percent <= 0 {
		return 0, true
	}
	return math.Log2(float64(min(percent, 100)) / 100), false
}

// position reports the playhead within the current loop.
func (s *soundtrack) position() (time.Duration, time.Duration) {
	if s.streamer == nil {
		return 0, 0
	}
	speaker.Lock()
	pos, n := s.streamer.Position(), s.streamer.Len()
	speaker.Unlock()
	return s.format.SampleRate.D(pos), s.format.SampleRate.D(n)
}

func (s *soundtrack) status() string {
	if s.streamer == nil {
		return "no soundtrack (O to choose)"
	}
	pos, total := s.position()
	state := "playing"
	switch {
	case s.paused:
		state = "paused"
	case s.muted:
		state = "muted"
	}
	return fmt.Sprintf("soundtrack %s %s / %s", state, formatDuration(pos), formatDuration(total))
}

func (s *soundtrack) closeStream() {
	if s.streamer != nil {
		_ = s.streamer.Close()
		s.streamer = nil
	}
	if s.currentFile != nil {
		_ = s.currentFile.Close()
		s.currentFile = nil
	}
	s.ctrl = nil
	s.volume = nil
}

func (s *soundtrack) close() {
	if s.initDone {
		speaker.Clear()
	}
	s.closeStream()
}
