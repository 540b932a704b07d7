// Package telemetry writes a CSV trace of the starfield counters.
package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/iburimskiy/starfield/internal/starfield"
)

// Record is one trace sample.
type Record struct {
	Frame         uint64  `csv:"frame"`
	Particles     int     `csv:"particles"`
	Wraps         uint64  `csv:"wraps"`
	Regenerations uint64  `csv:"regenerations"`
	Width         int     `csv:"width"`
	Height        int     `csv:"height"`
	Running       bool    `csv:"running"`
	ElapsedMS     float64 `csv:"elapsed_ms"`
}

// NewRecord builds a sample from field stats.
func NewRecord(s starfield.Stats, elapsed time.Duration) Record {
	return Record{
		Frame:         s.Frames,
		Particles:     s.Particles,
		Wraps:         s.Wraps,
		Regenerations: s.Regenerations,
		Width:         s.Width,
		Height:        s.Height,
		Running:       s.Running,
		ElapsedMS:     float64(elapsed.Microseconds()) / 1000,
	}
}

// Writer appends records to a CSV stream. The header is written with the
// first record.
type Writer struct {
	out         io.Writer
	wroteHeader bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// Write appends r.
func (w *Writer) Write(r Record) error {
	records := []Record{r}
	var err error
	if w.wroteHeader {
		err = gocsv.MarshalWithoutHeaders(records, w.out)
	} else {
		err = gocsv.Marshal(records, w.out)
		w.wroteHeader = err == nil
	}
	if err != nil {
		return fmt.Errorf("writing trace record: %w", err)
	}
	return nil
}

// Flush syncs the underlying writer when it supports it.
func (w *Writer) Flush() error {
	if s, ok := w.out.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

// ReadAll decodes a trace written by Writer.
func ReadAll(r io.Reader) ([]Record, error) {
	var out []Record
	if err := gocsv.Unmarshal(r, &out); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return out, nil
}
