package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/starfield/internal/starfield"
)

// imageSurface is an offscreen ebiten image the field draws into. An empty
// size leaves it without pixels; drawing is then dropped.
type imageSurface struct {
	img      *ebiten.Image
	w, h     int
	disposed bool
}

func newImageSurface() *imageSurface {
	return &imageSurface{}
}

func (s *imageSurface) Context() (starfield.Context, error) {
	if s.disposed {
		return nil, starfield.ErrSurfaceUnavailable
	}
	return &imageContext{s: s, antiAlias: true}, nil
}

func (s *imageSurface) Resize(w, h int) {
	if s.disposed {
		return
	}
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.w, s.h = w, h
	if w > 0 && h > 0 {
		s.img = ebiten.NewImage(w, h)
	}
}

func (s *imageSurface) Size() (int, int) { return s.w, s.h }

// Image returns the backing image, nil when the surface is empty.
func (s *imageSurface) Image() *ebiten.Image { return s.img }

func (s *imageSurface) Dispose() {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.disposed = true
}

type imageContext struct {
	s         *imageSurface
	antiAlias bool
}

func (c *imageContext) Clear() {
	if c.s.img != nil {
		c.s.img.Clear()
	}
}

func (c *imageContext) SetAntiAlias(on bool) { c.antiAlias = on }

func (c *imageContext) FillCircle(cx, cy, r float64, clr color.Color) {
	if c.s.img == nil {
		return
	}
	vector.DrawFilledCircle(c.s.img, float32(cx), float32(cy), float32(r), clr, c.antiAlias)
}

func (c *imageContext) FillRect(x, y, w, h float64, clr color.Color) {
	if c.s.img == nil {
		return
	}
	vector.DrawFilledRect(c.s.img, float32(x), float32(y), float32(w), float32(h), clr, c.antiAlias)
}
