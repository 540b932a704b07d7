package starfield

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// starColor is the light neutral tone of the untinted field.
var starColor = color.NRGBA{R: 230, G: 220, B: 220, A: 255}

// Swatch is an HSV sub-range. Each draw samples a colour inside it.
type Swatch struct {
	HueMin, HueMax float64 // degrees
	SatMin, SatMax float64
	ValMin, ValMax float64
}

func (s Swatch) sample(rnd func() float64) color.NRGBA {
	c := colorful.Hsv(
		lerp(s.HueMin, s.HueMax, rnd()),
		lerp(s.SatMin, s.SatMax, rnd()),
		lerp(s.ValMin, s.ValMax, rnd()),
	)
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Palette holds the two swatches of the tinted variant.
type Palette struct {
	Neutral Swatch
	Accent  Swatch
}

// DefaultPalette is a pale near-white and a warm ember orange.
func DefaultPalette() Palette {
	return Palette{
		Neutral: Swatch{HueMin: 0, HueMax: 20, SatMin: 0.02, SatMax: 0.06, ValMin: 0.86, ValMax: 0.92},
		Accent:  Swatch{HueMin: 15, HueMax: 40, SatMin: 0.55, SatMax: 0.8, ValMin: 0.9, ValMax: 1},
	}
}

func (f *Field) render() {
	f.ctx.Clear()
	f.ctx.SetAntiAlias(!f.cfg.Pixelated)
	for i := range f.particles {
		p := &f.particles[i]
		if f.step(p) {
			f.wraps++
		}
		f.draw(p)
	}
}

func (f *Field) draw(p *Particle) {
	c := f.colorOf(p)
	if f.cfg.Pixelated {
		step := float64(f.cfg.SizeStep)
		x := math.Floor(p.X/step) * step
		y := math.Floor(p.Y/step) * step
		f.ctx.FillRect(x, y, p.Size, p.Size, c)
		return
	}
	f.ctx.FillCircle(p.X, p.Y, p.Size/2, c)
}

func (f *Field) colorOf(p *Particle) color.NRGBA {
	c := starColor
	if f.cfg.Tinted {
		if p.Tint == TintAccent {
			c = f.palette.Accent.sample(f.rand)
		} else {
			c = f.palette.Neutral.sample(f.rand)
		}
	}
	// the state may overshoot by one twinkle step, the alpha may not
	c.A = uint8(math.Round(clamp01(p.Opacity) * 255))
	return c
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
