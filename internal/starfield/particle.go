package starfield

import "math"

// Tint selects the palette a particle draws from in the tinted variant.
type Tint uint8

const (
	TintNeutral Tint = iota
	TintAccent
)

func (t Tint) String() string {
	if t == TintAccent {
		return "accent"
	}
	return "neutral"
}

// Particle is one star. Size, Speed and Tint are fixed at spawn; Y and
// Opacity change every frame.
type Particle struct {
	X, Y    float64
	Size    float64
	Speed   float64 // upward drift, px/frame
	Opacity float64
	Twinkle float64 // signed opacity delta per frame
	Tint    Tint
}

const (
	// Margin is how far past the top edge a particle travels before it
	// respawns below the bottom edge.
	Margin = 5.0

	minOpacity = 0.2
	maxOpacity = 1.0

	minSpeed   = 0.05
	speedRange = 0.3

	minTwinkle   = 0.005
	twinkleRange = 0.02

	minSize   = 0.5
	sizeRange = 2.0

	// pixelated particles are one or two grid cells wide
	pixelCells = 2
)

// spawn draws a fresh particle inside a w x h area. Draw order: x, y,
// size, speed, opacity, twinkle, then tint when the field is tinted.
func (f *Field) spawn(p *Particle, w, h float64) {
	p.X = f.rand() * w
	p.Y = f.rand() * h
	if f.cfg.Pixelated {
		step := float64(f.cfg.SizeStep)
		p.Size = step * (1 + math.Floor(f.rand()*pixelCells))
	} else {
		p.Size = f.rand()*sizeRange + minSize
	}
	p.Speed = f.rand()*speedRange + minSpeed
	p.Opacity = minOpacity + f.rand()*(maxOpacity-minOpacity)
	p.Twinkle = f.rand()*twinkleRange + minTwinkle
	p.Tint = TintNeutral
	if f.cfg.Tinted && f.rand() < f.cfg.AccentRatio {
		p.Tint = TintAccent
	}
}

// step advances one particle by a frame and reports whether it wrapped.
// The twinkle flips after the update, so an opacity can sit one step
// outside [0.2, 1] for a single frame before it turns back.
func (f *Field) step(p *Particle) bool {
	p.Opacity += p.Twinkle
	if p.Opacity > maxOpacity || p.Opacity < minOpacity {
		p.Twinkle = -p.Twinkle
	}

	p.Y -= p.Speed
	if p.Y < -Margin {
		p.Y = float64(f.height) + Margin
		p.X = f.rand() * float64(f.width)
		return true
	}
	return false
}
