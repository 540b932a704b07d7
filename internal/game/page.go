package game

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/starfield/internal/config"
)

var (
	backgroundTop    = color.RGBA{R: 12, G: 8, B: 14, A: 255}
	backgroundBottom = color.RGBA{R: 26, G: 10, B: 16, A: 255}
	navBarColor      = color.RGBA{R: 20, G: 16, B: 24, A: 200}
	navBorderColor   = color.RGBA{R: 90, G: 40, B: 50, A: 160}

	navLinks = []string{"How to Play", "Features", "Team", "Community", "Feedback"}
)

// gradientBand is the height of one background colour step.
const gradientBand = 8

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawField(screen)
	g.drawSections(screen)
	g.drawNavBar(screen)
	g.drawStatus(screen)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	for y := 0; y < h; y += gradientBand {
		ratio := float64(y) / float64(max(h, 1))
		c := color.RGBA{
			R: mix(backgroundTop.R, backgroundBottom.R, ratio),
			G: mix(backgroundTop.G, backgroundBottom.G, ratio),
			B: mix(backgroundTop.B, backgroundBottom.B, ratio),
			A: 255,
		}
		vector.DrawFilledRect(screen, 0, float32(y), float32(w), gradientBand, c, false)
	}
}

// drawField blits the starfield. A viewport-sized field stays put; a
// document-sized one scrolls with the page.
func (g *Game) drawField(screen *ebiten.Image) {
	img := g.surface.Image()
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	if g.cfg.Field.FullDocumentHeight {
		op.GeoM.Translate(0, -g.scrollY)
	}
	screen.DrawImage(img, op)
}

func (g *Game) drawSections(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if g.page == nil {
		if g.pageResults != nil {
			ebitenutil.DebugPrintAt(screen, "Loading...", w/2-30, h/2)
		}
		return
	}

	y := config.NavBarHeight - int(g.scrollY)
	for _, s := range g.layout(g.host.viewportH) {
		sh := s.Height()
		if y+sh >= 0 && y < h {
			g.drawSection(screen, s.Title, s.Lines, y, sh, s.ID == "hero")
		}
		y += sh
	}
}

func (g *Game) drawSection(screen *ebiten.Image, title string, lines []string, top, height int, centered bool) {
	w := screen.Bounds().Dx()
	x := config.SectionMargin
	y := top + config.SectionMargin
	if centered {
		// vertically centre the hero text
		textH := config.LineHeight * (len(lines) + 1)
		y = top + (height-textH)/2
	}
	at := func(s string, y int) {
		if centered {
			x = (w - textWidth(s)) / 2
		}
		ebitenutil.DebugPrintAt(screen, s, x, y)
	}
	if title != "" {
		at(strings.ToUpper(title), y)
	}
	for i, line := range lines {
		at(line, y+config.LineHeight*(i+1))
	}
}

func (g *Game) drawNavBar(screen *ebiten.Image) {
	w := screen.Bounds().Dx()
	vector.DrawFilledRect(screen, 0, 0, float32(w), config.NavBarHeight, navBarColor, false)
	vector.StrokeLine(screen, 0, config.NavBarHeight, float32(w), config.NavBarHeight, 1, navBorderColor, false)

	name := g.cfg.Window.Title
	if g.page != nil {
		name = g.page.GameName
	}
	ebitenutil.DebugPrintAt(screen, name, config.SectionMargin, config.NavBarHeight/2-8)

	links := strings.Join(navLinks, "   ")
	ebitenutil.DebugPrintAt(screen, links, w-textWidth(links)-config.SectionMargin, config.NavBarHeight/2-8)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	h := screen.Bounds().Dy()
	status := g.music.status()
	if g.paused {
		status = "paused (Space to resume) | " + status
	}
	if !g.field.Running() && !g.paused {
		status = "background disabled | " + status
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, h-20)
}

// debugGlyphWidth is the advance of the ebitenutil debug font.
const debugGlyphWidth = 6

func textWidth(s string) int {
	return utf8.RuneCountInString(s) * debugGlyphWidth
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
