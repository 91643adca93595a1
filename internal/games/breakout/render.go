package breakout

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
)

// Terminal glyphs.
const (
	BallGlyph       = '●'
	PaddleGlyph     = '▀'
	BrickGlyph      = '█'
	ThinBrickGlyph  = '▬'
	ParticleGlyph   = '·'
	HeartGlyph      = '♥'
	minScreenWidth  = 40
	minScreenHeight = 16
	hudRows         = 1
)

var (
	hudColor  = core.Hex("#ffffff")
	ballColor = core.Hex("#ffffff")
)

// cellMapper projects playfield coordinates onto terminal cells below the HUD.
type cellMapper struct {
	vp     Viewport
	w, h   int
	top    int
	offset int // Horizontal shake offset in cells
}

func (m cellMapper) col(x float64) int {
	return int(math.Floor(x/m.vp.Width*float64(m.w))) + m.offset
}

func (m cellMapper) row(y float64) int {
	return m.top + int(math.Floor(y/m.vp.Height*float64(m.h)))
}

// RenderSession draws the world, the HUD and any state overlay.
func RenderSession(dst *core.Screen, s *Session) {
	dst.Clear()
	if dst.Width() < minScreenWidth || dst.Height() < minScreenHeight {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenWidth, minScreenHeight))
		return
	}
	w := s.World()
	if w == nil {
		return
	}

	m := cellMapper{vp: w.Viewport, w: dst.Width(), h: dst.Height() - hudRows, top: hudRows}
	if w.Shake > shakeWall && w.ticks%2 == 1 {
		m.offset = 1
	}

	renderBlocks(dst, w, m)
	renderPowerUps(dst, w, m)
	renderParticles(dst, w, m)
	renderPaddle(dst, w, m)
	renderBalls(dst, w, m)
	renderHUD(dst, s)
	renderOverlay(dst, s)
}

func renderBlocks(dst *core.Screen, w *World, m cellMapper) {
	glyph := BrickGlyph
	if w.Mode == levelgen.Modern {
		glyph = ThinBrickGlyph
	}
	for i := range w.Blocks {
		b := &w.Blocks[i]
		alpha := w.BlockAlpha(i)
		if alpha <= 0.05 {
			continue
		}
		c := b.Color
		if alpha < 1 {
			c = c.Dim(alpha)
		}
		x0, x1 := m.col(b.X), m.col(b.Right()-1)
		y0, y1 := m.row(b.Y), m.row(b.Bottom()-1)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				dst.SetColored(x, y, glyph, c)
			}
		}
		// A gap column keeps neighbouring classic bricks apart when cells are wide enough.
		if w.Mode == levelgen.Classic && x1-x0 >= 3 {
			for y := y0; y <= y1; y++ {
				dst.Set(x1, y, ' ')
			}
		}
	}
}

func renderPowerUps(dst *core.Screen, w *World, m cellMapper) {
	for _, p := range w.PowerUps {
		label := strings.ToUpper(p.Kind.String()[:1])
		dst.DrawTextColored(m.col(p.X), m.row(p.Y), "["+label+"]", p.Kind.Color())
	}
}

func renderParticles(dst *core.Screen, w *World, m cellMapper) {
	for _, p := range w.Particles {
		dst.SetColored(m.col(p.X), m.row(p.Y), ParticleGlyph, p.Color.Dim(p.Life))
	}
}

func renderPaddle(dst *core.Screen, w *World, m cellMapper) {
	p := w.Paddle
	y := m.row(p.Y)
	for x := m.col(p.X); x <= m.col(p.X+p.Width-1); x++ {
		dst.SetColored(x, y, PaddleGlyph, p.Color)
	}
}

func renderBalls(dst *core.Screen, w *World, m cellMapper) {
	for _, b := range w.Balls {
		dst.SetColored(m.col(b.X), m.row(b.Y), BallGlyph, ballColor)
	}
}

func renderHUD(dst *core.Screen, s *Session) {
	w := s.World()
	if s.Mode() == levelgen.Modern {
		dst.DrawTextColored(1, 0, fmt.Sprintf("SCORE: %d  LVL: %d", s.Score(), s.Level()), hudColor)
		hearts := strings.Repeat(string(HeartGlyph), min(s.Lives(), 20))
		dst.DrawTextColored(dst.Width()-len([]rune(hearts))-1, 0, hearts, modernBonusColor)
		return
	}

	left := fmt.Sprintf("Score: %d", s.Score())
	dst.DrawTextColored(1, 0, left, hudColor)
	dst.DrawTextCenteredColored(0, fmt.Sprintf("Level %d/%d", s.Level(), levelgen.MaxLevels), hudColor)

	right := fmt.Sprintf("Lives: %d", s.Lives())
	if w.Modifier != levelgen.ModNone {
		right = strings.ReplaceAll(w.Modifier.String(), "_", " ") + "  " + right
	}
	dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, hudColor)
}

func renderOverlay(dst *core.Screen, s *Session) {
	switch s.State() {
	case StatePaused:
		drawCenteredBox(dst, "PAUSED", "P resume  R retry  Esc menu")
	case StateLevelComplete:
		drawCenteredBox(dst, fmt.Sprintf("LEVEL %d COMPLETE", s.Level()),
			fmt.Sprintf("Score: %d  |  N next  R retry", s.Score()))
	case StateGameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  R retry  Esc menu", s.Score()))
	case StateAllLevelsComplete:
		drawCenteredBox(dst, "ALL LEVELS COMPLETE", fmt.Sprintf("Final Score: %d  |  R play again", s.Score()))
	}
}

func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, hudColor)
	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorYellow)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
