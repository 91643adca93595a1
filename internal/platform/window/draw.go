package window

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
)

var (
	backgroundColor = colornames.Black
	hudBackground   = color.RGBA{R: 0x14, G: 0x14, B: 0x1e, A: 0xff}
	overlayShade    = color.RGBA{A: 0xb0}
	ballColor       = colornames.White
	heartColor      = colornames.Deeppink
)

// debugCharWidth is the advance of the ebitenutil debug font.
const debugCharWidth = 6

// Draw renders the HUD strip, the playfield and any state overlay.
func (f *Frontend) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s := f.game.Session()
	if s == nil || s.World() == nil {
		return
	}
	w := s.World()

	ox, oy := shakeOffset(w.Shake, w.Ticks())
	oy += hudHeight

	for i := range w.Blocks {
		b := &w.Blocks[i]
		alpha := w.BlockAlpha(i)
		if alpha <= 0.05 {
			continue
		}
		fillRect(screen, b.X+ox, b.Y+oy, b.W-1, b.H-1, toNRGBA(b.Color, alpha))
	}
	for _, p := range w.PowerUps {
		box := p.Box()
		fillRect(screen, box.X+ox, box.Y+oy, box.W, box.H, toNRGBA(p.Kind.Color(), 1))
		label := powerUpLabel(p.Kind)
		ebitenutil.DebugPrintAt(screen, label,
			int(p.X+ox)-len(label)*debugCharWidth/2, int(box.Y+oy))
	}
	for _, p := range w.Particles {
		fillRect(screen, p.X-p.Size/2+ox, p.Y-p.Size/2+oy, p.Size, p.Size, toNRGBA(p.Color, p.Life))
	}

	pd := w.Paddle
	fillRect(screen, pd.X+ox, pd.Y+oy, pd.Width, pd.Height, toNRGBA(pd.Color, 1))
	for _, b := range w.Balls {
		vector.DrawFilledCircle(screen, float32(b.X+ox), float32(b.Y+oy), float32(b.Radius), ballColor, true)
	}

	f.drawHUD(screen, s)
	drawOverlay(screen, s)
}

func (f *Frontend) drawHUD(screen *ebiten.Image, s *breakout.Session) {
	vector.DrawFilledRect(screen, 0, 0, fieldWidth, hudHeight, hudBackground, false)
	w := s.World()

	if s.Mode() == levelgen.Modern {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE: %d  LVL: %d", s.Score(), s.Level()), 8, 4)
		if f.noticeLeft > 0 {
			ebitenutil.DebugPrintAt(screen, f.notice, fieldWidth-8-len(f.notice)*debugCharWidth, 4)
			return
		}
		n, x := heartRow(s.Lives())
		for i := range n {
			drawHeart(screen, x+float64(i)*heartStep, 6)
		}
		return
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", s.Score()), 8, 4)
	ebitenutil.DebugPrintAt(screen,
		centered(fmt.Sprintf("Level %d/%d", s.Level(), levelgen.MaxLevels)), 0, 4)

	right := fmt.Sprintf("Lives: %d", s.Lives())
	if w.Modifier != levelgen.ModNone {
		right = strings.ReplaceAll(w.Modifier.String(), "_", " ") + "  " + right
	}
	if f.noticeLeft > 0 {
		right = f.notice
	}
	ebitenutil.DebugPrintAt(screen, right, fieldWidth-8-len(right)*debugCharWidth, 4)
}

func drawOverlay(screen *ebiten.Image, s *breakout.Session) {
	var title, subtitle string
	switch s.State() {
	case breakout.StatePaused:
		title, subtitle = "PAUSED", "P resume  R retry  Esc quit"
	case breakout.StateLevelComplete:
		title = fmt.Sprintf("LEVEL %d COMPLETE", s.Level())
		subtitle = fmt.Sprintf("Score: %d  |  N next  R retry", s.Score())
	case breakout.StateGameOver:
		title, subtitle = "GAME OVER", fmt.Sprintf("Score: %d  |  R retry  Esc quit", s.Score())
	case breakout.StateAllLevelsComplete:
		title, subtitle = "ALL LEVELS COMPLETE", fmt.Sprintf("Final Score: %d  |  R play again", s.Score())
	default:
		return
	}

	const boxH = 60
	boxW := float32(max(len(title), len(subtitle))*debugCharWidth + 40)
	x := (fieldWidth - boxW) / 2
	y := float32(hudHeight+fieldHeight/2) - boxH/2
	vector.DrawFilledRect(screen, x, y, boxW, boxH, overlayShade, false)
	vector.StrokeRect(screen, x, y, boxW, boxH, 2, colornames.White, false)
	ebitenutil.DebugPrintAt(screen, centered(title), 0, int(y)+12)
	ebitenutil.DebugPrintAt(screen, centered(subtitle), 0, int(y)+34)
}

// heartMask is the pixel art of one life in the modern HUD.
var heartMask = []string{
	".##.##.",
	"#######",
	"#######",
	".#####.",
	"..###..",
	"...#...",
}

const (
	heartPixel = 2
	heartStep  = 7*heartPixel + 4
	maxHearts  = 20
)

// heartRow returns how many hearts to draw and the x of the first one so
// the row ends at the right margin.
func heartRow(lives int) (int, float64) {
	n := max(min(lives, maxHearts), 0)
	return n, float64(fieldWidth - 8 - n*heartStep + 4)
}

func drawHeart(dst *ebiten.Image, x, y float64) {
	for r, line := range heartMask {
		for c, px := range line {
			if px == '#' {
				fillRect(dst, x+float64(c*heartPixel), y+float64(r*heartPixel), heartPixel, heartPixel, heartColor)
			}
		}
	}
}

// centered pads s with spaces so it starts at column 0 and sits mid-field.
func centered(s string) string {
	pad := (fieldWidth/debugCharWidth - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

// toNRGBA converts an engine color with an opacity in [0, 1].
func toNRGBA(c core.Color, alpha float64) color.NRGBA {
	rgba := c.RGBA()
	return color.NRGBA{
		R: rgba.R,
		G: rgba.G,
		B: rgba.B,
		A: uint8(math.Round(core.ClampF(alpha, 0, 1) * 255)), //#nosec G115 -- clamped to [0, 255]
	}
}

// shakeOffset jitters the playfield while shake is above the wall-hit level.
// The offset alternates sign each tick and scales with the shake strength.
func shakeOffset(shake float64, ticks uint64) (float64, float64) {
	if shake <= 1 {
		return 0, 0
	}
	d := math.Min(shake, 15) / 3
	if ticks%2 == 1 {
		return -d, d / 2
	}
	return d, -d / 2
}

// powerUpLabel uses ASCII since the debug font has no symbols.
func powerUpLabel(k breakout.PowerUpKind) string {
	switch k {
	case breakout.PowerExpand:
		return "<>"
	case breakout.PowerMulti:
		return "oo"
	default:
		return "*"
	}
}

// pointerFraction maps a cursor x in logical pixels to [0, 1] of the field.
func pointerFraction(x int) float64 {
	return core.ClampF(float64(x)/fieldWidth, 0, 1)
}
