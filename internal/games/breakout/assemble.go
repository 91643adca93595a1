package breakout

import (
	"math"

	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
)

// Viewport is the logical playfield every level is laid out in.
type Viewport struct {
	Width  float64
	Height float64
}

// DefaultViewport is the 800x600 playfield the physics constants are tuned for.
var DefaultViewport = Viewport{Width: 800, Height: 600}

// Row geometry per mode.
const (
	classicBlockH  = 22
	classicYOffset = 60
	modernBlockH   = 4
	modernYOffset  = 40
	rowGap         = 2
)

var classicPalette = []core.Color{
	core.Hex("#ff00ff"), core.Hex("#00ff41"), core.Hex("#ff0040"), core.Hex("#ffff00"), core.Hex("#00ffff"),
	core.Hex("#ff8c00"), core.Hex("#a020f0"), core.Hex("#32cd32"), core.Hex("#ff1493"), core.Hex("#0000ff"),
	core.Hex("#ffffff"), core.Hex("#808080"), core.Hex("#008080"), core.Hex("#ffa500"), core.Hex("#ee82ee"),
}

var (
	classicWallColor = core.Hex("#b0b0b0")
	modernSteelColor = core.Hex("#bdc3c7")
	modernBonusColor = core.Hex("#ff1493")
	modernBands      = []struct {
		upTo  float64
		color core.Color
	}{
		{0.3, core.Hex("#4b0082")},
		{0.6, core.Hex("#ff0080")},
		{0.8, core.Hex("#ff4500")},
		{math.Inf(1), core.Hex("#ffd700")},
	}
)

// Assemble converts a level layout into positioned blocks.
// Classic levels get an indestructible wall on the left, right and top of the content.
func Assemble(spec levelgen.LevelSpec, mode levelgen.Mode, vp Viewport) []Block {
	if mode == levelgen.Modern {
		return assembleModern(spec, vp)
	}
	return assembleClassic(spec, vp)
}

func assembleClassic(spec levelgen.LevelSpec, vp Viewport) []Block {
	effCols := spec.Cols + 2
	blockW := vp.Width/float64(effCols) - 1
	pitch := blockW + 1
	rowPitch := float64(classicBlockH + rowGap)

	blocks := make([]Block, 0, spec.Rows*effCols+effCols)
	for r := range spec.Rows {
		y := float64(r)*rowPitch + classicYOffset
		for c := range spec.Cols {
			kind := spec.At(r, c)
			if !kind.Occupied() {
				continue
			}
			x := float64(c+1)*pitch + 1
			b := newBlock(kind, r, c, core.Box{X: x, Y: y, W: blockW, H: classicBlockH})
			b.Color = classicColor(x, y)
			if !b.Breakable() {
				b.Color = classicWallColor
			}
			blocks = append(blocks, b)
		}
	}

	wall := levelgen.Indestructible()
	for r := range spec.Rows {
		y := float64(r)*rowPitch + classicYOffset
		left := newBlock(wall, -1, -1, core.Box{X: 1, Y: y, W: blockW, H: classicBlockH})
		right := newBlock(wall, -1, -1, core.Box{X: float64(effCols-1)*pitch + 1, Y: y, W: blockW, H: classicBlockH})
		left.Color, right.Color = classicWallColor, classicWallColor
		blocks = append(blocks, left, right)
	}
	for c := range effCols {
		top := newBlock(wall, -1, -1, core.Box{X: float64(c)*pitch + 1, Y: classicYOffset - rowPitch, W: blockW, H: classicBlockH})
		top.Color = classicWallColor
		blocks = append(blocks, top)
	}
	return blocks
}

func assembleModern(spec levelgen.LevelSpec, vp Viewport) []Block {
	blockW := vp.Width/float64(spec.Cols) - 1
	pitch := blockW + 1
	rowPitch := float64(modernBlockH + rowGap)

	blocks := make([]Block, 0, spec.Rows*spec.Cols/2)
	for r := range spec.Rows {
		for c := range spec.Cols {
			kind := spec.At(r, c)
			if !kind.Occupied() {
				continue
			}
			box := core.Box{X: float64(c)*pitch + 1, Y: float64(r)*rowPitch + modernYOffset, W: blockW, H: modernBlockH}
			b := newBlock(kind, r, c, box)
			b.Color = modernColor(kind, r, spec.Rows)
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func newBlock(kind levelgen.CellKind, r, c int, box core.Box) Block {
	b := Block{Box: box, Kind: kind.Type, Row: r, Col: c}
	switch kind.Type {
	case levelgen.CellIndestructible:
		b.Hits = Unbreakable
	case levelgen.CellBonus:
		b.Hits = 1
	default:
		b.Hits = max(kind.Hits, 1)
	}
	return b
}

func classicColor(x, y float64) core.Color {
	i := int(math.Floor(y/40)+math.Floor(x/100)) % len(classicPalette)
	return classicPalette[i]
}

func modernColor(kind levelgen.CellKind, r, rows int) core.Color {
	switch kind.Type {
	case levelgen.CellBonus:
		return modernBonusColor
	case levelgen.CellIndestructible:
		return modernSteelColor
	}
	ratio := float64(r) / float64(rows)
	for _, band := range modernBands {
		if ratio < band.upTo {
			return band.color
		}
	}
	return modernBands[len(modernBands)-1].color
}
