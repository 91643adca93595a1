package levelgen

import (
	"errors"
	"fmt"
	"math"
)

// ErrLevelOutOfRange is returned for level indices outside [1, MaxLevels].
var ErrLevelOutOfRange = errors.New("levelgen: level out of range")

// stampBits is the number of leading breakable cells that encode the level index.
// 2^8 > MaxLevels, so any two procedural levels differ in at least one stamped cell.
const stampBits = 8

// Generate returns the layout for the given mode and level index.
func Generate(mode Mode, level int) (LevelSpec, error) {
	if level < 1 || level > MaxLevels {
		return LevelSpec{}, fmt.Errorf("%w: %d", ErrLevelOutOfRange, level)
	}
	switch mode {
	case Classic:
		return classicLevel(level), nil
	case Modern:
		return modernLevel(level), nil
	default:
		return LevelSpec{}, fmt.Errorf("levelgen: unknown mode %d", mode)
	}
}

// noise is a seeded hash-like pseudo-random function returning values in [0, 1).
type noise float64

func (n noise) at(s float64) float64 {
	x := math.Sin(float64(n)+s) * 10000
	return x - math.Floor(x)
}

// shape is the context handed to archetype predicates.
type shape struct {
	rows, cols int
	rnd        noise
}

// grid is a mutable builder for LevelSpec cells.
type grid struct {
	rows, cols int
	cells      []CellKind
}

func newGrid(rows, cols int) *grid {
	return &grid{rows: rows, cols: cols, cells: make([]CellKind, rows*cols)}
}

func (g *grid) set(r, c int, k CellKind) {
	g.cells[r*g.cols+c] = k
}

func (g *grid) fill(fn func(r, c int) CellKind) {
	for r := range g.rows {
		for c := range g.cols {
			g.set(r, c, fn(r, c))
		}
	}
}

// erode clears breakable cells for which drop reports true. The first stampBits
// breakable cells are exempt and instead encode the level index, one bit per cell.
func (g *grid) erode(level int, drop func(r, c int) bool) {
	stamped := 0
	for i, k := range g.cells {
		if k.Type != CellBreakable {
			continue
		}
		r, c := i/g.cols, i%g.cols
		if stamped < stampBits {
			if level&(1<<stamped) != 0 {
				g.cells[i] = Empty
			}
			stamped++
			continue
		}
		if drop(r, c) {
			g.cells[i] = Empty
		}
	}
}

func (g *grid) spec(mode Mode, level int, mod Modifier, pattern string) LevelSpec {
	return LevelSpec{
		Mode:     mode,
		Index:    level,
		Rows:     g.rows,
		Cols:     g.cols,
		Modifier: mod,
		Pattern:  pattern,
		cells:    g.cells,
	}
}

// inHeart reports whether cell (r, c) lies inside the heart curve
// (x²+y²-1)³ - x²y³ <= 0 centred at (ox, oy) and scaled by size.
func inHeart(r, c int, ox, oy, size float64) bool {
	x := (float64(c) - ox) / size
	y := (oy - float64(r)) / size
	a := x*x + y*y - 1
	return a*a*a-x*x*y*y*y <= 0
}

func boolCell(b bool) CellKind {
	if b {
		return Breakable(1)
	}
	return Empty
}
