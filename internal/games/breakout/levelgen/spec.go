// Package levelgen builds the block layouts for every level of both game modes.
// Generation is a pure function of (mode, level): the same inputs always yield
// the same LevelSpec, which keeps level select and unlock progress reproducible.
package levelgen

import (
	"fmt"
	"strings"
)

// Mode selects the rule set used for generation, assembly and physics.
type Mode int

const (
	Classic Mode = iota // Growing grid, walls on three sides, every hit bounces
	Modern              // Fixed large grid, balls pass through breakable blocks
)

// String returns the mode identifier used for storage keys and CLI arguments.
func (m Mode) String() string {
	switch m {
	case Classic:
		return "classic"
	case Modern:
		return "modern"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode identifier back to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic":
		return Classic, nil
	case "modern":
		return Modern, nil
	}
	return Classic, fmt.Errorf("levelgen: unknown mode %q", s)
}

// MaxLevels is the number of levels available in each mode.
const MaxLevels = 200

// Grid limits per mode.
const (
	ClassicMaxRows = 12
	ClassicMaxCols = 14
	ModernRows     = 40
	ModernCols     = 80
)

// MaxDims returns the largest grid the generator can produce for a mode.
func MaxDims(m Mode) (rows, cols int) {
	if m == Modern {
		return ModernRows, ModernCols
	}
	return ClassicMaxRows, ClassicMaxCols
}

// CellType tags the variant held by a CellKind.
type CellType uint8

const (
	CellEmpty CellType = iota
	CellBreakable
	CellIndestructible
	CellBonus
)

// CellKind describes what occupies one grid cell.
// Hits is only meaningful for CellBreakable; Bonus cells always take one hit.
type CellKind struct {
	Type CellType
	Hits int
}

// Empty is the unoccupied cell.
var Empty = CellKind{}

// Breakable returns a block cell that is destroyed after hits collisions.
func Breakable(hits int) CellKind {
	if hits < 1 {
		hits = 1
	}
	return CellKind{Type: CellBreakable, Hits: hits}
}

// Indestructible returns a wall cell.
func Indestructible() CellKind {
	return CellKind{Type: CellIndestructible}
}

// Bonus returns a decorative single-hit cell.
func Bonus() CellKind {
	return CellKind{Type: CellBonus, Hits: 1}
}

// Occupied reports whether the cell produces a block.
func (k CellKind) Occupied() bool {
	return k.Type != CellEmpty
}

// Destructible reports whether the cell counts toward level completion.
func (k CellKind) Destructible() bool {
	return k.Type == CellBreakable || k.Type == CellBonus
}

// Glyph returns the single character used by Occupancy.
func (k CellKind) Glyph() byte {
	switch k.Type {
	case CellBreakable:
		if k.Hits > 1 && k.Hits < 10 {
			return byte('0' + k.Hits)
		}
		return '#'
	case CellIndestructible:
		return 'X'
	case CellBonus:
		return '@'
	default:
		return '.'
	}
}

// Modifier is the per-level gameplay twist.
type Modifier int

const (
	ModNone Modifier = iota
	ModPaddleShrink
	ModGravity
	ModShiftingColors
	ModFastBall
	ModInvisibleBricks
	ModWind
	ModJitter
	ModSpeedPulse
)

var modifierNames = [...]string{
	ModNone:            "none",
	ModPaddleShrink:    "moving_paddle_shrink",
	ModGravity:         "ball_gravity",
	ModShiftingColors:  "shifting_colors",
	ModFastBall:        "fast_ball",
	ModInvisibleBricks: "invisible_bricks",
	ModWind:            "wind_force",
	ModJitter:          "jittery_ball",
	ModSpeedPulse:      "speed_pulse",
}

// String returns the modifier name.
func (m Modifier) String() string {
	if m < 0 || int(m) >= len(modifierNames) {
		return "unknown"
	}
	return modifierNames[m]
}

// LevelSpec is the abstract layout of one level.
// It is immutable once returned by Generate.
type LevelSpec struct {
	Mode     Mode
	Index    int
	Rows     int
	Cols     int
	Modifier Modifier
	Pattern  string // Archetype or hand-authored layout name

	cells []CellKind // Row-major, Rows*Cols entries
}

// At returns the cell at (row, col), or Empty outside the grid.
func (s LevelSpec) At(row, col int) CellKind {
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Cols {
		return Empty
	}
	return s.cells[row*s.Cols+col]
}

// Count returns how many cells hold the given type.
func (s LevelSpec) Count(t CellType) int {
	n := 0
	for _, k := range s.cells {
		if k.Type == t {
			n++
		}
	}
	return n
}

// Equal reports whether two specs have identical dimensions, cells and modifier.
func (s LevelSpec) Equal(o LevelSpec) bool {
	if s.Rows != o.Rows || s.Cols != o.Cols || s.Modifier != o.Modifier {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Occupancy renders the grid as one line of glyphs per row.
func (s LevelSpec) Occupancy() string {
	var sb strings.Builder
	sb.Grow(s.Rows * (s.Cols + 1))
	for r := range s.Rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range s.Cols {
			sb.WriteByte(s.At(r, c).Glyph())
		}
	}
	return sb.String()
}
