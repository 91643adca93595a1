package levelgen

import "math"

const (
	classicSeedScale    = 123.456
	classicErosionStart = 20 // Erosion applies to levels above this index
	classicMilestone    = 15
)

// classicModifiers cycles by level index.
var classicModifiers = []Modifier{
	ModNone,
	ModPaddleShrink,
	ModGravity,
	ModShiftingColors,
	ModFastBall,
	ModInvisibleBricks,
	ModWind,
	ModJitter,
}

// milestoneBanner is the hand-drawn layout of the milestone level.
var milestoneBanner = []string{
	" XX  XXX  X  X",
	"X  X X  X X X ",
	"XXXX XXX  XX  ",
	"X  X X X  X X ",
	"X  X X  X X  X",
}

type archetype struct {
	name string
	fill func(s shape, r, c int) bool
}

var classicArchetypes = []archetype{
	{"solid", func(shape, int, int) bool { return true }},
	{"stripes", func(_ shape, r, _ int) bool { return r%2 == 0 }},
	{"columns", func(_ shape, _, c int) bool { return c%2 == 0 }},
	{"checker", func(_ shape, r, c int) bool { return (r+c)%2 == 0 }},
	{"diamond", func(s shape, r, c int) bool {
		midR := float64(s.rows-1) / 2
		midC := float64(s.cols-1) / 2
		d := math.Abs(float64(r)-midR)/float64(s.rows) + math.Abs(float64(c)-midC)/float64(s.cols)
		return d < 0.4
	}},
	{"frame", func(s shape, r, c int) bool {
		return r == 0 || r == s.rows-1 || c == 0 || c == s.cols-1
	}},
	{"cross", func(s shape, r, c int) bool {
		slope := float64(s.rows) / float64(s.cols)
		return math.Abs(float64(r)-float64(c)*slope) < 1 ||
			math.Abs(float64(r)-float64(s.cols-1-c)*slope) < 1
	}},
	{"pyramid", func(s shape, r, c int) bool {
		return r >= c && r >= s.cols-1-c
	}},
	{"funnel", func(s shape, r, c int) bool {
		return r <= c && r <= s.cols-1-c
	}},
	{"ellipse", func(s shape, r, c int) bool {
		midR := float64(s.rows-1) / 2
		midC := float64(s.cols-1) / 2
		dx := (float64(c) - midC) / (float64(s.cols) / 1.5)
		dy := (float64(r) - midR) / (float64(s.rows) / 1.5)
		return dx*dx+dy*dy < 0.25
	}},
	{"wave", func(s shape, r, c int) bool {
		row := math.Floor(float64(s.rows)/2 + math.Sin(float64(c)*0.5)*(float64(s.rows)/3))
		return float64(r) == row
	}},
	{"dither", func(s shape, r, c int) bool {
		return s.rnd.at(float64(r*10+c)) > 0.4
	}},
}

// ClassicDims returns the grid size for a procedural classic level.
func ClassicDims(level int) (rows, cols int) {
	cols = min(8+(level-1)/10, ClassicMaxCols)
	rows = min(6+level/10, ClassicMaxRows)
	return rows, cols
}

func classicLevel(level int) LevelSpec {
	if level == classicMilestone {
		g := newGrid(len(milestoneBanner), len(milestoneBanner[0]))
		g.fill(func(r, c int) CellKind { return boolCell(milestoneBanner[r][c] == 'X') })
		return g.spec(Classic, level, ModSpeedPulse, "banner")
	}

	rows, cols := ClassicDims(level)
	s := shape{rows: rows, cols: cols, rnd: noise(float64(level) * classicSeedScale)}
	arch := classicArchetypes[(level-1)%len(classicArchetypes)]

	g := newGrid(rows, cols)
	g.fill(func(r, c int) CellKind { return boolCell(arch.fill(s, r, c)) })

	if level > classicErosionStart {
		chance := float64(level) / 1000
		g.erode(level, func(r, c int) bool {
			return s.rnd.at(float64(r*31+c*17+level)) < chance
		})
	}

	return g.spec(Classic, level, classicModifiers[level%len(classicModifiers)], arch.name)
}
