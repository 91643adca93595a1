package levelgen

import "math"

const (
	modernSeedScale  = 133.7
	modernProcStart  = 4 // First level built from archetypes
	modernJitterDrop = 0.1
)

var modernArchetypes = []archetype{
	{"spiral", func(s shape, r, c int) bool {
		dx := float64(c) - float64(s.cols)/2
		dy := float64(r) - float64(s.rows)/2
		dist := math.Hypot(dx, dy)
		angle := math.Atan2(dy, dx)
		turn := math.Mod(dist*0.5, 2*math.Pi)
		return math.Abs(angle-turn) < 0.3
	}},
	{"mandala", func(s shape, r, c int) bool {
		dx := math.Abs(float64(c) - float64(s.cols)/2)
		dy := math.Abs(float64(r) - float64(s.rows)/2)
		dist := math.Hypot(dx, dy)
		return math.Sin(dist*0.4)+math.Cos(dx*0.2)*math.Sin(dy*0.2) > 0.6
	}},
	{"lattice", func(s shape, r, c int) bool {
		mod := 5 + math.Floor(s.rnd.at(1)*5)
		offset := s.rnd.at(2) * mod
		return math.Mod(float64(c)+offset, mod) < 2 || math.Mod(float64(r)+offset, mod) < 2
	}},
	{"blobs", func(s shape, r, c int) bool {
		freq := 0.05 + s.rnd.at(3)*0.1
		v := math.Sin(float64(c)*freq) + math.Sin(float64(r)*freq) + math.Sin(float64(c+r)*freq)
		return v > 1.2
	}},
	{"rings", func(s shape, r, c int) bool {
		d := math.Max(math.Abs(float64(c)-float64(s.cols)/2)/2, math.Abs(float64(r)-float64(s.rows)/2))
		return int(math.Floor(d))%4 == 0
	}},
}

// roomLevel is a walled room with a gap in its floor, two breakable corridors
// and a bonus heart in the upper right corner.
func roomLevel(r, c int) CellKind {
	const left, right, top, bottom = 16, 62, 4, 32
	inRoom := r >= top && r <= bottom && c >= left && c <= right
	wall := ((r == top || r == bottom) && c >= left && c <= right) ||
		((c == left || c == right) && r >= top && r <= bottom)
	gap := r == bottom && c >= 36 && c <= 42

	switch {
	case wall && !gap:
		return Indestructible()
	case r > bottom && (c == 35 || c == 43):
		return Indestructible()
	case !inRoom || wall:
		return Empty
	case c == 48 && r > 8 && r < 28:
		return Breakable(1)
	case r == 8 && c > 24 && c <= 48:
		return Breakable(1)
	case inHeart(r, c, 58, 10, 2.4):
		return Bonus()
	}
	return Empty
}

// twinRoomLevel has two walled rooms side by side, each with a floor gap,
// an approach corridor and a breakable heart inside.
func twinRoomLevel(r, c int) CellKind {
	inLeft := r >= 8 && r <= 24 && c >= 8 && c <= 32
	inRight := r >= 8 && r <= 24 && c >= 46 && c <= 70
	leftWall := inLeft && (r == 8 || r == 24 || c == 8 || c == 32)
	rightWall := inRight && (r == 8 || r == 24 || c == 46 || c == 70)
	leftGap := r == 24 && c >= 18 && c <= 24
	rightGap := r == 24 && c >= 54 && c <= 60
	corridor := r > 24 && (c == 16 || c == 26 || c == 52 || c == 62)

	if (leftWall && !leftGap) || (rightWall && !rightGap) || corridor {
		return Indestructible()
	}
	if inLeft && inHeart(r, c, 20, 16, 6) {
		return Breakable(1)
	}
	if inRight && inHeart(r, c, 58, 16, 6) {
		return Breakable(1)
	}
	return Empty
}

func dualWaveLevel(r, c int) CellKind {
	w1 := 10 + math.Sin(float64(c)*0.2)*5
	w2 := 20 + math.Cos(float64(c)*0.2)*5
	return boolCell(math.Abs(float64(r)-w1) < 2 || math.Abs(float64(r)-w2) < 2)
}

func modernLevel(level int) LevelSpec {
	s := shape{rows: ModernRows, cols: ModernCols, rnd: noise(float64(level) * modernSeedScale)}

	var (
		body    func(r, c int) CellKind
		pattern string
	)
	switch level {
	case 1:
		body, pattern = roomLevel, "room"
	case 2:
		body, pattern = twinRoomLevel, "twin rooms"
	case 3:
		body, pattern = dualWaveLevel, "dual wave"
	default:
		arch := modernArchetypes[(level-modernProcStart)%len(modernArchetypes)]
		body = func(r, c int) CellKind { return boolCell(arch.fill(s, r, c)) }
		pattern = arch.name
	}

	g := newGrid(ModernRows, ModernCols)
	g.fill(func(r, c int) CellKind {
		if r == 0 || c == 0 || c == ModernCols-1 {
			return Indestructible()
		}
		return body(r, c)
	})

	if level >= modernProcStart {
		g.erode(level, func(r, c int) bool {
			return s.rnd.at(float64(r*13+c*7+level)) <= modernJitterDrop
		})
	}

	return g.spec(Modern, level, ModNone, pattern)
}
