package breakout

import (
	"math"

	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
)

// Unbreakable is the hit count carried by indestructible blocks.
const Unbreakable = math.MaxInt

// Paddle is the player-controlled bar at the bottom of the playfield.
type Paddle struct {
	X, Y        float64
	Width       float64
	TargetWidth float64 // Width eases toward this value each step
	Height      float64
	Speed       float64
	Color       core.Color
}

// Box returns the paddle bounds.
func (p *Paddle) Box() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// CenterX returns the horizontal centre of the paddle.
func (p *Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// ease moves Width toward TargetWidth without overshooting.
func (p *Paddle) ease(grow, shrink, ts float64) {
	switch {
	case p.Width < p.TargetWidth:
		p.Width = math.Min(p.TargetWidth, p.Width+grow*ts)
	case p.Width > p.TargetWidth:
		p.Width = math.Max(p.TargetWidth, p.Width-shrink*ts)
	}
}

// Ball is a moving ball. Its speed magnitude is BaseSpeed*Boost except while
// a speed pulse is active.
type Ball struct {
	X, Y      float64
	VX, VY    float64
	Radius    float64
	BaseSpeed float64
	Boost     float64 // Product of active speed multipliers
	Boosted   bool    // One-time fast-ball boost already applied
}

// Speed returns the current velocity magnitude.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// EffectiveSpeed is the magnitude the ball is normalized to.
func (b *Ball) EffectiveSpeed() float64 {
	return b.BaseSpeed * b.Boost
}

// scaleVelocity multiplies both components and the boost by f.
func (b *Ball) scaleVelocity(f float64) {
	b.VX *= f
	b.VY *= f
	b.Boost *= f
}

// normalize rescales velocity to the effective speed and keeps a minimum
// vertical component so the ball never settles into a horizontal loop.
func (b *Ball) normalize(minFraction float64) {
	speed := b.EffectiveSpeed()
	if !core.Finite(speed) || speed <= 0 {
		return
	}
	current := b.Speed()
	if current == 0 || !core.Finite(current) {
		b.VX, b.VY = 0, -speed
		return
	}
	ratio := speed / current
	b.VX *= ratio
	b.VY *= ratio

	minVY := speed * minFraction
	if math.Abs(b.VY) < minVY {
		if b.VY < 0 {
			b.VY = -minVY
		} else {
			b.VY = minVY
		}
		b.VX = math.Sqrt(speed*speed-minVY*minVY) * core.Sign(b.VX)
	}
}

// Block is one brick or wall segment of the current level.
type Block struct {
	core.Box
	Kind  levelgen.CellType
	Hits  int // Remaining hits; Unbreakable for walls
	Row   int // Grid row, -1 for synthesized walls
	Col   int // Grid column, -1 for synthesized walls
	Color core.Color

	destroyed bool
}

// Breakable reports whether the block counts toward clearing the level.
func (b *Block) Breakable() bool {
	return b.Hits != Unbreakable
}

// PowerUpKind identifies the effect of a falling pickup.
type PowerUpKind int

const (
	PowerExpand PowerUpKind = iota // Widen the paddle for a while
	PowerMulti                     // Add two balls
	PowerSpeed                     // Speed up all balls for a while
	powerKinds
)

// String returns the pickup name.
func (k PowerUpKind) String() string {
	switch k {
	case PowerExpand:
		return "expand"
	case PowerMulti:
		return "multi"
	case PowerSpeed:
		return "speed"
	default:
		return "unknown"
	}
}

// Color returns the display color of the pickup.
func (k PowerUpKind) Color() core.Color {
	switch k {
	case PowerExpand:
		return core.Hex("#00ffff")
	case PowerMulti:
		return core.Hex("#ff00ff")
	default:
		return core.Hex("#ffff00")
	}
}

// Label returns the short text drawn on the pickup.
func (k PowerUpKind) Label() string {
	switch k {
	case PowerExpand:
		return "↔"
	case PowerMulti:
		return "●●"
	default:
		return "★"
	}
}

// PowerUp is a falling pickup centred on (X, Y).
type PowerUp struct {
	Kind PowerUpKind
	X, Y float64
	W, H float64
	VY   float64
}

// Box returns the pickup bounds.
func (p *PowerUp) Box() core.Box {
	return core.Box{X: p.X - p.W/2, Y: p.Y - p.H/2, W: p.W, H: p.H}
}

// Particle is a cosmetic fragment that fades out.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Life   float64
	Decay  float64
	Color  core.Color
}

// Effect is a timed power-up effect. Remaining counts down in world seconds.
type Effect struct {
	Kind      PowerUpKind
	Remaining float64
}
