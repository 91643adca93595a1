// Package breakout implements the breakout engine: level assembly, the
// entity model, the per-frame simulation step and the session controller
// that drives levels, lives and unlock progress.
package breakout

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/arkanoid/internal/config"
	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
)

// NominalFrame is the frame duration one unit of scaled time stands for.
const NominalFrame = 16670 * time.Microsecond

var (
	paddleColors = []core.Color{
		core.Hex("#00ffff"), core.Hex("#ff00ff"), core.Hex("#ffff00"), core.Hex("#00ff41"),
		core.Hex("#ff0040"), core.Hex("#0070ff"), core.Hex("#ff8c00"),
	}
	modernPaddleColor = core.Hex("#ff8c42")
)

// TimeScale converts a wall-clock delta into scaled time, capped at limit
// when limit is positive.
func TimeScale(dt time.Duration, limit float64) float64 {
	if dt <= 0 {
		return 0
	}
	ts := float64(dt) / float64(NominalFrame)
	if limit > 0 {
		ts = math.Min(ts, limit)
	}
	return ts
}

// Input is the control state consumed by one step.
// PointerX is in playfield units and only used when HasPointer is set.
type Input struct {
	Left, Right bool
	PointerX    float64
	HasPointer  bool
}

func (in Input) moving() bool {
	return in.Left || in.Right || in.HasPointer
}

// World is the complete simulation state of one level attempt.
type World struct {
	Mode     levelgen.Mode
	Level    int
	Modifier levelgen.Modifier
	Viewport Viewport

	Paddle    Paddle
	Balls     []Ball
	Blocks    []Block
	PowerUps  []PowerUp
	Particles []Particle
	Effects   []Effect

	Shake float64 // Cosmetic screen shake strength
	Time  float64 // Seconds of simulated time, drives periodic twists

	cfg         config.BreakoutConfig
	levelBoost  float64
	speedMul    float64 // Product of active speed power-ups
	ballRadius  float64
	rng         *Rand
	wind        float64
	showerTimer float64
	ticks       uint64

	lifeLost bool // Life-loss already reported for the current empty field
	cleared  bool // Level-clear already reported

	events []Event
}

// NewWorld builds the world for a generated level.
// levelBoost scales every launched ball; seed drives all random choices.
func NewWorld(spec levelgen.LevelSpec, cfg config.BreakoutConfig, levelBoost float64, seed int64) *World {
	if levelBoost <= 0 || !core.Finite(levelBoost) {
		levelBoost = 1
	}
	w := &World{
		Mode:       spec.Mode,
		Level:      spec.Index,
		Modifier:   spec.Modifier,
		Viewport:   DefaultViewport,
		cfg:        cfg,
		levelBoost: levelBoost,
		speedMul:   1,
		rng:        NewRand(seed),
	}
	w.ballRadius = cfg.Ball.RadiusClassic
	if w.Mode == levelgen.Modern {
		w.ballRadius = cfg.Ball.RadiusModern
	}

	w.Blocks = Assemble(spec, spec.Mode, w.Viewport)

	w.Paddle = Paddle{
		X:           (w.Viewport.Width - cfg.Paddle.Width) / 2,
		Y:           cfg.Paddle.Y,
		Width:       cfg.Paddle.Width,
		TargetWidth: cfg.Paddle.Width,
		Height:      cfg.Paddle.Height,
		Speed:       cfg.Paddle.Speed,
		Color:       paddleColors[w.rng.Intn(len(paddleColors))],
	}
	if w.Mode == levelgen.Modern {
		w.Paddle.Color = modernPaddleColor
	}

	if w.Modifier == levelgen.ModWind {
		w.wind = w.rng.Centered(cfg.Effects.WindRange)
	}

	w.spawnLaunchBall()
	return w
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.BreakoutConfig {
	return w.cfg
}

// Ticks returns the number of steps simulated so far.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// Remaining counts breakable blocks still standing.
func (w *World) Remaining() int {
	n := 0
	for i := range w.Blocks {
		if w.Blocks[i].Breakable() && !w.Blocks[i].destroyed {
			n++
		}
	}
	return n
}

// spawnBall adds a ball with the given launch velocity, scaled by the level
// boost and any active speed power-ups.
func (w *World) spawnBall(x, y, vx, vy float64) {
	vx *= w.levelBoost
	vy *= w.levelBoost
	b := Ball{
		X:         x,
		Y:         y,
		VX:        vx * w.speedMul,
		VY:        vy * w.speedMul,
		Radius:    w.ballRadius,
		BaseSpeed: math.Hypot(vx, vy),
		Boost:     w.speedMul,
	}
	if b.BaseSpeed == 0 {
		b.BaseSpeed = w.cfg.Ball.LaunchSpeed * w.levelBoost
		b.normalize(w.cfg.Physics.MinVerticalFraction)
	}
	w.Balls = append(w.Balls, b)
	w.lifeLost = false
}

// spawnLaunchBall adds the standard ball above the paddle.
func (w *World) spawnLaunchBall() {
	ball := w.cfg.Ball
	w.spawnBall(ball.SpawnX, ball.SpawnY, w.rng.Centered(ball.LaunchSpread), -ball.LaunchSpeed)
}

// Respawn prepares the field after a lost life: one fresh ball, the paddle
// easing back to its normal width, and no pickups or timed effects.
func (w *World) Respawn() {
	w.Balls = w.Balls[:0]
	w.PowerUps = w.PowerUps[:0]
	w.Effects = w.Effects[:0]
	w.speedMul = 1
	w.Paddle.TargetWidth = w.cfg.Paddle.Width
	w.spawnLaunchBall()
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

// Step advances the world by ts units of scaled time and returns what happened.
func (w *World) Step(in Input, ts float64) []Event {
	w.events = nil
	if !core.Finite(ts) || ts <= 0 {
		return nil
	}
	if limit := w.cfg.Physics.MaxTimeScale; limit > 0 {
		ts = math.Min(ts, limit)
	}
	w.ticks++

	w.updatePaddle(in, ts)
	w.updateShower(ts)
	w.applyTwist(in, ts)
	w.updateBalls(ts)
	w.compactBlocks()

	if len(w.Balls) == 0 && !w.lifeLost {
		w.lifeLost = true
		w.Shake = shakeLifeLost
		w.emit(Event{Kind: EventLifeLost})
	}

	w.updatePowerUps(ts)
	w.updateEffects(ts)
	w.updateParticles(ts)

	if !w.cleared && w.Remaining() == 0 {
		w.cleared = true
		w.emit(Event{Kind: EventLevelClear})
	}

	w.Shake *= shakeDecay
	if w.Shake < 0.05 {
		w.Shake = 0
	}
	return w.events
}

// updatePaddle eases the width, then applies keyboard or pointer movement and clamps.
// The pointer is ignored while a movement key is held.
func (w *World) updatePaddle(in Input, ts float64) {
	p := &w.Paddle
	p.ease(w.cfg.Paddle.GrowRate, w.cfg.Paddle.ShrinkRate, ts)
	p.Width = math.Min(p.Width, w.Viewport.Width)

	keys := false
	if in.Left {
		p.X -= p.Speed * ts
		keys = true
	}
	if in.Right {
		p.X += p.Speed * ts
		keys = true
	}
	if !keys && in.HasPointer && core.Finite(in.PointerX) {
		p.X = in.PointerX - p.Width/2
	}
	p.X = core.ClampF(p.X, 0, w.Viewport.Width-p.Width)
}

// updateShower periodically drops extra balls from random breakable blocks in modern mode.
func (w *World) updateShower(ts float64) {
	if w.Mode != levelgen.Modern {
		return
	}
	fx := w.cfg.Effects
	w.showerTimer += w.cfg.Physics.FrameSeconds * ts
	if w.showerTimer < fx.ShowerInterval {
		return
	}
	w.showerTimer = 0

	var targets []int
	for i := range w.Blocks {
		if w.Blocks[i].Breakable() {
			targets = append(targets, i)
		}
	}
	n := min(fx.ShowerBalls, len(targets))
	if n == 0 {
		return
	}
	for i := range n {
		j := i + w.rng.Intn(len(targets)-i)
		targets[i], targets[j] = targets[j], targets[i]
		x, y := w.Blocks[targets[i]].Center()
		w.spawnBall(x, y, w.rng.Centered(fx.ShowerSpread), fx.ShowerSpeed)
	}
	w.emit(Event{Kind: EventBallShower})
}

// ErrInvariant reports a broken world invariant found by Validate.
var ErrInvariant = errors.New("breakout: world invariant violated")

// Validate checks the invariants the step engine must preserve.
func (w *World) Validate() error {
	p := w.Paddle
	if p.X < -1e-9 || p.X+p.Width > w.Viewport.Width+1e-9 {
		return fmt.Errorf("%w: paddle [%v, %v] outside [0, %v]", ErrInvariant, p.X, p.X+p.Width, w.Viewport.Width)
	}
	for i, b := range w.Balls {
		if !core.Finite(b.X) || !core.Finite(b.Y) || !core.Finite(b.VX) || !core.Finite(b.VY) {
			return fmt.Errorf("%w: ball %d is not finite: %+v", ErrInvariant, i, b)
		}
		if b.Speed() == 0 {
			return fmt.Errorf("%w: ball %d is stationary", ErrInvariant, i)
		}
	}
	for i, blk := range w.Blocks {
		if blk.Hits <= 0 {
			return fmt.Errorf("%w: block %d has %d hits left", ErrInvariant, i, blk.Hits)
		}
	}
	return nil
}
