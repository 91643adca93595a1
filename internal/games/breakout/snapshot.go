package breakout

import "math"

// Snapshot is a flat copy of the world state used for determinism checks
// and debugging dumps. Floats are stored as their IEEE bit patterns.
type Snapshot struct {
	Tick     uint64
	Level    int
	Modifier int
	Shake    uint64
	Time     uint64

	Paddle [4]uint64 // X, Width, TargetWidth, Color

	// Each ball is 6 values: X, Y, VX, VY, BaseSpeed, Boost
	BallCount int
	BallData  []uint64

	// Each block is 4 values: X, Y, Hits, Color
	BlockCount int
	BlockData  []uint64

	// Each pickup is 3 values: Kind, X, Y
	PowerUpCount int
	PowerUpData  []uint64

	// Each effect is 2 values: Kind, Remaining
	EffectData []uint64

	ParticleCount int

	RNGState uint64
}

func bits(f float64) uint64 {
	return math.Float64bits(f)
}

// Snapshot captures the current world state.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:          w.ticks,
		Level:         w.Level,
		Modifier:      int(w.Modifier),
		Shake:         bits(w.Shake),
		Time:          bits(w.Time),
		Paddle:        [4]uint64{bits(w.Paddle.X), bits(w.Paddle.Width), bits(w.Paddle.TargetWidth), uint64(w.Paddle.Color)},
		BallCount:     len(w.Balls),
		BallData:      make([]uint64, 0, len(w.Balls)*6),
		BlockCount:    len(w.Blocks),
		BlockData:     make([]uint64, 0, len(w.Blocks)*4),
		PowerUpCount:  len(w.PowerUps),
		PowerUpData:   make([]uint64, 0, len(w.PowerUps)*3),
		EffectData:    make([]uint64, 0, len(w.Effects)*2),
		ParticleCount: len(w.Particles),
		RNGState:      w.rng.state,
	}

	for _, b := range w.Balls {
		snap.BallData = append(snap.BallData, bits(b.X), bits(b.Y), bits(b.VX), bits(b.VY), bits(b.BaseSpeed), bits(b.Boost))
	}
	for _, b := range w.Blocks {
		snap.BlockData = append(snap.BlockData, bits(b.X), bits(b.Y), uint64(b.Hits), uint64(b.Color)) //#nosec G115 -- hits are positive
	}
	for _, p := range w.PowerUps {
		snap.PowerUpData = append(snap.PowerUpData, uint64(p.Kind), bits(p.X), bits(p.Y)) //#nosec G115 -- kind is a small enum
	}
	for _, e := range w.Effects {
		snap.EffectData = append(snap.EffectData, uint64(e.Kind), bits(e.Remaining)) //#nosec G115 -- kind is a small enum
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Level)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Modifier) //#nosec G115 -- hash computation
	h = h*31 + snap.Shake
	h = h*31 + snap.Time
	for _, v := range snap.Paddle {
		h = h*31 + v
	}
	h = h*31 + uint64(snap.BallCount)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BlockCount)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PowerUpCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ParticleCount) //#nosec G115 -- hash computation

	for _, data := range [][]uint64{snap.BallData, snap.BlockData, snap.PowerUpData, snap.EffectData} {
		for _, v := range data {
			h = h*31 + v
		}
	}

	return h*31 + snap.RNGState
}
