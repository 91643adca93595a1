package breakout

// Rand is the world's seeded random source (splitmix64). Every random
// choice in a level draws from it, so a seed and an input sequence replay
// the same run.
type Rand struct {
	state uint64
}

// NewRand seeds a generator. Equal seeds give equal sequences.
func NewRand(seed int64) *Rand {
	return &Rand{state: uint64(seed)} //#nosec G115 -- seed bits are reinterpreted
}

// Uint64 advances the generator.
func (r *Rand) Uint64() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ z>>30) * 0xbf58476d1ce4e5b9
	z = (z ^ z>>27) * 0x94d049bb133111eb
	return z ^ z>>31
}

// Intn returns a value in [0, n); 0 when n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Uint64() % uint64(n)) //#nosec G115 -- n > 0
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Centered returns a value in [-span/2, span/2).
func (r *Rand) Centered(span float64) float64 {
	return (r.Float64() - 0.5) * span
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float64() < p
}
