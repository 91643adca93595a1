// Package audio turns engine cues into short synthesized tones.
package audio

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/arkanoid/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Sink consumes sound cues. Play must not block.
type Sink interface {
	Play(cue core.Cue)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(core.Cue) {}

// Player renders cues through the system speaker.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	rng    *rand.Rand
	ready  bool
}

// NewPlayer initializes the speaker. On failure it logs a warning and
// returns Nop so callers never need to check.
func NewPlayer(volume float64, logger *log.Logger) Sink {
	if logger == nil {
		logger = log.Default()
	}
	p := &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		logger.Warn("audio unavailable", "err", err)
		return Nop{}
	}
	speaker.Play(p.mixer)
	p.ready = true
	return p
}

// Play queues the tone for a cue.
func (p *Player) Play(cue core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	s := cueStream(cue, p.rng)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(withVolume(s, p.volume))
	speaker.Unlock()
}

// Close silences anything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.ready = false
}

// pentatonic notes used for brick hits, raised by a fifth when played.
var pentatonic = []float64{440, 493.88, 554.37, 659.25, 739.99}

// cueStream builds the finite stream for a cue, nil for unknown cues.
func cueStream(cue core.Cue, rng *rand.Rand) beep.Streamer {
	switch cue {
	case core.CuePaddle:
		return tone(220, triangle, 150*time.Millisecond, 0.08)
	case core.CueBrick:
		note := pentatonic[rng.IntN(len(pentatonic))] * 1.5
		return tone(note, sine, 200*time.Millisecond, 0.04)
	case core.CueWall:
		return tone(120, sine, 100*time.Millisecond, 0.03)
	case core.CuePowerUp:
		return beep.Mix(
			tone(523.25, triangle, 400*time.Millisecond, 0.04),
			delayed(50*time.Millisecond, tone(783.99, triangle, 400*time.Millisecond, 0.03)),
			delayed(100*time.Millisecond, tone(1046.50, triangle, 400*time.Millisecond, 0.02)),
		)
	case core.CueLifeLost:
		return beep.Mix(
			tone(300, sine, 800*time.Millisecond, 0.05),
			tone(200, sine, 800*time.Millisecond, 0.05),
		)
	case core.CueLevelWon:
		var notes []beep.Streamer
		for i, semi := range []float64{0, 4, 7, 12} {
			f := 523.25 * math.Pow(2, semi/12)
			notes = append(notes, delayed(time.Duration(i)*100*time.Millisecond, tone(f, triangle, 500*time.Millisecond, 0.05)))
		}
		return beep.Mix(notes...)
	}
	return nil
}

func delayed(d time.Duration, s beep.Streamer) beep.Streamer {
	return beep.Seq(generators.Silence(sampleRate.N(d)), s)
}

// withVolume scales a stream linearly; beep volume is a log2 gain.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
