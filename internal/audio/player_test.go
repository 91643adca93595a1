package audio

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/arkanoid/internal/core"
)

// drain reads a stream to the end and returns the sample count and peak.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestToneLengthAndGain(t *testing.T) {
	tests := []struct {
		name string
		w    wave
	}{
		{"sine", sine},
		{"triangle", triangle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(tone(220, tt.w, 150*time.Millisecond, 0.08))
			if expected := sampleRate.N(150 * time.Millisecond); n != expected {
				t.Errorf("samples = %d, expected %d", n, expected)
			}
			if peak <= 0 || peak > 0.08+1e-9 {
				t.Errorf("peak = %v, expected within (0, 0.08]", peak)
			}
		})
	}
}

func TestEnvelopeFadesOut(t *testing.T) {
	e := newEnvelope(generators.Silence(-1), 200*time.Millisecond, 1)
	e.pos = e.total - 1
	if lvl := e.level(); lvl > 0.002 {
		t.Errorf("level at end = %v, expected near 0.001", lvl)
	}
	e.pos = e.attackN
	if lvl := e.level(); math.Abs(lvl-1) > 1e-9 {
		t.Errorf("level after attack = %v, expected 1", lvl)
	}
	e.pos = 0
	if lvl := e.level(); lvl != 0 {
		t.Errorf("level at start = %v, expected 0", lvl)
	}
}

func TestToneAboveNyquistIsSilent(t *testing.T) {
	n, peak := drain(tone(float64(sampleRate), sine, 50*time.Millisecond, 1))
	if expected := sampleRate.N(50 * time.Millisecond); n != expected {
		t.Errorf("samples = %d, expected %d", n, expected)
	}
	if peak != 0 {
		t.Errorf("peak = %v, expected silence", peak)
	}
}

func TestCueStreams(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	tests := []struct {
		cue core.Cue
		min time.Duration
	}{
		{core.CuePaddle, 150 * time.Millisecond},
		{core.CueBrick, 200 * time.Millisecond},
		{core.CueWall, 100 * time.Millisecond},
		{core.CuePowerUp, 500 * time.Millisecond},
		{core.CueLifeLost, 800 * time.Millisecond},
		{core.CueLevelWon, 800 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			s := cueStream(tt.cue, rng)
			if s == nil {
				t.Fatal("cueStream() = nil")
			}
			n, peak := drain(s)
			if n < sampleRate.N(tt.min) {
				t.Errorf("samples = %d, expected at least %d", n, sampleRate.N(tt.min))
			}
			if peak == 0 {
				t.Error("stream is silent")
			}
		})
	}

	if s := cueStream(core.Cue(99), rng); s != nil {
		t.Error("cueStream() for unknown cue should be nil")
	}
}

func TestNopSink(t *testing.T) {
	var s Sink = Nop{}
	for c := core.CuePaddle; c <= core.CueLevelWon; c++ {
		s.Play(c)
	}
}

func TestClosedPlayerIgnoresCues(t *testing.T) {
	p := &Player{mixer: &beep.Mixer{}, volume: 1, rng: rand.New(rand.NewPCG(1, 1))}
	p.Play(core.CueBrick)
	if p.mixer.Len() != 0 {
		t.Errorf("mixer has %d streams, expected 0", p.mixer.Len())
	}
	p.Close()
}
