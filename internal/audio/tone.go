package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

type wave int

const (
	sine wave = iota
	triangle
)

const attack = 10 * time.Millisecond

// tone is one note of length d from a beep oscillator, shaped by an envelope.
// A frequency the sample rate cannot carry yields silence.
func tone(freq float64, w wave, d time.Duration, gain float64) beep.Streamer {
	var (
		osc beep.Streamer
		err error
	)
	switch w {
	case triangle:
		osc, err = generators.TriangleTone(sampleRate, freq)
	default:
		osc, err = generators.SineTone(sampleRate, freq)
	}
	if err != nil {
		return generators.Silence(sampleRate.N(d))
	}
	return newEnvelope(beep.Take(sampleRate.N(d), osc), d, gain)
}

// envelope applies a linear attack and an exponential decay down to 0.001
// of the peak gain at the end of the note.
type envelope struct {
	streamer beep.Streamer
	gain     float64
	pos      int
	total    int
	attackN  int
	decayPer float64
}

func newEnvelope(s beep.Streamer, d time.Duration, gain float64) *envelope {
	total := sampleRate.N(d)
	att := min(sampleRate.N(attack), total)
	rest := max(total-att, 1)
	return &envelope{
		streamer: s,
		gain:     gain,
		total:    total,
		attackN:  att,
		decayPer: math.Pow(0.001, 1/float64(rest)),
	}
}

func (e *envelope) level() float64 {
	if e.pos < e.attackN {
		return e.gain * float64(e.pos) / float64(e.attackN)
	}
	return e.gain * math.Pow(e.decayPer, float64(e.pos-e.attackN))
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := range samples[:n] {
		v := e.level()
		samples[i][0] *= v
		samples[i][1] *= v
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
