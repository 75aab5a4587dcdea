package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/pkg/errors"

	"github.com/lixenwraith/duke-roguelike/parameter"
)

// Waveform maps a phase in [0, 1) to a sample in [-1, 1]
type Waveform func(phase float64) float64

func Sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

func Square(phase float64) float64 {
	if phase < 0.5 {
		return 1
	}
	return -1
}

// tone plays a waveform at a fixed frequency for a fixed number of samples
type tone struct {
	wave      Waveform
	step      float64 // Phase advance per sample
	phase     float64
	remaining int
}

// NewTone returns a finite mono tone duplicated on both channels
func NewTone(freq float64, duration time.Duration, wave Waveform, rate beep.SampleRate) beep.Streamer {
	return &tone{
		wave:      wave,
		step:      freq / float64(rate),
		remaining: rate.N(duration),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.remaining <= 0 {
		return 0, false
	}
	n := min(len(samples), t.remaining)
	for i := 0; i < n; i++ {
		v := t.wave(t.phase)
		samples[i] = [2]float64{v, v}
		_, t.phase = math.Modf(t.phase + t.step)
	}
	t.remaining -= n
	return n, true
}

func (t *tone) Err() error { return nil }

// envelope ramps gain up over attack and down over release; the inner stream is cut at length
type envelope struct {
	beep.Streamer
	pos, length     int
	attack, release int
}

// NewEnvelope shapes s into a click-free note of the given duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		Streamer: s,
		length:   rate.N(duration),
		attack:   rate.N(attack),
		release:  rate.N(release),
	}
}

func (e *envelope) gain() float64 {
	switch {
	case e.attack > 0 && e.pos < e.attack:
		return float64(e.pos) / float64(e.attack)
	case e.release > 0 && e.pos >= e.length-e.release:
		return max(float64(e.length-e.pos)/float64(e.release), 0)
	}
	return 1
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.length {
		return 0, false
	}
	if left := e.length - e.pos; len(samples) > left {
		samples = samples[:left]
	}

	n, ok := e.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

// newVolume scales linear gain; math.Log2(0) is -Inf, so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateHitSound is a short sine blip for landed damage
func CreateHitSound(rate beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, parameter.CueHitFreq)
	if err != nil {
		return nil, errors.Wrap(err, "hit tone")
	}
	blip := beep.Take(rate.N(parameter.CueHitDuration), sine)
	return newVolume(blip, parameter.CueVolume), nil
}

// CreateDeathSound is a falling two-note square thud
func CreateDeathSound(rate beep.SampleRate) beep.Streamer {
	half := parameter.CueDeathDuration / 2
	attack := 5 * time.Millisecond

	n1 := NewTone(parameter.CueDeathFreq*2, half, Square, rate)
	n2 := NewTone(parameter.CueDeathFreq, half, Square, rate)

	seq := beep.Seq(
		NewEnvelope(n1, half, attack, half/2, rate),
		NewEnvelope(n2, half, attack, half, rate),
	)
	return newVolume(seq, parameter.CueVolume)
}
