package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/duke-roguelike/parameter"
)

// drain streams s to exhaustion and returns the sample count
func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("Sample %d out of range: %f", total+i, buf[i][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatalf("Stream did not end within %d samples", limit)
	return total
}

func TestToneSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewTone(440, 100*time.Millisecond, Sine, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Errorf("Expected 100 samples, got %d (ok=%v)", n, ok)
	}
	if samples[0][0] != 0 {
		t.Errorf("Expected sine to start at 0, got %f", samples[0][0])
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

func TestToneSquareLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewTone(220, 50*time.Millisecond, Square, rate)

	if got := drain(t, osc, 1<<20); got != rate.N(50*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", rate.N(50*time.Millisecond), got)
	}
}

func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewTone(0, time.Second, Square, rate) // constant +1
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	samples := make([][2]float64, 1000)
	n, _ := env.Stream(samples)
	if n != 1000 {
		t.Fatalf("Expected 1000 samples, got %d", n)
	}
	if samples[0][0] != 0 {
		t.Errorf("Expected silent start, got %f", samples[0][0])
	}
	if samples[500][0] != 1 {
		t.Errorf("Expected full sustain, got %f", samples[500][0])
	}
	if samples[999][0] >= samples[950][0] {
		t.Errorf("Expected release to fade, got %f then %f", samples[950][0], samples[999][0])
	}
}

func TestCueSoundsAreFinite(t *testing.T) {
	rate := beep.SampleRate(parameter.AudioSampleRate)

	hit, err := CreateHitSound(rate)
	if err != nil {
		t.Fatalf("CreateHitSound failed: %v", err)
	}
	if got := drain(t, hit, rate.N(time.Second)); got != rate.N(parameter.CueHitDuration) {
		t.Errorf("Expected %d hit samples, got %d", rate.N(parameter.CueHitDuration), got)
	}

	death := CreateDeathSound(rate)
	if got := drain(t, death, rate.N(time.Second)); got == 0 {
		t.Error("Expected audible death cue")
	}
}
