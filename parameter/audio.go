package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 50 * time.Millisecond
)

// Cue tones
const (
	CueHitFreq       = 220.0
	CueHitDuration   = 60 * time.Millisecond
	CueDeathFreq     = 110.0
	CueDeathDuration = 180 * time.Millisecond
	CueVolume        = 0.3
)
