package audio

import (
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/pkg/errors"

	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/event"
	"github.com/lixenwraith/duke-roguelike/logger"
)

// CuePriority runs cue handlers after every gameplay handler of the same event
const CuePriority = 100

// Sink receives finished cue streams; the speaker in production, a recorder in tests
type Sink interface {
	Play(s beep.Streamer)
}

// CuePlayer turns damage and death events into short tones
// It only listens; it never writes to the world
type CuePlayer struct {
	sink  Sink
	rate  beep.SampleRate
	muted atomic.Bool

	played atomic.Int64
}

func NewCuePlayer(sink Sink, rate beep.SampleRate) *CuePlayer {
	return &CuePlayer{sink: sink, rate: rate}
}

// Attach subscribes the player to damage and death events
func (p *CuePlayer) Attach(bus *event.Bus) error {
	if err := event.Subscribe(bus, "audio.hit", CuePriority, p.onDamage); err != nil {
		return err
	}
	return event.Subscribe(bus, "audio.death", CuePriority, p.onDeath)
}

// SetMuted drops cues without unsubscribing
func (p *CuePlayer) SetMuted(muted bool) {
	p.muted.Store(muted)
}

// Muted reports whether cues are dropped
func (p *CuePlayer) Muted() bool {
	return p.muted.Load()
}

// Played returns how many cues reached the sink
func (p *CuePlayer) Played() int64 {
	return p.played.Load()
}

func (p *CuePlayer) onDamage(_ *engine.World, d *event.Damage) error {
	if p.muted.Load() || d.Amount <= 0 {
		return nil
	}
	s, err := CreateHitSound(p.rate)
	if err != nil {
		return errors.Wrap(err, "damage cue")
	}
	p.play(s)
	return nil
}

func (p *CuePlayer) onDeath(_ *engine.World, d *event.DeadEntity) error {
	if p.muted.Load() {
		return nil
	}
	p.play(CreateDeathSound(p.rate))
	logger.Log.WithField("entity", d.Entity).Trace("death cue")
	return nil
}

func (p *CuePlayer) play(s beep.Streamer) {
	if p.sink == nil {
		return
	}
	p.sink.Play(s)
	p.played.Add(1)
}
